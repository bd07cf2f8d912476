package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comrob/build123things/pkg/assembly"
	"github.com/comrob/build123things/pkg/export"
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/script"
)

func newRunCmd(a *app) *cobra.Command {
	var stlOut string
	var cells int

	cmd := &cobra.Command{
		Use:   "run <script.lisp>",
		Short: "evaluate a construction script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			eng := script.NewEngine(a.kernel, a.registry)
			asm, evalErrs, err := eng.Evaluate(string(src))
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				for _, e := range evalErrs {
					a.log.Errorw("script error", "script", args[0], "error", e.Error())
				}
				return fmt.Errorf("%s: %d script error(s)", args[0], len(evalErrs))
			}

			a.log.Infow("evaluated script", "assembly", asm.Name(), "nodes", asm.Len())
			err = asm.Walk(func(n *assembly.Node, world geom.Transform) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s\n", n.Path(), world)
				return nil
			})
			if err != nil {
				return err
			}

			if stlOut == "" {
				return nil
			}
			meshes, err := export.Meshes(a.kernel, asm, export.MeshConfig{Merged: true, Cells: cells})
			if err != nil {
				return err
			}
			if err := writeSTLFile(stlOut, meshes[0]); err != nil {
				return err
			}
			a.log.Infow("wrote mesh", "path", stlOut, "triangles", meshes[0].Mesh.TriangleCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&stlOut, "stl", "", "also write the merged mesh to this STL file")
	cmd.Flags().IntVar(&cells, "cells", 0, "tessellation cells along the longest axis (0 = kernel default)")
	return cmd
}
