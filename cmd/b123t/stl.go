package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/comrob/build123things/pkg/export"
)

func newStlCmd(a *app) *cobra.Command {
	var cells int
	var perNode bool

	cmd := &cobra.Command{
		Use:   "stl <target>",
		Short: "tessellate a target and write binary STL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.loadParams()
			if err != nil {
				return err
			}
			asm, err := a.build(args[0], params)
			if err != nil {
				return err
			}

			meshes, err := export.Meshes(a.kernel, asm, export.MeshConfig{
				Merged: !perNode,
				Cells:  cells,
			})
			if err != nil {
				return err
			}
			for _, nm := range meshes {
				path := a.outputOr(export.MeshFileName(nm.Path))
				if perNode {
					path = export.MeshFileName(nm.Path)
				}
				if err := writeSTLFile(path, nm); err != nil {
					return err
				}
				a.log.Infow("wrote mesh",
					"path", path,
					"triangles", nm.Mesh.TriangleCount())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cells, "cells", 0, "tessellation cells along the longest axis (0 = kernel default)")
	cmd.Flags().BoolVar(&perNode, "per-node", false, "write one STL per node instead of a merged file")
	return cmd
}

func writeSTLFile(path string, nm export.NodeMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteSTL(f, nm.Mesh); err != nil {
		return err
	}
	return f.Close()
}
