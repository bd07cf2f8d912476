package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/comrob/build123things/pkg/export"
)

func newMjcfCmd(a *app) *cobra.Command {
	var meshDir string
	var cells int

	cmd := &cobra.Command{
		Use:   "mjcf <target>",
		Short: "write a MuJoCo model plus its mesh assets",
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

			if err := os.MkdirAll(meshDir, 0o755); err != nil {
				return err
			}
			meshes, err := export.Meshes(a.kernel, asm, export.MeshConfig{Cells: cells})
			if err != nil {
				return err
			}
			for _, nm := range meshes {
				path := filepath.Join(meshDir, export.MeshFileName(nm.Path))
				if err := writeSTLFile(path, nm); err != nil {
					return err
				}
			}

			path := a.outputOr(args[0] + ".xml")
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.WriteMJCF(f, asm, export.MJCFConfig{MeshDir: meshDir}); err != nil {
				return err
			}
			a.log.Infow("wrote model", "path", path, "meshes", len(meshes))
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&meshDir, "mesh-dir", "meshes", "directory for the per node STL assets")
	cmd.Flags().IntVar(&cells, "cells", 0, "tessellation cells along the longest axis (0 = kernel default)")
	return cmd
}
