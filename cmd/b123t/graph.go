package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/comrob/build123things/pkg/export"
)

func newGraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph <target>",
		Short: "write the assembly structure as a Graphviz digraph",
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

			path := a.outputOr(args[0] + ".dot")
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.WriteDOT(f, asm); err != nil {
				return err
			}
			a.log.Infow("wrote graph", "path", path, "nodes", asm.Len())
			return f.Close()
		},
	}
}
