package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comrob/build123things/pkg/export"
)

func newMassCmd(a *app) *cobra.Command {
	var resolution int

	cmd := &cobra.Command{
		Use:   "mass <target>",
		Short: "estimate volume, mass, center of mass and inertia",
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

			props, err := export.Mass(a.kernel, asm, export.MassConfig{Resolution: resolution})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "volume:         %.4f\n", props.Volume)
			fmt.Fprintf(out, "mass:           %.4f\n", props.Mass)
			fmt.Fprintf(out, "center of mass: %s\n", props.CenterOfMass)
			fmt.Fprintln(out, "inertia about center of mass:")
			for _, row := range props.Inertia {
				fmt.Fprintf(out, "  %14.4f %14.4f %14.4f\n", row[0], row[1], row[2])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&resolution, "resolution", 0, "voxels along the longest axis (0 = default)")
	return cmd
}
