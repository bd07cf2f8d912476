// Command b123t builds parametric assemblies and exports them as STL
// meshes, Graphviz structure graphs, MuJoCo models and mass property
// reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/comrob/build123things/pkg/assembly"
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/kernel/sdfx"
	"github.com/comrob/build123things/pkg/partlib"
	"github.com/comrob/build123things/pkg/thing"
)

type app struct {
	log      *zap.SugaredLogger
	kernel   kernel.Kernel
	registry *thing.Registry

	paramFile string
	output    string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "b123t",
		Short:         "parametric assembly modeling and export",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			a.log = logger.Sugar()
			a.kernel = sdfx.New()
			a.registry = thing.NewRegistry()
			return partlib.Register(a.registry)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.paramFile, "param-file", "p", "", "YAML file with parameter overrides")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "output file (default derived from the target name)")

	root.AddCommand(
		newListCmd(a),
		newStlCmd(a),
		newGraphCmd(a),
		newMjcfCmd(a),
		newMassCmd(a),
		newRunCmd(a),
	)
	return root
}

// loadParams reads the --param-file overrides, if any.
func (a *app) loadParams() (map[string]float64, error) {
	if a.paramFile == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(a.paramFile)
	if err != nil {
		return nil, fmt.Errorf("reading param file: %w", err)
	}
	params := map[string]float64{}
	if err := yaml.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("parsing param file %s: %w", a.paramFile, err)
	}
	return params, nil
}

// build resolves a target name to an assembly. Composite names win;
// a plain family name yields a single node assembly.
func (a *app) build(name string, params map[string]float64) (*assembly.Assembly, error) {
	for _, composite := range partlib.AssemblyNames() {
		if name == composite {
			return partlib.BuildAssembly(a.kernel, name, params)
		}
	}
	if a.registry.Has(name) {
		t, err := a.registry.New(a.kernel, name, params)
		if err != nil {
			return nil, err
		}
		return assembly.New(name, t), nil
	}
	return nil, &thing.UnresolvedReferenceError{Thing: "b123t", Kind: "target", Name: name}
}

func (a *app) outputOr(fallback string) string {
	if a.output != "" {
		return a.output
	}
	return fallback
}
