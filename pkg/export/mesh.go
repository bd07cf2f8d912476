package export

import (
	"github.com/comrob/build123things/pkg/assembly"
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/kernel"
)

// MeshConfig controls mesh extraction.
type MeshConfig struct {
	// Merged collapses the whole assembly into a single mesh named
	// after the assembly. Otherwise each node yields its own mesh.
	Merged bool

	// Cells is the tessellation resolution handed to the kernel.
	// Zero selects the kernel default.
	Cells int
}

// NodeMesh is one extracted mesh, identified by the node path it came
// from.
type NodeMesh struct {
	Path string
	Mesh *kernel.Mesh
}

// Meshes tessellates every node's result solid in its resolved world
// pose. Nodes without a result, such as pure assemblies, are skipped.
// Each node is transformed before tessellation so merged output needs
// no vertex rework.
func Meshes(k kernel.Kernel, a *assembly.Assembly, cfg MeshConfig) ([]NodeMesh, error) {
	var out []NodeMesh
	err := a.Walk(func(n *assembly.Node, world geom.Transform) error {
		result := n.Thing().Result()
		if result == nil {
			return nil
		}
		placed := k.Transform(result, world)
		m, err := k.ToMesh(placed, cfg.Cells)
		if err != nil {
			return exportErr("mesh", "tessellating "+n.Path(), err)
		}
		m.Name = n.Path()
		out = append(out, NodeMesh{Path: n.Path(), Mesh: m})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !cfg.Merged {
		return out, nil
	}
	merged := &kernel.Mesh{Name: a.Name()}
	for _, nm := range out {
		merged.Append(nm.Mesh)
	}
	return []NodeMesh{{Path: a.Name(), Mesh: merged}}, nil
}
