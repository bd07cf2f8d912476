package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/comrob/build123things/pkg/assembly"
)

// WriteDOT writes the assembly structure as a Graphviz digraph. Nodes
// carry the Thing family, material and construction parameters; edges
// carry the joint kind, its current parameter vector and the mount
// points.
func WriteDOT(w io.Writer, a *assembly.Assembly) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", a.Name())
	b.WriteString("\trankdir=TB;\n")
	b.WriteString("\tnode [shape=box, fontname=\"monospace\"];\n")

	for _, n := range a.Nodes() {
		t := n.Thing()
		label := fmt.Sprintf(`%s\n%s`, n.Path(), t.Material().Name)
		for _, p := range t.Params().All() {
			label += fmt.Sprintf(`\n%s = %g`, p.Name, p.Value)
		}
		fmt.Fprintf(&b, "\t\"%s\" [label=\"%s\"];\n", n.Path(), label)
	}
	for _, n := range a.Nodes() {
		for _, e := range n.Children() {
			kind := e.Joint.Kind()
			if len(e.Param) > 0 {
				kind += " " + paramVector(e.Param)
			}
			fmt.Fprintf(&b, "\t\"%s\" -> \"%s\" [label=\"%s: %s -> %s\"];\n",
				e.Parent.Path(), e.Child.Path(),
				kind, e.ParentMount, e.ChildMount)
		}
	}
	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return exportErr("dot", "writing graph", err)
	}
	return nil
}

func paramVector(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
