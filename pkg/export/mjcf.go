package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/comrob/build123things/pkg/assembly"
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/joint"
	"github.com/comrob/build123things/pkg/thing"
)

// MJCFConfig controls the MuJoCo export.
type MJCFConfig struct {
	// ModelName overrides the model attribute. Defaults to the
	// assembly name.
	ModelName string

	// MeshDir is the compiler meshdir attribute, the directory the
	// per node STL files are expected in.
	MeshDir string
}

// MeshFileName maps a node path to the STL file name the MJCF asset
// table references. Callers writing the mesh files use the same
// mapping.
func MeshFileName(path string) string {
	return sanitizeName(path) + ".stl"
}

func sanitizeName(path string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(path)
}

type mjcfDoc struct {
	XMLName  xml.Name     `xml:"mujoco"`
	Model    string       `xml:"model,attr"`
	Compiler mjcfCompiler `xml:"compiler"`
	Asset    *mjcfAsset   `xml:"asset"`
	World    mjcfWorld    `xml:"worldbody"`
}

type mjcfCompiler struct {
	Angle    string `xml:"angle,attr"`
	EulerSeq string `xml:"eulerseq,attr"`
	MeshDir  string `xml:"meshdir,attr,omitempty"`
}

type mjcfAsset struct {
	Meshes []mjcfMesh `xml:"mesh"`
}

type mjcfMesh struct {
	Name string `xml:"name,attr"`
	File string `xml:"file,attr"`
}

type mjcfWorld struct {
	Bodies []mjcfBody `xml:"body"`
}

type mjcfBody struct {
	Name   string     `xml:"name,attr"`
	Pos    string     `xml:"pos,attr,omitempty"`
	Euler  string     `xml:"euler,attr,omitempty"`
	Joint  *mjcfJoint `xml:"joint"`
	Geoms  []mjcfGeom `xml:"geom"`
	Bodies []mjcfBody `xml:"body"`
}

type mjcfJoint struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Pos   string `xml:"pos,attr,omitempty"`
	Axis  string `xml:"axis,attr"`
	Range string `xml:"range,attr,omitempty"`
}

type mjcfGeom struct {
	Type    string `xml:"type,attr"`
	Mesh    string `xml:"mesh,attr"`
	RGBA    string `xml:"rgba,attr,omitempty"`
	Density string `xml:"density,attr,omitempty"`
}

// WriteMJCF writes the assembly as a MuJoCo model. Bodies nest the way
// the tree nests. Couplings without an MJCF joint element, rigid and
// translation, fold their current parameters into the body pose so the
// model matches the resolved assembly; articulated bodies sit at their
// joint's default and leave the coordinate to MuJoCo. Node results are
// referenced as mesh assets named per MeshFileName.
func WriteMJCF(w io.Writer, a *assembly.Assembly, cfg MJCFConfig) error {
	model := cfg.ModelName
	if model == "" {
		model = a.Name()
	}

	doc := mjcfDoc{
		Model:    model,
		Compiler: mjcfCompiler{Angle: "degree", EulerSeq: "XYZ", MeshDir: cfg.MeshDir},
		Asset:    &mjcfAsset{},
	}
	for _, n := range a.Nodes() {
		if n.Thing().Result() == nil {
			continue
		}
		doc.Asset.Meshes = append(doc.Asset.Meshes, mjcfMesh{
			Name: sanitizeName(n.Path()),
			File: MeshFileName(n.Path()),
		})
	}

	root, err := buildBody(a.Root())
	if err != nil {
		return err
	}
	doc.World.Bodies = []mjcfBody{root}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return exportErr("mjcf", "writing header", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return exportErr("mjcf", "encoding model", err)
	}
	if err := enc.Close(); err != nil {
		return exportErr("mjcf", "flushing encoder", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return exportErr("mjcf", "writing trailer", err)
	}
	return nil
}

func buildBody(n *assembly.Node) (mjcfBody, error) {
	body := mjcfBody{Name: sanitizeName(n.Path())}

	t := n.Thing()
	if t.Result() != nil {
		c := t.Material().Color
		g := mjcfGeom{Type: "mesh", Mesh: sanitizeName(n.Path())}
		if c != (thing.Color{}) {
			g.RGBA = fmt.Sprintf("%g %g %g %g", c.R, c.G, c.B, c.A)
		}
		if d := t.Material().Density; d > 0 {
			g.Density = fmt.Sprintf("%g", d)
		}
		body.Geoms = []mjcfGeom{g}
	}

	if e := n.ParentEdge(); e != nil {
		jnt, err := jointElem(e)
		if err != nil {
			return mjcfBody{}, err
		}
		param := e.Param
		if jnt != nil {
			// MuJoCo owns the joint coordinate, so the body sits at
			// the joint's default.
			param = e.Joint.Default()
		}
		rel, err := relativePose(e, param)
		if err != nil {
			return mjcfBody{}, err
		}
		body.Pos = vecAttr(rel.T)
		rx, ry, rz := rel.EulerZYX()
		if rx != 0 || ry != 0 || rz != 0 {
			body.Euler = fmt.Sprintf("%g %g %g", rx, ry, rz)
		}
		body.Joint = jnt
	}

	for _, e := range n.Children() {
		child, err := buildBody(e.Child)
		if err != nil {
			return mjcfBody{}, err
		}
		body.Bodies = append(body.Bodies, child)
	}
	return body, nil
}

// relativePose is the child body frame in the parent frame with the
// joint at the given parameter vector.
func relativePose(e *assembly.Edge, param []float64) (geom.Transform, error) {
	pm, err := e.Parent.Thing().MountPoint(e.ParentMount)
	if err != nil {
		return geom.Transform{}, exportErr("mjcf", "resolving mount", err)
	}
	cm, err := e.Child.Thing().MountPoint(e.ChildMount)
	if err != nil {
		return geom.Transform{}, exportErr("mjcf", "resolving mount", err)
	}
	jt, err := e.Joint.Transform(param)
	if err != nil {
		return geom.Transform{}, exportErr("mjcf", "evaluating joint", err)
	}
	return pm.Frame.Compose(jt).Compose(cm.Frame.Inverse()), nil
}

func jointElem(e *assembly.Edge) (*mjcfJoint, error) {
	cm, err := e.Child.Thing().MountPoint(e.ChildMount)
	if err != nil {
		return nil, exportErr("mjcf", "resolving mount", err)
	}
	axis := cm.Frame.ApplyDir(geom.Vec3{Z: 1})

	switch j := e.Joint.(type) {
	case *joint.Revolute:
		out := &mjcfJoint{
			Name: j.Name,
			Type: "hinge",
			Pos:  vecAttr(cm.Frame.T),
			Axis: vecAttr(axis),
		}
		if out.Name == "" {
			out.Name = sanitizeName(e.Child.Path())
		}
		if j.LimitAngle != nil {
			out.Range = fmt.Sprintf("%g %g", j.LimitAngle[0], j.LimitAngle[1])
		}
		return out, nil
	case *joint.Prismatic:
		out := &mjcfJoint{
			Name: j.Name,
			Type: "slide",
			Pos:  vecAttr(cm.Frame.T),
			Axis: vecAttr(axis),
		}
		if out.Name == "" {
			out.Name = sanitizeName(e.Child.Path())
		}
		if j.LimitTravel != nil {
			out.Range = fmt.Sprintf("%g %g", j.LimitTravel[0], j.LimitTravel[1])
		}
		return out, nil
	default:
		// rigid and translation couplings fold into the body pose
		return nil, nil
	}
}

func vecAttr(v geom.Vec3) string {
	return fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z)
}
