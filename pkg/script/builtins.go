package script

import (
	"fmt"
	"strings"

	"github.com/comrob/build123things/pkg/assembly"
	"github.com/comrob/build123things/pkg/joint"
	"github.com/comrob/build123things/pkg/thing"
	zygo "github.com/glycerine/zygomys/zygo"
)

// preprocessSource transforms DSL source before it reaches zygomys:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords
//     need no global symbol registration.
//  2. kebab-case identifiers become underscore form, since zygomys
//     reads hyphens as subtraction.
//  3. ; line comments become // comments.
//
// String literal boundaries and comments are respected throughout.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			// keep := assignment intact
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// hyphen between identifier characters is kebab case, not minus
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// kwPrefix marks preprocessed keywords.
const kwPrefix = "__kw_"

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return strings.TrimPrefix(str.S, kwPrefix), nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toFloatPair(s zygo.Sexp) ([2]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return [2]float64{}, err
	}
	if len(items) != 2 {
		return [2]float64{}, fmt.Errorf("expected two numbers, got %d", len(items))
	}
	var out [2]float64
	for i, it := range items {
		if out[i], err = toFloat64(it); err != nil {
			return [2]float64{}, err
		}
	}
	return out, nil
}

func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// sexpThing carries a built component through the environment.
type sexpThing struct {
	t thing.Thing
}

func (s *sexpThing) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(part %q)", s.t.Name())
}
func (s *sexpThing) Type() *zygo.RegisteredType { return nil }

// sexpJoint carries a joint value, plus an initial parameter vector
// when the builtin supplied one.
type sexpJoint struct {
	j     joint.Joint
	param []float64
}

func (s *sexpJoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(joint %s)", s.j.Kind())
}
func (s *sexpJoint) Type() *zygo.RegisteredType { return nil }

// sexpAssembly carries the assembly under construction.
type sexpAssembly struct {
	a *assembly.Assembly
}

func (s *sexpAssembly) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(assembly %q)", s.a.Name())
}
func (s *sexpAssembly) Type() *zygo.RegisteredType { return nil }

// sexpNode carries a placed node reference.
type sexpNode struct {
	n *assembly.Node
}

func (s *sexpNode) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(node %q)", s.n.Path())
}
func (s *sexpNode) Type() *zygo.RegisteredType { return nil }

func toThing(s zygo.Sexp) (thing.Thing, error) {
	if v, ok := s.(*sexpThing); ok {
		return v.t, nil
	}
	return nil, fmt.Errorf("expected part, got %T (%s)", s, s.SexpString(nil))
}

// evalState accumulates the result of one evaluation.
type evalState struct {
	engine *Engine
	asm    *assembly.Assembly
}

// registerBuiltins installs the construction DSL into env. Source must
// be preprocessed with preprocessSource first so keyword tokens arrive
// as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {

	// (part "wheel" :radius 30 :thickness 12)
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("part: expected a family name")
		}
		family, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: %w", err)
		}
		params := make(map[string]float64, len(pa.kw))
		for k, v := range pa.kw {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %s: %s: %w", family, k, err)
			}
			params[k] = f
		}
		t, err := st.engine.registry.New(st.engine.kernel, family, params)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: %w", err)
		}
		return &sexpThing{t: t}, nil
	})

	// (rigid)
	env.AddFunction("rigid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpJoint{j: joint.Rigid{}}, nil
	})

	// (revolute :name "drive" :limit [-45 45] :effort 2 :velocity 10)
	env.AddFunction("revolute", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		j := &joint.Revolute{}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolute: name: %w", err)
			}
			j.Name = s
		}
		if v, ok := pa.kw["limit"]; ok {
			lim, err := toFloatPair(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolute: limit: %w", err)
			}
			j.LimitAngle = &lim
		}
		if v, ok := pa.kw["effort"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolute: effort: %w", err)
			}
			j.LimitEffort = f
		}
		if v, ok := pa.kw["velocity"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolute: velocity: %w", err)
			}
			j.LimitVelocity = f
		}
		return &sexpJoint{j: j}, nil
	})

	// (prismatic :name "lift" :limit [0 20])
	env.AddFunction("prismatic", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		j := &joint.Prismatic{}
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("prismatic: name: %w", err)
			}
			j.Name = s
		}
		if v, ok := pa.kw["limit"]; ok {
			lim, err := toFloatPair(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("prismatic: limit: %w", err)
			}
			j.LimitTravel = &lim
		}
		return &sexpJoint{j: j}, nil
	})

	// (translation 0 0 7)
	env.AddFunction("translation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("translation: expected three offsets")
		}
		param := make([]float64, 3)
		for i, arg := range args {
			f, err := toFloat64(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("translation: %w", err)
			}
			param[i] = f
		}
		return &sexpJoint{j: joint.Translation{}, param: param}, nil
	})

	// (assembly "rig" rootPart)
	env.AddFunction("assembly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("assembly: expected a name and a root part")
		}
		asmName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: %w", err)
		}
		root, err := toThing(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: %w", err)
		}
		a := assembly.New(asmName, root)
		st.asm = a
		return &sexpAssembly{a: a}, nil
	})

	// (attach parent "mount" part "mount" jointValue)
	// parent is an assembly, meaning its root, or a node from an
	// earlier attach. The joint defaults to rigid when omitted.
	env.AddFunction("attach", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 4 || len(args) > 5 {
			return zygo.SexpNull, fmt.Errorf("attach: expected parent, mount, part, mount and optional joint")
		}

		var parent *assembly.Node
		var a *assembly.Assembly
		switch v := args[0].(type) {
		case *sexpAssembly:
			a, parent = v.a, v.a.Root()
		case *sexpNode:
			if st.asm == nil {
				return zygo.SexpNull, fmt.Errorf("attach: no assembly defined yet")
			}
			a, parent = st.asm, v.n
		default:
			return zygo.SexpNull, fmt.Errorf("attach: expected assembly or node, got %T", args[0])
		}

		parentMount, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attach: parent mount: %w", err)
		}
		child, err := toThing(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attach: %w", err)
		}
		childMount, err := toString(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attach: child mount: %w", err)
		}

		var j joint.Joint = joint.Rigid{}
		var initParam []float64
		if len(args) == 5 {
			sj, ok := args[4].(*sexpJoint)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("attach: expected joint, got %T", args[4])
			}
			j, initParam = sj.j, sj.param
		}

		n, err := a.AttachThing(parent, parentMount, child, childMount, j)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attach: %w", err)
		}
		if initParam != nil {
			if err := a.SetJointParam(n, initParam); err != nil {
				return zygo.SexpNull, fmt.Errorf("attach: %w", err)
			}
		}
		return &sexpNode{n: n}, nil
	})

	// (set-joint node 90) or (set-joint node 0 0 7)
	env.AddFunction("set_joint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("set-joint: expected a node and parameters")
		}
		node, ok := args[0].(*sexpNode)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("set-joint: expected node, got %T", args[0])
		}
		if st.asm == nil {
			return zygo.SexpNull, fmt.Errorf("set-joint: no assembly defined yet")
		}
		param := make([]float64, 0, len(args)-1)
		for _, arg := range args[1:] {
			f, err := toFloat64(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("set-joint: %w", err)
			}
			param = append(param, f)
		}
		if err := st.asm.SetJointParam(node.n, param); err != nil {
			return zygo.SexpNull, fmt.Errorf("set-joint: %w", err)
		}
		return args[0], nil
	})
}
