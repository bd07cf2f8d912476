package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/comrob/build123things/pkg/kernel/kerneltest"
	"github.com/comrob/build123things/pkg/partlib"
	"github.com/comrob/build123things/pkg/thing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	reg := thing.NewRegistry()
	if err := partlib.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return NewEngine(kerneltest.Kernel{}, reg)
}

func TestPreprocessKeywords(t *testing.T) {
	got := preprocessSource(`(part "box" :side 10)`)
	want := `(part "box" "__kw_side" 10)`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPreprocessKebabCase(t *testing.T) {
	got := preprocessSource(`(set-joint wheel 90)`)
	if !strings.Contains(got, "set_joint") {
		t.Fatalf("got %q", got)
	}

	// strings and arithmetic stay untouched
	got = preprocessSource(`(attach rig "hub-fl" w "hub" (- 5 3))`)
	if !strings.Contains(got, `"hub-fl"`) {
		t.Fatalf("string mangled: %q", got)
	}
	if !strings.Contains(got, "(- 5 3)") {
		t.Fatalf("subtraction mangled: %q", got)
	}
}

func TestPreprocessComments(t *testing.T) {
	got := preprocessSource(";; the chassis\n(part \"box\")")
	if !strings.HasPrefix(got, "// the chassis") {
		t.Fatalf("got %q", got)
	}
}

func TestPreprocessPreservesAssignOperator(t *testing.T) {
	got := preprocessSource(`(x := 10)`)
	if got != `(x := 10)` {
		t.Fatalf("got %q", got)
	}
}

func TestEvaluateStack(t *testing.T) {
	eng := newTestEngine(t)

	src := `
		(def base (part "box" :side 10))
		(def rig (assembly "stack" base))
		(def top (part "box" :side 4))
		(attach rig "top" top "origin" (translation 0 0 7))
	`
	a, evalErrs, err := eng.Evaluate(src)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if a == nil || a.Len() != 2 {
		t.Fatalf("assembly = %v", a)
	}

	child, err := a.NodeByPath("box/top")
	if err != nil {
		t.Fatalf("NodeByPath: %v", err)
	}
	poses, err := a.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if poses[child].T.Z != 12 {
		t.Fatalf("child at z = %v", poses[child].T.Z)
	}
}

func TestEvaluateRevoluteWithLimits(t *testing.T) {
	eng := newTestEngine(t)

	src := `
		(def body (part "car-body"))
		(def car (assembly "car" body))
		(def w (part "wheel" :radius 25))
		(def n (attach car "hub-fl" w "hub" (revolute :name "drive" :limit [-90 90])))
		(set-joint n 45)
	`
	a, evalErrs, err := eng.Evaluate(src)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	n, err := a.NodeByPath("car-body/hub-fl")
	if err != nil {
		t.Fatalf("NodeByPath: %v", err)
	}
	if got := n.ParentEdge().Param; len(got) != 1 || got[0] != 45 {
		t.Fatalf("joint param = %v", got)
	}
}

func TestEvaluateReportsRejectedAttach(t *testing.T) {
	eng := newTestEngine(t)

	src := `
		(def base (part "box" :side 10))
		(def rig (assembly "stack" base))
		(attach rig "bogus" (part "box" :side 4) "origin")
	`
	a, evalErrs, err := eng.Evaluate(src)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if a != nil {
		t.Fatal("broken script produced an assembly")
	}
	if len(evalErrs) == 0 {
		t.Fatal("no eval errors reported")
	}
}

func TestEvaluateEmptySource(t *testing.T) {
	eng := newTestEngine(t)

	a, evalErrs, err := eng.Evaluate("   \n")
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if a != nil || len(evalErrs) == 0 {
		t.Fatalf("a = %v, errs = %v", a, evalErrs)
	}
}

func TestEvaluateUnknownFamily(t *testing.T) {
	eng := newTestEngine(t)

	_, evalErrs, err := eng.Evaluate(`(assembly "x" (part "hovercraft"))`)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("no eval errors reported")
	}
}

func TestParseZygoError(t *testing.T) {
	errs := parseZygoError(errors.New("Error on line 3: undefined symbol"))
	if len(errs) != 1 || errs[0].Line != 3 {
		t.Fatalf("errs = %v", errs)
	}
	if errs[0].Message != "undefined symbol" {
		t.Fatalf("message = %q", errs[0].Message)
	}

	errs = parseZygoError(errors.New("something opaque"))
	if len(errs) != 1 || errs[0].Line != 0 {
		t.Fatalf("errs = %v", errs)
	}
}
