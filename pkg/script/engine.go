// Package script evaluates the Lisp construction DSL. It wraps zygomys
// in a sandboxed environment and produces an assembly from user source
// code.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/comrob/build123things/pkg/assembly"
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError is a non-fatal error from user code, such as a parse error
// or a rejected attachment.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates construction scripts. It is safe for concurrent use;
// each Evaluate call runs in a fresh sandbox so results depend only on
// the source.
type Engine struct {
	kernel   kernel.Kernel
	registry *thing.Registry

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an engine building parts through k and resolving
// family names through reg.
func NewEngine(k kernel.Kernel, reg *thing.Registry) *Engine {
	return &Engine{kernel: k, registry: reg}
}

// Evaluate runs a construction script and returns the assembly it
// defines.
//
// Return semantics:
//   - on success: assembly + nil errors + nil error
//   - on parse/eval failure: nil + eval errors + nil error
//   - on fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*assembly.Assembly, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalOutcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		a, evalErrs, err := e.evaluate(source)
		ch <- evalOutcome{asm: a, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

func (e *Engine) evaluate(source string) (*assembly.Assembly, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return nil, []EvalError{{Message: "script defines no assembly"}}, nil
	}

	// sandbox mode keeps user code away from the filesystem and syscalls
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	st := &evalState{engine: e}
	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygoError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygoError(err), nil
	}
	if st.asm == nil {
		return nil, []EvalError{{Message: "script defines no assembly"}}, nil
	}
	return st.asm, nil, nil
}

var (
	zygoLinePattern      = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	zygoLineShortPattern = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

// parseZygoError extracts line information from a zygomys error message
// where the interpreter provides it.
func parseZygoError(err error) []EvalError {
	msg := err.Error()
	for _, pat := range []*regexp.Regexp{zygoLinePattern, zygoLineShortPattern} {
		if m := pat.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
