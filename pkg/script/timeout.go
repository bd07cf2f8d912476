package script

import (
	"fmt"
	"sync"
	"time"

	"github.com/comrob/build123things/pkg/assembly"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

type evalOutcome struct {
	asm    *assembly.Assembly
	errors []EvalError
	err    error
}

// waitWithTimeout waits for an outcome, giving up after EvalTimeout.
// The generation counter discards results of superseded evaluations
// that finish late.
func waitWithTimeout(
	ch <-chan evalOutcome,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*assembly.Assembly, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()
		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.asm, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
