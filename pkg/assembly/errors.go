package assembly

import "fmt"

// ConstraintError reports a rejected structural mutation. Mutations are
// atomic; when a ConstraintError is returned the assembly is exactly as
// it was before the call.
type ConstraintError struct {
	Assembly string
	Op       string
	Reason   string
	Err      error // underlying cause, if any
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("assembly %q: %s: %s", e.Assembly, e.Op, e.Reason)
}

func (e *ConstraintError) Unwrap() error { return e.Err }
