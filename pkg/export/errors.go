// Package export turns resolved assemblies into artifacts: triangle
// meshes and STL files, Graphviz structure graphs, voxel sampled mass
// properties and MuJoCo mechanism descriptions.
package export

import "fmt"

// Error reports a failed export. Err carries the underlying cause when
// one exists.
type Error struct {
	Format string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export %s: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("export %s: %s", e.Format, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

func exportErr(format, reason string, err error) *Error {
	return &Error{Format: format, Reason: reason, Err: err}
}
