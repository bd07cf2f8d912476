package thing

import "fmt"

// InvalidParameterError reports a construction (or joint) parameter
// outside its valid domain. It is raised at construction or set time,
// never lazily.
type InvalidParameterError struct {
	Thing  string // family name of the offending Thing, or joint kind
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g on %s: %s", e.Param, e.Value, e.Thing, e.Reason)
}

// UnresolvedReferenceError reports a by-name lookup (mount point,
// reference geometry, registered Thing, joint parameter) that does not
// resolve.
type UnresolvedReferenceError struct {
	Thing string // owner identity, or "registry"
	Kind  string // "mount point", "reference geometry", "thing", "joint parameter"
	Name  string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s %q not found on %s", e.Kind, e.Name, e.Thing)
}
