package thing

import "sort"

// Param is one named construction parameter with its semantic meaning.
type Param struct {
	Name  string
	Value float64
	Doc   string
}

// ParamSet is the ordered, immutable-after-construction collection of a
// Thing's construction parameters. Order follows declaration order.
type ParamSet struct {
	params []Param
	index  map[string]int
}

// NewParamSet builds a ParamSet from the given params. Duplicate names
// keep the last declaration.
func NewParamSet(params ...Param) ParamSet {
	ps := ParamSet{index: make(map[string]int, len(params))}
	for _, p := range params {
		if i, ok := ps.index[p.Name]; ok {
			ps.params[i] = p
			continue
		}
		ps.index[p.Name] = len(ps.params)
		ps.params = append(ps.params, p)
	}
	return ps
}

// Get returns the named parameter value.
func (ps ParamSet) Get(name string) (float64, bool) {
	i, ok := ps.index[name]
	if !ok {
		return 0, false
	}
	return ps.params[i].Value, true
}

// Has reports whether the named parameter is declared.
func (ps ParamSet) Has(name string) bool {
	_, ok := ps.index[name]
	return ok
}

// Len returns the number of declared parameters.
func (ps ParamSet) Len() int {
	return len(ps.params)
}

// All returns the parameters in declaration order. The returned slice
// is a copy.
func (ps ParamSet) All() []Param {
	out := make([]Param, len(ps.params))
	copy(out, ps.params)
	return out
}

// Names returns the sorted parameter names.
func (ps ParamSet) Names() []string {
	names := make([]string, 0, len(ps.params))
	for _, p := range ps.params {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Values returns a name-to-value map copy of the set, suitable for
// feeding a constructor with overrides applied on top.
func (ps ParamSet) Values() map[string]float64 {
	m := make(map[string]float64, len(ps.params))
	for _, p := range ps.params {
		m[p.Name] = p.Value
	}
	return m
}

// WithOverrides returns a value map with the given overrides applied.
// Overriding an undeclared parameter returns an UnresolvedReferenceError
// naming the owner, so a mistyped override fails instead of silently
// introducing a new parameter.
func (ps ParamSet) WithOverrides(owner string, overrides map[string]float64) (map[string]float64, error) {
	m := ps.Values()
	for name, value := range overrides {
		if !ps.Has(name) {
			return nil, &UnresolvedReferenceError{Thing: owner, Kind: "parameter", Name: name}
		}
		m[name] = value
	}
	return m, nil
}
