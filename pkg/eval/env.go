package eval

// Env is the variable environment: a mapping from names to values, plus the
// set of names that have been declared. Every name with a value is declared.
//
// Env is not safe for concurrent use.
type Env struct {
	values map[string]any
	// Names in the order they were first declared.
	order []string
}

// NewEnv returns an empty Env.
func NewEnv() *Env {
	return &Env{values: make(map[string]any)}
}

// Declare marks name as declared and sets its value, overwriting any previous
// value. Re-declaring a name keeps its original declaration order.
func (e *Env) Declare(name string, value any) {
	if _, ok := e.values[name]; !ok {
		e.order = append(e.order, name)
	}
	e.values[name] = value
}

// Set sets the value of a declared name and returns true. It does nothing and
// returns false if the name has not been declared; callers are responsible
// for reporting that.
func (e *Env) Set(name string, value any) bool {
	if _, ok := e.values[name]; !ok {
		return false
	}
	e.values[name] = value
	return true
}

// Get returns the value of a name and whether it is declared.
func (e *Env) Get(name string) (any, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Resolve is the same as Get. It makes Env an expr.Resolver.
func (e *Env) Resolve(name string) (any, bool) { return e.Get(name) }

// IsDeclared returns whether a name has been declared.
func (e *Env) IsDeclared(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns all declared names in the order they were first declared.
func (e *Env) Names() []string {
	return append([]string(nil), e.order...)
}

// Len returns the number of declared names.
func (e *Env) Len() int { return len(e.order) }
