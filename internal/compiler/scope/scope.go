package scope

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/pl0retro/internal/compiler/symbols"
)

// ErrUnresolvedIdentifier is returned when no live frame binds a name.
var ErrUnresolvedIdentifier = errors.New("unresolved identifier")

// --- Scope ---
type Scope struct {
	Symbols map[string]symbols.Symbol
	Outer   *Scope
	Name    string
}

func NewScope(outer *Scope, name string) *Scope {
	return &Scope{
		Symbols: make(map[string]symbols.Symbol),
		Outer:   outer,
		Name:    name,
	}
}

// Bind adds a symbol ONLY to the current scope level, replacing any
// earlier binding of name at this level.
func (s *Scope) Bind(name string, sym symbols.Symbol) {
	s.Symbols[name] = sym
}

// Lookup searches for a symbol starting from the current scope and traversing outwards.
// depth is 0 for a hit in s itself, 1 for its outer scope, and so on.
func (s *Scope) Lookup(name string) (sym symbols.Symbol, depth int, ok bool) {
	for scope := s; scope != nil; scope = scope.Outer {
		if sym, ok := scope.Symbols[name]; ok {
			return sym, depth, true
		}
		depth++
	}
	return symbols.Symbol{}, 0, false
}

// LookupCurrentScope checks ONLY the current scope level.
func (s *Scope) LookupCurrentScope(name string) (symbols.Symbol, bool) {
	sym, ok := s.Symbols[name]
	return sym, ok
}

// --- Stack ---

// Stack is the chain of lexical frames live during code generation,
// innermost on top. The zero value is an empty stack.
type Stack struct {
	current *Scope
	depth   int
}

// Push opens a new empty frame inside the current one.
func (st *Stack) Push(name string) {
	st.current = NewScope(st.current, name)
	st.depth++
}

// Pop discards the innermost frame. Popping an empty stack is a bug in the
// caller's traversal and panics.
func (st *Stack) Pop() {
	if st.current == nil {
		panic("scope: pop of empty stack")
	}
	st.current = st.current.Outer
	st.depth--
}

// Depth returns the number of live frames.
func (st *Stack) Depth() int {
	return st.depth
}

// Current returns the innermost frame, or nil when the stack is empty.
func (st *Stack) Current() *Scope {
	return st.current
}

// Declare binds name to a procedure entry label in the innermost frame.
func (st *Stack) Declare(name, label string) {
	st.bind(name, symbols.NewProcedure(label))
}

// Define binds name to a constant value in the innermost frame.
func (st *Stack) Define(name string, value int64) {
	st.bind(name, symbols.NewConstant(value))
}

// Update binds name to a variable storage label in the innermost frame.
func (st *Stack) Update(name, label string) {
	st.bind(name, symbols.NewVariable(label))
}

func (st *Stack) bind(name string, sym symbols.Symbol) {
	if st.current == nil {
		panic(fmt.Sprintf("scope: bind of %q with no open frame", name))
	}
	st.current.Bind(name, sym)
}

// Find resolves name from the innermost frame outwards and reports how many
// frames out the binding was found.
func (st *Stack) Find(name string) (symbols.Symbol, int, error) {
	if st.current != nil {
		if sym, depth, ok := st.current.Lookup(name); ok {
			return sym, depth, nil
		}
	}
	return symbols.Symbol{}, 0, fmt.Errorf("%w %q", ErrUnresolvedIdentifier, name)
}
