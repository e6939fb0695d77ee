package ast

import "github.com/minilang/minilangc/internal/token"

// Symbol is one entry in a Scope's table: a declared variable's type, the
// position it was declared at, and (once assigned) its folded constant
// value, used by the semantic analyzer to detect use-before-initialization
// and to propagate folded values through later reassignments.
type Symbol struct {
	Name        string
	Type        PrimType
	Pos         token.Position
	Value       any
	Initialized bool
}

// Scope is one node of the scope tree. Every Block owns exactly one Scope,
// parented to the Scope of the nearest enclosing Block. Unlike a typical
// lexically-scoped language, MiniLang forbids shadowing: a name already
// bound in ANY ancestor scope (not just the current one) is a declaration
// error, so Lookup and ExistsInAncestry walk the full parent chain, while
// Declare binds only in the scope it is called on.
type Scope struct {
	Parent   *Scope
	Children []*Scope
	Table    map[string]*Symbol
}

// NewScope creates a scope chained to parent (nil for the program's root
// scope) and registers it as one of parent's children.
func NewScope(parent *Scope) *Scope {
	s := &Scope{Parent: parent, Table: make(map[string]*Symbol)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Lookup searches this scope and every ancestor for name, returning the
// owning scope's Symbol. It does not allocate; callers mutate the returned
// Symbol in place (e.g. to fold in a new value on reassignment).
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.Table[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// ExistsInAncestry reports whether name is already bound in this scope or
// any ancestor — the check a declaration must pass before binding, since
// MiniLang disallows shadowing across the whole ancestor chain.
func (s *Scope) ExistsInAncestry(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Declare binds name in this scope (never an ancestor). Callers must have
// already verified ExistsInAncestry is false; Declare itself does no
// checking and replaces any entry of the same name in this scope.
func (s *Scope) Declare(name string, typ PrimType, pos token.Position) *Symbol {
	sym := &Symbol{Name: name, Type: typ, Pos: pos}
	s.Table[name] = sym
	return sym
}
