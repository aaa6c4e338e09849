package symbols

import (
	"golang.org/x/exp/slices"

	"github.com/funvibe/lolc/internal/hooks"
	"github.com/funvibe/lolc/internal/typesystem"
)

// Variable binds a name to the hook holding its value.
type Variable struct {
	Name string
	Hook int
	Type typesystem.Type
}

// Scope is a lexical scope. It owns every hook allocated through it,
// variables and temporaries alike, and returns them all on Release.
type Scope struct {
	Name   string
	parent *Scope
	alloc  *hooks.Allocator

	vars  map[string]*Variable
	order []*Variable
	hooks []int

	released bool
}

func NewScope(name string, parent *Scope, alloc *hooks.Allocator) *Scope {
	return &Scope{
		Name:   name,
		parent: parent,
		alloc:  alloc,
		vars:   make(map[string]*Variable),
	}
}

func (s *Scope) Parent() *Scope { return s.parent }

// AllocHook takes a hook from the allocator and records it in this scope.
func (s *Scope) AllocHook() int {
	h := s.alloc.Alloc()
	s.hooks = append(s.hooks, h)
	return h
}

// ReleaseHook returns one hook early. Hooks not owned by this scope are
// passed on to the enclosing scope.
func (s *Scope) ReleaseHook(h int) {
	if h == hooks.None {
		return
	}
	for sc := s; sc != nil; sc = sc.parent {
		if i := slices.Index(sc.hooks, h); i >= 0 {
			sc.hooks = slices.Delete(sc.hooks, i, i+1)
			sc.alloc.Release(h)
			return
		}
	}
}

// Declare allocates a hook for name. It fails when name already exists in
// this scope.
func (s *Scope) Declare(name string, t typesystem.Type) (*Variable, bool) {
	if _, exists := s.vars[name]; exists {
		return nil, false
	}
	v := &Variable{Name: name, Hook: s.AllocHook(), Type: t}
	s.vars[name] = v
	s.order = append(s.order, v)
	return v, true
}

// Lookup resolves name through the enclosing scopes.
func (s *Scope) Lookup(name string) (*Variable, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// LookupLocal resolves name in this scope only.
func (s *Scope) LookupLocal(name string) (*Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Variables lists the scope's variables in declaration order.
func (s *Scope) Variables() []*Variable {
	return s.order
}

// Hooks lists the hooks currently owned by the scope.
func (s *Scope) Hooks() []int {
	return s.hooks
}

// Release returns every owned hook to the allocator. Calling it again is a
// no-op.
func (s *Scope) Release() {
	if s.released {
		return
	}
	for _, h := range s.hooks {
		s.alloc.Release(h)
	}
	s.hooks = nil
	s.released = true
}

func (s *Scope) Released() bool { return s.released }

// SnapshotHooks saves the owned-hook list for a later RestoreHooks.
func (s *Scope) SnapshotHooks() []int {
	return slices.Clone(s.hooks)
}

func (s *Scope) RestoreHooks(saved []int) {
	s.hooks = slices.Clone(saved)
}
