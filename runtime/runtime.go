/*
Package runtime implements the runtime environment of interactive tools
working with ranges: scopes holding named values.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Symbol Table and Scope Tree

This module implements data structures for scope trees and symbol tables
attached to them. Tags in symbol tables carry a value and the kind of value,
e.g. a range of floats. Interactive sessions may open local scopes; names
bound there vanish when the scope is left.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Runtime is a type implementing a runtime environment for an interpreter
type Runtime struct {
	ScopeTree *ScopeTree // collect scopes
}

// NewRuntimeEnvironment constructs a new runtime environment, initialized
// with a global scope.
func NewRuntimeEnvironment() *Runtime {
	rt := &Runtime{}
	rt.ScopeTree = new(ScopeTree)
	rt.ScopeTree.PushNewScope("globals")
	return rt
}

// Bind defines name in the current scope, holding value of kind k. A previous
// binding of name in the current scope is overwritten.
func (rt *Runtime) Bind(name string, k Kind, value interface{}) (*Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("cannot bind value to empty name")
	}
	tag, found := rt.ScopeTree.Current().Tags().ResolveOrDefineTag(name)
	if found {
		T().Debugf("re-binding %s", tag)
	}
	tag.Kind = k
	tag.Value = value
	return tag, nil
}

// Lookup resolves name, searching from the current scope up to the globals.
func (rt *Runtime) Lookup(name string) (*Tag, error) {
	tag, _ := rt.ScopeTree.Current().ResolveTag(name)
	if tag == nil {
		return nil, fmt.Errorf("undefined name %q", name)
	}
	return tag, nil
}

// Enter opens a new local scope below the current one.
func (rt *Runtime) Enter(name string) *Scope {
	return rt.ScopeTree.PushNewScope(name)
}

// Leave closes the current local scope, dropping its names. The global scope
// cannot be left.
func (rt *Runtime) Leave() (*Scope, error) {
	if rt.ScopeTree.Current() == rt.ScopeTree.Globals() {
		return nil, fmt.Errorf("cannot leave global scope")
	}
	return rt.ScopeTree.PopScope(), nil
}

// Depth is the number of local scopes open.
func (rt *Runtime) Depth() int {
	d := 0
	for sc := rt.ScopeTree.Current(); sc.Parent != nil; sc = sc.Parent {
		d++
	}
	return d
}

// Visible calls f for every name visible from the current scope, in order of
// names. Names shadowed by an inner scope are skipped.
func (rt *Runtime) Visible(f func(name string, tag *Tag)) {
	seen := make(map[string]bool)
	visible := NewSymbolTable()
	for sc := rt.ScopeTree.Current(); sc != nil; sc = sc.Parent {
		sc.Tags().Each(func(name string, tag *Tag) {
			if !seen[name] {
				seen[name] = true
				visible.InsertTag(tag)
			}
		})
	}
	visible.Each(f)
}
