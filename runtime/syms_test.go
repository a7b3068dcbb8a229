package runtime

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewSymbol(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag("new-sym")
	if sym == nil {
		t.Fatal("no symbol created for table")
	}
	sym.Value = 5
	if symtab.ResolveTag("new-sym").Value != 5 {
		t.Errorf("value not stored with tag")
	}
}

func TestResolveOrDefineTag(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag("new-sym")
	if _, found := symtab.ResolveOrDefineTag(sym.Name()); !found {
		t.Error("cannot find stored symbol in table")
	}
	if _, found := symtab.ResolveOrDefineTag("other"); found || symtab.Size() != 2 {
		t.Error("expected new tag to be defined")
	}
}

func TestDefineTag(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag("new-sym")
	if _, old := symtab.DefineTag("new-sym"); old != sym {
		t.Error("symbol should have been replaced")
	}
}

func TestEachInOrder(t *testing.T) {
	symtab := NewSymbolTable()
	for _, name := range []string{"c", "a", "b"} {
		symtab.DefineTag(name)
	}
	var names string
	symtab.Each(func(name string, _ *Tag) { names += name })
	if names != "abc" {
		t.Errorf("expected tags in order of names, have %q", names)
	}
}

func TestScopeUpsearch(t *testing.T) {
	scopep := NewScope("parent", nil)
	scope := NewScope("current", scopep)
	scopep.Tags().DefineTag("new-sym")
	sym, sc := scope.ResolveTag("new-sym")
	if sym == nil || sc != scopep {
		t.Fatal("expected to find symbol in parent scope")
	}
	if sym, sc = scope.ResolveTag("nope"); sym != nil || sc != nil {
		t.Error("expected unknown symbol not to be found")
	}
}

func TestRuntimeBind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.runtime")
	defer teardown()
	//
	rt := NewRuntimeEnvironment()
	if _, err := rt.Bind("a", IntRange, []int{1}); err != nil {
		t.Fatal(err)
	}
	rt.ScopeTree.PushNewScope("local")
	rt.Bind("b", FloatRange, 2.0)
	if tag, err := rt.Lookup("a"); err != nil || tag.Kind != IntRange {
		t.Errorf("expected to find global a from local scope, err = %v", err)
	}
	rt.ScopeTree.PopScope()
	if _, err := rt.Lookup("b"); err == nil {
		t.Errorf("expected b to vanish with its scope")
	}
	if _, err := rt.Bind("", IntRange, nil); err == nil {
		t.Errorf("expected empty name to be rejected")
	}
}

func TestRuntimeScopes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdrange.runtime")
	defer teardown()
	//
	rt := NewRuntimeEnvironment()
	if _, err := rt.Leave(); err == nil {
		t.Fatal("expected global scope not to be left")
	}
	rt.Bind("a", IntRange, 1)
	rt.Bind("b", IntRange, 2)
	first, _ := rt.Lookup("a")
	rt.Bind("a", FloatRange, 3.0)
	if again, _ := rt.Lookup("a"); again != first || again.Kind != FloatRange {
		t.Errorf("expected re-binding to update the tag in place")
	}
	rt.Enter("local")
	rt.Bind("b", StringRange, "x")
	rt.Bind("c", StringRange, "y")
	if rt.Depth() != 1 {
		t.Errorf("expected 1 local scope, have %d", rt.Depth())
	}
	var names string
	rt.Visible(func(name string, tag *Tag) {
		names += name
		if name == "b" && tag.Kind != StringRange {
			t.Errorf("expected local b to shadow global b")
		}
	})
	if names != "abc" {
		t.Errorf("expected visible names abc, have %q", names)
	}
	if sc, err := rt.Leave(); err != nil || sc.Name != "local" {
		t.Fatalf("expected to leave local scope, err = %v", err)
	}
	if tag, _ := rt.Lookup("b"); tag.Kind != IntRange {
		t.Errorf("expected global b after leaving local scope")
	}
	if _, err := rt.Lookup("c"); err == nil {
		t.Errorf("expected c to vanish with its scope")
	}
}
