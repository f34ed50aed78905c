package interpolate

import "testing"

func mapLib() *Library {
	lib := NewLibrary()
	registerMapBuiltins(lib)
	return lib
}

func callMap(t *testing.T, lib *Library, name string, args ...Value) Value {
	t.Helper()
	b, ok := lib.Lookup(name)
	if !ok {
		t.Fatalf("no such builtin %q", name)
	}
	return b.Fn(args)
}

func TestMapListReindexesASingleMap(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("a", "1").With("b", "2")
	out := callMap(t, lib, "list", MapValue(m)).AsMap()
	if out.Keys()[0] != "1" || out.Keys()[1] != "2" {
		t.Fatalf("got keys %v", out.Keys())
	}
}

func TestMapListWrapsPositionalArguments(t *testing.T) {
	lib := mapLib()
	out := callMap(t, lib, "list", StringValue("x"), StringValue("y")).AsMap()
	if out.Size() != 2 {
		t.Fatalf("want 2, got %d", out.Size())
	}
	if v, _ := out.Get("1"); v != "x" {
		t.Fatalf("got %q", v)
	}
}

func TestMapLenPolymorphic(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("a", "1").With("b", "2")
	if got := callMap(t, lib, "len", MapValue(m)).AsString(); got != "2" {
		t.Fatalf("map len: got %q", got)
	}
	if got := callMap(t, lib, "len", StringValue("héllo")).AsString(); got != "5" {
		t.Fatalf("string len: got %q", got)
	}
}

func TestMapConcatPolymorphic(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("a", "x").With("b", "y")
	if got := callMap(t, lib, "concat", MapValue(m)).AsString(); got != "xy" {
		t.Fatalf("map concat: got %q", got)
	}
	if got := callMap(t, lib, "concat", StringValue("a"), StringValue("b")).AsString(); got != "ab" {
		t.Fatalf("string concat: got %q", got)
	}
}

func TestMapConcatsPolymorphic(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("a", "x").With("b", "y")
	if got := callMap(t, lib, "concats", MapValue(m), StringValue("-")).AsString(); got != "x-y" {
		t.Fatalf("map concats: got %q", got)
	}
	if got := callMap(t, lib, "concats", StringValue("-"), StringValue("a"), StringValue("b")).AsString(); got != "a-b" {
		t.Fatalf("string concats: got %q", got)
	}
}

func TestMapNthvalue(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("a", "1").With("b", "2").With("c", "3")
	if got := callMap(t, lib, "nthvalue", MapValue(m), StringValue("2")).AsString(); got != "2" {
		t.Fatalf("got %q", got)
	}
	if got := callMap(t, lib, "nthvalue", MapValue(m), StringValue("99")).AsString(); got != "" {
		t.Fatalf("out of range: got %q", got)
	}
}

func TestMapFirstLastPolymorphic(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("a", "1").With("b", "2")
	if got := callMap(t, lib, "first", MapValue(m)).AsString(); got != "1" {
		t.Fatalf("map first: got %q", got)
	}
	if got := callMap(t, lib, "last", MapValue(m)).AsString(); got != "2" {
		t.Fatalf("map last: got %q", got)
	}
	if got := callMap(t, lib, "first", StringValue("abc")).AsString(); got != "a" {
		t.Fatalf("string first: got %q", got)
	}
	if got := callMap(t, lib, "last", StringValue("abc")).AsString(); got != "c" {
		t.Fatalf("string last: got %q", got)
	}
}

func TestMapFirstOnEmptyIsAbsent(t *testing.T) {
	lib := mapLib()
	if got := callMap(t, lib, "first", MapValue(NewMultiMap())).AsString(); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestMapHasGet(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("a", "1")
	if got := callMap(t, lib, "has", MapValue(m), StringValue("a")).AsString(); got != "1" {
		t.Fatalf("has hit: got %q", got)
	}
	if got := callMap(t, lib, "has", MapValue(m), StringValue("z")).AsString(); got != "" {
		t.Fatalf("has miss: got %q", got)
	}
	if got := callMap(t, lib, "get", MapValue(m), StringValue("a")).AsString(); got != "1" {
		t.Fatalf("get hit: got %q", got)
	}
	if got := callMap(t, lib, "get", MapValue(m), StringValue("z")).AsString(); got != "" {
		t.Fatalf("get miss, no default: got %q", got)
	}
	if got := callMap(t, lib, "get", MapValue(m), StringValue("z"), StringValue("dflt")).AsString(); got != "dflt" {
		t.Fatalf("get miss, with default: got %q", got)
	}
}

func TestMapIndexRekeysMatchingEntries(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("A", "1").With("B", "x").With("A", "2")
	out := callMap(t, lib, "index", MapValue(m), StringValue("A")).AsMap()
	if out.Size() != 2 {
		t.Fatalf("want 2 matches, got %d", out.Size())
	}
	if got := out.Values(); got[0] != "1" || got[1] != "2" {
		t.Fatalf("got %v", got)
	}
	if got := out.Keys(); got[0] != "1" || got[1] != "2" {
		t.Fatalf("want re-keyed 1..n, got %v", got)
	}
}

func TestMapIndexNoMatchReturnsDefault(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("A", "1")
	out := callMap(t, lib, "index", MapValue(m), StringValue("Z"), StringValue("fallback")).AsMap()
	if v, _ := out.Get("1"); v != "fallback" {
		t.Fatalf("got %q", v)
	}
}

func TestMapIndexStringFallsBackToSearchPosition(t *testing.T) {
	lib := mapLib()
	if got := callMap(t, lib, "index", StringValue("hello"), StringValue("l")).AsString(); got != "3" {
		t.Fatalf("got %q", got)
	}
}

func TestMapUniqueDedupesByValue(t *testing.T) {
	lib := mapLib()
	m := NewMultiMap().With("a", "1").With("b", "2").With("c", "1")
	out := callMap(t, lib, "unique", MapValue(m)).AsMap()
	if out.Size() != 2 {
		t.Fatalf("want 2, got %d", out.Size())
	}
	if got := out.Keys(); got[0] != "a" || got[1] != "b" {
		t.Fatalf("want first occurrence kept, got %v", got)
	}
}
