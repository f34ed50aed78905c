package interpolate

import "testing"

func boolLib() *Library {
	lib := NewLibrary()
	registerBooleanBuiltins(lib)
	return lib
}

func callBool(t *testing.T, lib *Library, name string, args ...Value) Value {
	t.Helper()
	b, ok := lib.Lookup(name)
	if !ok {
		t.Fatalf("no such builtin %q", name)
	}
	return b.Fn(args)
}

func sv(ss ...string) []Value {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = StringValue(s)
	}
	return vs
}

func TestBooleanEqNeq(t *testing.T) {
	lib := boolLib()
	if got := evalCallStr(t, lib, "eq", "a", "a"); got != "1" {
		t.Fatalf("eq: got %q", got)
	}
	if got := evalCallStr(t, lib, "eq", "a", "b"); got != "" {
		t.Fatalf("eq mismatch: got %q", got)
	}
	if got := evalCallStr(t, lib, "neq", "a", "b"); got != "1" {
		t.Fatalf("neq: got %q", got)
	}
}

func TestBooleanNumericComparisonPrefersNumbers(t *testing.T) {
	lib := boolLib()
	if got := evalCallStr(t, lib, "lt", "2", "10"); got != "1" {
		t.Fatalf("2 < 10 numerically: got %q", got)
	}
	if got := evalCallStr(t, lib, "gt", "10", "2"); got != "1" {
		t.Fatalf("10 > 2 numerically: got %q", got)
	}
}

func TestBooleanComparisonFallsBackToLexical(t *testing.T) {
	lib := boolLib()
	if got := evalCallStr(t, lib, "lt", "apple", "banana"); got != "1" {
		t.Fatalf("lexical lt: got %q", got)
	}
}

func TestBooleanLteGte(t *testing.T) {
	lib := boolLib()
	if got := evalCallStr(t, lib, "lte", "2", "2"); got != "1" {
		t.Fatalf("lte equal: got %q", got)
	}
	if got := evalCallStr(t, lib, "gte", "2", "2"); got != "1" {
		t.Fatalf("gte equal: got %q", got)
	}
}

func TestBooleanNot(t *testing.T) {
	lib := boolLib()
	if got := evalCallStr(t, lib, "not", ""); got != "1" {
		t.Fatalf("not empty: got %q", got)
	}
	if got := evalCallStr(t, lib, "not", "x"); got != "" {
		t.Fatalf("not truthy: got %q", got)
	}
}

func TestBooleanAny(t *testing.T) {
	lib := boolLib()
	if got := callBool(t, lib, "any", sv("", "", "x")...).AsString(); got != "x" {
		t.Fatalf("any: want first truthy, got %q", got)
	}
	if got := callBool(t, lib, "any", sv("", "")...).AsString(); got != "" {
		t.Fatalf("any: want absent when none truthy, got %q", got)
	}
}

func TestBooleanAll(t *testing.T) {
	lib := boolLib()
	if got := callBool(t, lib, "all", sv("x", "y", "z")...).AsString(); got != "z" {
		t.Fatalf("all: want last argument when every argument is truthy, got %q", got)
	}
	if got := callBool(t, lib, "all", sv("x", "", "z")...).AsString(); got != "" {
		t.Fatalf("all: want absent when any argument is falsy, got %q", got)
	}
}

func TestBooleanIf(t *testing.T) {
	lib := boolLib()
	if got := callBool(t, lib, "if", sv("1", "hello world")...).AsString(); got != "hello world" {
		t.Fatalf(`want "hello world", got %q`, got)
	}
	if got := callBool(t, lib, "if", sv("", "hello world")...).AsString(); got != "" {
		t.Fatalf("want absent when condition is falsy, got %q", got)
	}
	if got := callBool(t, lib, "if", sv("", "then", "else")...).AsString(); got != "else" {
		t.Fatalf("want else branch, got %q", got)
	}
}

func TestBooleanUnless(t *testing.T) {
	lib := boolLib()
	if got := callBool(t, lib, "unless", sv("", "shown")...).AsString(); got != "shown" {
		t.Fatalf("want branch when condition is falsy, got %q", got)
	}
	if got := callBool(t, lib, "unless", sv("1", "shown")...).AsString(); got != "" {
		t.Fatalf("want absent when condition is truthy, got %q", got)
	}
}

func TestBooleanIfelse(t *testing.T) {
	lib := boolLib()
	if got := callBool(t, lib, "ifelse", sv("1", "then", "else")...).AsString(); got != "then" {
		t.Fatalf("got %q", got)
	}
	if got := callBool(t, lib, "ifelse", sv("", "then", "else")...).AsString(); got != "else" {
		t.Fatalf("got %q", got)
	}
}
