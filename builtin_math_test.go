package interpolate

import "testing"

func evalCallStr(t *testing.T, lib *Library, name string, args ...string) string {
	t.Helper()
	b, ok := lib.Lookup(name)
	if !ok {
		t.Fatalf("no such builtin %q", name)
	}
	vs := make([]Value, len(args))
	for i, a := range args {
		vs[i] = StringValue(a)
	}
	return b.Fn(vs).AsString()
}

func mathLib() *Library {
	lib := NewLibrary()
	registerMathBuiltins(lib)
	return lib
}

func TestMathAddSubtractMulDiv(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "add", "1", "2", "3"); got != "6" {
		t.Fatalf("add: got %q", got)
	}
	if got := evalCallStr(t, lib, "subtract", "5", "3"); got != "2" {
		t.Fatalf("subtract: got %q", got)
	}
	if got := evalCallStr(t, lib, "mul", "2", "3", "4"); got != "24" {
		t.Fatalf("mul: got %q", got)
	}
	if got := evalCallStr(t, lib, "div", "10", "4"); got != "2.5" {
		t.Fatalf("div: got %q", got)
	}
}

func TestMathDivByZeroIsAbsent(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "div", "1", "0"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestMathModByZeroIsAbsentAndFmod(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "mod", "1", "0"); got != "" {
		t.Fatalf("mod: got %q", got)
	}
	if got := evalCallStr(t, lib, "fmod", "7", "3"); got != "1" {
		t.Fatalf("fmod: got %q", got)
	}
}

func TestMathMinMaxNumeric(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "min", "3", "1", "2"); got != "1" {
		t.Fatalf("min: got %q", got)
	}
	if got := evalCallStr(t, lib, "max", "3", "1", "2"); got != "3" {
		t.Fatalf("max: got %q", got)
	}
}

func TestMathMinMaxFallBackToLexicalWhenNotAllNumeric(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "max", "apple", "banana", "3"); got != "banana" {
		t.Fatalf("max lexical fallback: got %q", got)
	}
	if got := evalCallStr(t, lib, "min", "apple", "banana", "3"); got != "3" {
		t.Fatalf("min lexical fallback: got %q", got)
	}
}

func TestMathFloorCeilAbsInt(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "floor", "2.9"); got != "2" {
		t.Fatalf("floor: got %q", got)
	}
	if got := evalCallStr(t, lib, "ceil", "2.1"); got != "3" {
		t.Fatalf("ceil: got %q", got)
	}
	if got := evalCallStr(t, lib, "abs", "-4"); got != "4" {
		t.Fatalf("abs: got %q", got)
	}
	if got := evalCallStr(t, lib, "int", "4.7"); got != "4" {
		t.Fatalf("int: got %q", got)
	}
}

func TestMathTrig(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "sin", "0"); got != "0" {
		t.Fatalf("sin: got %q", got)
	}
	if got := evalCallStr(t, lib, "cos", "0"); got != "1" {
		t.Fatalf("cos: got %q", got)
	}
	if got := evalCallStr(t, lib, "deg", "0"); got != "0" {
		t.Fatalf("deg: got %q", got)
	}
}

func TestMathPowLogExp(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "pow", "2", "10"); got != "1024" {
		t.Fatalf("pow: got %q", got)
	}
	if got := evalCallStr(t, lib, "log", "1"); got != "0" {
		t.Fatalf("log: got %q", got)
	}
}

func TestMathIsnan(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "isnan", "NaN"); got != "1" {
		t.Fatalf("isnan true: got %q", got)
	}
	if got := evalCallStr(t, lib, "isnan", "1"); got != "" {
		t.Fatalf("isnan false: got %q", got)
	}
}

func TestMathFrexpAndModfReturnMaps(t *testing.T) {
	lib := mathLib()
	b, _ := lib.Lookup("frexp")
	v := b.Fn([]Value{StringValue("8")})
	if v.AsMap().Size() != 2 {
		t.Fatalf("frexp: want a 2-entry map, got %+v", v)
	}

	b, _ = lib.Lookup("modf")
	v = b.Fn([]Value{StringValue("3.5")})
	if got := v.AsMap().Values(); len(got) != 2 || got[0] != "3" {
		t.Fatalf("modf: got %v", got)
	}
}

func TestMathPi(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "pi"); got != "3.141592653589793" {
		t.Fatalf("pi: got %q", got)
	}
}

func TestMathNonNumericIsAbsent(t *testing.T) {
	lib := mathLib()
	if got := evalCallStr(t, lib, "add", "1", "banana"); got != "" {
		t.Fatalf("got %q", got)
	}
}
