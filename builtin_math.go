package interpolate

import (
	"math"
	"strconv"
)

// Math-module builtins operate on strings parsed as float64, the same
// permissive convert-or-fail convention the teacher's builtin_core.go
// ParamSpec handlers use for numeric arguments, except failures here
// degrade to an absent result (via try, see library.go) instead of a
// typed runtime error. random lives in builtin_mutators.go —
// spec.md places randomness under the mutators module, not math.
func registerMathBuiltins(lib *Library) {
	lib.register("math", "pi", func(args []Value) Value {
		return StringValue(formatFloat(math.Pi))
	}, "the constant pi")

	lib.register("math", "isnan", unary(func(a string) string {
		if math.IsNaN(mustFloat(a)) {
			return "1"
		}
		return ""
	}), "true if a number is NaN")

	lib.register("math", "abs", unary(func(a string) string {
		return formatFloat(math.Abs(mustFloat(a)))
	}), "absolute value of a number")

	lib.register("math", "acos", unary(func(a string) string { return formatFloat(math.Acos(mustFloat(a))) }), "arccosine, in radians")
	lib.register("math", "asin", unary(func(a string) string { return formatFloat(math.Asin(mustFloat(a))) }), "arcsine, in radians")
	lib.register("math", "atan", unary(func(a string) string { return formatFloat(math.Atan(mustFloat(a))) }), "arctangent, in radians")
	lib.register("math", "atan2", binary(func(a, b string) string {
		return formatFloat(math.Atan2(mustFloat(a), mustFloat(b)))
	}), "two-argument arctangent, in radians")

	lib.register("math", "ceil", unary(func(a string) string {
		return formatFloat(math.Ceil(mustFloat(a)))
	}), "round a number up")

	lib.register("math", "cos", unary(func(a string) string { return formatFloat(math.Cos(mustFloat(a))) }), "cosine of a radian angle")
	lib.register("math", "cosh", unary(func(a string) string { return formatFloat(math.Cosh(mustFloat(a))) }), "hyperbolic cosine")

	lib.register("math", "deg", unary(func(a string) string {
		return formatFloat(mustFloat(a) * 180 / math.Pi)
	}), "radians to degrees")

	lib.register("math", "div", binary(func(a, b string) string {
		bd := mustFloat(b)
		if bd == 0 {
			fail("division by zero")
		}
		return formatFloat(mustFloat(a) / bd)
	}), "divide the first argument by the second")

	lib.register("math", "exp", unary(func(a string) string { return formatFloat(math.Exp(mustFloat(a))) }), "e raised to a number")

	lib.register("math", "floor", unary(func(a string) string {
		return formatFloat(math.Floor(mustFloat(a)))
	}), "round a number down")

	lib.register("math", "fmod", binary(func(a, b string) string {
		return formatFloat(math.Mod(mustFloat(a), mustFloat(b)))
	}), "C-style floating-point remainder")

	lib.register("math", "frexp", unaryValue(func(a string) Value {
		frac, exp := math.Frexp(mustFloat(a))
		return MapValue(NewMultiMap().With("", formatFloat(frac)).With("", strconv.Itoa(exp)))
	}), "decompose a number into a fraction and a power-of-two exponent")

	lib.register("math", "int", unary(func(a string) string {
		return formatFloat(math.Trunc(mustFloat(a)))
	}), "truncate a number toward zero")

	lib.register("math", "ldexp", binary(func(a, b string) string {
		return formatFloat(math.Ldexp(mustFloat(a), int(mustFloat(b))))
	}), "a number times 2 raised to an exponent")

	lib.register("math", "log", unary(func(a string) string { return formatFloat(math.Log(mustFloat(a))) }), "natural logarithm")
	lib.register("math", "log10", unary(func(a string) string { return formatFloat(math.Log10(mustFloat(a))) }), "base-10 logarithm")

	lib.register("math", "max", unaryList(func(ss []string) string {
		if len(ss) == 0 {
			fail("max requires at least one argument")
		}
		return numOrStrExtreme(ss, false)
	}), "largest of its arguments, compared numerically if all parse as numbers, otherwise lexically")

	lib.register("math", "min", unaryList(func(ss []string) string {
		if len(ss) == 0 {
			fail("min requires at least one argument")
		}
		return numOrStrExtreme(ss, true)
	}), "smallest of its arguments, compared numerically if all parse as numbers, otherwise lexically")

	lib.register("math", "mod", binary(func(a, b string) string {
		bd := mustFloat(b)
		if bd == 0 {
			fail("modulo by zero")
		}
		return formatFloat(math.Mod(mustFloat(a), bd))
	}), "remainder of the first argument divided by the second")

	lib.register("math", "modf", unaryValue(func(a string) Value {
		ip, frac := math.Modf(mustFloat(a))
		return MapValue(NewMultiMap().With("", formatFloat(ip)).With("", formatFloat(frac)))
	}), "split a number into its integer and fractional parts")

	lib.register("math", "mul", unaryList(func(ss []string) string {
		return formatFloat(reduceFloats(ss, 1, func(a, b float64) float64 { return a * b }))
	}), "multiply every argument as a number")

	lib.register("math", "num", unary(func(a string) string {
		return formatFloat(mustFloat(a))
	}), "coerce a string to its canonical numeric form")

	lib.register("math", "pow", binary(func(a, b string) string {
		return formatFloat(math.Pow(mustFloat(a), mustFloat(b)))
	}), "the first argument raised to the second")

	lib.register("math", "rad", unary(func(a string) string {
		return formatFloat(mustFloat(a) * math.Pi / 180)
	}), "degrees to radians")

	lib.register("math", "sin", unary(func(a string) string { return formatFloat(math.Sin(mustFloat(a))) }), "sine of a radian angle")
	lib.register("math", "sinh", unary(func(a string) string { return formatFloat(math.Sinh(mustFloat(a))) }), "hyperbolic sine")
	lib.register("math", "sqrt", unary(func(a string) string { return formatFloat(math.Sqrt(mustFloat(a))) }), "square root")

	lib.register("math", "subtract", binary(func(a, b string) string {
		return formatFloat(mustFloat(a) - mustFloat(b))
	}), "subtract the second argument from the first")

	lib.register("math", "tan", unary(func(a string) string { return formatFloat(math.Tan(mustFloat(a))) }), "tangent of a radian angle")
	lib.register("math", "tanh", unary(func(a string) string { return formatFloat(math.Tanh(mustFloat(a))) }), "hyperbolic tangent")

	lib.register("math", "add", unaryList(func(ss []string) string {
		return formatFloat(reduceFloats(ss, 0, func(a, b float64) float64 { return a + b }))
	}), "sum every argument as a number")
}

// numOrStrExtreme picks the smallest (wantMin) or largest element of ss,
// comparing numerically when every element parses as a number and
// lexically otherwise.
func numOrStrExtreme(ss []string, wantMin bool) string {
	numeric := true
	floats := make([]float64, len(ss))
	for i, s := range ss {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			numeric = false
			break
		}
		floats[i] = f
	}
	if numeric {
		m := floats[0]
		mi := 0
		for i, f := range floats[1:] {
			if (wantMin && f < m) || (!wantMin && f > m) {
				m = f
				mi = i + 1
			}
		}
		return ss[mi]
	}
	m := ss[0]
	for _, s := range ss[1:] {
		if (wantMin && s < m) || (!wantMin && s > m) {
			m = s
		}
	}
	return m
}

func mustFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fail("not a number: " + s)
	}
	return f
}

func reduceFloats(ss []string, identity float64, f func(a, b float64) float64) float64 {
	acc := identity
	for _, s := range ss {
		acc = f(acc, mustFloat(s))
	}
	return acc
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// unaryValue adapts a single-string-argument function that returns a
// Value (rather than a plain string) into a Handler, for the few math
// builtins (frexp, modf) whose natural result is a pair rather than a
// scalar.
func unaryValue(f func(a string) Value) Handler {
	return func(args []Value) Value {
		return f(argStr(args, 0))
	}
}
