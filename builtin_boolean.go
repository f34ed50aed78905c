package interpolate

import "strconv"

// Boolean-module builtins render as "1" for true, "" for false, kept
// consistent with Value.Truthy's empty-string-is-false rule: a literal
// "false" string would itself be truthy, so there is no literal word
// for false in this module's output. The conditional builtins (if,
// unless, ifelse) and the quantifiers (any, all) return one of their own
// argument values rather than "1"/"" — each argument is already a
// single merged Value by the time a Handler sees it (evalSeqValue
// concatenates a multi-node argument before dispatch), so returning a
// branch verbatim already gives "concat of the branch if multi-token"
// for free.
func registerBooleanBuiltins(lib *Library) {
	lib.register("boolean", "eq", comparator(func(a, b string) bool { return a == b }), "true if both arguments are equal strings")
	lib.register("boolean", "neq", comparator(func(a, b string) bool { return a != b }), "true if the arguments differ")

	lib.register("boolean", "lt", comparator(func(a, b string) bool { return numOrStrLess(a, b) }), "numeric (falling back to lexical) less-than")
	lib.register("boolean", "lte", comparator(func(a, b string) bool { return !numOrStrLess(b, a) }), "numeric (falling back to lexical) less-than-or-equal")
	lib.register("boolean", "gt", comparator(func(a, b string) bool { return numOrStrLess(b, a) }), "numeric (falling back to lexical) greater-than")
	lib.register("boolean", "gte", comparator(func(a, b string) bool { return !numOrStrLess(a, b) }), "numeric (falling back to lexical) greater-than-or-equal")

	lib.register("boolean", "not", unary(func(a string) string {
		if a == "" {
			return "1"
		}
		return ""
	}), "logical negation of truthiness")

	lib.register("boolean", "any", func(args []Value) Value {
		for _, a := range args {
			if a.Truthy() {
				return a
			}
		}
		return StringValue("")
	}, "the first truthy argument, or absent")

	lib.register("boolean", "all", func(args []Value) Value {
		if len(args) == 0 {
			return StringValue("")
		}
		for _, a := range args {
			if !a.Truthy() {
				return StringValue("")
			}
		}
		return args[len(args)-1]
	}, "the last argument if every argument is truthy, otherwise absent")

	lib.register("boolean", "if", func(args []Value) Value {
		if len(args) < 2 {
			return StringValue("")
		}
		if args[0].Truthy() {
			return args[1]
		}
		if len(args) > 2 {
			return args[2]
		}
		return StringValue("")
	}, "the second argument if the first is truthy, otherwise the third argument or absent")

	lib.register("boolean", "unless", func(args []Value) Value {
		if len(args) < 2 {
			return StringValue("")
		}
		if !args[0].Truthy() {
			return args[1]
		}
		if len(args) > 2 {
			return args[2]
		}
		return StringValue("")
	}, "the second argument if the first is falsy, otherwise the third argument or absent")

	lib.register("boolean", "ifelse", func(args []Value) Value {
		if len(args) < 3 {
			return StringValue("")
		}
		if args[0].Truthy() {
			return args[1]
		}
		return args[2]
	}, "the second argument if the first is truthy, otherwise the third argument")
}

// numOrStrLess compares numerically when both sides parse as numbers,
// and lexically otherwise, so $lt can order both "2" < "10" and
// "apple" < "banana" the way a template author would expect.
func numOrStrLess(a, b string) bool {
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	if aerr == nil && berr == nil {
		return af < bf
	}
	return a < b
}
