package interpolate

import "strconv"

// Mutator-module builtins are the handful of spec-named operations that
// touch state outside their own arguments: randomness (backed by the
// injectable Rng, rng.go) and $set (which needs direct *Env access and
// so stays evaluator-special-cased; it is registered here only so
// ListFunctions/Describe can surface "set" under this module, the same
// pattern builtin_map.go uses for "map").
func registerMutatorBuiltins(lib *Library, rng Rng) {
	lib.register("mutators", "randomseed", unary(func(a string) string {
		rng.Seed(int64(mustFloat(a)))
		return a
	}), "reseed the random generator")

	lib.register("mutators", "random", func(args []Value) Value {
		switch len(args) {
		case 0:
			return StringValue(formatFloat(rng.Gen()))
		case 1:
			hi := int64(mustFloat(argStr(args, 0)))
			return StringValue(formatInt(rng.GenRange(0, hi)))
		default:
			lo := int64(mustFloat(argStr(args, 0)))
			hi := int64(mustFloat(argStr(args, 1)))
			return StringValue(formatInt(rng.GenRange(lo, hi)))
		}
	}, "a random float in [0, 1) with no arguments, or a random integer in a given range")

	lib.register("mutators", "choose", func(args []Value) Value {
		if len(args) == 0 {
			return StringValue("")
		}
		if len(args) == 1 && args[0].Kind == VMap {
			vals := args[0].AsMap().Values()
			if len(vals) == 0 {
				return StringValue("")
			}
			return StringValue(vals[rng.Pick(len(vals))])
		}
		return args[rng.Pick(len(args))]
	}, "a random element chosen from a map's values, or from the argument list")

	lib.register("mutators", "set", func(args []Value) Value {
		return MapValue(NewMultiMap())
	}, "bind a token to a value (handled specially by the evaluator)")
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
