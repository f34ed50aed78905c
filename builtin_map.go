package interpolate

import "strconv"

// Map-module builtins operate on MultiMap's own accessors (multimap.go).
// len, concat, concats, first, last and index are polymorphic per
// spec.md §4.4: given a MultiMap they use the map-shaped operation;
// given anything else (a plain string argument) they fall back to the
// equivalent string-module behavior in builtin_string.go, so a template
// author can call, say, $len on either a map or a bare string.
func registerMapBuiltins(lib *Library) {
	lib.register("map", "list", func(args []Value) Value {
		if len(args) == 1 && args[0].Kind == VMap {
			return MapValue(args[0].AsMap().Reindexed())
		}
		m := NewMultiMap()
		for i, a := range args {
			m = m.With(strconv.Itoa(i+1), a.AsString())
		}
		return MapValue(m)
	}, "a single map argument re-keyed 1..n; otherwise its positional arguments wrapped into a map")

	// map is the $map(fname, mm, extraArgs...) combinator. The evaluator
	// special-dispatches the call "map" before ever consulting the
	// library (evaluator.go's evalCall), since applying a builtin by name
	// to every value of a MultiMap needs the library itself, not just an
	// argument list — this registration exists only so ListFunctions/
	// Describe can still surface "map" under this module.
	lib.register("map", "map", func(args []Value) Value {
		return MapValue(NewMultiMap())
	}, "apply a named builtin to every value of a map, preserving keys (handled specially by the evaluator)")

	lib.register("map", "len", func(args []Value) Value {
		if len(args) >= 1 && args[0].Kind == VMap {
			return StringValue(strconv.Itoa(args[0].AsMap().Size()))
		}
		return StringValue(stringLen(argStr(args, 0)))
	}, "size of a map, or the rune-length of a string")

	lib.register("map", "concat", func(args []Value) Value {
		if len(args) == 1 && args[0].Kind == VMap {
			mm := args[0].AsMap()
			return StringValue(mm.ConcatValues("", 1, mm.Size()))
		}
		ss := make([]string, len(args))
		for i, a := range args {
			ss[i] = a.AsString()
		}
		return StringValue(stringConcat(ss))
	}, "join a map's stringified values with no separator, or concatenate plain string arguments")

	lib.register("map", "concats", func(args []Value) Value {
		if len(args) == 2 && args[0].Kind == VMap {
			mm := args[0].AsMap()
			return StringValue(mm.ConcatValues(argStr(args, 1), 1, mm.Size()))
		}
		sep := argStr(args, 0)
		ss := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			ss = append(ss, a.AsString())
		}
		return StringValue(stringConcats(sep, ss))
	}, "join a map's stringified values with a separator, or join plain string arguments with a separator")

	lib.register("map", "nthvalue", func(args []Value) Value {
		n := int(mustFloat(argStr(args, 1)))
		p, ok := argMap(args, 0).NthEntry(n)
		if !ok {
			return StringValue("")
		}
		return StringValue(p.Value)
	}, "the value of the nth entry (1-indexed), or absent")

	lib.register("map", "first", func(args []Value) Value {
		if len(args) >= 1 && args[0].Kind == VMap {
			p, ok := args[0].AsMap().First()
			if !ok {
				return StringValue("")
			}
			return StringValue(p.Value)
		}
		return StringValue(stringFirst(argStr(args, 0)))
	}, "the value of a map's first entry, or a string's first character")

	lib.register("map", "last", func(args []Value) Value {
		if len(args) >= 1 && args[0].Kind == VMap {
			p, ok := args[0].AsMap().Last()
			if !ok {
				return StringValue("")
			}
			return StringValue(p.Value)
		}
		return StringValue(stringLast(argStr(args, 0)))
	}, "the value of a map's last entry, or a string's last character")

	lib.register("map", "has", func(args []Value) Value {
		if argMap(args, 0).Has(argStr(args, 1)) {
			return StringValue("1")
		}
		return StringValue("")
	}, "true if a map has an entry for the given key")

	lib.register("map", "get", func(args []Value) Value {
		def := ""
		if len(args) > 2 {
			def = argStr(args, 2)
		}
		v, ok := argMap(args, 0).Get(argStr(args, 1))
		if !ok {
			return StringValue(def)
		}
		return StringValue(v)
	}, "the value of the first entry for the given key, or a default")

	lib.register("map", "index", func(args []Value) Value {
		if len(args) >= 1 && args[0].Kind == VMap {
			def := ""
			if len(args) > 2 {
				def = argStr(args, 2)
			}
			return MapValue(args[0].AsMap().Index(argStr(args, 1), def))
		}
		return StringValue(stringIndexOf(argStr(args, 0), argStr(args, 1)))
	}, "a map re-keyed 1..n from every entry matching a key, or a string's 1-based search position")

	lib.register("map", "unique", func(args []Value) Value {
		return MapValue(argMap(args, 0).Unique())
	}, "drop every entry whose value already appeared earlier")
}
