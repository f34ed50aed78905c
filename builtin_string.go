package interpolate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// String-module builtins. gsub's regex syntax is Go's regexp package
// (RE2): no pack repository depends on a third-party regex engine
// directly, and RE2's non-backtracking guarantee suits patterns that
// come from a template author rather than the host application.
// Indices throughout this module are 1-based, with negative indices
// wrapping from the end (resolveIndex1). first/last/concat/concats/len/
// index are registered in builtin_map.go instead: spec.md lists them
// under both string and map because the map module's versions are
// polymorphic and fall back to these same string semantics when their
// argument isn't a MultiMap, so there is exactly one flat builtin per
// name rather than two competing registrations.
func registerStringBuiltins(lib *Library) {
	lib.register("string", "str", unary(func(s string) string { return s }), "coerce a value to its string form")
	lib.register("string", "upper", unary(strings.ToUpper), "uppercase a string")
	lib.register("string", "lower", unary(strings.ToLower), "lowercase a string")

	lib.register("string", "reverse", unary(func(s string) string {
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r)
	}), "reverse a string by rune")

	lib.register("string", "trim", unary(strings.TrimSpace), "trim leading and trailing whitespace")
	lib.register("string", "trimleft", unary(func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }), "trim leading whitespace")
	lib.register("string", "trimright", unary(func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }), "trim trailing whitespace")

	lib.register("string", "contains", comparator(strings.Contains), "true if the first string contains the second")
	lib.register("string", "startswith", comparator(strings.HasPrefix), "true if the first string starts with the second")
	lib.register("string", "endswith", comparator(strings.HasSuffix), "true if the first string ends with the second")

	lib.register("string", "capitalize", unary(capitalize), "uppercase a string's first rune")
	lib.register("string", "punctuate", func(args []Value) Value {
		s := argStr(args, 0)
		mark := "."
		if len(args) > 1 {
			mark = argStr(args, 1)
		}
		return StringValue(punctuate(s, mark))
	}, "append a punctuation mark unless the string already ends with one")

	lib.register("string", "gsub", func(args []Value) Value {
		s := argStr(args, 0)
		pattern := argStr(args, 1)
		repl := argStr(args, 2)
		re, err := regexp.Compile(pattern)
		if err != nil {
			fail("invalid regular expression: " + err.Error())
		}
		return StringValue(re.ReplaceAllString(s, repl))
	}, "replace every regular-expression match (RE2 syntax) with a replacement")

	lib.register("string", "match", binary(func(s, pattern string) string {
		re, err := regexp.Compile(pattern)
		if err != nil {
			fail("invalid regular expression: " + err.Error())
		}
		if re.MatchString(s) {
			return "1"
		}
		return ""
	}), "true if a regular expression (RE2 syntax) matches anywhere in the string")

	lib.register("string", "sub", func(args []Value) Value {
		s := argStr(args, 0)
		runes := []rune(s)
		start, ok := resolveIndex1(int(mustFloat(argStr(args, 1))), len(runes))
		if !ok {
			return StringValue("")
		}
		end := len(runes)
		if len(args) > 2 {
			n := int(mustFloat(argStr(args, 2)))
			if n < 0 {
				n = 0
			}
			if start+n < end {
				end = start + n
			}
		}
		return StringValue(string(runes[start:end]))
	}, "substring from a 1-based (negative-wrapping) start, with an optional length")

	lib.register("string", "char", binary(func(s, n string) string {
		runes := []rune(s)
		i, ok := resolveIndex1(int(mustFloat(n)), len(runes))
		if !ok {
			fail("index out of range")
		}
		return string(runes[i])
	}), "the character at a 1-based (negative-wrapping) position")

	lib.register("string", "byte", binary(func(s, n string) string {
		b := []byte(s)
		i, ok := resolveIndex1(int(mustFloat(n)), len(b))
		if !ok {
			fail("index out of range")
		}
		return strconv.Itoa(int(b[i]))
	}), "the numeric byte value at a 1-based (negative-wrapping) position")

	lib.register("string", "rep", binary(func(a, b string) string {
		n := int(mustFloat(b))
		if n < 0 {
			fail("rep count must be non-negative")
		}
		return strings.Repeat(a, n)
	}), "repeat a string n times")
}

// resolveIndex1 converts a 1-based, possibly-negative index (negative
// indices count from the end, -1 being the last element) into a 0-based
// offset into a sequence of the given length. It reports false for 0 or
// any index that falls outside the sequence.
func resolveIndex1(i, length int) (int, bool) {
	switch {
	case i > 0:
		if i-1 < length {
			return i - 1, true
		}
	case i < 0:
		if p := length + i; p >= 0 {
			return p, true
		}
	}
	return 0, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func punctuate(s, mark string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if unicode.IsPunct(r[len(r)-1]) {
		return s
	}
	return s + mark
}

// ---- shared with builtin_map.go's polymorphic len/concat/concats/
// first/last/index, which fall back to these when their argument isn't
// a MultiMap. ----

func stringLen(s string) string {
	return strconv.Itoa(len([]rune(s)))
}

func stringConcat(ss []string) string {
	return strings.Join(ss, "")
}

func stringConcats(sep string, ss []string) string {
	return strings.Join(ss, sep)
}

func stringFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[0])
}

func stringLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[len(r)-1])
}

// stringIndexOf returns the 1-based position of needle's first
// occurrence in s, or "0" if absent.
func stringIndexOf(s, needle string) string {
	i := strings.Index(s, needle)
	if i < 0 {
		return "0"
	}
	return strconv.Itoa(len([]rune(s[:i])) + 1)
}
