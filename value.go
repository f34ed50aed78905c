package interpolate

// ValueKind tags the two shapes the evaluator ever produces or consumes:
// plain text, and an ordered multi-valued map. The evaluator passes
// arguments through in whichever shape they have; builtins coerce them
// with AsString/AsMap (convert below wraps the same coercions).
type ValueKind int

const (
	VString ValueKind = iota
	VMap
)

// Value is the tagged union threaded through evaluation.
type Value struct {
	Kind ValueKind
	Str  string
	Map  *MultiMap
}

func StringValue(s string) Value { return Value{Kind: VString, Str: s} }
func MapValue(m *MultiMap) Value { return Value{Kind: VMap, Map: m} }

// AsString stringifies a value. A MultiMap's string projection is
// first() or "" (spec §4.3) — not a concatenation of every value.
func (v Value) AsString() string {
	switch v.Kind {
	case VString:
		return v.Str
	case VMap:
		if v.Map == nil {
			return ""
		}
		p, ok := v.Map.First()
		if !ok {
			return ""
		}
		return p.Value
	default:
		return ""
	}
}

// AsMap coerces a value into a MultiMap. A string is promoted to a
// single-entry map with an empty key, so builtins that expect a map
// argument can accept plain text without a separate code path.
func (v Value) AsMap() *MultiMap {
	if v.Kind == VMap {
		if v.Map == nil {
			return NewMultiMap()
		}
		return v.Map
	}
	return NewMultiMap().With("", v.Str)
}

// Truthy implements the boolean-module convention: empty string and the
// empty map are false, everything else is true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case VString:
		return v.Str != ""
	case VMap:
		return v.Map != nil && v.Map.Size() > 0
	default:
		return false
	}
}

// convert coerces a Value to the ValueKind a builtin parameter declares.
func convert(v Value, want ValueKind) Value {
	if v.Kind == want {
		return v
	}
	if want == VMap {
		return MapValue(v.AsMap())
	}
	return StringValue(v.AsString())
}
