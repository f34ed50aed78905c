package interpolate

import (
	"strconv"
	"strings"
)

// MultiMap is an immutable, ordered, multi-valued key→value collection.
// Every mutating-looking operation returns a new MultiMap; the
// evaluator relies on this to let $set/$map build up bindings without
// aliasing bugs between sibling evaluations. A derived index keeps
// key lookups (has/get/entry) from degrading to a linear scan.
type MultiMap struct {
	pairs []Pair
	index map[string][]int
}

// Pair is one key/value entry. An entry's Key is "" when it has no key,
// such as a string promoted by Value.AsMap or a frexp/modf result part.
type Pair struct {
	Key   string
	Value string
}

// NewMultiMap returns the empty MultiMap.
func NewMultiMap() *MultiMap {
	return &MultiMap{}
}

// With appends one pair and returns the resulting MultiMap, leaving the
// receiver untouched.
func (m *MultiMap) With(key, value string) *MultiMap {
	pairs := make([]Pair, len(m.pairs)+1)
	copy(pairs, m.pairs)
	pairs[len(m.pairs)] = Pair{Key: key, Value: value}

	idx := make(map[string][]int, len(m.index)+1)
	for k, v := range m.index {
		idx[k] = append([]int(nil), v...)
	}
	idx[key] = append(idx[key], len(m.pairs))

	return &MultiMap{pairs: pairs, index: idx}
}

// FromPairs builds a MultiMap from an ordered slice of pairs.
func FromPairs(pairs []Pair) *MultiMap {
	m := NewMultiMap()
	for _, p := range pairs {
		m = m.With(p.Key, p.Value)
	}
	return m
}

// Pairs returns all entries in insertion order.
func (m *MultiMap) Pairs() []Pair {
	return m.pairs
}

// Keys returns every key in insertion order, including duplicates.
func (m *MultiMap) Keys() []string {
	out := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = p.Key
	}
	return out
}

// Values returns every value in insertion order.
func (m *MultiMap) Values() []string {
	out := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = p.Value
	}
	return out
}

// Size returns the number of entries.
func (m *MultiMap) Size() int { return len(m.pairs) }

// First returns the first entry, if any.
func (m *MultiMap) First() (Pair, bool) {
	if len(m.pairs) == 0 {
		return Pair{}, false
	}
	return m.pairs[0], true
}

// Last returns the last entry, if any.
func (m *MultiMap) Last() (Pair, bool) {
	if len(m.pairs) == 0 {
		return Pair{}, false
	}
	return m.pairs[len(m.pairs)-1], true
}

// NthEntry returns a shallow copy of the nth entry, 1-indexed, per
// spec's entry(n) operation.
func (m *MultiMap) NthEntry(n int) (Pair, bool) {
	if n < 1 || n > len(m.pairs) {
		return Pair{}, false
	}
	return m.pairs[n-1], true
}

// Has reports whether any entry carries the given key.
func (m *MultiMap) Has(key string) bool {
	idxs, ok := m.index[key]
	return ok && len(idxs) > 0
}

// Entry returns the first entry carrying the given key.
func (m *MultiMap) Entry(key string) (Pair, bool) {
	idxs, ok := m.index[key]
	if !ok || len(idxs) == 0 {
		return Pair{}, false
	}
	return m.pairs[idxs[0]], true
}

// Get returns the value of the first entry carrying the given key.
func (m *MultiMap) Get(key string) (string, bool) {
	p, ok := m.Entry(key)
	return p.Value, ok
}

// GetAll returns the values of every entry carrying the given key, in
// insertion order.
func (m *MultiMap) GetAll(key string) []string {
	idxs := m.index[key]
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = m.pairs[idx].Value
	}
	return out
}

// Unique returns a MultiMap keeping only the first occurrence of each
// distinct value, in the order those values first appeared.
func (m *MultiMap) Unique() *MultiMap {
	seen := make(map[string]bool, len(m.pairs))
	var out []Pair
	for _, p := range m.pairs {
		if seen[p.Value] {
			continue
		}
		seen[p.Value] = true
		out = append(out, p)
	}
	return FromPairs(out)
}

// Index returns a new MultiMap of every entry whose key is k, renumbered
// 1..n. If no entry carries k, the result is a single entry keyed "1"
// holding def.
func (m *MultiMap) Index(k, def string) *MultiMap {
	idxs := m.index[k]
	if len(idxs) == 0 {
		return NewMultiMap().With("1", def)
	}
	out := NewMultiMap()
	for i, idx := range idxs {
		out = out.With(strconv.Itoa(i+1), m.pairs[idx].Value)
	}
	return out
}

// ConcatValues joins the stringified values of entries i..j (1-indexed,
// inclusive) with sep. i<1 and j>size clamp to the full range.
func (m *MultiMap) ConcatValues(sep string, i, j int) string {
	n := len(m.pairs)
	if i < 1 {
		i = 1
	}
	if j < 1 || j > n {
		j = n
	}
	if i > j {
		return ""
	}
	vals := make([]string, 0, j-i+1)
	for idx := i; idx <= j; idx++ {
		vals = append(vals, m.pairs[idx-1].Value)
	}
	return strings.Join(vals, sep)
}

// Reindexed returns a MultiMap with the same values but keys renumbered
// 1..n, per map.list's single-MultiMap-argument behavior.
func (m *MultiMap) Reindexed() *MultiMap {
	out := NewMultiMap()
	for i, p := range m.pairs {
		out = out.With(strconv.Itoa(i+1), p.Value)
	}
	return out
}
