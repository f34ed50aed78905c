package interpolate

import (
	"strings"
	"time"
)

// Env is the mutable token environment threaded through one Evaluate
// call. MultiMap itself is immutable; Env holds the current snapshot
// and reassigns it on $set, so every node evaluated later in the same
// call — not just literal siblings — observes the update. This is the
// one piece of explicit mutable state in an otherwise purely
// tree-walking evaluator.
type Env struct {
	m *MultiMap
}

func (e *Env) Get(key string) (string, bool) { return e.m.Get(key) }
func (e *Env) Set(key, value string)         { e.m = e.m.With(key, value) }
func (e *Env) Snapshot() *MultiMap           { return e.m }

// Translator backs the translation module's gettext/gettextornull
// builtins. With a nil Translator both builtins return empty.
type Translator interface {
	Gettext(key string) (string, bool)
}

// EvalOptions configures an Evaluator.
type EvalOptions struct {
	LibraryInclude []string
	LibraryExclude []string
	Rng            Rng
	Translator     Translator
}

// Evaluator walks a postprocessed AST against a token environment,
// dispatching calls into a Library filtered by the include/exclude
// module policy.
type Evaluator struct {
	lib *Library
	rng Rng
}

// NewEvaluator builds an Evaluator with every builtin module registered
// (math, string, boolean, translation, map, mutators), then narrows the
// registry to opts.LibraryInclude/LibraryExclude.
func NewEvaluator(opts EvalOptions) *Evaluator {
	rng := opts.Rng
	if rng == nil {
		rng = NewRng(time.Now().UnixNano())
	}

	lib := NewLibrary()
	registerMathBuiltins(lib)
	registerStringBuiltins(lib)
	registerBooleanBuiltins(lib)
	registerTranslationBuiltins(lib, opts.Translator)
	registerMapBuiltins(lib)
	registerMutatorBuiltins(lib, rng)

	return &Evaluator{
		lib: lib.Filtered(opts.LibraryInclude, opts.LibraryExclude),
		rng: rng,
	}
}

// Evaluate renders a postprocessed template against a token
// environment. A nil tokens map is treated as empty.
func (ev *Evaluator) Evaluate(nodes []*AST, tokens *MultiMap) string {
	if tokens == nil {
		tokens = NewMultiMap()
	}
	env := &Env{m: tokens}
	return ev.evalSeqValue(nodes, env).AsString()
}

func (ev *Evaluator) ListModules() []string                { return ev.lib.ListModules() }
func (ev *Evaluator) ListFunctions(module string) []string { return ev.lib.ListFunctions(module) }
func (ev *Evaluator) Describe(name string) (string, bool)  { return ev.lib.Describe(name) }

// evalSeqValue implements mergeParts: a single node's native Value
// (string or map) passes through unchanged, so a lone @(...) argument
// reaches a builtin as a real map instead of its stringified form.
// Zero or multiple nodes always merge down to a string, concatenated in
// order with no separator.
func (ev *Evaluator) evalSeqValue(nodes []*AST, env *Env) Value {
	if len(nodes) == 1 {
		return ev.evalNode(nodes[0], env)
	}
	var b []byte
	for _, n := range nodes {
		b = append(b, ev.evalNode(n, env).AsString()...)
	}
	return StringValue(string(b))
}

func (ev *Evaluator) evalNode(n *AST, env *Env) Value {
	switch n.Kind {
	case ASTText:
		return StringValue(n.Text)
	case ASTToken:
		if v, ok := env.Get(n.Name); ok {
			return StringValue(v)
		}
		return StringValue("")
	case ASTCall:
		return ev.evalCall(n, env)
	case ASTAtExpr:
		return ev.evalAtExpr(n, env)
	default:
		return StringValue("")
	}
}

func (ev *Evaluator) evalArgs(argNodes [][]*AST, env *Env) []Value {
	args := make([]Value, len(argNodes))
	for i, nodes := range argNodes {
		args[i] = ev.evalSeqValue(nodes, env)
	}
	return args
}

func (ev *Evaluator) evalCall(n *AST, env *Env) Value {
	switch lowerASCII(n.Name) {
	case "set":
		return ev.evalSet(ev.evalArgs(n.Args, env), env)
	case "map":
		return ev.evalMap(ev.evalArgs(n.Args, env))
	}
	b, ok := ev.lib.Lookup(n.Name)
	if !ok {
		return StringValue("")
	}
	return b.Fn(ev.evalArgs(n.Args, env))
}

// evalSet implements $set(name value...): binds name in the shared
// environment to the concatenation of the remaining arguments. The call
// itself renders nothing, so "$set(_x 5)$_x" renders "5".
func (ev *Evaluator) evalSet(args []Value, env *Env) Value {
	if len(args) == 0 {
		return StringValue("")
	}
	name := args[0].AsString()
	var b []byte
	for _, a := range args[1:] {
		b = append(b, a.AsString()...)
	}
	value := string(b)
	env.Set(name, value)
	return StringValue("")
}

// evalMap implements $map(fname, mm, extraArgs...), the one higher-order
// combinator spec.md allows: look up the builtin named by the first
// argument and apply it to every value of the second argument's
// MultiMap (with any extra arguments appended to each call), preserving
// keys. An unresolvable builtin name yields an absent map.
func (ev *Evaluator) evalMap(args []Value) Value {
	if len(args) < 2 {
		return MapValue(NewMultiMap())
	}
	b, ok := ev.lib.Lookup(args[0].AsString())
	if !ok {
		return MapValue(NewMultiMap())
	}
	mm := args[1].AsMap()
	extra := args[2:]

	result := NewMultiMap()
	for _, p := range mm.Pairs() {
		callArgs := make([]Value, 0, len(extra)+1)
		callArgs = append(callArgs, StringValue(p.Value))
		callArgs = append(callArgs, extra...)
		result = result.With(p.Key, b.Fn(callArgs).AsString())
	}
	return MapValue(result)
}

// evalAtExpr implements spec.md §4.4's three-way at-expression rule:
//
//   - A bare entry (no ':' in the source) whose value is itself a
//     MultiMap, or a run of @(...) parts separated only by spaces,
//     flattens each map's pairs into the result unchanged
//     (so @(@(A;B) @(C)) flattens into @(A;B;C)). Otherwise the bare
//     value self-keys: it is emitted as (stringify(value), value),
//     provided the stringified form is truthy.
//   - An entry whose key evaluates to a MultiMap explodes into one
//     entry per value in that key map, each keyed by that value's own
//     stringification and sharing the entry's value
//     (@(@(A;B):C) -> @(A:C;B:C)).
//   - Otherwise the entry has a scalar key: emitted as (key, value)
//     provided the key is truthy.
func (ev *Evaluator) evalAtExpr(n *AST, env *Env) Value {
	result := NewMultiMap()
	for _, entry := range n.Entries {
		if !entry.HasKey && len(entry.Value) > 1 {
			spread := true
			for _, node := range entry.Value {
				if node.Kind != ASTAtExpr && (node.Kind != ASTText || strings.Trim(node.Text, " ") != "") {
					spread = false
				}
			}
			if spread {
				for _, node := range entry.Value {
					if node.Kind == ASTAtExpr {
						for _, p := range ev.evalNode(node, env).AsMap().Pairs() {
							result = result.With(p.Key, p.Value)
						}
					}
				}
				continue
			}
		}

		valueVal := ev.evalSeqValue(entry.Value, env)

		if !entry.HasKey {
			if valueVal.Kind == VMap {
				for _, p := range valueVal.AsMap().Pairs() {
					result = result.With(p.Key, p.Value)
				}
				continue
			}
			s := valueVal.AsString()
			if s != "" {
				result = result.With(s, s)
			}
			continue
		}

		keyVal := ev.evalSeqValue(entry.Key, env)
		valueStr := valueVal.AsString()

		if keyVal.Kind == VMap {
			for _, p := range keyVal.AsMap().Pairs() {
				result = result.With(p.Value, valueStr)
			}
			continue
		}

		keyStr := keyVal.AsString()
		if keyStr != "" {
			result = result.With(keyStr, valueStr)
		}
	}
	return MapValue(result)
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
