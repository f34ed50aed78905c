package interpolate

import "strings"

// Handler is the uniform signature every builtin function implements:
// a call's already-evaluated arguments in, one merged Value out. The
// per-argument merging (each argument is itself a sequence of AST nodes
// collapsed to one Value) happens in the evaluator before Handler ever
// runs, the same way the teacher's RegisterNative handlers only ever see
// fully-evaluated Values and never raw AST.
type Handler func(args []Value) Value

// Builtin is one registered function: its dispatch name, the module it
// belongs to for the include/exclude policy, its handler, and a short
// doc string for the introspection surface (Describe/ListFunctions).
type Builtin struct {
	Name   string
	Module string
	Fn     Handler
	Doc    string
}

// Library is the case-insensitive builtin registry. A fresh Library
// contains nothing; NewEvaluator (evaluator.go) populates one
// with every module's functions.
type Library struct {
	byName  map[string]*Builtin
	order   []string
	modules []string
}

func NewLibrary() *Library {
	return &Library{byName: map[string]*Builtin{}}
}

// domainFailure is the panic value fail() raises; try() recovers it
// (and any other panic) and degrades the call to an absent result
// instead of letting it cross the public Interpolate boundary.
type domainFailure struct{ msg string }

// fail aborts the current builtin with a domain error. Handlers call
// this for invalid arguments (e.g. a non-numeric string passed to a
// math builtin) instead of returning a sentinel value.
func fail(msg string) {
	panic(domainFailure{msg})
}

// try wraps a handler so any panic — a fail() call or a genuine runtime
// error such as an out-of-range slice — degrades to an absent (empty
// string) result rather than propagating out of Interpolate.
func try(h Handler) Handler {
	return func(args []Value) (result Value) {
		defer func() {
			if recover() != nil {
				result = StringValue("")
			}
		}()
		return h(args)
	}
}

func (l *Library) register(module, name string, fn Handler, doc string) {
	key := strings.ToLower(name)
	if _, exists := l.byName[key]; !exists {
		l.order = append(l.order, key)
	}
	found := false
	for _, m := range l.modules {
		if m == module {
			found = true
			break
		}
	}
	if !found {
		l.modules = append(l.modules, module)
	}
	l.byName[key] = &Builtin{Name: name, Module: module, Fn: try(fn), Doc: doc}
}

// Lookup resolves a call name case-insensitively.
func (l *Library) Lookup(name string) (*Builtin, bool) {
	b, ok := l.byName[strings.ToLower(name)]
	return b, ok
}

// ListModules returns the registered module names in registration order.
func (l *Library) ListModules() []string {
	return append([]string(nil), l.modules...)
}

// ListFunctions returns the function names belonging to a module, in
// registration order. An empty module returns every function.
func (l *Library) ListFunctions(module string) []string {
	var out []string
	for _, key := range l.order {
		b := l.byName[key]
		if module == "" || b.Module == module {
			out = append(out, b.Name)
		}
	}
	return out
}

// Describe returns a builtin's doc string.
func (l *Library) Describe(name string) (string, bool) {
	b, ok := l.Lookup(name)
	if !ok {
		return "", false
	}
	return b.Doc, true
}

// Filtered returns a Library restricted by the libraryInclude/
// libraryExclude module policy (spec §6): include, if non-empty, is an
// allow-list of module names; exclude then removes module names from
// whatever include (or the full set) produced.
func (l *Library) Filtered(include, exclude []string) *Library {
	inc := toSet(include)
	exc := toSet(exclude)
	out := NewLibrary()
	for _, key := range l.order {
		b := l.byName[key]
		if len(inc) > 0 && !inc[b.Module] {
			continue
		}
		if exc[b.Module] {
			continue
		}
		out.register(b.Module, b.Name, b.Fn, b.Doc)
	}
	return out
}

func toSet(xs []string) map[string]bool {
	if len(xs) == 0 {
		return nil
	}
	s := make(map[string]bool, len(xs))
	for _, x := range xs {
		s[x] = true
	}
	return s
}

// ---- handler adapters ----
//
// These mirror the teacher's higher-order ParamSpec/handler helpers:
// most builtins are a thin string transform, and writing the
// args-unpacking boilerplate by hand for each one invites mismatched
// arg counts. Each adapter takes the transform and returns a Handler.

// firstToString applies f to the first argument's string form. Missing
// arguments are treated as "".
func firstToString(f func(string) string) Handler {
	return func(args []Value) Value {
		return StringValue(f(argStr(args, 0)))
	}
}

// unary is an alias of firstToString kept for call-site clarity where a
// builtin is conceptually one-argument (spec §4.4 naming).
func unary(f func(string) string) Handler {
	return firstToString(f)
}

// binary applies f to the first two arguments' string forms.
func binary(f func(a, b string) string) Handler {
	return func(args []Value) Value {
		return StringValue(f(argStr(args, 0), argStr(args, 1)))
	}
}

// unaryList applies f to every argument's string form at once, for
// builtins that take a variable number of arguments (e.g. concat-style
// string joins, min/max).
func unaryList(f func([]string) string) Handler {
	return func(args []Value) Value {
		ss := make([]string, len(args))
		for i, a := range args {
			ss[i] = a.AsString()
		}
		return StringValue(f(ss))
	}
}

// concatenateArgs joins every argument's string form with sep.
func concatenateArgs(sep string) Handler {
	return unaryList(func(ss []string) string { return strings.Join(ss, sep) })
}

// comparator builds a boolean-module builtin: true renders as "1",
// false as "" so it stays consistent with Value.Truthy (any non-empty
// string is true).
func comparator(cmp func(a, b string) bool) Handler {
	return func(args []Value) Value {
		if cmp(argStr(args, 0), argStr(args, 1)) {
			return StringValue("1")
		}
		return StringValue("")
	}
}

func argStr(args []Value, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i].AsString()
}

func argMap(args []Value, i int) *MultiMap {
	if i < 0 || i >= len(args) {
		return NewMultiMap()
	}
	return args[i].AsMap()
}
