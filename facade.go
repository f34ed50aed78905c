package interpolate

// Options configures an Interpolator end to end: what the parser
// accepts, and which builtin modules the evaluator exposes.
type Options struct {
	Parse ParseOptions
	Eval  EvalOptions
}

// DefaultOptions returns the facade defaults.
func DefaultOptions() Options {
	return Options{Parse: DefaultParseOptions(), Eval: EvalOptions{}}
}

// Interpolator is the public entry point: parse a template once, then
// render it against any number of token sets.
type Interpolator struct {
	opts Options
	eval *Evaluator

	pattern string
	ast     []*AST
	root    *Node
}

// New builds an Interpolator with the given options.
func New(opts Options) *Interpolator {
	return &Interpolator{opts: opts, eval: NewEvaluator(opts.Eval)}
}

// SetPattern parses template text and caches the result. It returns the
// raw parse tree (for Errors/Warnings/diagnostics) and an error only
// when opts.Parse.RaiseErrors aborted parsing.
func (ip *Interpolator) SetPattern(text string) (*Node, error) {
	root, err := Parse(text, ip.opts.Parse)
	if err != nil {
		return nil, err
	}
	ip.pattern = text
	ip.root = root
	ip.ast = Postprocess(root)
	return root, nil
}

// Interpolate renders the last pattern set with SetPattern against the
// given tokens. A nil tokens map renders with no bindings.
func (ip *Interpolator) Interpolate(tokens *MultiMap) string {
	return ip.eval.Evaluate(ip.ast, tokens)
}

// Interpolate is the one-shot convenience form of New+SetPattern+
// Interpolate, for callers that don't need to reuse a parsed template.
func Interpolate(text string, tokens *MultiMap, opts Options) (string, error) {
	ip := New(opts)
	if _, err := ip.SetPattern(text); err != nil {
		return "", err
	}
	return ip.Interpolate(tokens), nil
}

// Root returns the most recently parsed raw tree, or nil.
func (ip *Interpolator) Root() *Node { return ip.root }

// ListModules, ListFunctions and Describe expose the evaluator's
// builtin-documentation registry (see library.go).
func (ip *Interpolator) ListModules() []string                { return ip.eval.ListModules() }
func (ip *Interpolator) ListFunctions(module string) []string { return ip.eval.ListFunctions(module) }
func (ip *Interpolator) Describe(name string) (string, bool)  { return ip.eval.Describe(name) }
