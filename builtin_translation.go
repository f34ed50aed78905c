package interpolate

// Translation-module builtins delegate to an injectable Translator
// (evaluator.go). With no backend configured, every lookup misses and
// both builtins return "" — the Open Question in the design notes about
// gettext's backend-absent behavior is resolved by making the backend
// itself the injectable seam, the same way Rng is injectable, rather
// than hard-coding a specific catalog format into the evaluator.
func registerTranslationBuiltins(lib *Library, t Translator) {
	lib.register("translation", "gettext", unary(func(key string) string {
		if t == nil {
			return ""
		}
		if v, ok := t.Gettext(key); ok {
			return v
		}
		return key
	}), "translate a key, falling back to the key itself if no translation exists")

	lib.register("translation", "gettextornull", unary(func(key string) string {
		if t == nil {
			return ""
		}
		v, ok := t.Gettext(key)
		if !ok {
			return ""
		}
		return v
	}), "translate a key, or return empty if no translation exists")
}
