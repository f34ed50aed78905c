// Command interp is a REPL and one-shot runner for the interpolation
// engine. It mirrors the teacher's cmd/msg REPL shape (peterh/liner for
// history/line-editing, ANSI color for errors/warnings/results) on top
// of pflag for GNU-style flags and an optional koanf-loaded config file
// for default feature flags.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/peterh/liner"
	"github.com/spf13/pflag"

	"github.com/brightgrove/interpolate"
)

const (
	appName     = "interp"
	historyFile = ".interp_history"
	promptMain  = "interp> "
)

type config struct {
	AllowTokens        bool
	AllowFunctions     bool
	AllowAtExpressions bool
	LibraryExclude     []string
}

func defaultConfig() config {
	return config{AllowTokens: true, AllowFunctions: true, AllowAtExpressions: true}
}

func loadConfig() config {
	cfg := defaultConfig()

	k := koanf.New(".")
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".interp.yaml")
		if _, statErr := os.Stat(path); statErr == nil {
			_ = k.Load(file.Provider(path), yaml.Parser())
		}
	}
	_ = k.Load(env.Provider("INTERP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "INTERP_"))
	}), nil)

	if k.Exists("allowtokens") {
		cfg.AllowTokens = k.Bool("allowtokens")
	}
	if k.Exists("allowfunctions") {
		cfg.AllowFunctions = k.Bool("allowfunctions")
	}
	if k.Exists("allowatexpressions") {
		cfg.AllowAtExpressions = k.Bool("allowatexpressions")
	}
	if k.Exists("libraryexclude") {
		cfg.LibraryExclude = k.Strings("libraryexclude")
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	var (
		pattern  = pflag.StringP("pattern", "p", "", "template to interpolate (omit to start the REPL)")
		tokens   = pflag.StringArrayP("token", "t", nil, "a key=value token binding; repeatable")
		exclude  = pflag.StringArray("exclude", cfg.LibraryExclude, "builtin module to exclude")
		noTokens = pflag.Bool("no-tokens", !cfg.AllowTokens, "disable $token lookups")
		noFuncs  = pflag.Bool("no-functions", !cfg.AllowFunctions, "disable $func(...) calls")
		noAt     = pflag.Bool("no-at", !cfg.AllowAtExpressions, "disable @(...) expressions")
		demo     = pflag.Bool("demo", false, "run a handful of built-in sample templates")
	)
	pflag.Parse()

	opts := interpolate.DefaultOptions()
	opts.Parse.AllowTokens = !*noTokens
	opts.Parse.AllowFunctions = !*noFuncs
	opts.Parse.AllowAtExpressions = !*noAt
	opts.Eval.LibraryExclude = *exclude

	if *demo {
		runDemo(opts)
		return
	}

	if *pattern != "" {
		os.Exit(runOnce(*pattern, *tokens, opts))
	}

	os.Exit(runRepl(opts))
}

func runOnce(pattern string, tokenArgs []string, opts interpolate.Options) int {
	ip := interpolate.New(opts)
	root, err := ip.SetPattern(pattern)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		return 1
	}
	reportDiagnostics(pattern, root)

	result := ip.Interpolate(tokensFromArgs(tokenArgs))
	fmt.Println(result)
	return 0
}

func tokensFromArgs(args []string) *interpolate.MultiMap {
	m := interpolate.NewMultiMap()
	for _, a := range args {
		k, v, _ := strings.Cut(a, "=")
		m = m.With(k, v)
	}
	return m
}

func reportDiagnostics(pattern string, root *interpolate.Node) {
	for _, e := range interpolate.Errors(root) {
		fmt.Fprintln(os.Stderr, color.RedString(interpolate.PrettyError("error", pattern, e.Diagnostic)))
	}
	for _, w := range interpolate.Warnings(root) {
		fmt.Fprintln(os.Stderr, color.YellowString(interpolate.PrettyError("warning", pattern, w.Diagnostic)))
	}
}

func runRepl(opts interpolate.Options) int {
	fmt.Println(color.CyanString("interp REPL — :tokens, :warnings, :ast, :quit"))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ip := interpolate.New(opts)
	tokens := interpolate.NewMultiMap()
	var lastRoot *interpolate.Node
	var lastPattern string

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			fmt.Println()
			break
		}
		ln.AppendHistory(line)

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit":
				return 0
			case ":tokens":
				for _, p := range tokens.Pairs() {
					fmt.Printf("%s = %s\n", p.Key, p.Value)
				}
			case ":warnings":
				if lastRoot != nil {
					reportDiagnostics(lastPattern, lastRoot)
				}
			case ":ast":
				if lastRoot != nil {
					fmt.Println(dumpNode(lastRoot, 0))
				}
			default:
				if k, v, ok := strings.Cut(strings.TrimPrefix(trimmed, ":set "), "="); ok {
					tokens = tokens.With(k, v)
				} else {
					fmt.Println("unknown command")
				}
			}
			continue
		}

		root, err := ip.SetPattern(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
			continue
		}
		lastRoot, lastPattern = root, line
		reportDiagnostics(line, root)
		fmt.Println(color.GreenString(ip.Interpolate(tokens)))
	}
	return 0
}

func dumpNode(n *interpolate.Node, depth int) string {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s %q", indent, n.Kind, n.Value)
	for _, c := range n.Children {
		line += "\n" + dumpNode(c, depth+1)
	}
	return line
}
