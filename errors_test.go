package interpolate

import (
	"strings"
	"testing"
)

func TestErrorsAndWarningsWrapDiagnostics(t *testing.T) {
	root := mustParse(t, "$foo(bar")
	if len(Warnings(root)) != 1 {
		t.Fatalf("want 1 warning, got %d", len(Warnings(root)))
	}
	if len(Errors(root)) != 0 {
		t.Fatalf("want 0 errors, got %d", len(Errors(root)))
	}
}

func TestLineColSingleLine(t *testing.T) {
	line, col := lineCol("hello", 3)
	if line != 1 || col != 3 {
		t.Fatalf("got %d:%d", line, col)
	}
}

func TestLineColMultiLine(t *testing.T) {
	src := "ab\ncd\nef"
	line, col := lineCol(src, 5) // 'c' is byte index 3 (0-based) -> pos 4; 'd' pos 5
	if line != 2 {
		t.Fatalf("want line 2, got %d", line)
	}
	_ = col
}

func TestSnippetPointsAtRange(t *testing.T) {
	src := "hello world"
	snippet := Snippet(src, Range{7, 11})
	lines := strings.Split(snippet, "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if lines[0] != src {
		t.Fatalf("got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "      ^") {
		t.Fatalf("caret should align under 'world', got %q", lines[1])
	}
}

func TestPrettyErrorIncludesMessageAndSnippet(t *testing.T) {
	root := mustParse(t, "$foo(bar")
	d := root.Warnings[0]
	out := PrettyError("warning", "$foo(bar", d)
	if !strings.Contains(out, DiagWarnUntermFunc) {
		t.Fatalf("got %q", out)
	}
}
