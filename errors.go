package interpolate

import (
	"fmt"
	"strings"
)

// ParseError and ParseWarning are the diagnostic records attached to a
// parsed tree. They wrap the same Diagnostic data node.go already
// carries; the separate named types exist so callers can type-switch on
// severity without inspecting a field.
type ParseError struct{ Diagnostic }
type ParseWarning struct{ Diagnostic }

// Errors and Warnings convert a parsed root's flat Diagnostic slices
// into the typed forms above.
func Errors(root *Node) []ParseError {
	out := make([]ParseError, len(root.Errors))
	for i, d := range root.Errors {
		out[i] = ParseError{d}
	}
	return out
}

func Warnings(root *Node) []ParseWarning {
	out := make([]ParseWarning, len(root.Warnings))
	for i, d := range root.Warnings {
		out[i] = ParseWarning{d}
	}
	return out
}

// lineCol converts a 1-indexed byte offset into 1-indexed line/column,
// for templates that happen to span multiple lines.
func lineCol(src string, pos int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < pos-1 && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Snippet renders a caret-annotated view of src around a diagnostic's
// byte range, in the teacher's errors.go style: the offending line,
// with a caret line underneath pointing at the range.
func Snippet(src string, r Range) string {
	lineStart := strings.LastIndexByte(src[:clampPos(src, r.Start)-1], '\n') + 1
	lineEndRel := strings.IndexByte(src[clampPos(src, r.Start)-1:], '\n')
	var lineEnd int
	if lineEndRel < 0 {
		lineEnd = len(src)
	} else {
		lineEnd = clampPos(src, r.Start) - 1 + lineEndRel
	}
	line := src[lineStart:lineEnd]

	_, col := lineCol(src, r.Start)
	width := r.End - r.Start + 1
	if width < 1 {
		width = 1
	}
	caret := strings.Repeat(" ", col-1) + strings.Repeat("^", width)
	return line + "\n" + caret
}

func clampPos(src string, pos int) int {
	if pos < 1 {
		return 1
	}
	if pos > len(src)+1 {
		return len(src) + 1
	}
	return pos
}

// PrettyError renders a one-line header plus the caret snippet, the
// layout the teacher's prettyErrorStringLabeled uses for CLI/test output.
func PrettyError(label, src string, d Diagnostic) string {
	line, col := lineCol(src, d.Range.Start)
	return fmt.Sprintf("%s in %s at %d:%d: %s\n%s", label, "template", line, col, d.Message, Snippet(src, d.Range))
}
