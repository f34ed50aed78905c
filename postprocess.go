package interpolate

// Postprocess collapses a raw parse tree into the typed AST the evaluator
// walks. It performs two jobs at once: it drops the wrapper kinds that
// only existed to guide the parser (argument, at_key, at_value), and it
// merges adjacent text-producing nodes (Text and Escape both become
// literal text) so the evaluator never has to special-case runs of
// trivial siblings.
func Postprocess(root *Node) []*AST {
	return postprocessChildren(root.Children)
}

func postprocessChildren(children []*Node) []*AST {
	var out []*AST
	var pendingText string
	havePending := false

	flush := func() {
		if havePending {
			out = append(out, &AST{Kind: ASTText, Text: pendingText})
			pendingText = ""
			havePending = false
		}
	}

	for _, c := range children {
		switch c.Kind {
		case KindText:
			pendingText += c.Value
			havePending = true
		case KindEscape:
			pendingText += c.Value
			havePending = true
		case KindToken:
			flush()
			out = append(out, &AST{Kind: ASTToken, Name: c.Value, Range: c.Range})
		case KindCall:
			flush()
			out = append(out, postprocessCall(c))
		case KindAtExpression:
			flush()
			out = append(out, postprocessAtExpr(c))
		case KindString:
			pendingText += stringLiteralText(c)
			havePending = true
		default:
			flush()
		}
	}
	flush()
	return out
}

// stringLiteralText concatenates a string literal's content. A string
// literal's children are always Text/Escape nodes (readString never
// opens a token/call/at-expression), so the whole literal collapses to
// one run of text that can be folded into the surrounding pending-text
// accumulator instead of being spliced in as already-postprocessed
// sibling nodes.
func stringLiteralText(c *Node) string {
	var b []byte
	for _, ch := range c.Children {
		b = append(b, ch.Value...)
	}
	return string(b)
}

func postprocessCall(c *Node) *AST {
	args := make([][]*AST, 0, len(c.Children))
	for _, argNode := range c.Children {
		args = append(args, postprocessChildren(argNode.Children))
	}
	return &AST{Kind: ASTCall, Name: c.Value, Args: args, Range: c.Range}
}

func postprocessAtExpr(c *Node) *AST {
	var entries []AtEntry
	i := 0
	for i < len(c.Children) {
		child := c.Children[i]
		if child.Kind != KindAtKey {
			// Malformed tree shape (shouldn't happen from the parser); skip.
			i++
			continue
		}
		keyContent := postprocessChildren(child.Children)
		if i+1 < len(c.Children) && c.Children[i+1].Kind == KindAtValue {
			valNode := c.Children[i+1]
			entries = append(entries, AtEntry{
				HasKey: true,
				Key:    keyContent,
				Value:  postprocessChildren(valNode.Children),
			})
			i += 2
			continue
		}
		// Bare key, no ':' seen: promote to a value-only entry.
		entries = append(entries, AtEntry{Value: keyContent})
		i++
	}
	return &AST{Kind: ASTAtExpr, Entries: entries, Range: c.Range}
}
