// parser.go — recursive-descent reader for the interpolation template
// grammar. The parser scans bytes directly off 1-indexed positions
// rather than going through a separate token stream: the grammar's
// "current context" determines where a run of literal text stops, so a
// conventional lexer would have to re-derive the same context anyway.
// Each reader method is a small state machine over byte positions, in
// the spirit of the teacher's hand-written lexer/parser pair, collapsed
// into one pass since there is no context-free tokenization to share
// between constructs here.
package interpolate

import "strings"

// ParseOptions controls which constructs the parser recognizes.
type ParseOptions struct {
	AllowTokens        bool
	AllowFunctions     bool
	AllowAtExpressions bool
	RaiseErrors        bool
	TreeNodeName       string
}

// DefaultParseOptions returns the parser defaults.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		AllowTokens:        true,
		AllowFunctions:     true,
		AllowAtExpressions: true,
		RaiseErrors:        false,
		TreeNodeName:       "tree",
	}
}

// textContext determines which bytes terminate a run of literal text.
type textContext int

const (
	ctxDefault textContext = iota
	ctxArgument
	ctxAtKV
	ctxString
)

func stopSet(ctx textContext) string {
	switch ctx {
	case ctxDefault:
		return "$@"
	case ctxArgument:
		return " $()"
	case ctxAtKV:
		return "$@:;()"
	case ctxString:
		return "$)"
	default:
		return "$@"
	}
}

func isEscapable(b byte) bool {
	switch b {
	case '$', '@', '(', ')', ':', ';':
		return true
	default:
		return false
	}
}

func isIdentByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

// strictAbort is panicked internally when RaiseErrors is set and carries
// the diagnostic that triggered the abort back up to Parse.
type strictAbort struct {
	diag Diagnostic
}

// ParseStrictError is returned by Parse when RaiseErrors aborts parsing.
type ParseStrictError struct {
	Diagnostic Diagnostic
}

func (e *ParseStrictError) Error() string {
	return e.Diagnostic.Message
}

// Parser holds the mutable scan position over a single source string.
// Positions are 1-indexed byte offsets.
type Parser struct {
	src  string
	pos  int // next byte to read is src[pos-1]; pos == len(src)+1 at EOF
	opts ParseOptions
	errs []Diagnostic
	warn []Diagnostic
}

// Parse produces a raw parse tree from template text.
func Parse(text string, opts ParseOptions) (*Node, error) {
	p := &Parser{src: text, pos: 1, opts: opts}

	var root *Node
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(strictAbort); !ok {
					panic(r)
				}
			}
		}()
		root = p.parseTree()
	}()

	if opts.RaiseErrors && len(p.errs) > 0 {
		return nil, &ParseStrictError{Diagnostic: p.errs[0]}
	}
	return root, nil
}

func (p *Parser) parseTree() *Node {
	root := &Node{Kind: KindTree, Source: p.src}

	for !p.atEOF() {
		child := p.readExpression(ctxDefault)
		if child == nil {
			start := p.pos
			p.addError(DiagBadChar, Range{start, start})
			p.advance() // avoid infinite loop on a byte nothing can consume
			continue
		}
		root.addChild(child)
	}
	root.Range = Range{1, len(p.src)}
	root.Errors = p.errs
	root.Warnings = p.warn
	return root
}

// ---- byte cursor helpers ----

func (p *Parser) atEOF() bool { return p.pos > len(p.src) }

func (p *Parser) peekByte() byte {
	if p.atEOF() {
		return 0
	}
	return p.src[p.pos-1]
}

func (p *Parser) peekByteAt(pos int) (byte, bool) {
	if pos < 1 || pos > len(p.src) {
		return 0, false
	}
	return p.src[pos-1], true
}

func (p *Parser) advance() {
	if !p.atEOF() {
		p.pos++
	}
}

func (p *Parser) addError(msg string, r Range) {
	d := Diagnostic{Message: msg, Range: r}
	p.errs = append(p.errs, d)
	if p.opts.RaiseErrors {
		panic(strictAbort{diag: d})
	}
}

func (p *Parser) addWarning(msg string, r Range) {
	p.warn = append(p.warn, Diagnostic{Message: msg, Range: r})
}

// skipSpacesOnce consumes a single run of ASCII spaces, for the
// leading-spaces-skipped-once rule inside at-expression keys and values.
func (p *Parser) skipSpacesOnce() {
	for p.peekByte() == ' ' {
		p.advance()
	}
}

// readSpaces consumes a run of space bytes and returns how many were read.
func (p *Parser) readSpaces() int {
	n := 0
	for p.peekByte() == ' ' {
		p.advance()
		n++
	}
	return n
}

// ---- dispatch ----

func (p *Parser) readExpression(ctx textContext) *Node {
	if n := p.readEscape(); n != nil {
		return n
	}
	if n := p.readFunction(); n != nil {
		return n
	}
	if n := p.readVariable(); n != nil {
		return n
	}
	if n := p.readAtExpression(); n != nil {
		return n
	}
	if n := p.readText(ctx); n != nil {
		return n
	}
	return p.readSpecialText()
}

// readText consumes a maximal run of bytes not in the context's
// exclusion set; fails (returns nil) if empty.
func (p *Parser) readText(ctx textContext) *Node {
	stop := stopSet(ctx)
	start := p.pos
	for !p.atEOF() && !strings.ContainsRune(stop, rune(p.peekByte())) {
		p.advance()
	}
	if p.pos == start {
		return nil
	}
	return &Node{Kind: KindText, Range: Range{start, p.pos - 1}, Value: p.src[start-1 : p.pos-1]}
}

// readSpecialText accepts one otherwise-stopping byte as literal text.
func (p *Parser) readSpecialText() *Node {
	if p.atEOF() {
		return nil
	}
	b := p.peekByte()
	if !isEscapable(b) {
		return nil
	}
	start := p.pos
	p.advance()
	return &Node{Kind: KindText, Range: Range{start, start}, Value: string(b)}
}

// readEscape matches '$' followed by one of $ @ ( ) : ;
func (p *Parser) readEscape() *Node {
	if p.peekByte() != '$' {
		return nil
	}
	nb, ok := p.peekByteAt(p.pos + 1)
	if !ok || !isEscapable(nb) {
		return nil
	}
	start := p.pos
	p.advance()
	p.advance()
	return &Node{Kind: KindEscape, Range: Range{start, p.pos - 1}, Value: string(nb)}
}

// readVariable matches $[A-Za-z0-9_]+
func (p *Parser) readVariable() *Node {
	if !p.opts.AllowTokens {
		return nil
	}
	if p.peekByte() != '$' {
		return nil
	}
	save := p.pos
	start := p.pos
	p.advance()
	nameStart := p.pos
	for isIdentByte(p.peekByte()) {
		p.advance()
	}
	if p.pos == nameStart {
		p.pos = save
		return nil
	}
	name := p.src[nameStart-1 : p.pos-1]
	return &Node{Kind: KindToken, Range: Range{start, p.pos - 1}, Value: name}
}

// readFunction matches $[A-Za-z0-9_]+( and parses arguments until the
// matching ')'.
func (p *Parser) readFunction() *Node {
	if !p.opts.AllowFunctions {
		return nil
	}
	if p.peekByte() != '$' {
		return nil
	}
	save := p.pos
	start := p.pos
	p.advance()
	nameStart := p.pos
	for isIdentByte(p.peekByte()) {
		p.advance()
	}
	if p.pos == nameStart || p.peekByte() != '(' {
		p.pos = save
		return nil
	}
	name := p.src[nameStart-1 : p.pos-1]
	p.advance() // consume '('

	call := &Node{Kind: KindCall, Range: Range{start, 0}, Value: name}

	flush := func(arg *Node) {
		if arg != nil && len(arg.Children) > 0 {
			arg.Range.End = p.pos - 1
			call.addChild(arg)
		}
	}
	newArg := func() *Node { return &Node{Kind: KindArgument, Range: Range{p.pos, p.pos - 1}} }

	curArg := newArg()
	for {
		if n := p.readSpaces(); n > 0 {
			flush(curArg)
			if p.peekByte() == ')' {
				curArg = nil
			} else {
				curArg = newArg()
			}
			continue
		}

		if p.atEOF() {
			// Rewind and try to salvage a bare token.
			p.pos = save
			if v := p.readVariable(); v != nil {
				p.addWarning(DiagWarnUntermFunc, Range{start, p.pos - 1})
				return v
			}
			p.pos = save
			p.addError(DiagUntermFunc, Range{start, start})
			return nil
		}

		if p.peekByte() == ')' {
			flush(curArg)
			p.advance()
			call.Range.End = p.pos - 1
			return call
		}

		var child *Node
		if child = p.readString(); child == nil {
			child = p.readExpression(ctxArgument)
		}
		if child == nil {
			p.addError(DiagBadChar, Range{p.pos, p.pos})
			return nil
		}
		if curArg == nil {
			curArg = newArg()
		}
		curArg.addChild(child)
	}
}

// readString matches '(' ... ')'. On EOF before the closing paren, the
// whole construct degrades to a single-byte text node containing '(' and
// the cursor resumes one byte past the opening paren.
func (p *Parser) readString() *Node {
	if p.peekByte() != '(' {
		return nil
	}
	start := p.pos
	openPos := p.pos
	p.advance()

	var children []*Node
	for {
		if p.atEOF() {
			p.pos = openPos + 1
			return &Node{Kind: KindText, Range: Range{openPos, openPos}, Value: "("}
		}
		if p.peekByte() == ')' {
			closePos := p.pos
			p.advance()
			return &Node{Kind: KindString, Range: Range{start, closePos}, Children: children}
		}
		if esc := p.readEscape(); esc != nil {
			children = append(children, esc)
			continue
		}
		if txt := p.readText(ctxString); txt != nil {
			children = append(children, txt)
			continue
		}
		// Stray '$' that isn't a valid escape: literal.
		b := p.peekByte()
		bp := p.pos
		p.advance()
		children = append(children, &Node{Kind: KindText, Range: Range{bp, bp}, Value: string(b)})
	}
}

// readAtExpression matches '@(' ... ')' with a key/value/semicolon/colon
// state machine: ';' delimits entries, ':' opens a value for the current
// key (inserting an empty key first if none was open, or if a value was
// already in progress), ')' closes the expression.
func (p *Parser) readAtExpression() *Node {
	if !p.opts.AllowAtExpressions {
		return nil
	}
	if p.peekByte() != '@' {
		return nil
	}
	nb, ok := p.peekByteAt(p.pos + 1)
	if !ok || nb != '(' {
		return nil
	}
	save := p.pos
	start := p.pos
	p.advance()
	p.advance()

	at := &Node{Kind: KindAtExpression, Range: Range{start, 0}}
	var keyNode, valueNode *Node

	flushEntry := func() {
		if keyNode != nil {
			at.addChild(keyNode)
		}
		if valueNode != nil {
			at.addChild(valueNode)
		}
		keyNode, valueNode = nil, nil
	}

	for {
		if p.atEOF() {
			p.pos = save
			p.addWarning(DiagUntermAt, Range{start, start})
			p.advance()
			return &Node{Kind: KindText, Range: Range{start, start}, Value: "@"}
		}

		b := p.peekByte()
		switch b {
		case ';':
			flushEntry()
			p.advance()
			continue
		case ':':
			if valueNode != nil {
				flushEntry()
				keyNode = &Node{Kind: KindAtKey, Range: Range{p.pos, p.pos - 1}}
			} else if keyNode == nil {
				keyNode = &Node{Kind: KindAtKey, Range: Range{p.pos, p.pos - 1}}
			}
			for p.peekByte() == ':' {
				p.advance()
			}
			valueNode = &Node{Kind: KindAtValue, Range: Range{p.pos, p.pos - 1}}
			p.skipSpacesOnce()
			continue
		case ')':
			flushEntry()
			p.advance()
			at.Range.End = p.pos - 1
			return at
		default:
			var target *Node
			if valueNode != nil {
				target = valueNode
			} else {
				if keyNode == nil {
					keyNode = &Node{Kind: KindAtKey, Range: Range{p.pos, p.pos - 1}}
					p.skipSpacesOnce()
				}
				target = keyNode
			}
			var child *Node
			if child = p.readString(); child == nil {
				child = p.readExpression(ctxAtKV)
			}
			if child == nil {
				p.addError(DiagBadChar, Range{p.pos, p.pos})
				return nil
			}
			target.addChild(child)
			target.Range.End = p.pos - 1
		}
	}
}
