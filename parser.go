package argonaut

import (
	"errors"
	"fmt"
)

// NodeAllocator builds a Node slice of the requested capacity. The default
// allocator just calls make; a caller that wants to pool or pre-size
// assembly buffers across many Parser instances supplies its own, e.g.
// backed by a sync.Pool.
type NodeAllocator interface {
	NewNodeSlice(capacity int) []Node
}

type defaultAllocator struct{}

func (defaultAllocator) NewNodeSlice(capacity int) []Node { return make([]Node, capacity) }

// Parser is a reusable recursive-descent JSON parser. It owns an assembly
// buffer (the contiguous store composite Nodes' children are carved out
// of), a per-recursion-depth scratch stack, and a ShadowTrie that amortises
// object key-sets across every parse the instance performs. A Parser is
// single-owner and not reentrant: calling Parse/ParseMulti while one is
// already running on the same instance is a programming error.
type Parser struct {
	workAlloc     NodeAllocator
	assemblyAlloc NodeAllocator
	trie          *shadowTrie

	state ParserState

	assembly         []Node
	assemblyLen      int
	assemblyCapacity int

	scratch [][]Node

	parsing bool
}

// NewParser creates a Parser using the default (make-based) allocator for
// both the work allocator slot and the assembly buffer.
func NewParser() *Parser {
	return NewParserWithAllocators(defaultAllocator{}, defaultAllocator{})
}

// NewParserWithAllocators creates a Parser with distinct allocators for
// transient work and for the assembly buffer itself. Only assemblyAlloc is
// called: workAlloc is stored on the Parser, but the scratch stacks grow
// with Go's built-in append and the trie allocates with make.
func NewParserWithAllocators(workAlloc, assemblyAlloc NodeAllocator) *Parser {
	return &Parser{
		workAlloc:     workAlloc,
		assemblyAlloc: assemblyAlloc,
		trie:          newShadowTrie(),
	}
}

// Close releases the Parser's buffers and trie. Go's garbage collector
// reclaims memory on its own, so Close is not required for correctness; it
// lets a pooled Parser drop large buffers promptly.
func (p *Parser) Close() error {
	p.assembly = nil
	p.scratch = nil
	p.trie = nil
	return nil
}

// Line returns the 1-based line of the parser's current cursor position,
// valid to inspect after an error return from Parse/ParseMulti.
func (p *Parser) Line() int { return p.state.Line() }

// Col returns the 1-based column of the parser's current cursor position.
func (p *Parser) Col() int { return p.state.Col() }

// View returns the unconsumed remainder of the most recent parse's input.
func (p *Parser) View() []byte { return p.state.View() }

// Parse parses src as a single JSON value, returning the root Node. The
// returned Node's array/object/multi children borrow from this Parser's
// assembly buffer and are only valid until the next call to Parse or
// ParseMulti on the same Parser. ParseOwned and ParseMultiOwned build into
// a separate buffer and leave this one untouched.
func (p *Parser) Parse(src []byte) (Node, error) {
	return p.parseUsing(src, func() (Node, error) { return p.parseTop(0) })
}

// ParseMulti parses src as a sequence of top-level values separated by
// whitespace and/or commas (a leading or trailing comma, after skipping
// whitespace, is tolerated), returning a synthesised multi Node spanning
// them. This grammar is intentionally not standard JSON: it exists for
// log-stream / NDJSON-like inputs where values run together.
func (p *Parser) ParseMulti(src []byte) (Node, error) {
	return p.parseUsing(src, func() (Node, error) { return p.parseMultiTop(0) })
}

// ParseOwned parses src like Parse, but builds the assembly buffer on
// alloc for the duration of the call and returns it to the caller as a
// Tree instead of retaining it. This Parser's own assembly buffer is
// restored unchanged afterward. The Tree's class pointers still borrow
// this Parser's ShadowTrie: the Parser must outlive the Tree.
func (p *Parser) ParseOwned(alloc NodeAllocator, src []byte) (*Tree, error) {
	return p.parseOwnedUsing(alloc, src, func() (Node, error) { return p.parseTop(0) })
}

// ParseMultiOwned is ParseOwned's ParseMulti counterpart.
func (p *Parser) ParseMultiOwned(alloc NodeAllocator, src []byte) (*Tree, error) {
	return p.parseOwnedUsing(alloc, src, func() (Node, error) { return p.parseMultiTop(0) })
}

// TakeAssembly relinquishes the Parser's current assembly buffer to the
// caller as a Tree and resets the Parser's own buffer to empty. Nodes
// already returned from a prior Parse/ParseMulti call remain valid,
// borrowing the now-caller-owned buffer, as long as this Parser (and its
// ShadowTrie) stays alive.
func (p *Parser) TakeAssembly() *Tree {
	owned := p.assembly[:p.assemblyLen]
	p.assembly = nil
	p.assemblyLen = 0
	p.assemblyCapacity = 0
	return &Tree{Nodes: owned}
}

// SetAssemblyAllocator drops the current assembly buffer and adopts alloc
// for the next one the Parser builds.
func (p *Parser) SetAssemblyAllocator(alloc NodeAllocator) {
	p.assembly = nil
	p.assemblyLen = 0
	p.assemblyCapacity = 0
	p.assemblyAlloc = alloc
}

func (p *Parser) parseOwnedUsing(alloc NodeAllocator, src []byte, top func() (Node, error)) (*Tree, error) {
	savedAlloc := p.assemblyAlloc
	savedAssembly := p.assembly
	savedLen := p.assemblyLen
	savedCap := p.assemblyCapacity

	p.assemblyAlloc = alloc
	p.assembly = nil
	p.assemblyLen = 0
	p.assemblyCapacity = 0

	_, err := p.parseUsing(src, top)

	owned := p.assembly[:p.assemblyLen]

	p.assemblyAlloc = savedAlloc
	p.assembly = savedAssembly
	p.assemblyLen = savedLen
	p.assemblyCapacity = savedCap

	if err != nil {
		return nil, err
	}
	return &Tree{Nodes: owned}, nil
}

// parseUsing runs the restart protocol around a single top-level parse
// function: on every call it resets the cursor and assembly length (but
// keeps whatever capacity earlier growth has already won), reserves the
// root slot, and runs top. If growing the assembly buffer mid-parse moved
// its backing storage, top's error is errRestart and the whole parse is
// retried from byte zero against the now-larger buffer; any other error,
// or success, ends the loop.
func (p *Parser) parseUsing(src []byte, top func() (Node, error)) (Node, error) {
	if p.parsing {
		panic("argonaut: Parser.Parse/ParseMulti called reentrantly")
	}
	p.parsing = true
	defer func() { p.parsing = false }()

	for {
		p.state = newParserState(src)
		p.resetAssemblyForParse()

		if _, restart := p.appendChildren([]Node{{}}); restart {
			continue
		}

		root, err := top()
		if err != nil {
			if errors.Is(err, errRestart) {
				continue
			}
			return Node{}, err
		}
		p.assembly[0] = root
		return p.assembly[0], nil
	}
}

func (p *Parser) resetAssemblyForParse() {
	p.assemblyLen = 0
	if cap(p.assembly) == 0 {
		p.assembly = p.assemblyAlloc.NewNodeSlice(16)
		p.assemblyCapacity = 16
	}
	p.assembly = p.assembly[:0]
}

// appendChildren copies children onto the end of the assembly buffer in
// one block, growing the buffer first if necessary. A growth event always
// allocates a fresh backing array (there is no in-place grow in Go), so it
// always reports restart=true; the caller must unwind to parseUsing
// without touching assembly-derived state any further.
func (p *Parser) appendChildren(children []Node) (span []Node, restart bool) {
	need := p.assemblyLen + len(children)
	if need > cap(p.assembly) {
		newCap := need * 4
		if newCap < p.assemblyCapacity {
			newCap = p.assemblyCapacity
		}
		newBuf := p.assemblyAlloc.NewNodeSlice(newCap)
		newBuf = newBuf[:p.assemblyLen]
		copy(newBuf, p.assembly[:p.assemblyLen])
		p.assembly = newBuf
		p.assemblyCapacity = newCap
		return nil, true
	}
	p.assembly = p.assembly[:need]
	start := p.assemblyLen
	copy(p.assembly[start:need], children)
	p.assemblyLen = need
	return p.assembly[start:need], false
}

// scratchAt returns the reusable scratch slice for recursion depth,
// truncated to zero length but retaining whatever capacity a previous
// parse left it with, extending the scratch stack if this is the deepest
// depth seen yet.
func (p *Parser) scratchAt(depth int) []Node {
	for depth >= len(p.scratch) {
		p.scratch = append(p.scratch, nil)
	}
	return p.scratch[depth][:0]
}

func (p *Parser) setScratch(depth int, s []Node) {
	p.scratch[depth] = s
}

func (p *Parser) parseTop(depth int) (Node, error) {
	p.state.SkipSpace()
	n, err := p.parseValue(depth)
	if err != nil {
		return Node{}, err
	}
	p.state.SkipSpace()
	if !p.state.Eof() {
		return Node{}, fmt.Errorf("%w: at line %d col %d", ErrJunkAfterInput, p.state.Line(), p.state.Col())
	}
	return n, nil
}

// parseMultiTop implements the non-standard top-level grammar documented
// on ParseMulti: whitespace- and/or comma-separated values, tolerating a
// leading or trailing comma.
func (p *Parser) parseMultiTop(depth int) (Node, error) {
	scratch := p.scratchAt(depth)

	p.state.SkipSpace()
	if b, ok := p.state.Peek(); ok && b == ',' {
		p.state.Next()
		p.state.SkipSpace()
	}

	for {
		p.state.SkipSpace()
		if p.state.Eof() {
			break
		}
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return Node{}, err
		}
		scratch = append(scratch, v)
		p.state.SkipSpace()
		if b, ok := p.state.Peek(); ok && b == ',' {
			p.state.Next()
			p.state.SkipSpace()
		}
	}

	p.setScratch(depth, scratch)
	span, restart := p.appendChildren(scratch)
	if restart {
		return Node{}, errRestart
	}
	return Node{kind: KindMulti, children: span}, nil
}

func (p *Parser) parseValue(depth int) (Node, error) {
	p.state.SkipSpace()
	b, ok := p.state.Peek()
	if !ok {
		return Node{}, p.errUnexpectedEOF()
	}
	switch {
	case b == 'n':
		if !p.state.CheckLiteral("null") {
			return Node{}, p.errBadToken()
		}
		return Node{kind: KindNull}, nil
	case b == 'f':
		if !p.state.CheckLiteral("false") {
			return Node{}, p.errBadToken()
		}
		return Node{kind: KindBool, b: false}, nil
	case b == 't':
		if !p.state.CheckLiteral("true") {
			return Node{}, p.errBadToken()
		}
		return Node{kind: KindBool, b: true}, nil
	case b == '"':
		raw, safe, err := p.scanString()
		if err != nil {
			return Node{}, err
		}
		if safe {
			return Node{kind: KindSafeString, text: raw}, nil
		}
		return Node{kind: KindJSONString, text: raw}, nil
	case b == '-' || (b >= '0' && b <= '9'):
		return p.scanNumber()
	case b == '[':
		return p.parseArray(depth)
	case b == '{':
		return p.parseObject(depth)
	default:
		return Node{}, p.errSyntax()
	}
}

func (p *Parser) parseArray(depth int) (Node, error) {
	p.state.Next() // '['
	p.state.SkipSpace()
	if b, ok := p.state.Peek(); ok && b == ']' {
		p.state.Next()
		span, restart := p.appendChildren(nil)
		if restart {
			return Node{}, errRestart
		}
		return Node{kind: KindArray, children: span}, nil
	}

	scratch := p.scratchAt(depth)
arrayLoop:
	for {
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return Node{}, err
		}
		scratch = append(scratch, v)
		p.state.SkipSpace()
		b, ok := p.state.Peek()
		if !ok {
			return Node{}, p.errUnexpectedEOF()
		}
		switch b {
		case ',':
			p.state.Next()
			continue arrayLoop
		case ']':
			p.state.Next()
			break arrayLoop
		default:
			return Node{}, p.errMissingComma()
		}
	}

	p.setScratch(depth, scratch)
	span, restart := p.appendChildren(scratch)
	if restart {
		return Node{}, errRestart
	}
	return Node{kind: KindArray, children: span}, nil
}

func (p *Parser) parseObject(depth int) (Node, error) {
	p.state.Next() // '{'
	p.state.SkipSpace()

	cur := p.trie.startWalk()

	if b, ok := p.state.Peek(); ok && b == '}' {
		p.state.Next()
		cls, err := cur.getClass()
		if err != nil {
			return Node{}, err
		}
		span, restart := p.appendChildren([]Node{{kind: KindClass, class: cls}})
		if restart {
			return Node{}, errRestart
		}
		return Node{kind: KindObject, children: span}, nil
	}

	scratch := p.scratchAt(depth)
objectLoop:
	for {
		p.state.SkipSpace()
		b, ok := p.state.Peek()
		if !ok {
			return Node{}, p.errUnexpectedEOF()
		}
		if b != '"' {
			return Node{}, fmt.Errorf("%w: at line %d col %d", ErrMissingKey, p.state.Line(), p.state.Col())
		}
		keyRaw, _, err := p.scanString()
		if err != nil {
			return Node{}, err
		}
		cur = cur.getNext(keyRaw)

		p.state.SkipSpace()
		bc, okc := p.state.Peek()
		if !okc {
			return Node{}, p.errUnexpectedEOF()
		}
		if bc != ':' {
			return Node{}, fmt.Errorf("%w: at line %d col %d", ErrMissingColon, p.state.Line(), p.state.Col())
		}
		p.state.Next()

		v, err := p.parseValue(depth + 1)
		if err != nil {
			return Node{}, err
		}
		scratch = append(scratch, v)

		p.state.SkipSpace()
		bn, okn := p.state.Peek()
		if !okn {
			return Node{}, p.errUnexpectedEOF()
		}
		switch bn {
		case ',':
			p.state.Next()
			continue objectLoop
		case '}':
			p.state.Next()
			break objectLoop
		default:
			return Node{}, p.errMissingComma()
		}
	}

	p.setScratch(depth, scratch)
	cls, err := cur.getClass()
	if err != nil {
		return Node{}, err
	}
	combined := make([]Node, len(scratch)+1)
	combined[0] = Node{kind: KindClass, class: cls}
	copy(combined[1:], scratch)
	span, restart := p.appendChildren(combined)
	if restart {
		return Node{}, errRestart
	}
	return Node{kind: KindObject, children: span}, nil
}

// scanString consumes a quoted string starting at the opening quote and
// returns its content (quotes excluded, escapes not decoded) and whether
// it contained no backslash at all (safe, loadable without unescaping).
func (p *Parser) scanString() (raw []byte, safe bool, err error) {
	p.state.Next() // opening quote
	p.state.SetMark()
	safe = true
	for {
		b, ok := p.state.Next()
		if !ok {
			p.state.TakeMarked()
			return nil, false, p.errMissingQuotes()
		}
		if b == '\\' {
			safe = false
			if _, ok := p.state.Next(); !ok {
				p.state.TakeMarked()
				return nil, false, p.errMissingQuotes()
			}
			continue
		}
		if b == '"' {
			span := p.state.TakeMarked()
			return span[:len(span)-1], safe, nil
		}
	}
}

func (p *Parser) scanNumber() (Node, error) {
	p.state.SetMark()
	if b, ok := p.state.Peek(); ok && b == '-' {
		p.state.Next()
	}
	if p.state.SkipDigits() == 0 {
		p.state.TakeMarked()
		return Node{}, p.errMissingDigits()
	}
	if b, ok := p.state.Peek(); ok && b == '.' {
		p.state.Next()
		if p.state.SkipDigits() == 0 {
			p.state.TakeMarked()
			return Node{}, p.errMissingDigits()
		}
	}
	if b, ok := p.state.Peek(); ok && (b == 'e' || b == 'E') {
		p.state.Next()
		if b2, ok2 := p.state.Peek(); ok2 && (b2 == '+' || b2 == '-') {
			p.state.Next()
		}
		if p.state.SkipDigits() == 0 {
			p.state.TakeMarked()
			return Node{}, p.errMissingDigits()
		}
	}
	return Node{kind: KindNumber, text: p.state.TakeMarked()}, nil
}

func (p *Parser) errSyntax() error {
	return fmt.Errorf("%w: at line %d col %d", ErrSyntax, p.state.Line(), p.state.Col())
}

func (p *Parser) errBadToken() error {
	return fmt.Errorf("%w: at line %d col %d", ErrBadToken, p.state.Line(), p.state.Col())
}

func (p *Parser) errUnexpectedEOF() error {
	return fmt.Errorf("%w: at line %d col %d", ErrUnexpectedEOF, p.state.Line(), p.state.Col())
}

func (p *Parser) errMissingQuotes() error {
	return fmt.Errorf("%w: at line %d col %d", ErrMissingQuotes, p.state.Line(), p.state.Col())
}

func (p *Parser) errMissingComma() error {
	return fmt.Errorf("%w: at line %d col %d", ErrMissingComma, p.state.Line(), p.state.Col())
}

func (p *Parser) errMissingDigits() error {
	return fmt.Errorf("%w: at line %d col %d", ErrMissingDigits, p.state.Line(), p.state.Col())
}
