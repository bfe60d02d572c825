package amrtex

type node struct {
	tag      string
	text     string
	attrs    [][2]string
	children []*node
}

func leaf(tag, text string) *node {
	return &node{tag: tag, text: text}
}

func container(tag string, children ...*node) *node {
	return &node{tag: tag, children: children}
}

// wrap returns the only child as is and anything else as an mrow.
func wrap(children []*node) *node {
	if len(children) == 1 {
		return children[0]
	}
	return container("mrow", children...)
}

type parser struct {
	src  []rune
	toks []token
	i    int
}

// parse parses a whole equation into the children of the top level mrow.
func parse(latex string) ([]*node, error) {
	src := []rune(latex)
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, errorAt(0, "empty equation")
	}
	p := &parser{src: src, toks: toks}
	return p.parseList(false, false)
}

func (p *parser) eof() bool {
	return p.i >= len(p.toks)
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	p.i++
	return t
}

func (p *parser) endPos() int {
	return len(p.src)
}

// parseList parses nodes until EOF, the } closing a group or the \right closing a
// \left. The closing token is not consumed.
func (p *parser) parseList(inGroup, inLeft bool) ([]*node, error) {
	var out []*node
	for !p.eof() {
		t := p.peek()
		if t.kind == tokClose {
			if inGroup {
				return out, nil
			}
			return nil, errorAt(t.pos, "unmatched }")
		}
		if t.kind == tokCommand && t.text == "right" {
			if inLeft {
				return out, nil
			}
			return nil, errorAt(t.pos, `\right without matching \left`)
		}
		n, err := p.parseScripted()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if inGroup {
		return nil, errorAt(p.endPos(), "missing }")
	}
	if inLeft {
		return nil, errorAt(p.endPos(), `\left without matching \right`)
	}
	return out, nil
}

func (p *parser) parseScripted() (*node, error) {
	var base *node
	if t := p.peek(); t.kind == tokSup || t.kind == tokSub {
		base = container("mrow")
	} else {
		var err error
		base, err = p.parseAtom()
		if err != nil {
			return nil, err
		}
	}

	var sub, sup *node
	for !p.eof() {
		t := p.peek()
		if t.kind != tokSup && t.kind != tokSub {
			break
		}
		p.next()
		arg, err := p.parseArg(t)
		if err != nil {
			return nil, err
		}
		if t.kind == tokSup {
			if sup != nil {
				return nil, errorAt(t.pos, "double superscript")
			}
			sup = arg
		} else {
			if sub != nil {
				return nil, errorAt(t.pos, "double subscript")
			}
			sub = arg
		}
	}

	switch {
	case sub != nil && sup != nil:
		return container("msubsup", base, sub, sup), nil
	case sub != nil:
		return container("msub", base, sub), nil
	case sup != nil:
		return container("msup", base, sup), nil
	default:
		return base, nil
	}
}

// parseArg parses the argument of a script or command: a braced group or a
// single atom.
func (p *parser) parseArg(owner token) (*node, error) {
	if p.eof() {
		return nil, errorAt(owner.pos, "missing argument for %s", describe(owner))
	}
	t := p.peek()
	switch t.kind {
	case tokOpen:
		p.next()
		children, err := p.parseGroupBody(t)
		if err != nil {
			return nil, err
		}
		return wrap(children), nil
	case tokClose, tokSup, tokSub:
		return nil, errorAt(t.pos, "missing argument for %s", describe(owner))
	}
	return p.parseAtom()
}

func (p *parser) parseGroupBody(open token) ([]*node, error) {
	children, err := p.parseList(true, false)
	if err != nil {
		return nil, err
	}
	if p.eof() {
		return nil, errorAt(open.pos, "missing }")
	}
	p.next()
	return children, nil
}

func (p *parser) parseAtom() (*node, error) {
	t := p.next()
	switch t.kind {
	case tokLetter:
		return leaf("mi", t.text), nil
	case tokNumber:
		return leaf("mn", t.text), nil
	case tokChar:
		if s, ok := chars[[]rune(t.text)[0]]; ok {
			return leaf("mo", s), nil
		}
		return leaf("mo", t.text), nil
	case tokOpen:
		children, err := p.parseGroupBody(t)
		if err != nil {
			return nil, err
		}
		return container("mrow", children...), nil
	case tokCommand:
		return p.parseCommand(t)
	default:
		return nil, errorAt(t.pos, "unexpected %s", describe(t))
	}
}

func (p *parser) parseCommand(t token) (*node, error) {
	name := t.text
	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := p.parseArg(t)
		if err != nil {
			return nil, err
		}
		den, err := p.parseArg(t)
		if err != nil {
			return nil, err
		}
		return container("mfrac", num, den), nil
	case "sqrt":
		return p.parseSqrt(t)
	case "left":
		return p.parseLeft(t)
	case "mathrm", "operatorname":
		s, err := p.rawGroup(t)
		if err != nil {
			return nil, err
		}
		n := leaf("mi", s)
		n.attrs = [][2]string{{"mathvariant", "normal"}}
		return n, nil
	case "mathbf":
		s, err := p.rawGroup(t)
		if err != nil {
			return nil, err
		}
		n := leaf("mi", s)
		n.attrs = [][2]string{{"mathvariant", "bold"}}
		return n, nil
	case "mathit":
		s, err := p.rawGroup(t)
		if err != nil {
			return nil, err
		}
		return leaf("mi", s), nil
	case "text", "textrm", "mbox":
		s, err := p.rawGroup(t)
		if err != nil {
			return nil, err
		}
		return leaf("mtext", s), nil
	}

	if s, ok := greek[name]; ok {
		return leaf("mi", s), nil
	}
	if s, ok := identifiers[name]; ok {
		return leaf("mi", s), nil
	}
	if s, ok := operators[name]; ok {
		return leaf("mo", s), nil
	}
	if functions[name] {
		return leaf("mi", name), nil
	}
	if w, ok := spaces[name]; ok {
		n := leaf("mspace", "")
		n.attrs = [][2]string{{"width", w}}
		return n, nil
	}
	return nil, errorAt(t.pos, `unknown command \%s`, name)
}

func (p *parser) parseSqrt(t token) (*node, error) {
	var index []*node
	if !p.eof() && p.peek().kind == tokChar && p.peek().text == "[" {
		open := p.next()
		for {
			if p.eof() {
				return nil, errorAt(open.pos, "missing ]")
			}
			if nt := p.peek(); nt.kind == tokChar && nt.text == "]" {
				p.next()
				break
			}
			n, err := p.parseScripted()
			if err != nil {
				return nil, err
			}
			index = append(index, n)
		}
	}
	arg, err := p.parseArg(t)
	if err != nil {
		return nil, err
	}
	if index != nil {
		return container("mroot", arg, wrap(index)), nil
	}
	return container("msqrt", arg), nil
}

func (p *parser) parseLeft(t token) (*node, error) {
	open, err := p.delimiter(t)
	if err != nil {
		return nil, err
	}
	children, err := p.parseList(false, true)
	if err != nil {
		return nil, err
	}
	right := p.next()
	closing, err := p.delimiter(right)
	if err != nil {
		return nil, err
	}

	var out []*node
	if open != "" {
		out = append(out, leaf("mo", open))
	}
	out = append(out, children...)
	if closing != "" {
		out = append(out, leaf("mo", closing))
	}
	return container("mrow", out...), nil
}

func (p *parser) delimiter(owner token) (string, error) {
	if p.eof() {
		return "", errorAt(owner.pos, `missing delimiter after \%s`, owner.text)
	}
	t := p.next()
	key := t.text
	if t.kind == tokCommand {
		key = `\` + t.text
	}
	s, ok := delimiters[key]
	if !ok {
		return "", errorAt(t.pos, `invalid delimiter %q after \%s`, key, owner.text)
	}
	return s, nil
}

// rawGroup returns the unparsed source of the braced group following a text
// command.
func (p *parser) rawGroup(owner token) (string, error) {
	if p.eof() || p.peek().kind != tokOpen {
		return "", errorAt(owner.pos, `missing argument for \%s`, owner.text)
	}
	open := p.next()
	depth := 1
	for !p.eof() {
		t := p.next()
		switch t.kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth == 0 {
				return string(p.src[open.end:t.pos]), nil
			}
		}
	}
	return "", errorAt(open.pos, "missing }")
}

func describe(t token) string {
	switch t.kind {
	case tokCommand:
		return `\` + t.text
	default:
		return t.text
	}
}
