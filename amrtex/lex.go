package amrtex

import (
	"unicode"
)

type tokenKind int

const (
	tokLetter tokenKind = iota
	tokNumber
	tokCommand
	tokChar
	tokOpen
	tokClose
	tokSup
	tokSub
)

type token struct {
	kind tokenKind
	// text is the letter, number, operator rune or the command name without its
	// backslash.
	text string
	// pos and end are rune offsets into the equation.
	pos int
	end int
}

func lex(src []rune) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		r := src[i]
		start := i
		switch {
		case unicode.IsSpace(r):
			i++
			continue
		case r == '\\':
			i++
			if i >= len(src) {
				return nil, errorAt(start, `dangling \`)
			}
			if isASCIILetter(src[i]) {
				for i < len(src) && isASCIILetter(src[i]) {
					i++
				}
			} else {
				i++
			}
			toks = append(toks, token{kind: tokCommand, text: string(src[start+1 : i]), pos: start, end: i})
			continue
		case r == '{':
			toks = append(toks, token{kind: tokOpen, text: "{", pos: start, end: i + 1})
		case r == '}':
			toks = append(toks, token{kind: tokClose, text: "}", pos: start, end: i + 1})
		case r == '^':
			toks = append(toks, token{kind: tokSup, text: "^", pos: start, end: i + 1})
		case r == '_':
			toks = append(toks, token{kind: tokSub, text: "_", pos: start, end: i + 1})
		case r == '~':
			toks = append(toks, token{kind: tokCommand, text: " ", pos: start, end: i + 1})
		case unicode.IsDigit(r):
			i = scanNumber(src, i)
			toks = append(toks, token{kind: tokNumber, text: string(src[start:i]), pos: start, end: i})
			continue
		case unicode.IsLetter(r):
			toks = append(toks, token{kind: tokLetter, text: string(r), pos: start, end: i + 1})
		case r == '&' || r == '#' || r == '$':
			return nil, errorAt(start, "unsupported character %q", r)
		default:
			toks = append(toks, token{kind: tokChar, text: string(r), pos: start, end: i + 1})
		}
		i++
	}
	return toks, nil
}

// scanNumber returns the end of the number starting at i. A single decimal point
// is part of the number only when a digit follows it.
func scanNumber(src []rune, i int) int {
	for i < len(src) && unicode.IsDigit(src[i]) {
		i++
	}
	if i+1 < len(src) && src[i] == '.' && unicode.IsDigit(src[i+1]) {
		i++
		for i < len(src) && unicode.IsDigit(src[i]) {
			i++
		}
	}
	return i
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
