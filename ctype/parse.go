package ctype

import (
	"errors"
	"fmt"
	"strings"
)

// Errors
var (
	ErrEmptyType       = errors.New("ctype: empty type")
	ErrUnexpectedToken = errors.New("ctype: unexpected token")
	ErrUnbalanced      = errors.New("ctype: unbalanced brackets")
)

// builtinWords are identifiers that can only be part of a base type, never
// a declarator name.
var builtinWords = map[string]bool{
	"void":     true,
	"bool":     true,
	"char":     true,
	"wchar_t":  true,
	"short":    true,
	"int":      true,
	"long":     true,
	"float":    true,
	"double":   true,
	"signed":   true,
	"unsigned": true,
}

// elaborated keywords introduce a tag name that belongs to the base type.
var elaborated = map[string]bool{
	"struct": true,
	"union":  true,
	"class":  true,
	"enum":   true,
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokStar
	tokAmp
	tokAmpAmp
	tokArray
)

type token struct {
	kind tokenKind
	text string
}

// lexer walks a declaration string one token at a time.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) consume() byte {
	c := l.peek()
	if l.pos < len(l.input) {
		l.pos++
	}
	return c
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	c := l.peek()
	switch {
	case c == 0:
		return token{kind: tokEOF}, nil
	case c == '*':
		l.consume()
		return token{kind: tokStar, text: "*"}, nil
	case c == '&':
		l.consume()
		if l.peek() == '&' {
			l.consume()
			return token{kind: tokAmpAmp, text: "&&"}, nil
		}
		return token{kind: tokAmp, text: "&"}, nil
	case c == '[':
		start := l.pos + 1
		for l.pos < len(l.input) && l.input[l.pos] != ']' {
			l.pos++
		}
		if l.pos >= len(l.input) {
			return token{}, ErrUnbalanced
		}
		size := strings.TrimSpace(l.input[start:l.pos])
		l.consume()
		return token{kind: tokArray, text: size}, nil
	case isIdentStart(c) || c == ':':
		return l.ident()
	default:
		return token{}, fmt.Errorf("%w %q in %q", ErrUnexpectedToken, c, l.input)
	}
}

// ident reads a possibly qualified, possibly templated name such as
// "std::vector<Foo *>::iterator".
func (l *lexer) ident() (token, error) {
	var b strings.Builder
	for {
		if strings.HasPrefix(l.input[l.pos:], "::") {
			b.WriteString("::")
			l.pos += 2
			continue
		}
		c := l.peek()
		if isIdentChar(c) {
			b.WriteByte(l.consume())
			continue
		}
		if c == '<' {
			args, err := l.templateArgs()
			if err != nil {
				return token{}, err
			}
			b.WriteString(args)
			continue
		}
		break
	}
	if b.Len() == 0 {
		return token{}, fmt.Errorf("%w %q in %q", ErrUnexpectedToken, l.peek(), l.input)
	}
	return token{kind: tokIdent, text: b.String()}, nil
}

func (l *lexer) templateArgs() (string, error) {
	start := l.pos
	depth := 0
	for l.pos < len(l.input) {
		switch l.consume() {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return l.input[start:l.pos], nil
			}
		}
	}
	return "", ErrUnbalanced
}

func tokenize(s string) ([]token, error) {
	l := &lexer{input: s}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// ParseType parses a type expression without a declarator name.
func ParseType(s string) (Type, error) {
	t, name, err := parseDecl(s)
	if err != nil {
		return Type{}, err
	}
	if name != "" {
		return Type{}, fmt.Errorf("%w %q in type %q", ErrUnexpectedToken, name, s)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error. Intended for
// constants and tests.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// parseDecl parses "type [name]" and splits off the declarator name if
// there is one.
func parseDecl(s string) (Type, string, error) {
	toks, err := tokenize(s)
	if err != nil {
		return Type{}, "", err
	}

	var (
		t        Type
		words    []string
		name     string
		inDecls  bool
		nameDone bool
	)
	for i, tok := range toks {
		switch tok.kind {
		case tokIdent:
			switch tok.text {
			case "const", "volatile":
				if inDecls && len(t.Decls) > 0 && t.Decls[len(t.Decls)-1].Kind == DeclPointer {
					last := &t.Decls[len(t.Decls)-1]
					if tok.text == "const" {
						last.Const = true
					} else {
						last.Volatile = true
					}
				} else if tok.text == "const" {
					t.Const = true
				} else {
					t.Volatile = true
				}
				continue
			}
			if nameDone {
				return Type{}, "", fmt.Errorf("%w %q in %q", ErrUnexpectedToken, tok.text, s)
			}
			if inDecls || isTrailingName(words, tok.text, toks[i+1:]) {
				name = tok.text
				nameDone = true
				continue
			}
			words = append(words, tok.text)
		case tokStar:
			if nameDone {
				return Type{}, "", fmt.Errorf("%w %q in %q", ErrUnexpectedToken, tok.text, s)
			}
			inDecls = true
			t.Decls = append(t.Decls, Declarator{Kind: DeclPointer})
		case tokAmp, tokAmpAmp:
			if nameDone {
				return Type{}, "", fmt.Errorf("%w %q in %q", ErrUnexpectedToken, tok.text, s)
			}
			inDecls = true
			kind := DeclReference
			if tok.kind == tokAmpAmp {
				kind = DeclRValueReference
			}
			t.Decls = append(t.Decls, Declarator{Kind: kind})
		case tokArray:
			inDecls = true
			t.Decls = append(t.Decls, Declarator{Kind: DeclArray, Size: tok.text})
		}
	}

	if len(words) == 0 {
		return Type{}, "", ErrEmptyType
	}
	t.Base = strings.Join(words, " ")
	return t, name, nil
}

// isTrailingName decides whether ident, seen while still reading base
// words, is really the declarator name: it must follow at least one base
// word, must not be a builtin word, must not be the tag of an elaborated
// specifier, and may only be followed by array dimensions or cv-qualifiers.
func isTrailingName(words []string, ident string, rest []token) bool {
	if len(words) == 0 || builtinWords[ident] {
		return false
	}
	if elaborated[words[len(words)-1]] || strings.Contains(ident, "::") {
		return false
	}
	for _, tok := range rest {
		switch tok.kind {
		case tokArray:
		case tokIdent:
			if tok.text != "const" && tok.text != "volatile" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
