package kbd

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnbalanced   = errors.New("unbalanced parentheses")
	ErrStrayAtom    = errors.New("atom outside of a list")
	ErrUnterminated = errors.New("unterminated block comment")
)

type ParseError struct {
	Path string
	Line int
	Col  int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Col, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type tokenKind int

const (
	tokenOpen tokenKind = iota
	tokenClose
	tokenAtom
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

func (l *lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) atCommentStart() bool {
	return l.peek(0) == ';' && l.peek(1) == ';'
}

func (l *lexer) atBlockCommentStart() bool {
	return l.peek(0) == '#' && l.peek(1) == '|'
}

func (l *lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek(0) != '\n' {
		l.advance()
	}
}

func (l *lexer) skipBlockComment() bool {
	l.advance()
	l.advance()
	for l.pos < len(l.src) {
		if l.peek(0) == '|' && l.peek(1) == '#' {
			l.advance()
			l.advance()
			return true
		}
		l.advance()
	}
	return false
}

func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// lex splits src into parentheses and atoms, dropping ";;" line comments and
// "#| |#" block comments. A double-quoted run is kept inside its atom,
// quotes included, so it may contain delimiters.
func lex(src string) ([]token, *ParseError) {
	l := &lexer{src: []rune(src), line: 1, col: 1}
	var tokens []token

	for l.pos < len(l.src) {
		switch r := l.peek(0); {
		case l.atCommentStart():
			l.skipLineComment()
		case l.atBlockCommentStart():
			line, col := l.line, l.col
			if !l.skipBlockComment() {
				return nil, &ParseError{Line: line, Col: col, Err: ErrUnterminated}
			}
		case r == '(':
			tokens = append(tokens, token{kind: tokenOpen, text: "(", line: l.line, col: l.col})
			l.advance()
		case r == ')':
			tokens = append(tokens, token{kind: tokenClose, text: ")", line: l.line, col: l.col})
			l.advance()
		case isDelimiter(r):
			l.advance()
		default:
			tokens = append(tokens, l.atom())
		}
	}

	return tokens, nil
}

func (l *lexer) atom() token {
	tok := token{kind: tokenAtom, line: l.line, col: l.col}
	var sb strings.Builder
	quoted := false

	for l.pos < len(l.src) {
		r := l.peek(0)
		if !quoted && (isDelimiter(r) || l.atCommentStart()) {
			break
		}
		if r == '"' {
			quoted = !quoted
		}
		sb.WriteRune(l.advance())
	}

	tok.text = sb.String()
	return tok
}

// Parse turns the source of a single file into its top-level lists. path is
// only used for error reporting.
func Parse(path, src string) ([]List, error) {
	tokens, lexErr := lex(src)
	if lexErr != nil {
		lexErr.Path = path
		return nil, lexErr
	}

	var (
		out   []List
		stack []List
		opens []token
	)

	for _, tok := range tokens {
		switch tok.kind {
		case tokenOpen:
			stack = append(stack, List{})
			opens = append(opens, tok)

		case tokenClose:
			if len(stack) == 0 {
				return nil, &ParseError{Path: path, Line: tok.line, Col: tok.col, Err: ErrUnbalanced}
			}

			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			opens = opens[:len(opens)-1]

			if len(stack) == 0 {
				out = append(out, top)
			} else {
				stack[len(stack)-1] = append(stack[len(stack)-1], top)
			}

		case tokenAtom:
			if len(stack) == 0 {
				return nil, &ParseError{
					Path: path,
					Line: tok.line,
					Col:  tok.col,
					Err:  fmt.Errorf("%w: %q", ErrStrayAtom, tok.text),
				}
			}
			stack[len(stack)-1] = append(stack[len(stack)-1], Atom(tok.text))
		}
	}

	if len(opens) > 0 {
		open := opens[len(opens)-1]
		return nil, &ParseError{Path: path, Line: open.line, Col: open.col, Err: ErrUnbalanced}
	}

	return out, nil
}
