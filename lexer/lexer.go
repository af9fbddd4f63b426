// Package lexer turns GLang source text into a token stream, per
// spec.md §4.B. Scanning is a plain rune-at-a-time scanner with a
// single-character lookahead (advance/peek), the shape used throughout
// the retrieval pack's hand-written lexers (e.g. Kingsford-Group/glitter's
// lexer.go).
package lexer

import (
	"fmt"

	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/position"
	"github.com/george-lang/glang/token"
)

const eof = rune(0)

// Lexer scans src (already CRLF-normalized by the caller, per spec.md
// §6) into a token stream.
type Lexer struct {
	src  *position.Source
	pos  position.Position
	text []rune
	cur  rune
}

// New constructs a Lexer positioned on the first rune of text.
func New(file, text string) *Lexer {
	src := &position.Source{Path: file, Text: text}
	l := &Lexer{src: src, pos: position.New(src), text: []rune(text)}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	l.pos = l.pos.Advance(l.cur)
	if l.pos.Index >= 0 && l.pos.Index < len(l.text) {
		l.cur = l.text[l.pos.Index]
	} else {
		l.cur = eof
	}
}

func (l *Lexer) peek() rune {
	next := l.pos.Index + 1
	if next >= 0 && next < len(l.text) {
		return l.text[next]
	}
	return eof
}

// Tokenize scans the entire source and returns its token stream ending
// with a single EOF, or the first lexical error encountered (no error
// recovery, per spec.md §4.B).
func Tokenize(file, text string) ([]token.Token, *diag.Error) {
	l := New(file, text)
	return l.makeTokens()
}

func (l *Lexer) makeTokens() ([]token.Token, *diag.Error) {
	var toks []token.Token

	for l.cur != eof {
		switch {
		case l.cur == ' ' || l.cur == '\t':
			l.advance()
		case l.cur == '#':
			for l.cur != eof && l.cur != '\n' {
				l.advance()
			}
		case l.cur == ';' || l.cur == '\n':
			start := l.pos
			l.advance()
			toks = append(toks, token.Token{Kind: token.NEWLINE, Start: start, End: l.pos})
		case isDigit(l.cur):
			tok, err := l.makeNumber()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case isLetter(l.cur):
			toks = append(toks, l.makeIdentifier())
		case l.cur == '"':
			tok, err := l.makeString()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		default:
			tok, err := l.makeSymbol()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		}
	}

	toks = append(toks, token.Token{Kind: token.EOF, Start: l.pos, End: l.pos})
	return toks, nil
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isAlnum(r rune) bool  { return isDigit(r) || isLetter(r) }

func (l *Lexer) makeNumber() (token.Token, *diag.Error) {
	start := l.pos
	var lexeme []rune
	dotCount := 0

	for l.cur != eof && (isDigit(l.cur) || l.cur == '.') {
		if l.cur == '.' {
			if dotCount == 1 {
				break
			}
			dotCount++
		}
		lexeme = append(lexeme, l.cur)
		l.advance()
	}

	if isLetter(l.cur) {
		return token.Token{}, diag.New(
			"object names cannot start with numerical values", start, l.pos,
		).WithKind(diag.Lexical)
	}

	kind := token.INT
	if dotCount == 1 {
		kind = token.FLOAT
	}

	return token.Token{Kind: kind, Lexeme: string(lexeme), Start: start, End: l.pos}, nil
}

func (l *Lexer) makeIdentifier() token.Token {
	start := l.pos
	var lexeme []rune

	for l.cur != eof && isAlnum(l.cur) {
		lexeme = append(lexeme, l.cur)
		l.advance()
	}

	word := string(lexeme)
	kind := token.IDENT
	if token.Reserved[word] {
		kind = token.KEYWORD
	}

	return token.Token{Kind: kind, Lexeme: word, Start: start, End: l.pos}
}

func (l *Lexer) makeString() (token.Token, *diag.Error) {
	start := l.pos
	l.advance() // consume opening quote

	var out []rune
	escapes := map[rune]rune{'n': '\n', 'r': '\r', 't': '\t', '"': '"'}

	for l.cur != '"' {
		if l.cur == eof {
			return token.Token{}, diag.New("unterminated string literal", start, l.pos).WithKind(diag.Lexical)
		}

		if l.cur == '\\' {
			escStart := l.pos
			l.advance()
			replacement, ok := escapes[l.cur]
			if !ok {
				return token.Token{}, diag.New("invalid escape character", escStart, l.pos).WithKind(diag.Lexical)
			}
			out = append(out, replacement)
			l.advance()
			continue
		}

		out = append(out, l.cur)
		l.advance()
	}

	l.advance() // consume closing quote
	return token.Token{Kind: token.STR, Lexeme: string(out), Start: start, End: l.pos}, nil
}

func (l *Lexer) makeSymbol() (token.Token, *diag.Error) {
	start := l.pos
	c := l.cur

	single := map[rune]token.Kind{
		'+': token.PLUS, '*': token.MUL, '/': token.DIV, '^': token.POW, '%': token.MOD,
		'(': token.LPAREN, ')': token.RPAREN, '[': token.LSQUARE, ']': token.RSQUARE,
		'{': token.LBRACE, '}': token.RBRACE, ',': token.COMMA,
	}

	if kind, ok := single[c]; ok {
		l.advance()
		return token.Token{Kind: kind, Start: start, End: l.pos}, nil
	}

	switch c {
	case '-':
		l.advance()
		if l.cur == '>' {
			l.advance()
			return token.Token{Kind: token.ARROW, Start: start, End: l.pos}, nil
		}
		return token.Token{Kind: token.MINUS, Start: start, End: l.pos}, nil
	case '=':
		l.advance()
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.EE, Start: start, End: l.pos}, nil
		}
		return token.Token{Kind: token.EQ, Start: start, End: l.pos}, nil
	case '<':
		l.advance()
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.LTE, Start: start, End: l.pos}, nil
		}
		return token.Token{Kind: token.LT, Start: start, End: l.pos}, nil
	case '>':
		l.advance()
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.GTE, Start: start, End: l.pos}, nil
		}
		return token.Token{Kind: token.GT, Start: start, End: l.pos}, nil
	case '!':
		l.advance()
		if l.cur == '=' {
			l.advance()
			return token.Token{Kind: token.NE, Start: start, End: l.pos}, nil
		}
		return token.Token{}, diag.New("expected '=' after '!'", start, l.pos).
			WithHelp("use '!=' to compare for inequality").WithKind(diag.Lexical)
	}

	l.advance()
	return token.Token{}, diag.New(fmt.Sprintf("unknown character '%c'", c), start, l.pos).WithKind(diag.Lexical)
}
