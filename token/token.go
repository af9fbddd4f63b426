// Package token defines GLang's token kinds and reserved words, per
// spec.md §3 ("Token") and §4.B ("Reserved words").
package token

import "github.com/george-lang/glang/position"

// Kind is the closed set of token kinds spec.md §3 names.
type Kind int

const (
	INT Kind = iota
	FLOAT
	STR
	IDENT
	KEYWORD

	PLUS
	MINUS
	MUL
	DIV
	POW
	MOD

	EQ
	EE
	NE
	LT
	GT
	LTE
	GTE

	LPAREN
	RPAREN
	LSQUARE
	RSQUARE
	LBRACE
	RBRACE
	COMMA
	ARROW

	NEWLINE
	EOF
)

var kindNames = map[Kind]string{
	INT: "INT", FLOAT: "FLOAT", STR: "STR", IDENT: "IDENT", KEYWORD: "KEYWORD",
	PLUS: "PLUS", MINUS: "MINUS", MUL: "MUL", DIV: "DIV", POW: "POW", MOD: "MOD",
	EQ: "EQ", EE: "EE", NE: "NE", LT: "LT", GT: "GT", LTE: "LTE", GTE: "GTE",
	LPAREN: "LPAREN", RPAREN: "RPAREN", LSQUARE: "LSQUARE", RSQUARE: "RSQUARE",
	LBRACE: "LBRACE", RBRACE: "RBRACE", COMMA: "COMMA", ARROW: "ARROW",
	NEWLINE: "NEWLINE", EOF: "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Reserved is the closed set of reserved words from spec.md §4.B. Any
// implementer-visible surface syntax change must keep these spellings,
// since spec.md §8's scenarios depend on them verbatim.
var Reserved = map[string]bool{
	"obj": true, "const": true, "and": true, "or": true, "not": true,
	"if": true, "then": true, "alsoif": true, "otherwise": true,
	"walk": true, "through": true, "step": true, "while": true,
	"func": true, "give": true, "next": true, "leave": true,
	"try": true, "except": true, "endbody": true, "fetch": true,
}

// Token is a tagged {kind, optional lexeme, start, end} record.
type Token struct {
	Kind   Kind
	Lexeme string
	Start  position.Position
	End    position.Position
}

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// Matches reports whether the token is a KEYWORD (or any kind, when
// generalized below) with the given lexeme — mirrors the Rust source's
// Token::matches(token_type, value) used throughout the parser.
func (t Token) Matches(k Kind, lexeme string) bool {
	return t.Kind == k && t.Lexeme == lexeme
}

func (t Token) String() string {
	if t.Lexeme != "" {
		return t.Kind.String() + ":" + t.Lexeme
	}
	return t.Kind.String()
}
