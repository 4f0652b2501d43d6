package lexer

import "fmt"

type TokenType string

const (
	TokenKeyword  TokenType = "KEYWORD"
	TokenIdent    TokenType = "IDENTIFIER"
	TokenString   TokenType = "STRING"
	TokenTemplate TokenType = "TEMPLATE_LITERAL"
	TokenNumber   TokenType = "NUMBER"

	// Symbols
	TokenAssign       TokenType = "ASSIGN"
	TokenEnd          TokenType = "END"
	TokenLParen       TokenType = "LPAREN"
	TokenRParen       TokenType = "RPAREN"
	TokenLBrace       TokenType = "LBRACE"
	TokenRBrace       TokenType = "RBRACE"
	TokenComma        TokenType = "COMMA"
	TokenIncrement    TokenType = "INCREMENT"
	TokenDecrement    TokenType = "DECREMENT"
	TokenArithOp      TokenType = "ARITH_OP"
	TokenLessThan     TokenType = "LESS_THAN"
	TokenGreaterThan  TokenType = "GREATER_THAN"
	TokenEqual        TokenType = "EQUAL"
	TokenGreaterEqual TokenType = "GREATER_EQUAL"
	TokenLessEqual    TokenType = "LESS_EQUAL"
	TokenNotEqual     TokenType = "NOT_EQUAL"
	TokenAnd          TokenType = "LOGICAL_AND"
	TokenOr           TokenType = "LOGICAL_OR"
	TokenEOF          TokenType = "EOF"

	// Comments are kept by the scanner but never emitted as tokens.
	TokenComment TokenType = "COMMENT"
)

type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("[%s] '%s'", t.Type, t.Lexeme)
}

// Keyword reports the statement-kind tag of a KEYWORD token.
func (t Token) Keyword() (KeywordTag, bool) {
	if t.Type != TokenKeyword {
		return 0, false
	}
	tag, ok := Keywords[t.Lexeme]
	return tag, ok
}

// KeywordTag identifies the statement a keyword introduces.
type KeywordTag int

const (
	KeywordConst KeywordTag = iota + 1
	KeywordLet
	KeywordFunction
	KeywordPrint
	KeywordWhile
	KeywordIf
	KeywordElse
)

var keywordTagNames = map[KeywordTag]string{
	KeywordConst:    "const",
	KeywordLet:      "let",
	KeywordFunction: "function",
	KeywordPrint:    "print",
	KeywordWhile:    "while",
	KeywordIf:       "if",
	KeywordElse:     "else",
}

func (k KeywordTag) String() string {
	if name, ok := keywordTagNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KeywordTag(%d)", int(k))
}

// Keywords maps each reserved spelling to the statement it starts.
// Spellings are case-sensitive.
var Keywords = map[string]KeywordTag{
	"nocap":  KeywordConst,
	"huh":    KeywordLet,
	"finna":  KeywordFunction,
	"yap":    KeywordPrint,
	"sigma":  KeywordWhile,
	"noway":  KeywordIf,
	"unless": KeywordElse,
}

// Spelling returns the source keyword for tag.
func Spelling(tag KeywordTag) string {
	for word, t := range Keywords {
		if t == tag {
			return word
		}
	}
	return ""
}
