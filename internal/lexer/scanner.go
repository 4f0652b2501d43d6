package lexer

import (
	stderrors "errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"rizz/internal/errors"
)

// Causes attached to unterminated literal errors. Match them with the
// standard errors.Is.
var (
	ErrUnterminatedString   = stderrors.New("unterminated string")
	ErrUnterminatedTemplate = stderrors.New("unterminated template literal")
)

// Scanner turns Rizz source into tokens. Operators sharing a prefix are
// matched longest-first, so "==" is never read as two "=" tokens.
type Scanner struct {
	source    string
	file      string
	start     int
	current   int
	line      int
	lineStart int
	startLine int
	startCol  int
	comments  []Token
}

func NewScanner(source string) *Scanner {
	return NewScannerWithFile(source, "")
}

// NewScannerWithFile creates a scanner whose diagnostics name file.
func NewScannerWithFile(source, file string) *Scanner {
	s := &Scanner{file: file}
	s.Reset(source)
	return s
}

// Reset restarts scanning of source from the beginning.
func (s *Scanner) Reset(source string) {
	s.source = source
	s.start = 0
	s.current = 0
	s.line = 1
	s.lineStart = 0
	s.comments = nil
}

// Comments returns the comments skipped so far, in source order. They
// never appear in the token stream.
func (s *Scanner) Comments() []Token {
	return s.comments
}

// ScanTokens scans the rest of the input. The returned slice always ends
// with an EOF token unless an error is returned.
func (s *Scanner) ScanTokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// Next returns the next token. Once EOF has been returned every further
// call returns EOF again.
func (s *Scanner) Next() (Token, error) {
	for {
		s.sanitize()
		s.start = s.current
		s.startLine = s.line
		s.startCol = s.current - s.lineStart + 1
		if s.isAtEnd() {
			return Token{Type: TokenEOF, Line: s.line, Column: s.startCol}, nil
		}
		tok, ok, err := s.scanToken()
		if err != nil {
			return Token{}, err
		}
		if ok {
			return tok, nil
		}
	}
}

func (s *Scanner) scanToken() (Token, bool, error) {
	c := s.advance()
	switch c {
	case '(':
		return s.token(TokenLParen), true, nil
	case ')':
		return s.token(TokenRParen), true, nil
	case '{':
		return s.token(TokenLBrace), true, nil
	case '}':
		return s.token(TokenRBrace), true, nil
	case ';':
		return s.token(TokenEnd), true, nil
	case ',':
		return s.token(TokenComma), true, nil
	case '+':
		if s.match('+') {
			return s.token(TokenIncrement), true, nil
		}
		return s.token(TokenArithOp), true, nil
	case '-':
		if s.match('-') {
			return s.token(TokenDecrement), true, nil
		}
		return s.token(TokenArithOp), true, nil
	case '*', '/':
		return s.token(TokenArithOp), true, nil
	case '=':
		if s.match('=') {
			return s.token(TokenEqual), true, nil
		}
		return s.token(TokenAssign), true, nil
	case '<':
		if s.match('=') {
			return s.token(TokenLessEqual), true, nil
		}
		return s.token(TokenLessThan), true, nil
	case '>':
		if s.match('=') {
			return s.token(TokenGreaterEqual), true, nil
		}
		return s.token(TokenGreaterThan), true, nil
	case '!':
		if s.match('=') {
			return s.token(TokenNotEqual), true, nil
		}
	case '&':
		if s.match('&') {
			return s.token(TokenAnd), true, nil
		}
	case '|':
		if s.match('|') {
			return s.token(TokenOr), true, nil
		}
	case '#':
		for s.peek() != '\n' && !s.isAtEnd() {
			s.advance()
		}
		s.comments = append(s.comments, s.token(TokenComment))
		return Token{}, false, nil
	case '"':
		return s.string()
	case '`':
		return s.template()
	default:
		if isDigit(c) {
			return s.number(), true, nil
		}
		if isAlpha(c) {
			return s.identifier(), true, nil
		}
	}
	return Token{}, false, s.unexpected()
}

func (s *Scanner) unexpected() error {
	r, _ := utf8.DecodeRuneInString(s.source[s.start:])
	return s.errorf(s.startLine, s.startCol, "unexpected character '%c'", r)
}

func (s *Scanner) errorf(line, col int, format string, args ...interface{}) *errors.RizzError {
	return errors.NewLexicalError(fmt.Sprintf(format, args...), s.file, line, col).
		WithSourceText(s.source)
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) identifier() Token {
	for isAlphaNumeric(s.peekRune()) {
		_, size := utf8.DecodeRuneInString(s.source[s.current:])
		s.current += size
	}
	if _, ok := Keywords[s.source[s.start:s.current]]; ok {
		return s.token(TokenKeyword)
	}
	return s.token(TokenIdent)
}

func (s *Scanner) number() Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.match('.') {
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.token(TokenNumber)
}

// string scans a double-quoted literal. Strings end on the line they
// start on; the lexeme keeps its quotes.
func (s *Scanner) string() (Token, bool, error) {
	for s.peek() != '"' {
		if s.isAtEnd() || s.peek() == '\n' {
			return Token{}, false, s.errorf(s.startLine, s.startCol, "unterminated string").
				WithCause(ErrUnterminatedString)
		}
		s.advance()
	}
	s.advance()
	return s.token(TokenString), true, nil
}

// template scans a backtick literal, which may span lines.
func (s *Scanner) template() (Token, bool, error) {
	for s.peek() != '`' {
		if s.isAtEnd() {
			return Token{}, false, s.errorf(s.startLine, s.startCol, "unterminated template literal").
				WithCause(ErrUnterminatedTemplate)
		}
		if s.advance() == '\n' {
			s.newline()
		}
	}
	s.advance()
	return s.token(TokenTemplate), true, nil
}

func (s *Scanner) token(t TokenType) Token {
	return Token{
		Type:   t,
		Lexeme: s.source[s.start:s.current],
		Line:   s.startLine,
		Column: s.startCol,
	}
}

func (s *Scanner) advance() byte {
	s.current++
	return s.source[s.current-1]
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return '\000'
	}
	return s.source[s.current]
}

func (s *Scanner) peekRune() rune {
	if s.isAtEnd() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current:])
	return r
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) newline() {
	s.line++
	s.lineStart = s.current
}

// sanitize skips whitespace, counting newlines.
func (s *Scanner) sanitize() {
	for !s.isAtEnd() {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.advance()
		case '\n':
			s.advance()
			s.newline()
		default:
			return
		}
	}
}

// isAlpha reports whether c may start an identifier: ASCII letters and
// underscore only.
func isAlpha(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// isAlphaNumeric reports whether r may continue an identifier. Later
// characters may be any Unicode letter or digit.
func isAlphaNumeric(r rune) bool {
	return r == '_' || (r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
