// internal/parser/parser.go
package parser

import (
	"fmt"
	"strings"

	"rizz/internal/errors"
	"rizz/internal/lexer"
)

// keywordRules dispatches a statement on the tag of its leading keyword.
// unless has no entry: it only continues an if chain.
var keywordRules map[lexer.KeywordTag]func(p *Parser, kw lexer.Token) Stmt

func init() {
	keywordRules = map[lexer.KeywordTag]func(p *Parser, kw lexer.Token) Stmt{
		lexer.KeywordConst: func(p *Parser, _ lexer.Token) Stmt {
			return p.declaration(BindConst)
		},
		lexer.KeywordLet: func(p *Parser, _ lexer.Token) Stmt {
			return p.declaration(BindLet)
		},
		lexer.KeywordFunction: (*Parser).function,
		lexer.KeywordPrint:    (*Parser).print,
		lexer.KeywordWhile:    (*Parser).whileStatement,
		lexer.KeywordIf:       (*Parser).ifStatement,
	}
}

// Parser is a single-token-lookahead recursive-descent parser. It never
// backtracks and stops at the first error.
type Parser struct {
	tokens  []lexer.Token
	current int
	file    string
	source  string
}

func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: ensureEOF(tokens)}
}

// NewParserWithSource keeps the source text so errors can show the
// offending line.
func NewParserWithSource(tokens []lexer.Token, source string, file string) *Parser {
	return &Parser{
		tokens: ensureEOF(tokens),
		file:   file,
		source: source,
	}
}

// ensureEOF terminates tokens with EOF, copying rather than appending so
// the caller's backing array is never written.
func ensureEOF(tokens []lexer.Token) []lexer.Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].Type == lexer.TokenEOF {
		return tokens
	}
	line := 1
	if len(tokens) > 0 {
		line = tokens[len(tokens)-1].Line
	}
	out := make([]lexer.Token, len(tokens), len(tokens)+1)
	copy(out, tokens)
	return append(out, lexer.Token{Type: lexer.TokenEOF, Line: line})
}

// Parse parses every statement up to EOF. The returned error is always a
// *errors.RizzError of type SyntaxError.
func (p *Parser) Parse() (stmts []Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(*errors.RizzError)
			if !ok {
				panic(r)
			}
			stmts, err = nil, rerr
		}
	}()

	for !p.isAtEnd() {
		stmts = append(stmts, p.statement())
	}
	return stmts, nil
}

func (p *Parser) statement() Stmt {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokenKeyword:
		tag, _ := tok.Keyword()
		rule, ok := keywordRules[tag]
		if !ok {
			p.fail(tok, fmt.Sprintf("unexpected '%s' without a preceding '%s' block",
				tok.Lexeme, lexer.Spelling(lexer.KeywordIf)))
		}
		p.advance()
		return rule(p, tok)
	case lexer.TokenIdent:
		p.advance()
		return p.identifierStatement(tok)
	}
	p.expected(tok, "statement")
	return nil
}

// identifierStatement picks call, assignment or increment from the token
// after the name.
func (p *Parser) identifierStatement(name lexer.Token) Stmt {
	next := p.peek()
	switch next.Type {
	case lexer.TokenLParen:
		return p.call(name)
	case lexer.TokenAssign:
		p.advance()
		operand := p.consumeOneOf(lexer.TokenNumber, lexer.TokenIdent, lexer.TokenString, lexer.TokenTemplate)
		p.consume(lexer.TokenEnd)
		return &AssignmentStmt{Name: name.Lexeme, Operator: "=", Operand: operand}
	case lexer.TokenArithOp:
		op := p.advance()
		operand := p.consumeOneOf(lexer.TokenNumber, lexer.TokenIdent)
		p.consume(lexer.TokenEnd)
		return &AssignmentStmt{Name: name.Lexeme, Operator: op.Lexeme, Operand: operand}
	case lexer.TokenIncrement, lexer.TokenDecrement:
		op := p.advance()
		p.consume(lexer.TokenEnd)
		return &IncDecStmt{Name: name.Lexeme, Operator: op.Lexeme}
	}
	p.expected(next, kindList(lexer.TokenLParen, lexer.TokenAssign, lexer.TokenArithOp,
		lexer.TokenIncrement, lexer.TokenDecrement))
	return nil
}

func (p *Parser) declaration(binding Binding) Stmt {
	name := p.consume(lexer.TokenIdent)
	p.consume(lexer.TokenAssign)
	value := p.consumeOneOf(lexer.TokenString, lexer.TokenNumber)
	p.consume(lexer.TokenEnd)
	return &DeclarationStmt{Binding: binding, Name: name.Lexeme, Value: value}
}

func (p *Parser) function(_ lexer.Token) Stmt {
	name := p.consume(lexer.TokenIdent)
	p.consume(lexer.TokenLParen)
	var params []string
	if !p.check(lexer.TokenRParen) {
		for {
			params = append(params, p.consume(lexer.TokenIdent).Lexeme)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRParen)
	p.consume(lexer.TokenLBrace)
	return &FunctionStmt{Name: name.Lexeme, Params: params, Body: p.block()}
}

func (p *Parser) print(_ lexer.Token) Stmt {
	p.consume(lexer.TokenLParen)
	arg := p.consumeOneOf(lexer.TokenTemplate, lexer.TokenIdent, lexer.TokenString)
	p.consume(lexer.TokenRParen)
	p.consume(lexer.TokenEnd)
	return &PrintStmt{Argument: arg}
}

func (p *Parser) call(name lexer.Token) Stmt {
	p.consume(lexer.TokenLParen)
	var args []lexer.Token
	if !p.check(lexer.TokenRParen) {
		for {
			args = append(args, p.consumeOneOf(lexer.TokenIdent, lexer.TokenNumber, lexer.TokenString))
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRParen)
	p.consume(lexer.TokenEnd)
	return &CallStmt{Name: name.Lexeme, Args: args}
}

func (p *Parser) whileStatement(_ lexer.Token) Stmt {
	condition := p.condition()
	p.consume(lexer.TokenLBrace)
	return &WhileStmt{Condition: condition, Body: p.block()}
}

// ifStatement parses noway (c) { } followed by any number of unless
// continuations. "unless noway (c)" and "unless (c)" add else-if arms; a
// bare "unless { }" is the final else and closes the chain.
func (p *Parser) ifStatement(_ lexer.Token) Stmt {
	condition := p.condition()
	p.consume(lexer.TokenLBrace)
	stmt := &IfStmt{Branches: []Branch{{Condition: condition, Body: p.block()}}}

	for p.checkKeyword(lexer.KeywordElse) {
		p.advance()
		if p.checkKeyword(lexer.KeywordIf) {
			p.advance()
		} else if !p.check(lexer.TokenLParen) {
			p.consume(lexer.TokenLBrace)
			stmt.Branches = append(stmt.Branches, Branch{Body: p.block()})
			break
		}
		condition := p.condition()
		p.consume(lexer.TokenLBrace)
		stmt.Branches = append(stmt.Branches, Branch{Condition: condition, Body: p.block()})
	}
	return stmt
}

// condition collects the tokens between a pair of parentheses. Nested
// parentheses must balance; braces, semicolons and EOF end the statement
// and are errors here.
func (p *Parser) condition() []lexer.Token {
	p.consume(lexer.TokenLParen)
	if p.check(lexer.TokenRParen) {
		p.expected(p.peek(), "condition")
	}

	condition := []lexer.Token{}
	depth := 0
	for {
		tok := p.peek()
		switch tok.Type {
		case lexer.TokenRParen:
			if depth == 0 {
				p.advance()
				return condition
			}
			depth--
		case lexer.TokenLParen:
			depth++
		case lexer.TokenLBrace, lexer.TokenRBrace, lexer.TokenEnd, lexer.TokenEOF:
			p.expected(tok, string(lexer.TokenRParen))
		}
		condition = append(condition, p.advance())
	}
}

// block parses statements up to and including the closing brace. The
// opening brace has already been consumed.
func (p *Parser) block() []Stmt {
	stmts := []Stmt{}
	for !p.match(lexer.TokenRBrace) {
		if p.isAtEnd() {
			p.expected(p.peek(), string(lexer.TokenRBrace))
		}
		stmts = append(stmts, p.statement())
	}
	return stmts
}

func (p *Parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.expected(p.peek(), string(t))
	return lexer.Token{}
}

func (p *Parser) consumeOneOf(types ...lexer.TokenType) lexer.Token {
	for _, t := range types {
		if p.check(t) {
			return p.advance()
		}
	}
	p.expected(p.peek(), kindList(types...))
	return lexer.Token{}
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) checkKeyword(tag lexer.KeywordTag) bool {
	got, ok := p.peek().Keyword()
	return ok && got == tag
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TokenEOF
}

func (p *Parser) expected(got lexer.Token, want string) {
	p.fail(got, fmt.Sprintf("expected %s, got %s", want, describe(got)))
}

// fail aborts the parse; Parse recovers the error. Errors at EOF point
// just past the last real token, since trailing blank lines have nothing
// to show.
func (p *Parser) fail(at lexer.Token, msg string) {
	line, col := at.Line, at.Column
	if at.Type == lexer.TokenEOF && p.current > 0 {
		line, col = end(p.tokens[p.current-1])
	}
	err := errors.NewSyntaxError(msg, p.file, line, col)
	if p.source != "" {
		err = err.WithSourceText(p.source)
	}
	panic(err)
}

// end returns the position one column past the last character of tok,
// following any newlines inside a template literal.
func end(tok lexer.Token) (line, col int) {
	if i := strings.LastIndexByte(tok.Lexeme, '\n'); i >= 0 {
		return tok.Line + strings.Count(tok.Lexeme, "\n"), len(tok.Lexeme) - i
	}
	return tok.Line, tok.Column + len(tok.Lexeme)
}

func describe(tok lexer.Token) string {
	if tok.Type == lexer.TokenEOF {
		return string(lexer.TokenEOF)
	}
	return fmt.Sprintf("%s '%s'", tok.Type, tok.Lexeme)
}

func kindList(types ...lexer.TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return "one of " + strings.Join(names, ", ")
}
