package formatter

import (
	"fmt"
	"strings"

	"rizz/internal/lexer"
	"rizz/internal/parser"
)

type Formatter struct {
	indent    int
	indentStr string
	output    strings.Builder
	lineBreak string
}

func NewFormatter() *Formatter {
	return &Formatter{
		indent:    0,
		indentStr: "    ", // 4 spaces
		lineBreak: "\n",
	}
}

// Source formats a whole file. Files containing comments are refused.
func (f *Formatter) Source(source, file string) (string, error) {
	scanner := lexer.NewScannerWithFile(source, file)
	tokens, err := scanner.ScanTokens()
	if err != nil {
		return "", err
	}
	if comments := scanner.Comments(); len(comments) > 0 {
		first := comments[0]
		return "", fmt.Errorf("%s:%d:%d: cannot format a file with comments (%d found); formatting would remove them",
			displayName(file), first.Line, first.Column, len(comments))
	}
	stmts, err := parser.NewParserWithSource(tokens, source, file).Parse()
	if err != nil {
		return "", err
	}
	return f.Format(stmts), nil
}

func displayName(file string) string {
	if file == "" {
		return "<input>"
	}
	return file
}

func (f *Formatter) Format(stmts []parser.Stmt) string {
	f.output.Reset()
	f.indent = 0

	for i, stmt := range stmts {
		f.formatStmt(stmt)
		if i < len(stmts)-1 {
			// Add blank line between top-level statements if needed
			if f.needsBlankLine(stmt, stmts[i+1]) {
				f.output.WriteString(f.lineBreak)
			}
		}
	}

	return f.output.String()
}

func (f *Formatter) needsBlankLine(curr, next parser.Stmt) bool {
	// Add blank line around function definitions
	return curr.Kind() == parser.KindFunction || next.Kind() == parser.KindFunction
}

func (f *Formatter) writeIndent() {
	for i := 0; i < f.indent; i++ {
		f.output.WriteString(f.indentStr)
	}
}

func keyword(tag lexer.KeywordTag) string {
	return lexer.Spelling(tag)
}

func (f *Formatter) formatStmt(stmt parser.Stmt) {
	if stmt == nil {
		return
	}

	switch s := stmt.(type) {
	case *parser.DeclarationStmt:
		f.writeIndent()
		tag := lexer.KeywordLet
		if s.Binding == parser.BindConst {
			tag = lexer.KeywordConst
		}
		f.output.WriteString(keyword(tag))
		f.output.WriteString(" ")
		f.output.WriteString(s.Name)
		f.output.WriteString(" = ")
		f.output.WriteString(s.Value.Lexeme)
		f.output.WriteString(";")
		f.output.WriteString(f.lineBreak)

	case *parser.FunctionStmt:
		f.writeIndent()
		f.output.WriteString(keyword(lexer.KeywordFunction))
		f.output.WriteString(" ")
		f.output.WriteString(s.Name)
		f.output.WriteString("(")
		f.output.WriteString(strings.Join(s.Params, ", "))
		f.output.WriteString(") {")
		f.output.WriteString(f.lineBreak)
		f.formatBody(s.Body)
		f.writeIndent()
		f.output.WriteString("}")
		f.output.WriteString(f.lineBreak)

	case *parser.PrintStmt:
		f.writeIndent()
		f.output.WriteString(keyword(lexer.KeywordPrint))
		f.output.WriteString("(")
		f.output.WriteString(s.Argument.Lexeme)
		f.output.WriteString(");")
		f.output.WriteString(f.lineBreak)

	case *parser.AssignmentStmt:
		f.writeIndent()
		f.output.WriteString(s.Name)
		f.output.WriteString(" ")
		f.output.WriteString(s.Operator)
		f.output.WriteString(" ")
		f.output.WriteString(s.Operand.Lexeme)
		f.output.WriteString(";")
		f.output.WriteString(f.lineBreak)

	case *parser.IncDecStmt:
		f.writeIndent()
		f.output.WriteString(s.Name)
		f.output.WriteString(s.Operator)
		f.output.WriteString(";")
		f.output.WriteString(f.lineBreak)

	case *parser.CallStmt:
		f.writeIndent()
		f.output.WriteString(s.Name)
		f.output.WriteString("(")
		for i, arg := range s.Args {
			if i > 0 {
				f.output.WriteString(", ")
			}
			f.output.WriteString(arg.Lexeme)
		}
		f.output.WriteString(");")
		f.output.WriteString(f.lineBreak)

	case *parser.WhileStmt:
		f.writeIndent()
		f.output.WriteString(keyword(lexer.KeywordWhile))
		f.output.WriteString(" ")
		f.formatCondition(s.Condition)
		f.output.WriteString(" {")
		f.output.WriteString(f.lineBreak)
		f.formatBody(s.Body)
		f.writeIndent()
		f.output.WriteString("}")
		f.output.WriteString(f.lineBreak)

	case *parser.IfStmt:
		f.writeIndent()
		for i, branch := range s.Branches {
			if i > 0 {
				f.output.WriteString("} ")
				f.output.WriteString(keyword(lexer.KeywordElse))
				f.output.WriteString(" ")
			}
			if !branch.IsElse() {
				f.output.WriteString(keyword(lexer.KeywordIf))
				f.output.WriteString(" ")
				f.formatCondition(branch.Condition)
				f.output.WriteString(" ")
			}
			f.output.WriteString("{")
			f.output.WriteString(f.lineBreak)
			f.formatBody(branch.Body)
			f.writeIndent()
		}
		f.output.WriteString("}")
		f.output.WriteString(f.lineBreak)
	}
}

func (f *Formatter) formatBody(body []parser.Stmt) {
	f.indent++
	for _, stmt := range body {
		f.formatStmt(stmt)
	}
	f.indent--
}

// formatCondition writes the condition tokens in parentheses, one space
// between tokens except just inside parentheses.
func (f *Formatter) formatCondition(tokens []lexer.Token) {
	f.output.WriteString("(")
	for i, tok := range tokens {
		if i > 0 && tokens[i-1].Type != lexer.TokenLParen && tok.Type != lexer.TokenRParen {
			f.output.WriteString(" ")
		}
		f.output.WriteString(tok.Lexeme)
	}
	f.output.WriteString(")")
}
