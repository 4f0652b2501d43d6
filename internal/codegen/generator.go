// Package codegen turns a parsed Rizz program into JavaScript text.
package codegen

import (
	"strings"

	"rizz/internal/lexer"
	"rizz/internal/parser"
)

// Options controls the shape of the generated code.
type Options struct {
	// Indent is written once per nesting level inside blocks.
	Indent string
	// PrintFunc is the call a yap statement becomes.
	PrintFunc string
}

func DefaultOptions() Options {
	return Options{Indent: "    ", PrintFunc: "console.log"}
}

var bindings = map[parser.Binding]string{
	parser.BindConst: "const",
	parser.BindLet:   "let",
}

// Generator emits one fragment per statement. It keeps no state between
// calls other than the current nesting depth.
type Generator struct {
	opts  Options
	depth int
}

func New(opts Options) *Generator {
	def := DefaultOptions()
	if opts.Indent == "" {
		opts.Indent = def.Indent
	}
	if opts.PrintFunc == "" {
		opts.PrintFunc = def.PrintFunc
	}
	return &Generator{opts: opts}
}

// Generate renders the whole program: top-level fragments separated by a
// newline, with a final newline when the program is not empty.
func (g *Generator) Generate(stmts []parser.Stmt) string {
	fragments := g.Fragments(stmts)
	if len(fragments) == 0 {
		return ""
	}
	return strings.Join(fragments, "\n") + "\n"
}

// Fragments renders each top-level statement on its own.
func (g *Generator) Fragments(stmts []parser.Stmt) []string {
	g.depth = 0
	fragments := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		fragments = append(fragments, g.emit(stmt))
	}
	return fragments
}

func (g *Generator) emit(stmt parser.Stmt) string {
	return stmt.Accept(g).(string)
}

// ConditionText joins condition lexemes with no separators.
func ConditionText(tokens []lexer.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Lexeme)
	}
	return sb.String()
}

func (g *Generator) line(s string) string {
	return strings.Repeat(g.opts.Indent, g.depth) + s
}

// block renders "head {" and the indented body. The caller writes the
// closing brace.
func (g *Generator) block(head string, body []parser.Stmt) string {
	var sb strings.Builder
	sb.WriteString(g.line(head + " {\n"))
	g.depth++
	for _, stmt := range body {
		sb.WriteString(g.emit(stmt))
		sb.WriteString("\n")
	}
	g.depth--
	return sb.String()
}

func (g *Generator) VisitDeclarationStmt(stmt *parser.DeclarationStmt) interface{} {
	return g.line(bindings[stmt.Binding] + " " + stmt.Name + " = " + stmt.Value.Lexeme + ";")
}

func (g *Generator) VisitFunctionStmt(stmt *parser.FunctionStmt) interface{} {
	head := "function " + stmt.Name + "(" + strings.Join(stmt.Params, ", ") + ")"
	return g.block(head, stmt.Body) + g.line("}")
}

func (g *Generator) VisitPrintStmt(stmt *parser.PrintStmt) interface{} {
	return g.line(g.opts.PrintFunc + "(" + stmt.Argument.Lexeme + ");")
}

func (g *Generator) VisitAssignmentStmt(stmt *parser.AssignmentStmt) interface{} {
	op := "="
	if stmt.Compound() {
		op = stmt.Operator + "="
	}
	return g.line(stmt.Name + " " + op + " " + stmt.Operand.Lexeme + ";")
}

func (g *Generator) VisitIncDecStmt(stmt *parser.IncDecStmt) interface{} {
	return g.line(stmt.Name + stmt.Operator + ";")
}

func (g *Generator) VisitCallStmt(stmt *parser.CallStmt) interface{} {
	args := make([]string, len(stmt.Args))
	for i, arg := range stmt.Args {
		args[i] = arg.Lexeme
	}
	return g.line(stmt.Name + "(" + strings.Join(args, ", ") + ");")
}

func (g *Generator) VisitWhileStmt(stmt *parser.WhileStmt) interface{} {
	head := "while (" + ConditionText(stmt.Condition) + ")"
	return g.block(head, stmt.Body) + g.line("}")
}

func (g *Generator) VisitIfStmt(stmt *parser.IfStmt) interface{} {
	var sb strings.Builder
	for i, branch := range stmt.Branches {
		var head string
		switch {
		case i == 0:
			head = "if (" + ConditionText(branch.Condition) + ")"
		case branch.IsElse():
			head = "else"
		default:
			head = "else if (" + ConditionText(branch.Condition) + ")"
		}
		if i > 0 {
			// later arms open on the previous arm's closing line
			head = "} " + head
		}
		sb.WriteString(g.block(head, branch.Body))
	}
	sb.WriteString(g.line("}"))
	return sb.String()
}
