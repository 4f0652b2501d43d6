// internal/parser/stmt.go
package parser

import "rizz/internal/lexer"

// StmtKind tags the grammar rule a statement was parsed under.
type StmtKind int

const (
	KindDeclaration StmtKind = iota + 1
	KindFunction
	KindPrint
	KindAssignment
	KindIncDec
	KindCall
	KindWhile
	KindIf
)

var stmtKindNames = map[StmtKind]string{
	KindDeclaration: "Declaration",
	KindFunction:    "FunctionDecl",
	KindPrint:       "Print",
	KindAssignment:  "Assignment",
	KindIncDec:      "IncrementDecrement",
	KindCall:        "FunctionCall",
	KindWhile:       "WhileLoop",
	KindIf:          "IfChain",
}

func (k StmtKind) String() string {
	return stmtKindNames[k]
}

// Stmt represents a statement.
type Stmt interface {
	Kind() StmtKind
	Accept(visitor StmtVisitor) interface{}
}

// Binding distinguishes nocap from huh declarations.
type Binding int

const (
	BindConst Binding = iota + 1
	BindLet
)

// DeclarationStmt binds a name to a literal: nocap x = "a";
type DeclarationStmt struct {
	Binding Binding
	Name    string
	Value   lexer.Token
}

func (d *DeclarationStmt) Kind() StmtKind { return KindDeclaration }

func (d *DeclarationStmt) Accept(visitor StmtVisitor) interface{} {
	return visitor.VisitDeclarationStmt(d)
}

// FunctionStmt represents a function declaration.
type FunctionStmt struct {
	Name   string
	Params []string
	Body   []Stmt
}

func (f *FunctionStmt) Kind() StmtKind { return KindFunction }

func (f *FunctionStmt) Accept(visitor StmtVisitor) interface{} {
	return visitor.VisitFunctionStmt(f)
}

// PrintStmt is a single-argument yap call.
type PrintStmt struct {
	Argument lexer.Token
}

func (p *PrintStmt) Kind() StmtKind { return KindPrint }

func (p *PrintStmt) Accept(visitor StmtVisitor) interface{} {
	return visitor.VisitPrintStmt(p)
}

// AssignmentStmt is x = v; or the compound form x + v; where Operator is
// the arithmetic operator.
type AssignmentStmt struct {
	Name     string
	Operator string
	Operand  lexer.Token
}

func (a *AssignmentStmt) Kind() StmtKind { return KindAssignment }

func (a *AssignmentStmt) Accept(visitor StmtVisitor) interface{} {
	return visitor.VisitAssignmentStmt(a)
}

// Compound reports whether the assignment updates the name in place.
func (a *AssignmentStmt) Compound() bool {
	return a.Operator != "="
}

// IncDecStmt is x++; or x--;
type IncDecStmt struct {
	Name     string
	Operator string
}

func (i *IncDecStmt) Kind() StmtKind { return KindIncDec }

func (i *IncDecStmt) Accept(visitor StmtVisitor) interface{} {
	return visitor.VisitIncDecStmt(i)
}

// CallStmt is a call used as a statement.
type CallStmt struct {
	Name string
	Args []lexer.Token
}

func (c *CallStmt) Kind() StmtKind { return KindCall }

func (c *CallStmt) Accept(visitor StmtVisitor) interface{} {
	return visitor.VisitCallStmt(c)
}

// WhileStmt is a sigma loop. The condition is kept as the raw tokens
// between the parentheses; it is transcribed, never evaluated.
type WhileStmt struct {
	Condition []lexer.Token
	Body      []Stmt
}

func (w *WhileStmt) Kind() StmtKind { return KindWhile }

func (w *WhileStmt) Accept(visitor StmtVisitor) interface{} {
	return visitor.VisitWhileStmt(w)
}

// Branch is one arm of an if chain. A nil Condition marks the final else.
type Branch struct {
	Condition []lexer.Token
	Body      []Stmt
}

// IsElse reports whether the branch is unconditional.
func (b Branch) IsElse() bool {
	return b.Condition == nil
}

// IfStmt is a noway/unless chain in source order.
type IfStmt struct {
	Branches []Branch
}

func (i *IfStmt) Kind() StmtKind { return KindIf }

func (i *IfStmt) Accept(visitor StmtVisitor) interface{} {
	return visitor.VisitIfStmt(i)
}

// StmtVisitor handles all statement types.
type StmtVisitor interface {
	VisitDeclarationStmt(stmt *DeclarationStmt) interface{}
	VisitFunctionStmt(stmt *FunctionStmt) interface{}
	VisitPrintStmt(stmt *PrintStmt) interface{}
	VisitAssignmentStmt(stmt *AssignmentStmt) interface{}
	VisitIncDecStmt(stmt *IncDecStmt) interface{}
	VisitCallStmt(stmt *CallStmt) interface{}
	VisitWhileStmt(stmt *WhileStmt) interface{}
	VisitIfStmt(stmt *IfStmt) interface{}
}
