// internal/compiler/compiler.go
package compiler

import (
	"rizz/internal/codegen"
	"rizz/internal/lexer"
	"rizz/internal/parser"
)

// Compiler runs the whole pipeline for one file: scan, parse, generate.
// Nothing is kept between calls to Compile.
type Compiler struct {
	opts codegen.Options
}

func NewCompiler(opts codegen.Options) *Compiler {
	return &Compiler{opts: opts}
}

// Compile translates Rizz source into JavaScript. file only labels
// diagnostics. The first lexical or syntax error aborts compilation and
// no output is returned.
func (c *Compiler) Compile(source, file string) (string, error) {
	stmts, err := Parse(source, file)
	if err != nil {
		return "", err
	}
	return codegen.New(c.opts).Generate(stmts), nil
}

// Compile translates source with the default generator options.
func Compile(source, file string) (string, error) {
	return NewCompiler(codegen.DefaultOptions()).Compile(source, file)
}

// Parse scans and parses source into its statement tree.
func Parse(source, file string) ([]parser.Stmt, error) {
	tokens, err := Tokens(source, file)
	if err != nil {
		return nil, err
	}
	return parser.NewParserWithSource(tokens, source, file).Parse()
}

// Tokens scans all of source.
func Tokens(source, file string) ([]lexer.Token, error) {
	return lexer.NewScannerWithFile(source, file).ScanTokens()
}
