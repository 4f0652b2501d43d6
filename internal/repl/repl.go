// internal/repl/repl.go
package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"rizz/internal/codegen"
	"rizz/internal/compiler"
	"rizz/internal/errors"
	"rizz/internal/lexer"
)

const (
	prompt     = ">>> "
	contPrompt = "... "
)

// Start reads Rizz from in and prints the JavaScript for each complete
// chunk to out. Lines are buffered until their braces balance. An error
// discards the buffered chunk and the session carries on.
func Start(in io.Reader, out io.Writer, opts codegen.Options) error {
	fmt.Fprintln(out, "Rizz REPL | type 'exit' to quit")
	scanner := bufio.NewScanner(in)
	c := compiler.NewCompiler(opts)

	var pending strings.Builder
	for {
		if pending.Len() == 0 {
			fmt.Fprint(out, prompt)
		} else {
			fmt.Fprint(out, contPrompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if pending.Len() == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		pending.WriteString(line)
		pending.WriteString("\n")
		if openBlocks(pending.String()) > 0 {
			continue
		}

		chunk := pending.String()
		pending.Reset()
		js, err := c.Compile(chunk, "<repl>")
		if err != nil {
			if rerr, ok := err.(*errors.RizzError); ok {
				fmt.Fprint(out, rerr.Pretty(false))
			} else {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			continue
		}
		fmt.Fprint(out, js)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

// openBlocks counts unclosed braces in src. A chunk that does not scan is
// treated as complete so the error is reported straight away, except for
// a template literal still waiting for its closing backtick.
func openBlocks(src string) int {
	s := lexer.NewScanner(src)
	depth := 0
	for {
		tok, err := s.Next()
		if err != nil {
			if stderrors.Is(err, lexer.ErrUnterminatedTemplate) {
				return depth + 1
			}
			return 0
		}
		switch tok.Type {
		case lexer.TokenLBrace:
			depth++
		case lexer.TokenRBrace:
			depth--
		case lexer.TokenEOF:
			return depth
		}
	}
}
