package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"rizz/internal/build"
	"rizz/internal/compiler"
	"rizz/internal/formatter"
)

func readSource(args []string, command string) (string, string, error) {
	if len(args) != 1 {
		return "", "", fmt.Errorf("usage: rizz %s <file%s>", command, build.SourceExt)
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(source), nil
}

// CheckCommand lexes and parses a file without writing anything.
func CheckCommand(args []string) error {
	filename, source, err := readSource(args, "check")
	if err != nil {
		return err
	}
	if _, err := compiler.Parse(source, filename); err != nil {
		return err
	}

	// If we get here, syntax is valid
	fmt.Printf("%s: syntax is valid\n", filename)
	return nil
}

// FmtCommand rewrites a file in canonical form. Files that do not parse,
// or that contain comments, are left alone.
func FmtCommand(args []string) error {
	filename, source, err := readSource(args, "fmt")
	if err != nil {
		return err
	}
	formatted, err := formatter.NewFormatter().Source(source, filename)
	if err != nil {
		return err
	}

	if formatted == source {
		fmt.Printf("%s: already formatted\n", filename)
		return nil
	}
	if err := build.WriteFile(filename, []byte(formatted)); err != nil {
		return err
	}

	fmt.Printf("%s: formatted successfully\n", filename)
	return nil
}

// TokensCommand prints the token stream of a file, one token per line.
func TokensCommand(args []string) error {
	filename, source, err := readSource(args, "tokens")
	if err != nil {
		return err
	}
	tokens, err := compiler.Tokens(source, filename)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Type, tok.Lexeme)
	}
	return w.Flush()
}
