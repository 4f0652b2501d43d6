package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorLine(t *testing.T) {
	err := NewSyntaxError("expected END, got EOF", "main.rizz", 1, 10)
	want := "SyntaxError: expected END, got EOF at main.rizz:1:10"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = NewLexicalError("unexpected character '@'", "", 3, 0)
	want = "LexicalError: unexpected character '@' at <input>:3"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPrettyCaret(t *testing.T) {
	src := "huh x = 5;\nhuh y = @;\n"
	err := NewLexicalError("unexpected character '@'", "main.rizz", 2, 9).WithSourceText(src)

	out := err.Pretty(false)
	lines := strings.Split(out, "\n")
	if lines[0] != "LexicalError: unexpected character '@'" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(out, "2 | huh y = @;") {
		t.Errorf("missing source line in:\n%s", out)
	}

	srcLine, caret := lines[3], lines[4]
	if strings.Index(caret, "^") != strings.Index(srcLine, "@") {
		t.Errorf("caret misplaced:\n%s\n%s", srcLine, caret)
	}
}

func TestPrettyColor(t *testing.T) {
	err := NewSyntaxError("boom", "a.rizz", 1, 1)
	if strings.Contains(err.Pretty(false), "\x1b[") {
		t.Error("plain output contains escape codes")
	}
	if !strings.Contains(err.Pretty(true), "\x1b[31;1mSyntaxError") {
		t.Error("colour output missing red error type")
	}
}

func TestIsUnwraps(t *testing.T) {
	base := NewSyntaxError("boom", "a.rizz", 1, 1)
	wrapped := fmt.Errorf("compile a.rizz: %w", base)

	if !Is(wrapped, SyntaxError) {
		t.Error("expected wrapped error to be a SyntaxError")
	}
	if Is(wrapped, LexicalError) {
		t.Error("wrapped SyntaxError reported as LexicalError")
	}
	if Is(fmt.Errorf("plain"), SyntaxError) {
		t.Error("plain error reported as SyntaxError")
	}
}
