// internal/errors/errors.go
package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	LexicalError ErrorType = "LexicalError"
	SyntaxError  ErrorType = "SyntaxError"
)

// SourceLocation represents a location in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	file := l.File
	if file == "" {
		file = "<input>"
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", file, l.Line)
}

// RizzError is a fatal compilation diagnostic.
type RizzError struct {
	Type     ErrorType
	Message  string
	Location SourceLocation
	Source   string // The source line where error occurred
	Cause    error  // Optional sentinel identifying the failure
}

// Unwrap exposes Cause to the standard errors.Is and errors.As.
func (e *RizzError) Unwrap() error {
	return e.Cause
}

// Error implements the error interface
func (e *RizzError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Type, e.Message, e.Location)
}

const (
	ansiRed   = "\x1b[31;1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// Pretty renders the error over several lines with the offending source
// line and a caret under the column.
func (e *RizzError) Pretty(color bool) string {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + ansiReset
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", paint(ansiRed, string(e.Type)), e.Message))
	sb.WriteString(fmt.Sprintf("  at %s\n", paint(ansiCyan, e.Location.String())))

	if e.Source != "" {
		gutter := fmt.Sprintf("%d | ", e.Location.Line)
		sb.WriteString(fmt.Sprintf("\n  %s%s\n", gutter, e.Source))
		sb.WriteString("  ")
		sb.WriteString(strings.Repeat(" ", len(gutter)))
		if e.Location.Column > 0 {
			sb.WriteString(strings.Repeat(" ", e.Location.Column-1))
		}
		sb.WriteString(paint(ansiRed, "^"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// NewLexicalError creates a new lexical error
func NewLexicalError(message string, file string, line, column int) *RizzError {
	return &RizzError{
		Type:    LexicalError,
		Message: message,
		Location: SourceLocation{
			File:   file,
			Line:   line,
			Column: column,
		},
	}
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string, file string, line, column int) *RizzError {
	return &RizzError{
		Type:    SyntaxError,
		Message: message,
		Location: SourceLocation{
			File:   file,
			Line:   line,
			Column: column,
		},
	}
}

// WithSource adds source code context to the error
func (e *RizzError) WithSource(source string) *RizzError {
	e.Source = source
	return e
}

// WithCause records a sentinel error callers can test for.
func (e *RizzError) WithCause(cause error) *RizzError {
	e.Cause = cause
	return e
}

// WithSourceText picks the error's line out of the full source text.
func (e *RizzError) WithSourceText(source string) *RizzError {
	lines := strings.Split(source, "\n")
	if e.Location.Line > 0 && e.Location.Line <= len(lines) {
		e.Source = strings.TrimRight(lines[e.Location.Line-1], "\r")
	}
	return e
}

// Is reports whether err is a RizzError of the given type.
func Is(err error, t ErrorType) bool {
	for err != nil {
		if re, ok := err.(*RizzError); ok {
			return re.Type == t
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
