// Package diag holds the diagnostics rules report about a scanned unit
package diag

import (
	"fmt"
	"github.com/cottand/typelint/types"
	"strings"
)

type Code int

const (
	None Code = iota
	ReturnTypeMismatch
	ArgumentTypeMismatch
	ArgumentCountMismatch
	TypedefRedefined
	MalformedAnnotation
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single finding at a line of the scanned unit
type Diagnostic interface {
	Error() string
	Code() Code
	Severity() Severity
	Line() int
}

// Reporter is how rules hand diagnostics to whoever runs them
type Reporter func(Diagnostic)

func FormatWithCode(d Diagnostic) string {
	return fmt.Sprintf("(E%03d) %s", d.Code(), d.Error())
}

// FormatWithPosition renders d the way compilers do, `file:line: severity: (E001) message`
func FormatWithPosition(d Diagnostic, file string) string {
	return fmt.Sprintf("%s:%d: %s: %s", file, d.Line(), d.Severity(), FormatWithCode(d))
}

// At is embedded by diagnostics to provide their line
type At int

func (a At) Line() int { return int(a) }

type NewReturnTypeMismatch struct {
	At
	Function string
	Declared types.Type
	Observed types.Type
	// Missing may list properties Observed lacks
	Missing []string
}

func (e NewReturnTypeMismatch) Error() string {
	return fmt.Sprintf("function '%s' is documented to return '%v', but returns '%v'%s",
		e.Function, e.Declared, e.Observed, missingSuffix(e.Missing))
}
func (e NewReturnTypeMismatch) Code() Code         { return ReturnTypeMismatch }
func (e NewReturnTypeMismatch) Severity() Severity { return SeverityError }

type NewArgumentTypeMismatch struct {
	At
	Function string
	// Index is zero based
	Index    int
	Declared types.Type
	Observed types.Type
	Missing  []string
}

func (e NewArgumentTypeMismatch) Error() string {
	return fmt.Sprintf("argument %d of '%s' expects '%v', but found '%v'%s",
		e.Index+1, e.Function, e.Declared, e.Observed, missingSuffix(e.Missing))
}
func (e NewArgumentTypeMismatch) Code() Code         { return ArgumentTypeMismatch }
func (e NewArgumentTypeMismatch) Severity() Severity { return SeverityError }

type NewArgumentCountMismatch struct {
	At
	Function string
	Required int
	Declared int
	Variadic bool
	Found    int
}

func (e NewArgumentCountMismatch) Error() string {
	var expected string
	switch {
	case e.Variadic:
		expected = fmt.Sprintf("at least %d", e.Required)
	case e.Required == e.Declared:
		expected = fmt.Sprintf("%d", e.Declared)
	default:
		expected = fmt.Sprintf("%d to %d", e.Required, e.Declared)
	}
	return fmt.Sprintf("'%s' expects %s arguments, but was called with %d", e.Function, expected, e.Found)
}
func (e NewArgumentCountMismatch) Code() Code         { return ArgumentCountMismatch }
func (e NewArgumentCountMismatch) Severity() Severity { return SeverityError }

type NewTypedefRedefined struct {
	At
	Name     string
	Previous types.Type
}

func (e NewTypedefRedefined) Error() string {
	return fmt.Sprintf("typedef '%s' redefined, it was previously '%v'", e.Name, e.Previous)
}
func (e NewTypedefRedefined) Code() Code         { return TypedefRedefined }
func (e NewTypedefRedefined) Severity() Severity { return SeverityWarning }

type NewMalformedAnnotation struct {
	At
	Subject string
	From    error
}

func (e NewMalformedAnnotation) Error() string {
	return fmt.Sprintf("cannot use the annotation of '%s': %v", e.Subject, e.From)
}
func (e NewMalformedAnnotation) Code() Code         { return MalformedAnnotation }
func (e NewMalformedAnnotation) Severity() Severity { return SeverityError }
func (e NewMalformedAnnotation) Unwrap() error      { return e.From }

func missingSuffix(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return fmt.Sprintf(" (missing %s)", strings.Join(missing, ", "))
}
