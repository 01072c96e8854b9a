package diag

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
)

// Errors collects diagnostics. A nil *Errors is empty, and With and Merge
// on it allocate, the way you would append to a nil slice
type Errors struct {
	errs []Diagnostic
}

func (r *Errors) With(err ...Diagnostic) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil || len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

// Report is a Reporter appending to r, which must not be nil
func (r *Errors) Report(d Diagnostic) {
	r.errs = append(r.errs, d)
}

func (r *Errors) Errors() []Diagnostic {
	if r == nil {
		return nil
	}
	return r.errs
}

// Sorted returns the diagnostics by line, keeping report order within a line
func (r *Errors) Sorted() []Diagnostic {
	sorted := slices.Clone(r.Errors())
	slices.SortStableFunc(sorted, func(a, b Diagnostic) int {
		return cmp.Compare(a.Line(), b.Line())
	})
	return sorted
}

// HasError reports whether any diagnostic has SeverityError
func (r *Errors) HasError() bool {
	return slices.ContainsFunc(r.Errors(), func(d Diagnostic) bool {
		return d.Severity() == SeverityError
	})
}

func (r *Errors) Len() int {
	return len(r.Errors())
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Int("line", v.Line()),
				slog.String("msg", FormatWithCode(v)),
			),
		})
	}
	return slog.GroupValue(vals...)
}
