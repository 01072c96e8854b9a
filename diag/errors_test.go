package diag

import (
	"fmt"
	"github.com/cottand/typelint/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	d := NewReturnTypeMismatch{
		At:       At(12),
		Function: "area",
		Declared: types.Number,
		Observed: types.String,
	}
	assert.Equal(t, "(E001) function 'area' is documented to return 'number', but returns 'string'", FormatWithCode(d))
	assert.Equal(t,
		"shapes.json:12: error: (E001) function 'area' is documented to return 'number', but returns 'string'",
		FormatWithPosition(d, "shapes.json"))
}

func TestMessages(t *testing.T) {
	point := types.NewAlias("Point", types.NewRecord(types.Field{Name: "x", Type: types.Number}))
	testCases := []struct {
		diagnostic Diagnostic
		code       Code
		severity   Severity
		message    string
	}{
		{
			diagnostic: NewArgumentTypeMismatch{At: 1, Function: "move", Index: 1, Declared: point, Observed: types.Object, Missing: []string{"x"}},
			code:       ArgumentTypeMismatch,
			severity:   SeverityError,
			message:    "argument 2 of 'move' expects 'Point', but found '{}' (missing x)",
		},
		{
			diagnostic: NewArgumentCountMismatch{At: 2, Function: "move", Required: 1, Declared: 1, Found: 0},
			code:       ArgumentCountMismatch,
			severity:   SeverityError,
			message:    "'move' expects 1 arguments, but was called with 0",
		},
		{
			diagnostic: NewTypedefRedefined{At: 3, Name: "Point", Previous: types.Object},
			code:       TypedefRedefined,
			severity:   SeverityWarning,
			message:    "typedef 'Point' redefined, it was previously '{}'",
		},
		{
			diagnostic: NewMalformedAnnotation{At: 4, Subject: "move", From: fmt.Errorf("bad braces")},
			code:       MalformedAnnotation,
			severity:   SeverityError,
			message:    "cannot use the annotation of 'move': bad braces",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.message, func(t *testing.T) {
			assert.Equal(t, testCase.code, testCase.diagnostic.Code())
			assert.Equal(t, testCase.severity, testCase.diagnostic.Severity())
			assert.Equal(t, testCase.message, testCase.diagnostic.Error())
		})
	}
}

func TestMalformedAnnotationUnwraps(t *testing.T) {
	cause := errors.New("cause")
	var err error = NewMalformedAnnotation{From: errors.Wrap(cause, "context")}
	assert.True(t, errors.Is(err, cause))
}

func TestErrorsNilSafe(t *testing.T) {
	var none *Errors
	assert.Zero(t, none.Len())
	assert.False(t, none.HasError())
	assert.Empty(t, none.Sorted())

	merged := none.Merge(nil)
	assert.Nil(t, merged)

	withOne := none.With(NewTypedefRedefined{At: 1, Name: "T", Previous: types.Object})
	require.NotNil(t, withOne)
	assert.Equal(t, 1, withOne.Len())
	assert.False(t, withOne.HasError())
}

func TestErrorsSortedAndMerged(t *testing.T) {
	errs := &Errors{}
	errs.Report(NewArgumentCountMismatch{At: 9, Function: "b"})
	errs.Report(NewArgumentCountMismatch{At: 2, Function: "a"})
	errs.Report(NewTypedefRedefined{At: 9, Name: "c", Previous: types.Object})

	other := (&Errors{}).With(NewMalformedAnnotation{At: 1, Subject: "d", From: errors.New("x")})
	errs = errs.Merge(other)

	var lines []string
	for _, d := range errs.Sorted() {
		lines = append(lines, fmt.Sprintf("%d%d", d.Line(), d.Code()))
	}
	assert.Equal(t, []string{"15", "23", "93", "94"}, lines)
	assert.True(t, errs.HasError())
	// reporting order is kept
	assert.Equal(t, 9, errs.Errors()[0].Line())
}

func TestErrorsLogValue(t *testing.T) {
	errs := (&Errors{}).With(NewArgumentCountMismatch{At: 5, Function: "f", Required: 1, Declared: 1})
	sb := &strings.Builder{}
	logger := slog.New(slog.NewTextHandler(sb, nil))
	logger.Info("checked", "errors", errs)
	assert.Contains(t, sb.String(), "errors.e0.line=5")
	assert.Contains(t, sb.String(), "(E003)")
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "Severity(7)", Severity(7).String())
}
