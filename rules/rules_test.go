package rules

import (
	"fmt"
	"github.com/cottand/typelint/diag"
	"github.com/cottand/typelint/jsdoc"
	"github.com/cottand/typelint/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var (
	point = types.NewRecord(types.Field{Name: "x", Type: types.Number}, types.Field{Name: "y", Type: types.Number})
	wider = types.NewRecord(
		types.Field{Name: "x", Type: types.Number},
		types.Field{Name: "y", Type: types.Number},
		types.Field{Name: "label", Type: types.String},
	)
	onlyX = types.NewRecord(types.Field{Name: "x", Type: types.Number})
)

func collect() (*diag.Errors, Checker) {
	errs := &diag.Errors{}
	return errs, Checker{Report: errs.Report}
}

func TestModeCompatible(t *testing.T) {
	maybeString := types.NewUnion(types.String, types.Null)
	testCases := []struct {
		name               string
		declared, observed types.Type
		structural, exact  bool
	}{
		{"same primitive", types.String, types.String, true, true},
		{"different primitive", types.String, types.Number, false, false},
		{"unknown declared", types.Unknown, types.Number, true, true},
		{"unknown observed", types.Number, types.Unknown, true, true},
		{"union member", maybeString, types.Null, true, false},
		{"union does not fit primitive", types.String, maybeString, false, false},
		{"union by members", types.NewUnion(types.Number, types.Null, types.String), maybeString, true, false},
		{"same union", maybeString, maybeString, true, false},
		{"record with union property", types.NewRecord(types.Field{Name: "name", Type: maybeString}), types.NewRecord(types.Field{Name: "name", Type: types.String}), true, false},
		{"same record", point, point, true, true},
		{"wider record", point, wider, true, false},
		{"narrower record", point, onlyX, false, false},
		{"alias of record", types.NewAlias("Point", point), wider, true, false},
		{"object accepts any record", types.Object, wider, true, false},
		{"record against primitive", point, types.String, false, false},
		{"invalid observed", types.String, types.Invalid, false, false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.structural, Structural.Compatible(testCase.declared, testCase.observed), "structural")
			assert.Equal(t, testCase.exact, Exact.Compatible(testCase.declared, testCase.observed), "exact")
		})
	}
}

func TestMissingProperties(t *testing.T) {
	assert.Equal(t, []string{"y"}, MissingProperties(point, onlyX))
	assert.Equal(t, []string{"x", "y"}, MissingProperties(point, types.Object))
	assert.Empty(t, MissingProperties(point, wider))
	assert.Empty(t, MissingProperties(point, types.String))
	assert.Empty(t, MissingProperties(types.String, point))
	assert.Equal(t, []string{"label"}, MissingProperties(types.NewAlias("Labelled", wider), point))
}

func TestReturns(t *testing.T) {
	fn := types.NewFunction(point, nil, nil)
	errs, checker := collect()

	checker.Returns("origin", fn, []Return{
		{Line: 3, Type: point},
		{Line: 5, Type: wider},
		{Line: 7, Type: onlyX},
		{Line: 9, Type: types.String},
		{Line: 11, Type: types.Unknown},
	})

	require.Equal(t, 2, errs.Len())
	first := errs.Errors()[0].(diag.NewReturnTypeMismatch)
	assert.Equal(t, 7, first.Line())
	assert.Equal(t, []string{"y"}, first.Missing)
	assert.Equal(t, "function 'origin' is documented to return '{x:number, y:number}', but returns '{x:number}' (missing y)", first.Error())
	assert.Equal(t, 9, errs.Errors()[1].Line())
}

func TestReturnsSkipsUndocumented(t *testing.T) {
	errs, checker := collect()
	checker.Returns("f", types.NewFunction(types.Unknown, nil, nil), []Return{{Line: 1, Type: types.String}})
	checker.Returns("g", types.String, []Return{{Line: 1, Type: types.String}})
	checker.Returns("h", types.Unknown, []Return{{Line: 1, Type: types.String}})
	assert.Zero(t, errs.Len())
}

func TestReturnsExact(t *testing.T) {
	errs := &diag.Errors{}
	checker := Checker{Mode: Exact, Report: errs.Report}
	checker.Returns("origin", types.NewFunction(types.NewAlias("Point", point), nil, nil), []Return{{Line: 2, Type: wider}})
	require.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.Errors()[0].Error(), "documented to return 'Point'")
}

func TestCallArgumentTypes(t *testing.T) {
	fn := types.NewFunction(types.Unknown, []types.Type{types.String, point}, nil)
	errs, checker := collect()

	checker.CallArgumentTypes(fn, Call{Callee: "draw", Line: 4, Args: []types.Type{types.String, wider}})
	assert.Zero(t, errs.Len())

	checker.CallArgumentTypes(fn, Call{Callee: "draw", Line: 8, Args: []types.Type{types.Number, onlyX, types.String}})
	require.Equal(t, 2, errs.Len())

	first := errs.Errors()[0].(diag.NewArgumentTypeMismatch)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "argument 1 of 'draw' expects 'string', but found 'number'", first.Error())

	second := errs.Errors()[1].(diag.NewArgumentTypeMismatch)
	assert.Equal(t, 1, second.Index)
	assert.Equal(t, []string{"y"}, second.Missing)
}

func signature(t *testing.T, src string) types.Type {
	e, err := jsdoc.ParseType(src)
	require.NoError(t, err)
	fn, err := types.TranslateExpr(e, nil)
	require.NoError(t, err)
	return fn
}

func TestCallArgumentTypesVariadic(t *testing.T) {
	fn := signature(t, "function(string, ...number)")
	errs, checker := collect()

	checker.CallArgumentTypes(fn, Call{Callee: "log", Line: 1, Args: []types.Type{types.String, types.Number, types.Number}})
	assert.Zero(t, errs.Len())

	checker.CallArgumentTypes(fn, Call{Callee: "log", Line: 2, Args: []types.Type{types.String, types.Number, types.Boolean}})
	require.Equal(t, 1, errs.Len())
	assert.Equal(t, 2, errs.Errors()[0].(diag.NewArgumentTypeMismatch).Index)
}

func TestCallArgumentTypesSkipsNonFunctions(t *testing.T) {
	errs, checker := collect()
	checker.CallArgumentTypes(types.String, Call{Callee: "s", Args: []types.Type{types.Number}})
	checker.CallArgumentTypes(types.Unknown, Call{Callee: "u", Args: []types.Type{types.Number}})
	assert.Zero(t, errs.Len())
}

func TestCallArgumentCount(t *testing.T) {
	testCases := []struct {
		signature string
		args      int
		expected  string
	}{
		{"function(string, number)", 2, ""},
		{"function(string, number)", 1, "'f' expects 2 arguments, but was called with 1"},
		{"function(string, number)", 3, "'f' expects 2 arguments, but was called with 3"},
		{"function(string, number=)", 1, ""},
		{"function(string, number=)", 0, "'f' expects 1 to 2 arguments, but was called with 0"},
		{"function(string, ...number)", 5, ""},
		{"function(string, ...number)", 0, "'f' expects at least 1 arguments, but was called with 0"},
		{"function()", 0, ""},
		{"function()", 1, "'f' expects 0 arguments, but was called with 1"},
	}
	for _, testCase := range testCases {
		t.Run(fmt.Sprintf("%s with %d", testCase.signature, testCase.args), func(t *testing.T) {
			errs, checker := collect()
			args := make([]types.Type, testCase.args)
			for i := range args {
				args[i] = types.Unknown
			}
			checker.CallArgumentCount(signature(t, testCase.signature), Call{Callee: "f", Line: 1, Args: args})
			if testCase.expected == "" {
				assert.Zero(t, errs.Len())
				return
			}
			require.Equal(t, 1, errs.Len())
			assert.Equal(t, diag.ArgumentCountMismatch, errs.Errors()[0].Code())
			assert.Equal(t, testCase.expected, errs.Errors()[0].Error())
		})
	}
}

func TestTypedefRedefinition(t *testing.T) {
	errs, checker := collect()
	checker.TypedefRedefinition("Point", nil, point, 1)
	checker.TypedefRedefinition("Point", point, point, 2)
	assert.Zero(t, errs.Len())

	checker.TypedefRedefinition("Point", point, wider, 3)
	require.Equal(t, 1, errs.Len())
	d := errs.Errors()[0]
	assert.Equal(t, diag.SeverityWarning, d.Severity())
	assert.Equal(t, 3, d.Line())
	assert.Equal(t, "typedef 'Point' redefined, it was previously '{x:number, y:number}'", d.Error())
}
