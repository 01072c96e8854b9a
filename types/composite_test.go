package types

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestUnionIsNotDual(t *testing.T) {
	u := NewUnion(String, Number)

	// any member will do as a supertype
	assert.True(t, u.IsSupertypeOf(String))
	assert.True(t, u.IsSupertypeOf(Number))
	assert.False(t, u.IsSupertypeOf(Boolean))

	// but every member must accept the value
	assert.False(t, u.IsOfType(String))
	assert.False(t, u.IsOfType(Number))

	for _, x := range append(allVariants(), u, NewUnion(String, Null), NewUnion()) {
		t.Run(x.String(), func(t *testing.T) {
			assert.Equal(t, String.IsSupertypeOf(x) || Number.IsSupertypeOf(x), u.IsSupertypeOf(x))
			assert.Equal(t, String.IsOfType(x) && Number.IsOfType(x), u.IsOfType(x))
		})
	}
}

func TestUnionOfUnion(t *testing.T) {
	wide := NewUnion(String, Number, Null)
	narrow := NewUnion(String, Null)

	// no single member of wide is a supertype of all of narrow
	assert.False(t, wide.IsSupertypeOf(narrow))
	assert.False(t, wide.IsSupertypeOf(wide))

	assert.True(t, Covers(wide, narrow))
	assert.False(t, Covers(narrow, wide))
	assert.True(t, Covers(wide, wide))

	flat := NewUnion(NewUnion(String, Number), Null)
	assert.Len(t, flat.Members(), 3)
	assert.Equal(t, "string|number|null", flat.String())
}

func TestEmptyUnionAcceptsNothing(t *testing.T) {
	empty := NewUnion()
	assert.False(t, empty.IsOfType(String))
	assert.False(t, empty.IsSupertypeOf(String))
	assert.False(t, Covers(empty, String))
}

func TestCovers(t *testing.T) {
	maybeString := NewUnion(String, Null)
	testCases := []struct {
		name               string
		declared, observed Type
		expected           bool
	}{
		{"primitive", String, String, true},
		{"union member", maybeString, Null, true},
		{"union by members", NewUnion(Null, Number, String), maybeString, true},
		{"union wider than declared", String, maybeString, false},
		{"unknown declared", Unknown, NewUnion(), true},
		{"empty observed union", maybeString, NewUnion(), false},
		{"alias of union", NewAlias("MaybeString", maybeString), NewAlias("Also", maybeString), true},
		{"record field union", NewRecord(Field{"a", maybeString}), NewRecord(Field{"a", maybeString}), true},
		{"function union argument", NewFunction(Null, []Type{maybeString}, nil), NewFunction(Null, []Type{maybeString}, nil), true},
		{"function union return", NewFunction(maybeString, nil, nil), NewFunction(String, nil, nil), true},
		{"function wider return", NewFunction(String, nil, nil), NewFunction(maybeString, nil, nil), false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Covers(testCase.declared, testCase.observed))
		})
	}
}

func TestPrimitiveAgainstUnion(t *testing.T) {
	assert.True(t, String.IsOfType(NewUnion(String, NewPrimitive("string"))))
	assert.False(t, String.IsOfType(NewUnion(String, Null)))
	assert.False(t, String.IsSupertypeOf(NewUnion(String, Null)))
}

func TestRecordReflexiveAndOpen(t *testing.T) {
	records := []*Record{
		Object,
		NewRecord(Field{"a", Number}),
		NewRecord(Field{"a", Number}, Field{"b", NewUnion(String, Null)}),
		NewRecord(Field{"inner", NewRecord(Field{"x", Number})}),
	}
	for _, r := range records {
		t.Run(r.String(), func(t *testing.T) {
			assert.True(t, r.IsSupertypeOf(r))
			assert.True(t, IsUnknown(r.Property("undeclared")))
			assert.False(t, r.Has("undeclared"))
		})
	}
}

func TestRecordSubtyping(t *testing.T) {
	point := NewRecord(Field{"x", Number}, Field{"y", Number})
	wider := NewRecord(Field{"x", Number}, Field{"y", Number}, Field{"z", Number})
	wrong := NewRecord(Field{"x", String}, Field{"y", Number})
	partial := NewRecord(Field{"x", Number})

	assert.True(t, point.IsSupertypeOf(wider))
	assert.False(t, point.IsSupertypeOf(wrong))
	assert.False(t, point.IsSupertypeOf(partial))
	assert.False(t, wider.IsSupertypeOf(point))

	assert.True(t, point.IsOfType(point))
	assert.True(t, point.IsOfType(partial))
	assert.False(t, point.IsOfType(wrong))
	// z is Unknown on point, and Unknown only accepts Unknown
	assert.False(t, point.IsOfType(wider))

	assert.True(t, Object.IsSupertypeOf(point))
	assert.False(t, Object.IsSupertypeOf(String))
	assert.False(t, point.IsOfType(String))
	assert.False(t, point.IsOfType(Unknown))
}

func TestRecordAgainstUnion(t *testing.T) {
	point := NewRecord(Field{"x", Number})
	both := NewUnion(NewRecord(Field{"x", Number}, Field{"label", String}), NewRecord(Field{"x", Number}))
	assert.True(t, point.IsSupertypeOf(both))
	assert.False(t, point.IsSupertypeOf(NewUnion(point, Null)))
	// delegated to the union
	assert.Equal(t, NewUnion(point, Null).IsSupertypeOf(point), point.IsOfType(NewUnion(point, Null)))
}

func TestRecordIsPersistent(t *testing.T) {
	r := NewRecord(Field{"a", Number})
	r2 := r.With("b", String)
	r3 := r2.With("a", Boolean)

	assert.Equal(t, "{a:number}", r.String())
	assert.Equal(t, "{a:number, b:string}", r2.String())
	assert.Equal(t, "{a:boolean, b:string}", r3.String())
	assert.Equal(t, 2, r3.Len())
	assert.Equal(t, 0, Object.Len())
}

func TestRecordHashIgnoresOrder(t *testing.T) {
	ab := NewRecord(Field{"a", Number}, Field{"b", String})
	ba := NewRecord(Field{"b", String}, Field{"a", Number})
	assert.True(t, Equal(ab, ba))
	assert.NotEqual(t, ab.String(), ba.String())
	assert.False(t, Equal(ab, NewRecord(Field{"a", Number})))
}

func TestFunctionAccessors(t *testing.T) {
	fn := NewFunction(Boolean, []Type{Number, String}, map[string]Type{"a": Number, "b": String})

	count, ok := fn.ArgumentCount()
	require.True(t, ok)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, fn.RequiredArgumentCount())
	assert.True(t, Equal(Number, fn.Argument(0)))
	assert.True(t, IsInvalid(fn.Argument(2)))
	assert.True(t, IsInvalid(fn.Argument(-1)))
	assert.True(t, Equal(String, fn.Parameter("b")))
	assert.True(t, fn.HasParameter("a"))
	assert.True(t, IsUnknown(fn.Parameter("c")))
	assert.True(t, Equal(Boolean, fn.Return()))
	assert.Equal(t, "function(number,string):boolean", fn.String())
}

func TestFunctionWithoutArguments(t *testing.T) {
	fn := NewFunction(Unknown, nil, nil)
	count, ok := fn.ArgumentCount()
	assert.True(t, ok)
	assert.Zero(t, count)
	assert.True(t, IsInvalid(fn.Argument(0)))
	assert.Equal(t, "function():*", fn.String())
}

func TestVariadicFunctionRepeatsLastArgument(t *testing.T) {
	fn := NewFunction(Unknown, []Type{String, Number}, nil).withRequired(1).withVariadic()
	assert.True(t, fn.Variadic())
	assert.Equal(t, 1, fn.RequiredArgumentCount())
	assert.True(t, Equal(Number, fn.Argument(5)))
}

func TestFunctionSubtyping(t *testing.T) {
	record := NewRecord(Field{"x", Number})
	wider := NewRecord(Field{"x", Number}, Field{"y", Number})

	takesRecord := NewFunction(Boolean, []Type{String, record}, nil)
	takesWider := NewFunction(Boolean, []Type{String, wider}, nil)

	// contravariant in every position, not only the first
	assert.True(t, takesWider.IsSupertypeOf(takesRecord))
	assert.False(t, takesRecord.IsSupertypeOf(takesWider))

	returnsWider := NewFunction(wider, nil, nil)
	returnsRecord := NewFunction(record, nil, nil)
	assert.True(t, returnsRecord.IsSupertypeOf(returnsWider))
	assert.False(t, returnsWider.IsSupertypeOf(returnsRecord))

	// different arity
	assert.False(t, NewFunction(Boolean, []Type{String}, nil).IsSupertypeOf(takesRecord))
	assert.False(t, takesRecord.IsSupertypeOf(NewFunction(Boolean, []Type{String}, nil)))

	assert.True(t, takesRecord.IsOfType(takesRecord))
	assert.False(t, takesRecord.IsOfType(String))
	assert.False(t, takesRecord.IsSupertypeOf(record))
}

func TestEqualIsStructural(t *testing.T) {
	assert.True(t, Equal(NewUnion(String, Number), NewUnion(NewPrimitive("string"), NewPrimitive("number"))))
	assert.False(t, Equal(NewUnion(String, Number), NewUnion(Number, String)))
	assert.True(t, Equal(
		NewFunction(String, []Type{Number}, nil),
		NewFunction(NewPrimitive("string"), []Type{NewPrimitive("number")}, map[string]Type{"n": Number}),
	))
	assert.False(t, Equal(Unknown, Invalid))
	assert.True(t, Equal(NewAlias("Maybe", NewUnion(String, Null)), NewUnion(String, Null)))

	point := NewRecord(Field{"x", Number}, Field{"y", Number})
	assert.True(t, Equal(point, NewRecord(Field{"y", Number}, Field{"x", Number})))
	assert.False(t, Equal(point, NewRecord(Field{"x", Number}, Field{"y", String})))
	assert.False(t, Equal(point, NewRecord(Field{"x", Number}, Field{"z", Number})))
	assert.False(t, Equal(point, NewRecord(Field{"x", Number})))
	assert.False(t, Equal(point, NewUnion(point)))

	fn := NewFunction(String, []Type{Number}, nil)
	assert.False(t, Equal(fn, fn.withVariadic()))
	assert.False(t, Equal(fn, NewFunction(String, []Type{Number, Number}, nil)))

	for _, x := range allVariants() {
		for _, y := range allVariants() {
			if Equal(x, y) {
				assert.Equal(t, x.Hash(), y.Hash(), "%s and %s", x, y)
			}
		}
	}
}
