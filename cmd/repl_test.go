package cmd

import (
	"github.com/cottand/typelint/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestReplSession(t *testing.T) {
	s := &replSession{defs: types.NewTypedefs()}
	steps := []struct {
		line     string
		expected string
		err      bool
	}{
		{line: "", expected: ""},
		{line: "string|null", expected: "string|null"},
		{line: "function(number, string=): boolean", expected: "function(number,string):boolean"},
		{line: "typedef Point {x: number, y: number}", expected: "Point = {x:number, y:number}"},
		{line: "Point", expected: "Point"},
		{line: "?Point", expected: "Point|null"},
		{line: "Point <- {x: number, y: number, z: string}", expected: "ok"},
		{line: "Point <- {x: number}", expected: "'Point' does not accept '{x:number}' (missing y)"},
		{line: "string <- number", expected: "'string' does not accept 'number'"},
		{line: ".exact", expected: "mode exact"},
		{line: "Point <- {x: number, y: number, z: string}", expected: "'Point' does not accept '{x:number, y:number, z:string}'"},
		{line: ".structural", expected: "mode structural"},
		{line: "typedef Name string", err: true},
		{line: "typedef Empty", expected: "Empty = {}"},
		{line: ".typedefs", expected: "Empty = {}\nPoint = {x:number, y:number}"},
		{line: "{a: number", err: true},
		{line: "[string]", err: true},
		{line: "string <- {a:", err: true},
	}
	for _, step := range steps {
		out, err := s.eval(step.line)
		if step.err {
			assert.Error(t, err, step.line)
			continue
		}
		require.NoError(t, err, step.line)
		assert.Equal(t, step.expected, out, step.line)
	}
}
