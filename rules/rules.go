// Package rules are the checks that ask the type model whether what a program does
// agrees with what its annotations declare. Rules never fail: they report through a
// diag.Reporter and skip whatever the annotations leave Unknown
package rules

import (
	"fmt"
	"github.com/cottand/typelint/diag"
	"github.com/cottand/typelint/internal/log"
	"github.com/cottand/typelint/types"
	"github.com/xtgo/set"
	"slices"
	"sort"
)

var logger = log.DefaultLogger.With("section", "lint.rules")

const (
	ReturnType          = "return-type"
	CallArgumentType    = "call-argument-type"
	CallArgumentCount   = "call-argument-count"
	TypedefRedefinition = "typedef-redefinition"
)

// All are the names of every rule, in the order they run
var All = []string{ReturnType, CallArgumentType, CallArgumentCount, TypedefRedefinition}

// Return is a return statement whose value has an observed type
type Return struct {
	Line int
	Type types.Type
}

// Call is a call site with the observed types of its arguments
type Call struct {
	Callee string
	Line   int
	Args   []types.Type
}

// Mode selects how a declared type is matched against an observed one
type Mode int

const (
	// Structural accepts any observed type the declared one covers (types.Covers):
	// records may carry extra properties, a declared union needs a single matching
	// member and an observed union must match member by member.
	// It decides with IsSupertypeOf, not IsOfType, because IsOfType on a record
	// rejects observed records with extra properties
	Structural Mode = iota
	// Exact additionally requires the declared type to accept the observed one as a
	// value: records may not carry extra properties, and every member of a declared
	// union must accept the value
	Exact
)

func (m Mode) String() string {
	switch m {
	case Structural:
		return "structural"
	case Exact:
		return "exact"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Compatible decides whether an observed type may be used where declared is expected.
// Nothing is decided about Unknown on either side
func (m Mode) Compatible(declared, observed types.Type) bool {
	if types.IsUnknown(declared) || types.IsUnknown(observed) {
		return true
	}
	if !types.Covers(declared, observed) {
		return false
	}
	return m != Exact || declared.IsOfType(observed)
}

// MissingProperties lists, sorted, the properties declared has and observed does not,
// when both are records
func MissingProperties(declared, observed types.Type) []string {
	want, ok := types.Shape(declared)
	if !ok {
		return nil
	}
	have, ok := types.Shape(observed)
	if !ok {
		return nil
	}
	wantNames := sortedSet(want.PropertyNames())
	haveNames := sortedSet(have.PropertyNames())

	data := make([]string, 0, len(wantNames)+len(haveNames))
	data = append(data, wantNames...)
	data = append(data, haveNames...)
	n := set.Diff(sort.StringSlice(data), len(wantNames))
	return data[:n]
}

func sortedSet(names []string) []string {
	sorted := slices.Clone(names)
	sort.Strings(sorted)
	return sorted[:set.Uniq(sort.StringSlice(sorted))]
}

// Checker runs the rules, reporting what they find to Report
type Checker struct {
	Mode   Mode
	Report diag.Reporter
}

// Returns reports return statements whose type does not match the return type
// documented for the function
func (c Checker) Returns(function string, declared types.Type, returns []Return) {
	expected := declared.Return()
	if types.IsUnknown(expected) || types.IsInvalid(expected) {
		logger.Debug("no documented return type, skipping", "function", function)
		return
	}
	for _, ret := range returns {
		if c.Mode.Compatible(expected, ret.Type) {
			continue
		}
		c.Report(diag.NewReturnTypeMismatch{
			At:       diag.At(ret.Line),
			Function: function,
			Declared: expected,
			Observed: ret.Type,
			Missing:  MissingProperties(expected, ret.Type),
		})
	}
}

// CallArgumentTypes reports arguments whose type does not match the documented
// parameter at the same position. Arguments past the documented ones are left to
// CallArgumentCount
func (c Checker) CallArgumentTypes(declared types.Type, call Call) {
	if _, ok := declared.ArgumentCount(); !ok {
		return
	}
	for i, arg := range call.Args {
		expected := declared.Argument(i)
		if types.IsInvalid(expected) || c.Mode.Compatible(expected, arg) {
			continue
		}
		c.Report(diag.NewArgumentTypeMismatch{
			At:       diag.At(call.Line),
			Function: call.Callee,
			Index:    i,
			Declared: expected,
			Observed: arg,
			Missing:  MissingProperties(expected, arg),
		})
	}
}

// CallArgumentCount reports calls with fewer arguments than the required
// parameters, or more than the declared ones for functions that are not variadic
func (c Checker) CallArgumentCount(declared types.Type, call Call) {
	count, ok := declared.ArgumentCount()
	if !ok {
		return
	}
	required, variadic := count, false
	if fn, ok := types.Signature(declared); ok {
		required, variadic = fn.RequiredArgumentCount(), fn.Variadic()
	}
	found := len(call.Args)
	if found >= required && (variadic || found <= count) {
		return
	}
	c.Report(diag.NewArgumentCountMismatch{
		At:       diag.At(call.Line),
		Function: call.Callee,
		Required: required,
		Declared: count,
		Variadic: variadic,
		Found:    found,
	})
}

// TypedefRedefinition reports a typedef whose registration replaced another one.
// previous is what the name resolved to before the annotation was translated (nil if
// nothing) and current what it resolves to after
func (c Checker) TypedefRedefinition(name string, previous, current types.Type, line int) {
	if previous == nil || current == nil || previous == current {
		return
	}
	c.Report(diag.NewTypedefRedefined{
		At:       diag.At(line),
		Name:     name,
		Previous: previous,
	})
}
