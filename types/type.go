// Package types is the structural type model for JavaScript values described by
// documentation annotations, and the translation of annotations into it.
//
// A Type answers two questions about another Type:
//   - IsOfType: would a value described by the other type satisfy this declared type?
//   - IsSupertypeOf: is the other type structurally narrower than or equal to this one?
//
// The two are not each other's inverse. Each variant decides every pairing itself,
// see the variant docs for the exact rules.
package types

import (
	"fmt"
	"github.com/cottand/typelint/internal/log"
	"github.com/hashicorp/go-set/v3"
	"slices"
)

var logger = log.DefaultLogger.With("section", "types")

// Type is implemented by exactly the variants in this package:
// *UnknownType, *InvalidType, *Primitive, *Alias, *Union, *Record and *Function
type Type interface {
	fmt.Stringer

	// IsOfType reports whether a value described by other satisfies this declared type
	IsOfType(other Type) bool
	// IsSupertypeOf reports whether other is structurally narrower than or equal to this type
	IsSupertypeOf(other Type) bool

	PropertyNames() []string
	// Property returns Unknown for properties that are not declared
	Property(name string) Type

	Return() Type
	// ArgumentCount returns ok=false when the type is not a function signature
	ArgumentCount() (count int, ok bool)
	Argument(index int) Type
	Parameter(name string) Type
	HasParameter(name string) bool

	// Hash is equal for structurally equal types, see Equal
	Hash() uint64

	isType()
}

var (
	_ Type = (*UnknownType)(nil)
	_ Type = (*InvalidType)(nil)
	_ Type = (*Primitive)(nil)
	_ Type = (*Alias)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*Function)(nil)
)

// Equal compares types structurally. Aliases are equal to their target,
// records ignore property declaration order and functions compare their
// return and positional arguments only
func Equal(this, other Type) bool {
	this, other = underlying(this), underlying(other)
	if this.Hash() != other.Hash() {
		return false
	}
	switch this := this.(type) {
	case *UnknownType:
		return IsUnknown(other)
	case *InvalidType:
		return IsInvalid(other)
	case *Primitive:
		p, ok := other.(*Primitive)
		return ok && this.name == p.name
	case *Union:
		u, ok := other.(*Union)
		return ok && slices.EqualFunc(this.members, u.members, Equal)
	case *Record:
		r, ok := other.(*Record)
		if !ok || this.Len() != r.Len() {
			return false
		}
		for _, name := range this.PropertyNames() {
			if !r.Has(name) || !Equal(this.Property(name), r.Property(name)) {
				return false
			}
		}
		return true
	case *Function:
		fn, ok := other.(*Function)
		return ok &&
			this.variadic == fn.variadic &&
			Equal(this.ret, fn.ret) &&
			slices.EqualFunc(this.args, fn.args, Equal)
	default:
		return false
	}
}

// Covers reports whether declared is a supertype of observed, where an observed
// union must be covered member by member. IsSupertypeOf on a declared union only
// asks whether a single member covers all of observed
func Covers(declared, observed Type) bool {
	if IsUnknown(declared) {
		return true
	}
	if u, ok := underlying(observed).(*Union); ok {
		return allOf(u.members, func(m Type) bool {
			return Covers(declared, m)
		})
	}
	return declared.IsSupertypeOf(observed)
}

// underlying follows alias chains to the first non-alias type.
// Types are immutable and alias targets are resolved when the alias is built,
// so a chain cannot loop back, but should one appear we answer Invalid rather than spin
func underlying(t Type) Type {
	alias, ok := t.(*Alias)
	if !ok {
		return t
	}
	seen := set.New[*Alias](1)
	for ok {
		if !seen.Insert(alias) {
			logger.Warn("cyclic typedef chain", "alias", alias.name)
			return Invalid
		}
		t = alias.target
		alias, ok = t.(*Alias)
	}
	return t
}

// IsUnknown reports whether t is (an alias of) the Unknown type
func IsUnknown(t Type) bool {
	_, ok := underlying(t).(*UnknownType)
	return ok
}

// IsInvalid reports whether t is (an alias of) the Invalid type
func IsInvalid(t Type) bool {
	_, ok := underlying(t).(*InvalidType)
	return ok
}

// Signature returns the function signature behind t, seeing through aliases
func Signature(t Type) (*Function, bool) {
	fn, ok := underlying(t).(*Function)
	return fn, ok
}

// Shape returns the record behind t, seeing through aliases
func Shape(t Type) (*Record, bool) {
	r, ok := underlying(t).(*Record)
	return r, ok
}

// noMembers provides the accessor defaults for types without structure
type noMembers struct{}

func (noMembers) isType()                    {}
func (noMembers) PropertyNames() []string    { return nil }
func (noMembers) Property(string) Type       { return Unknown }
func (noMembers) Return() Type               { return Invalid }
func (noMembers) ArgumentCount() (int, bool) { return 0, false }
func (noMembers) Argument(int) Type          { return Invalid }
func (noMembers) Parameter(string) Type      { return Unknown }
func (noMembers) HasParameter(string) bool   { return false }

// allOf reports whether pred holds for every member, and false for no members
func allOf(members []Type, pred func(Type) bool) bool {
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		if !pred(m) {
			return false
		}
	}
	return true
}

func anyOf(members []Type, pred func(Type) bool) bool {
	for _, m := range members {
		if pred(m) {
			return true
		}
	}
	return false
}
