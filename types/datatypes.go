package types

import (
	"hash/fnv"
	"strings"
)

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// UnknownType is `*`, the type we know nothing about.
//
// It is a supertype of everything, but as a declared type it is only satisfied
// by a value that is itself Unknown. Accessors see through it as more Unknown.
type UnknownType struct{ noMembers }

func (*UnknownType) IsOfType(other Type) bool { return IsUnknown(other) }
func (*UnknownType) IsSupertypeOf(Type) bool  { return true }
func (*UnknownType) Return() Type             { return Unknown }
func (*UnknownType) Argument(int) Type        { return Unknown }
func (*UnknownType) String() string           { return "*" }
func (*UnknownType) Hash() uint64             { return 1099511628211 }

// InvalidType is the bottom type: it accepts nothing and is a supertype of nothing.
// Translation produces it for shapes it cannot characterise.
type InvalidType struct{ noMembers }

func (*InvalidType) IsOfType(Type) bool      { return false }
func (*InvalidType) IsSupertypeOf(Type) bool { return false }
func (*InvalidType) String() string          { return "invalid" }
func (*InvalidType) Hash() uint64            { return 16777619 }

// Primitive is a named type without structure, like `string` or `Date`.
// Two primitives are the same type iff their names are equal once whitespace is removed
type Primitive struct {
	noMembers
	name string
}

// NewPrimitive returns the primitive type called name, with all whitespace removed
func NewPrimitive(name string) *Primitive {
	return &Primitive{name: strings.Join(strings.Fields(name), "")}
}

func (p *Primitive) Name() string { return p.name }

// IsOfType accepts the same primitive, or a union all of whose members it accepts
func (p *Primitive) IsOfType(other Type) bool {
	switch other := underlying(other).(type) {
	case *Primitive:
		return p.name == other.name
	case *Union:
		return allOf(other.members, p.IsOfType)
	default:
		return false
	}
}

func (p *Primitive) IsSupertypeOf(other Type) bool {
	switch other := underlying(other).(type) {
	case *Primitive:
		return p.name == other.name
	case *Union:
		return allOf(other.members, p.IsSupertypeOf)
	default:
		return false
	}
}

func (p *Primitive) String() string { return p.name }

func (p *Primitive) Hash() uint64 {
	const prime1 uint64 = 1299709
	return prime1 ^ hashString(p.name)
}

// Alias is a typedef name standing for its target. It behaves exactly like the target,
// except that it renders as its name so diagnostics show what the user wrote
type Alias struct {
	name   string
	target Type
}

// NewAlias names target. Translation creates aliases for names found in a Typedefs registry
func NewAlias(name string, target Type) *Alias {
	return &Alias{name: name, target: target}
}

func (a *Alias) Name() string { return a.name }

// Target returns the aliased type, which may itself be an alias
func (a *Alias) Target() Type { return a.target }

func (a *Alias) isType()                       {}
func (a *Alias) IsOfType(other Type) bool      { return underlying(a).IsOfType(other) }
func (a *Alias) IsSupertypeOf(other Type) bool { return underlying(a).IsSupertypeOf(other) }
func (a *Alias) PropertyNames() []string       { return underlying(a).PropertyNames() }
func (a *Alias) Property(name string) Type     { return underlying(a).Property(name) }
func (a *Alias) Return() Type                  { return underlying(a).Return() }
func (a *Alias) ArgumentCount() (int, bool)    { return underlying(a).ArgumentCount() }
func (a *Alias) Argument(index int) Type       { return underlying(a).Argument(index) }
func (a *Alias) Parameter(name string) Type    { return underlying(a).Parameter(name) }
func (a *Alias) HasParameter(name string) bool { return underlying(a).HasParameter(name) }
func (a *Alias) String() string                { return a.name }
func (a *Alias) Hash() uint64                  { return underlying(a).Hash() }
