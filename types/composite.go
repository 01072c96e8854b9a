package types

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/typelint/util"
	"strings"
)

// Union holds its members in declaration order.
//
// As a declared type it is deliberately strict: IsOfType requires every member to
// accept the value. IsSupertypeOf is the usual union rule, any member will do.
// A union without members accepts nothing.
type Union struct {
	noMembers
	members []Type
}

// NewUnion builds a union, flattening members that are unions themselves
func NewUnion(members ...Type) *Union {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		if u, ok := m.(*Union); ok {
			flat = append(flat, u.members...)
			continue
		}
		flat = append(flat, m)
	}
	return &Union{members: flat}
}

func (u *Union) Members() []Type { return u.members }

func (u *Union) IsOfType(other Type) bool {
	return allOf(u.members, func(m Type) bool {
		return m.IsOfType(other)
	})
}

// IsSupertypeOf holds when any member is a supertype of other, even when other is a
// union itself. Use Covers to take an observed union member by member
func (u *Union) IsSupertypeOf(other Type) bool {
	return anyOf(u.members, func(m Type) bool {
		return m.IsSupertypeOf(other)
	})
}

func (u *Union) String() string {
	return util.JoinString(u.members, "|")
}

func (u *Union) Hash() uint64 {
	const prime1 uint64 = 433
	const prime2 uint64 = 9973

	hash := prime2
	for _, m := range u.members {
		hash = hash*prime1 ^ m.Hash()
	}
	return hash
}

// Field is a single property of a Record
type Field struct {
	Name string
	Type Type
}

// Record is a structural object type. Undeclared properties are Unknown rather than
// absent, so that an open-world object is still compatible with what we do not know.
//
// Records are persistent: With returns a new Record and leaves the receiver untouched
type Record struct {
	noMembers
	// order keeps property names in declaration order, for rendering
	order  *immutable.List[string]
	fields *immutable.Map[string, Type]
}

// NewRecord builds a record. A repeated name keeps its first position and its last type
func NewRecord(fields ...Field) *Record {
	r := &Record{
		order:  immutable.NewList[string](),
		fields: immutable.NewMap[string, Type](nil),
	}
	for _, f := range fields {
		r = r.With(f.Name, f.Type)
	}
	return r
}

// With returns a copy of r where property name has type t
func (r *Record) With(name string, t Type) *Record {
	order := r.order
	if _, exists := r.fields.Get(name); !exists {
		order = order.Append(name)
	}
	return &Record{
		order:  order,
		fields: r.fields.Set(name, t),
	}
}

// Has reports whether name is declared, as opposed to Unknown by default
func (r *Record) Has(name string) bool {
	_, ok := r.fields.Get(name)
	return ok
}

func (r *Record) Len() int { return r.order.Len() }

func (r *Record) PropertyNames() []string {
	names := make([]string, 0, r.order.Len())
	itr := r.order.Iterator()
	for !itr.Done() {
		_, name := itr.Next()
		names = append(names, name)
	}
	return names
}

func (r *Record) Property(name string) Type {
	t, ok := r.fields.Get(name)
	if !ok {
		return Unknown
	}
	return t
}

// IsOfType rejects primitives outright. Against another record, every property other
// declares must be accepted by r's type for it. Other shapes decide for themselves
// through their IsSupertypeOf
func (r *Record) IsOfType(other Type) bool {
	switch other := underlying(other).(type) {
	case *Primitive, *UnknownType, *InvalidType:
		return false
	case *Record:
		for _, name := range other.PropertyNames() {
			if !r.Property(name).IsOfType(other.Property(name)) {
				return false
			}
		}
		return true
	default:
		return other.IsSupertypeOf(r)
	}
}

// IsSupertypeOf is the structural mirror of IsOfType: every property r declares must
// cover other's type for it, and properties only other has are ignored
func (r *Record) IsSupertypeOf(other Type) bool {
	switch other := underlying(other).(type) {
	case *Record:
		for _, name := range r.PropertyNames() {
			if !Covers(r.Property(name), other.Property(name)) {
				return false
			}
		}
		return true
	case *Union:
		return allOf(other.members, r.IsSupertypeOf)
	default:
		return false
	}
}

func (r *Record) String() string {
	sb := strings.Builder{}
	sb.WriteString("{")
	for i, name := range r.PropertyNames() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name + ":" + r.Property(name).String())
	}
	sb.WriteString("}")
	return sb.String()
}

// Hash does not depend on declaration order
func (r *Record) Hash() uint64 {
	const prime1 uint64 = 15487469
	const prime2 uint64 = 32452843

	hash := prime2
	itr := r.fields.Iterator()
	for !itr.Done() {
		name, t, _ := itr.Next()
		hash += (hashString(name) * prime1) ^ t.Hash()
	}
	return hash
}

// Function is a signature: a return type, positional arguments and the names those
// arguments are bound to inside the function body.
//
// Argument out of range is Invalid, except for variadic functions where the last
// argument repeats. Parameter of an undeclared name is Unknown.
type Function struct {
	ret      Type
	args     []Type
	params   *immutable.Map[string, Type]
	required int
	variadic bool
}

// NewFunction builds a signature where every argument is required
func NewFunction(ret Type, args []Type, params map[string]Type) *Function {
	b := immutable.NewMapBuilder[string, Type](nil)
	for name, t := range params {
		b.Set(name, t)
	}
	return &Function{
		ret:      ret,
		args:     args,
		params:   b.Map(),
		required: len(args),
	}
}

// withRequired returns a copy of f where only the first n arguments are required
func (f *Function) withRequired(n int) *Function {
	copied := *f
	copied.required = min(max(n, 0), len(f.args))
	return &copied
}

// withVariadic returns a copy of f whose last argument may repeat
func (f *Function) withVariadic() *Function {
	copied := *f
	copied.variadic = len(f.args) > 0
	return &copied
}

func (f *Function) isType()                    {}
func (f *Function) Return() Type               { return f.ret }
func (f *Function) ArgumentCount() (int, bool) { return len(f.args), true }
func (f *Function) PropertyNames() []string    { return nil }
func (f *Function) Property(string) Type       { return Unknown }

// RequiredArgumentCount is the number of leading arguments a call must provide
func (f *Function) RequiredArgumentCount() int { return f.required }

// Variadic reports whether the last argument accepts any number of values
func (f *Function) Variadic() bool { return f.variadic }

func (f *Function) Argument(index int) Type {
	switch {
	case index >= 0 && index < len(f.args):
		return f.args[index]
	case f.variadic && index >= len(f.args):
		return f.args[len(f.args)-1]
	default:
		return Invalid
	}
}

func (f *Function) Parameter(name string) Type {
	t, ok := f.params.Get(name)
	if !ok {
		return Unknown
	}
	return t
}

func (f *Function) HasParameter(name string) bool {
	_, ok := f.params.Get(name)
	return ok
}

func (f *Function) IsOfType(other Type) bool {
	switch other := underlying(other).(type) {
	case *Function:
		return f.IsSupertypeOf(other)
	case *Union:
		return other.IsSupertypeOf(f)
	default:
		return false
	}
}

// IsSupertypeOf compares returns covariantly and arguments contravariantly, position
// by position over the longer argument list. A position missing on one side is
// Invalid there, so signatures of different arity are unrelated unless the extra
// arguments of other are Unknown
func (f *Function) IsSupertypeOf(other Type) bool {
	switch other := underlying(other).(type) {
	case *Function:
		if !Covers(f.ret, other.ret) {
			return false
		}
		for i := range max(len(f.args), len(other.args)) {
			if !Covers(other.Argument(i), f.Argument(i)) {
				return false
			}
		}
		return true
	case *Union:
		return allOf(other.members, f.IsSupertypeOf)
	default:
		return false
	}
}

func (f *Function) String() string {
	return "function(" + util.JoinString(f.args, ",") + "):" + f.ret.String()
}

func (f *Function) Hash() uint64 {
	var hash uint64 = 2166136261
	for _, arg := range f.args {
		hash = hash*16777619 ^ arg.Hash()
	}
	hash = hash*16777619 ^ f.ret.Hash()
	return hash
}
