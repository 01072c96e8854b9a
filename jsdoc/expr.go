package jsdoc

// ExprKind is the discriminator the annotation parser emits in the "type" field of a
// type expression node
type ExprKind string

const (
	KindName        ExprKind = "NameExpression"
	KindUnion       ExprKind = "UnionType"
	KindRecord      ExprKind = "RecordType"
	KindField       ExprKind = "FieldType"
	KindFunction    ExprKind = "FunctionType"
	KindUndefined   ExprKind = "UndefinedLiteral"
	KindNull        ExprKind = "NullLiteral"
	KindVoid        ExprKind = "VoidLiteral"
	KindAll         ExprKind = "AllLiteral"
	KindUnknown     ExprKind = "UnknownLiteral"
	KindNullable    ExprKind = "NullableType"
	KindNonNullable ExprKind = "NonNullableType"
	KindOptional    ExprKind = "OptionalType"
	KindRest        ExprKind = "RestType"
	KindApplication ExprKind = "TypeApplication"
	KindArray       ExprKind = "ArrayType"
)

// TypeExpr is the declared-type syntax of a Tag, as produced by the annotation parser
type TypeExpr interface {
	Kind() ExprKind
	isTypeExpr()
}

var (
	_ TypeExpr = (*NameExpression)(nil)
	_ TypeExpr = (*UnionType)(nil)
	_ TypeExpr = (*RecordType)(nil)
	_ TypeExpr = (*FieldType)(nil)
	_ TypeExpr = (*FunctionType)(nil)
	_ TypeExpr = (*UndefinedLiteral)(nil)
	_ TypeExpr = (*NullLiteral)(nil)
	_ TypeExpr = (*VoidLiteral)(nil)
	_ TypeExpr = (*AllLiteral)(nil)
	_ TypeExpr = (*UnknownLiteral)(nil)
	_ TypeExpr = (*NullableType)(nil)
	_ TypeExpr = (*NonNullableType)(nil)
	_ TypeExpr = (*OptionalType)(nil)
	_ TypeExpr = (*RestType)(nil)
	_ TypeExpr = (*TypeApplication)(nil)
	_ TypeExpr = (*ArrayType)(nil)
	_ TypeExpr = (*UnrecognisedExpr)(nil)
)

// NameExpression is a plain type name, like `string` or `Point`
type NameExpression struct {
	Name string
}

// UnionType is `A|B|...`
type UnionType struct {
	Elements []TypeExpr
}

// RecordType is `{a: A, b}`
type RecordType struct {
	Fields []*FieldType
}

// FieldType is a single field of a RecordType. Value may be nil
type FieldType struct {
	Key   string
	Value TypeExpr
}

// FunctionType is `function(A, B): R`. Result, This and New may be nil
type FunctionType struct {
	Params []TypeExpr
	Result TypeExpr
	This   TypeExpr
	New    TypeExpr
}

type UndefinedLiteral struct{}

type NullLiteral struct{}

type VoidLiteral struct{}

// AllLiteral is `*`
type AllLiteral struct{}

// UnknownLiteral is a lone `?`
type UnknownLiteral struct{}

// NullableType is `?T` (or `T?` when Prefix is false)
type NullableType struct {
	Expression TypeExpr
	Prefix     bool
}

// NonNullableType is `!T` (or `T!` when Prefix is false)
type NonNullableType struct {
	Expression TypeExpr
	Prefix     bool
}

// OptionalType is `T=`, or a parameter written as `[name]`
type OptionalType struct {
	Expression TypeExpr
}

// RestType is `...T`
type RestType struct {
	Expression TypeExpr
}

// TypeApplication is `Base.<A, B>`
type TypeApplication struct {
	Expression   TypeExpr
	Applications []TypeExpr
}

// ArrayType is the tuple syntax `[A, B]`
type ArrayType struct {
	Elements []TypeExpr
}

// UnrecognisedExpr holds a node whose discriminator this package does not know.
// It is kept rather than rejected so that consumers decide how to fail on it.
type UnrecognisedExpr struct {
	RawKind string
	Raw     []byte
}

func (*NameExpression) Kind() ExprKind   { return KindName }
func (*UnionType) Kind() ExprKind        { return KindUnion }
func (*RecordType) Kind() ExprKind       { return KindRecord }
func (*FieldType) Kind() ExprKind        { return KindField }
func (*FunctionType) Kind() ExprKind     { return KindFunction }
func (*UndefinedLiteral) Kind() ExprKind { return KindUndefined }
func (*NullLiteral) Kind() ExprKind      { return KindNull }
func (*VoidLiteral) Kind() ExprKind      { return KindVoid }
func (*AllLiteral) Kind() ExprKind       { return KindAll }
func (*UnknownLiteral) Kind() ExprKind   { return KindUnknown }
func (*NullableType) Kind() ExprKind     { return KindNullable }
func (*NonNullableType) Kind() ExprKind  { return KindNonNullable }
func (*OptionalType) Kind() ExprKind     { return KindOptional }
func (*RestType) Kind() ExprKind         { return KindRest }
func (*TypeApplication) Kind() ExprKind  { return KindApplication }
func (*ArrayType) Kind() ExprKind        { return KindArray }
func (e *UnrecognisedExpr) Kind() ExprKind {
	return ExprKind(e.RawKind)
}

func (*NameExpression) isTypeExpr()   {}
func (*UnionType) isTypeExpr()        {}
func (*RecordType) isTypeExpr()       {}
func (*FieldType) isTypeExpr()        {}
func (*FunctionType) isTypeExpr()     {}
func (*UndefinedLiteral) isTypeExpr() {}
func (*NullLiteral) isTypeExpr()      {}
func (*VoidLiteral) isTypeExpr()      {}
func (*AllLiteral) isTypeExpr()       {}
func (*UnknownLiteral) isTypeExpr()   {}
func (*NullableType) isTypeExpr()     {}
func (*NonNullableType) isTypeExpr()  {}
func (*OptionalType) isTypeExpr()     {}
func (*RestType) isTypeExpr()         {}
func (*TypeApplication) isTypeExpr()  {}
func (*ArrayType) isTypeExpr()        {}
func (*UnrecognisedExpr) isTypeExpr() {}
