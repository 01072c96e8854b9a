package types

// Well-known types. They are never mutated, so they are safe to share between
// goroutines. Nothing relies on their identity: compare with Equal or IsOfType.
var (
	Unknown Type = &UnknownType{}
	Invalid Type = &InvalidType{}

	String    = NewPrimitive("string")
	Number    = NewPrimitive("number")
	Boolean   = NewPrimitive("boolean")
	Null      = NewPrimitive("null")
	Undefined = NewPrimitive("undefined")
	RegExp    = NewPrimitive("RegExp")

	// Object is the empty record, what `object` means when nothing documents its shape
	Object = NewRecord()
)

// objectNames are the name expressions that denote a record shape
var objectNames = map[string]bool{
	"object": true,
	"Object": true,
}
