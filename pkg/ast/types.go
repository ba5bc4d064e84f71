package ast

import (
	"fmt"
	"strings"
)

// DataType is the interface for nodes of the type tree
type DataType interface {
	implDataType()
	String() string
}

// Primitive is a named scalar type. Name keeps the spelling (int, char, ...).
type Primitive struct {
	Name     string
	Unsigned bool
}

// Pointer wraps the pointed-to type
type Pointer struct {
	Inner DataType
}

// Array is a fixed-length array of Inner
type Array struct {
	Length uint32
	Inner  DataType
}

// StructType is an inline struct body
type StructType struct {
	Fields []Property
}

// EnumField is one enumerator with its resolved value
type EnumField struct {
	Name  string
	Value uint32
}

// EnumType is an inline enum body
type EnumType struct {
	Fields []EnumField
}

func (Primitive) implDataType()  {}
func (Pointer) implDataType()    {}
func (Array) implDataType()      {}
func (StructType) implDataType() {}
func (EnumType) implDataType()   {}

func (t Primitive) String() string {
	if t.Unsigned {
		return "unsigned " + t.Name
	}
	return t.Name
}

func (t Pointer) String() string { return t.Inner.String() + "*" }

func (t Array) String() string {
	base, dims := splitArray(t)
	return base.String() + dims
}

func (t StructType) String() string {
	var sb strings.Builder
	sb.WriteString("struct {")
	for _, f := range t.Fields {
		fmt.Fprintf(&sb, " %s;", Declarator(f.Type, f.Name))
	}
	sb.WriteString(" }")
	return sb.String()
}

func (t EnumType) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = fmt.Sprintf("%s = %d", f.Name, f.Value)
	}
	return "enum { " + strings.Join(parts, ", ") + " }"
}

// Declarator renders "type name" in C order, with array dimensions after the
// name: Declarator(Array{4, int}, "a") == "int a[4]".
func Declarator(t DataType, name string) string {
	base, dims := splitArray(t)
	return base.String() + " " + name + dims
}

// splitArray strips the array layers of t, returning the element type and
// the dimensions outermost first.
func splitArray(t DataType) (DataType, string) {
	var dims strings.Builder
	for {
		arr, ok := t.(Array)
		if !ok {
			return t, dims.String()
		}
		fmt.Fprintf(&dims, "[%d]", arr.Length)
		t = arr.Inner
	}
}

// CloneType returns a deep copy of t so that every tree owns its type nodes
func CloneType(t DataType) DataType {
	switch t := t.(type) {
	case Primitive:
		return t
	case Pointer:
		return Pointer{Inner: CloneType(t.Inner)}
	case Array:
		return Array{Length: t.Length, Inner: CloneType(t.Inner)}
	case StructType:
		fields := make([]Property, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Property{Name: f.Name, Type: CloneType(f.Type)}
		}
		return StructType{Fields: fields}
	case EnumType:
		return EnumType{Fields: append([]EnumField(nil), t.Fields...)}
	}
	return t
}
