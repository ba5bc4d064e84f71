// Package ast defines the syntax tree produced by the parser. Statements and
// expressions share one node set; every node carries its DebugData.
package ast

import (
	"fmt"

	"github.com/raymyers/cfront/pkg/lexer"
)

// DebugData locates a node in its source file. It is used for diagnostics only.
type DebugData struct {
	File string
	Line int
}

// Pos returns the location itself; embedding DebugData gives every node Pos.
func (d DebugData) Pos() DebugData { return d }

func (d DebugData) String() string {
	if d.File == "" {
		return fmt.Sprintf("line %d", d.Line)
	}
	return fmt.Sprintf("%s:%d", d.File, d.Line)
}

// Expr is the interface for all syntax tree nodes
type Expr interface {
	Pos() DebugData
	implExpr()
}

// Property is a named, typed slot: a function parameter or a struct field
type Property struct {
	Name string
	Type DataType
}

// Number represents an unsigned integer literal
type Number struct {
	DebugData
	Value uint32
}

// String represents a string literal, escapes kept verbatim
type String struct {
	DebugData
	Value string
}

// Boolean represents true or false
type Boolean struct {
	DebugData
	Value bool
}

// Identifier represents a value name
type Identifier struct {
	DebugData
	Name string
}

// CompilerData holds the opaque text of a #-line
type CompilerData struct {
	DebugData
	Text string
}

// VariableDeclaration introduces a variable: int x
type VariableDeclaration struct {
	DebugData
	Type DataType
	Name string
}

// Function represents a function definition
type Function struct {
	DebugData
	Name       string
	Properties []Property
	Output     DataType
	Inside     []Expr
}

// Typedef registers Name as an alias of Type
type Typedef struct {
	DebugData
	Type DataType
	Name string
}

// Struct represents a named struct declaration: struct Point { int x; }
type Struct struct {
	DebugData
	Name       string
	Properties []Property
}

// If represents an if statement with its else-if/else chain.
// Only the last element of ChainedElses may have a nil Condition.
type If struct {
	DebugData
	Condition    Expr
	Inside       []Expr
	ChainedElses []Else
}

// Else is one link of an if chain; Condition is nil for a plain else
type Else struct {
	DebugData
	Condition Expr
	Inside    []Expr
}

// While represents a while loop
type While struct {
	DebugData
	Condition Expr
	Inside    []Expr
}

// For represents a for loop; each clause is a single expression
type For struct {
	DebugData
	Init      Expr
	Condition Expr
	Incr      Expr
	Inside    []Expr
}

// Break represents a break statement
type Break struct {
	DebugData
}

// Return represents a return statement
type Return struct {
	DebugData
	Value Expr // nil for bare return
}

// Static marks the wrapped declaration as static
type Static struct {
	DebugData
	Value Expr
}

// Const marks the wrapped declaration as const
type Const struct {
	DebugData
	Value Expr
}

// Binary represents a binary expression
type Binary struct {
	DebugData
	Left  Expr
	Op    lexer.TokenKind
	Right Expr
}

// Prefix represents a unary prefix operator: + - ! ++ --
type Prefix struct {
	DebugData
	Op    lexer.TokenKind
	Value Expr
}

// Postfix represents x++ and x--
type Postfix struct {
	DebugData
	Op    lexer.TokenKind
	Value Expr
}

// Assignment represents = += -= *= /=
type Assignment struct {
	DebugData
	Target Expr
	Op     lexer.TokenKind
	Value  Expr
}

// Grouping represents a parenthesized expression
type Grouping struct {
	DebugData
	Value Expr
}

// TypeConversion represents a cast: (int) x
type TypeConversion struct {
	DebugData
	Type  DataType
	Value Expr
}

// Member represents s.x, or p->x when Arrow is set
type Member struct {
	DebugData
	Left  Expr
	Name  string
	Arrow bool
}

// Index represents array subscript access: arr[idx]
type Index struct {
	DebugData
	Left  Expr
	Index Expr
}

// Dereference represents *p
type Dereference struct {
	DebugData
	Value Expr
}

// Reference represents &x
type Reference struct {
	DebugData
	Value Expr
}

// Call represents a function call
type Call struct {
	DebugData
	Callee Expr
	Args   []Expr
}

// Block represents a brace-delimited statement list
type Block struct {
	DebugData
	Inside []Expr
}

// Initializer represents an aggregate initializer: {1, 2, 3}
type Initializer struct {
	DebugData
	Values []Expr
}

// TypeAccess represents a bare mention of a type, as in sizeof(int)
type TypeAccess struct {
	DebugData
	Type DataType
}

// Marker methods for interface implementation
func (Number) implExpr()              {}
func (String) implExpr()              {}
func (Boolean) implExpr()             {}
func (Identifier) implExpr()          {}
func (CompilerData) implExpr()        {}
func (VariableDeclaration) implExpr() {}
func (Function) implExpr()            {}
func (Typedef) implExpr()             {}
func (Struct) implExpr()              {}
func (If) implExpr()                  {}
func (Else) implExpr()                {}
func (While) implExpr()               {}
func (For) implExpr()                 {}
func (Break) implExpr()               {}
func (Return) implExpr()              {}
func (Static) implExpr()              {}
func (Const) implExpr()               {}
func (Binary) implExpr()              {}
func (Prefix) implExpr()              {}
func (Postfix) implExpr()             {}
func (Assignment) implExpr()          {}
func (Grouping) implExpr()            {}
func (TypeConversion) implExpr()      {}
func (Member) implExpr()              {}
func (Index) implExpr()               {}
func (Dereference) implExpr()         {}
func (Reference) implExpr()           {}
func (Call) implExpr()                {}
func (Block) implExpr()               {}
func (Initializer) implExpr()         {}
func (TypeAccess) implExpr()          {}
