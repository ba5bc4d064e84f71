package ast

import (
	"strings"
	"testing"

	"github.com/raymyers/cfront/pkg/lexer"
	"gopkg.in/yaml.v3"
)

func TestDeclarator(t *testing.T) {
	tests := []struct {
		typ  DataType
		want string
	}{
		{intType, "int x"},
		{Primitive{Name: "int", Unsigned: true}, "unsigned int x"},
		{Pointer{Inner: Primitive{Name: "char"}}, "char* x"},
		{Array{Length: 3, Inner: intType}, "int x[3]"},
		{Array{Length: 2, Inner: Array{Length: 5, Inner: intType}}, "int x[2][5]"},
		{Array{Length: 2, Inner: Pointer{Inner: intType}}, "int* x[2]"},
	}
	for _, tt := range tests {
		if got := Declarator(tt.typ, "x"); got != tt.want {
			t.Errorf("Declarator(%#v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestTypeStrings(t *testing.T) {
	st := StructType{Fields: []Property{{Name: "x", Type: intType}, {Name: "y", Type: Array{Length: 2, Inner: intType}}}}
	if got, want := st.String(), "struct { int x; int y[2]; }"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	en := EnumType{Fields: []EnumField{{Name: "A", Value: 0}, {Name: "B", Value: 5}}}
	if got, want := en.String(), "enum { A = 0, B = 5 }"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCloneTypeIsDeep(t *testing.T) {
	orig := StructType{Fields: []Property{{Name: "x", Type: intType}}}
	clone := CloneType(orig).(StructType)
	clone.Fields[0].Name = "changed"
	if orig.Fields[0].Name != "x" {
		t.Fatal("clone shares field storage with the original")
	}

	en := EnumType{Fields: []EnumField{{Name: "A"}}}
	enClone := CloneType(en).(EnumType)
	enClone.Fields[0].Value = 9
	if en.Fields[0].Value != 0 {
		t.Fatal("enum clone shares field storage with the original")
	}
}

func TestDebugData(t *testing.T) {
	n := Number{DebugData: DebugData{File: "a.c", Line: 3}, Value: 1}
	if got := n.Pos().String(); got != "a.c:3" {
		t.Errorf("got %q", got)
	}
	if got := (DebugData{Line: 7}).String(); got != "line 7" {
		t.Errorf("got %q", got)
	}
}

func TestDump(t *testing.T) {
	nodes := []Expr{
		Assignment{
			DebugData: DebugData{Line: 2},
			Target:    VariableDeclaration{DebugData: DebugData{Line: 2}, Type: intType, Name: "x"},
			Op:        lexer.TokenAssign,
			Value:     Binary{DebugData: DebugData{Line: 2}, Left: num(1), Op: lexer.TokenPlus, Right: num(2)},
		},
		Return{DebugData: DebugData{Line: 3}},
	}

	out, err := Dump(nodes)
	if err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]any
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("dump is not valid YAML: %v\n%s", err, out)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(decoded))
	}

	first := decoded[0]
	if first["kind"] != "Assignment" || first["line"] != 2 || first["op"] != "=" {
		t.Errorf("unexpected assignment dump: %v", first)
	}
	value := first["value"].(map[string]any)
	if value["kind"] != "Binary" || value["op"] != "+" {
		t.Errorf("unexpected binary dump: %v", value)
	}
	target := first["target"].(map[string]any)
	typ := target["type"].(map[string]any)
	if typ["type"] != "Primitive" || typ["name"] != "int" {
		t.Errorf("unexpected type dump: %v", typ)
	}

	if _, ok := decoded[1]["value"]; ok {
		t.Errorf("nil return value should be omitted: %v", decoded[1])
	}
	if !strings.HasPrefix(string(out), "- kind: Assignment") {
		t.Errorf("kind should lead each mapping:\n%s", out)
	}
}
