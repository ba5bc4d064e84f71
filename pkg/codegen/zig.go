package codegen

import (
	"fmt"
	"strings"

	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/lexer"
)

// Zig translates nodes into Zig source. Bodies are indented four spaces.
type Zig struct{}

// Translate implements Translator
func (Zig) Translate(node ast.Expr) (string, error) {
	w := &zigWriter{}
	if err := w.stmt(node); err != nil {
		return "", err
	}
	return w.sb.String(), nil
}

// zigPrimitives maps C primitive names to their signed and unsigned Zig types
var zigPrimitives = map[string][2]string{
	"void":  {"void", "void"},
	"bool":  {"bool", "bool"},
	"char":  {"u8", "u8"},
	"short": {"i16", "u16"},
	"int":   {"i32", "u32"},
	"long":  {"i64", "u64"},
}

var zigOperators = map[lexer.TokenKind]string{
	lexer.TokenAnd: "and",
	lexer.TokenOr:  "or",
}

type zigWriter struct {
	sb     strings.Builder
	indent int
}

func (w *zigWriter) line(format string, args ...any) {
	w.sb.WriteString(strings.Repeat("    ", w.indent))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

func (w *zigWriter) body(stmts []ast.Expr) error {
	w.indent++
	defer func() { w.indent-- }()
	for _, s := range stmts {
		if err := w.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (w *zigWriter) stmt(node ast.Expr) error {
	switch n := node.(type) {
	case ast.CompilerData:
		w.line("// #%s", n.Text)
	case ast.Function:
		return w.function(n, "pub ")
	case ast.Static:
		if fn, ok := n.Value.(ast.Function); ok {
			return w.function(fn, "")
		}
		return w.declaration(n.Value, "var")
	case ast.Const:
		return w.declaration(n.Value, "const")
	case ast.VariableDeclaration:
		return w.declaration(n, "var")
	case ast.Assignment:
		if _, ok := n.Target.(ast.VariableDeclaration); ok {
			return w.declaration(n, "var")
		}
		e, err := w.expr(n)
		if err != nil {
			return err
		}
		w.line("%s;", e)
	case ast.Typedef:
		w.line("const %s = %s;", n.Name, zigType(n.Type))
	case ast.Struct:
		w.line("const %s = %s;", n.Name, zigType(ast.StructType{Fields: n.Properties}))
	case ast.If:
		return w.ifChain(n)
	case ast.While:
		cond, err := w.expr(n.Condition)
		if err != nil {
			return err
		}
		w.line("while (%s) {", cond)
		if err := w.body(n.Inside); err != nil {
			return err
		}
		w.line("}")
	case ast.For:
		return w.forLoop(n)
	case ast.Block:
		w.line("{")
		if err := w.body(n.Inside); err != nil {
			return err
		}
		w.line("}")
	case ast.Prefix, ast.Postfix:
		e, err := w.step(n)
		if err != nil {
			return err
		}
		w.line("%s;", e)
	default:
		e, err := w.expr(node)
		if err != nil {
			return err
		}
		w.line("%s;", e)
	}
	return nil
}

func (w *zigWriter) function(fn ast.Function, prefix string) error {
	params := make([]string, len(fn.Properties))
	for i, p := range fn.Properties {
		params[i] = fmt.Sprintf("%s: %s", p.Name, zigType(p.Type))
	}
	w.line("%sfn %s(%s) %s {", prefix, fn.Name, strings.Join(params, ", "), zigType(fn.Output))
	if err := w.body(fn.Inside); err != nil {
		return err
	}
	w.line("}")
	return nil
}

// declaration renders int x; and int x = v; as var or const bindings
func (w *zigWriter) declaration(node ast.Expr, keyword string) error {
	switch n := node.(type) {
	case ast.VariableDeclaration:
		w.line("%s %s: %s = undefined;", keyword, n.Name, zigType(n.Type))
		return nil
	case ast.Assignment:
		decl, ok := n.Target.(ast.VariableDeclaration)
		if !ok || n.Op != lexer.TokenAssign {
			break
		}
		value, err := w.expr(n.Value)
		if err != nil {
			return err
		}
		w.line("%s %s: %s = %s;", keyword, decl.Name, zigType(decl.Type), value)
		return nil
	}
	return unsupported(node)
}

func (w *zigWriter) ifChain(n ast.If) error {
	cond, err := w.expr(n.Condition)
	if err != nil {
		return err
	}
	w.line("if (%s) {", cond)
	if err := w.body(n.Inside); err != nil {
		return err
	}
	for _, e := range n.ChainedElses {
		if e.Condition == nil {
			w.line("} else {")
		} else {
			cond, err := w.expr(e.Condition)
			if err != nil {
				return err
			}
			w.line("} else if (%s) {", cond)
		}
		if err := w.body(e.Inside); err != nil {
			return err
		}
	}
	w.line("}")
	return nil
}

// forLoop lowers for (init; cond; incr) to a scoped while with a continue
// expression.
func (w *zigWriter) forLoop(n ast.For) error {
	w.line("{")
	w.indent++
	if err := w.stmt(n.Init); err != nil {
		return err
	}
	cond, err := w.expr(n.Condition)
	if err != nil {
		return err
	}
	incr, err := w.step(n.Incr)
	if err != nil {
		return err
	}
	w.line("while (%s) : (%s) {", cond, incr)
	if err := w.body(n.Inside); err != nil {
		return err
	}
	w.line("}")
	w.indent--
	w.line("}")
	return nil
}

// step renders an expression used for its side effect; ++ and -- become
// compound assignments.
func (w *zigWriter) step(node ast.Expr) (string, error) {
	var op lexer.TokenKind
	var target ast.Expr
	switch n := node.(type) {
	case ast.Prefix:
		op, target = n.Op, n.Value
	case ast.Postfix:
		op, target = n.Op, n.Value
	default:
		return w.expr(node)
	}
	t, err := w.expr(target)
	if err != nil {
		return "", err
	}
	switch op {
	case lexer.TokenIncrement:
		return t + " += 1", nil
	case lexer.TokenDecrement:
		return t + " -= 1", nil
	}
	return w.expr(node)
}

func (w *zigWriter) expr(node ast.Expr) (string, error) {
	switch n := node.(type) {
	case ast.Number:
		return fmt.Sprintf("%d", n.Value), nil
	case ast.String:
		return fmt.Sprintf("\"%s\"", n.Value), nil
	case ast.Boolean:
		return fmt.Sprintf("%t", n.Value), nil
	case ast.Identifier:
		return n.Name, nil
	case ast.TypeAccess:
		return zigType(n.Type), nil
	case ast.Binary:
		left, err := w.operand(n.Left)
		if err != nil {
			return "", err
		}
		right, err := w.operand(n.Right)
		if err != nil {
			return "", err
		}
		op, ok := zigOperators[n.Op]
		if !ok {
			op = n.Op.String()
		}
		return fmt.Sprintf("%s %s %s", left, op, right), nil
	case ast.Prefix:
		v, err := w.operand(n.Value)
		if err != nil {
			return "", err
		}
		switch n.Op {
		case lexer.TokenPlus:
			return v, nil
		case lexer.TokenMinus, lexer.TokenNot:
			return n.Op.String() + v, nil
		}
	case ast.Assignment:
		target, err := w.expr(n.Target)
		if err != nil {
			return "", err
		}
		value, err := w.expr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", target, n.Op, value), nil
	case ast.Grouping:
		v, err := w.expr(n.Value)
		if err != nil {
			return "", err
		}
		return "(" + v + ")", nil
	case ast.TypeConversion:
		v, err := w.expr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("@as(%s, %s)", zigType(n.Type), v), nil
	case ast.Member:
		left, err := w.operand(n.Left)
		if err != nil {
			return "", err
		}
		return left + "." + n.Name, nil
	case ast.Index:
		left, err := w.operand(n.Left)
		if err != nil {
			return "", err
		}
		idx, err := w.expr(n.Index)
		if err != nil {
			return "", err
		}
		return left + "[" + idx + "]", nil
	case ast.Dereference:
		v, err := w.operand(n.Value)
		if err != nil {
			return "", err
		}
		return v + ".*", nil
	case ast.Reference:
		v, err := w.operand(n.Value)
		if err != nil {
			return "", err
		}
		return "&" + v, nil
	case ast.Call:
		return w.call(n)
	case ast.Initializer:
		vals, err := w.list(n.Values)
		if err != nil {
			return "", err
		}
		return ".{ " + vals + " }", nil
	case ast.Break:
		return "break", nil
	case ast.Return:
		if n.Value == nil {
			return "return", nil
		}
		v, err := w.expr(n.Value)
		if err != nil {
			return "", err
		}
		return "return " + v, nil
	}
	return "", unsupported(node)
}

// operand renders a sub-expression, parenthesizing binary operations so the
// tree's nesting survives Zig's own precedence rules.
func (w *zigWriter) operand(node ast.Expr) (string, error) {
	s, err := w.expr(node)
	if err != nil {
		return "", err
	}
	if _, ok := node.(ast.Binary); ok {
		return "(" + s + ")", nil
	}
	return s, nil
}

func (w *zigWriter) call(n ast.Call) (string, error) {
	if id, ok := n.Callee.(ast.Identifier); ok && id.Name == "sizeof" && len(n.Args) == 1 {
		if ta, ok := n.Args[0].(ast.TypeAccess); ok {
			return "@sizeOf(" + zigType(ta.Type) + ")", nil
		}
	}
	callee, err := w.operand(n.Callee)
	if err != nil {
		return "", err
	}
	args, err := w.list(n.Args)
	if err != nil {
		return "", err
	}
	return callee + "(" + args + ")", nil
}

func (w *zigWriter) list(exprs []ast.Expr) (string, error) {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := w.expr(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func zigType(t ast.DataType) string {
	switch t := t.(type) {
	case ast.Primitive:
		names, ok := zigPrimitives[t.Name]
		if !ok {
			return t.Name
		}
		if t.Unsigned {
			return names[1]
		}
		return names[0]
	case ast.Pointer:
		return "*" + zigType(t.Inner)
	case ast.Array:
		return fmt.Sprintf("[%d]%s", t.Length, zigType(t.Inner))
	case ast.StructType:
		fields := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = fmt.Sprintf("%s: %s", f.Name, zigType(f.Type))
		}
		return "struct { " + strings.Join(fields, ", ") + " }"
	case ast.EnumType:
		fields := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = fmt.Sprintf("%s = %d", f.Name, f.Value)
		}
		return "enum(u32) { " + strings.Join(fields, ", ") + " }"
	}
	return fmt.Sprintf("@compileError(\"unknown type %T\")", t)
}
