package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders a syntax tree back as C-like source
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintProgram prints top-level nodes, one statement per line
func (p *Printer) PrintProgram(nodes []Expr) {
	for _, node := range nodes {
		p.printStmt(node)
	}
}

// PrintExpr prints a single node in expression position
func (p *Printer) PrintExpr(e Expr) {
	p.printExpr(e)
}

// Sprint renders a node in expression position
func Sprint(e Expr) string {
	var sb strings.Builder
	NewPrinter(&sb).PrintExpr(e)
	return sb.String()
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printStmt(stmt Expr) {
	p.writeIndent()
	p.printStmtBody(stmt)
}

// printStmtBody prints a statement whose indentation is already written
func (p *Printer) printStmtBody(stmt Expr) {
	switch s := stmt.(type) {
	case CompilerData:
		fmt.Fprintf(p.w, "#%s\n", s.Text)
	case Static:
		fmt.Fprint(p.w, "static ")
		p.printStmtBody(s.Value)
	case Const:
		fmt.Fprint(p.w, "const ")
		p.printStmtBody(s.Value)
	case Function:
		fmt.Fprintf(p.w, "%s(", Declarator(s.Output, s.Name))
		for i, prop := range s.Properties {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			fmt.Fprint(p.w, Declarator(prop.Type, prop.Name))
		}
		fmt.Fprint(p.w, ") ")
		p.printBody(s.Inside)
		fmt.Fprintln(p.w)
	case Struct:
		fmt.Fprintf(p.w, "struct %s {\n", s.Name)
		p.indent++
		for _, prop := range s.Properties {
			p.writeIndent()
			fmt.Fprintf(p.w, "%s;\n", Declarator(prop.Type, prop.Name))
		}
		p.indent--
		p.writeIndent()
		fmt.Fprintln(p.w, "};")
	case If:
		fmt.Fprint(p.w, "if (")
		p.printExpr(s.Condition)
		fmt.Fprint(p.w, ") ")
		p.printBody(s.Inside)
		for _, e := range s.ChainedElses {
			if e.Condition != nil {
				fmt.Fprint(p.w, " else if (")
				p.printExpr(e.Condition)
				fmt.Fprint(p.w, ") ")
			} else {
				fmt.Fprint(p.w, " else ")
			}
			p.printBody(e.Inside)
		}
		fmt.Fprintln(p.w)
	case While:
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Condition)
		fmt.Fprint(p.w, ") ")
		p.printBody(s.Inside)
		fmt.Fprintln(p.w)
	case For:
		fmt.Fprint(p.w, "for (")
		p.printExpr(s.Init)
		fmt.Fprint(p.w, "; ")
		p.printExpr(s.Condition)
		fmt.Fprint(p.w, "; ")
		p.printExpr(s.Incr)
		fmt.Fprint(p.w, ") ")
		p.printBody(s.Inside)
		fmt.Fprintln(p.w)
	case Block:
		p.printBody(s.Inside)
		fmt.Fprintln(p.w)
	default:
		p.printExpr(stmt)
		fmt.Fprintln(p.w, ";")
	}
}

// printBody prints { stmts } leaving the cursor after the closing brace
func (p *Printer) printBody(stmts []Expr) {
	fmt.Fprintln(p.w, "{")
	p.indent++
	for _, stmt := range stmts {
		p.printStmt(stmt)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprint(p.w, "}")
}

func (p *Printer) printExpr(expr Expr) {
	switch e := expr.(type) {
	case Number:
		fmt.Fprintf(p.w, "%d", e.Value)
	case String:
		fmt.Fprintf(p.w, "\"%s\"", e.Value)
	case Boolean:
		fmt.Fprintf(p.w, "%t", e.Value)
	case Identifier:
		fmt.Fprint(p.w, e.Name)
	case VariableDeclaration:
		fmt.Fprint(p.w, Declarator(e.Type, e.Name))
	case Typedef:
		fmt.Fprintf(p.w, "typedef %s", Declarator(e.Type, e.Name))
	case TypeAccess:
		fmt.Fprint(p.w, e.Type.String())
	case Static:
		fmt.Fprint(p.w, "static ")
		p.printExpr(e.Value)
	case Const:
		fmt.Fprint(p.w, "const ")
		p.printExpr(e.Value)
	case Break:
		fmt.Fprint(p.w, "break")
	case Return:
		fmt.Fprint(p.w, "return")
		if e.Value != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(e.Value)
		}
	case Binary:
		p.printExpr(e.Left)
		fmt.Fprintf(p.w, " %s ", e.Op)
		p.printExpr(e.Right)
	case Assignment:
		p.printExpr(e.Target)
		fmt.Fprintf(p.w, " %s ", e.Op)
		p.printExpr(e.Value)
	case Prefix:
		fmt.Fprint(p.w, e.Op.String())
		p.printExpr(e.Value)
	case Postfix:
		p.printExpr(e.Value)
		fmt.Fprint(p.w, e.Op.String())
	case Grouping:
		fmt.Fprint(p.w, "(")
		p.printExpr(e.Value)
		fmt.Fprint(p.w, ")")
	case TypeConversion:
		fmt.Fprintf(p.w, "(%s)", e.Type)
		p.printExpr(e.Value)
	case Member:
		p.printExpr(e.Left)
		if e.Arrow {
			fmt.Fprint(p.w, "->")
		} else {
			fmt.Fprint(p.w, ".")
		}
		fmt.Fprint(p.w, e.Name)
	case Index:
		p.printExpr(e.Left)
		fmt.Fprint(p.w, "[")
		p.printExpr(e.Index)
		fmt.Fprint(p.w, "]")
	case Dereference:
		fmt.Fprint(p.w, "*")
		p.printExpr(e.Value)
	case Reference:
		fmt.Fprint(p.w, "&")
		p.printExpr(e.Value)
	case Call:
		p.printExpr(e.Callee)
		fmt.Fprint(p.w, "(")
		p.printList(e.Args)
		fmt.Fprint(p.w, ")")
	case Initializer:
		fmt.Fprint(p.w, "{")
		p.printList(e.Values)
		fmt.Fprint(p.w, "}")
	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", expr)
	}
}

func (p *Printer) printList(exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		p.printExpr(e)
	}
}
