package parser

import (
	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/lexer"
)

func parseNumber(p *Parser) (ast.Expr, error) {
	tok := p.advance()
	v, err := parseUint32(tok.Value)
	if err != nil {
		return nil, &MalformedLiteralError{Text: tok.Value, Line: tok.Line, Err: err}
	}
	return ast.Number{DebugData: p.debug(tok), Value: v}, nil
}

func parseString(p *Parser) (ast.Expr, error) {
	tok := p.advance()
	return ast.String{DebugData: p.debug(tok), Value: tok.Value}, nil
}

func parseBoolean(p *Parser) (ast.Expr, error) {
	tok := p.advance()
	return ast.Boolean{DebugData: p.debug(tok), Value: tok.Kind == lexer.TokenTrue}, nil
}

func parseCompilerData(p *Parser) (ast.Expr, error) {
	tok := p.advance()
	return ast.CompilerData{DebugData: p.debug(tok), Text: tok.Value}, nil
}

// parsePrefix handles + - ! ++ -- in prefix position
func parsePrefix(p *Parser) (ast.Expr, error) {
	op := p.advance()
	value, err := p.ParseExpression(prefixBP)
	if err != nil {
		return nil, wrapf(err, p.debug(op), "operand of prefix %s", op.Kind)
	}
	return hoistAssignment(value, func(v ast.Expr) ast.Expr {
		return ast.Prefix{DebugData: p.debug(op), Op: op.Kind, Value: v}
	}), nil
}

func parseDereference(p *Parser) (ast.Expr, error) {
	op := p.advance()
	value, err := p.ParseExpression(prefixBP)
	if err != nil {
		return nil, wrap(err, p.debug(op), "operand of dereference")
	}
	return hoistAssignment(value, func(v ast.Expr) ast.Expr {
		return ast.Dereference{DebugData: p.debug(op), Value: v}
	}), nil
}

func parseReference(p *Parser) (ast.Expr, error) {
	op := p.advance()
	value, err := p.ParseExpression(prefixBP)
	if err != nil {
		return nil, wrap(err, p.debug(op), "operand of address-of")
	}
	return hoistAssignment(value, func(v ast.Expr) ast.Expr {
		return ast.Reference{DebugData: p.debug(op), Value: v}
	}), nil
}

func parseBinary(p *Parser, left ast.Expr, bp int) (ast.Expr, error) {
	op := p.advance()
	right, err := p.ParseExpression(bp)
	if err != nil {
		return nil, wrap(err, p.debug(op), "right-hand side of binary operator")
	}
	return ast.Binary{DebugData: left.Pos(), Left: left, Op: op.Kind, Right: right}, nil
}

// parseAssignment parses its right-hand side at the lowest level, which makes
// assignment right-associative.
func parseAssignment(p *Parser, left ast.Expr, _ int) (ast.Expr, error) {
	op := p.advance()
	value, err := p.ParseExpression(bpNone)
	if err != nil {
		return nil, wrap(err, p.debug(op), "right-hand side of assignment")
	}
	return ast.Assignment{DebugData: left.Pos(), Target: left, Op: op.Kind, Value: value}, nil
}

func parsePostfix(p *Parser, left ast.Expr, _ int) (ast.Expr, error) {
	op := p.advance()
	return ast.Postfix{DebugData: left.Pos(), Op: op.Kind, Value: left}, nil
}

func parseCall(p *Parser, left ast.Expr, _ int) (ast.Expr, error) {
	open := p.advance()
	args, err := p.parseList(lexer.TokenRParen)
	if err != nil {
		return nil, wrap(err, p.debug(open), "inside function-call arguments")
	}
	return ast.Call{DebugData: left.Pos(), Callee: left, Args: args}, nil
}

func parseIndex(p *Parser, left ast.Expr, _ int) (ast.Expr, error) {
	open := p.advance()
	index, err := p.ParseExpression(bpNone)
	if err == nil {
		_, err = p.expect(lexer.TokenRBracket)
	}
	if err != nil {
		return nil, wrap(err, p.debug(open), "inside index expression")
	}
	return ast.Index{DebugData: left.Pos(), Left: left, Index: index}, nil
}

func parseMember(p *Parser, left ast.Expr, _ int) (ast.Expr, error) {
	op := p.advance()
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, wrap(err, p.debug(op), "member access")
	}
	return ast.Member{
		DebugData: left.Pos(),
		Left:      left,
		Name:      name.Value,
		Arrow:     op.Kind == lexer.TokenArrow,
	}, nil
}

// parseParen handles ( in prefix position: a cast when a type name follows,
// a grouping otherwise.
func parseParen(p *Parser) (ast.Expr, error) {
	open := p.current()
	if next := p.peekAt(1); next.Kind == lexer.TokenIdent && p.IsTypeName(next.Value) {
		return p.parseCast()
	}

	p.advance()
	value, err := p.ParseExpression(bpNone)
	if err == nil {
		_, err = p.expect(lexer.TokenRParen)
	}
	if err != nil {
		return nil, wrap(err, p.debug(open), "inside parentheses")
	}
	return ast.Grouping{DebugData: p.debug(open), Value: value}, nil
}

func (p *Parser) parseCast() (ast.Expr, error) {
	open := p.advance()
	typ, err := p.parseType()
	if err == nil {
		_, err = p.expect(lexer.TokenRParen)
	}
	if err != nil {
		return nil, wrap(err, p.debug(open), "cast type")
	}
	value, err := p.ParseExpression(prefixBP)
	if err != nil {
		return nil, wrapf(err, p.debug(open), "operand of cast to %s", typ)
	}
	return hoistAssignment(value, func(v ast.Expr) ast.Expr {
		return ast.TypeConversion{DebugData: p.debug(open), Type: typ, Value: v}
	}), nil
}

// hoistAssignment applies a prefix form to its operand. Assignment binds as
// tightly as postfix forms, so an operand parsed at prefixBP may come back as
// an assignment; the prefix form then belongs to the assignment target:
// *p = x is (*p) = x.
func hoistAssignment(operand ast.Expr, apply func(ast.Expr) ast.Expr) ast.Expr {
	if a, ok := operand.(ast.Assignment); ok {
		a.Target = apply(a.Target)
		a.DebugData = a.Target.Pos()
		return a
	}
	return apply(operand)
}

// parseBrace handles { in prefix position: an aggregate initializer when the
// first element is followed by a comma, a statement block otherwise.
func parseBrace(p *Parser) (ast.Expr, error) {
	open := p.advance()
	if p.startsStatement(p.current()) {
		inside, err := p.parseStatements([]ast.Expr{})
		if err != nil {
			return nil, wrap(err, p.debug(open), "inside block")
		}
		return ast.Block{DebugData: p.debug(open), Inside: inside}, nil
	}

	first, err := p.ParseExpression(bpNone)
	if err != nil {
		return nil, wrap(err, p.debug(open), "inside braces")
	}
	if p.current().Kind == lexer.TokenComma {
		p.advance()
		rest, err := p.parseList(lexer.TokenRBrace)
		if err != nil {
			return nil, wrap(err, p.debug(open), "inside aggregate initializer")
		}
		values := append([]ast.Expr{first}, rest...)
		return ast.Initializer{DebugData: p.debug(open), Values: values}, nil
	}

	inside, err := p.parseStatements([]ast.Expr{first})
	if err != nil {
		return nil, wrap(err, p.debug(open), "inside block")
	}
	return ast.Block{DebugData: p.debug(open), Inside: inside}, nil
}

// startsStatement reports whether tok can only begin a statement, never an
// initializer element
func (p *Parser) startsStatement(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.TokenLBrace, lexer.TokenRBrace, lexer.TokenSemicolon, lexer.TokenEOF,
		lexer.TokenIf, lexer.TokenWhile, lexer.TokenFor, lexer.TokenReturn, lexer.TokenBreak,
		lexer.TokenStatic, lexer.TokenConst, lexer.TokenTypedef, lexer.TokenStruct,
		lexer.TokenEnum, lexer.TokenCompilerData:
		return true
	case lexer.TokenIdent:
		return p.IsTypeName(tok.Value)
	}
	return false
}

// parseList parses comma-separated expressions up to and including end. The
// opening delimiter is already consumed; a trailing comma is accepted.
func (p *Parser) parseList(end lexer.TokenKind) ([]ast.Expr, error) {
	var items []ast.Expr
	for p.current().Kind != end {
		item, err := p.ParseExpression(bpNone)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.current().Kind != lexer.TokenComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(end); err != nil {
		return nil, err
	}
	return items, nil
}
