package parser

import (
	"log/slog"

	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/lexer"
)

// parseIdentifier resolves an identifier: a recognized type name starts a
// declaration, anything else is a plain identifier expression.
func parseIdentifier(p *Parser) (ast.Expr, error) {
	tok := p.current()
	if p.IsTypeName(tok.Value) {
		return parseTypeStatement(p)
	}
	p.advance()
	return ast.Identifier{DebugData: p.debug(tok), Name: tok.Value}, nil
}

// parseTypeStatement parses a type followed by nothing (a bare type access),
// a name (a variable declaration) or a name and ( (a function definition).
func parseTypeStatement(p *Parser) (ast.Expr, error) {
	start := p.current()
	pos := p.debug(start)
	typ, err := p.parseType()
	if err != nil {
		return nil, wrap(err, pos, "declaration type")
	}
	if p.current().Kind != lexer.TokenIdent {
		return ast.TypeAccess{DebugData: pos, Type: typ}, nil
	}

	name := p.advance()
	if p.current().Kind == lexer.TokenLParen {
		return p.parseFunction(pos, typ, name.Value)
	}
	typ, err = p.parseArraySuffix(typ)
	if err != nil {
		return nil, wrapf(err, pos, "declaration of %s", name.Value)
	}
	return ast.VariableDeclaration{DebugData: pos, Type: typ, Name: name.Value}, nil
}

// parseFunction parses (params) { body } after the return type and name
func (p *Parser) parseFunction(pos ast.DebugData, output ast.DataType, name string) (ast.Expr, error) {
	p.advance()
	if tok := p.current(); tok.Kind == lexer.TokenIdent && tok.Value == "void" && p.peekAt(1).Kind == lexer.TokenRParen {
		p.advance()
	}
	var params []ast.Property
	for p.current().Kind != lexer.TokenRParen {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, wrapf(err, pos, "parameters of function %s", name)
		}
		params = append(params, prop)
		if p.current().Kind != lexer.TokenComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, wrapf(err, pos, "parameters of function %s", name)
	}

	inside, err := p.parseBody()
	if err != nil {
		return nil, wrapf(err, pos, "body of function %s", name)
	}
	return ast.Function{
		DebugData:  pos,
		Name:       name,
		Properties: params,
		Output:     output,
		Inside:     inside,
	}, nil
}

// parseTypedef parses typedef type name[N] and registers name as a type for
// the rest of the parse.
func parseTypedef(p *Parser) (ast.Expr, error) {
	kw := p.advance()
	pos := p.debug(kw)
	typ, err := p.parseType()
	if err != nil {
		return nil, wrap(err, pos, "typedef")
	}
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, wrap(err, pos, "typedef name")
	}
	typ, err = p.parseArraySuffix(typ)
	if err != nil {
		return nil, wrapf(err, pos, "typedef %s", name.Value)
	}

	p.types[name.Value] = ast.CloneType(typ)
	p.log.Debug("registered type name", slog.String("name", name.Value), slog.Int("line", kw.Line))
	return ast.Typedef{DebugData: pos, Type: typ, Name: name.Value}, nil
}

// parseStructStatement parses struct Name { ... } as a named Struct node.
// Without a name, or when a declarator follows the closing brace, the struct
// is a type starting a declaration and its tag is dropped.
func parseStructStatement(p *Parser) (ast.Expr, error) {
	if p.peekAt(1).Kind != lexer.TokenIdent || p.peekAt(2).Kind != lexer.TokenLBrace {
		return parseTypeStatement(p)
	}
	start := p.pos
	kw := p.advance()
	pos := p.debug(kw)
	name := p.advance()
	fields, err := p.parseFields()
	if err != nil {
		return nil, wrapf(err, pos, "struct %s", name.Value)
	}
	switch p.current().Kind {
	case lexer.TokenIdent, lexer.TokenStar:
		p.pos = start
		return parseTypeStatement(p)
	}
	return ast.Struct{DebugData: pos, Name: name.Value, Properties: fields}, nil
}

func parseStatic(p *Parser) (ast.Expr, error) {
	kw := p.advance()
	value, err := p.ParseExpression(bpNone)
	if err != nil {
		return nil, wrap(err, p.debug(kw), "static declaration")
	}
	return ast.Static{DebugData: p.debug(kw), Value: value}, nil
}

func parseConst(p *Parser) (ast.Expr, error) {
	kw := p.advance()
	value, err := p.ParseExpression(bpNone)
	if err != nil {
		return nil, wrap(err, p.debug(kw), "const declaration")
	}
	return ast.Const{DebugData: p.debug(kw), Value: value}, nil
}
