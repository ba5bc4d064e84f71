package parser

import (
	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/lexer"
)

// parseType parses [unsigned] base {*} {[N]} where base is a recognized type
// name, an inline struct body or an inline enum body.
func (p *Parser) parseType() (ast.DataType, error) {
	start := p.current()
	unsigned := false
	if start.Kind == lexer.TokenIdent && start.Value == "unsigned" {
		unsigned = true
		p.advance()
	}

	var base ast.DataType
	var err error
	baseTok := p.current()
	switch tok := baseTok; {
	case tok.Kind == lexer.TokenStruct:
		base, err = p.parseStructType()
	case tok.Kind == lexer.TokenEnum:
		base, err = p.parseEnumType()
	case tok.Kind == lexer.TokenIdent && p.IsTypeName(tok.Value):
		p.advance()
		base = p.resolveTypeName(tok.Value)
	case unsigned:
		base = ast.Primitive{Name: "int"}
	default:
		return nil, &UnexpectedTokenError{Want: "type name", Found: tok}
	}
	if err != nil {
		return nil, err
	}

	if unsigned {
		prim, ok := base.(ast.Primitive)
		if !ok {
			return nil, &UnexpectedTokenError{Want: "primitive type after unsigned", Found: baseTok}
		}
		prim.Unsigned = true
		base = prim
	}
	for p.current().Kind == lexer.TokenStar {
		p.advance()
		base = ast.Pointer{Inner: base}
	}
	return p.parseArraySuffix(base)
}

// resolveTypeName returns a fresh copy of the type registered under name
func (p *Parser) resolveTypeName(name string) ast.DataType {
	if t := p.types[name]; t != nil {
		return ast.CloneType(t)
	}
	return ast.Primitive{Name: name}
}

// parseArraySuffix wraps t for each [N]; the first bracket is the outermost
// dimension.
func (p *Parser) parseArraySuffix(t ast.DataType) (ast.DataType, error) {
	var lengths []uint32
	for p.current().Kind == lexer.TokenLBracket {
		open := p.advance()
		tok, err := p.expect(lexer.TokenNumber)
		if err != nil {
			return nil, wrap(err, p.debug(open), "array length")
		}
		n, err := parseUint32(tok.Value)
		if err != nil {
			return nil, &MalformedLiteralError{Text: tok.Value, Line: tok.Line, Err: err}
		}
		if _, err := p.expect(lexer.TokenRBracket); err != nil {
			return nil, wrap(err, p.debug(open), "array length")
		}
		lengths = append(lengths, n)
	}
	for i := len(lengths) - 1; i >= 0; i-- {
		t = ast.Array{Length: lengths[i], Inner: t}
	}
	return t, nil
}

// parseStructType parses struct [tag] { type name; ... }. Tags are accepted
// and ignored; a tag without a body is an error.
func (p *Parser) parseStructType() (ast.DataType, error) {
	kw := p.advance()
	if p.current().Kind == lexer.TokenIdent {
		p.advance()
	}
	fields, err := p.parseFields()
	if err != nil {
		return nil, wrap(err, p.debug(kw), "struct fields")
	}
	return ast.StructType{Fields: fields}, nil
}

// parseFields parses { type name; ... } including both braces
func (p *Parser) parseFields() ([]ast.Property, error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var fields []ast.Property
	for p.current().Kind != lexer.TokenRBrace {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenSemicolon); err != nil {
			return nil, err
		}
		fields = append(fields, prop)
	}
	p.advance()
	return fields, nil
}

// parseProperty parses one "type name" pair, array suffixes included
func (p *Parser) parseProperty() (ast.Property, error) {
	typ, err := p.parseType()
	if err != nil {
		return ast.Property{}, err
	}
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return ast.Property{}, err
	}
	typ, err = p.parseArraySuffix(typ)
	if err != nil {
		return ast.Property{}, err
	}
	return ast.Property{Name: name.Value, Type: typ}, nil
}

// parseEnumType parses enum [tag] { A, B = 5, C, }. Unassigned fields take
// the previous value plus one, starting at zero.
func (p *Parser) parseEnumType() (ast.DataType, error) {
	kw := p.advance()
	if p.current().Kind == lexer.TokenIdent {
		p.advance()
	}
	fields, err := p.parseEnumFields()
	if err != nil {
		return nil, wrap(err, p.debug(kw), "enum fields")
	}
	return ast.EnumType{Fields: fields}, nil
}

func (p *Parser) parseEnumFields() ([]ast.EnumField, error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var fields []ast.EnumField
	var next uint32
	for p.current().Kind != lexer.TokenRBrace {
		name, err := p.expect(lexer.TokenIdent)
		if err != nil {
			return nil, err
		}
		value := next
		if p.current().Kind == lexer.TokenAssign {
			p.advance()
			tok, err := p.expect(lexer.TokenNumber)
			if err != nil {
				return nil, err
			}
			if value, err = parseUint32(tok.Value); err != nil {
				return nil, &MalformedLiteralError{Text: tok.Value, Line: tok.Line, Err: err}
			}
		}
		fields = append(fields, ast.EnumField{Name: name.Value, Value: value})
		next = value + 1
		if p.current().Kind != lexer.TokenComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return fields, nil
}
