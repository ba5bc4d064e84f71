package parser

import (
	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/lexer"
)

// parseBody parses { stmt [;] ... } including both braces
func (p *Parser) parseBody() ([]ast.Expr, error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	return p.parseStatements([]ast.Expr{})
}

// parseStatements appends statements to inside up to and including the
// closing }
func (p *Parser) parseStatements(inside []ast.Expr) ([]ast.Expr, error) {
	for {
		p.skipSemicolons()
		tok := p.current()
		if tok.Kind == lexer.TokenRBrace {
			p.advance()
			return inside, nil
		}
		if tok.Kind == lexer.TokenEOF {
			return nil, &UnexpectedTokenError{Want: lexer.TokenRBrace.String(), Found: tok}
		}
		stmt, err := p.ParseExpression(bpNone)
		if err != nil {
			return nil, err
		}
		inside = append(inside, stmt)
	}
}

// parseCondition parses ( expr )
func (p *Parser) parseCondition() (ast.Expr, error) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression(bpNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIf parses an if statement and its else-if/else chain. A plain else
// ends the chain.
func parseIf(p *Parser) (ast.Expr, error) {
	kw := p.advance()
	pos := p.debug(kw)
	cond, err := p.parseCondition()
	if err != nil {
		return nil, wrap(err, pos, "if condition")
	}
	inside, err := p.parseBody()
	if err != nil {
		return nil, wrap(err, pos, "if body")
	}

	node := ast.If{DebugData: pos, Condition: cond, Inside: inside}
	for p.current().Kind == lexer.TokenElse {
		elsePos := p.debug(p.advance())
		if p.current().Kind != lexer.TokenIf {
			body, err := p.parseBody()
			if err != nil {
				return nil, wrap(err, elsePos, "else body")
			}
			node.ChainedElses = append(node.ChainedElses, ast.Else{DebugData: elsePos, Inside: body})
			break
		}

		p.advance()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, wrap(err, elsePos, "else-if condition")
		}
		body, err := p.parseBody()
		if err != nil {
			return nil, wrap(err, elsePos, "else-if body")
		}
		node.ChainedElses = append(node.ChainedElses, ast.Else{DebugData: elsePos, Condition: cond, Inside: body})
	}
	return node, nil
}

func parseWhile(p *Parser) (ast.Expr, error) {
	kw := p.advance()
	pos := p.debug(kw)
	cond, err := p.parseCondition()
	if err != nil {
		return nil, wrap(err, pos, "while condition")
	}
	inside, err := p.parseBody()
	if err != nil {
		return nil, wrap(err, pos, "while body")
	}
	return ast.While{DebugData: pos, Condition: cond, Inside: inside}, nil
}

// parseFor parses for (init; condition; incr) { body }. All three clauses are
// required single expressions.
func parseFor(p *Parser) (ast.Expr, error) {
	kw := p.advance()
	pos := p.debug(kw)
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, wrap(err, pos, "for clauses")
	}

	var clauses [3]ast.Expr
	names := [3]string{"for initializer", "for condition", "for increment"}
	closers := [3]lexer.TokenKind{lexer.TokenSemicolon, lexer.TokenSemicolon, lexer.TokenRParen}
	for i := range clauses {
		clause, err := p.ParseExpression(bpNone)
		if err == nil {
			_, err = p.expect(closers[i])
		}
		if err != nil {
			return nil, wrap(err, pos, names[i])
		}
		clauses[i] = clause
	}

	inside, err := p.parseBody()
	if err != nil {
		return nil, wrap(err, pos, "for body")
	}
	return ast.For{
		DebugData: pos,
		Init:      clauses[0],
		Condition: clauses[1],
		Incr:      clauses[2],
		Inside:    inside,
	}, nil
}

// parseReturn parses return with an optional value. A value is absent when
// the next token ends the statement.
func parseReturn(p *Parser) (ast.Expr, error) {
	kw := p.advance()
	pos := p.debug(kw)
	switch p.current().Kind {
	case lexer.TokenSemicolon, lexer.TokenRBrace, lexer.TokenEOF:
		return ast.Return{DebugData: pos}, nil
	}
	value, err := p.ParseExpression(bpNone)
	if err != nil {
		return nil, wrap(err, pos, "return value")
	}
	return ast.Return{DebugData: pos, Value: value}, nil
}

func parseBreak(p *Parser) (ast.Expr, error) {
	kw := p.advance()
	return ast.Break{DebugData: p.debug(kw)}, nil
}
