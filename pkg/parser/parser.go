// Package parser implements a Pratt parser for the language. Every token kind
// has one dispatch entry giving its binding power and its prefix and infix
// handlers; statement forms are prefix handlers like any other.
package parser

import (
	"io"
	"log/slog"

	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/lexer"
)

// PrimitiveNames seeds the recognized type names of every parser
var PrimitiveNames = []string{"void", "bool", "char", "short", "int", "long", "unsigned"}

// Parser turns a filtered token sequence into top-level syntax tree nodes
type Parser struct {
	tokens []lexer.Token
	pos    int
	file   string
	table  dispatchTable
	types  map[string]ast.DataType // nil value: plain primitive
	log    *slog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithTypeNames adds names recognized as primitive types
func WithTypeNames(names ...string) Option {
	return func(p *Parser) {
		for _, name := range names {
			if _, ok := p.types[name]; !ok {
				p.types[name] = nil
			}
		}
	}
}

// WithLogger sets the logger for typedef registration and parse summaries
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.log = logger.With(slog.String("component", "parser"))
		}
	}
}

// New creates a Parser. tokens must already be free of trivia and end with
// EOF (see lexer.Significant); file is used in DebugData only.
func New(tokens []lexer.Token, file string, opts ...Option) *Parser {
	p := &Parser{
		tokens: tokens,
		file:   file,
		table:  defaultTable,
		types:  make(map[string]ast.DataType, len(PrimitiveNames)),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, name := range PrimitiveNames {
		p.types[name] = nil
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSource tokenizes input with the default patterns, drops trivia and
// parses the result.
func ParseSource(input, file string, opts ...Option) ([]ast.Expr, error) {
	toks, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return New(lexer.Significant(toks), file, opts...).Parse()
}

// Parse parses top-level statements until EOF. Stray semicolons between
// statements are skipped. The first error aborts the parse.
func (p *Parser) Parse() ([]ast.Expr, error) {
	var nodes []ast.Expr
	for {
		p.skipSemicolons()
		if p.current().Kind == lexer.TokenEOF {
			break
		}
		start := p.current()
		node, err := p.ParseExpression(0)
		if err != nil {
			return nil, wrap(err, p.debug(start), "top-level statement")
		}
		nodes = append(nodes, node)
	}
	p.log.Debug("parsed", slog.String("file", p.file), slog.Int("nodes", len(nodes)))
	return nodes, nil
}

// ParseExpression runs the precedence-climbing loop: the current token's
// prefix handler builds the left operand, then infix handlers extend it while
// the next token binds tighter than minBP.
func (p *Parser) ParseExpression(minBP int) (ast.Expr, error) {
	tok := p.current()
	e := p.table[tok.Kind]
	if e.prefix == nil {
		return nil, &MissingHandlerError{Token: tok}
	}
	left, err := e.prefix(p)
	if err != nil {
		return nil, err
	}
	if closesStatement(left) {
		return left, nil
	}

	for {
		tok = p.current()
		e = p.table[tok.Kind]
		if e.bp <= minBP {
			return left, nil
		}
		if e.infix == nil {
			return nil, &MissingHandlerError{Token: tok, Infix: true}
		}
		left, err = e.infix(p, left, e.bp)
		if err != nil {
			return nil, err
		}
	}
}

// closesStatement reports whether node is a statement form ending in its
// own closing brace. Nothing continues such a node: a following * or ( starts
// the next statement.
func closesStatement(node ast.Expr) bool {
	switch n := node.(type) {
	case ast.If, ast.While, ast.For, ast.Block, ast.Function, ast.Struct:
		return true
	case ast.Static:
		return closesStatement(n.Value)
	case ast.Const:
		return closesStatement(n.Value)
	}
	return false
}

// IsTypeName reports whether name is currently parsed as type syntax
func (p *Parser) IsTypeName(name string) bool {
	_, ok := p.types[name]
	return ok
}

// current returns the token under the cursor; past the end it repeats the
// final token, which is EOF for a well-formed stream.
func (p *Parser) current() lexer.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) lexer.Token {
	i := p.pos + n
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	if len(p.tokens) == 0 {
		return lexer.Token{Kind: lexer.TokenEOF, Line: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	return lexer.Token{Kind: lexer.TokenEOF, Line: last.Line}
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return tok, &UnexpectedTokenError{Want: kind.String(), Found: tok}
	}
	return p.advance(), nil
}

func (p *Parser) skipSemicolons() {
	for p.current().Kind == lexer.TokenSemicolon {
		p.advance()
	}
}

func (p *Parser) debug(tok lexer.Token) ast.DebugData {
	return ast.DebugData{File: p.file, Line: tok.Line}
}
