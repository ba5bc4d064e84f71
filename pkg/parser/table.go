package parser

import (
	"fmt"

	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/lexer"
)

// Binding powers, low to high. Terminators stop every level.
const (
	bpTerminator     = -1
	bpNone           = 0
	bpLogical        = 1
	bpAdditive       = 2
	bpMultiplicative = 3
	bpRelational     = 4
	bpPostfix        = 5

	// prefixBP is the level operands of prefix operators and casts are
	// parsed at: only postfix, call, index and member forms continue them.
	prefixBP = bpRelational
)

type prefixFn func(p *Parser) (ast.Expr, error)

type infixFn func(p *Parser, left ast.Expr, bp int) (ast.Expr, error)

type entry struct {
	bp     int
	prefix prefixFn
	infix  infixFn
}

type dispatchTable map[lexer.TokenKind]entry

// rule registers the same entry for each of its kinds
type rule struct {
	kinds  []lexer.TokenKind
	bp     int
	prefix prefixFn
	infix  infixFn
}

func kinds(k ...lexer.TokenKind) []lexer.TokenKind { return k }

// newDispatchTable builds a table from rules. Every kind may be registered
// once, and every non-trivia kind must be registered.
func newDispatchTable(rules []rule) (dispatchTable, error) {
	t := make(dispatchTable)
	for i, r := range rules {
		for _, k := range r.kinds {
			if _, dup := t[k]; dup {
				return nil, &TableConflictError{Kind: k, Rule: i}
			}
			t[k] = entry{bp: r.bp, prefix: r.prefix, infix: r.infix}
		}
	}
	for _, k := range lexer.Kinds() {
		if _, ok := t[k]; !ok && !k.IsTrivia() {
			return nil, fmt.Errorf("dispatch table: no entry for token kind %s", k)
		}
	}
	return t, nil
}

func mustDispatchTable(rules []rule) dispatchTable {
	t, err := newDispatchTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultTable = mustDispatchTable(defaultRules())

func defaultRules() []rule {
	return []rule{
		{kinds: kinds(lexer.TokenEOF, lexer.TokenSemicolon), bp: bpTerminator},
		{kinds: kinds(lexer.TokenRParen, lexer.TokenRBracket, lexer.TokenRBrace,
			lexer.TokenComma, lexer.TokenColon, lexer.TokenQuestion, lexer.TokenElse), bp: bpNone},

		{kinds: kinds(lexer.TokenNumber), prefix: parseNumber},
		{kinds: kinds(lexer.TokenString), prefix: parseString},
		{kinds: kinds(lexer.TokenTrue, lexer.TokenFalse), prefix: parseBoolean},
		{kinds: kinds(lexer.TokenCompilerData), prefix: parseCompilerData},
		{kinds: kinds(lexer.TokenIdent), prefix: parseIdentifier},

		{kinds: kinds(lexer.TokenReturn), prefix: parseReturn},
		{kinds: kinds(lexer.TokenBreak), prefix: parseBreak},
		{kinds: kinds(lexer.TokenStatic), prefix: parseStatic},
		{kinds: kinds(lexer.TokenConst), prefix: parseConst},
		{kinds: kinds(lexer.TokenTypedef), prefix: parseTypedef},
		{kinds: kinds(lexer.TokenIf), prefix: parseIf},
		{kinds: kinds(lexer.TokenWhile), prefix: parseWhile},
		{kinds: kinds(lexer.TokenFor), prefix: parseFor},
		{kinds: kinds(lexer.TokenStruct), prefix: parseStructStatement},
		{kinds: kinds(lexer.TokenEnum), prefix: parseTypeStatement},
		{kinds: kinds(lexer.TokenLBrace), prefix: parseBrace},

		{kinds: kinds(lexer.TokenLParen), bp: bpPostfix, prefix: parseParen, infix: parseCall},
		{kinds: kinds(lexer.TokenLBracket), bp: bpPostfix, infix: parseIndex},
		{kinds: kinds(lexer.TokenDot, lexer.TokenArrow), bp: bpPostfix, infix: parseMember},
		{kinds: kinds(lexer.TokenAssign, lexer.TokenPlusAssign, lexer.TokenMinusAssign,
			lexer.TokenStarAssign, lexer.TokenSlashAssign), bp: bpPostfix, infix: parseAssignment},
		{kinds: kinds(lexer.TokenIncrement, lexer.TokenDecrement), bp: bpPostfix, prefix: parsePrefix, infix: parsePostfix},
		{kinds: kinds(lexer.TokenAmpersand), bp: bpPostfix, prefix: parseReference, infix: parseBinary},

		{kinds: kinds(lexer.TokenPlus, lexer.TokenMinus), bp: bpAdditive, prefix: parsePrefix, infix: parseBinary},
		{kinds: kinds(lexer.TokenShl, lexer.TokenShr), bp: bpAdditive, infix: parseBinary},
		{kinds: kinds(lexer.TokenStar), bp: bpMultiplicative, prefix: parseDereference, infix: parseBinary},
		{kinds: kinds(lexer.TokenSlash, lexer.TokenPercent), bp: bpMultiplicative, infix: parseBinary},
		{kinds: kinds(lexer.TokenEq, lexer.TokenNe, lexer.TokenLt, lexer.TokenLe,
			lexer.TokenGt, lexer.TokenGe), bp: bpRelational, infix: parseBinary},
		{kinds: kinds(lexer.TokenNot), bp: bpLogical, prefix: parsePrefix},
		{kinds: kinds(lexer.TokenAnd, lexer.TokenOr), bp: bpLogical, infix: parseBinary},
	}
}
