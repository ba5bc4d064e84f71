package lexer

import "fmt"

// TokenKind represents the kind of a token
type TokenKind int

const (
	// Trivia, usually filtered out before parsing
	TokenTab        TokenKind = iota
	TokenWhiteSpace           // ' ', '\r'
	TokenNewLine              // '\n'
	TokenComment              // // ... and /* ... */

	// Special tokens
	TokenEOF

	// Literals
	TokenIdent        // main, foo, x
	TokenNumber       // 42, 0x2a, 0b101010, 0o52
	TokenString       // "hello"
	TokenCompilerData // #include <stdio.h>

	// Keywords
	TokenTrue    // true
	TokenFalse   // false
	TokenReturn  // return
	TokenIf      // if
	TokenElse    // else
	TokenWhile   // while
	TokenFor     // for
	TokenBreak   // break
	TokenStatic  // static
	TokenConst   // const
	TokenEnum    // enum
	TokenStruct  // struct
	TokenTypedef // typedef

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenNot       // !
	TokenAnd       // &&
	TokenOr        // ||
	TokenShl       // <<
	TokenShr       // >>
	TokenAssign    // =
	TokenAmpersand // &

	// Compound assignment operators
	TokenPlusAssign  // +=
	TokenMinusAssign // -=
	TokenStarAssign  // *=
	TokenSlashAssign // /=

	// Increment/decrement
	TokenIncrement // ++
	TokenDecrement // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenLBrace    // {
	TokenRBrace    // }
	TokenComma     // ,
	TokenDot       // .
	TokenSemicolon // ;
	TokenColon     // :
	TokenArrow     // ->
	TokenQuestion  // ?

	tokenKindCount
)

var tokenNames = map[TokenKind]string{
	TokenTab:          "TAB",
	TokenWhiteSpace:   "WHITESPACE",
	TokenNewLine:      "NEWLINE",
	TokenComment:      "COMMENT",
	TokenEOF:          "EOF",
	TokenIdent:        "IDENT",
	TokenNumber:       "NUMBER",
	TokenString:       "STRING",
	TokenCompilerData: "COMPILER_DATA",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenReturn:       "return",
	TokenIf:           "if",
	TokenElse:         "else",
	TokenWhile:        "while",
	TokenFor:          "for",
	TokenBreak:        "break",
	TokenStatic:       "static",
	TokenConst:        "const",
	TokenEnum:         "enum",
	TokenStruct:       "struct",
	TokenTypedef:      "typedef",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenPercent:      "%",
	TokenEq:           "==",
	TokenNe:           "!=",
	TokenLt:           "<",
	TokenLe:           "<=",
	TokenGt:           ">",
	TokenGe:           ">=",
	TokenNot:          "!",
	TokenAnd:          "&&",
	TokenOr:           "||",
	TokenShl:          "<<",
	TokenShr:          ">>",
	TokenAssign:       "=",
	TokenAmpersand:    "&",
	TokenPlusAssign:   "+=",
	TokenMinusAssign:  "-=",
	TokenStarAssign:   "*=",
	TokenSlashAssign:  "/=",
	TokenIncrement:    "++",
	TokenDecrement:    "--",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenSemicolon:    ";",
	TokenColon:        ":",
	TokenArrow:        "->",
	TokenQuestion:     "?",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalYAML renders the kind by name in token and AST dumps
func (k TokenKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// IsTrivia reports whether tokens of this kind carry no grammar meaning
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TokenTab, TokenWhiteSpace, TokenNewLine, TokenComment:
		return true
	}
	return false
}

// Kinds returns every token kind in declaration order
func Kinds() []TokenKind {
	kinds := make([]TokenKind, 0, tokenKindCount)
	for k := TokenKind(0); k < tokenKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindByName resolves a kind from the name returned by String
func KindByName(name string) (TokenKind, error) {
	for k, n := range tokenNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown token kind %q", name)
}

// Token is a lexical token. Value is empty unless the kind carries a payload.
type Token struct {
	Kind  TokenKind `yaml:"kind"`
	Value string    `yaml:"value,omitempty"`
	Line  int       `yaml:"line"`
}

func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("%s (line %d)", t.Kind, t.Line)
	}
	return fmt.Sprintf("%s %q (line %d)", t.Kind, t.Value, t.Line)
}

// keywords maps keyword strings to token kinds
var keywords = map[string]TokenKind{
	"true":    TokenTrue,
	"false":   TokenFalse,
	"return":  TokenReturn,
	"if":      TokenIf,
	"else":    TokenElse,
	"while":   TokenWhile,
	"for":     TokenFor,
	"break":   TokenBreak,
	"static":  TokenStatic,
	"const":   TokenConst,
	"enum":    TokenEnum,
	"struct":  TokenStruct,
	"typedef": TokenTypedef,
}

// LookupIdent returns the token kind for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
