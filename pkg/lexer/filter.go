package lexer

// DefaultDiscard lists the kinds dropped before parsing
var DefaultDiscard = []TokenKind{TokenTab, TokenWhiteSpace, TokenNewLine, TokenComment}

// Filter returns the tokens whose kind is not in discard
func Filter(tokens []Token, discard ...TokenKind) []Token {
	drop := make(map[TokenKind]bool, len(discard))
	for _, k := range discard {
		drop[k] = true
	}
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if !drop[tok.Kind] {
			out = append(out, tok)
		}
	}
	return out
}

// Significant prepares a token stream for the parser: it filters the discard
// kinds (DefaultDiscard when none are given) and appends an EOF token unless
// the stream already ends with one.
func Significant(tokens []Token, discard ...TokenKind) []Token {
	if len(discard) == 0 {
		discard = DefaultDiscard
	}
	lastLine := 1
	if len(tokens) > 0 {
		lastLine = tokens[len(tokens)-1].Line
	}
	out := Filter(tokens, discard...)
	if len(out) == 0 || out[len(out)-1].Kind != TokenEOF {
		out = append(out, Token{Kind: TokenEOF, Line: lastLine})
	}
	return out
}
