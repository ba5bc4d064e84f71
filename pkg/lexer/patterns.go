package lexer

import "fmt"

// Wildcard matches any lookahead character in a PatternRule.
const Wildcard rune = -1

// scanFunc consumes a variable-length lexeme starting at the cursor
type scanFunc func(l *Lexer, line int) (Token, error)

// Pattern says what to do when a (current, lookahead) pair is matched.
// A pattern with a nil Scan is a fast rule emitting Kind directly; Wide
// reports whether the lookahead character belongs to the token.
type Pattern struct {
	Kind TokenKind
	Wide bool
	Scan scanFunc
}

// PatternRule registers a Pattern for every character in First combined
// with Second (or any lookahead when Second is Wildcard).
type PatternRule struct {
	First   []rune
	Second  rune
	Pattern Pattern
}

type patternKey struct {
	first  rune
	second rune
}

// PatternTable maps (current, lookahead) pairs to patterns
type PatternTable struct {
	patterns map[patternKey]Pattern
}

// PatternConflictError reports two rules claiming the same character pair
type PatternConflictError struct {
	First  rune
	Second rune
	Rule   int // index of the rule that collided
}

func (e *PatternConflictError) Error() string {
	second := fmt.Sprintf("%q", e.Second)
	if e.Second == Wildcard {
		second = "any"
	}
	return fmt.Sprintf("pattern rule %d: combination %q %s is already claimed", e.Rule, e.First, second)
}

// NewPatternTable builds a lookup table from rules, failing on any
// duplicated (first, second) key.
func NewPatternTable(rules []PatternRule) (*PatternTable, error) {
	t := &PatternTable{patterns: make(map[patternKey]Pattern)}
	for i, rule := range rules {
		for _, first := range rule.First {
			key := patternKey{first, rule.Second}
			if _, ok := t.patterns[key]; ok {
				return nil, &PatternConflictError{First: first, Second: rule.Second, Rule: i}
			}
			t.patterns[key] = rule.Pattern
		}
	}
	return t, nil
}

// Lookup tries the exact pair first, then the wildcard entry for current
func (t *PatternTable) Lookup(current, next rune) (Pattern, bool) {
	if p, ok := t.patterns[patternKey{current, next}]; ok {
		return p, true
	}
	p, ok := t.patterns[patternKey{current, Wildcard}]
	return p, ok
}

func mustPatternTable(rules []PatternRule) *PatternTable {
	t, err := NewPatternTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultPatterns = mustPatternTable(DefaultPatternRules())

func fast(kind TokenKind) Pattern { return Pattern{Kind: kind} }
func wide(kind TokenKind) Pattern { return Pattern{Kind: kind, Wide: true} }
func long(fn scanFunc) Pattern   { return Pattern{Scan: fn} }

func single(ch rune, p Pattern) PatternRule {
	return PatternRule{First: []rune{ch}, Second: Wildcard, Pattern: p}
}

func pair(ch, second rune, p Pattern) PatternRule {
	return PatternRule{First: []rune{ch}, Second: second, Pattern: p}
}

func runeRange(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

var (
	digitChars  = runeRange('0', '9')
	symbolChars = append(append(runeRange('a', 'z'), runeRange('A', 'Z')...), '_')
)

// DefaultPatternRules is the rule list of the language
func DefaultPatternRules() []PatternRule {
	return []PatternRule{
		pair('/', '/', long(scanLineComment)),
		pair('/', '*', long(scanBlockComment)),
		single('"', long(scanString)),
		single('#', long(scanCompilerData)),
		{First: digitChars, Second: Wildcard, Pattern: long(scanNumber)},
		{First: symbolChars, Second: Wildcard, Pattern: long(scanIdentifier)},

		single('\t', fast(TokenTab)),
		{First: []rune{' ', '\r'}, Second: Wildcard, Pattern: fast(TokenWhiteSpace)},
		single('\n', fast(TokenNewLine)),
		single(0, fast(TokenEOF)),

		single('(', fast(TokenLParen)),
		single(')', fast(TokenRParen)),
		single('[', fast(TokenLBracket)),
		single(']', fast(TokenRBracket)),
		single('{', fast(TokenLBrace)),
		single('}', fast(TokenRBrace)),
		single(',', fast(TokenComma)),
		single('.', fast(TokenDot)),
		single(';', fast(TokenSemicolon)),
		single(':', fast(TokenColon)),
		single('?', fast(TokenQuestion)),

		pair('+', '=', wide(TokenPlusAssign)),
		pair('+', '+', wide(TokenIncrement)),
		single('+', fast(TokenPlus)),
		pair('-', '=', wide(TokenMinusAssign)),
		pair('-', '-', wide(TokenDecrement)),
		pair('-', '>', wide(TokenArrow)),
		single('-', fast(TokenMinus)),
		pair('*', '=', wide(TokenStarAssign)),
		single('*', fast(TokenStar)),
		pair('/', '=', wide(TokenSlashAssign)),
		single('/', fast(TokenSlash)),
		single('%', fast(TokenPercent)),

		pair('=', '=', wide(TokenEq)),
		single('=', fast(TokenAssign)),
		pair('!', '=', wide(TokenNe)),
		single('!', fast(TokenNot)),
		pair('<', '=', wide(TokenLe)),
		pair('<', '<', wide(TokenShl)),
		single('<', fast(TokenLt)),
		pair('>', '=', wide(TokenGe)),
		pair('>', '>', wide(TokenShr)),
		single('>', fast(TokenGt)),
		pair('&', '&', wide(TokenAnd)),
		single('&', fast(TokenAmpersand)),
		pair('|', '|', wide(TokenOr)),
	}
}
