// Package lexer turns source text into tokens using a table of character patterns.
package lexer

import (
	"fmt"
	"io"
	"log/slog"
)

// Lexer tokenizes source code
type Lexer struct {
	src      []rune
	pos      int // index of the current character
	line     int
	patterns *PatternTable
	log      *slog.Logger
}

// Option configures a Lexer
type Option func(*Lexer)

// WithLogger sets the logger used for unrecognized-character warnings
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.log = logger.With(slog.String("component", "lexer"))
		}
	}
}

// WithPatterns replaces the default pattern table
func WithPatterns(t *PatternTable) Option {
	return func(l *Lexer) { l.patterns = t }
}

// New creates a new Lexer for the given input
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		src:      []rune(input),
		line:     1,
		patterns: defaultPatterns,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize is a shorthand for New(input, opts...).Tokenize()
func Tokenize(input string, opts ...Option) ([]Token, error) {
	return New(input, opts...).Tokenize()
}

// current returns the character under the cursor. Past the end of input it
// returns '\n' so scanners bounded by a newline always stop.
func (l *Lexer) current() rune {
	return l.at(l.pos)
}

func (l *Lexer) peek() rune {
	return l.at(l.pos + 1)
}

func (l *Lexer) at(i int) rune {
	if i >= len(l.src) {
		return '\n'
	}
	return l.src[i]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) advance() rune {
	ch := l.current()
	l.pos++
	return ch
}

func (l *Lexer) expect(want rune) error {
	if got := l.advance(); got != want {
		return fmt.Errorf("line %d: expected %q, found %q", l.line, want, got)
	}
	return nil
}

// Tokenize consumes the whole input. Unrecognized characters are logged and
// skipped; only a failing long rule aborts tokenization.
func (l *Lexer) Tokenize() ([]Token, error) {
	var out []Token
	for !l.atEnd() {
		p, ok := l.patterns.Lookup(l.current(), l.peek())
		if !ok {
			l.log.Warn("no pattern for character",
				slog.String("char", string(l.current())),
				slog.String("next", string(l.peek())),
				slog.Int("line", l.line))
			l.advance()
			continue
		}

		if p.Scan != nil {
			tok, err := p.Scan(l, l.line)
			if err != nil {
				return nil, fmt.Errorf("tokenizing: %w", err)
			}
			out = append(out, tok)
			continue
		}

		if p.Kind == TokenNewLine {
			l.line++
		}
		l.pos++
		if p.Wide {
			l.pos++
		}
		out = append(out, Token{Kind: p.Kind, Line: l.line})
	}
	return out, nil
}
