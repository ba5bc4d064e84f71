package lexer

import (
	"fmt"
	"strings"
)

// UnterminatedError reports a lexeme that ran into the end of its line or file
type UnterminatedError struct {
	Kind TokenKind
	Line int
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("line %d: unterminated %s", e.Line, e.Kind)
}

func isNumberChar(ch rune) bool {
	switch {
	case '0' <= ch && ch <= '9':
		return true
	case 'a' <= ch && ch <= 'f', 'A' <= ch && ch <= 'F':
		return true
	}
	return ch == 'x' || ch == 'X' || ch == 'o' || ch == 'O'
}

func isIdentChar(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9' || ch == '_'
}

// readUntilNewline collects characters up to, not including, the next newline
func (l *Lexer) readUntilNewline() string {
	var sb strings.Builder
	for l.current() != '\n' {
		sb.WriteRune(l.advance())
	}
	return sb.String()
}

func scanLineComment(l *Lexer, line int) (Token, error) {
	if err := l.expect('/'); err != nil {
		return Token{}, err
	}
	if err := l.expect('/'); err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenComment, Value: l.readUntilNewline(), Line: line}, nil
}

// scanBlockComment keeps the line counter in step with the newlines it swallows
func scanBlockComment(l *Lexer, line int) (Token, error) {
	if err := l.expect('/'); err != nil {
		return Token{}, err
	}
	if err := l.expect('*'); err != nil {
		return Token{}, err
	}
	var sb strings.Builder
	for {
		if l.atEnd() {
			return Token{}, &UnterminatedError{Kind: TokenComment, Line: line}
		}
		if l.current() == '*' && l.peek() == '/' {
			l.pos += 2
			break
		}
		ch := l.advance()
		if ch == '\n' {
			l.line++
		}
		sb.WriteRune(ch)
	}
	return Token{Kind: TokenComment, Value: sb.String(), Line: line}, nil
}

func scanCompilerData(l *Lexer, line int) (Token, error) {
	if err := l.expect('#'); err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenCompilerData, Value: l.readUntilNewline(), Line: line}, nil
}

// scanString keeps escape sequences verbatim; decoding is left to later stages
func scanString(l *Lexer, line int) (Token, error) {
	if err := l.expect('"'); err != nil {
		return Token{}, err
	}
	var sb strings.Builder
	for l.current() != '"' {
		if l.current() == '\n' {
			return Token{}, &UnterminatedError{Kind: TokenString, Line: line}
		}
		if l.current() == '\\' && !l.atEnd() {
			sb.WriteRune(l.advance())
			if l.current() == '\n' {
				return Token{}, &UnterminatedError{Kind: TokenString, Line: line}
			}
		}
		sb.WriteRune(l.advance())
	}
	if err := l.expect('"'); err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenString, Value: sb.String(), Line: line}, nil
}

// scanNumber only collects the literal; its base is resolved by the parser
func scanNumber(l *Lexer, line int) (Token, error) {
	var sb strings.Builder
	for isNumberChar(l.current()) {
		sb.WriteRune(l.advance())
	}
	return Token{Kind: TokenNumber, Value: sb.String(), Line: line}, nil
}

func scanIdentifier(l *Lexer, line int) (Token, error) {
	var sb strings.Builder
	for isIdentChar(l.current()) {
		sb.WriteRune(l.advance())
	}
	text := sb.String()
	if kind := LookupIdent(text); kind != TokenIdent {
		return Token{Kind: kind, Line: line}, nil
	}
	return Token{Kind: TokenIdent, Value: text, Line: line}, nil
}
