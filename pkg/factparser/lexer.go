package factparser

import (
	"bytes"
	"strings"

	"github.com/matzehuels/relviz/pkg/errors"
)

// Lexer splits fact source text into logical lines of tokens.
//
// The lexer is line-oriented: a line that starts with space or tab is an
// attribute line, anything else is a fact header. Blank lines and lines
// holding only a comment produce nothing.
type Lexer struct {
	name string // source name used in error positions
	src  []byte
	pos  int // current byte offset
	line int // current line (1-based)
}

// NewLexer creates a Lexer for src. The name appears in error positions;
// use "<stdin>" or similar for unnamed input. CRLF line endings are
// normalised to LF.
func NewLexer(name string, src []byte) *Lexer {
	return &Lexer{
		name: name,
		src:  bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n")),
		line: 1,
	}
}

// Lines tokenizes the whole source.
// Returns an *errors.Error with code LEXICAL_ERROR on malformed quoting.
func (l *Lexer) Lines() ([]Line, error) {
	var lines []Line
	for !l.atEnd() {
		line, ok, err := l.scanLine()
		if err != nil {
			return nil, err
		}
		if ok {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) hasPrefix(s string) bool {
	return bytes.HasPrefix(l.src[l.pos:], []byte(s))
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
	}
	return ch
}

func (l *Lexer) errorf(line int, format string, args ...any) *errors.Error {
	return errors.New(errors.ErrCodeLexical, format, args...).
		At(errors.Pos{Source: l.name, Line: line})
}

// skipSpace consumes linear whitespace and returns how much it consumed.
func (l *Lexer) skipSpace() int {
	n := 0
	for !l.atEnd() && isSpace(l.peek()) {
		l.advance()
		n++
	}
	return n
}

func (l *Lexer) skipComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanLine reads one logical line. ok is false for blank and comment-only
// lines.
func (l *Lexer) scanLine() (line Line, ok bool, err error) {
	start := l.line
	indented := l.skipSpace() > 0

	switch {
	case l.atEnd():
		return Line{}, false, nil
	case l.peek() == '\n':
		l.advance()
		return Line{}, false, nil
	case l.peek() == '#':
		l.skipComment()
		if !l.atEnd() {
			l.advance()
		}
		return Line{}, false, nil
	}

	line = Line{Kind: LineFact, Num: start}
	if indented {
		line.Kind = LineAttr
		if err := l.scanAttr(&line); err != nil {
			return Line{}, false, err
		}
	}
	if err := l.scanTokens(&line); err != nil {
		return Line{}, false, err
	}
	return line, true, nil
}

// scanAttr reads "<key>: <value>" at the start of an attribute line. It
// stops early when the shape does not match and leaves the rest to
// scanTokens, so the parser can report what it found.
func (l *Lexer) scanAttr(line *Line) error {
	if l.peek() == '"' {
		tok, err := l.scanQuoted()
		if err != nil {
			return err
		}
		line.Tokens = append(line.Tokens, tok)
	} else if key := l.scanBare(isAttrNameStop); key != "" {
		line.Tokens = append(line.Tokens, Token{Kind: TokenName, Text: key, Line: l.line})
	}

	l.skipSpace()
	if l.peek() != ':' {
		return nil
	}
	line.Tokens = append(line.Tokens, Token{Kind: TokenColon, Text: ":", Line: l.line})
	l.advance()
	l.skipSpace()

	if l.peek() == '"' {
		tok, err := l.scanQuoted()
		if err != nil {
			return err
		}
		line.Tokens = append(line.Tokens, tok)
		return nil
	}
	if value := l.scanValue(); value != "" {
		line.Tokens = append(line.Tokens, Token{Kind: TokenName, Text: value, Line: l.line})
	}
	return nil
}

// scanTokens reads tokens up to and including the end of the logical line.
func (l *Lexer) scanTokens(line *Line) error {
	for {
		l.skipSpace()
		if l.atEnd() {
			return nil
		}

		tokLine := l.line
		switch ch := l.peek(); ch {
		case '\n':
			l.advance()
			return nil
		case '#':
			l.skipComment()
		case ',':
			l.advance()
			line.Tokens = append(line.Tokens, Token{Kind: TokenComma, Text: ",", Line: tokLine})
		case '"':
			tok, err := l.scanQuoted()
			if err != nil {
				return err
			}
			line.Tokens = append(line.Tokens, tok)
		case '(':
			l.advance()
			tok, err := l.scanDelimited(")", true, tokLine, "label")
			if err != nil {
				return err
			}
			tok.Kind = TokenLabel
			line.Tokens = append(line.Tokens, tok)
		default:
			word := l.scanBare(isNameStop)
			line.Tokens = append(line.Tokens, Token{Kind: TokenName, Text: word, Line: tokLine})
		}
	}
}

// scanQuoted reads a "quoted" or """triple-quoted""" identifier starting at
// the opening quote.
func (l *Lexer) scanQuoted() (Token, error) {
	start := l.line
	if l.hasPrefix(`"""`) {
		l.pos += 3
		return l.scanDelimited(`"""`, true, start, "triple-quoted string")
	}
	l.advance()
	return l.scanDelimited(`"`, false, start, "quoted string")
}

// scanDelimited reads up to closing, decoding backslash escapes: a
// backslash makes the next character literal.
func (l *Lexer) scanDelimited(closing string, multiline bool, start int, what string) (Token, error) {
	var sb strings.Builder
	for {
		if l.atEnd() {
			return Token{}, l.errorf(start, "unterminated %s", what)
		}
		if l.hasPrefix(closing) {
			l.pos += len(closing)
			return Token{Kind: TokenName, Text: sb.String(), Line: start}, nil
		}
		ch := l.advance()
		if ch == '\\' {
			if l.atEnd() {
				return Token{}, l.errorf(start, "unterminated escape in %s", what)
			}
			ch = l.advance()
		}
		if ch == '\n' && !multiline {
			return Token{}, l.errorf(start, "line break in %s", what)
		}
		sb.WriteByte(ch)
	}
}

func (l *Lexer) scanBare(stop func(byte) bool) string {
	start := l.pos
	for !l.atEnd() && !stop(l.peek()) {
		l.advance()
	}
	return string(l.src[start:l.pos])
}

// scanValue reads an unquoted attribute value: everything up to a line
// break, comment or quote, with trailing whitespace trimmed.
func (l *Lexer) scanValue() string {
	start := l.pos
	for !l.atEnd() {
		if ch := l.peek(); ch == '\n' || ch == '#' || ch == '"' {
			break
		}
		l.advance()
	}
	return strings.TrimRight(string(l.src[start:l.pos]), " \t\r")
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isNameStop(ch byte) bool {
	return isSpace(ch) || ch == '\n' || ch == '#' || ch == '"' || ch == ','
}

func isAttrNameStop(ch byte) bool {
	return isNameStop(ch) || ch == ':'
}
