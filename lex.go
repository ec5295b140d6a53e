package unitexpr

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

// Operators contains the runes which are operators.
const Operators = "^*/-+="

// Grouping contains the runes which group expressions and separate function
// arguments.
const Grouping = "(),"

// numeric contains the runes which may continue a number token.
const numeric = "0123456789."

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// num is whether buf holds only runes in numeric.
	num bool
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// unreadRune unreads a rune from the src. Panics if unreading returns an
// error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
}

// flush returns the buffered token and resets the buffer.
func (l *lexer) flush() string {
	s := l.buf.String()
	l.buf.Reset()
	l.num = false
	return s
}

// next scans the next token from the input. After the last token, the result
// is the empty string with io.EOF.
func (l *lexer) next() (string, error) {
	if l.eof {
		return "", io.EOF
	}
	for {
		r, _, err := l.src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				if l.buf.Len() > 0 {
					return l.flush(), nil
				}
				return "", io.EOF
			}
			return "", err
		}
		switch {
		case unicode.IsSpace(r):
			if l.buf.Len() > 0 {
				return l.flush(), nil
			}
		case strings.ContainsRune(Operators+Grouping, r):
			if l.buf.Len() > 0 {
				// Scan the delimiter again as its own token.
				l.unreadRune()
				return l.flush(), nil
			}
			return string(r), nil
		case l.num && !strings.ContainsRune(numeric, r):
			// 130.8Hz -> 130.8 Hz
			l.unreadRune()
			return l.flush(), nil
		default:
			if l.buf.Len() == 0 {
				l.num = true
			}
			l.num = l.num && strings.ContainsRune(numeric, r)
			l.buf.WriteRune(r)
		}
	}
}

// TokenizeReader splits the contents of src into tokens. The only possible
// error is one returned from src other than io.EOF.
func TokenizeReader(src io.RuneScanner) ([]string, error) {
	scan := lex(src)
	var toks []string
	for {
		tok, err := scan.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return toks, err
		}
		toks = append(toks, tok)
	}
}

// Tokenize splits text into tokens. Operators, brackets, and commas are
// always tokens of their own, whitespace separates tokens, and a run of
// digits and decimal points ends at the first rune that is neither. Tokenize
// never fails; text that is not a valid expression produces tokens that later
// stages reject or leave unresolved.
func Tokenize(text string) []string {
	toks, err := TokenizeReader(strings.NewReader(text))
	if err != nil {
		panic("unitexpr: error reading string: " + err.Error())
	}
	return toks
}
