package formats

import (
	"math"
	"strconv"
)

// MaxTokenLength is the longest token the tokenizer returns; longer tokens are truncated.
const MaxTokenLength = 1023

// Tokenizer splits script text into tokens.
//
// Tokens are separated by whitespace. "//" starts a comment that runs to the end
// of the line and "/* */" delimits a block comment. A double-quoted string is
// returned as a single token without its quotes.
type Tokenizer struct {
	data []byte
	pos  int
	line int
}

// NewTokenizer creates a tokenizer over data.
func NewTokenizer(data []byte) *Tokenizer {
	return &Tokenizer{data: data, line: 1}
}

// Line returns the line of the last token returned by Next.
func (t *Tokenizer) Line() int {
	return t.line
}

// Next returns the next token. ok is false at end of input.
func (t *Tokenizer) Next() (token string, ok bool) {
	if !t.skipSpaceAndComments() {
		return "", false
	}

	if t.data[t.pos] == '"' {
		t.pos++
		start := t.pos
		for t.pos < len(t.data) && t.data[t.pos] != '"' {
			if t.data[t.pos] == '\n' {
				t.line++
			}
			t.pos++
		}
		end := t.pos
		if t.pos < len(t.data) {
			t.pos++ // closing quote
		}
		return clampToken(t.data[start:end]), true
	}

	start := t.pos
	for t.pos < len(t.data) && t.data[t.pos] > ' ' {
		t.pos++
	}
	return clampToken(t.data[start:t.pos]), true
}

// skipSpaceAndComments advances to the start of the next token.
// It returns false when the input is exhausted.
func (t *Tokenizer) skipSpaceAndComments() bool {
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch {
		case c == '\n':
			t.line++
			t.pos++
		case c <= ' ':
			t.pos++
		case c == '/' && t.peek(1) == '/':
			for t.pos < len(t.data) && t.data[t.pos] != '\n' {
				t.pos++
			}
		case c == '/' && t.peek(1) == '*':
			t.pos += 2
			for t.pos < len(t.data) && !(t.data[t.pos] == '*' && t.peek(1) == '/') {
				if t.data[t.pos] == '\n' {
					t.line++
				}
				t.pos++
			}
			t.pos += 2
		default:
			return true
		}
	}
	return false
}

func (t *Tokenizer) peek(offset int) byte {
	if t.pos+offset < len(t.data) {
		return t.data[t.pos+offset]
	}
	return 0
}

func clampToken(b []byte) string {
	if len(b) > MaxTokenLength {
		b = b[:MaxTokenLength]
	}
	return string(b)
}

// parseInt reads the leading decimal integer of s, ignoring trailing garbage.
// It returns 0 when s does not start with a number.
func parseInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		// Out of range: saturate like the C runtime does
		if s[0] == '-' {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	return int(n)
}

// parseFloat reads the longest numeric prefix of s.
// It returns 0 when s does not start with a number.
func parseFloat(s string) float64 {
	for end := len(s); end > 0; end-- {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
	}
	return 0
}
