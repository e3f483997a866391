package formats

import (
	"strings"
	"testing"
)

func collectTokens(data string) []string {
	tok := NewTokenizer([]byte(data))
	var out []string
	for {
		t, ok := tok.Next()
		if !ok {
			return out
		}
		out = append(out, t)
	}
}

func TestTokenizer_Comments(t *testing.T) {
	data := "walk 0 10 20 // trailing comment\n/* block\ncomment */ run \"quoted name\"\n"
	got := collectTokens(data)
	want := []string{"walk", "0", "10", "20", "run", "quoted name"}

	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTokenizer_LineTracking(t *testing.T) {
	tok := NewTokenizer([]byte("a\n\n/* x\n */ b\n// c\nd"))

	lines := []int{1, 4, 6}
	for i, want := range lines {
		if _, ok := tok.Next(); !ok {
			t.Fatalf("token %d: unexpected end of input", i)
		}
		if tok.Line() != want {
			t.Errorf("token %d: expected line %d, got %d", i, want, tok.Line())
		}
	}
	if _, ok := tok.Next(); ok {
		t.Error("expected end of input")
	}
}

func TestTokenizer_UnterminatedComment(t *testing.T) {
	if got := collectTokens("a /* never closed"); len(got) != 1 {
		t.Errorf("expected 1 token, got %q", got)
	}
}

func TestTokenizer_LongToken(t *testing.T) {
	got := collectTokens(strings.Repeat("x", MaxTokenLength+50))
	if len(got) != 1 || len(got[0]) != MaxTokenLength {
		t.Errorf("expected one token of %d bytes", MaxTokenLength)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{"-10", -10},
		{"+7", 7},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"99999999999", 2147483647},
	}
	for _, tt := range tests {
		if got := parseInt(tt.in); got != tt.want {
			t.Errorf("parseInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"20", 20},
		{"12.5", 12.5},
		{"15fps", 15},
		{"x", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseFloat(tt.in); got != tt.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
