package segment

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// --- Clean tests ---

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces", "a  b   c", "a b c"},
		{"keeps single newlines", "a  b\t\nc", "a b\nc"},
		{"keeps paragraph breaks", "first\n\n\nsecond", "first\n\nsecond"},
		{"strips special characters", "cost: $40 & rising*", "cost: 40 rising"},
		{"keeps basic punctuation", "First, second; third (and last).", "First, second; third (and last)."},
		{"trims edges", "  hello  ", "hello"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 5000)
	got := Clean(long)
	if len(got) > maxCleanLen {
		t.Errorf("Clean output length = %d, want <= %d", len(got), maxCleanLen)
	}
}

func TestCleanCapRespectsRuneBoundary(t *testing.T) {
	// The two-byte rune straddles the length cap.
	got := Clean(strings.Repeat("a", maxCleanLen-1) + "é")
	if !utf8.ValidString(got) {
		t.Fatalf("Clean output is not valid UTF-8: ends %q", got[len(got)-4:])
	}
	if len(got) != maxCleanLen-1 {
		t.Errorf("Clean output length = %d, want %d", len(got), maxCleanLen-1)
	}
	if !strings.HasSuffix(got, "a") {
		t.Errorf("Clean output ends %q, want the partial rune dropped", got[len(got)-1:])
	}
}

// --- Truncate tests ---

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"cut inside two-byte rune", "caféteria", 4, "caf"},
		{"cut after two-byte rune", "caféteria", 5, "café"},
		{"cut inside four-byte rune", "ab\U0001F4DAcd", 4, "ab"},
		{"zero limit", "hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate(%q, %d) produced invalid UTF-8", tt.in, tt.n)
			}
		})
	}
}

// --- Sentences tests ---

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"three sentences", "This is the first sentence. Here comes another one! And a third sentence?", 3},
		{"drops short fragments", "Yes. No. This sentence is long enough to keep.", 1},
		{"no terminators returns whole text", "a text without any sentence terminator", 1},
		{"empty input", "", 0},
		{"whitespace only", "   \n\t  ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.in)
			if len(got) != tt.want {
				t.Errorf("Sentences(%q) = %d sentences %v, want %d", tt.in, len(got), got, tt.want)
			}
		})
	}
}

func TestSentencesTrimmed(t *testing.T) {
	got := Sentences("  Machine learning is a subset of artificial intelligence.  ")
	if len(got) != 1 {
		t.Fatalf("got %d sentences, want 1", len(got))
	}
	if got[0] != "Machine learning is a subset of artificial intelligence" {
		t.Errorf("sentence = %q, should be trimmed without terminator", got[0])
	}
}

// --- Paragraphs tests ---

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"two paragraphs", "first paragraph\n\nsecond paragraph", 2},
		{"blank line with spaces still splits", "first\n   \nsecond", 2},
		{"single block", "one line\nanother line", 1},
		{"empty input", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paragraphs(tt.in)
			if len(got) != tt.want {
				t.Errorf("Paragraphs(%q) = %d, want %d", tt.in, len(got), tt.want)
			}
		})
	}
}

// --- Tokens tests ---

func TestTokens(t *testing.T) {
	got := Tokens("Machine-Learning uses (neural) networks, 2 layers!")
	want := []string{"machine", "learning", "uses", "neural", "networks", "2", "layers"}
	if len(got) != len(want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// --- Stats tests ---

func TestStats(t *testing.T) {
	text := "# Title\n\nThis is the first paragraph with several words. It has two sentences.\n\nSECOND SECTION\nThe closing paragraph sits here."

	stats := Stats(text)
	if stats.ParagraphCount != 3 {
		t.Errorf("ParagraphCount = %d, want 3", stats.ParagraphCount)
	}
	if stats.HeadingCount != 2 {
		t.Errorf("HeadingCount = %d, want 2", stats.HeadingCount)
	}
	if stats.SentenceCount != 3 {
		t.Errorf("SentenceCount = %d, want 3", stats.SentenceCount)
	}
	if stats.WordCount == 0 {
		t.Error("WordCount = 0, want > 0")
	}
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"# Introduction", true},
		{"## Sub Heading", true},
		{"CHAPTER ONE", true},
		{"A normal sentence here", false},
		{"THIS ALL CAPS LINE HAS FAR TOO MANY WORDS TO BE A PLAUSIBLE HEADING AT ALL", false},
		{"12345", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := IsHeading(tt.line); got != tt.want {
				t.Errorf("IsHeading(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsListItem(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"- bullet", true},
		{"* star", true},
		{"+ plus", true},
		{"3. numbered", true},
		{"12. also numbered", true},
		{"not a list", false},
		{"3.no space", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := IsListItem(tt.line); got != tt.want {
				t.Errorf("IsListItem(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
