package corpus

import (
	"strings"
	"testing"
)

func TestChunkCountAndCoverage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		length  int
		size    int
		overlap int
	}{
		{"exact multiple", 1200, 600, 120},
		{"short text", 50, 600, 120},
		{"no overlap", 1000, 100, 0},
		{"overlap near size", 777, 10, 9},
		{"single char windows", 17, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := strings.Repeat("x", tc.length)
			chunks := Chunk(text, tc.size, tc.overlap)

			step := tc.size - tc.overlap
			if step < 1 {
				step = 1
			}
			want := (tc.length + step - 1) / step
			if len(chunks) != want {
				t.Fatalf("expected %d chunks, got %d", want, len(chunks))
			}

			// Start offsets must tile [0, length) with stride step.
			covered := 0
			for i, chunk := range chunks {
				start := i * step
				if start >= tc.length {
					t.Fatalf("chunk %d starts past end of text", i)
				}
				if len(chunk) > tc.size {
					t.Fatalf("chunk %d longer than size: %d", i, len(chunk))
				}
				if end := start + len(chunk); end > covered {
					covered = end
				}
			}
			if covered != tc.length {
				t.Fatalf("chunks cover %d of %d chars", covered, tc.length)
			}
		})
	}
}

func TestChunkDeterministic(t *testing.T) {
	text := "Remote data entry position, no experience needed, weekly pay via wire transfer."
	first := Chunk(text, 20, 5)
	second := Chunk(text, 20, 5)
	if len(first) != len(second) {
		t.Fatalf("chunk count differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestChunkCollapsesWhitespace(t *testing.T) {
	chunks := Chunk("hello\n\t   world", 100, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "hello world" {
		t.Fatalf("whitespace not collapsed: %q", chunks[0])
	}
}

func TestChunkEmptyInput(t *testing.T) {
	if got := Chunk("", 600, 120); got != nil {
		t.Fatalf("expected nil for empty text, got %v", got)
	}
	if got := Chunk("   \n\t ", 600, 120); got != nil {
		t.Fatalf("expected nil for whitespace text, got %v", got)
	}
}
