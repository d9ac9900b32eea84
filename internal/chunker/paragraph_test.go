package chunker

import (
	"reflect"
	"strings"
	"testing"
)

func TestChunkEmptyInput(t *testing.T) {
	c := NewParagraph(DefaultConfig())
	for _, text := range []string{"", "   ", "\n\n\t \n"} {
		if got := c.Chunk(text); len(got) != 0 {
			t.Errorf("Chunk(%q) = %d chunks, want 0", text, len(got))
		}
	}
}

func TestChunkNonEmptyYieldsAtLeastOne(t *testing.T) {
	c := NewParagraph(DefaultConfig())
	docs := []string{
		"word",
		"Short paragraph well below the minimum word count.",
		"First line\nSecond line\nThird line",
		strings.Repeat("Sentence with a handful of words in it. ", 100),
	}
	for _, doc := range docs {
		if got := c.Chunk(doc); len(got) == 0 {
			t.Errorf("Chunk(%.40q...) yielded no chunks", doc)
		}
	}
}

func TestChunkDeterministic(t *testing.T) {
	c := NewParagraph(Config{MaxWords: 20, MinWords: 4, OverlapWords: 5})
	doc := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 12) +
		"\n\n" + strings.Repeat("Pack my box with five dozen liquor jugs. ", 8)
	first := c.Chunk(doc)
	second := c.Chunk(doc)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-chunking the same document produced a different sequence")
	}
}

func TestChunkIDsArePositions(t *testing.T) {
	c := NewParagraph(Config{MaxWords: 12, MinWords: 3, OverlapWords: 2})
	doc := strings.Repeat("Alpha beta gamma delta epsilon zeta. ", 10)
	for i, ch := range c.Chunk(doc) {
		if ch.ID != i {
			t.Errorf("chunk %d has ID %d", i, ch.ID)
		}
	}
}

func TestChunkOverlapSeedsNextChunk(t *testing.T) {
	c := NewParagraph(Config{MaxWords: 10, MinWords: 5, OverlapWords: 2})
	doc := "one two three four five six seven eight. nine ten eleven twelve."
	chunks := c.Chunk(doc)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %#v", len(chunks), chunks)
	}
	firstWords := strings.Fields(chunks[0].Text)
	tail := strings.Join(firstWords[len(firstWords)-2:], " ")
	if !strings.HasPrefix(chunks[1].Text, tail) {
		t.Errorf("second chunk %q does not start with overlap tail %q", chunks[1].Text, tail)
	}
}

func TestChunkDropsShortParagraphResidue(t *testing.T) {
	c := NewParagraph(Config{MaxWords: 50, MinWords: 5, OverlapWords: 0})
	doc := "This paragraph has definitely more than five words in total.\n\nToo short."
	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if strings.Contains(chunks[0].Text, "Too short") {
		t.Error("dropped residue leaked into an emitted chunk")
	}
}

func TestChunkShortSoleParagraphStillEmitted(t *testing.T) {
	c := NewParagraph(Config{MaxWords: 50, MinWords: 10, OverlapWords: 0})
	chunks := c.Chunk("Just four words here.")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "Just four words here." {
		t.Errorf("unexpected chunk text %q", chunks[0].Text)
	}
}

func TestChunkLineFallback(t *testing.T) {
	c := NewParagraph(Config{MaxWords: 4, MinWords: 2, OverlapWords: 1})
	doc := "alpha beta\ngamma delta\nepsilon zeta"
	chunks := c.Chunk(doc)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %#v", len(chunks), chunks)
	}
	if chunks[0].Text != "alpha beta gamma delta" {
		t.Errorf("first chunk = %q", chunks[0].Text)
	}
	if chunks[0].StartUnit != 0 || chunks[0].EndUnit != 1 {
		t.Errorf("first chunk span = (%d,%d), want (0,1)", chunks[0].StartUnit, chunks[0].EndUnit)
	}
	if chunks[1].EndUnit != 2 {
		t.Errorf("second chunk end unit = %d, want 2", chunks[1].EndUnit)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"No terminal punctuation here", []string{"No terminal punctuation here"}},
		{"Version 1.5 is out. Good.", []string{"Version 1.5 is out.", "Good."}},
		{"Really?! Yes.", []string{"Really?!", "Yes."}},
		{"Trailing tail. leftover words", []string{"Trailing tail.", "leftover words"}},
	}
	for _, tt := range tests {
		if got := splitSentences(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitSentences(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
