package prompt

import (
	"strings"
	"testing"

	"chatassist/internal/domain"
)

func TestContextBlockFormat(t *testing.T) {
	results := []domain.RetrievalResult{
		{Text: "first passage", Score: 0.91},
		{Text: "second passage", Score: 0.455},
	}
	block := ContextBlock("notes.txt", results)

	for _, want := range []string{
		"[file name]: notes.txt",
		"[file content begin]",
		"Chunk #1 (Score: 0.91):\nfirst passage",
		"Chunk #2 (Score: 0.46):\nsecond passage",
		"[file content end]",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q:\n%s", want, block)
		}
	}
	if !strings.HasSuffix(block, "[file content end]") {
		t.Errorf("block does not end with closing marker:\n%s", block)
	}
}

func TestContextBlockEmpty(t *testing.T) {
	if got := ContextBlock("notes.txt", nil); got != "" {
		t.Errorf("got %q for no results", got)
	}
	if got := ContextBlock("", []domain.RetrievalResult{{Text: "x"}}); got != "" {
		t.Errorf("got %q for no file name", got)
	}
}

func TestBuildOrdering(t *testing.T) {
	b := NewBuilder()
	results := []domain.RetrievalResult{{Text: "context passage", Score: 0.8}}
	out := b.Build("What is this about?", "doc.md", results, "user: hi\nassistant: hello")

	sys := strings.Index(out, DefaultSystem)
	ctx := strings.Index(out, "[file name]: doc.md")
	hist := strings.Index(out, "Conversation so far:")
	q := strings.Index(out, "user: What is this about?")

	if sys < 0 || ctx < 0 || hist < 0 || q < 0 {
		t.Fatalf("missing sections in prompt:\n%s", out)
	}
	if !(sys < ctx && ctx < hist && hist < q) {
		t.Errorf("sections out of order (%d %d %d %d):\n%s", sys, ctx, hist, q, out)
	}
}

func TestBuildWithoutContextOrHistory(t *testing.T) {
	b := NewBuilder(WithSystem("Answer briefly."))
	out := b.Build("hello?", "", nil, "")
	if strings.Contains(out, "[file content begin]") {
		t.Errorf("unexpected context block:\n%s", out)
	}
	if strings.Contains(out, "Conversation so far:") {
		t.Errorf("unexpected history section:\n%s", out)
	}
	if !strings.HasPrefix(out, "Answer briefly.") {
		t.Errorf("system override not applied:\n%s", out)
	}
	if !strings.HasSuffix(out, "user: hello?") {
		t.Errorf("prompt does not end with the question:\n%s", out)
	}
}

func TestBuildFullAttachesWholeDocument(t *testing.T) {
	b := NewBuilder()
	out := b.BuildFull("summarize", "a.txt", "entire document text", "")
	if !strings.Contains(out, "[file content begin]\nentire document text\n[file content end]") {
		t.Errorf("full document not attached verbatim:\n%s", out)
	}
}

func TestHistoryLimitOption(t *testing.T) {
	if got := NewBuilder().HistoryLimit(); got != DefaultHistoryLimit {
		t.Errorf("default history limit = %d", got)
	}
	if got := NewBuilder(WithHistoryLimit(10)).HistoryLimit(); got != 10 {
		t.Errorf("history limit override = %d", got)
	}
}
