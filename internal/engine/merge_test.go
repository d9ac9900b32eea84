package engine

import (
	"reflect"
	"testing"

	"chatassist/internal/domain"
)

func TestWindowsClipToChunkRange(t *testing.T) {
	hits := []domain.QueryHit{{ChunkID: 0, Score: 0.5}, {ChunkID: 9, Score: 0.4}}
	ivs := windows(hits, 3, 10)
	if ivs[0].start != 0 || ivs[0].end != 3 {
		t.Errorf("first interval = [%d,%d], want [0,3]", ivs[0].start, ivs[0].end)
	}
	if ivs[1].start != 6 || ivs[1].end != 9 {
		t.Errorf("second interval = [%d,%d], want [6,9]", ivs[1].start, ivs[1].end)
	}
}

func TestMergeOverlappingWindows(t *testing.T) {
	// Hits at chunks 2 and 8 with window 4 over 13 chunks give [0,6] and
	// [4,12]; they overlap and must merge into [0,12] with the max score.
	hits := []domain.QueryHit{
		{ChunkID: 2, Score: 0.7},
		{ChunkID: 8, Score: 0.6},
	}
	merged := mergeIntervals(windows(hits, 4, 13))
	if len(merged) != 1 {
		t.Fatalf("got %d intervals, want 1", len(merged))
	}
	iv := merged[0]
	if iv.start != 0 || iv.end != 12 {
		t.Errorf("merged bounds = [%d,%d], want [0,12]", iv.start, iv.end)
	}
	if iv.score != 0.7 {
		t.Errorf("merged score = %f, want max 0.7", iv.score)
	}
	if !reflect.DeepEqual(iv.matched, []int{2, 8}) {
		t.Errorf("matched ids = %v, want [2 8]", iv.matched)
	}
}

func TestMergeAdjacentIntervals(t *testing.T) {
	ivs := []interval{
		{start: 0, end: 2, score: 0.3, matched: []int{1}},
		{start: 3, end: 5, score: 0.9, matched: []int{4}},
	}
	merged := mergeIntervals(ivs)
	if len(merged) != 1 {
		t.Fatalf("adjacent intervals did not merge: %#v", merged)
	}
	if merged[0].start != 0 || merged[0].end != 5 || merged[0].score != 0.9 {
		t.Errorf("merged = %+v", merged[0])
	}
}

func TestMergeKeepsDisjointIntervals(t *testing.T) {
	ivs := []interval{
		{start: 0, end: 1, score: 0.5, matched: []int{0}},
		{start: 4, end: 6, score: 0.4, matched: []int{5}},
	}
	merged := mergeIntervals(ivs)
	if len(merged) != 2 {
		t.Fatalf("got %d intervals, want 2", len(merged))
	}
}

func TestRenderBlockMarksMatchesAndEdges(t *testing.T) {
	e := &Engine{chunks: []domain.Chunk{
		{ID: 0, Text: "zero"},
		{ID: 1, Text: "one"},
		{ID: 2, Text: "two"},
		{ID: 3, Text: "three"},
	}}
	res := e.renderBlock(interval{start: 1, end: 2, score: 0.8, matched: []int{2}})
	want := "...\none\n[[two]]\n..."
	if res.Text != want {
		t.Errorf("rendered block = %q, want %q", res.Text, want)
	}
	if res.StartID != 1 || res.EndID != 2 {
		t.Errorf("bounds = (%d,%d)", res.StartID, res.EndID)
	}

	// Full coverage means no ellipsis markers.
	res = e.renderBlock(interval{start: 0, end: 3, score: 0.8, matched: []int{0}})
	if res.Text != "[[zero]]\none\ntwo\nthree" {
		t.Errorf("full-range block = %q", res.Text)
	}
}
