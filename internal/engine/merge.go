package engine

import (
	"sort"
	"strings"

	"chatassist/internal/domain"
)

// interval is a candidate context block over chunk ids [start, end].
type interval struct {
	start   int
	end     int
	score   float64
	matched []int
}

// windows expands each hit into its context interval, clipped to [0, n-1].
func windows(hits []domain.QueryHit, window, n int) []interval {
	ivs := make([]interval, 0, len(hits))
	for _, h := range hits {
		start := h.ChunkID - window
		if start < 0 {
			start = 0
		}
		end := h.ChunkID + window
		if end > n-1 {
			end = n - 1
		}
		ivs = append(ivs, interval{start: start, end: end, score: h.Score, matched: []int{h.ChunkID}})
	}
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].start != ivs[j].start {
			return ivs[i].start < ivs[j].start
		}
		return ivs[i].end < ivs[j].end
	})
	return ivs
}

// mergeIntervals coalesces overlapping or adjacent intervals (adjacent means
// next.start <= prev.end+1). A merged interval takes the max score of its
// constituents and the union of their matched chunk ids. Input must be sorted
// by start.
func mergeIntervals(ivs []interval) []interval {
	var out []interval
	for _, iv := range ivs {
		if len(out) > 0 && iv.start <= out[len(out)-1].end+1 {
			prev := &out[len(out)-1]
			if iv.end > prev.end {
				prev.end = iv.end
			}
			if iv.score > prev.score {
				prev.score = iv.score
			}
			prev.matched = append(prev.matched, iv.matched...)
			continue
		}
		out = append(out, interval{
			start:   iv.start,
			end:     iv.end,
			score:   iv.score,
			matched: append([]int(nil), iv.matched...),
		})
	}
	for i := range out {
		out[i].matched = dedupeSorted(out[i].matched)
	}
	return out
}

func dedupeSorted(ids []int) []int {
	sort.Ints(ids)
	kept := ids[:0]
	for i, id := range ids {
		if i == 0 || id != ids[i-1] {
			kept = append(kept, id)
		}
	}
	return kept
}

// Markers used when rendering a merged interval back into text.
const (
	highlightOpen  = "[["
	highlightClose = "]]"
	ellipsis       = "..."
)

// renderBlock reconstructs the text for a merged interval: chunks in order,
// matched chunks wrapped in highlight markers, ellipsis at edges the interval
// does not cover.
func (e *Engine) renderBlock(iv interval) domain.RetrievalResult {
	matched := make(map[int]bool, len(iv.matched))
	for _, id := range iv.matched {
		matched[id] = true
	}

	var parts []string
	if iv.start > 0 {
		parts = append(parts, ellipsis)
	}
	for id := iv.start; id <= iv.end; id++ {
		text := e.chunks[id].Text
		if matched[id] {
			text = highlightOpen + text + highlightClose
		}
		parts = append(parts, text)
	}
	if iv.end < len(e.chunks)-1 {
		parts = append(parts, ellipsis)
	}

	return domain.RetrievalResult{
		Text:       strings.Join(parts, "\n"),
		Score:      iv.score,
		StartID:    iv.start,
		EndID:      iv.end,
		MatchedIDs: iv.matched,
	}
}
