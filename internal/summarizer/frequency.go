// Package summarizer produces short extractive overviews of attached
// documents, shown when a file is first loaded into a chat session.
package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Frequency ranks sentences by normalized word frequency, stopwords excluded,
// and returns the top sentences in their original order.
type Frequency struct {
	wordPattern *regexp.Regexp
	sentPattern *regexp.Regexp
	stopwords   map[string]struct{}
}

// NewFrequency creates a frequency-based extractive summarizer.
func NewFrequency() *Frequency {
	return &Frequency{
		wordPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		sentPattern: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
		stopwords:   stopwordSet(),
	}
}

// Summarize returns at most maxSentences of text, chosen by frequency score.
// Text without sentence terminators is returned trimmed as-is.
func (f *Frequency) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	sentences := f.sentPattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	freq := f.wordFrequencies(sentences)

	type ranked struct {
		idx   int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i, sent := range sentences {
		words := f.words(sent)
		var score float64
		for _, w := range words {
			score += freq[w]
		}
		// Dampen the long-sentence advantage without erasing it.
		if n := float64(len(words)); n > 0 {
			score /= math.Sqrt(n)
		}
		scores[i] = ranked{i, score}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	picked := make([]int, maxSentences)
	for i := range picked {
		picked[i] = scores[i].idx
	}
	sort.Ints(picked)

	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = strings.TrimSpace(sentences[idx])
	}
	return strings.Join(out, " "), nil
}

// wordFrequencies counts non-stopword occurrences across all sentences and
// scales them into [0, 1] by the most frequent word.
func (f *Frequency) wordFrequencies(sentences []string) map[string]float64 {
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, w := range f.words(sent) {
			if _, stop := f.stopwords[w]; stop {
				continue
			}
			freq[w]++
		}
	}
	var top float64
	for _, v := range freq {
		if v > top {
			top = v
		}
	}
	if top > 0 {
		for k := range freq {
			freq[k] /= top
		}
	}
	return freq
}

func (f *Frequency) words(text string) []string {
	return f.wordPattern.FindAllString(strings.ToLower(text), -1)
}

func stopwordSet() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "again", "further", "than",
		"so", "such", "into", "about", "between", "through", "during",
		"before", "after", "above", "below", "out", "off", "own", "same",
		"too", "very", "can", "will", "just", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
