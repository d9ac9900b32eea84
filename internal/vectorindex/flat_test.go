package vectorindex

import (
	"math"
	"testing"
)

func unit(vals ...float64) []float64 {
	norm := 0.0
	for _, v := range vals {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v / norm
	}
	return out
}

func TestBuildEmptyReturnsNil(t *testing.T) {
	if idx := Build(nil); idx != nil {
		t.Fatal("Build(nil) should return the nil sentinel")
	}
	if idx := Build([][]float64{}); idx != nil {
		t.Fatal("Build(empty) should return the nil sentinel")
	}
}

func TestSizeMatchesInput(t *testing.T) {
	idx := Build([][]float64{unit(1, 0), unit(0, 1), unit(1, 1)})
	if idx.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", idx.Size())
	}
}

func TestSearchOrdering(t *testing.T) {
	idx := Build([][]float64{
		unit(0, 1),  // orthogonal to query
		unit(1, 0),  // identical to query
		unit(1, 1),  // in between
		unit(-1, 0), // opposite
	})
	hits := idx.Search(unit(1, 0), 4)
	if len(hits) != 4 {
		t.Fatalf("got %d hits, want 4", len(hits))
	}
	wantOrder := []int{1, 2, 0, 3}
	for i, want := range wantOrder {
		if hits[i].ChunkID != want {
			t.Errorf("hit %d = chunk %d, want %d", i, hits[i].ChunkID, want)
		}
	}
	if math.Abs(hits[0].Score-1.0) > 1e-9 {
		t.Errorf("identical vector score = %f, want 1.0", hits[0].Score)
	}
	if math.Abs(hits[3].Score+1.0) > 1e-9 {
		t.Errorf("opposite vector score = %f, want -1.0", hits[3].Score)
	}
}

func TestSearchClampsK(t *testing.T) {
	idx := Build([][]float64{unit(1, 0), unit(0, 1)})
	if hits := idx.Search(unit(1, 0), 10); len(hits) != 2 {
		t.Errorf("got %d hits, want 2", len(hits))
	}
	if hits := idx.Search(unit(1, 0), 0); hits != nil {
		t.Errorf("k=0 should return no hits, got %d", len(hits))
	}
}

func TestSearchTieBreaksByLowerID(t *testing.T) {
	v := unit(1, 1)
	idx := Build([][]float64{v, v, v})
	hits := idx.Search(unit(1, 1), 3)
	for i, h := range hits {
		if h.ChunkID != i {
			t.Errorf("hit %d = chunk %d, want ascending ids on ties", i, h.ChunkID)
		}
	}
}
