package recommend

import (
	"testing"

	"DealSense/internal/domain/models"
)

func TestProfileSimilarityIdentical(t *testing.T) {
	p := models.PreferenceProfile{
		Brands:     map[string]int{"sony": 2, "jbl": 1},
		Categories: map[string]int{"audio": 3},
		MinPrice:   2000,
		MaxPrice:   9000,
	}
	if got := ProfileSimilarity(p, p); got != 1.0 {
		t.Fatalf("identical profiles must score 1.0, got %f", got)
	}
}

func TestProfileSimilarityDisjoint(t *testing.T) {
	a := models.PreferenceProfile{
		Brands:     map[string]int{"sony": 1},
		Categories: map[string]int{"audio": 1},
		MinPrice:   1000,
		MaxPrice:   2000,
	}
	b := models.PreferenceProfile{
		Brands:     map[string]int{"prestige": 1},
		Categories: map[string]int{"home": 1},
		MinPrice:   5000,
		MaxPrice:   9000,
	}
	if got := ProfileSimilarity(a, b); got != 0 {
		t.Fatalf("disjoint profiles must score 0, got %f", got)
	}
}

func TestJaccard(t *testing.T) {
	a := map[string]struct{}{"x": {}, "y": {}}
	b := map[string]struct{}{"y": {}, "z": {}}
	if got := jaccard(a, b); got != 1.0/3.0 {
		t.Fatalf("expected 1/3, got %f", got)
	}
	if got := jaccard(nil, nil); got != 0 {
		t.Fatalf("two empty sets score 0, got %f", got)
	}
}

func TestRangeProximity(t *testing.T) {
	// [1000,3000] vs [2000,4000]: overlap 1000 over span 3000.
	if got := rangeProximity(1000, 3000, 2000, 4000); got != 1.0/3.0 {
		t.Fatalf("expected 1/3, got %f", got)
	}
	if got := rangeProximity(1000, 2000, 3000, 4000); got != 0 {
		t.Fatalf("non-overlapping ranges score 0, got %f", got)
	}
	if got := rangeProximity(0, 0, 1000, 2000); got != 0 {
		t.Fatalf("missing range scores 0, got %f", got)
	}
}
