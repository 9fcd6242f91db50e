package recommend

import (
	"context"
	"testing"
	"time"

	"DealSense/internal/domain/models"
)

func testCandidates() []models.CandidateProduct {
	return []models.CandidateProduct{
		{ASIN: "C1", Title: "Sony wireless headphones", Brand: "Sony", Category: "Audio", Price: 8000},
		{ASIN: "C2", Title: "Kitchen knife set", Brand: "Prestige", Category: "Home", Price: 1500},
		{ASIN: "C3", Title: "JBL bluetooth speaker", Brand: "JBL", Category: "Audio", Price: 4000},
	}
}

func TestHeuristicScorerEmptyProfile(t *testing.T) {
	s := NewHeuristicScorer(DefaultWeights())
	profile := BuildProfile(models.UserActivity{UserID: "new"}, time.Now())

	recs, err := s.Score(context.Background(), profile, testCandidates())
	if err != nil {
		t.Fatalf("empty profile must not error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	for _, r := range recs {
		if r.Score != neutralScore {
			t.Fatalf("new user gets neutral scores, got %f", r.Score)
		}
		if r.Reason == "" {
			t.Fatalf("reason must always be set")
		}
	}
	// Catalog order preserved for new users.
	if recs[0].ASIN != "C1" || recs[2].ASIN != "C3" {
		t.Fatalf("unexpected order: %+v", recs)
	}
}

func TestHeuristicScorerRanksAffinity(t *testing.T) {
	s := NewHeuristicScorer(DefaultWeights())
	activity := models.UserActivity{
		UserID: "u1",
		Watched: []models.ProductRef{
			{ASIN: "A1", Brand: "Sony", Category: "Audio", Price: 6000},
			{ASIN: "A2", Brand: "Sony", Category: "Audio", Price: 9000},
		},
		Searches: []string{"wireless headphones"},
	}
	profile := BuildProfile(activity, time.Now())

	recs, err := s.Score(context.Background(), profile, testCandidates())
	if err != nil {
		t.Fatalf("score error: %v", err)
	}
	if recs[0].ASIN != "C1" {
		t.Fatalf("Sony audio candidate should rank first, got %s", recs[0].ASIN)
	}
	if recs[len(recs)-1].ASIN != "C2" {
		t.Fatalf("unrelated home product should rank last, got %s", recs[len(recs)-1].ASIN)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Fatalf("results must be sorted descending: %+v", recs)
		}
	}
	for _, r := range recs {
		if r.Score < 0 || r.Score > 1 {
			t.Fatalf("score out of range: %f", r.Score)
		}
	}
}

func TestAffinityFrequencyShare(t *testing.T) {
	counts := map[string]int{"sony": 3, "jbl": 1}
	if got := affinity(counts, "Sony"); got != 0.75 {
		t.Fatalf("expected 0.75, got %f", got)
	}
	if got := affinity(counts, "bose"); got != 0 {
		t.Fatalf("unseen value should be 0, got %f", got)
	}
	if got := affinity(nil, "sony"); got != 0 {
		t.Fatalf("empty counts should be 0, got %f", got)
	}
}
