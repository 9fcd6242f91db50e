package recommend

import (
	"testing"
	"time"

	"DealSense/internal/domain/models"
)

func TestBuildProfile(t *testing.T) {
	activity := models.UserActivity{
		UserID: "u1",
		Watched: []models.ProductRef{
			{ASIN: "A1", Brand: "Sony", Category: "Electronics", Price: 5000},
			{ASIN: "A2", Brand: "Sony", Category: "Electronics", Price: 12000},
			{ASIN: "A3", Brand: "boAt", Category: "Audio", Price: 2000},
		},
		Clicked: []models.ProductRef{
			{ASIN: "A4", Brand: "Sony", Category: "Audio"},
		},
		Searches: []string{"wireless headphones", "usb-c hub"},
	}

	p := BuildProfile(activity, time.Now())

	if p.Brands["sony"] != 3 {
		t.Fatalf("expected sony count 3, got %d", p.Brands["sony"])
	}
	if p.Brands["boat"] != 1 {
		t.Fatalf("brand keys must be lower-cased, got %+v", p.Brands)
	}
	if p.Categories["electronics"] != 2 || p.Categories["audio"] != 2 {
		t.Fatalf("unexpected category counts: %+v", p.Categories)
	}
	if p.MinPrice != 2000 || p.MaxPrice != 12000 {
		t.Fatalf("price range from watches only: min=%d max=%d", p.MinPrice, p.MaxPrice)
	}
	for _, kw := range []string{"wireless", "headphones", "usb-c", "hub"} {
		if _, ok := p.Keywords[kw]; !ok {
			t.Fatalf("missing keyword %q in %+v", kw, p.Keywords)
		}
	}
}

func TestBuildProfileEmptyActivity(t *testing.T) {
	p := BuildProfile(models.UserActivity{UserID: "u2"}, time.Now())

	if !Empty(p) {
		t.Fatalf("profile of empty activity must be empty")
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	toks := tokenize("4K TV, 55 inch!")
	for _, tok := range toks {
		if len(tok) <= 2 {
			t.Fatalf("short token leaked: %q", tok)
		}
	}
}
