package intelligence

import (
	"testing"

	"DealSense/internal/domain/models"
)

func TestScoreDealEmptyHistory(t *testing.T) {
	res := ScoreDeal("B0TEST", 1000, nil, nil, nil, nil, DefaultScoreConfig())

	if res.Score != 50 {
		t.Fatalf("expected neutral 50, got %f", res.Score)
	}
	if res.Tier != models.TierAverage {
		t.Fatalf("expected average tier, got %s", res.Tier)
	}
	if res.Reason == "" {
		t.Fatalf("expected a short-circuit reason")
	}
	if len(res.Recommendations) == 0 {
		t.Fatalf("recommendations must never be empty")
	}
}

func TestScoreDealExcellent(t *testing.T) {
	history := dailyPoints(testStart,
		2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000)
	offer := &models.OfferSnapshot{
		ASIN:             "B0TEST",
		Price:            1000,
		ListPrice:        2500,
		SavingsPercent:   60,
		Availability:     models.AvailabilityInStock,
		IsPrime:          true,
		SelfFulfilled:    true,
		MaxOrderQuantity: 10,
	}
	review := &models.ReviewSnapshot{ASIN: "B0TEST", ReviewCount: 1500, AverageRating: 4.8}
	product := &models.ProductSnapshot{ASIN: "B0TEST", Brand: "Apple"}

	res := ScoreDeal("B0TEST", 1000, history, offer, review, product, DefaultScoreConfig())

	if res.Tier != models.TierExcellent {
		t.Fatalf("expected excellent, got %s (score %f)", res.Tier, res.Score)
	}
	if res.Factors.Price != 95 {
		t.Fatalf("all history above current should give price factor 95, got %f", res.Factors.Price)
	}
	if res.Factors.Review != 100 {
		t.Fatalf("high-volume 4.8 rating should cap at 100, got %f", res.Factors.Review)
	}
	if res.Factors.Discount != 100 {
		t.Fatalf("60%% savings should give discount factor 100, got %f", res.Factors.Discount)
	}
	if res.Factors.Brand != 90 {
		t.Fatalf("premium brand should give 90, got %f", res.Factors.Brand)
	}
	if len(res.Recommendations) == 0 {
		t.Fatalf("recommendations must never be empty")
	}
}

func TestScoreDealPoor(t *testing.T) {
	history := dailyPoints(testStart, 500, 500, 500, 500, 500, 500, 500, 500)

	res := ScoreDeal("B0TEST", 1000, history, nil, nil, nil, DefaultScoreConfig())

	if res.Tier != models.TierPoor {
		t.Fatalf("expected poor, got %s (score %f)", res.Tier, res.Score)
	}
	if res.Factors.Price != 20 {
		t.Fatalf("price above entire history should give 20, got %f", res.Factors.Price)
	}
	// Missing snapshots degrade, they never error.
	if res.Factors.Review != 50 {
		t.Fatalf("missing review should be neutral 50, got %f", res.Factors.Review)
	}
	if res.Factors.Availability != 30 {
		t.Fatalf("missing offer should give availability 30, got %f", res.Factors.Availability)
	}
	if res.Factors.Discount != 0 {
		t.Fatalf("missing offer should give discount 0, got %f", res.Factors.Discount)
	}
}

func TestScoreDealBounds(t *testing.T) {
	history := dailyPoints(testStart, 900, 1100, 1000, 950, 1050, 980, 1020)
	offer := &models.OfferSnapshot{Availability: models.AvailabilityInStock, SavingsPercent: 30}
	review := &models.ReviewSnapshot{ReviewCount: 50, AverageRating: 4.1}

	res := ScoreDeal("B0TEST", 990, history, offer, review, nil, DefaultScoreConfig())

	if res.Score < 0 || res.Score > 100 {
		t.Fatalf("score out of range: %f", res.Score)
	}
	for _, f := range []float64{
		res.Factors.Price, res.Factors.Review, res.Factors.Availability,
		res.Factors.Discount, res.Factors.Brand,
	} {
		if f < 0 || f > 100 {
			t.Fatalf("factor out of range: %+v", res.Factors)
		}
	}
}

func TestDiscountFactorFallbacks(t *testing.T) {
	promoOnly := &models.OfferSnapshot{
		Promotions: []models.Promotion{{Type: "coupon", Label: "5% off voucher"}},
	}
	if got := discountFactor(promoOnly); got != 40 {
		t.Fatalf("promotions-only offer should give 40, got %f", got)
	}

	amountOnly := &models.OfferSnapshot{SavingsAmount: 250, ListPrice: 1000}
	if got := discountFactor(amountOnly); got != 50 {
		t.Fatalf("25%% absolute savings doubled should give 50, got %f", got)
	}

	if got := discountFactor(&models.OfferSnapshot{}); got != 0 {
		t.Fatalf("offer with no discount data should give 0, got %f", got)
	}
}

func TestTierThresholds(t *testing.T) {
	cfg := DefaultScoreConfig()
	cases := []struct {
		score float64
		want  models.QualityTier
	}{
		{95, models.TierExcellent},
		{85, models.TierExcellent},
		{84.9, models.TierGood},
		{70, models.TierGood},
		{69.9, models.TierAverage},
		{50, models.TierAverage},
		{49.9, models.TierPoor},
		{0, models.TierPoor},
	}
	for _, c := range cases {
		if got := tierFor(c.score, cfg); got != c.want {
			t.Fatalf("score %f: expected %s, got %s", c.score, c.want, got)
		}
	}
}
