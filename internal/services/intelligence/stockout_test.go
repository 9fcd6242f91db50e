package intelligence

import (
	"testing"
	"time"

	"DealSense/internal/domain/models"
)

func hourlyObs(start time.Time, statuses ...models.Availability) []models.AvailabilityObservation {
	out := make([]models.AvailabilityObservation, len(statuses))
	for i, s := range statuses {
		out[i] = models.AvailabilityObservation{
			ASIN:      "B0TEST",
			Status:    s,
			Timestamp: start.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestPredictStockoutEmptyHistory(t *testing.T) {
	res := PredictStockout(nil)

	if res.Prediction != "insufficient_data" {
		t.Fatalf("expected insufficient_data, got %q", res.Prediction)
	}
	if res.Confidence != "low" {
		t.Fatalf("expected low confidence, got %q", res.Confidence)
	}
}

func TestPredictStockoutMostlyOut(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	o := models.AvailabilityOutOfStock
	obs := hourlyObs(start, o, o, o, o, o, o, o, o, o, o)

	res := PredictStockout(obs)
	if res.Prediction != "estimated" {
		t.Fatalf("expected estimated, got %q", res.Prediction)
	}
	if res.OutOfStockCount != 10 || res.InStockCount != 0 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	// Full out ratio plus the duration term with no in-stock runs.
	if res.Urgency != models.UrgencyHigh {
		t.Fatalf("expected high urgency, got %s (p=%f)", res.Urgency, res.Probability)
	}
	if res.Confidence != "medium" {
		t.Fatalf("10 checks should give medium confidence, got %q", res.Confidence)
	}
}

func TestPredictStockoutFrequentFlips(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	i, o := models.AvailabilityInStock, models.AvailabilityOutOfStock

	// 8 of 10 checks out of stock with the product flipping between
	// states; every such arrangement must reach at least high urgency.
	cases := [][]models.Availability{
		{o, i, o, o, o, o, o, o, o, i},
		{o, i, o, o, o, i, o, o, o, o},
		{i, o, o, o, o, i, o, o, o, o},
	}
	for n, statuses := range cases {
		res := PredictStockout(hourlyObs(start, statuses...))
		if res.OutOfStockCount != 8 || res.InStockCount != 2 {
			t.Fatalf("case %d: unexpected counts: %+v", n, res)
		}
		if res.Urgency != models.UrgencyHigh && res.Urgency != models.UrgencyCritical {
			t.Fatalf("case %d: expected at least high urgency, got %s (p=%f, changes=%d)",
				n, res.Urgency, res.Probability, res.StockChanges)
		}
	}
}

func TestPredictStockoutStableStock(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	i := models.AvailabilityInStock
	statuses := make([]models.Availability, 25)
	for k := range statuses {
		statuses[k] = i
	}
	// One long in-stock run of 24h against the 72h stability bar.
	res := PredictStockout(hourlyObs(start, statuses...))

	if res.Urgency == models.UrgencyCritical || res.Urgency == models.UrgencyHigh {
		t.Fatalf("always-in-stock product must not look risky: %s (p=%f)", res.Urgency, res.Probability)
	}
	if res.StockChanges != 0 {
		t.Fatalf("expected zero transitions, got %d", res.StockChanges)
	}
	if res.Confidence != "high" {
		t.Fatalf("25 checks should give high confidence, got %q", res.Confidence)
	}
}

func TestCountTransitions(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	i, o := models.AvailabilityInStock, models.AvailabilityOutOfStock
	obs := hourlyObs(start, i, o, o, i, i, o)

	if got := countTransitions(obs); got != 3 {
		t.Fatalf("expected 3 transitions, got %d", got)
	}
}

func TestAvgInStockDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	i, o := models.AvailabilityInStock, models.AvailabilityOutOfStock

	// Run one: t0 to t2 (2h). Run two: t3 to t5, still open at t5 (2h).
	obs := hourlyObs(start, i, i, o, i, i, i)

	avg := avgInStockDuration(obs)
	want := (2*time.Hour + 2*time.Hour) / 2
	if avg != want {
		t.Fatalf("expected %s, got %s", want, avg)
	}
}

func TestPredictStockoutProbabilityBounds(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	i, o := models.AvailabilityInStock, models.AvailabilityOutOfStock
	obs := hourlyObs(start, i, o, i, o, i, o, i, o, i, o, i, o)

	res := PredictStockout(obs)
	if res.Probability < 0 || res.Probability > 1 {
		t.Fatalf("probability out of range: %f", res.Probability)
	}
}
