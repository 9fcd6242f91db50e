package intelligence

import (
	"testing"
	"time"

	"DealSense/internal/domain/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestClassifyUrgencyBaseLevels(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sig := UrgencySignals{CurrentPrice: 1000, Now: now}

	cases := []struct {
		score float64
		want  models.UrgencyLevel
	}{
		{95, models.UrgencyHigh}, // no scarcity or drop signal, never critical
		{85, models.UrgencyHigh},
		{79.9, models.UrgencyMedium},
		{60, models.UrgencyMedium},
		{59.9, models.UrgencyLow},
		{10, models.UrgencyLow},
	}
	for _, c := range cases {
		res := ClassifyUrgency("w1", "B0TEST", c.score, nil, sig)
		if res.Final != c.want {
			t.Fatalf("score %f: expected %s, got %s", c.score, c.want, res.Final)
		}
		if res.Final != res.Base || res.Shift != 0 {
			t.Fatalf("no model signal must not shift: %+v", res)
		}
	}
}

func TestClassifyUrgencyCriticalNeedsScarcity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	res := ClassifyUrgency("w1", "B0TEST", 92, nil, UrgencySignals{
		LowStock:     true,
		CurrentPrice: 1000,
		Now:          now,
	})
	if res.Final != models.UrgencyCritical {
		t.Fatalf("high score plus low stock should be critical, got %s", res.Final)
	}
}

func TestClassifyUrgencyCriticalOnRecentDrop(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	last := &models.AlertRecord{
		WatchID: "w1",
		ASIN:    "B0TEST",
		Price:   1000,
		SentAt:  now.Add(-3 * 24 * time.Hour),
	}

	res := ClassifyUrgency("w1", "B0TEST", 92, nil, UrgencySignals{
		CurrentPrice: 880, // 12% below the last alerted price
		LastAlert:    last,
		Now:          now,
	})
	if res.Final != models.UrgencyCritical {
		t.Fatalf("12%% drop within the window should be critical, got %s", res.Final)
	}

	// Same drop but outside the window no longer counts.
	last.SentAt = now.Add(-10 * 24 * time.Hour)
	res = ClassifyUrgency("w1", "B0TEST", 92, nil, UrgencySignals{
		CurrentPrice: 880,
		LastAlert:    last,
		Now:          now,
	})
	if res.Final != models.UrgencyHigh {
		t.Fatalf("stale alert must not escalate, got %s", res.Final)
	}
}

func TestClassifyUrgencyPromotion(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sig := UrgencySignals{CurrentPrice: 1000, Now: now}

	res := ClassifyUrgency("w1", "B0TEST", 65, floatPtr(0.9), sig)
	if res.Base != models.UrgencyMedium || res.Final != models.UrgencyHigh || res.Shift != 1 {
		t.Fatalf("expected medium->high promotion: %+v", res)
	}

	// Promotion caps below critical.
	res = ClassifyUrgency("w1", "B0TEST", 85, floatPtr(0.9), sig)
	if res.Final != models.UrgencyHigh || res.Shift != 0 {
		t.Fatalf("high must not promote to critical: %+v", res)
	}
}

func TestClassifyUrgencyDemotion(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sig := UrgencySignals{CurrentPrice: 1000, Now: now}

	res := ClassifyUrgency("w1", "B0TEST", 85, floatPtr(0.2), sig)
	if res.Base != models.UrgencyHigh || res.Final != models.UrgencyMedium || res.Shift != -1 {
		t.Fatalf("expected high->medium demotion: %+v", res)
	}

	// Critical never demotes: scarcity already proved itself.
	res = ClassifyUrgency("w1", "B0TEST", 95, floatPtr(0.2), UrgencySignals{
		LowStock:     true,
		CurrentPrice: 1000,
		Now:          now,
	})
	if res.Final != models.UrgencyCritical || res.Shift != 0 {
		t.Fatalf("critical must not demote: %+v", res)
	}
}

func TestClassifyUrgencyMidProbabilityNoShift(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sig := UrgencySignals{CurrentPrice: 1000, Now: now}

	res := ClassifyUrgency("w1", "B0TEST", 65, floatPtr(0.5), sig)
	if res.Final != res.Base || res.Shift != 0 {
		t.Fatalf("mid probability must not shift: %+v", res)
	}
}
