package intelligence

import (
	"time"

	"DealSense/internal/domain/models"
)

const (
	criticalScoreMin = 90
	highScoreMin     = 80
	mediumScoreMin   = 60

	promoteProbMin = 0.8
	demoteProbMax  = 0.3

	// recentAlertWindow bounds how far back a prior alert still counts
	// for the price-drop check.
	recentAlertWindow = 7 * 24 * time.Hour
	// significantDrop is the relative drop vs the last alert that can
	// escalate a ≥90 score to critical.
	significantDrop = 0.10
)

// UrgencySignals carries the offer/stock/history context for one call.
type UrgencySignals struct {
	LowStock     bool
	CurrentPrice int64
	LastAlert    *models.AlertRecord
	Now          time.Time
}

// ClassifyUrgency derives the base urgency from the deal score, then lets
// the external success-probability signal shift it by at most one level.
// successProb is nil when no predictive model is wired.
func ClassifyUrgency(watchID, asin string, score float64, successProb *float64, sig UrgencySignals) models.UrgencyResult {
	res := models.UrgencyResult{WatchID: watchID, ASIN: asin, Score: score}
	res.Base = baseUrgency(score, sig)
	res.Final = res.Base

	if successProb == nil {
		return res
	}
	switch {
	case *successProb >= promoteProbMin:
		// Promotion never reaches critical through this path.
		switch res.Base {
		case models.UrgencyLow:
			res.Final = models.UrgencyMedium
			res.Shift = 1
		case models.UrgencyMedium:
			res.Final = models.UrgencyHigh
			res.Shift = 1
		}
	case *successProb <= demoteProbMax:
		switch res.Base {
		case models.UrgencyHigh:
			res.Final = models.UrgencyMedium
			res.Shift = -1
		case models.UrgencyMedium:
			res.Final = models.UrgencyLow
			res.Shift = -1
		}
	}
	return res
}

func baseUrgency(score float64, sig UrgencySignals) models.UrgencyLevel {
	if score >= criticalScoreMin && (sig.LowStock || recentDrop(sig)) {
		return models.UrgencyCritical
	}
	switch {
	case score >= highScoreMin:
		return models.UrgencyHigh
	case score >= mediumScoreMin:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

// recentDrop reports a ≥10% price drop against the most recent prior
// alert inside the 7-day window.
func recentDrop(sig UrgencySignals) bool {
	if sig.LastAlert == nil || sig.LastAlert.Price <= 0 {
		return false
	}
	if sig.Now.Sub(sig.LastAlert.SentAt) > recentAlertWindow {
		return false
	}
	drop := float64(sig.LastAlert.Price-sig.CurrentPrice) / float64(sig.LastAlert.Price)
	return drop >= significantDrop
}
