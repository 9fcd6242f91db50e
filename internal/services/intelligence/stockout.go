package intelligence

import (
	"time"

	"DealSense/internal/domain/models"
)

const (
	stockoutCriticalMin = 0.9
	stockoutHighMin     = 0.7
	stockoutMediumMin   = 0.5

	// stableStockDuration is the average in-stock run length at which
	// the duration term stops reducing the risk estimate.
	stableStockDuration = 72 * time.Hour

	// Blend weights for the risk estimate. The out-of-stock share
	// dominates; a product that is out for 8 of 10 checks and flipping
	// between states must land at high urgency or above.
	stockoutOutWeight  = 0.6
	stockoutFlipWeight = 0.25
	stockoutDurWeight  = 0.15
)

// PredictStockout estimates stockout risk from chronological availability
// observations. Risk rises with the out-of-stock ratio and with flip
// frequency, and falls with longer average in-stock runs. An empty
// history yields an insufficient-data marker, never an error.
func PredictStockout(obs []models.AvailabilityObservation) models.StockoutForecast {
	res := models.StockoutForecast{Confidence: "low"}
	if len(obs) > 0 {
		res.ASIN = obs[0].ASIN
	}
	if len(obs) == 0 {
		res.Prediction = "insufficient_data"
		return res
	}

	res.Prediction = "estimated"
	res.TotalChecks = len(obs)
	for _, o := range obs {
		switch o.Status {
		case models.AvailabilityInStock:
			res.InStockCount++
		case models.AvailabilityOutOfStock:
			res.OutOfStockCount++
		}
	}
	res.StockChanges = countTransitions(obs)
	res.AvgStockDuration = avgInStockDuration(obs)

	outRatio := float64(res.OutOfStockCount) / float64(res.TotalChecks)
	flipRate := 0.0
	if res.TotalChecks > 1 {
		flipRate = float64(res.StockChanges) / float64(res.TotalChecks-1)
	}
	durNorm := 0.0
	if stableStockDuration > 0 {
		durNorm = clamp(float64(res.AvgStockDuration)/float64(stableStockDuration), 0, 1)
	}

	res.Probability = clamp(stockoutOutWeight*outRatio+stockoutFlipWeight*flipRate+stockoutDurWeight*(1-durNorm), 0, 1)
	res.Urgency = stockoutUrgency(res.Probability)
	res.Confidence = stockoutConfidence(res.TotalChecks)
	return res
}

func countTransitions(obs []models.AvailabilityObservation) int {
	changes := 0
	for i := 1; i < len(obs); i++ {
		if obs[i].Status != obs[i-1].Status {
			changes++
		}
	}
	return changes
}

// avgInStockDuration averages the length of consecutive in-stock runs,
// measured from the first observation of a run to the observation that
// ended it (or the final observation for an open run).
func avgInStockDuration(obs []models.AvailabilityObservation) time.Duration {
	var total time.Duration
	runs := 0
	var runStart time.Time
	inRun := false

	for i, o := range obs {
		switch {
		case o.Status == models.AvailabilityInStock && !inRun:
			inRun = true
			runStart = o.Timestamp
		case o.Status != models.AvailabilityInStock && inRun:
			total += o.Timestamp.Sub(runStart)
			runs++
			inRun = false
		}
		if inRun && i == len(obs)-1 {
			total += o.Timestamp.Sub(runStart)
			runs++
		}
	}
	if runs == 0 {
		return 0
	}
	return total / time.Duration(runs)
}

func stockoutUrgency(p float64) models.UrgencyLevel {
	switch {
	case p >= stockoutCriticalMin:
		return models.UrgencyCritical
	case p >= stockoutHighMin:
		return models.UrgencyHigh
	case p >= stockoutMediumMin:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

func stockoutConfidence(checks int) string {
	switch {
	case checks >= 20:
		return "high"
	case checks >= 10:
		return "medium"
	default:
		return "low"
	}
}
