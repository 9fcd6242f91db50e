package intelligence

import (
	"math"
	"time"

	"DealSense/internal/domain/models"
)

const (
	// MinPredictionPoints is the least history the predictor accepts.
	MinPredictionPoints = 10

	predShortWindow  = 7
	predMediumWindow = 30
	predLongWindow   = 90
)

// PredictMovement projects a price range over the horizon. The horizon is
// informational only; the projection blends short/medium/long moving
// averages, pulled toward the short-term average as trend strength rises,
// and scaled by the seasonal multiplier for the current month.
func PredictMovement(points []models.PricePoint, currentPrice int64, horizonDays int, now time.Time) models.Prediction {
	res := models.Prediction{HorizonDays: horizonDays, PointsSeen: len(points), MinimumPoints: MinPredictionPoints}
	if len(points) > 0 {
		res.ASIN = points[0].ASIN
	}
	if len(points) < MinPredictionPoints {
		res.Insufficient = true
		return res
	}

	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = float64(p.Price)
	}

	short := windowAvgOrCurrent(prices, predShortWindow, currentPrice)
	medium := windowAvgOrCurrent(prices, predMediumWindow, currentPrice)
	long := windowAvgOrCurrent(prices, predLongWindow, currentPrice)

	// Trend strength in [0,1] pulls weight from the slower averages onto
	// the short one, keeping the blend monotonic in strength.
	strength := AnalyzeTrend(points, currentPrice).Strength / 100
	ws := 0.5 + 0.4*strength
	rest := 1 - ws
	wm := rest * 0.6
	wl := rest * 0.4

	predicted := (ws*short + wm*medium + wl*long) * seasonalMultiplier(points, now)

	sd := stdev(prices)
	res.Predicted = int64(math.Round(predicted))
	res.Low = int64(math.Max(0, math.Round(predicted-sd)))
	res.High = int64(math.Round(predicted + sd))
	res.Confidence = confidence(prices)
	return res
}

// windowAvgOrCurrent averages the last `window` prices, falling back to
// the current price when the history cannot fill the window.
func windowAvgOrCurrent(prices []float64, window int, currentPrice int64) float64 {
	if len(prices) < window {
		return float64(currentPrice)
	}
	sum := 0.0
	for _, p := range prices[len(prices)-window:] {
		sum += p
	}
	return sum / float64(window)
}

// seasonalMultiplier scales toward the current month's historical average,
// clamped to ±10% so a thin month cannot dominate the forecast.
func seasonalMultiplier(points []models.PricePoint, now time.Time) float64 {
	seasonal := DetectSeasonality(points)
	if !seasonal.Sufficient {
		return 1
	}
	monthAvg, ok := seasonal.MonthlyAverages[now.Month()]
	if !ok || monthAvg <= 0 {
		return 1
	}
	var overall float64
	for _, avg := range seasonal.MonthlyAverages {
		overall += avg
	}
	overall /= float64(len(seasonal.MonthlyAverages))
	if overall <= 0 {
		return 1
	}
	return clamp(monthAvg/overall, 0.9, 1.1)
}

// confidence combines data volume with series consistency (inverse
// coefficient of variation), bounded to [0,1].
func confidence(prices []float64) float64 {
	volume := math.Min(1, float64(len(prices))/float64(predLongWindow))
	mean := 0.0
	for _, p := range prices {
		mean += p
	}
	mean /= float64(len(prices))
	consistency := 0.0
	if mean > 0 {
		consistency = clamp(1-stdev(prices)/mean, 0, 1)
	}
	return clamp(0.4*volume+0.6*consistency, 0, 1)
}

func stdev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)
	var sum2 float64
	for _, x := range xs {
		d := x - mean
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(n-1))
}
