// Package intelligence holds the deal intelligence engine: pure, read-only
// computations over immutable price/offer/review snapshots. Nothing in this
// package performs I/O, and sparse data always degrades to an explicit
// neutral result instead of an error.
package intelligence

import (
	"math"
	"sort"
	"time"

	"DealSense/internal/domain/models"
)

const (
	shortWindow  = 5
	mediumWindow = 10

	// minTrendPoints is the least history required for a direction call.
	minTrendPoints = 5
	// minDropPoints is the least history for the comparable-point scan.
	minDropPoints = 10
	// minSeasonalPoints and minSeasonalMonths gate the seasonal read.
	minSeasonalPoints = 30
	minSeasonalMonths = 3

	// comparableBand is the relative distance within which a historical
	// price counts as comparable to the current one.
	comparableBand = 0.05

	// discountLikelyFrequency is the frequency above which another
	// discount is predicted as likely.
	discountLikelyFrequency = 0.3
)

// AnalyzeTrend computes direction and strength from the price history plus
// the current price. The current price is treated as the latest point of
// the series; the history alone must have at least minTrendPoints entries.
func AnalyzeTrend(points []models.PricePoint, currentPrice int64) models.TrendAnalysis {
	res := models.TrendAnalysis{Points: len(points)}
	if len(points) > 0 {
		res.ASIN = points[0].ASIN
	}
	if len(points) < minTrendPoints {
		res.Direction = models.TrendInsufficientData
		return res
	}

	series := make([]float64, 0, len(points)+1)
	for _, p := range points {
		series = append(series, float64(p.Price))
	}
	series = append(series, float64(currentPrice))

	short := tailMean(series, shortWindow)
	medium := tailMean(series, mediumWindow)
	res.ShortAvg = short
	res.MediumAvg = medium

	// Direction always comes from the window comparison; strength is
	// undefined against a non-positive medium average and stays 0.
	switch {
	case short > medium*1.02:
		res.Direction = models.TrendIncreasing
	case short < medium*0.98:
		res.Direction = models.TrendDecreasing
	default:
		res.Direction = models.TrendStable
	}
	if medium > 0 {
		res.Strength = math.Min(100, math.Abs(short-medium)/medium*100)
	}
	return res
}

// RankPercentiles positions currentPrice inside the historical prices.
// Quartiles degrade to min/max when the history is too short to support
// them: p25/p75 need more than 4 points, p90 more than 10.
func RankPercentiles(points []models.PricePoint, currentPrice int64) models.PercentileReport {
	var rep models.PercentileReport
	n := len(points)
	if n == 0 {
		return rep
	}

	prices := make([]int64, n)
	for i, p := range points {
		prices[i] = p.Price
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	atOrBelow := 0
	for _, p := range prices {
		if p <= currentPrice {
			atOrBelow++
		}
	}
	rep.Rank = float64(atOrBelow) / float64(n) * 100
	rep.Min = prices[0]
	rep.Max = prices[n-1]
	rep.P50 = prices[n/2]
	if n > 4 {
		rep.P25 = prices[n/4]
		rep.P75 = prices[(n*3)/4]
	} else {
		rep.P25 = rep.Min
		rep.P75 = rep.Max
	}
	if n > 10 {
		rep.P90 = prices[(n*9)/10]
	} else {
		rep.P90 = rep.Max
	}
	rep.IsGoodDeal = rep.Rank <= 25
	rep.IsExcellentDeal = rep.Rank <= 10
	return rep
}

// DetectSeasonality averages prices per calendar month. It needs at least
// minSeasonalPoints observations spread over minSeasonalMonths distinct
// months; anything less reports insufficient_seasonal_data.
func DetectSeasonality(points []models.PricePoint) models.SeasonalReport {
	if len(points) < minSeasonalPoints {
		return models.SeasonalReport{Reason: "insufficient_seasonal_data"}
	}

	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	for _, p := range points {
		m := p.Timestamp.Month()
		sums[m] += float64(p.Price)
		counts[m]++
	}
	if len(counts) < minSeasonalMonths {
		return models.SeasonalReport{Reason: "insufficient_seasonal_data"}
	}

	rep := models.SeasonalReport{
		Sufficient:      true,
		MonthlyAverages: make(map[time.Month]float64, len(sums)),
	}
	bestAvg := math.Inf(1)
	worstAvg := math.Inf(-1)
	for m, sum := range sums {
		avg := sum / float64(counts[m])
		rep.MonthlyAverages[m] = avg
		if avg < bestAvg {
			bestAvg = avg
			rep.BestMonth = m
		}
		if avg > worstAvg {
			worstAvg = avg
			rep.WorstMonth = m
		}
	}
	if bestAvg > 0 {
		rep.Variance = (worstAvg - bestAvg) / bestAvg * 100
	}
	return rep
}

// DropProbability estimates the chance the price drops from its current
// level. Each historical point within comparableBand of the current price
// contributes one comparison against its successor. With short histories
// or no comparable points it falls back to a 3-vs-3 recent-mean check,
// and finally to a neutral 0.5.
func DropProbability(points []models.PricePoint, currentPrice int64) float64 {
	n := len(points)
	if n >= minDropPoints && currentPrice > 0 {
		band := float64(currentPrice) * comparableBand
		drops, comparisons := 0, 0
		for i := 0; i < n-1; i++ {
			if math.Abs(float64(points[i].Price-currentPrice)) > band {
				continue
			}
			comparisons++
			if points[i+1].Price < points[i].Price {
				drops++
			}
		}
		if comparisons > 0 {
			return float64(drops) / float64(comparisons)
		}
	}

	// 3-vs-3 fallback: recent mean against the three points before it.
	if n >= 6 {
		recent := meanPrices(points[n-3:])
		prior := meanPrices(points[n-6 : n-3])
		if recent-prior < 0 {
			return 0.7
		}
		return 0.3
	}
	return 0.5
}

// AnalyzeDiscounts reports discount history over all points carrying a
// positive discount percentage.
func AnalyzeDiscounts(points []models.PricePoint, now time.Time) models.DiscountPattern {
	rep := models.DiscountPattern{DaysSinceLast: -1, Prediction: "unlikely"}
	if len(points) == 0 {
		return rep
	}

	var sum float64
	var count int
	var last time.Time
	for _, p := range points {
		if p.DiscountPercent <= 0 {
			continue
		}
		count++
		sum += p.DiscountPercent
		if p.DiscountPercent > rep.MaxDiscount {
			rep.MaxDiscount = p.DiscountPercent
		}
		if p.Timestamp.After(last) {
			last = p.Timestamp
		}
	}
	if count == 0 {
		return rep
	}

	rep.AverageDiscount = sum / float64(count)
	rep.Frequency = float64(count) / float64(len(points))
	rep.DaysSinceLast = int(now.Sub(last).Hours() / 24)
	if rep.Frequency > discountLikelyFrequency {
		rep.Prediction = "likely"
	}
	return rep
}

// AnalyzePatterns bundles all pattern outputs for one ASIN.
func AnalyzePatterns(asin string, points []models.PricePoint, currentPrice int64, now time.Time) models.PatternReport {
	return models.PatternReport{
		ASIN:            asin,
		CurrentPrice:    currentPrice,
		Trend:           AnalyzeTrend(points, currentPrice),
		Percentiles:     RankPercentiles(points, currentPrice),
		Seasonal:        DetectSeasonality(points),
		DropProbability: DropProbability(points, currentPrice),
		Discounts:       AnalyzeDiscounts(points, now),
	}
}

func tailMean(xs []float64, window int) float64 {
	if len(xs) == 0 {
		return 0
	}
	if window > len(xs) {
		window = len(xs)
	}
	sum := 0.0
	for _, x := range xs[len(xs)-window:] {
		sum += x
	}
	return sum / float64(window)
}

func meanPrices(points []models.PricePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += float64(p.Price)
	}
	return sum / float64(len(points))
}
