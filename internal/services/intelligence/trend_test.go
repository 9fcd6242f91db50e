package intelligence

import (
	"math"
	"testing"
	"time"

	"DealSense/internal/domain/models"
)

func dailyPoints(start time.Time, prices ...int64) []models.PricePoint {
	out := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = models.PricePoint{
			ASIN:      "B0TEST",
			Price:     p,
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return out
}

var testStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAnalyzeTrendIncreasing(t *testing.T) {
	points := dailyPoints(testStart, 1000, 1050, 1100, 1150, 1200)
	res := AnalyzeTrend(points, 1250)

	if res.Direction != models.TrendIncreasing {
		t.Fatalf("expected increasing, got %s", res.Direction)
	}
	if res.Strength <= 0 {
		t.Fatalf("expected positive strength, got %f", res.Strength)
	}
	if res.Points != 5 {
		t.Fatalf("expected 5 points, got %d", res.Points)
	}
}

func TestAnalyzeTrendDecreasing(t *testing.T) {
	points := dailyPoints(testStart, 1250, 1200, 1150, 1100, 1050)
	res := AnalyzeTrend(points, 1000)

	if res.Direction != models.TrendDecreasing {
		t.Fatalf("expected decreasing, got %s", res.Direction)
	}
	if res.Strength <= 0 {
		t.Fatalf("expected positive strength, got %f", res.Strength)
	}
}

func TestAnalyzeTrendStable(t *testing.T) {
	points := dailyPoints(testStart, 1000, 1000, 1000, 1000, 1000, 1000)
	res := AnalyzeTrend(points, 1000)

	if res.Direction != models.TrendStable {
		t.Fatalf("expected stable, got %s", res.Direction)
	}
	if res.Strength != 0 {
		t.Fatalf("expected zero strength, got %f", res.Strength)
	}
}

func TestAnalyzeTrendZeroPrices(t *testing.T) {
	points := dailyPoints(testStart, 0, 0, 0, 0, 0)
	res := AnalyzeTrend(points, 0)

	if res.Direction != models.TrendStable {
		t.Fatalf("all-zero series should compare stable, got %s", res.Direction)
	}
	if res.Strength != 0 {
		t.Fatalf("strength must be 0 against a zero medium average, got %f", res.Strength)
	}
}

func TestAnalyzeTrendInsufficientData(t *testing.T) {
	points := dailyPoints(testStart, 1000, 1100, 1200)
	res := AnalyzeTrend(points, 1300)

	if res.Direction != models.TrendInsufficientData {
		t.Fatalf("expected insufficient_data, got %s", res.Direction)
	}
}

func TestRankPercentiles(t *testing.T) {
	prices := make([]int64, 0, 20)
	for i := int64(1); i <= 20; i++ {
		prices = append(prices, i*100)
	}
	points := dailyPoints(testStart, prices...)

	rep := RankPercentiles(points, 100)
	if rep.Rank != 5 {
		t.Fatalf("expected rank 5, got %f", rep.Rank)
	}
	if !rep.IsGoodDeal || !rep.IsExcellentDeal {
		t.Fatalf("lowest price should be good and excellent, got %+v", rep)
	}
	if rep.Min != 100 || rep.Max != 2000 {
		t.Fatalf("wrong min/max: %d/%d", rep.Min, rep.Max)
	}
	if rep.P90 != 1900 {
		t.Fatalf("expected p90=1900, got %d", rep.P90)
	}

	rep = RankPercentiles(points, 2000)
	if rep.Rank != 100 {
		t.Fatalf("expected rank 100, got %f", rep.Rank)
	}
	if rep.IsGoodDeal || rep.IsExcellentDeal {
		t.Fatalf("highest price should not flag a deal")
	}
}

func TestRankPercentilesShortHistory(t *testing.T) {
	points := dailyPoints(testStart, 100, 200, 300, 400)
	rep := RankPercentiles(points, 250)

	if rep.P25 != rep.Min || rep.P75 != rep.Max || rep.P90 != rep.Max {
		t.Fatalf("short history should degrade quartiles to min/max: %+v", rep)
	}
}

func TestDetectSeasonalityInsufficientPoints(t *testing.T) {
	points := dailyPoints(testStart, 1000, 1000, 1000, 1000, 1000)
	rep := DetectSeasonality(points)

	if rep.Sufficient {
		t.Fatalf("expected insufficient")
	}
	if rep.Reason != "insufficient_seasonal_data" {
		t.Fatalf("unexpected reason %q", rep.Reason)
	}
}

func TestDetectSeasonality(t *testing.T) {
	var points []models.PricePoint
	addMonth := func(m time.Month, price int64) {
		for d := 1; d <= 10; d++ {
			points = append(points, models.PricePoint{
				ASIN:      "B0TEST",
				Price:     price,
				Timestamp: time.Date(2025, m, d, 0, 0, 0, 0, time.UTC),
			})
		}
	}
	addMonth(time.January, 1000)
	addMonth(time.February, 1200)
	addMonth(time.March, 1500)

	rep := DetectSeasonality(points)
	if !rep.Sufficient {
		t.Fatalf("expected sufficient, reason=%q", rep.Reason)
	}
	if rep.BestMonth != time.January {
		t.Fatalf("expected January cheapest, got %s", rep.BestMonth)
	}
	if rep.WorstMonth != time.March {
		t.Fatalf("expected March most expensive, got %s", rep.WorstMonth)
	}
	if math.Abs(rep.Variance-50) > 1e-9 {
		t.Fatalf("expected 50%% variance, got %f", rep.Variance)
	}
}

func TestDropProbabilityComparableScan(t *testing.T) {
	prices := make([]int64, 0, 12)
	for i := int64(0); i < 12; i++ {
		prices = append(prices, 1020-2*i)
	}
	points := dailyPoints(testStart, prices...)

	// Every point is comparable to 1010 and every successor is lower.
	if got := DropProbability(points, 1010); got != 1.0 {
		t.Fatalf("expected 1.0, got %f", got)
	}
}

func TestDropProbabilityFallback(t *testing.T) {
	falling := dailyPoints(testStart, 1000, 1000, 1000, 900, 900, 900)
	if got := DropProbability(falling, 900); got != 0.7 {
		t.Fatalf("expected 0.7 for falling prices, got %f", got)
	}

	rising := dailyPoints(testStart, 900, 900, 900, 1000, 1000, 1000)
	if got := DropProbability(rising, 1000); got != 0.3 {
		t.Fatalf("expected 0.3 for rising prices, got %f", got)
	}
}

func TestDropProbabilityNeutral(t *testing.T) {
	points := dailyPoints(testStart, 1000, 1100)
	if got := DropProbability(points, 1000); got != 0.5 {
		t.Fatalf("expected neutral 0.5, got %f", got)
	}
}

func TestAnalyzeDiscounts(t *testing.T) {
	points := dailyPoints(testStart,
		1000, 1000, 1000, 1000, 1000, 1000, 900, 800, 700, 600)
	points[6].DiscountPercent = 10
	points[7].DiscountPercent = 20
	points[8].DiscountPercent = 30
	points[9].DiscountPercent = 40

	now := points[9].Timestamp.Add(48 * time.Hour)
	rep := AnalyzeDiscounts(points, now)

	if rep.AverageDiscount != 25 {
		t.Fatalf("expected avg 25, got %f", rep.AverageDiscount)
	}
	if rep.MaxDiscount != 40 {
		t.Fatalf("expected max 40, got %f", rep.MaxDiscount)
	}
	if math.Abs(rep.Frequency-0.4) > 1e-9 {
		t.Fatalf("expected frequency 0.4, got %f", rep.Frequency)
	}
	if rep.DaysSinceLast != 2 {
		t.Fatalf("expected 2 days since last, got %d", rep.DaysSinceLast)
	}
	if rep.Prediction != "likely" {
		t.Fatalf("expected likely, got %q", rep.Prediction)
	}
}

func TestAnalyzeDiscountsNone(t *testing.T) {
	points := dailyPoints(testStart, 1000, 1000, 1000)
	rep := AnalyzeDiscounts(points, testStart.Add(10*24*time.Hour))

	if rep.DaysSinceLast != -1 {
		t.Fatalf("expected -1 days since last, got %d", rep.DaysSinceLast)
	}
	if rep.Prediction != "unlikely" {
		t.Fatalf("expected unlikely, got %q", rep.Prediction)
	}
}

func TestAnalyzePatternsBundles(t *testing.T) {
	points := dailyPoints(testStart, 1000, 1050, 1100, 1150, 1200)
	rep := AnalyzePatterns("B0TEST", points, 1250, testStart.Add(6*24*time.Hour))

	if rep.ASIN != "B0TEST" || rep.CurrentPrice != 1250 {
		t.Fatalf("unexpected report header: %+v", rep)
	}
	if rep.Trend.Direction != models.TrendIncreasing {
		t.Fatalf("expected increasing trend, got %s", rep.Trend.Direction)
	}
	if rep.Seasonal.Sufficient {
		t.Fatalf("five points cannot support a seasonal read")
	}
}
