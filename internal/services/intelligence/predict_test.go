package intelligence

import (
	"math"
	"testing"
	"time"
)

func TestPredictMovementInsufficientData(t *testing.T) {
	points := dailyPoints(testStart, 1000, 1010, 1020, 1030, 1040)
	res := PredictMovement(points, 1050, 7, testStart.Add(6*24*time.Hour))

	if !res.Insufficient {
		t.Fatalf("expected insufficient with 5 points")
	}
	if res.PointsSeen != 5 || res.MinimumPoints != MinPredictionPoints {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if res.Predicted != 0 || res.Low != 0 || res.High != 0 {
		t.Fatalf("insufficient result must leave numeric fields zero: %+v", res)
	}
}

func TestPredictMovementFlatSeries(t *testing.T) {
	prices := make([]int64, 30)
	for i := range prices {
		prices[i] = 1000
	}
	points := dailyPoints(testStart, prices...)

	res := PredictMovement(points, 1000, 7, testStart.Add(31*24*time.Hour))
	if res.Insufficient {
		t.Fatalf("30 points must be enough")
	}
	if res.Predicted != 1000 {
		t.Fatalf("flat series should predict the flat price, got %d", res.Predicted)
	}
	if res.Low != 1000 || res.High != 1000 {
		t.Fatalf("flat series has no spread: low=%d high=%d", res.Low, res.High)
	}

	// 0.4 * (30/90) volume + 0.6 * perfect consistency
	want := 0.4*(30.0/90.0) + 0.6
	if math.Abs(res.Confidence-want) > 1e-9 {
		t.Fatalf("expected confidence %f, got %f", want, res.Confidence)
	}
}

func TestPredictMovementRangeOrdering(t *testing.T) {
	prices := []int64{1000, 1040, 980, 1060, 1010, 990, 1050, 1020, 970, 1030, 1000, 1045}
	points := dailyPoints(testStart, prices...)

	res := PredictMovement(points, 1025, 14, testStart.Add(13*24*time.Hour))
	if res.Insufficient {
		t.Fatalf("12 points must be enough")
	}
	if res.Low > res.Predicted || res.Predicted > res.High {
		t.Fatalf("range must bracket the prediction: low=%d predicted=%d high=%d",
			res.Low, res.Predicted, res.High)
	}
	if res.Confidence < 0 || res.Confidence > 1 {
		t.Fatalf("confidence out of range: %f", res.Confidence)
	}
	if res.HorizonDays != 14 {
		t.Fatalf("horizon must be echoed back, got %d", res.HorizonDays)
	}
}

func TestConfidenceMoreDataMoreConfidence(t *testing.T) {
	small := make([]float64, 15)
	large := make([]float64, 90)
	for i := range small {
		small[i] = 1000
	}
	for i := range large {
		large[i] = 1000
	}

	if confidence(small) >= confidence(large) {
		t.Fatalf("more consistent data should not lower confidence: %f vs %f",
			confidence(small), confidence(large))
	}
}
