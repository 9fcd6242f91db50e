package models

import "time"

// TrendDirection is the stable trend contract consumed by the notifier.
type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
	TrendError            TrendDirection = "error"
)

// QualityTier buckets a deal score for downstream formatting.
type QualityTier string

const (
	TierExcellent QualityTier = "excellent"
	TierGood      QualityTier = "good"
	TierAverage   QualityTier = "average"
	TierPoor      QualityTier = "poor"
)

// UrgencyLevel tells the notifier how soon a user should be told.
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

// TrendAnalysis reports direction and strength of recent price movement.
type TrendAnalysis struct {
	ASIN      string
	Direction TrendDirection
	Strength  float64 // [0,100]
	ShortAvg  float64
	MediumAvg float64
	Points    int
}

// PercentileReport positions the current price inside the full history.
type PercentileReport struct {
	Rank            float64 // percentile of current price, [0,100]
	P25             int64
	P50             int64
	P75             int64
	P90             int64
	Min             int64
	Max             int64
	IsGoodDeal      bool
	IsExcellentDeal bool
}

// SeasonalReport summarizes per-calendar-month price behaviour.
// Sufficient is false (with Reason set) when the history cannot support
// a seasonal read.
type SeasonalReport struct {
	Sufficient      bool
	Reason          string
	MonthlyAverages map[time.Month]float64
	BestMonth       time.Month // cheapest on average
	WorstMonth      time.Month
	Variance        float64 // percent spread between worst and best month
}

// DiscountPattern summarizes historical discount activity.
type DiscountPattern struct {
	AverageDiscount float64
	MaxDiscount     float64
	Frequency       float64 // discounted points / total points
	DaysSinceLast   int     // -1 when never discounted
	Prediction      string  // "likely" | "unlikely"
}

// PatternReport bundles all trend/pattern outputs for one ASIN.
type PatternReport struct {
	ASIN            string
	CurrentPrice    int64
	Trend           TrendAnalysis
	Percentiles     PercentileReport
	Seasonal        SeasonalReport
	DropProbability float64
	Discounts       DiscountPattern
}

// FactorBreakdown exposes the five deal-score factors, each [0,100].
// Price and Discount both derive from price/list-price data; the overlap
// is kept visible here so weight tuning can account for it.
type FactorBreakdown struct {
	Price        float64
	Review       float64
	Availability float64
	Discount     float64
	Brand        float64
}

// DealScore is the composite deal-quality result for one price point.
type DealScore struct {
	ASIN            string
	CurrentPrice    int64
	Score           float64 // [0,100]
	Tier            QualityTier
	Factors         FactorBreakdown
	Recommendations []string
	Reason          string // set when the scorer short-circuited
}

// Prediction projects a future price range. When Insufficient is true the
// numeric fields are zero and MinimumPoints/PointsSeen explain why.
type Prediction struct {
	ASIN          string
	HorizonDays   int
	Predicted     int64
	Low           int64
	High          int64
	Confidence    float64 // [0,1]
	Insufficient  bool
	MinimumPoints int
	PointsSeen    int
}

// AlertRecord is one alert previously sent for a watch, kept as recent
// history for the urgency classifier.
type AlertRecord struct {
	WatchID string
	ASIN    string
	Price   int64
	Urgency UrgencyLevel
	SentAt  time.Time
}

// UrgencyResult is the classified urgency for one candidate alert.
type UrgencyResult struct {
	WatchID string
	ASIN    string
	Score   float64
	Base    UrgencyLevel
	Final   UrgencyLevel
	Shift   int // -1, 0 or +1 applied by the success-probability signal
}

// StockoutForecast estimates how likely a product is to go out of stock.
type StockoutForecast struct {
	ASIN             string
	Prediction       string // "estimated" | "insufficient_data"
	Confidence       string // "low" | "medium" | "high"
	Probability      float64 // [0,1]
	Urgency          UrgencyLevel
	TotalChecks      int
	InStockCount     int
	OutOfStockCount  int
	StockChanges     int
	AvgStockDuration time.Duration
}

// DealReport is the aggregate view of all engine outputs for one ASIN.
// Components that failed to load data appear in Errors instead; a missing
// component with no error entry means the input was simply too sparse.
type DealReport struct {
	ASIN       string
	Timestamp  time.Time
	Patterns   *PatternReport
	Score      *DealScore
	Prediction *Prediction
	Stockout   *StockoutForecast
	Errors     map[string]string
}
