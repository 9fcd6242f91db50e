package models

// Requests for intelligence HTTP endpoints. Defined in domain for consistency and reuse.

type TrendRequest struct {
	ASIN string `query:"asin" json:"asin" validate:"required,asin"`
	N    int    `query:"n" json:"n" default:"365" validate:"gte=1,lte=5000"`
}

type DealScoreRequest struct {
	ASIN  string `query:"asin" json:"asin" validate:"required,asin"`
	Price int64  `query:"price" json:"price" validate:"gte=0"`
	N     int    `query:"n" json:"n" default:"365" validate:"gte=1,lte=5000"`
}

type PredictRequest struct {
	ASIN    string `query:"asin" json:"asin" validate:"required,asin"`
	Horizon int    `query:"horizon" json:"horizon" default:"7" validate:"gte=1,lte=90"`
	N       int    `query:"n" json:"n" default:"365" validate:"gte=1,lte=5000"`
}

type UrgencyRequest struct {
	WatchID string  `query:"watch_id" json:"watch_id" validate:"required"`
	ASIN    string  `query:"asin" json:"asin" validate:"required,asin"`
	Price   int64   `query:"price" json:"price" validate:"gte=0"`
	Score   float64 `query:"score" json:"score" validate:"gte=0,lte=100"`
}

type StockoutRequest struct {
	ASIN string `query:"asin" json:"asin" validate:"required,asin"`
	N    int    `query:"n" json:"n" default:"500" validate:"gte=1,lte=5000"`
}

type RecommendRequest struct {
	UserID string `query:"user_id" json:"user_id" validate:"required"`
	Limit  int    `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=50"`
}

type ReportRequest struct {
	ASIN  string `query:"asin" json:"asin" validate:"required,asin"`
	Price int64  `query:"price" json:"price" validate:"gte=0"`
	N     int    `query:"n" json:"n" default:"365" validate:"gte=1,lte=5000"`
}
