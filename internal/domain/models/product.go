package models

import (
	"strings"
	"time"
)

// Availability enumerates offer stock states reported by the upstream
// product-data provider. Anything outside the known set is folded into
// AvailabilityUnknown by NormalizeAvailability.
type Availability string

const (
	AvailabilityInStock    Availability = "InStock"
	AvailabilityOutOfStock Availability = "OutOfStock"
	AvailabilityPreOrder   Availability = "PreOrder"
	AvailabilityBackOrder  Availability = "BackOrder"
	AvailabilityUnknown    Availability = "Unknown"
)

// NormalizeAvailability converts a raw upstream string to a known state.
func NormalizeAvailability(s string) Availability {
	switch strings.TrimSpace(s) {
	case string(AvailabilityInStock):
		return AvailabilityInStock
	case string(AvailabilityOutOfStock):
		return AvailabilityOutOfStock
	case string(AvailabilityPreOrder):
		return AvailabilityPreOrder
	case string(AvailabilityBackOrder):
		return AvailabilityBackOrder
	default:
		return AvailabilityUnknown
	}
}

// PricePoint is a single observed price for an ASIN. All currency values
// are integer minor-currency units (paise); DiscountPercent is 0 when the
// source reported none.
type PricePoint struct {
	ASIN            string
	Price           int64
	ListPrice       int64
	DiscountPercent float64
	Availability    Availability
	Source          string
	Timestamp       time.Time
}

// AvailabilityObservation is a timestamped stock check consumed by the
// stockout predictor.
type AvailabilityObservation struct {
	ASIN      string
	Status    Availability
	Timestamp time.Time
}

// Promotion is a tagged promotional record attached to an offer.
type Promotion struct {
	Type  string
	Label string
}

// OfferSnapshot is the most recent offer observed for an ASIN.
// SavingsPercent of 0 means the source reported no percentage at all.
type OfferSnapshot struct {
	ASIN             string
	Price            int64
	ListPrice        int64
	SavingsAmount    int64
	SavingsPercent   float64
	Availability     Availability
	IsPrime          bool
	FreeShipping     bool
	SelfFulfilled    bool
	Merchant         string
	MaxOrderQuantity int
	Promotions       []Promotion
	ObservedAt       time.Time
}

// ReviewSnapshot aggregates customer reviews for an ASIN.
type ReviewSnapshot struct {
	ASIN          string
	ReviewCount   int
	AverageRating float64 // [0,5]
}

// ProductSnapshot carries catalog metadata for an ASIN.
type ProductSnapshot struct {
	ASIN     string
	Title    string
	Brand    string
	Category string
}

// CandidateProduct is a catalog entry offered to the recommender.
type CandidateProduct struct {
	ASIN     string
	Title    string
	Brand    string
	Category string
	Price    int64
}
