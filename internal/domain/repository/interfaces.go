package repository

import (
	"context"
	"time"

	"DealSense/internal/domain/models"
)

// HistoryStore provides read access to the time-series and snapshot data
// the engine consumes, plus the ingest write path for price points.
type HistoryStore interface {
	PriceHistory(ctx context.Context, asin string, limit int) ([]models.PricePoint, error)
	StorePricePoint(ctx context.Context, p *models.PricePoint) error
	AvailabilityHistory(ctx context.Context, asin string, limit int) ([]models.AvailabilityObservation, error)
	LatestOffer(ctx context.Context, asin string) (*models.OfferSnapshot, error)
	LatestReview(ctx context.Context, asin string) (*models.ReviewSnapshot, error)
	Product(ctx context.Context, asin string) (*models.ProductSnapshot, error)
	UserActivity(ctx context.Context, userID string) (models.UserActivity, error)
	Catalog(ctx context.Context, category string, limit int) ([]models.CandidateProduct, error)
	Health(ctx context.Context) error
	Close() error
}

// AlertStore keeps the recent alert history the urgency classifier
// compares against. Entries expire; missing history is not an error.
type AlertStore interface {
	LastAlert(ctx context.Context, watchID string) (*models.AlertRecord, error)
	RecordAlert(ctx context.Context, rec *models.AlertRecord, ttl time.Duration) error
}

// AlertPublisher hands classified alerts to the external notifier.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, res *models.UrgencyResult, price int64) error
	Close() error
}

// Metrics records operational counters for the engine host service.
type Metrics interface {
	RecordDealScored(tier string)
	RecordAlertPublished(urgency string)
	RecordError(kind string)
	RecordLastScore(asin string, score float64)
	RecordLatency(op string, seconds float64)
}
