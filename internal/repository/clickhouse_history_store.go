package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"DealSense/internal/domain/models"
	domrepo "DealSense/internal/domain/repository"
	pkgch "DealSense/pkg/clickhouse"
	applogger "DealSense/pkg/logger"
)

// Schema returns the DDL the history store depends on. Statements are
// idempotent and ordered so InitSchema can run them on every boot.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.price_points (
            asin String,
            price Int64,
            list_price Int64,
            discount_percent Float64,
            availability LowCardinality(String),
            source LowCardinality(String),
            ts DateTime64(3)
        ) ENGINE = MergeTree()
        PARTITION BY toYYYYMM(ts)
        ORDER BY (asin, ts)
        TTL toDateTime(ts) + INTERVAL 1 YEAR`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.availability_checks (
            asin String,
            status LowCardinality(String),
            ts DateTime64(3)
        ) ENGINE = MergeTree()
        PARTITION BY toYYYYMM(ts)
        ORDER BY (asin, ts)
        TTL toDateTime(ts) + INTERVAL 6 MONTH`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.offers (
            asin String,
            price Int64,
            list_price Int64,
            savings_amount Int64,
            savings_percent Float64,
            availability LowCardinality(String),
            is_prime UInt8,
            free_shipping UInt8,
            self_fulfilled UInt8,
            merchant String,
            max_order_quantity Int32,
            promotion_types Array(String),
            promotion_labels Array(String),
            observed_at DateTime64(3)
        ) ENGINE = ReplacingMergeTree(observed_at)
        ORDER BY asin`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.reviews (
            asin String,
            review_count Int32,
            average_rating Float64,
            observed_at DateTime64(3)
        ) ENGINE = ReplacingMergeTree(observed_at)
        ORDER BY asin`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.products (
            asin String,
            title String,
            brand LowCardinality(String),
            category LowCardinality(String),
            price Int64,
            updated_at DateTime64(3)
        ) ENGINE = ReplacingMergeTree(updated_at)
        ORDER BY asin`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.user_events (
            user_id String,
            event_type LowCardinality(String),
            asin String,
            brand LowCardinality(String),
            category LowCardinality(String),
            price Int64,
            query String,
            ts DateTime64(3)
        ) ENGINE = MergeTree()
        PARTITION BY toYYYYMM(ts)
        ORDER BY (user_id, ts)
        TTL toDateTime(ts) + INTERVAL 6 MONTH`, database),
	}
}

// CHHistoryStore implements HistoryStore backed by ClickHouse.
type CHHistoryStore struct {
	db *sql.DB
	l  *applogger.Logger
}

var _ domrepo.HistoryStore = (*CHHistoryStore)(nil)

func NewCHHistoryStore(ch *pkgch.Client) *CHHistoryStore {
	return &CHHistoryStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHHistoryStore) SetLogger(l *applogger.Logger) { s.l = l }

// PriceHistory returns up to limit points for the ASIN in ascending
// timestamp order.
func (s *CHHistoryStore) PriceHistory(ctx context.Context, asin string, limit int) ([]models.PricePoint, error) {
	start := time.Now()
	const q = `
        SELECT asin, price, list_price, discount_percent, availability, source, ts
        FROM price_points
        WHERE asin = ?
        ORDER BY ts DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, asin, limit)
	if err != nil {
		s.logErr("price_history query error", asin, err)
		return nil, fmt.Errorf("price history: %w", err)
	}
	defer rows.Close()

	out := make([]models.PricePoint, 0, limit)
	for rows.Next() {
		var p models.PricePoint
		var avail string
		if err := rows.Scan(&p.ASIN, &p.Price, &p.ListPrice, &p.DiscountPercent, &avail, &p.Source, &p.Timestamp); err != nil {
			s.logErr("price_history scan error", asin, err)
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		p.Availability = models.NormalizeAvailability(avail)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		s.logErr("price_history rows error", asin, err)
		return nil, fmt.Errorf("rows: %w", err)
	}

	// reverse to ASC
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if s.l != nil {
		s.l.Debug("price_history ok",
			applogger.String("asin", asin),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// StorePricePoint writes one ingested observation.
func (s *CHHistoryStore) StorePricePoint(ctx context.Context, p *models.PricePoint) error {
	const q = `
        INSERT INTO price_points (asin, price, list_price, discount_percent, availability, source, ts)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	if _, err := s.db.ExecContext(ctx, q,
		p.ASIN, p.Price, p.ListPrice, p.DiscountPercent, string(p.Availability), p.Source, ts,
	); err != nil {
		s.logErr("store_price_point error", p.ASIN, err)
		return fmt.Errorf("store price point: %w", err)
	}
	return nil
}

func (s *CHHistoryStore) AvailabilityHistory(ctx context.Context, asin string, limit int) ([]models.AvailabilityObservation, error) {
	const q = `
        SELECT asin, status, ts
        FROM availability_checks
        WHERE asin = ?
        ORDER BY ts DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, asin, limit)
	if err != nil {
		s.logErr("availability_history query error", asin, err)
		return nil, fmt.Errorf("availability history: %w", err)
	}
	defer rows.Close()

	out := make([]models.AvailabilityObservation, 0, limit)
	for rows.Next() {
		var o models.AvailabilityObservation
		var status string
		if err := rows.Scan(&o.ASIN, &status, &o.Timestamp); err != nil {
			s.logErr("availability_history scan error", asin, err)
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		o.Status = models.NormalizeAvailability(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		s.logErr("availability_history rows error", asin, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// LatestOffer returns the most recent offer snapshot, or nil when the
// ASIN has never been observed.
func (s *CHHistoryStore) LatestOffer(ctx context.Context, asin string) (*models.OfferSnapshot, error) {
	const q = `
        SELECT asin, price, list_price, savings_amount, savings_percent, availability,
               is_prime, free_shipping, self_fulfilled, merchant, max_order_quantity,
               promotion_types, promotion_labels, observed_at
        FROM offers FINAL
        WHERE asin = ?
        LIMIT 1
    `
	var (
		o          models.OfferSnapshot
		avail      string
		prime      uint8
		shipping   uint8
		fulfilled  uint8
		promTypes  []string
		promLabels []string
	)
	err := s.db.QueryRowContext(ctx, q, asin).Scan(
		&o.ASIN, &o.Price, &o.ListPrice, &o.SavingsAmount, &o.SavingsPercent, &avail,
		&prime, &shipping, &fulfilled, &o.Merchant, &o.MaxOrderQuantity,
		&promTypes, &promLabels, &o.ObservedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logErr("latest_offer query error", asin, err)
		return nil, fmt.Errorf("latest offer: %w", err)
	}

	o.Availability = models.NormalizeAvailability(avail)
	o.IsPrime = prime != 0
	o.FreeShipping = shipping != 0
	o.SelfFulfilled = fulfilled != 0
	for i := range promTypes {
		label := ""
		if i < len(promLabels) {
			label = promLabels[i]
		}
		o.Promotions = append(o.Promotions, models.Promotion{Type: promTypes[i], Label: label})
	}
	return &o, nil
}

// LatestReview returns the review aggregate, or nil when absent.
func (s *CHHistoryStore) LatestReview(ctx context.Context, asin string) (*models.ReviewSnapshot, error) {
	const q = `
        SELECT asin, review_count, average_rating
        FROM reviews FINAL
        WHERE asin = ?
        LIMIT 1
    `
	var r models.ReviewSnapshot
	err := s.db.QueryRowContext(ctx, q, asin).Scan(&r.ASIN, &r.ReviewCount, &r.AverageRating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logErr("latest_review query error", asin, err)
		return nil, fmt.Errorf("latest review: %w", err)
	}
	return &r, nil
}

// Product returns catalog metadata, or nil when the ASIN is unknown.
func (s *CHHistoryStore) Product(ctx context.Context, asin string) (*models.ProductSnapshot, error) {
	const q = `
        SELECT asin, title, brand, category
        FROM products FINAL
        WHERE asin = ?
        LIMIT 1
    `
	var p models.ProductSnapshot
	err := s.db.QueryRowContext(ctx, q, asin).Scan(&p.ASIN, &p.Title, &p.Brand, &p.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logErr("product query error", asin, err)
		return nil, fmt.Errorf("product: %w", err)
	}
	return &p, nil
}

// UserActivity aggregates the user's recent watch, click and search
// events into one activity record. A user with no events gets an empty
// record, not an error.
func (s *CHHistoryStore) UserActivity(ctx context.Context, userID string) (models.UserActivity, error) {
	const q = `
        SELECT event_type, asin, brand, category, price, query
        FROM user_events
        WHERE user_id = ?
        ORDER BY ts DESC
        LIMIT 500
    `
	act := models.UserActivity{UserID: userID}

	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		s.logErr("user_activity query error", userID, err)
		return act, fmt.Errorf("user activity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventType string
			ref       models.ProductRef
			query     string
		)
		if err := rows.Scan(&eventType, &ref.ASIN, &ref.Brand, &ref.Category, &ref.Price, &query); err != nil {
			s.logErr("user_activity scan error", userID, err)
			return act, fmt.Errorf("scan user event: %w", err)
		}
		switch eventType {
		case "watch":
			act.Watched = append(act.Watched, ref)
		case "click":
			act.Clicked = append(act.Clicked, ref)
		case "search":
			if query != "" {
				act.Searches = append(act.Searches, query)
			}
		}
	}
	if err := rows.Err(); err != nil {
		s.logErr("user_activity rows error", userID, err)
		return act, fmt.Errorf("rows: %w", err)
	}
	return act, nil
}

// Catalog lists candidate products, optionally filtered by category.
func (s *CHHistoryStore) Catalog(ctx context.Context, category string, limit int) ([]models.CandidateProduct, error) {
	q := `
        SELECT asin, title, brand, category, price
        FROM products FINAL
    `
	args := make([]interface{}, 0, 2)
	if category != "" {
		q += ` WHERE lowerUTF8(category) = lowerUTF8(?)`
		args = append(args, category)
	}
	q += ` ORDER BY asin LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.logErr("catalog query error", category, err)
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer rows.Close()

	out := make([]models.CandidateProduct, 0, limit)
	for rows.Next() {
		var c models.CandidateProduct
		if err := rows.Scan(&c.ASIN, &c.Title, &c.Brand, &c.Category, &c.Price); err != nil {
			s.logErr("catalog scan error", category, err)
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		s.logErr("catalog rows error", category, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CHHistoryStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHHistoryStore) Close() error {
	return nil // pool is owned by pkg/clickhouse.Client
}

func (s *CHHistoryStore) logErr(msg, key string, err error) {
	if s.l == nil {
		return
	}
	s.l.Error(msg, applogger.String("key", key), applogger.Error(err))
}
