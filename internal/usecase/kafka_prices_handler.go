package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"DealSense/internal/domain/models"
	domrepo "DealSense/internal/domain/repository"
	pkgkafka "DealSense/pkg/kafka"
)

// KafkaPricesHandler consumes upstream price observations and writes
// them to the history store.
type KafkaPricesHandler struct {
	topic   string
	store   domrepo.HistoryStore
	metrics domrepo.Metrics
}

func NewKafkaPricesHandler(topic string, store domrepo.HistoryStore, metrics domrepo.Metrics) *KafkaPricesHandler {
	return &KafkaPricesHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaPricesHandler) Topic() string { return h.topic }

// incoming message schema:
// {asin, price, list_price, discount_percent, availability, source, ts}
// with prices in minor currency units and ts in unix seconds or millis.
func (h *KafkaPricesHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		ASIN            string  `json:"asin"`
		Price           int64   `json:"price"`
		ListPrice       int64   `json:"list_price"`
		DiscountPercent float64 `json:"discount_percent"`
		Availability    string  `json:"availability"`
		Source          string  `json:"source"`
		TS              int64   `json:"ts"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.ASIN == "" || m.Price < 0 {
		h.metrics.RecordError("consumer_invalid")
		return fmt.Errorf("invalid price event: asin=%q price=%d", m.ASIN, m.Price)
	}
	if m.TS > 1e11 { // ms
		m.TS = m.TS / 1000
	}
	ts := time.Now()
	if m.TS > 0 {
		ts = time.Unix(m.TS, 0)
	}
	h.metrics.RecordLatency("ingest_e2e", time.Since(ts).Seconds())

	start := time.Now()
	err := h.store.StorePricePoint(ctx, &models.PricePoint{
		ASIN:            m.ASIN,
		Price:           m.Price,
		ListPrice:       m.ListPrice,
		DiscountPercent: m.DiscountPercent,
		Availability:    models.NormalizeAvailability(m.Availability),
		Source:          m.Source,
		Timestamp:       ts,
	})
	h.metrics.RecordLatency("ch_insert", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaPricesHandler)(nil)
