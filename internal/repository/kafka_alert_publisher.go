package repository

import (
	"context"
	"fmt"
	"time"

	"DealSense/internal/domain/models"
	domrepo "DealSense/internal/domain/repository"
	pkgkafka "DealSense/pkg/kafka"
)

// alertEvent is the wire shape delivered to the notification service.
type alertEvent struct {
	WatchID  string  `json:"watch_id"`
	ASIN     string  `json:"asin"`
	Price    int64   `json:"price"`
	Score    float64 `json:"score"`
	Urgency  string  `json:"urgency"`
	SentAt   string  `json:"sent_at"`
	Promoted int     `json:"promoted"` // -1, 0 or +1 vs the base level
}

// KafkaAlertPublisher publishes classified alerts keyed by ASIN so all
// alerts for one product stay ordered on one partition.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var _ domrepo.AlertPublisher = (*KafkaAlertPublisher)(nil)

func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) PublishAlert(ctx context.Context, res *models.UrgencyResult, price int64) error {
	ev := alertEvent{
		WatchID:  res.WatchID,
		ASIN:     res.ASIN,
		Price:    price,
		Score:    res.Score,
		Urgency:  string(res.Final),
		SentAt:   time.Now().UTC().Format(time.RFC3339),
		Promoted: res.Shift,
	}
	if err := p.producer.Publish(ctx, p.topic, []byte(res.ASIN), ev); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}

func (p *KafkaAlertPublisher) Close() error {
	return p.producer.Close()
}
