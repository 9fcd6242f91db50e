package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"DealSense/internal/domain/models"
	domrepo "DealSense/internal/domain/repository"
	pkgcache "DealSense/pkg/cache"
)

// RedisAlertStore keeps recent alert history in the cache layer. Entries
// expire with the configured TTL, so "no record" simply means no alert
// was sent recently.
type RedisAlertStore struct {
	cache pkgcache.Service
}

var _ domrepo.AlertStore = (*RedisAlertStore)(nil)

func NewRedisAlertStore(cache pkgcache.Service) *RedisAlertStore {
	return &RedisAlertStore{cache: cache}
}

func (s *RedisAlertStore) LastAlert(ctx context.Context, watchID string) (*models.AlertRecord, error) {
	var rec models.AlertRecord
	err := s.cache.Get(ctx, alertKey(watchID), &rec)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last alert: %w", err)
	}
	return &rec, nil
}

func (s *RedisAlertStore) RecordAlert(ctx context.Context, rec *models.AlertRecord, ttl time.Duration) error {
	if err := s.cache.Set(ctx, alertKey(rec.WatchID), rec, ttl); err != nil {
		return fmt.Errorf("record alert: %w", err)
	}
	return nil
}

func alertKey(watchID string) string {
	return pkgcache.Key("alert", "last", watchID)
}
