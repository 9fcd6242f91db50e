package usecase

import (
	"context"
	"fmt"
	"time"

	"DealSense/internal/domain/models"
	domrepo "DealSense/internal/domain/repository"
	domsvc "DealSense/internal/domain/service"
	"DealSense/internal/services/intelligence"
	"DealSense/pkg/config"
	applogger "DealSense/pkg/logger"
)

// IntelligenceUseCase orchestrates the pure engine functions over the
// history store. The engine itself never touches storage; this layer
// loads inputs, runs the computation, and records the outcome.
type IntelligenceUseCase struct {
	store   domrepo.HistoryStore
	alerts  domrepo.AlertStore
	pub     domrepo.AlertPublisher
	model   domsvc.SuccessModel // nil when no predictive service is wired
	metrics domrepo.Metrics
	cfg     *config.Config
	l       *applogger.Logger
}

func NewIntelligenceUseCase(
	store domrepo.HistoryStore,
	alerts domrepo.AlertStore,
	pub domrepo.AlertPublisher,
	model domsvc.SuccessModel,
	metrics domrepo.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *IntelligenceUseCase {
	return &IntelligenceUseCase{
		store:   store,
		alerts:  alerts,
		pub:     pub,
		model:   model,
		metrics: metrics,
		cfg:     cfg,
		l:       l,
	}
}

// splitCurrent separates the newest observation from the rest so the
// engine can treat it as the live price at the head of the series.
func splitCurrent(points []models.PricePoint) ([]models.PricePoint, int64) {
	if len(points) == 0 {
		return nil, 0
	}
	last := points[len(points)-1]
	return points[:len(points)-1], last.Price
}

// Patterns runs the full trend and pattern analysis for one ASIN.
func (uc *IntelligenceUseCase) Patterns(ctx context.Context, asin string, n int) (*models.PatternReport, error) {
	start := time.Now()
	points, err := uc.store.PriceHistory(ctx, asin, n)
	if err != nil {
		uc.metrics.RecordError("patterns")
		return nil, err
	}
	history, current := splitCurrent(points)
	report := intelligence.AnalyzePatterns(asin, history, current, time.Now())
	uc.metrics.RecordLatency("patterns", time.Since(start).Seconds())
	return &report, nil
}

// DealScore scores the deal at the given price. When price is zero the
// newest stored observation is used instead.
func (uc *IntelligenceUseCase) DealScore(ctx context.Context, asin string, price int64, n int) (*models.DealScore, error) {
	start := time.Now()
	points, err := uc.store.PriceHistory(ctx, asin, n)
	if err != nil {
		uc.metrics.RecordError("deal_score")
		return nil, err
	}

	history := points
	if price == 0 {
		history, price = splitCurrent(points)
	}

	offer, err := uc.store.LatestOffer(ctx, asin)
	if err != nil {
		uc.metrics.RecordError("deal_score")
		return nil, err
	}
	review, err := uc.store.LatestReview(ctx, asin)
	if err != nil {
		uc.metrics.RecordError("deal_score")
		return nil, err
	}
	product, err := uc.store.Product(ctx, asin)
	if err != nil {
		uc.metrics.RecordError("deal_score")
		return nil, err
	}

	score := intelligence.ScoreDeal(asin, price, history, offer, review, product, uc.scoreConfig())
	uc.metrics.RecordDealScored(string(score.Tier))
	uc.metrics.RecordLastScore(asin, score.Score)
	uc.metrics.RecordLatency("deal_score", time.Since(start).Seconds())
	if uc.l != nil {
		uc.l.Debug("deal scored",
			applogger.String("asin", asin),
			applogger.Float64("score", score.Score),
			applogger.String("tier", string(score.Tier)),
		)
	}
	return &score, nil
}

// Predict forecasts the price movement over the horizon.
func (uc *IntelligenceUseCase) Predict(ctx context.Context, asin string, horizonDays, n int) (*models.Prediction, error) {
	start := time.Now()
	points, err := uc.store.PriceHistory(ctx, asin, n)
	if err != nil {
		uc.metrics.RecordError("predict")
		return nil, err
	}
	history, current := splitCurrent(points)
	pred := intelligence.PredictMovement(history, current, horizonDays, time.Now())
	pred.ASIN = asin
	uc.metrics.RecordLatency("predict", time.Since(start).Seconds())
	return &pred, nil
}

// Urgency classifies one candidate alert, persists it as the watch's
// latest alert, and publishes it downstream.
func (uc *IntelligenceUseCase) Urgency(ctx context.Context, req models.UrgencyRequest) (*models.UrgencyResult, error) {
	start := time.Now()

	offer, err := uc.store.LatestOffer(ctx, req.ASIN)
	if err != nil {
		uc.metrics.RecordError("urgency")
		return nil, err
	}
	last, err := uc.alerts.LastAlert(ctx, req.WatchID)
	if err != nil {
		uc.metrics.RecordError("urgency")
		return nil, err
	}

	var successProb *float64
	if uc.model != nil {
		p, perr := uc.model.PredictSuccess(ctx, req.ASIN, map[string]float64{
			"score": req.Score,
			"price": float64(req.Price),
		})
		if perr != nil {
			// The model is advisory; classification proceeds on the
			// score alone.
			if uc.l != nil {
				uc.l.Warn("success model unavailable",
					applogger.String("asin", req.ASIN),
					applogger.Error(perr),
				)
			}
			uc.metrics.RecordError("success_model")
		} else {
			successProb = &p
		}
	}

	sig := intelligence.UrgencySignals{
		LowStock:     lowStock(offer),
		CurrentPrice: req.Price,
		LastAlert:    last,
		Now:          time.Now(),
	}
	res := intelligence.ClassifyUrgency(req.WatchID, req.ASIN, req.Score, successProb, sig)

	rec := &models.AlertRecord{
		WatchID: req.WatchID,
		ASIN:    req.ASIN,
		Price:   req.Price,
		Urgency: res.Final,
		SentAt:  time.Now(),
	}
	if err := uc.alerts.RecordAlert(ctx, rec, uc.cfg.Engine.AlertHistoryTTL); err != nil {
		uc.metrics.RecordError("alert_store")
		return nil, fmt.Errorf("record alert: %w", err)
	}
	if uc.pub != nil {
		if err := uc.pub.PublishAlert(ctx, &res, req.Price); err != nil {
			uc.metrics.RecordError("alert_publish")
			return nil, fmt.Errorf("publish alert: %w", err)
		}
		uc.metrics.RecordAlertPublished(string(res.Final))
	}

	uc.metrics.RecordLatency("urgency", time.Since(start).Seconds())
	return &res, nil
}

// Stockout forecasts availability for one ASIN.
func (uc *IntelligenceUseCase) Stockout(ctx context.Context, asin string, n int) (*models.StockoutForecast, error) {
	start := time.Now()
	obs, err := uc.store.AvailabilityHistory(ctx, asin, n)
	if err != nil {
		uc.metrics.RecordError("stockout")
		return nil, err
	}
	forecast := intelligence.PredictStockout(obs)
	forecast.ASIN = asin
	uc.metrics.RecordLatency("stockout", time.Since(start).Seconds())
	return &forecast, nil
}

func (uc *IntelligenceUseCase) scoreConfig() intelligence.ScoreConfig {
	sc := intelligence.DefaultScoreConfig()
	e := uc.cfg.Engine
	if e.PriceWeight > 0 {
		sc.PriceWeight = e.PriceWeight
	}
	if e.ReviewWeight > 0 {
		sc.ReviewWeight = e.ReviewWeight
	}
	if e.AvailabilityWeight > 0 {
		sc.AvailabilityWeight = e.AvailabilityWeight
	}
	if e.DiscountWeight > 0 {
		sc.DiscountWeight = e.DiscountWeight
	}
	if e.BrandWeight > 0 {
		sc.BrandWeight = e.BrandWeight
	}
	if e.ExcellentMin > 0 {
		sc.ExcellentMin = e.ExcellentMin
	}
	if e.GoodMin > 0 {
		sc.GoodMin = e.GoodMin
	}
	if e.AverageMin > 0 {
		sc.AverageMin = e.AverageMin
	}
	return sc
}

// lowStock treats a constrained or absent offer as a scarcity signal.
func lowStock(offer *models.OfferSnapshot) bool {
	if offer == nil {
		return false
	}
	if offer.Availability == models.AvailabilityBackOrder || offer.Availability == models.AvailabilityPreOrder {
		return true
	}
	return offer.MaxOrderQuantity > 0 && offer.MaxOrderQuantity <= 2
}
