package service

import (
	"context"

	"DealSense/internal/domain/models"
)

// SuccessModel produces the external success-probability signal the
// urgency classifier may consume. Implementations call out to a trained
// model service; the engine itself never does.
type SuccessModel interface {
	PredictSuccess(ctx context.Context, asin string, features map[string]float64) (float64, error)
}

// RecommendationScorer ranks candidate products for a user profile.
// Two implementations exist: the heuristic scorer and the trained-model
// scorer. Which one runs is a configuration choice made at wiring time,
// never a fallback on error.
type RecommendationScorer interface {
	Score(ctx context.Context, profile models.PreferenceProfile, candidates []models.CandidateProduct) ([]models.Recommendation, error)
	Name() string
}
