package usecase

import (
	"context"
	"testing"
	"time"

	"DealSense/internal/domain/models"
	"DealSense/pkg/config"
)

type stubHistoryStore struct {
	activity      models.UserActivity
	catalog       []models.CandidateProduct
	activityCalls int
}

func (s *stubHistoryStore) PriceHistory(context.Context, string, int) ([]models.PricePoint, error) {
	return nil, nil
}
func (s *stubHistoryStore) StorePricePoint(context.Context, *models.PricePoint) error { return nil }
func (s *stubHistoryStore) AvailabilityHistory(context.Context, string, int) ([]models.AvailabilityObservation, error) {
	return nil, nil
}
func (s *stubHistoryStore) LatestOffer(context.Context, string) (*models.OfferSnapshot, error) {
	return nil, nil
}
func (s *stubHistoryStore) LatestReview(context.Context, string) (*models.ReviewSnapshot, error) {
	return nil, nil
}
func (s *stubHistoryStore) Product(context.Context, string) (*models.ProductSnapshot, error) {
	return nil, nil
}
func (s *stubHistoryStore) UserActivity(context.Context, string) (models.UserActivity, error) {
	s.activityCalls++
	return s.activity, nil
}
func (s *stubHistoryStore) Catalog(context.Context, string, int) ([]models.CandidateProduct, error) {
	return s.catalog, nil
}
func (s *stubHistoryStore) Health(context.Context) error { return nil }
func (s *stubHistoryStore) Close() error                 { return nil }

func recommendTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Recommend.Strategy = "heuristic"
	cfg.Recommend.ProfileTTL = time.Minute
	cfg.Recommend.CategoryWeight = 0.45
	cfg.Recommend.BrandWeight = 0.35
	cfg.Recommend.KeywordWeight = 0.20
	return cfg
}

func TestRecommendProfileMemoized(t *testing.T) {
	store := &stubHistoryStore{
		activity: models.UserActivity{
			UserID:  "u1",
			Watched: []models.ProductRef{{ASIN: "A1", Brand: "Sony", Category: "Audio", Price: 5000}},
		},
		catalog: []models.CandidateProduct{
			{ASIN: "C1", Title: "Sony speaker", Brand: "Sony", Category: "Audio", Price: 4000},
			{ASIN: "C2", Title: "Desk lamp", Brand: "Lume", Category: "Home", Price: 1500},
		},
	}
	cfg := recommendTestConfig()
	uc := NewRecommendUseCase(store, nil, cfg, nil)

	ctx := context.Background()
	if _, err := uc.Recommend(ctx, "u1", 2); err != nil {
		t.Fatalf("first recommend: %v", err)
	}
	if _, err := uc.Recommend(ctx, "u1", 2); err != nil {
		t.Fatalf("second recommend: %v", err)
	}
	if store.activityCalls != 1 {
		t.Fatalf("activity should load once per TTL window, loaded %d times", store.activityCalls)
	}

	uc.InvalidateProfile("u1")
	if _, err := uc.Recommend(ctx, "u1", 2); err != nil {
		t.Fatalf("post-invalidate recommend: %v", err)
	}
	if store.activityCalls != 2 {
		t.Fatalf("invalidation should force a reload, loaded %d times", store.activityCalls)
	}
}

type namedScorer struct{ name string }

func (s *namedScorer) Name() string { return s.name }
func (s *namedScorer) Score(_ context.Context, _ models.PreferenceProfile, c []models.CandidateProduct) ([]models.Recommendation, error) {
	out := make([]models.Recommendation, 0, len(c))
	for _, cand := range c {
		out = append(out, models.Recommendation{ASIN: cand.ASIN, Title: cand.Title})
	}
	return out, nil
}

func TestRecommendStrategyGate(t *testing.T) {
	cfg := recommendTestConfig()
	cfg.Recommend.Strategy = "model"
	cfg.Recommend.MinHistory = 5
	cfg.Recommend.MinCohort = 3
	model := &namedScorer{name: "trained_model"}
	uc := NewRecommendUseCase(&stubHistoryStore{}, model, cfg, nil)

	if got := uc.scorerFor(2, 100); got.Name() != "heuristic" {
		t.Fatalf("thin history must use the baseline, got %s", got.Name())
	}
	if got := uc.scorerFor(10, 2); got.Name() != "heuristic" {
		t.Fatalf("thin candidate pool must use the baseline, got %s", got.Name())
	}
	if got := uc.scorerFor(10, 100); got.Name() != "trained_model" {
		t.Fatalf("above both floors the model must rank, got %s", got.Name())
	}
}