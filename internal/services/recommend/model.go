package recommend

import (
	"context"
	"fmt"

	"DealSense/internal/domain/models"
	domsvc "DealSense/internal/domain/service"
	"DealSense/internal/services/analytics"
	"DealSense/pkg/config"
)

// TrainedModelScorer ranks candidates through the external model service.
// It is selected by configuration when the user cohort and history are
// large enough; it never acts as an exception fallback for the heuristic.
type TrainedModelScorer struct {
	base *analytics.HTTPServiceBase
}

func NewTrainedModelScorer(cfg *config.Config) *TrainedModelScorer {
	return &TrainedModelScorer{base: analytics.NewHTTPServiceBase(cfg)}
}

func (s *TrainedModelScorer) Name() string { return "trained_model" }

type rankReq struct {
	UserID     string         `json:"user_id"`
	Brands     map[string]int `json:"brands"`
	Categories map[string]int `json:"categories"`
	Keywords   []string       `json:"keywords"`
	MinPrice   int64          `json:"min_price"`
	MaxPrice   int64          `json:"max_price"`
	Candidates []rankItem     `json:"candidates"`
}

type rankItem struct {
	ASIN     string `json:"asin"`
	Title    string `json:"title"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
}

type rankResp struct {
	Results []struct {
		ASIN  string  `json:"asin"`
		Score float64 `json:"score"`
	} `json:"results"`
}

func (s *TrainedModelScorer) Score(ctx context.Context, profile models.PreferenceProfile, candidates []models.CandidateProduct) ([]models.Recommendation, error) {
	req := rankReq{
		UserID:     profile.UserID,
		Brands:     profile.Brands,
		Categories: profile.Categories,
		MinPrice:   profile.MinPrice,
		MaxPrice:   profile.MaxPrice,
	}
	for k := range profile.Keywords {
		req.Keywords = append(req.Keywords, k)
	}
	for _, c := range candidates {
		req.Candidates = append(req.Candidates, rankItem{
			ASIN: c.ASIN, Title: c.Title, Brand: c.Brand, Category: c.Category, Price: c.Price,
		})
	}

	var rr rankResp
	if err := s.base.PostJSONWithRetry(ctx, "/recommend/rank", req, &rr, 2); err != nil {
		return nil, fmt.Errorf("post rank: %w", err)
	}

	titles := make(map[string]string, len(candidates))
	for _, c := range candidates {
		titles[c.ASIN] = c.Title
	}
	out := make([]models.Recommendation, 0, len(rr.Results))
	for _, r := range rr.Results {
		out = append(out, models.Recommendation{
			ASIN:   r.ASIN,
			Title:  titles[r.ASIN],
			Score:  clamp01(r.Score),
			Reason: "ranked by trained model",
		})
	}
	return out, nil
}

var _ domsvc.RecommendationScorer = (*TrainedModelScorer)(nil)
