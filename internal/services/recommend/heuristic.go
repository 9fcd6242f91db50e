package recommend

import (
	"context"
	"sort"
	"strings"

	"DealSense/internal/domain/models"
	domsvc "DealSense/internal/domain/service"
)

// Weights for the heuristic scorer. Category affinity dominates, brand
// comes second, keyword overlap last.
type Weights struct {
	Category float64 `yaml:"category"`
	Brand    float64 `yaml:"brand"`
	Keyword  float64 `yaml:"keyword"`
}

// DefaultWeights returns the stock 0.45/0.35/0.20 split.
func DefaultWeights() Weights {
	return Weights{Category: 0.45, Brand: 0.35, Keyword: 0.20}
}

// neutralScore is assigned to every candidate for users with no history.
const neutralScore = 0.5

// HeuristicScorer ranks candidates by brand/category affinity and keyword
// overlap against the profile.
type HeuristicScorer struct {
	weights Weights
}

func NewHeuristicScorer(w Weights) *HeuristicScorer {
	if w.Category <= 0 && w.Brand <= 0 && w.Keyword <= 0 {
		w = DefaultWeights()
	}
	return &HeuristicScorer{weights: w}
}

func (s *HeuristicScorer) Name() string { return "heuristic" }

func (s *HeuristicScorer) Score(_ context.Context, profile models.PreferenceProfile, candidates []models.CandidateProduct) ([]models.Recommendation, error) {
	out := make([]models.Recommendation, 0, len(candidates))

	if Empty(profile) {
		// New user: neutral defaults in catalog order, never an error.
		for _, c := range candidates {
			out = append(out, models.Recommendation{
				ASIN:   c.ASIN,
				Title:  c.Title,
				Score:  neutralScore,
				Reason: "popular pick",
			})
		}
		return out, nil
	}

	for _, c := range candidates {
		rec := models.Recommendation{ASIN: c.ASIN, Title: c.Title}
		brand := affinity(profile.Brands, c.Brand)
		category := affinity(profile.Categories, c.Category)
		keyword := keywordOverlap(profile.Keywords, c.Title)

		rec.Score = s.weights.Category*category + s.weights.Brand*brand + s.weights.Keyword*keyword
		rec.Reason = reasonFor(brand, category, keyword)
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// affinity is the observed frequency share of the candidate's value in
// the user's counts, 0 when unseen.
func affinity(counts map[string]int, value string) float64 {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return 0
	}
	return float64(counts[strings.ToLower(strings.TrimSpace(value))]) / float64(total)
}

// keywordOverlap is the share of title tokens present in the profile's
// search-keyword set.
func keywordOverlap(keywords map[string]struct{}, title string) float64 {
	toks := tokenize(title)
	if len(toks) == 0 || len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, t := range toks {
		if _, ok := keywords[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(toks))
}

func reasonFor(brand, category, keyword float64) string {
	switch {
	case category >= brand && category >= keyword && category > 0:
		return "matches a category you follow"
	case brand >= keyword && brand > 0:
		return "matches a brand you follow"
	case keyword > 0:
		return "matches your searches"
	default:
		return "popular pick"
	}
}

var _ domsvc.RecommendationScorer = (*HeuristicScorer)(nil)
