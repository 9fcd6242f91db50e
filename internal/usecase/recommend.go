package usecase

import (
	"context"
	"fmt"
	"time"

	"DealSense/internal/domain/models"
	domrepo "DealSense/internal/domain/repository"
	domsvc "DealSense/internal/domain/service"
	svccache "DealSense/internal/service/cache"
	svcmetrics "DealSense/internal/service/metrics"
	"DealSense/internal/services/recommend"
	"DealSense/pkg/config"
	applogger "DealSense/pkg/logger"
)

const (
	candidateOversample = 4

	// Floor values for the model-strategy gate when config leaves
	// min_history/min_cohort unset.
	defaultMinHistory = 3
	defaultMinCohort  = 10
)

// RecommendUseCase builds (and memoizes) the user's preference profile,
// loads candidates from the catalog, and ranks them with the configured
// scorer strategy. The trained-model strategy only applies to users with
// enough history and a large enough candidate pool; below those floors
// the heuristic baseline ranks instead. The choice is made up front from
// profile stats, never as a reaction to a scorer error.
type RecommendUseCase struct {
	store    domrepo.HistoryStore
	scorer   domsvc.RecommendationScorer
	baseline domsvc.RecommendationScorer
	profiles *svccache.TTLCache
	cfg      *config.Config
	l        *applogger.Logger
}

func NewRecommendUseCase(
	store domrepo.HistoryStore,
	scorer domsvc.RecommendationScorer,
	cfg *config.Config,
	l *applogger.Logger,
) *RecommendUseCase {
	return &RecommendUseCase{
		store:  store,
		scorer: scorer,
		baseline: recommend.NewHeuristicScorer(recommend.Weights{
			Category: cfg.Recommend.CategoryWeight,
			Brand:    cfg.Recommend.BrandWeight,
			Keyword:  cfg.Recommend.KeywordWeight,
		}),
		profiles: svccache.NewTTLCache(),
		cfg:      cfg,
		l:        l,
	}
}

// Recommend returns up to limit ranked products for the user. Products
// the user already watches are excluded before ranking.
func (uc *RecommendUseCase) Recommend(ctx context.Context, userID string, limit int) ([]models.Recommendation, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id required")
	}
	if limit <= 0 {
		limit = 5
	}
	start := time.Now()

	profile, watched, events, err := uc.profileFor(ctx, userID)
	if err != nil {
		svcmetrics.EngineErrors.WithLabelValues("recommend").Inc()
		return nil, err
	}

	category := topCategory(profile)
	candidates, err := uc.store.Catalog(ctx, category, limit*candidateOversample)
	if err != nil {
		svcmetrics.EngineErrors.WithLabelValues("recommend").Inc()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	// Thin category: widen to the full catalog.
	if len(candidates) < limit && category != "" {
		candidates, err = uc.store.Catalog(ctx, "", limit*candidateOversample)
		if err != nil {
			svcmetrics.EngineErrors.WithLabelValues("recommend").Inc()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	fresh := candidates[:0]
	for _, c := range candidates {
		if _, ok := watched[c.ASIN]; !ok {
			fresh = append(fresh, c)
		}
	}

	scorer := uc.scorerFor(events, len(fresh))
	ranked, err := scorer.Score(ctx, profile, fresh)
	if err != nil {
		svcmetrics.EngineErrors.WithLabelValues("recommend").Inc()
		return nil, fmt.Errorf("scorer %s: %w", scorer.Name(), err)
	}
	svcmetrics.EngineLatency.WithLabelValues("recommend").Observe(time.Since(start).Seconds())
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if uc.l != nil {
		uc.l.Debug("recommendations ranked",
			applogger.String("user_id", userID),
			applogger.String("strategy", scorer.Name()),
			applogger.Int("count", len(ranked)),
		)
	}
	return ranked, nil
}

// scorerFor applies the strategy gate: the configured scorer runs only
// for users above the history floor with a candidate pool above the
// cohort floor.
func (uc *RecommendUseCase) scorerFor(events, candidates int) domsvc.RecommendationScorer {
	minHistory := uc.cfg.Recommend.MinHistory
	if minHistory <= 0 {
		minHistory = defaultMinHistory
	}
	minCohort := uc.cfg.Recommend.MinCohort
	if minCohort <= 0 {
		minCohort = defaultMinCohort
	}
	if events < minHistory || candidates < minCohort {
		return uc.baseline
	}
	return uc.scorer
}

// InvalidateProfile drops the memoized profile, forcing a rebuild on the
// next request. Called when new activity arrives for the user.
func (uc *RecommendUseCase) InvalidateProfile(userID string) {
	uc.profiles.Delete(profileKey(userID))
}

type cachedProfile struct {
	profile models.PreferenceProfile
	watched map[string]struct{}
	events  int
}

func (uc *RecommendUseCase) profileFor(ctx context.Context, userID string) (models.PreferenceProfile, map[string]struct{}, int, error) {
	ttl := uc.cfg.Recommend.ProfileTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	hit := true
	v, err := uc.profiles.GetOrCompute(profileKey(userID), ttl, func() (any, error) {
		hit = false
		activity, err := uc.store.UserActivity(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load activity: %w", err)
		}

		cp := cachedProfile{
			profile: recommend.BuildProfile(activity, time.Now()),
			watched: make(map[string]struct{}, len(activity.Watched)),
			events:  len(activity.Watched) + len(activity.Clicked) + len(activity.Searches),
		}
		for _, ref := range activity.Watched {
			cp.watched[ref.ASIN] = struct{}{}
		}
		return cp, nil
	})
	if err != nil {
		return models.PreferenceProfile{}, nil, 0, err
	}
	if hit {
		svcmetrics.ProfileCacheHits.WithLabelValues("hit").Inc()
	} else {
		svcmetrics.ProfileCacheHits.WithLabelValues("miss").Inc()
	}

	cp := v.(cachedProfile)
	return cp.profile, cp.watched, cp.events, nil
}

func profileKey(userID string) string {
	return "profile:" + userID
}

// topCategory picks the user's most-seen category, empty for new users.
func topCategory(p models.PreferenceProfile) string {
	best, bestN := "", 0
	for cat, n := range p.Categories {
		if n > bestN {
			best, bestN = cat, n
		}
	}
	return best
}
