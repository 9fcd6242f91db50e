package intelligence

import (
	"math"
	"strings"

	"DealSense/internal/domain/models"
)

// ScoreConfig carries the factor weights and tier thresholds. The stock
// values mirror the long-standing production tuning; they are configurable
// rather than derived.
type ScoreConfig struct {
	PriceWeight        float64 `yaml:"price_weight"`
	ReviewWeight       float64 `yaml:"review_weight"`
	AvailabilityWeight float64 `yaml:"availability_weight"`
	DiscountWeight     float64 `yaml:"discount_weight"`
	BrandWeight        float64 `yaml:"brand_weight"`

	ExcellentMin float64 `yaml:"excellent_min"`
	GoodMin      float64 `yaml:"good_min"`
	AverageMin   float64 `yaml:"average_min"`
}

// DefaultScoreConfig returns the stock weights (40/25/20/10/5) and tier
// thresholds (85/70/50).
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		PriceWeight:        0.40,
		ReviewWeight:       0.25,
		AvailabilityWeight: 0.20,
		DiscountWeight:     0.10,
		BrandWeight:        0.05,
		ExcellentMin:       85,
		GoodMin:            70,
		AverageMin:         50,
	}
}

const neutralFactor = 50

// Brand reputation sets, lower-cased. Unknown brands score 55, missing
// brand metadata scores the neutral 50.
var premiumBrands = map[string]struct{}{
	"apple": {}, "samsung": {}, "sony": {}, "bose": {}, "lg": {},
	"dell": {}, "hp": {}, "lenovo": {}, "asus": {}, "canon": {},
	"nikon": {}, "dyson": {},
}

var recognizedBrands = map[string]struct{}{
	"xiaomi": {}, "oneplus": {}, "realme": {}, "boat": {}, "jbl": {},
	"philips": {}, "panasonic": {}, "logitech": {}, "sandisk": {},
	"tp-link": {}, "noise": {}, "mi": {}, "syska": {}, "havells": {},
}

var tierRecommendations = map[models.QualityTier][]string{
	models.TierExcellent: {
		"Exceptional deal, act quickly before the price recovers",
		"Price is near its historical low",
	},
	models.TierGood: {
		"Solid deal, better than most observed prices",
	},
	models.TierAverage: {
		"Fair price, consider waiting for a deeper discount",
	},
	models.TierPoor: {
		"Weak deal, the price has been lower before",
	},
}

// ScoreDeal combines five factors into a single 0-100 deal-quality score.
// Any missing snapshot degrades that factor to its neutral value; an
// entirely empty history short-circuits to a neutral score.
func ScoreDeal(asin string, currentPrice int64, history []models.PricePoint, offer *models.OfferSnapshot, review *models.ReviewSnapshot, product *models.ProductSnapshot, cfg ScoreConfig) models.DealScore {
	res := models.DealScore{ASIN: asin, CurrentPrice: currentPrice}

	if len(history) == 0 {
		res.Score = neutralFactor
		res.Tier = tierFor(res.Score, cfg)
		res.Reason = "No historical data available"
		res.Recommendations = recommendationsFor(res.Tier)
		return res
	}

	res.Factors = models.FactorBreakdown{
		Price:        priceFactor(history, currentPrice),
		Review:       reviewFactor(review),
		Availability: availabilityFactor(offer),
		Discount:     discountFactor(offer),
		Brand:        brandFactor(product),
	}

	score := res.Factors.Price*cfg.PriceWeight +
		res.Factors.Review*cfg.ReviewWeight +
		res.Factors.Availability*cfg.AvailabilityWeight +
		res.Factors.Discount*cfg.DiscountWeight +
		res.Factors.Brand*cfg.BrandWeight
	res.Score = clamp(score, 0, 100)
	res.Tier = tierFor(res.Score, cfg)
	res.Recommendations = recommendationsFor(res.Tier)
	return res
}

// priceFactor maps the fraction of historical prices strictly above the
// current price onto a tiered score.
func priceFactor(history []models.PricePoint, currentPrice int64) float64 {
	if len(history) == 0 {
		return neutralFactor
	}
	above := 0
	for _, p := range history {
		if p.Price > currentPrice {
			above++
		}
	}
	pct := float64(above) / float64(len(history)) * 100
	switch {
	case pct >= 90:
		return 95
	case pct >= 75:
		return 85
	case pct >= 50:
		return 70
	case pct >= 25:
		return 40
	default:
		return 20
	}
}

// reviewFactor scales the star rating by a reliability multiplier based
// on review volume.
func reviewFactor(review *models.ReviewSnapshot) float64 {
	if review == nil || review.ReviewCount <= 0 {
		return neutralFactor
	}
	base := review.AverageRating / 5 * 100
	var reliability float64
	switch {
	case review.ReviewCount >= 1000:
		reliability = 1.2
	case review.ReviewCount >= 100:
		reliability = 1.1
	case review.ReviewCount >= 10:
		reliability = 1.0
	default:
		reliability = 0.8
	}
	return math.Min(100, base*reliability)
}

// availabilityFactor is additive: stock status up to 50, shipping up to
// 15, fulfillment up to 15, order-quantity headroom up to 10.
func availabilityFactor(offer *models.OfferSnapshot) float64 {
	if offer == nil {
		return 30
	}
	var score float64
	switch offer.Availability {
	case models.AvailabilityInStock:
		score += 50
	case models.AvailabilityPreOrder:
		score += 35
	case models.AvailabilityBackOrder:
		score += 25
	default:
		score += 10
	}
	switch {
	case offer.IsPrime:
		score += 15
	case offer.FreeShipping:
		score += 10
	default:
		score += 5
	}
	if offer.SelfFulfilled {
		score += 15
	} else {
		score += 8
	}
	switch {
	case offer.MaxOrderQuantity >= 5:
		score += 10
	case offer.MaxOrderQuantity >= 2:
		score += 7
	default:
		score += 3
	}
	return score
}

// discountFactor prefers an explicit savings percentage, then promotion
// presence, then a doubled absolute-savings ratio.
func discountFactor(offer *models.OfferSnapshot) float64 {
	if offer == nil {
		return 0
	}
	if p := offer.SavingsPercent; p > 0 {
		switch {
		case p >= 60:
			return 100
		case p >= 40:
			return 85
		case p >= 25:
			return 70
		case p >= 15:
			return 55
		case p >= 5:
			return 35
		default:
			return 20
		}
	}
	if len(offer.Promotions) > 0 {
		return 40
	}
	if offer.SavingsAmount > 0 && offer.ListPrice > 0 {
		return math.Min(100, float64(offer.SavingsAmount)/float64(offer.ListPrice)*100*2)
	}
	return 0
}

func brandFactor(product *models.ProductSnapshot) float64 {
	if product == nil || product.Brand == "" {
		return neutralFactor
	}
	brand := strings.ToLower(strings.TrimSpace(product.Brand))
	if _, ok := premiumBrands[brand]; ok {
		return 90
	}
	if _, ok := recognizedBrands[brand]; ok {
		return 75
	}
	return 55
}

func tierFor(score float64, cfg ScoreConfig) models.QualityTier {
	switch {
	case score >= cfg.ExcellentMin:
		return models.TierExcellent
	case score >= cfg.GoodMin:
		return models.TierGood
	case score >= cfg.AverageMin:
		return models.TierAverage
	default:
		return models.TierPoor
	}
}

func recommendationsFor(tier models.QualityTier) []string {
	recs := tierRecommendations[tier]
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
