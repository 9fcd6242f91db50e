package recommend

import "DealSense/internal/domain/models"

// ProfileSimilarity scores how alike two users' preference profiles are,
// normalized to [0,1]: brand-set overlap, category-set overlap and
// price-range proximity, with categories and brands weighted equally.
func ProfileSimilarity(a, b models.PreferenceProfile) float64 {
	brand := jaccard(keys(a.Brands), keys(b.Brands))
	category := jaccard(keys(a.Categories), keys(b.Categories))
	price := rangeProximity(a.MinPrice, a.MaxPrice, b.MinPrice, b.MaxPrice)
	return clamp01(0.4*category + 0.4*brand + 0.2*price)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// rangeProximity is the overlap of the two observed price ranges over
// their combined span, 0 when either user has no range.
func rangeProximity(aMin, aMax, bMin, bMax int64) float64 {
	if aMax <= 0 || bMax <= 0 {
		return 0
	}
	lo := max64(aMin, bMin)
	hi := min64(aMax, bMax)
	if hi <= lo {
		return 0
	}
	span := max64(aMax, bMax) - min64(aMin, bMin)
	if span <= 0 {
		return 0
	}
	return float64(hi-lo) / float64(span)
}

func keys(m map[string]int) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
