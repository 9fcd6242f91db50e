// Package recommend builds per-user preference profiles and ranks catalog
// candidates against them. Scoring is pure; which scorer runs (heuristic
// or trained model) is decided at wiring time.
package recommend

import (
	"strings"
	"time"

	"DealSense/internal/domain/models"
)

// BuildProfile derives the preference vector from a user's watches,
// clicks and searches. An empty activity record yields an empty profile;
// callers treat that as "new user", not as an error.
func BuildProfile(activity models.UserActivity, now time.Time) models.PreferenceProfile {
	profile := models.PreferenceProfile{
		UserID:     activity.UserID,
		Brands:     make(map[string]int),
		Categories: make(map[string]int),
		Keywords:   make(map[string]struct{}),
		BuiltAt:    now,
	}

	for _, ref := range activity.Watched {
		countRef(&profile, ref)
		if ref.Price > 0 {
			if profile.MinPrice == 0 || ref.Price < profile.MinPrice {
				profile.MinPrice = ref.Price
			}
			if ref.Price > profile.MaxPrice {
				profile.MaxPrice = ref.Price
			}
		}
	}
	for _, ref := range activity.Clicked {
		countRef(&profile, ref)
	}
	for _, q := range activity.Searches {
		for _, tok := range tokenize(q) {
			profile.Keywords[tok] = struct{}{}
		}
	}
	return profile
}

func countRef(p *models.PreferenceProfile, ref models.ProductRef) {
	if b := strings.ToLower(strings.TrimSpace(ref.Brand)); b != "" {
		p.Brands[b]++
	}
	if c := strings.ToLower(strings.TrimSpace(ref.Category)); c != "" {
		p.Categories[c]++
	}
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?\"'()")
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}

// Empty reports whether the profile carries no usable signal.
func Empty(p models.PreferenceProfile) bool {
	return len(p.Brands) == 0 && len(p.Categories) == 0 && len(p.Keywords) == 0
}
