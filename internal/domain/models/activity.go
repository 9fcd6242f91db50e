package models

import "time"

// ProductRef is a minimal product reference carried by activity events.
type ProductRef struct {
	ASIN     string
	Brand    string
	Category string
	Price    int64
}

// UserActivity aggregates one user's watches, clicks and searches.
type UserActivity struct {
	UserID   string
	Watched  []ProductRef
	Clicked  []ProductRef
	Searches []string
}

// Empty reports whether the user has no usable history.
func (a UserActivity) Empty() bool {
	return len(a.Watched) == 0 && len(a.Clicked) == 0 && len(a.Searches) == 0
}

// PreferenceProfile is the derived preference vector for one user.
type PreferenceProfile struct {
	UserID     string
	Brands     map[string]int
	Categories map[string]int
	MinPrice   int64
	MaxPrice   int64
	Keywords   map[string]struct{}
	BuiltAt    time.Time
}

// Recommendation ranks one candidate product for a user.
type Recommendation struct {
	ASIN   string
	Title  string
	Score  float64 // [0,1]
	Reason string
}
