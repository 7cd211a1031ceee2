// Package domain contains core business types and interfaces.
//
// This file defines the condition rating taxonomy used by every checklist
// item, including score and severity mappings for report aggregation.
package domain

import "strings"

// =============================================================================
// Rating
// =============================================================================

// Rating represents the condition assessment of a single checklist item.
type Rating string

const (
	// RatingExcellent indicates like-new condition with no visible wear.
	RatingExcellent Rating = "excellent"

	// RatingGood indicates normal wear consistent with age and mileage.
	RatingGood Rating = "good"

	// RatingFair indicates noticeable wear that should be monitored.
	RatingFair Rating = "fair"

	// RatingNeedsAttention indicates a component that requires service soon.
	RatingNeedsAttention Rating = "needs-attention"

	// RatingCritical indicates a component that is unsafe or failed.
	RatingCritical Rating = "critical"

	// RatingNotApplicable indicates the component does not apply to this
	// vehicle (e.g., clutch operation on an automatic).
	RatingNotApplicable Rating = "n/a"

	// RatingUnset is the zero value: the mechanic has not rated the item yet.
	RatingUnset Rating = ""
)

// String returns the string representation of the rating.
func (r Rating) String() string {
	return string(r)
}

// IsValid returns true if the rating is a recognized value.
// The unset (empty) rating is considered valid input.
func (r Rating) IsValid() bool {
	switch r {
	case RatingExcellent, RatingGood, RatingFair, RatingNeedsAttention,
		RatingCritical, RatingNotApplicable, RatingUnset:
		return true
	}
	return false
}

// IsScorable returns true if the rating contributes to score averages.
// Unset and n/a ratings are excluded from all aggregation.
func (r Rating) IsScorable() bool {
	switch r {
	case RatingExcellent, RatingGood, RatingFair, RatingNeedsAttention, RatingCritical:
		return true
	}
	return false
}

// Score returns the numeric score used for category and overall averages.
// Returns 0 and false for ratings that must be excluded from averages.
func (r Rating) Score() (int, bool) {
	switch r {
	case RatingExcellent:
		return 100, true
	case RatingGood:
		return 80, true
	case RatingFair:
		return 60, true
	case RatingNeedsAttention:
		return 40, true
	case RatingCritical:
		return 20, true
	}
	return 0, false
}

// SeverityRank returns the rank used to select the worst rating of a set.
// Higher rank means more severe. Unscorable ratings rank below everything
// and are never selected as "worst" when a scorable rating is present.
func (r Rating) SeverityRank() int {
	switch r {
	case RatingCritical:
		return 5
	case RatingNeedsAttention:
		return 4
	case RatingFair:
		return 3
	case RatingGood:
		return 2
	case RatingExcellent:
		return 1
	}
	return 0
}

// Label returns the human-readable display label for the rating.
func (r Rating) Label() string {
	switch r {
	case RatingExcellent:
		return "Excellent"
	case RatingGood:
		return "Good"
	case RatingFair:
		return "Fair"
	case RatingNeedsAttention:
		return "Needs Attention"
	case RatingCritical:
		return "Critical"
	case RatingNotApplicable:
		return "N/A"
	default:
		return "Not Rated"
	}
}

// NormalizeRating maps a free-form condition label back to a Rating.
//
// Legacy report payloads carry display labels ("Needs Attention") rather
// than rating values, so matching is case-insensitive and substring-based.
// Unmatched labels normalize to RatingUnset and are excluded from scoring.
func NormalizeRating(label string) Rating {
	s := strings.ToLower(strings.TrimSpace(label))
	switch {
	case s == "":
		return RatingUnset
	case strings.Contains(s, "excellent"):
		return RatingExcellent
	case strings.Contains(s, "attention"), strings.Contains(s, "needs"):
		return RatingNeedsAttention
	case strings.Contains(s, "critical"):
		return RatingCritical
	case strings.Contains(s, "good"):
		return RatingGood
	case strings.Contains(s, "fair"):
		return RatingFair
	}
	return RatingUnset
}

// WorstRating returns the most severe rating in the set.
//
// Unset and n/a ratings are never selected while any scorable rating exists.
// An empty or fully unscorable set defaults to RatingFair so downstream
// display code always has a gauge position to render.
func WorstRating(ratings []Rating) Rating {
	worst := RatingUnset
	for _, r := range ratings {
		if !r.IsScorable() {
			continue
		}
		if r.SeverityRank() > worst.SeverityRank() {
			worst = r
		}
	}
	if worst == RatingUnset {
		return RatingFair
	}
	return worst
}
