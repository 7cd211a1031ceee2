// Package domain contains core business types and interfaces.
//
// This file implements the scoring and aggregation engine behind the
// report's overall assessment: per-category scores, the safety sub-score,
// rating tallies, the itemized safety-issue list, and the advisory
// purchase-recommendation tier.
package domain

import "math"

// =============================================================================
// Scorecard Types
// =============================================================================

// CategoryScore is the aggregate for one checklist section.
type CategoryScore struct {
	Key       string  `json:"key"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`       // mean item score, 1 decimal
	Worst     Rating  `json:"worstRating"` // most severe rating in the category
	ItemCount int     `json:"itemCount"`   // scorable items only
}

// SafetyIssue is one item rated needs-attention or critical, carried with
// enough context to render an itemized list on the report.
type SafetyIssue struct {
	SectionKey string `json:"-"`
	Category   string `json:"category"`
	Item       string `json:"item"`
	Rating     Rating `json:"rating"`
	Notes      string `json:"notes,omitempty"`
}

// RatingCounts tallies scorable items by rating across the whole record.
type RatingCounts struct {
	Excellent int `json:"excellentCount"`
	Good      int `json:"goodCount"`
	Fair      int `json:"fairCount"`
	Attention int `json:"attentionCount"`
	Critical  int `json:"criticalCount"`
}

// Scorecard is the full output of the aggregation engine.
type Scorecard struct {
	Categories     []CategoryScore `json:"categories"`     // canonical order, empty categories omitted
	OverallScore   float64         `json:"overallScore"`   // mean over all scorable items, 1 decimal
	SafetyScore    float64         `json:"safetyScore"`    // mean over safety-relevant items, 1 decimal
	HasSafetyScore bool            `json:"hasSafetyScore"` // false when no safety item is scorable
	SafetyIssues   []SafetyIssue   `json:"safetyIssues"`
	Counts         RatingCounts    `json:"counts"`
	TotalInspected int             `json:"totalInspected"` // scorable items (n/a and unset excluded)
}

// =============================================================================
// Aggregation
// =============================================================================

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// BuildScorecard aggregates the flattened item set of one record.
//
// Ratings are normalized before scoring so the engine accepts both stored
// rating values and legacy display labels. Items whose rating normalizes
// to unset or n/a are excluded everywhere; a category with zero scorable
// items is omitted from the scorecard entirely. Malformed input cannot
// fail: it simply contributes zero scorable items.
func BuildScorecard(items []SectionItem) Scorecard {
	type bucket struct {
		sum     int
		count   int
		ratings []Rating
	}
	buckets := make(map[string]*bucket)
	var order []string

	var card Scorecard
	overallSum := 0
	safetySum, safetyCount := 0, 0

	for _, it := range items {
		rating := it.Rating
		if !rating.IsScorable() {
			// Stored values may be display labels from older payloads.
			rating = NormalizeRating(string(it.Rating))
		}

		if rating == RatingNeedsAttention || rating == RatingCritical {
			card.SafetyIssues = append(card.SafetyIssues, SafetyIssue{
				SectionKey: it.SectionKey,
				Category:   SectionTitle(it.SectionKey),
				Item:       it.Item,
				Rating:     rating,
				Notes:      it.Notes,
			})
		}

		score, ok := rating.Score()
		if !ok {
			continue
		}

		b := buckets[it.SectionKey]
		if b == nil {
			b = &bucket{}
			buckets[it.SectionKey] = b
			order = append(order, it.SectionKey)
		}
		b.sum += score
		b.count++
		b.ratings = append(b.ratings, rating)

		overallSum += score
		card.TotalInspected++

		if IsSafetySection(it.SectionKey) {
			safetySum += score
			safetyCount++
		}

		switch rating {
		case RatingExcellent:
			card.Counts.Excellent++
		case RatingGood:
			card.Counts.Good++
		case RatingFair:
			card.Counts.Fair++
		case RatingNeedsAttention:
			card.Counts.Attention++
		case RatingCritical:
			card.Counts.Critical++
		}
	}

	sortSectionKeys(order)
	for _, key := range order {
		b := buckets[key]
		card.Categories = append(card.Categories, CategoryScore{
			Key:       key,
			Title:     SectionTitle(key),
			Score:     round1(float64(b.sum) / float64(b.count)),
			Worst:     WorstRating(b.ratings),
			ItemCount: b.count,
		})
	}

	if card.TotalInspected > 0 {
		card.OverallScore = round1(float64(overallSum) / float64(card.TotalInspected))
	}
	if safetyCount > 0 {
		card.SafetyScore = round1(float64(safetySum) / float64(safetyCount))
		card.HasSafetyScore = true
	}

	return card
}

// =============================================================================
// Recommendation Tiers
// =============================================================================

// SuggestedTier is the advisory purchase-recommendation tier derived from
// the scorecard. It is surfaced alongside the mechanic's manually chosen
// Summary.Recommendations, never in place of it.
type SuggestedTier string

const (
	TierDoNotPurchase       SuggestedTier = "Do Not Purchase"
	TierNotRecommended      SuggestedTier = "Not Recommended"
	TierPurchaseWithCaution SuggestedTier = "Purchase with Caution"
	TierRecommended         SuggestedTier = "Recommended"
	TierHighlyRecommended   SuggestedTier = "Highly Recommended"
	TierUnknown             SuggestedTier = ""
)

// Recommendation thresholds. SafetyMinimumScore is the established floor
// below which a vehicle is not recommended regardless of overall score.
const (
	SafetyMinimumScore      = 50.0
	NotRecommendedBelow     = 45.0
	RecommendedMinimum      = 70.0
	HighlyRecommendedAt     = 90.0
	SafetyScoreRecommendMin = 70.0
)

// DeriveRecommendation applies the decision table top-to-bottom and returns
// the first matching tier:
//
//  1. Do Not Purchase: any critical item, or two or more safety-relevant
//     items needing attention.
//  2. Not Recommended: overall score below 45, or safety score below the
//     established minimum.
//  3. Purchase with Caution: exactly one safety item needing attention,
//     overall score in [45,70), general wear on safety items, or two or
//     more non-safety items needing attention.
//  4. Highly Recommended: overall score at least 90 with a healthy safety
//     score. Checked before Recommended so the stronger claim wins.
//  5. Recommended: overall and safety scores both at least 70.
//
// A record with no scorable items yields TierUnknown; anything that falls
// through the table lands on Purchase with Caution as the conservative
// default.
func DeriveRecommendation(card Scorecard) SuggestedTier {
	if card.TotalInspected == 0 {
		return TierUnknown
	}

	safetyAttention := 0
	safetyWear := false
	for _, issue := range card.SafetyIssues {
		if issue.Rating == RatingNeedsAttention && IsSafetySection(issue.SectionKey) {
			safetyAttention++
		}
	}
	for _, cat := range card.Categories {
		if IsSafetySection(cat.Key) && cat.Worst == RatingFair {
			safetyWear = true
		}
	}
	nonSafetyAttention := card.Counts.Attention - safetyAttention

	safety := card.SafetyScore
	if !card.HasSafetyScore {
		// No safety item rated yet: fall back to the overall score rather
		// than treating the vehicle as failing its safety floor.
		safety = card.OverallScore
	}

	switch {
	case card.Counts.Critical > 0 || safetyAttention >= 2:
		return TierDoNotPurchase
	case card.OverallScore < NotRecommendedBelow || safety < SafetyMinimumScore:
		return TierNotRecommended
	case safetyAttention == 1 ||
		(card.OverallScore >= NotRecommendedBelow && card.OverallScore < RecommendedMinimum) ||
		safetyWear ||
		nonSafetyAttention >= 2:
		return TierPurchaseWithCaution
	case card.OverallScore >= HighlyRecommendedAt && safety >= SafetyScoreRecommendMin:
		return TierHighlyRecommended
	case card.OverallScore >= RecommendedMinimum && safety >= SafetyScoreRecommendMin:
		return TierRecommended
	}
	return TierPurchaseWithCaution
}
