package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingScore(t *testing.T) {
	tests := []struct {
		rating   Rating
		want     int
		scorable bool
	}{
		{RatingExcellent, 100, true},
		{RatingGood, 80, true},
		{RatingFair, 60, true},
		{RatingNeedsAttention, 40, true},
		{RatingCritical, 20, true},
		{RatingNotApplicable, 0, false},
		{RatingUnset, 0, false},
		{Rating("bogus"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.rating.String(), func(t *testing.T) {
			got, ok := tt.rating.Score()
			assert.Equal(t, tt.scorable, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatingScoreStrictlyDecreasing(t *testing.T) {
	ordered := []Rating{RatingExcellent, RatingGood, RatingFair, RatingNeedsAttention, RatingCritical}
	prev := 101
	for _, r := range ordered {
		score, ok := r.Score()
		assert.True(t, ok, "rating %s should be scorable", r)
		assert.Less(t, score, prev, "score(%s) should be strictly less than its predecessor", r)
		prev = score
	}
}

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		label string
		want  Rating
	}{
		{"Excellent", RatingExcellent},
		{"excellent condition", RatingExcellent},
		{"Good", RatingGood},
		{"Fair", RatingFair},
		{"Needs Attention", RatingNeedsAttention},
		{"needs work", RatingNeedsAttention},
		{"ATTENTION REQUIRED", RatingNeedsAttention},
		{"Critical", RatingCritical},
		{"", RatingUnset},
		{"   ", RatingUnset},
		{"unknown label", RatingUnset},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRating(tt.label))
		})
	}
}

func TestWorstRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []Rating
		want    Rating
	}{
		{
			name:    "critical wins over everything",
			ratings: []Rating{RatingGood, RatingCritical, RatingFair},
			want:    RatingCritical,
		},
		{
			name:    "needs-attention over fair",
			ratings: []Rating{RatingFair, RatingNeedsAttention, RatingExcellent},
			want:    RatingNeedsAttention,
		},
		{
			name:    "all excellent",
			ratings: []Rating{RatingExcellent, RatingExcellent},
			want:    RatingExcellent,
		},
		{
			name:    "n/a never selected while scorable ratings exist",
			ratings: []Rating{RatingNotApplicable, RatingGood},
			want:    RatingGood,
		},
		{
			name:    "empty set defaults to fair",
			ratings: nil,
			want:    RatingFair,
		},
		{
			name:    "only unscorable ratings defaults to fair",
			ratings: []Rating{RatingUnset, RatingNotApplicable},
			want:    RatingFair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorstRating(tt.ratings))
		})
	}
}
