package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleReport(t *testing.T) {
	booking := testBooking()
	rec, err := NewRecord(booking, ReportTypeStandard)
	require.NoError(t, err)

	// Body condition: three good, one fair, one left unrated.
	body := rec.Sections[SectionBodyCondition]
	require.Len(t, body, 5)
	for i := range body {
		body[i].Rating = RatingGood
	}
	body[2].Rating = RatingFair
	body[4].Rating = RatingUnset
	rec.Sections[SectionBodyCondition] = body

	rec.Summary = Summary{
		OverallCondition:  RatingGood,
		InspectionSummary: "Clean vehicle, minor cosmetic wear.",
		Recommendations:   RecommendationPurchase,
	}
	rec.Photos[0] = "https://cdn.example.com/front.jpg"
	rec.Photos[5] = "https://cdn.example.com/engine.jpg"

	view := AssembleReport(booking, rec)

	assert.Equal(t, booking.ID.String(), view.BookingID)
	assert.Equal(t, ReportTypeStandard, view.ReportType)
	assert.Equal(t, "2020 Honda Civic", view.VehicleLabel)
	assert.Equal(t, rec.GeneralInfo, view.GeneralInfo)
	assert.Equal(t, rec.Summary, view.Summary)

	// Every schema section renders as a category, canonical order.
	schema, err := GetSchema(ReportTypeStandard)
	require.NoError(t, err)
	require.Len(t, view.Categories, len(schema))
	assert.Equal(t, SectionBodyCondition, view.Categories[0].Key)
	assert.Equal(t, "Body Condition", view.Categories[0].Title)
	for i := 1; i < len(view.Categories); i++ {
		assert.Less(t,
			SectionOrderIndex(view.Categories[i-1].Key),
			SectionOrderIndex(view.Categories[i].Key))
	}

	// Scorecard reflects only the rated items: (80+80+60+80)/4 = 75.
	require.Len(t, view.Scorecard.Categories, 1)
	bodyScore := view.Scorecard.Categories[0]
	assert.Equal(t, SectionBodyCondition, bodyScore.Key)
	assert.InDelta(t, 75.0, bodyScore.Score, 0.001)
	assert.Equal(t, RatingFair, bodyScore.Worst)
	assert.Equal(t, 4, bodyScore.ItemCount)
	assert.Equal(t, 4, view.Scorecard.TotalInspected)

	// Only the filled photo slots appear, in slot order.
	assert.Equal(t, []string{
		"https://cdn.example.com/front.jpg",
		"https://cdn.example.com/engine.jpg",
	}, view.Photos)

	assert.Equal(t, ComputeProgress(rec), view.Progress)

	// Standard reports never carry the negotiation worksheet.
	assert.Nil(t, view.PriceNegotiation)
}

func TestAssembleReportSuggestedTierIsAdvisory(t *testing.T) {
	booking := testBooking()
	rec, err := NewRecord(booking, ReportTypeRoutine)
	require.NoError(t, err)

	for key, items := range rec.Sections {
		for i := range items {
			items[i].Rating = RatingExcellent
		}
		rec.Sections[key] = items
	}
	// The mechanic disagrees with the derived tier; both travel.
	rec.Summary.Recommendations = RecommendationNegotiate

	view := AssembleReport(booking, rec)
	assert.Equal(t, TierHighlyRecommended, view.SuggestedTier)
	assert.Equal(t, RecommendationNegotiate, view.Summary.Recommendations)
}

func TestAssembleReportOmitsEmptyCategories(t *testing.T) {
	booking := testBooking()
	rec, err := NewRecord(booking, ReportTypeStandard)
	require.NoError(t, err)
	rec.Sections[SectionBrakes] = InspectionSection{}

	view := AssembleReport(booking, rec)
	for _, cat := range view.Categories {
		assert.NotEqual(t, SectionBrakes, cat.Key)
		assert.NotEmpty(t, cat.Items)
	}
}

func TestAssembleReportPriceNegotiation(t *testing.T) {
	booking := testBooking()

	rec, err := NewRecord(booking, ReportTypeFullSpectrum)
	require.NoError(t, err)

	// Full spectrum with an empty worksheet: omitted.
	view := AssembleReport(booking, rec)
	assert.Nil(t, view.PriceNegotiation)

	rec.PriceNegotiation = PriceNegotiation{
		EstimatedRepairCost: "$1,200",
		NegotiationPoints:   "Rear brake pads are near the wear limit.",
	}
	view = AssembleReport(booking, rec)
	require.NotNil(t, view.PriceNegotiation)
	assert.Equal(t, "$1,200", view.PriceNegotiation.EstimatedRepairCost)
}
