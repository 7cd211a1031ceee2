// Package domain contains core business types and interfaces.
//
// This file implements report assembly: merging a booking, its inspection
// record, and the derived scorecard into the display model consumed by the
// customer-facing report viewer.
package domain

// =============================================================================
// Report View Types
// =============================================================================

// ReportCategory is one checklist section prepared for display.
type ReportCategory struct {
	Key   string          `json:"key"`
	Title string          `json:"title"`
	Items []ChecklistItem `json:"items"`
}

// ReportView is the assembled, display-ready report.
type ReportView struct {
	BookingID        string            `json:"bookingId"`
	ReportType       ReportType        `json:"reportType"`
	Status           ReportStatus      `json:"status"`
	GeneralInfo      GeneralInfo       `json:"generalInfo"`
	VehicleInfo      VehicleInfo       `json:"vehicleInfo"`
	VehicleLabel     string            `json:"vehicleLabel"`
	Categories       []ReportCategory  `json:"categories"`
	Scorecard        Scorecard         `json:"scorecard"`
	SuggestedTier    SuggestedTier     `json:"suggestedRecommendation,omitempty"`
	Summary          Summary           `json:"summary"`
	ValueAssessment  ValueAssessment   `json:"valueAssessment"`
	PriceNegotiation *PriceNegotiation `json:"priceNegotiation,omitempty"`
	Photos           []string          `json:"photos"`
	Progress         int               `json:"progress"`
}

// =============================================================================
// Assembly
// =============================================================================

// AssembleReport merges the booking, the inspection record, and the scoring
// engine's output into the report view.
//
// Sections are re-sorted into canonical order (the record's section map is
// unordered); categories with no items are omitted. The suggested tier is
// advisory: the mechanic's manually selected recommendation travels
// unchanged in Summary.
func AssembleReport(booking *Booking, rec *InspectionRecord) *ReportView {
	items := rec.AllItems()
	card := BuildScorecard(items)

	keys := make([]string, 0, len(rec.Sections))
	for key := range rec.Sections {
		keys = append(keys, key)
	}
	sortSectionKeys(keys)

	categories := make([]ReportCategory, 0, len(keys))
	for _, key := range keys {
		section := rec.Sections[key]
		if len(section) == 0 {
			continue
		}
		categories = append(categories, ReportCategory{
			Key:   key,
			Title: SectionTitle(key),
			Items: section,
		})
	}

	view := &ReportView{
		BookingID:       booking.ID.String(),
		ReportType:      rec.ReportType,
		Status:          rec.Status,
		GeneralInfo:     rec.GeneralInfo,
		VehicleInfo:     booking.VehicleInfo,
		VehicleLabel:    booking.VehicleLabel(),
		Categories:      categories,
		Scorecard:       card,
		SuggestedTier:   DeriveRecommendation(card),
		Summary:         rec.Summary,
		ValueAssessment: rec.ValueAssessment,
		Photos:          rec.PhotoURLs(),
		Progress:        ComputeProgress(rec),
	}

	// The negotiation worksheet only renders on full-spectrum reports, and
	// only when the mechanic filled something in.
	if rec.ReportType == ReportTypeFullSpectrum {
		if rec.PriceNegotiation != (PriceNegotiation{}) {
			pn := rec.PriceNegotiation
			view.PriceNegotiation = &pn
		}
	}

	return view
}
