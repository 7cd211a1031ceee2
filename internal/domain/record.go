// Package domain contains core business types and interfaces.
//
// This file defines the InspectionRecord aggregate: the mutable document a
// mechanic fills in during an inspection, built from a checklist schema and
// persisted per (booking, report type).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxPhotoSlots is the fixed number of photo positions on a report.
// Each slot holds a URL or the empty string; slots upload independently.
const MaxPhotoSlots = 12

// =============================================================================
// Report Status
// =============================================================================

// ReportStatus represents the lifecycle state of an inspection record.
type ReportStatus string

const (
	// ReportStatusDraft indicates the record is being filled in.
	ReportStatusDraft ReportStatus = "draft"

	// ReportStatusComplete indicates the record has been submitted.
	// Complete is terminal for non-admin editors.
	ReportStatusComplete ReportStatus = "complete"

	// ReportStatusCancelled indicates the record was abandoned.
	ReportStatusCancelled ReportStatus = "cancelled"
)

// String returns the string representation of the status.
func (s ReportStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusDraft, ReportStatusComplete, ReportStatusCancelled:
		return true
	}
	return false
}

// =============================================================================
// Record Building Blocks
// =============================================================================

// ChecklistItem is one inspectable component within a section.
// Item is fixed by the schema; rating and notes are mechanic input.
type ChecklistItem struct {
	Item   string `json:"item"`
	Rating Rating `json:"rating"`
	Notes  string `json:"notes"`
}

// InspectionSection is the ordered, fixed-length item list for one section.
type InspectionSection []ChecklistItem

// RatedCount returns the number of items with a non-empty rating.
func (s InspectionSection) RatedCount() int {
	n := 0
	for _, item := range s {
		if item.Rating != RatingUnset {
			n++
		}
	}
	return n
}

// GeneralInfo holds the appointment details persisted with the record.
// All six fields are required; they are sourced from the booking and
// shown read-only to the mechanic.
type GeneralInfo struct {
	ClientName      string    `json:"clientName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	AppointmentDate time.Time `json:"appointmentDate"`
	InspectionTime  string    `json:"inspectionTime"`
	InspectorName   string    `json:"inspectorName"`
}

// RecommendationChoice is the mechanic's manually selected purchase
// recommendation. Distinct from the derived SuggestedTier, which is
// advisory only.
type RecommendationChoice string

const (
	RecommendationPurchase     RecommendationChoice = "purchase-recommended"
	RecommendationWithCaution  RecommendationChoice = "purchase-with-caution"
	RecommendationNegotiate    RecommendationChoice = "negotiate-price"
	RecommendationMajorRepairs RecommendationChoice = "major-repairs-needed"
	RecommendationAgainst      RecommendationChoice = "not-recommended"
)

// IsValid returns true if the choice is a recognized value or unset.
func (c RecommendationChoice) IsValid() bool {
	switch c {
	case RecommendationPurchase, RecommendationWithCaution, RecommendationNegotiate,
		RecommendationMajorRepairs, RecommendationAgainst, "":
		return true
	}
	return false
}

// Summary holds the mechanic's overall write-up.
type Summary struct {
	OverallCondition    Rating               `json:"overallCondition"`
	InspectionSummary   string               `json:"inspectionSummary"`
	Recommendations     RecommendationChoice `json:"recommendations"`
	RecommendationNotes string               `json:"recommendationNotes"`
}

// ValueRating is the mechanic's market-value assessment.
type ValueRating string

const (
	ValueExcellent   ValueRating = "excellent-value"
	ValueGood        ValueRating = "good-value"
	ValueFair        ValueRating = "fair-value"
	ValueOverpriced  ValueRating = "overpriced"
	ValueUndervalued ValueRating = "undervalued"
	ValueAtMarket    ValueRating = "at-market"
)

// IsValid returns true if the value rating is recognized or unset.
func (v ValueRating) IsValid() bool {
	switch v {
	case ValueExcellent, ValueGood, ValueFair, ValueOverpriced,
		ValueUndervalued, ValueAtMarket, "":
		return true
	}
	return false
}

// ValueAssessment holds the value rating plus free-text justification.
type ValueAssessment struct {
	Assessment ValueRating `json:"assessment"`
	Notes      string      `json:"notes"`
}

// PriceNegotiation holds the negotiation worksheet collected only by the
// full-spectrum variant. It is not a checklist section, so it never
// contributes to progress or scoring.
type PriceNegotiation struct {
	EstimatedRepairCost string `json:"estimatedRepairCost"`
	NegotiationPoints   string `json:"negotiationPoints"`
}

// =============================================================================
// Inspection Record
// =============================================================================

// InspectionRecord is the aggregate root for one inspection document.
//
// A booking has at most one record per report type. The section map keys
// and item lists are fully determined by the report type's schema.
type InspectionRecord struct {
	ID               uuid.UUID                    // Unique identifier (zero until persisted)
	BookingID        uuid.UUID                    // Owning booking
	ReportType       ReportType                   // Schema variant
	GeneralInfo      GeneralInfo                  // Appointment details
	Sections         map[string]InspectionSection // sectionKey -> items
	Summary          Summary                      // Overall write-up
	ValueAssessment  ValueAssessment              // Market-value assessment
	PriceNegotiation PriceNegotiation             // Full-spectrum only
	Photos           []string                     // MaxPhotoSlots URL slots ("" = empty)
	Status           ReportStatus                 // draft / complete / cancelled
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsEditableBy reports whether the given role may still modify the record.
// Once submitted, only admins may continue editing.
func (r *InspectionRecord) IsEditableBy(role Role) bool {
	if r.Status == ReportStatusComplete {
		return role == RoleAdmin
	}
	return r.Status != ReportStatusCancelled
}

// PhotoURLs returns the non-empty photo slots in order.
func (r *InspectionRecord) PhotoURLs() []string {
	urls := make([]string, 0, len(r.Photos))
	for _, u := range r.Photos {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// AllItems returns every checklist item across all sections, tagged with
// its section key, in canonical section order. Scoring and the safety
// issue list consume this flattened view.
func (r *InspectionRecord) AllItems() []SectionItem {
	keys := make([]string, 0, len(r.Sections))
	for key := range r.Sections {
		keys = append(keys, key)
	}
	sortSectionKeys(keys)

	var items []SectionItem
	for _, key := range keys {
		for _, item := range r.Sections[key] {
			items = append(items, SectionItem{SectionKey: key, ChecklistItem: item})
		}
	}
	return items
}

// SectionItem is a checklist item paired with its owning section key.
type SectionItem struct {
	SectionKey string
	ChecklistItem
}

// =============================================================================
// Record Initialization
// =============================================================================

// NewRecord builds an empty inspection record for the booking and report
// type: one unrated ChecklistItem per schema component, general info copied
// from the booking, and all twelve photo slots blank.
func NewRecord(booking *Booking, reportType ReportType) (*InspectionRecord, error) {
	schema, err := GetSchema(reportType)
	if err != nil {
		return nil, err
	}

	sections := make(map[string]InspectionSection, len(schema))
	for _, def := range schema {
		items := make(InspectionSection, len(def.Components))
		for i, name := range def.Components {
			items[i] = ChecklistItem{Item: name}
		}
		sections[def.Key] = items
	}

	return &InspectionRecord{
		BookingID:  booking.ID,
		ReportType: reportType,
		GeneralInfo: GeneralInfo{
			ClientName:      booking.PersonalInfo.Name,
			Email:           booking.PersonalInfo.Email,
			Phone:           booking.PersonalInfo.Phone,
			AppointmentDate: booking.AppointmentDetails.Date,
			InspectionTime:  booking.AppointmentDetails.Time,
			InspectorName:   booking.AssignedMechanic,
		},
		Sections: sections,
		Photos:   make([]string, MaxPhotoSlots),
		Status:   ReportStatusDraft,
	}, nil
}

// =============================================================================
// Report Service Parameters
// =============================================================================

// SaveReportParams contains the checklist document submitted by the
// mechanic's form, for either a draft save or a final submission.
type SaveReportParams struct {
	BookingID        uuid.UUID
	ReportType       ReportType
	Editor           Role
	GeneralInfo      GeneralInfo
	Sections         map[string]InspectionSection
	Summary          Summary
	ValueAssessment  ValueAssessment
	PriceNegotiation PriceNegotiation
}

// Hydrate overlays a persisted record onto a freshly initialized one.
//
// The merge is deliberately asymmetric: a persisted section replaces the
// schema default only when it is non-empty. A schema change that adds a new
// section therefore surfaces the new empty items without discarding data
// already entered in other sections.
func Hydrate(booking *Booking, reportType ReportType, persisted *InspectionRecord) (*InspectionRecord, error) {
	rec, err := NewRecord(booking, reportType)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return rec, nil
	}

	rec.ID = persisted.ID
	rec.Status = persisted.Status
	rec.CreatedAt = persisted.CreatedAt
	rec.UpdatedAt = persisted.UpdatedAt

	for key, items := range persisted.Sections {
		if len(items) > 0 {
			rec.Sections[key] = items
		}
	}

	rec.Summary = persisted.Summary
	rec.ValueAssessment = persisted.ValueAssessment
	rec.PriceNegotiation = persisted.PriceNegotiation

	// Photos keep their slot positions; pad or clip to the fixed slot count.
	photos := make([]string, MaxPhotoSlots)
	copy(photos, persisted.Photos)
	rec.Photos = photos

	return rec, nil
}
