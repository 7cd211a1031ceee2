package domain

import "math"

// requiredGeneralInfoFields lists the six general-info fields that count
// toward progress and validation, in fixed form order. The order is part of
// the contract: validation errors are emitted in exactly this order.
var requiredGeneralInfoFields = []struct {
	Field string // stable path for structured errors
	Label string // display label used in legacy error strings
}{
	{"generalInfo.clientName", "Client Name"},
	{"generalInfo.email", "Email"},
	{"generalInfo.phone", "Phone"},
	{"generalInfo.appointmentDate", "Appointment Date"},
	{"generalInfo.inspectionTime", "Inspection Time"},
	{"generalInfo.inspectorName", "Inspector Name"},
}

// generalInfoValues returns the record's general-info values in the same
// order as requiredGeneralInfoFields. The appointment date renders as ""
// when unset so blank detection works uniformly.
func generalInfoValues(g GeneralInfo) []string {
	date := ""
	if !g.AppointmentDate.IsZero() {
		date = g.AppointmentDate.Format("2006-01-02")
	}
	return []string{
		g.ClientName,
		g.Email,
		g.Phone,
		date,
		g.InspectionTime,
		g.InspectorName,
	}
}

// ComputeProgress derives a 0-100 completion percentage for the record.
//
// The denominator is the six required general-info fields plus one per
// checklist item in the schema's sections; the numerator counts non-blank
// general-info fields and items with a non-empty rating. Sections present
// on the record but absent from the schema still count (the mechanic rated
// them), but non-checklist data such as the price-negotiation worksheet is
// excluded by construction.
func ComputeProgress(rec *InspectionRecord) int {
	total := len(requiredGeneralInfoFields)
	filled := 0
	for _, v := range generalInfoValues(rec.GeneralInfo) {
		if !isBlank(v) {
			filled++
		}
	}

	for _, items := range rec.Sections {
		total += len(items)
		filled += items.RatedCount()
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(filled) / float64(total)))
}
