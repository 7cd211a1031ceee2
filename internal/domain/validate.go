package domain

import "strings"

// isBlank reports whether a value is empty or whitespace-only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SubmitPolicy configures which checks run on submission beyond the
// always-required general-info fields.
//
// Whether individual checklist ratings should block submission is an open
// product question; the historical behavior allows submitting with items
// left unrated, so RequireItemRatings defaults to false.
type SubmitPolicy struct {
	RequireItemRatings bool
}

// ValidateForSave checks the record for a draft save.
//
// Only the six required general-info fields are checked. The returned list
// is ordered and stable: blank fields produce errors in fixed form order,
// with the legacy "<Label> is required" message strings.
func ValidateForSave(rec *InspectionRecord) []FieldError {
	var errs []FieldError
	values := generalInfoValues(rec.GeneralInfo)
	for i, f := range requiredGeneralInfoFields {
		if isBlank(values[i]) {
			errs = append(errs, FieldError{
				Field:   f.Field,
				Message: f.Label + " is required",
			})
		}
	}
	return errs
}

// ValidateForSubmit checks the record for final submission.
//
// Submission requires everything a draft save requires, plus a completed
// summary and value assessment. Checklist item ratings are only required
// when the policy says so.
func ValidateForSubmit(rec *InspectionRecord, policy SubmitPolicy) []FieldError {
	errs := ValidateForSave(rec)

	if rec.Summary.OverallCondition == RatingUnset {
		errs = append(errs, FieldError{
			Field:   "summary.overallCondition",
			Message: "Overall Condition is required",
		})
	}
	if isBlank(rec.Summary.InspectionSummary) {
		errs = append(errs, FieldError{
			Field:   "summary.inspectionSummary",
			Message: "Inspection Summary is required",
		})
	}
	if rec.Summary.Recommendations == "" {
		errs = append(errs, FieldError{
			Field:   "summary.recommendations",
			Message: "Recommendation is required",
		})
	}
	if rec.ValueAssessment.Assessment == "" {
		errs = append(errs, FieldError{
			Field:   "valueAssessment.assessment",
			Message: "Value Assessment is required",
		})
	}

	if policy.RequireItemRatings {
		for _, item := range rec.AllItems() {
			if item.Rating == RatingUnset {
				errs = append(errs, FieldError{
					Field:   "sections." + item.SectionKey,
					Message: SectionTitle(item.SectionKey) + ": " + item.Item + " is not rated",
				})
			}
		}
	}

	return errs
}

// ValidateEnums rejects unrecognized enum values anywhere on the record.
// Well-formed input never fails; this guards against hand-crafted payloads.
func ValidateEnums(rec *InspectionRecord) []FieldError {
	var errs []FieldError

	for _, item := range rec.AllItems() {
		if !item.Rating.IsValid() {
			errs = append(errs, FieldError{
				Field:   "sections." + item.SectionKey,
				Message: "Invalid rating for " + item.Item,
			})
		}
	}
	if !rec.Summary.OverallCondition.IsValid() {
		errs = append(errs, FieldError{
			Field:   "summary.overallCondition",
			Message: "Invalid overall condition rating",
		})
	}
	if !rec.Summary.Recommendations.IsValid() {
		errs = append(errs, FieldError{
			Field:   "summary.recommendations",
			Message: "Invalid recommendation value",
		})
	}
	if !rec.ValueAssessment.Assessment.IsValid() {
		errs = append(errs, FieldError{
			Field:   "valueAssessment.assessment",
			Message: "Invalid value assessment",
		})
	}

	return errs
}
