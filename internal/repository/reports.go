package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const reportColumns = `
	id, booking_id, report_type, general_info, sections, summary,
	value_assessment, price_negotiation, photos, status, created_at, updated_at
`

func scanReport(row interface{ Scan(...interface{}) error }) (Report, error) {
	var r Report
	err := row.Scan(
		&r.ID,
		&r.BookingID,
		&r.ReportType,
		&r.GeneralInfo,
		&r.Sections,
		&r.Summary,
		&r.ValueAssessment,
		&r.PriceNegotiation,
		pq.Array(&r.Photos),
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

const createReport = `
INSERT INTO reports (
	booking_id, report_type, general_info, sections, summary,
	value_assessment, price_negotiation, photos, status
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING` + reportColumns

// CreateReportParams holds the inputs for CreateReport.
type CreateReportParams struct {
	BookingID        uuid.UUID
	ReportType       string
	GeneralInfo      json.RawMessage
	Sections         json.RawMessage
	Summary          json.RawMessage
	ValueAssessment  json.RawMessage
	PriceNegotiation json.RawMessage
	Photos           []string
	Status           string
}

// CreateReport inserts a new report row. The (booking_id, report_type)
// pair is unique; a second insert for the same pair fails.
func (q *Queries) CreateReport(ctx context.Context, arg CreateReportParams) (Report, error) {
	row := q.db.QueryRowContext(ctx, createReport,
		arg.BookingID,
		arg.ReportType,
		arg.GeneralInfo,
		arg.Sections,
		arg.Summary,
		arg.ValueAssessment,
		arg.PriceNegotiation,
		pq.Array(arg.Photos),
		arg.Status,
	)
	return scanReport(row)
}

const getReportByBookingAndType = `
SELECT` + reportColumns + `
FROM reports
WHERE booking_id = $1 AND report_type = $2
`

// GetReportByBookingAndTypeParams holds the inputs for GetReportByBookingAndType.
type GetReportByBookingAndTypeParams struct {
	BookingID  uuid.UUID
	ReportType string
}

// GetReportByBookingAndType retrieves the report for one booking and variant.
func (q *Queries) GetReportByBookingAndType(ctx context.Context, arg GetReportByBookingAndTypeParams) (Report, error) {
	return scanReport(q.db.QueryRowContext(ctx, getReportByBookingAndType, arg.BookingID, arg.ReportType))
}

const listReportsByBooking = `
SELECT` + reportColumns + `
FROM reports
WHERE booking_id = $1
ORDER BY created_at
`

// ListReportsByBooking returns every report variant saved for a booking.
func (q *Queries) ListReportsByBooking(ctx context.Context, bookingID uuid.UUID) ([]Report, error) {
	rows, err := q.db.QueryContext(ctx, listReportsByBooking, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateReport = `
UPDATE reports
SET general_info = $2,
	sections = $3,
	summary = $4,
	value_assessment = $5,
	price_negotiation = $6,
	photos = $7,
	status = $8,
	updated_at = NOW()
WHERE id = $1
RETURNING` + reportColumns

// UpdateReportParams holds the inputs for UpdateReport.
type UpdateReportParams struct {
	ID               uuid.UUID
	GeneralInfo      json.RawMessage
	Sections         json.RawMessage
	Summary          json.RawMessage
	ValueAssessment  json.RawMessage
	PriceNegotiation json.RawMessage
	Photos           []string
	Status           string
}

// UpdateReport replaces the report document and returns the updated row.
func (q *Queries) UpdateReport(ctx context.Context, arg UpdateReportParams) (Report, error) {
	row := q.db.QueryRowContext(ctx, updateReport,
		arg.ID,
		arg.GeneralInfo,
		arg.Sections,
		arg.Summary,
		arg.ValueAssessment,
		arg.PriceNegotiation,
		pq.Array(arg.Photos),
		arg.Status,
	)
	return scanReport(row)
}

const updateReportPhotos = `
UPDATE reports
SET photos = $2, updated_at = NOW()
WHERE id = $1
RETURNING` + reportColumns

// UpdateReportPhotosParams holds the inputs for UpdateReportPhotos.
type UpdateReportPhotosParams struct {
	ID     uuid.UUID
	Photos []string
}

// UpdateReportPhotos replaces only the photo slot array. Photo uploads and
// deletions go through this narrower update so they cannot clobber
// checklist edits made in parallel.
func (q *Queries) UpdateReportPhotos(ctx context.Context, arg UpdateReportPhotosParams) (Report, error) {
	return scanReport(q.db.QueryRowContext(ctx, updateReportPhotos, arg.ID, pq.Array(arg.Photos)))
}
