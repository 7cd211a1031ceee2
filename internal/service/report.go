// Package service contains the business logic layer.
//
// This file implements the report service: loading and persisting
// inspection checklist documents, draft saves, final submission, photo
// slot management, and assembly of the customer-facing report view.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/DukeRupert/motorcheck/internal/metrics"
	"github.com/DukeRupert/motorcheck/internal/repository"
	"github.com/DukeRupert/motorcheck/internal/storage"
	"github.com/DukeRupert/motorcheck/internal/worker"
	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ReportService defines the interface for inspection report operations.
type ReportService interface {
	// GetOrCreate loads the report for a booking and variant, creating an
	// empty draft row if none exists yet. The returned record is hydrated
	// against the current checklist schema.
	// Returns domain.ENOTFOUND if the booking does not exist.
	// Returns domain.ESCHEMA for an unknown report type.
	GetOrCreate(ctx context.Context, bookingID uuid.UUID, reportType domain.ReportType) (*domain.InspectionRecord, error)

	// Save persists a draft of the report.
	// Returns *domain.ValidationError when required fields are blank.
	// Returns domain.EFORBIDDEN if the editor may no longer modify the record.
	Save(ctx context.Context, params domain.SaveReportParams) (*domain.InspectionRecord, error)

	// Submit persists the report and marks it complete. Submission runs the
	// full validation set; on success the owning booking is moved to
	// completed when its status allows.
	// Returns *domain.ValidationError when the submission checks fail.
	Submit(ctx context.Context, params domain.SaveReportParams) (*domain.InspectionRecord, error)

	// View assembles the customer-facing report for a booking and variant.
	// A booking with no saved report yields a view of the empty checklist.
	View(ctx context.Context, bookingID uuid.UUID, reportType domain.ReportType) (*domain.ReportView, error)

	// AttachPhoto uploads a photo into one of the fixed slots and schedules
	// thumbnail generation. Returns the updated record.
	// Returns domain.EPHOTO for an out-of-range slot, domain.ETOOLARGE for
	// oversized files, and domain.EINVALID for unsupported content types.
	AttachPhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader, bookingID uuid.UUID, reportType domain.ReportType, slot int, editor domain.Role) (*domain.InspectionRecord, error)

	// RemovePhoto clears a photo slot and deletes the stored object and its
	// thumbnail. Returns the updated record.
	RemovePhoto(ctx context.Context, bookingID uuid.UUID, reportType domain.ReportType, slot int, editor domain.Role) (*domain.InspectionRecord, error)
}

// =============================================================================
// Implementation
// =============================================================================

// reportService implements the ReportService interface.
type reportService struct {
	queries *repository.Queries
	storage storage.Storage
	policy  domain.SubmitPolicy
	logger  *slog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	queries *repository.Queries,
	store storage.Storage,
	policy domain.SubmitPolicy,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		queries: queries,
		storage: store,
		policy:  policy,
		logger:  logger,
	}
}

// =============================================================================
// GetOrCreate
// =============================================================================

// GetOrCreate loads the report for a booking, creating a draft if missing.
func (s *reportService) GetOrCreate(ctx context.Context, bookingID uuid.UUID, reportType domain.ReportType) (*domain.InspectionRecord, error) {
	const op = "report.get_or_create"

	booking, err := s.loadBooking(ctx, op, bookingID)
	if err != nil {
		return nil, err
	}

	// An unspecified variant falls back to what the customer booked.
	if reportType == "" {
		reportType = booking.ReportType
	}

	persisted, found, err := s.loadPersisted(ctx, op, bookingID, reportType)
	if err != nil {
		return nil, err
	}

	rec, err := domain.Hydrate(booking, reportType, persisted)
	if err != nil {
		return nil, err
	}

	if !found {
		row, err := s.queries.CreateReport(ctx, s.createParams(rec))
		if err != nil {
			return nil, domain.Internal(err, op, "failed to create report")
		}
		rec.ID = row.ID
		rec.CreatedAt = domain.NullTimeValue(row.CreatedAt)
		rec.UpdatedAt = domain.NullTimeValue(row.UpdatedAt)

		s.logger.Info("report created",
			"report_id", rec.ID,
			"booking_id", bookingID,
			"report_type", reportType,
		)
	}

	return rec, nil
}

// =============================================================================
// Save
// =============================================================================

// Save persists a draft of the report.
func (s *reportService) Save(ctx context.Context, params domain.SaveReportParams) (*domain.InspectionRecord, error) {
	const op = "report.save"

	rec, err := s.applyEdit(ctx, op, params)
	if err != nil {
		return nil, err
	}

	if errs := domain.ValidateForSave(rec); len(errs) > 0 {
		return nil, domain.NewValidationError(op, errs)
	}

	if err := s.persist(ctx, op, rec); err != nil {
		return nil, err
	}

	s.logger.Info("report draft saved",
		"report_id", rec.ID,
		"booking_id", params.BookingID,
		"progress", domain.ComputeProgress(rec),
	)

	return rec, nil
}

// =============================================================================
// Submit
// =============================================================================

// Submit persists the report and marks it complete.
func (s *reportService) Submit(ctx context.Context, params domain.SaveReportParams) (*domain.InspectionRecord, error) {
	const op = "report.submit"

	rec, err := s.applyEdit(ctx, op, params)
	if err != nil {
		return nil, err
	}

	if errs := domain.ValidateForSubmit(rec, s.policy); len(errs) > 0 {
		return nil, domain.NewValidationError(op, errs)
	}

	rec.Status = domain.ReportStatusComplete
	if err := s.persist(ctx, op, rec); err != nil {
		return nil, err
	}

	// Submission closes out the appointment. The booking may already be in
	// a terminal state when an admin re-submits; that is not an error.
	booking, err := s.queries.GetBookingByID(ctx, params.BookingID)
	if err == nil && domain.BookingStatus(booking.Status).CanTransitionTo(domain.BookingStatusCompleted) {
		_, err = s.queries.UpdateBookingStatus(ctx, repository.UpdateBookingStatusParams{
			ID:     params.BookingID,
			Status: string(domain.BookingStatusCompleted),
		})
		if err != nil {
			s.logger.Error("failed to complete booking after submission",
				"booking_id", params.BookingID, "error", err)
		}
	}

	s.logger.Info("report submitted",
		"report_id", rec.ID,
		"booking_id", params.BookingID,
		"report_type", rec.ReportType,
	)
	metrics.ReportsSubmitted.WithLabelValues(string(rec.ReportType)).Inc()

	return rec, nil
}

// =============================================================================
// View
// =============================================================================

// View assembles the customer-facing report.
func (s *reportService) View(ctx context.Context, bookingID uuid.UUID, reportType domain.ReportType) (*domain.ReportView, error) {
	const op = "report.view"

	booking, err := s.loadBooking(ctx, op, bookingID)
	if err != nil {
		return nil, err
	}

	if reportType == "" {
		reportType = booking.ReportType
	}

	persisted, _, err := s.loadPersisted(ctx, op, bookingID, reportType)
	if err != nil {
		return nil, err
	}

	rec, err := domain.Hydrate(booking, reportType, persisted)
	if err != nil {
		return nil, err
	}

	metrics.ReportViews.WithLabelValues(string(reportType)).Inc()

	return domain.AssembleReport(booking, rec), nil
}

// =============================================================================
// AttachPhoto
// =============================================================================

// AttachPhoto uploads a photo into one of the fixed slots.
func (s *reportService) AttachPhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader, bookingID uuid.UUID, reportType domain.ReportType, slot int, editor domain.Role) (*domain.InspectionRecord, error) {
	const op = "report.attach_photo"

	if err := domain.ValidatePhotoSlot(slot); err != nil {
		return nil, err
	}
	if err := domain.ValidatePhotoSize(header.Size); err != nil {
		return nil, err
	}

	rec, err := s.GetOrCreate(ctx, bookingID, reportType)
	if err != nil {
		return nil, err
	}
	if !rec.IsEditableBy(editor) {
		return nil, domain.Forbidden(op, "report is no longer editable")
	}

	// Detect content type from the first 512 bytes.
	headerBytes := make([]byte, 512)
	n, err := file.Read(headerBytes)
	if err != nil && err != io.EOF {
		return nil, domain.Internal(err, op, "failed to read file header")
	}
	contentType := http.DetectContentType(headerBytes[:n])
	if !domain.IsValidPhotoContentType(contentType) {
		return nil, domain.Invalid(op, fmt.Sprintf("Unsupported photo type: %s. Only JPEG and PNG are supported.", contentType))
	}

	if seeker, ok := file.(io.Seeker); ok {
		if _, err := seeker.Seek(0, 0); err != nil {
			return nil, domain.Internal(err, op, "failed to reset file pointer")
		}
	}

	fileData, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to read file data")
	}

	key := storage.PhotoKey(bookingID, header.Filename)
	if err := s.storage.Put(ctx, key, bytes.NewReader(fileData), storage.PutOptions{
		ContentType: contentType,
		MaxSize:     domain.MaxPhotoSize,
		Overwrite:   false,
		Public:      true,
	}); err != nil {
		return nil, domain.Internal(err, op, "failed to upload photo")
	}

	url, err := s.storage.URL(ctx, key, 0)
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, domain.Internal(err, op, "failed to resolve photo URL")
	}

	// Replacing an occupied slot deletes the previous object.
	if prev := rec.Photos[slot]; prev != "" {
		s.deleteStoredPhoto(ctx, prev)
	}
	rec.Photos[slot] = url

	row, err := s.queries.UpdateReportPhotos(ctx, repository.UpdateReportPhotosParams{
		ID:     rec.ID,
		Photos: rec.Photos,
	})
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, domain.Internal(err, op, "failed to update photo slots")
	}
	rec.UpdatedAt = domain.NullTimeValue(row.UpdatedAt)

	if _, err := worker.EnqueueProcessPhoto(ctx, s.queries, bookingID, key); err != nil {
		// Thumbnail generation is best effort; the original is already live.
		s.logger.Error("failed to enqueue thumbnail job", "key", key, "error", err)
	}

	s.logger.Info("photo attached",
		"booking_id", bookingID,
		"report_type", reportType,
		"slot", slot,
		"size_bytes", header.Size,
	)
	metrics.PhotosUploaded.Inc()

	return rec, nil
}

// =============================================================================
// RemovePhoto
// =============================================================================

// RemovePhoto clears a photo slot.
func (s *reportService) RemovePhoto(ctx context.Context, bookingID uuid.UUID, reportType domain.ReportType, slot int, editor domain.Role) (*domain.InspectionRecord, error) {
	const op = "report.remove_photo"

	if err := domain.ValidatePhotoSlot(slot); err != nil {
		return nil, err
	}

	rec, err := s.GetOrCreate(ctx, bookingID, reportType)
	if err != nil {
		return nil, err
	}
	if !rec.IsEditableBy(editor) {
		return nil, domain.Forbidden(op, "report is no longer editable")
	}

	url := rec.Photos[slot]
	if url == "" {
		return nil, domain.Errorf(domain.EPHOTO, op, "Photo slot %d is already empty", slot)
	}

	rec.Photos[slot] = ""
	row, err := s.queries.UpdateReportPhotos(ctx, repository.UpdateReportPhotosParams{
		ID:     rec.ID,
		Photos: rec.Photos,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update photo slots")
	}
	rec.UpdatedAt = domain.NullTimeValue(row.UpdatedAt)

	s.deleteStoredPhoto(ctx, url)

	s.logger.Info("photo removed",
		"booking_id", bookingID,
		"report_type", reportType,
		"slot", slot,
	)

	return rec, nil
}

// =============================================================================
// Helper Functions
// =============================================================================

// loadBooking fetches the booking or translates missing rows to ENOTFOUND.
func (s *reportService) loadBooking(ctx context.Context, op string, bookingID uuid.UUID) (*domain.Booking, error) {
	row, err := s.queries.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "booking", bookingID.String())
		}
		return nil, domain.Internal(err, op, "failed to get booking")
	}
	return rowToBooking(row), nil
}

// loadPersisted fetches the stored report, if any, as a domain record.
func (s *reportService) loadPersisted(ctx context.Context, op string, bookingID uuid.UUID, reportType domain.ReportType) (*domain.InspectionRecord, bool, error) {
	row, err := s.queries.GetReportByBookingAndType(ctx, repository.GetReportByBookingAndTypeParams{
		BookingID:  bookingID,
		ReportType: string(reportType),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, domain.Internal(err, op, "failed to get report")
	}

	rec, err := rowToRecord(row)
	if err != nil {
		return nil, false, domain.Internal(err, op, "failed to decode report")
	}
	return rec, true, nil
}

// applyEdit loads the current record, checks editability, and overlays the
// submitted document onto it.
func (s *reportService) applyEdit(ctx context.Context, op string, params domain.SaveReportParams) (*domain.InspectionRecord, error) {
	rec, err := s.GetOrCreate(ctx, params.BookingID, params.ReportType)
	if err != nil {
		return nil, err
	}
	if !rec.IsEditableBy(params.Editor) {
		return nil, domain.Forbidden(op, "report is no longer editable")
	}

	// General info defaults from the booking; an explicit payload wins so
	// admins can correct appointment details.
	if params.GeneralInfo != (domain.GeneralInfo{}) {
		rec.GeneralInfo = params.GeneralInfo
	}
	for key, items := range params.Sections {
		if len(items) > 0 {
			rec.Sections[key] = items
		}
	}
	rec.Summary = params.Summary
	rec.ValueAssessment = params.ValueAssessment
	rec.PriceNegotiation = params.PriceNegotiation

	if errs := domain.ValidateEnums(rec); len(errs) > 0 {
		return nil, domain.NewValidationError(op, errs)
	}

	return rec, nil
}

// persist writes the record back to its existing row.
func (s *reportService) persist(ctx context.Context, op string, rec *domain.InspectionRecord) error {
	generalInfo, sections, summary, valueAssessment, priceNegotiation, err := marshalRecord(rec)
	if err != nil {
		return domain.Internal(err, op, "failed to encode report")
	}

	row, err := s.queries.UpdateReport(ctx, repository.UpdateReportParams{
		ID:               rec.ID,
		GeneralInfo:      generalInfo,
		Sections:         sections,
		Summary:          summary,
		ValueAssessment:  valueAssessment,
		PriceNegotiation: priceNegotiation,
		Photos:           rec.Photos,
		Status:           string(rec.Status),
	})
	if err != nil {
		return domain.Internal(err, op, "failed to update report")
	}
	rec.UpdatedAt = domain.NullTimeValue(row.UpdatedAt)
	return nil
}

// createParams builds the insert parameters for a fresh record.
func (s *reportService) createParams(rec *domain.InspectionRecord) repository.CreateReportParams {
	generalInfo, sections, summary, valueAssessment, priceNegotiation, _ := marshalRecord(rec)
	return repository.CreateReportParams{
		BookingID:        rec.BookingID,
		ReportType:       string(rec.ReportType),
		GeneralInfo:      generalInfo,
		Sections:         sections,
		Summary:          summary,
		ValueAssessment:  valueAssessment,
		PriceNegotiation: priceNegotiation,
		Photos:           rec.Photos,
		Status:           string(rec.Status),
	}
}

// deleteStoredPhoto removes a photo object and its thumbnail, logging but
// not failing on storage errors.
func (s *reportService) deleteStoredPhoto(ctx context.Context, url string) {
	key := storage.KeyFromURL(url)
	if key == "" {
		s.logger.Warn("could not derive storage key from photo URL", "url", url)
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Error("failed to delete photo from storage", "key", key, "error", err)
	}
	if err := s.storage.Delete(ctx, storage.ThumbnailKeyFor(key)); err != nil {
		s.logger.Error("failed to delete thumbnail from storage", "key", key, "error", err)
	}
}

// marshalRecord encodes the record's document columns.
func marshalRecord(rec *domain.InspectionRecord) (generalInfo, sections, summary, valueAssessment, priceNegotiation json.RawMessage, err error) {
	if generalInfo, err = json.Marshal(rec.GeneralInfo); err != nil {
		return
	}
	if sections, err = json.Marshal(rec.Sections); err != nil {
		return
	}
	if summary, err = json.Marshal(rec.Summary); err != nil {
		return
	}
	if valueAssessment, err = json.Marshal(rec.ValueAssessment); err != nil {
		return
	}
	priceNegotiation, err = json.Marshal(rec.PriceNegotiation)
	return
}

// rowToRecord decodes a repository report row into a domain record.
func rowToRecord(row repository.Report) (*domain.InspectionRecord, error) {
	rec := &domain.InspectionRecord{
		ID:         row.ID,
		BookingID:  row.BookingID,
		ReportType: domain.ReportType(row.ReportType),
		Sections:   make(map[string]domain.InspectionSection),
		Photos:     row.Photos,
		Status:     domain.ReportStatus(row.Status),
		CreatedAt:  domain.NullTimeValue(row.CreatedAt),
		UpdatedAt:  domain.NullTimeValue(row.UpdatedAt),
	}

	if len(row.GeneralInfo) > 0 {
		if err := json.Unmarshal(row.GeneralInfo, &rec.GeneralInfo); err != nil {
			return nil, fmt.Errorf("decode general info: %w", err)
		}
	}
	if len(row.Sections) > 0 {
		if err := json.Unmarshal(row.Sections, &rec.Sections); err != nil {
			return nil, fmt.Errorf("decode sections: %w", err)
		}
	}
	if len(row.Summary) > 0 {
		if err := json.Unmarshal(row.Summary, &rec.Summary); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
	}
	if len(row.ValueAssessment) > 0 {
		if err := json.Unmarshal(row.ValueAssessment, &rec.ValueAssessment); err != nil {
			return nil, fmt.Errorf("decode value assessment: %w", err)
		}
	}
	if len(row.PriceNegotiation) > 0 {
		if err := json.Unmarshal(row.PriceNegotiation, &rec.PriceNegotiation); err != nil {
			return nil, fmt.Errorf("decode price negotiation: %w", err)
		}
	}

	return rec, nil
}
