// Package handler contains HTTP handlers for the MotorCheck API.
//
// This file implements the inspection report endpoints: loading and saving
// checklist documents, final submission, the assembled customer view, and
// photo slot management.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/DukeRupert/motorcheck/internal/auth"
	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/DukeRupert/motorcheck/internal/service"
)

// =============================================================================
// Handler Configuration
// =============================================================================

// maxPhotoUploadMemory bounds the in-memory portion of multipart parsing.
const maxPhotoUploadMemory = 32 << 20 // 32 MB

// ReportHandler handles inspection report HTTP requests.
//
// Routes handled:
// - GET    /reports/booking/{id}                -> Get
// - POST   /reports/booking/{id}                -> Save
// - PATCH  /reports/booking/{id}/submit         -> Submit
// - GET    /reports/booking/{id}/view           -> View
// - POST   /reports/booking/{id}/photos         -> UploadPhoto
// - DELETE /reports/booking/{id}/photos/{slot}  -> DeletePhoto
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new ReportHandler with the required dependencies.
func NewReportHandler(reportService service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// =============================================================================
// Request / Response Types
// =============================================================================

type saveReportRequest struct {
	ReportType       string                              `json:"reportType"`
	GeneralInfo      domain.GeneralInfo                  `json:"generalInfo"`
	Sections         map[string]domain.InspectionSection `json:"sections"`
	Summary          domain.Summary                      `json:"summary"`
	ValueAssessment  domain.ValueAssessment              `json:"valueAssessment"`
	PriceNegotiation domain.PriceNegotiation             `json:"priceNegotiation"`
}

type reportResponse struct {
	ID               string                              `json:"id"`
	BookingID        string                              `json:"bookingId"`
	ReportType       domain.ReportType                   `json:"reportType"`
	GeneralInfo      domain.GeneralInfo                  `json:"generalInfo"`
	Sections         map[string]domain.InspectionSection `json:"sections"`
	Summary          domain.Summary                      `json:"summary"`
	ValueAssessment  domain.ValueAssessment              `json:"valueAssessment"`
	PriceNegotiation *domain.PriceNegotiation            `json:"priceNegotiation,omitempty"`
	Photos           []string                            `json:"photos"`
	Status           domain.ReportStatus                 `json:"status"`
	Progress         int                                 `json:"progress"`
	CreatedAt        time.Time                           `json:"createdAt"`
	UpdatedAt        time.Time                           `json:"updatedAt"`
}

// reportEnvelope wraps the record for the load endpoint.
type reportEnvelope struct {
	Report reportResponse `json:"report"`
}

// photoSlotsResponse returns the full slot array so clients keep their
// slot-to-URL mapping after an upload or delete.
type photoSlotsResponse struct {
	Photos   []string `json:"photos"`
	Progress int      `json:"progress"`
}

func toReportResponse(rec *domain.InspectionRecord) reportResponse {
	resp := reportResponse{
		ID:              rec.ID.String(),
		BookingID:       rec.BookingID.String(),
		ReportType:      rec.ReportType,
		GeneralInfo:     rec.GeneralInfo,
		Sections:        rec.Sections,
		Summary:         rec.Summary,
		ValueAssessment: rec.ValueAssessment,
		Photos:          rec.Photos,
		Status:          rec.Status,
		Progress:        domain.ComputeProgress(rec),
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if rec.ReportType == domain.ReportTypeFullSpectrum && rec.PriceNegotiation != (domain.PriceNegotiation{}) {
		pn := rec.PriceNegotiation
		resp.PriceNegotiation = &pn
	}
	return resp
}

// editorRole resolves the authenticated user's role.
// Protected routes always run behind RequireUser, so a missing user is a
// wiring bug rather than a client error.
func (h *ReportHandler) editorRole(w http.ResponseWriter, r *http.Request) (domain.Role, bool) {
	user := auth.GetUser(r.Context())
	if user == nil {
		UnauthorizedResponse(w, r, h.logger)
		return "", false
	}
	return user.Role, true
}

// =============================================================================
// Get
// =============================================================================

// Get handles GET /reports/booking/{id}?reportType=.
// Loads the checklist document for the booking, creating an empty draft if
// none has been saved yet.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	reportType, err := queryReportType(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	rec, err := h.reportService.GetOrCreate(r.Context(), bookingID, reportType)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, reportEnvelope{Report: toReportResponse(rec)})
}

// =============================================================================
// Save
// =============================================================================

// Save handles POST /reports/booking/{id}.
// Persists a draft; required-field failures return the flat error list.
func (h *ReportHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.persist(w, r, h.reportService.Save)
}

// =============================================================================
// Submit
// =============================================================================

// Submit handles PATCH /reports/booking/{id}/submit.
// Runs the full validation set and marks the report complete.
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.persist(w, r, h.reportService.Submit)
}

// persist implements the shared decode-and-store flow for Save and Submit.
func (h *ReportHandler) persist(
	w http.ResponseWriter,
	r *http.Request,
	store func(ctx context.Context, params domain.SaveReportParams) (*domain.InspectionRecord, error),
) {
	bookingID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	editor, ok := h.editorRole(w, r)
	if !ok {
		return
	}

	var req saveReportRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	reportType := domain.ReportType(req.ReportType)
	if req.ReportType != "" && !reportType.IsValid() {
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.ESCHEMA, "report.save", "Unknown report type %q", req.ReportType))
		return
	}

	rec, err := store(r.Context(), domain.SaveReportParams{
		BookingID:        bookingID,
		ReportType:       reportType,
		Editor:           editor,
		GeneralInfo:      req.GeneralInfo,
		Sections:         req.Sections,
		Summary:          req.Summary,
		ValueAssessment:  req.ValueAssessment,
		PriceNegotiation: req.PriceNegotiation,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, reportEnvelope{Report: toReportResponse(rec)})
}

// =============================================================================
// View
// =============================================================================

// View handles GET /reports/booking/{id}/view?reportType=.
// Returns the assembled report: canonical categories, scorecard, suggested
// recommendation, and photos.
func (h *ReportHandler) View(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	reportType, err := queryReportType(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	view, err := h.reportService.View(r.Context(), bookingID, reportType)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// =============================================================================
// UploadPhoto
// =============================================================================

// UploadPhoto handles POST /reports/booking/{id}/photos.
// Expects a multipart form with a "photo" file and a "slot" index.
func (h *ReportHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	editor, ok := h.editorRole(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadMemory); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("report.attach_photo", "Invalid multipart form"))
		return
	}

	slot, err := strconv.Atoi(r.FormValue("slot"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.EPHOTO, "report.attach_photo", "Missing or invalid slot index"))
		return
	}

	reportType := domain.ReportType(r.FormValue("reportType"))
	if reportType != "" && !reportType.IsValid() {
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.ESCHEMA, "report.attach_photo", "Unknown report type %q", reportType))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("report.attach_photo", "Missing photo file"))
		return
	}
	defer file.Close()

	rec, err := h.reportService.AttachPhoto(r.Context(), file, header, bookingID, reportType, slot, editor)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, photoSlotsResponse{
		Photos:   rec.Photos,
		Progress: domain.ComputeProgress(rec),
	})
}

// =============================================================================
// DeletePhoto
// =============================================================================

// DeletePhoto handles DELETE /reports/booking/{id}/photos/{slot}.
func (h *ReportHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	editor, ok := h.editorRole(w, r)
	if !ok {
		return
	}

	slot, err := strconv.Atoi(r.PathValue("slot"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.EPHOTO, "report.remove_photo", "Missing or invalid slot index"))
		return
	}

	reportType, err := queryReportType(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	rec, err := h.reportService.RemovePhoto(r.Context(), bookingID, reportType, slot, editor)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, photoSlotsResponse{
		Photos:   rec.Photos,
		Progress: domain.ComputeProgress(rec),
	})
}
