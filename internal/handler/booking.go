// Package handler contains HTTP handlers for the MotorCheck API.
//
// This file implements the booking endpoints: customer appointment
// creation and the staff-facing booking management routes.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/DukeRupert/motorcheck/internal/service"
)

// =============================================================================
// Handler Configuration
// =============================================================================

// Pagination defaults for the booking list.
const (
	defaultBookingPageSize = 20
	maxBookingPageSize     = 100
)

// BookingHandler handles booking-related HTTP requests.
//
// Routes handled:
// - POST  /bookings               -> Create (public)
// - GET   /bookings               -> List (admin)
// - GET   /bookings/{id}          -> Get
// - PATCH /bookings/{id}/status   -> UpdateStatus (admin)
// - PATCH /bookings/{id}/mechanic -> AssignMechanic (admin)
type BookingHandler struct {
	bookingService service.BookingService
	logger         *slog.Logger
}

// NewBookingHandler creates a new BookingHandler with the required dependencies.
func NewBookingHandler(bookingService service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// =============================================================================
// Request / Response Types
// =============================================================================

type createBookingRequest struct {
	PersonalInfo       domain.PersonalInfo       `json:"personalInfo"`
	VehicleInfo        domain.VehicleInfo        `json:"vehicleInfo"`
	AppointmentDetails domain.AppointmentDetails `json:"appointmentDetails"`
	ReportType         string                    `json:"reportType"`
	AssignedMechanic   string                    `json:"assignedMechanic"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type assignMechanicRequest struct {
	Mechanic string `json:"mechanic"`
}

type bookingResponse struct {
	ID                 string                    `json:"id"`
	PersonalInfo       domain.PersonalInfo       `json:"personalInfo"`
	VehicleInfo        domain.VehicleInfo        `json:"vehicleInfo"`
	AppointmentDetails domain.AppointmentDetails `json:"appointmentDetails"`
	ReportType         domain.ReportType         `json:"reportType"`
	AssignedMechanic   string                    `json:"assignedMechanic,omitempty"`
	Status             domain.BookingStatus      `json:"status"`
	CreatedAt          time.Time                 `json:"createdAt"`
	UpdatedAt          time.Time                 `json:"updatedAt"`
}

type bookingListResponse struct {
	Bookings []bookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Limit    int32             `json:"limit"`
	Offset   int32             `json:"offset"`
	HasMore  bool              `json:"hasMore"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:                 b.ID.String(),
		PersonalInfo:       b.PersonalInfo,
		VehicleInfo:        b.VehicleInfo,
		AppointmentDetails: b.AppointmentDetails,
		ReportType:         b.ReportType,
		AssignedMechanic:   b.AssignedMechanic,
		Status:             b.Status,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// =============================================================================
// Create
// =============================================================================

// Create handles POST /bookings.
// Customers book inspection appointments through this endpoint.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	booking, err := h.bookingService.Create(r.Context(), domain.CreateBookingParams{
		PersonalInfo:       req.PersonalInfo,
		VehicleInfo:        req.VehicleInfo,
		AppointmentDetails: req.AppointmentDetails,
		ReportType:         domain.ReportType(req.ReportType),
		AssignedMechanic:   req.AssignedMechanic,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

// =============================================================================
// List
// =============================================================================

// List handles GET /bookings.
// Supports status filtering and limit/offset pagination.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	params := domain.ListBookingsParams{
		Limit:  defaultBookingPageSize,
		Offset: 0,
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		if !status.IsValid() {
			ErrorResponse(w, r, h.logger, domain.Invalid("booking.list", "Invalid status filter"))
			return
		}
		params.Status = &status
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxBookingPageSize {
			ErrorResponse(w, r, h.logger, domain.Invalid("booking.list", "Invalid limit parameter"))
			return
		}
		params.Limit = int32(limit)
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			ErrorResponse(w, r, h.logger, domain.Invalid("booking.list", "Invalid offset parameter"))
			return
		}
		params.Offset = int32(offset)
	}

	result, err := h.bookingService.List(r.Context(), params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	bookings := make([]bookingResponse, 0, len(result.Bookings))
	for i := range result.Bookings {
		bookings = append(bookings, toBookingResponse(&result.Bookings[i]))
	}

	writeJSON(w, http.StatusOK, bookingListResponse{
		Bookings: bookings,
		Total:    result.Total,
		Limit:    result.Limit,
		Offset:   result.Offset,
		HasMore:  result.HasMore(),
	})
}

// =============================================================================
// Get
// =============================================================================

// Get handles GET /bookings/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	booking, err := h.bookingService.GetByID(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// =============================================================================
// UpdateStatus
// =============================================================================

// UpdateStatus handles PATCH /bookings/{id}/status.
// Transition rules are enforced by the service layer.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	booking, err := h.bookingService.UpdateStatus(r.Context(), id, domain.BookingStatus(req.Status))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

// =============================================================================
// AssignMechanic
// =============================================================================

// AssignMechanic handles PATCH /bookings/{id}/mechanic.
func (h *BookingHandler) AssignMechanic(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var req assignMechanicRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	booking, err := h.bookingService.AssignMechanic(r.Context(), id, req.Mechanic)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}
