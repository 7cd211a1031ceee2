// Package service contains the business logic layer.
//
// This file implements the booking service for managing customer
// inspection appointments.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/DukeRupert/motorcheck/internal/metrics"
	"github.com/DukeRupert/motorcheck/internal/repository"
	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// BookingService defines the interface for booking-related operations.
//
// This interface enables:
// - Mocking in unit tests
// - Clear contract definition for handlers
// - Potential future implementations with different backends
type BookingService interface {
	// Create creates a new booking.
	// Returns domain.EINVALID for validation errors.
	Create(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error)

	// GetByID retrieves a booking by ID.
	// Returns domain.ENOTFOUND if the booking does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// List retrieves a paginated list of bookings, optionally filtered
	// by status. Returns an empty result if no bookings match.
	List(ctx context.Context, params domain.ListBookingsParams) (*domain.ListBookingsResult, error)

	// UpdateStatus updates the status of a booking.
	// Returns domain.ENOTFOUND if the booking does not exist.
	// Returns domain.EINVALID if the status transition is invalid.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)

	// AssignMechanic sets the mechanic performing the inspection.
	// Returns domain.ENOTFOUND if the booking does not exist.
	AssignMechanic(ctx context.Context, id uuid.UUID, mechanic string) (*domain.Booking, error)
}

// =============================================================================
// Implementation
// =============================================================================

// bookingService implements the BookingService interface.
type bookingService struct {
	queries *repository.Queries
	logger  *slog.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	queries *repository.Queries,
	logger *slog.Logger,
) BookingService {
	return &bookingService{
		queries: queries,
		logger:  logger,
	}
}

// =============================================================================
// Create
// =============================================================================

// Create creates a new booking.
func (s *bookingService) Create(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	const op = "booking.create"

	if err := s.validateCreateParams(params); err != nil {
		return nil, err
	}

	row, err := s.queries.CreateBooking(ctx, repository.CreateBookingParams{
		CustomerName:     strings.TrimSpace(params.PersonalInfo.Name),
		CustomerEmail:    strings.TrimSpace(params.PersonalInfo.Email),
		CustomerPhone:    strings.TrimSpace(params.PersonalInfo.Phone),
		VehicleYear:      int32(params.VehicleInfo.Year),
		VehicleMake:      strings.TrimSpace(params.VehicleInfo.Make),
		VehicleModel:     strings.TrimSpace(params.VehicleInfo.Model),
		VehicleVin:       domain.ToNullString(params.VehicleInfo.VIN),
		VehicleMileage:   int32(params.VehicleInfo.Mileage),
		AppointmentDate:  params.AppointmentDetails.Date,
		AppointmentTime:  params.AppointmentDetails.Time,
		ReportType:       string(params.ReportType),
		AssignedMechanic: domain.ToNullString(params.AssignedMechanic),
		Status:           string(domain.BookingStatusPending),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create booking")
	}

	booking := rowToBooking(row)

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"report_type", booking.ReportType,
		"vehicle", booking.VehicleLabel(),
	)
	metrics.BookingsCreated.Inc()

	return booking, nil
}

// validateCreateParams validates booking creation parameters.
func (s *bookingService) validateCreateParams(params domain.CreateBookingParams) error {
	const op = "booking.validate"

	if strings.TrimSpace(params.PersonalInfo.Name) == "" {
		return domain.Invalid(op, "customer name is required")
	}
	if strings.TrimSpace(params.PersonalInfo.Email) == "" {
		return domain.Invalid(op, "customer email is required")
	}
	if strings.TrimSpace(params.PersonalInfo.Phone) == "" {
		return domain.Invalid(op, "customer phone is required")
	}
	if strings.TrimSpace(params.VehicleInfo.Make) == "" {
		return domain.Invalid(op, "vehicle make is required")
	}
	if strings.TrimSpace(params.VehicleInfo.Model) == "" {
		return domain.Invalid(op, "vehicle model is required")
	}
	if _, err := domain.GetSchema(params.ReportType); err != nil {
		return domain.Invalid(op, fmt.Sprintf("unknown report type: %s", params.ReportType))
	}
	if params.AppointmentDetails.Date.IsZero() {
		return domain.Invalid(op, "appointment date is required")
	}

	// Appointments cannot be booked more than one year out.
	oneYearFromNow := time.Now().AddDate(1, 0, 0)
	if params.AppointmentDetails.Date.After(oneYearFromNow) {
		return domain.Invalid(op, "appointment date cannot be more than 1 year in the future")
	}

	return nil
}

// =============================================================================
// GetByID
// =============================================================================

// GetByID retrieves a booking by ID.
func (s *bookingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "booking.get"

	row, err := s.queries.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "booking", id.String())
		}
		return nil, domain.Internal(err, op, "failed to get booking")
	}

	return rowToBooking(row), nil
}

// =============================================================================
// List
// =============================================================================

// List retrieves a paginated list of bookings.
func (s *bookingService) List(ctx context.Context, params domain.ListBookingsParams) (*domain.ListBookingsResult, error) {
	const op = "booking.list"

	statusFilter := ""
	if params.Status != nil {
		if !params.Status.IsValid() {
			return nil, domain.Invalid(op, fmt.Sprintf("invalid status filter: %s", *params.Status))
		}
		statusFilter = string(*params.Status)
	}

	total, err := s.queries.CountBookings(ctx, statusFilter)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to count bookings")
	}

	rows, err := s.queries.ListBookings(ctx, repository.ListBookingsParams{
		Status: statusFilter,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list bookings")
	}

	bookings := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, *rowToBooking(row))
	}

	return &domain.ListBookingsResult{
		Bookings: bookings,
		Total:    total,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}, nil
}

// =============================================================================
// UpdateStatus
// =============================================================================

// UpdateStatus updates the status of a booking.
func (s *bookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	const op = "booking.update_status"

	if !status.IsValid() {
		return nil, domain.Invalid(op, fmt.Sprintf("invalid status: %s", status))
	}

	existing, err := s.queries.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "booking", id.String())
		}
		return nil, domain.Internal(err, op, "failed to get booking")
	}

	currentStatus := domain.BookingStatus(existing.Status)
	if !currentStatus.CanTransitionTo(status) {
		return nil, domain.Invalid(op, fmt.Sprintf("cannot transition from %s to %s", currentStatus, status))
	}

	row, err := s.queries.UpdateBookingStatus(ctx, repository.UpdateBookingStatusParams{
		ID:     id,
		Status: string(status),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update booking status")
	}

	s.logger.Info("booking status updated",
		"booking_id", id,
		"old_status", currentStatus,
		"new_status", status,
	)

	return rowToBooking(row), nil
}

// =============================================================================
// AssignMechanic
// =============================================================================

// AssignMechanic sets the mechanic performing the inspection.
func (s *bookingService) AssignMechanic(ctx context.Context, id uuid.UUID, mechanic string) (*domain.Booking, error) {
	const op = "booking.assign_mechanic"

	mechanic = strings.TrimSpace(mechanic)
	if mechanic == "" {
		return nil, domain.Invalid(op, "mechanic name is required")
	}

	row, err := s.queries.UpdateBookingMechanic(ctx, repository.UpdateBookingMechanicParams{
		ID:               id,
		AssignedMechanic: domain.ToNullString(mechanic),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "booking", id.String())
		}
		return nil, domain.Internal(err, op, "failed to assign mechanic")
	}

	s.logger.Info("mechanic assigned",
		"booking_id", id,
		"mechanic", mechanic,
	)

	return rowToBooking(row), nil
}

// =============================================================================
// Helper Functions
// =============================================================================

// rowToBooking converts a repository booking row to a domain Booking.
func rowToBooking(row repository.Booking) *domain.Booking {
	return &domain.Booking{
		ID: row.ID,
		PersonalInfo: domain.PersonalInfo{
			Name:  row.CustomerName,
			Email: row.CustomerEmail,
			Phone: row.CustomerPhone,
		},
		VehicleInfo: domain.VehicleInfo{
			Year:    int(row.VehicleYear),
			Make:    row.VehicleMake,
			Model:   row.VehicleModel,
			VIN:     domain.NullStringValue(row.VehicleVin),
			Mileage: int(row.VehicleMileage),
		},
		AppointmentDetails: domain.AppointmentDetails{
			Date: row.AppointmentDate,
			Time: row.AppointmentTime,
		},
		ReportType:       domain.ReportType(row.ReportType),
		AssignedMechanic: domain.NullStringValue(row.AssignedMechanic),
		Status:           domain.BookingStatus(row.Status),
		CreatedAt:        domain.NullTimeValue(row.CreatedAt),
		UpdatedAt:        domain.NullTimeValue(row.UpdatedAt),
	}
}
