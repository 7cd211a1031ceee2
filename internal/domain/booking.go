// Package domain contains core business types and interfaces.
//
// This file defines the Booking domain type. A booking is the customer's
// appointment; every inspection record is created from, and keyed on, one
// booking.
package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Booking Status
// =============================================================================

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	// BookingStatusPending indicates a new booking awaiting confirmation.
	BookingStatusPending BookingStatus = "pending"

	// BookingStatusConfirmed indicates the appointment has been confirmed
	// and a mechanic assigned.
	BookingStatusConfirmed BookingStatus = "confirmed"

	// BookingStatusCompleted indicates the inspection took place.
	BookingStatusCompleted BookingStatus = "completed"

	// BookingStatusCancelled indicates the booking was cancelled.
	BookingStatusCancelled BookingStatus = "cancelled"
)

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the booking can transition to the target status.
//
// Valid transitions:
// - pending -> confirmed | cancelled
// - confirmed -> completed | cancelled
// - completed and cancelled are terminal
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusCompleted || target == BookingStatusCancelled
	}
	return false
}

// =============================================================================
// Booking Domain Type
// =============================================================================

// PersonalInfo holds the customer's contact details.
type PersonalInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// VehicleInfo holds the vehicle identification details for the booking.
type VehicleInfo struct {
	Year    int    `json:"year"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	VIN     string `json:"vin,omitempty"`
	Mileage int    `json:"mileage,omitempty"`
}

// AppointmentDetails holds the scheduled inspection slot.
type AppointmentDetails struct {
	Date time.Time `json:"date"`
	Time string    `json:"time"`
}

// Booking represents a customer appointment for a vehicle inspection.
type Booking struct {
	ID                 uuid.UUID          // Unique identifier
	PersonalInfo       PersonalInfo       // Customer contact details
	VehicleInfo        VehicleInfo        // Vehicle being inspected
	AppointmentDetails AppointmentDetails // Scheduled slot
	ReportType         ReportType         // Requested inspection variant
	AssignedMechanic   string             // Name of the mechanic performing the inspection
	Status             BookingStatus      // Current status
	CreatedAt          time.Time          // When the booking was created
	UpdatedAt          time.Time          // When the booking was last modified
}

// VehicleLabel returns a short display label like "2020 Honda Civic".
func (b *Booking) VehicleLabel() string {
	v := b.VehicleInfo
	label := strings.TrimSpace(v.Make + " " + v.Model)
	if v.Year > 0 {
		return strconv.Itoa(v.Year) + " " + label
	}
	return label
}

// =============================================================================
// Booking Service Parameters
// =============================================================================

// CreateBookingParams contains validated parameters for creating a booking.
type CreateBookingParams struct {
	PersonalInfo       PersonalInfo
	VehicleInfo        VehicleInfo
	AppointmentDetails AppointmentDetails
	ReportType         ReportType
	AssignedMechanic   string
}

// ListBookingsParams contains parameters for listing bookings.
type ListBookingsParams struct {
	Status *BookingStatus // Optional status filter
	Limit  int32          // Max results to return
	Offset int32          // Number of results to skip
}

// ListBookingsResult contains the result of a paginated booking list query.
type ListBookingsResult struct {
	Bookings []Booking // The booking results
	Total    int64     // Total number of bookings (for pagination)
	Limit    int32     // Number of results requested
	Offset   int32     // Number of results skipped
}

// HasMore returns true if there are more results available.
func (r *ListBookingsResult) HasMore() bool {
	return int64(r.Offset+r.Limit) < r.Total
}
