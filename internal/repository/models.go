package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User is a row in the users table.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         string
	PasswordHash string
	CreatedAt    sql.NullTime
	UpdatedAt    sql.NullTime
}

// Booking is a row in the bookings table.
type Booking struct {
	ID               uuid.UUID
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	VehicleYear      int32
	VehicleMake      string
	VehicleModel     string
	VehicleVin       sql.NullString
	VehicleMileage   int32
	AppointmentDate  time.Time
	AppointmentTime  string
	ReportType       string
	AssignedMechanic sql.NullString
	Status           string
	CreatedAt        sql.NullTime
	UpdatedAt        sql.NullTime
}

// Report is a row in the reports table. The checklist document is stored
// as JSONB columns; photos is a fixed-length text[] of URL slots.
type Report struct {
	ID               uuid.UUID
	BookingID        uuid.UUID
	ReportType       string
	GeneralInfo      json.RawMessage
	Sections         json.RawMessage
	Summary          json.RawMessage
	ValueAssessment  json.RawMessage
	PriceNegotiation json.RawMessage
	Photos           []string
	Status           string
	CreatedAt        sql.NullTime
	UpdatedAt        sql.NullTime
}

// Job is a row in the jobs table used by the background worker.
type Job struct {
	ID           uuid.UUID
	JobType      string
	Payload      json.RawMessage
	Status       string
	Priority     int32
	Attempts     int32
	MaxAttempts  int32
	ScheduledAt  time.Time
	StartedAt    sql.NullTime
	CompletedAt  sql.NullTime
	ErrorMessage sql.NullString
	CreatedAt    sql.NullTime
	UpdatedAt    sql.NullTime
}
