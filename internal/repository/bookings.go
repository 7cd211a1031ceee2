package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const bookingColumns = `
	id, customer_name, customer_email, customer_phone,
	vehicle_year, vehicle_make, vehicle_model, vehicle_vin, vehicle_mileage,
	appointment_date, appointment_time, report_type, assigned_mechanic,
	status, created_at, updated_at
`

func scanBooking(row interface{ Scan(...interface{}) error }) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.VehicleYear,
		&b.VehicleMake,
		&b.VehicleModel,
		&b.VehicleVin,
		&b.VehicleMileage,
		&b.AppointmentDate,
		&b.AppointmentTime,
		&b.ReportType,
		&b.AssignedMechanic,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

const createBooking = `
INSERT INTO bookings (
	customer_name, customer_email, customer_phone,
	vehicle_year, vehicle_make, vehicle_model, vehicle_vin, vehicle_mileage,
	appointment_date, appointment_time, report_type, assigned_mechanic, status
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING` + bookingColumns

// CreateBookingParams holds the inputs for CreateBooking.
type CreateBookingParams struct {
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
}

// CreateBooking inserts a new booking and returns the created row.
func (q *Queries) CreateBooking(ctx context.Context, arg CreateBookingParams) (Booking, error) {
	row := q.db.QueryRowContext(ctx, createBooking,
		arg.CustomerName,
		arg.CustomerEmail,
		arg.CustomerPhone,
		arg.VehicleYear,
		arg.VehicleMake,
		arg.VehicleModel,
		arg.VehicleVin,
		arg.VehicleMileage,
		arg.AppointmentDate,
		arg.AppointmentTime,
		arg.ReportType,
		arg.AssignedMechanic,
		arg.Status,
	)
	return scanBooking(row)
}

const getBookingByID = `
SELECT` + bookingColumns + `
FROM bookings
WHERE id = $1
`

// GetBookingByID retrieves a booking by ID.
func (q *Queries) GetBookingByID(ctx context.Context, id uuid.UUID) (Booking, error) {
	return scanBooking(q.db.QueryRowContext(ctx, getBookingByID, id))
}

const listBookings = `
SELECT` + bookingColumns + `
FROM bookings
WHERE ($1::text = '' OR status = $1)
ORDER BY appointment_date DESC, created_at DESC
LIMIT $2 OFFSET $3
`

// ListBookingsParams holds the inputs for ListBookings. An empty Status
// matches every booking.
type ListBookingsParams struct {
	Status string
	Limit  int32
	Offset int32
}

// ListBookings returns a page of bookings, newest appointments first.
func (q *Queries) ListBookings(ctx context.Context, arg ListBookingsParams) ([]Booking, error) {
	rows, err := q.db.QueryContext(ctx, listBookings, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countBookings = `
SELECT COUNT(*)
FROM bookings
WHERE ($1::text = '' OR status = $1)
`

// CountBookings returns the number of bookings matching the status filter.
func (q *Queries) CountBookings(ctx context.Context, status string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countBookings, status)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateBookingStatus = `
UPDATE bookings
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING` + bookingColumns

// UpdateBookingStatusParams holds the inputs for UpdateBookingStatus.
type UpdateBookingStatusParams struct {
	ID     uuid.UUID
	Status string
}

// UpdateBookingStatus sets the booking status and returns the updated row.
func (q *Queries) UpdateBookingStatus(ctx context.Context, arg UpdateBookingStatusParams) (Booking, error) {
	return scanBooking(q.db.QueryRowContext(ctx, updateBookingStatus, arg.ID, arg.Status))
}

const updateBookingMechanic = `
UPDATE bookings
SET assigned_mechanic = $2, updated_at = NOW()
WHERE id = $1
RETURNING` + bookingColumns

// UpdateBookingMechanicParams holds the inputs for UpdateBookingMechanic.
type UpdateBookingMechanicParams struct {
	ID               uuid.UUID
	AssignedMechanic sql.NullString
}

// UpdateBookingMechanic assigns a mechanic and returns the updated row.
func (q *Queries) UpdateBookingMechanic(ctx context.Context, arg UpdateBookingMechanicParams) (Booking, error) {
	return scanBooking(q.db.QueryRowContext(ctx, updateBookingMechanic, arg.ID, arg.AssignedMechanic))
}
