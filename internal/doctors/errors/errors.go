package errors

import "errors"

var (
	ErrNotFound = errors.New("availability not found")

	ErrAlreadyExists = errors.New("availability already exists for this doctor on this date")

	ErrSlotUnavailable = errors.New("slot unavailable")

	ErrSlotNotFound = errors.New("slot not found")

	ErrDoctorNotFound = errors.New("doctor not found")

	ErrDoctorExists = errors.New("doctor already exists")

	ErrDepartmentNotFound = errors.New("department not found")

	ErrAppointmentNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid ID format")
)
