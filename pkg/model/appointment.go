package model

import "time"

const (
	AppointmentActive    = "active"
	AppointmentCancelled = "cancelled"
)

// Appointment is the booking record created when a patient reserves a
// slot. Cancellation transitions Status instead of deleting the record,
// keeping it reconciled with the availability side.
type Appointment struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	DoctorID  string    `json:"doctor_id" bson:"doctor_id" validate:"required,mongodb"`
	Date      string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Time      string    `json:"time" bson:"time" validate:"required"`
	PatientID string    `json:"patient_id" bson:"patient_id" validate:"required"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=active cancelled"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the wire shape of a booking attempt.
type BookingRequest struct {
	DoctorID  string `json:"doctorId" validate:"required,mongodb"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required"`
	PatientID string `json:"patientId" validate:"required"`
}

// CheckInRequest opens a doctor's availability for a date.
type CheckInRequest struct {
	DoctorID string `json:"doctorId" validate:"required,mongodb"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
}
