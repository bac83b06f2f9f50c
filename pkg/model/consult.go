package model

import "time"

const (
	ConsultFollowup  = "followup"
	ConsultCompleted = "completed"
	ConsultCancelled = "cancelled"
)

// Consult is the record a doctor writes up after an appointment.
type Consult struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	AppointmentID string    `json:"appointment_id" bson:"appointment_id" validate:"required,mongodb"`
	DoctorID      string    `json:"doctor_id" bson:"doctor_id" validate:"required,mongodb"`
	PatientID     string    `json:"patient_id" bson:"patient_id" validate:"required,mongodb"`
	Medicines     []string  `json:"medicines" bson:"medicines" validate:"omitempty,dive,min=1"`
	Suggestions   []string  `json:"suggestions" bson:"suggestions" validate:"required,min=1,dive,min=1"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=followup completed cancelled"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
