// Package events publishes appointment lifecycle events so other
// systems (notifications, analytics) can react to bookings without
// coupling to the doctor service's database.
package events

import (
	"context"
	"time"

	"medibook/pkg/model"
)

const (
	TypeAppointmentBooked    = "appointment.booked"
	TypeAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent is the payload published for every booking state
// change. SlotID is empty for booked events created before the slot
// identifier is known to the caller.
type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time,omitempty"`
	SlotID        string    `json:"slot_id,omitempty"`
	PatientID     string    `json:"patient_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher is what the booking service depends on; tests and
// broker-less deployments use NopPublisher.
type Publisher interface {
	Publish(ctx context.Context, event AppointmentEvent) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AppointmentEvent) error { return nil }
func (NopPublisher) Close() error                                    { return nil }

func BookedEvent(a *model.Appointment) AppointmentEvent {
	return AppointmentEvent{
		Type:          TypeAppointmentBooked,
		AppointmentID: a.ID,
		DoctorID:      a.DoctorID,
		Date:          a.Date,
		Time:          a.Time,
		PatientID:     a.PatientID,
		OccurredAt:    time.Now().UTC(),
	}
}

func CancelledEvent(a *model.Appointment, slotID string) AppointmentEvent {
	return AppointmentEvent{
		Type:          TypeAppointmentCancelled,
		AppointmentID: a.ID,
		DoctorID:      a.DoctorID,
		Date:          a.Date,
		Time:          a.Time,
		SlotID:        slotID,
		PatientID:     a.PatientID,
		OccurredAt:    time.Now().UTC(),
	}
}
