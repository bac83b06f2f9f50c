package model

import "time"

// Slot is a fixed bookable time unit within a doctor's daily
// availability. Time is immutable once generated; IsBooked and
// PatientID always change together: PatientID is set exactly when
// IsBooked is true.
type Slot struct {
	ID        string `json:"id" bson:"_id"`
	Time      string `json:"time" bson:"time" validate:"required"`
	IsBooked  bool   `json:"is_booked" bson:"is_booked"`
	PatientID string `json:"patient_id,omitempty" bson:"patient_id,omitempty"`
}

// Availability holds one doctor's slots for one calendar date.
// Uniqueness on (doctor_id, date) is enforced by the storage layer.
type Availability struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	DoctorID  string    `json:"doctor_id" bson:"doctor_id" validate:"required,mongodb"`
	Date      string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Slots     []Slot    `json:"slots" bson:"slots"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// FindSlotByTime returns the first open slot matching the given time,
// or nil when the time is unknown or already booked.
func (a *Availability) FindSlotByTime(t string) *Slot {
	for i := range a.Slots {
		if a.Slots[i].Time == t && !a.Slots[i].IsBooked {
			return &a.Slots[i]
		}
	}
	return nil
}

// FindSlotByID returns the slot with the given identifier, or nil.
func (a *Availability) FindSlotByID(id string) *Slot {
	for i := range a.Slots {
		if a.Slots[i].ID == id {
			return &a.Slots[i]
		}
	}
	return nil
}
