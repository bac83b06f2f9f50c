package model

import "time"

type Doctor struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name           string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Specialization string    `json:"specialization" bson:"specialization" validate:"required,min=2,max=100"`
	DepartmentName string    `json:"department_name" bson:"department_name" validate:"required,min=2,max=100"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// DoctorHistory aggregates everything recorded against one doctor:
// their appointments plus the consult notes held by the consult
// service.
type DoctorHistory struct {
	Doctor       *Doctor        `json:"doctor"`
	Appointments []*Appointment `json:"appointments"`
	Consults     []*Consult     `json:"consults"`
}

// Department keeps a roster of the doctor IDs registered under it.
type Department struct {
	ID      string   `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name    string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Doctors []string `json:"doctors" bson:"doctors" validate:"omitempty,dive,mongodb"`
}
