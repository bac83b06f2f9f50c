package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	doctorserrors "medibook/internal/doctors/errors"
	"medibook/pkg/config"
	"medibook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AppointmentCollection = "Appointments"

type mongoAppointmentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id string) error
	FindByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error)
	FindActiveBySlot(ctx context.Context, doctorID, date, slotTime string) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

func NewMongoAppointmentRepository(cfg *config.Config) AppointmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentRepository{
		cfg:        cfg,
		collection: db.Collection(AppointmentCollection),
	}
}

func (r *mongoAppointmentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	// IDs are stored as ObjectID hex strings so documents round-trip
	// into the string-typed models without a custom decoder.
	appt.ID = primitive.NewObjectID().Hex()
	appt.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if result.DeletedCount == 0 {
		return doctorserrors.ErrAppointmentNotFound
	}
	return nil
}

func (r *mongoAppointmentRepository) FindByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	return r.findAll(ctx, bson.M{"patient_id": patientID})
}

func (r *mongoAppointmentRepository) FindByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error) {
	return r.findAll(ctx, bson.M{"doctor_id": doctorID})
}

func (r *mongoAppointmentRepository) findAll(ctx context.Context, filter bson.M) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

func (r *mongoAppointmentRepository) FindActiveBySlot(ctx context.Context, doctorID, date, slotTime string) (*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"doctor_id": doctorID,
		"date":      date,
		"time":      slotTime,
		"status":    model.AppointmentActive,
	}

	var appt model.Appointment
	err := r.collection.FindOne(ctx, filter).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, doctorserrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if result.MatchedCount == 0 {
		return doctorserrors.ErrAppointmentNotFound
	}
	return nil
}
