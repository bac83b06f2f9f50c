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

const AvailabilityCollection = "Availabilities"

type mongoAvailabilityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type AvailabilityRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, av *model.Availability) error
	FindByDoctorAndDate(ctx context.Context, doctorID, date string) (*model.Availability, error)
	BookSlot(ctx context.Context, doctorID, date, slotTime, patientID string) error
	ReleaseSlot(ctx context.Context, doctorID, date, slotID string) error
}

func NewMongoAvailabilityRepository(cfg *config.Config) AvailabilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityRepository{
		cfg:        cfg,
		collection: db.Collection(AvailabilityCollection),
	}
}

func (r *mongoAvailabilityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureIndexes creates the unique compound index backing the
// one-record-per-(doctor, date) invariant.
func (r *mongoAvailabilityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "doctor_id", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create availability index: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepository) Create(ctx context.Context, av *model.Availability) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	av.ID = primitive.NewObjectID().Hex()
	av.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, av); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return doctorserrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepository) FindByDoctorAndDate(ctx context.Context, doctorID, date string) (*model.Availability, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID, "date": date}

	var av model.Availability
	err := r.collection.FindOne(ctx, filter).Decode(&av)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, doctorserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability: %w", err)
	}

	return &av, nil
}

// BookSlot atomically claims an open slot. The $elemMatch predicate
// requires the slot to still be unbooked, so two concurrent bookings of
// the same slot can never both match: the loser sees ErrSlotUnavailable.
func (r *mongoAvailabilityRepository) BookSlot(ctx context.Context, doctorID, date, slotTime, patientID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"doctor_id": doctorID,
		"date":      date,
		"slots": bson.M{"$elemMatch": bson.M{
			"time":      slotTime,
			"is_booked": false,
		}},
	}
	update := bson.M{"$set": bson.M{
		"slots.$.is_booked":  true,
		"slots.$.patient_id": patientID,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to book slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return doctorserrors.ErrSlotUnavailable
	}
	return nil
}

// ReleaseSlot resets a slot to bookable, clearing the patient
// reference. Matching is by slot identifier regardless of booking
// state, mirroring the cancellation contract.
func (r *mongoAvailabilityRepository) ReleaseSlot(ctx context.Context, doctorID, date, slotID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"doctor_id": doctorID,
		"date":      date,
		"slots":     bson.M{"$elemMatch": bson.M{"_id": slotID}},
	}
	update := bson.M{
		"$set":   bson.M{"slots.$.is_booked": false},
		"$unset": bson.M{"slots.$.patient_id": ""},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return doctorserrors.ErrSlotNotFound
	}
	return nil
}
