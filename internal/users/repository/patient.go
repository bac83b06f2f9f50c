package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	userserrors "medibook/internal/users/errors"
	"medibook/pkg/config"
	"medibook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PatientCollection = "Patients"

type PatientRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, p *model.Patient) error
	FindByEmail(ctx context.Context, email string) (*model.Patient, error)
	FindByID(ctx context.Context, id string) (*model.Patient, error)
}

type mongoPatientRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPatientRepository(cfg *config.Config) PatientRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPatientRepository{
		cfg:        cfg,
		collection: db.Collection(PatientCollection),
	}
}

func (r *mongoPatientRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureIndexes creates the unique email index so two registrations
// with the same address cannot both succeed.
func (r *mongoPatientRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create patient index: %w", err)
	}
	return nil
}

func (r *mongoPatientRepository) Create(ctx context.Context, p *model.Patient) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID().Hex()
	p.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return userserrors.ErrEmailExists
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *mongoPatientRepository) FindByEmail(ctx context.Context, email string) (*model.Patient, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var p model.Patient
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find patient by email: %w", err)
	}
	return &p, nil
}

func (r *mongoPatientRepository) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, userserrors.ErrInvalidID
	}

	var p model.Patient
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find patient by id: %w", err)
	}
	return &p, nil
}
