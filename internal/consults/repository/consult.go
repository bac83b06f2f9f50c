package repository

import (
	"context"
	"fmt"
	"time"

	"medibook/pkg/config"
	"medibook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ConsultCollection = "Consults"

type ConsultRepository interface {
	Create(ctx context.Context, c *model.Consult) error
	FindByPatient(ctx context.Context, patientID string) ([]*model.Consult, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]*model.Consult, error)
}

type mongoConsultRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoConsultRepository(cfg *config.Config) ConsultRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoConsultRepository{
		cfg:        cfg,
		collection: db.Collection(ConsultCollection),
	}
}

func (r *mongoConsultRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoConsultRepository) Create(ctx context.Context, c *model.Consult) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	c.ID = primitive.NewObjectID().Hex()
	c.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create consult: %w", err)
	}
	return nil
}

func (r *mongoConsultRepository) FindByPatient(ctx context.Context, patientID string) ([]*model.Consult, error) {
	return r.findAll(ctx, bson.M{"patient_id": patientID})
}

func (r *mongoConsultRepository) FindByDoctor(ctx context.Context, doctorID string) ([]*model.Consult, error) {
	return r.findAll(ctx, bson.M{"doctor_id": doctorID})
}

func (r *mongoConsultRepository) findAll(ctx context.Context, filter bson.M) ([]*model.Consult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find consults: %w", err)
	}
	defer cursor.Close(ctx)

	var consults []*model.Consult
	if err = cursor.All(ctx, &consults); err != nil {
		return nil, fmt.Errorf("failed to decode consults: %w", err)
	}
	return consults, nil
}
