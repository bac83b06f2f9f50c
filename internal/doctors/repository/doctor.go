package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	doctorserrors "medibook/internal/doctors/errors"
	"medibook/pkg/config"
	mongotx "medibook/pkg/db/mongo"
	"medibook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DoctorCollection     = "Doctors"
	DepartmentCollection = "Departments"
)

type mongoDoctorRepository struct {
	cfg         *config.Config
	doctors     *mongo.Collection
	departments *mongo.Collection
	txManager   mongotx.TransactionManager
}

type DoctorRepository interface {
	Create(ctx context.Context, doc *model.Doctor) error
	FindByID(ctx context.Context, id string) (*model.Doctor, error)
	FindAll(ctx context.Context) ([]*model.Doctor, error)
	FindByNameAndSpecialization(ctx context.Context, name, specialization string) (*model.Doctor, error)
	CreateDepartment(ctx context.Context, dep *model.Department) error
	FindDepartmentByName(ctx context.Context, name string) (*model.Department, error)
	FindAllDepartments(ctx context.Context) ([]*model.Department, error)
	AddDoctorToDepartment(ctx context.Context, departmentID, doctorID string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoDoctorRepository(cfg *config.Config) DoctorRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDoctorRepository{
		cfg:         cfg,
		doctors:     db.Collection(DoctorCollection),
		departments: db.Collection(DepartmentCollection),
		txManager:   mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoDoctorRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoDoctorRepository) Create(ctx context.Context, doc *model.Doctor) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc.ID = primitive.NewObjectID().Hex()
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.doctors.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *mongoDoctorRepository) FindByID(ctx context.Context, id string) (*model.Doctor, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}

	var doc model.Doctor
	err := r.doctors.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, doctorserrors.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}
	return &doc, nil
}

func (r *mongoDoctorRepository) FindAll(ctx context.Context) ([]*model.Doctor, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.doctors.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*model.Doctor
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return docs, nil
}

func (r *mongoDoctorRepository) FindByNameAndSpecialization(ctx context.Context, name, specialization string) (*model.Doctor, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"name": name, "specialization": specialization}

	var doc model.Doctor
	err := r.doctors.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, doctorserrors.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}
	return &doc, nil
}

func (r *mongoDoctorRepository) CreateDepartment(ctx context.Context, dep *model.Department) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if dep.Doctors == nil {
		dep.Doctors = []string{}
	}
	dep.ID = primitive.NewObjectID().Hex()
	if _, err := r.departments.InsertOne(ctx, dep); err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *mongoDoctorRepository) FindDepartmentByName(ctx context.Context, name string) (*model.Department, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var dep model.Department
	err := r.departments.FindOne(ctx, bson.M{"name": name}).Decode(&dep)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, doctorserrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return &dep, nil
}

func (r *mongoDoctorRepository) FindAllDepartments(ctx context.Context) ([]*model.Department, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.departments.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find departments: %w", err)
	}
	defer cursor.Close(ctx)

	var deps []*model.Department
	if err = cursor.All(ctx, &deps); err != nil {
		return nil, fmt.Errorf("failed to decode departments: %w", err)
	}
	return deps, nil
}

func (r *mongoDoctorRepository) AddDoctorToDepartment(ctx context.Context, departmentID, doctorID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(departmentID); err != nil {
		return fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, departmentID)
	}

	result, err := r.departments.UpdateOne(ctx,
		bson.M{"_id": departmentID},
		bson.M{"$addToSet": bson.M{"doctors": doctorID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add doctor to department: %w", err)
	}
	if result.MatchedCount == 0 {
		return doctorserrors.ErrDepartmentNotFound
	}
	return nil
}

func (r *mongoDoctorRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
