package service

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	userserrors "medibook/internal/users/errors"
	"medibook/internal/users/validator"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/logger"
	"medibook/pkg/model"
	"medibook/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type mockPatientRepo struct {
	ensureIndexesFn func(ctx context.Context) error
	createFn        func(ctx context.Context, p *model.Patient) error
	findByEmailFn   func(ctx context.Context, email string) (*model.Patient, error)
	findByIDFn      func(ctx context.Context, id string) (*model.Patient, error)
}

func (m *mockPatientRepo) EnsureIndexes(ctx context.Context) error {
	return m.ensureIndexesFn(ctx)
}

func (m *mockPatientRepo) Create(ctx context.Context, p *model.Patient) error {
	return m.createFn(ctx, p)
}

func (m *mockPatientRepo) FindByEmail(ctx context.Context, email string) (*model.Patient, error) {
	return m.findByEmailFn(ctx, email)
}

func (m *mockPatientRepo) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	return m.findByIDFn(ctx, id)
}

func testAuthService(repo *mockPatientRepo) (AuthService, *token.Issuer) {
	cfg := &config.Config{Log: logger.New(logger.Config{Output: io.Discard})}
	issuer := token.NewIssuer("test-secret", time.Hour)
	return NewAuthService(repo, issuer, validator.NewUserValidator(), cfg), issuer
}

func TestRegisterHashesPassword(t *testing.T) {
	var stored *model.Patient
	repo := &mockPatientRepo{
		createFn: func(_ context.Context, p *model.Patient) error {
			p.ID = "64a1f0c2e4b0a1b2c3d4e5f7"
			stored = p
			return nil
		},
	}
	svc, _ := testAuthService(repo)

	patient, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "asha verma",
		Email:    "Asha@Example.COM",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Password == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse battery")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if patient.Email != "asha@example.com" {
		t.Errorf("email not normalized, got %s", patient.Email)
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	repo := &mockPatientRepo{
		createFn: func(context.Context, *model.Patient) error {
			return userserrors.ErrEmailExists
		},
	}
	svc, _ := testAuthService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "correct horse battery",
	})

	if apperrors.AsAppError(err).StatusCode() != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	svc, _ := testAuthService(&mockPatientRepo{})

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "short",
	})

	if apperrors.AsAppError(err).StatusCode() != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &mockPatientRepo{
		findByEmailFn: func(_ context.Context, email string) (*model.Patient, error) {
			return &model.Patient{
				ID:       "64a1f0c2e4b0a1b2c3d4e5f7",
				Name:     "Asha Verma",
				Email:    email,
				Password: string(hash),
			}, nil
		},
	}
	svc, issuer := testAuthService(repo)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "asha@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Patient.ID != "64a1f0c2e4b0a1b2c3d4e5f7" {
		t.Errorf("token carries wrong patient, got %s", claims.Patient.ID)
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.DefaultCost)
	repo := &mockPatientRepo{
		findByEmailFn: func(_ context.Context, email string) (*model.Patient, error) {
			return &model.Patient{ID: "64a1f0c2e4b0a1b2c3d4e5f7", Email: email, Password: string(hash)}, nil
		},
	}
	svc, _ := testAuthService(repo)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong password",
	})

	if apperrors.AsAppError(err).StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestLoginUnknownEmailSameResponseAsWrongPassword(t *testing.T) {
	repo := &mockPatientRepo{
		findByEmailFn: func(context.Context, string) (*model.Patient, error) {
			return nil, userserrors.ErrNotFound
		},
	}
	svc, _ := testAuthService(repo)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-123",
	})

	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if appErr.Message != "Invalid email or password" {
		t.Errorf("unknown email must not be distinguishable, got %q", appErr.Message)
	}
}
