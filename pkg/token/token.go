package token

import (
	"errors"
	"fmt"
	"time"

	"medibook/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing token")
)

// PatientClaims embeds the patient's public profile in the token, the
// same shape both the primary login path and the backup path issue.
type PatientClaims struct {
	Patient PatientProfile `json:"patient"`
	jwt.RegisteredClaims
}

type PatientProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Issuer struct {
	secret   []byte
	lifetime time.Duration
}

func NewIssuer(secret string, lifetime time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

func (i *Issuer) Issue(p *model.Patient) (string, error) {
	now := time.Now()
	claims := PatientClaims{
		Patient: PatientProfile{
			ID:      p.ID,
			Name:    p.Name,
			Email:   p.Email,
			Age:     p.Age,
			Gender:  p.Gender,
			Phone:   p.Phone,
			Address: p.Address,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (i *Issuer) Verify(tokenStr string) (*PatientClaims, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	claims := &PatientClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
