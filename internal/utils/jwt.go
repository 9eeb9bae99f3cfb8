package utils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in access tokens.
const (
	RoleAdmin       = "admin"
	RoleInstitution = "institution"
	RoleWorker      = "worker"
)

// Claims is the access-token payload. InstitutionID and PatientID scope
// institution and worker tokens; admin tokens carry neither.
type Claims struct {
	UserID        int    `json:"userId"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role"`
	InstitutionID int    `json:"institutionId,omitempty"`
	PatientID     int    `json:"patientId,omitempty"`
	jwt.RegisteredClaims
}

var (
	secretOnce sync.Once
	secret     []byte
)

func jwtSecret() []byte {
	secretOnce.Do(func() {
		secret = []byte(os.Getenv("JWT_SECRET"))
	})
	return secret
}

// GenerateJWT signs an access token with the given claims and lifetime.
func GenerateJWT(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Issuer:    "medweg-api",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateJWT parses and verifies an access token.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
