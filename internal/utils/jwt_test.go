package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "unit-test-secret")
	os.Exit(m.Run())
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(Claims{
		UserID: 7,
		Email:  "admin@medweg.example",
		Role:   RoleAdmin,
	}, time.Minute)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "medweg-api", claims.Issuer)
}

func TestValidateJWT_ScopedWorkerToken(t *testing.T) {
	token, err := GenerateJWT(Claims{
		UserID:        3,
		Role:          RoleWorker,
		InstitutionID: 12,
		PatientID:     44,
	}, time.Minute)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 12, claims.InstitutionID)
	assert.Equal(t, 44, claims.PatientID)
}

func TestValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(Claims{UserID: 1, Role: RoleAdmin}, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWT_Garbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
