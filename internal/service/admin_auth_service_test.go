package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

type fakeAdminStore struct {
	byEmail map[string]*models.AdminUser
	created int
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{byEmail: make(map[string]*models.AdminUser)}
}

func (f *fakeAdminStore) GetByEmail(email string) (*models.AdminUser, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminStore) Create(u *models.AdminUser) error {
	f.created++
	u.ID = f.created
	f.byEmail[u.Email] = u
	return nil
}

func TestAdminAuthService_CreateAdmin(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, 15*time.Minute)

	require.NoError(t, svc.CreateAdmin("admin@medweg.de", "s3cret", "Admin"))

	user := store.byEmail["admin@medweg.de"]
	require.NotNil(t, user)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestAdminAuthService_EnsureAdmin_Idempotent(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, 15*time.Minute)

	require.NoError(t, svc.EnsureAdmin("admin@medweg.de", "s3cret", "Admin"))
	require.NoError(t, svc.EnsureAdmin("admin@medweg.de", "other", "Admin"))

	assert.Equal(t, 1, store.created)
	// The original password still works after the second call.
	user := store.byEmail["admin@medweg.de"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestAdminAuthService_Login_Rejections(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminAuthService(store, 15*time.Minute)
	require.NoError(t, svc.CreateAdmin("admin@medweg.de", "s3cret", "Admin"))

	_, err := svc.Login("admin@medweg.de", "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login("nobody@medweg.de", "s3cret")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	store.byEmail["admin@medweg.de"].IsActive = false
	_, err = svc.Login("admin@medweg.de", "s3cret")
	assert.ErrorIs(t, err, utils.ErrAccountInactive)
}
