package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// AdminUserStore persists admin accounts.
type AdminUserStore interface {
	GetByEmail(email string) (*models.AdminUser, error)
	Create(user *models.AdminUser) error
}

type AdminAuthService struct {
	adminRepo      AdminUserStore
	accessTokenTTL time.Duration
}

func NewAdminAuthService(adminRepo AdminUserStore, accessTokenTTL time.Duration) *AdminAuthService {
	return &AdminAuthService{adminRepo: adminRepo, accessTokenTTL: accessTokenTTL}
}

func (s *AdminAuthService) Login(email, password string) (string, error) {
	log.Debug().Str("email", email).Msg("Admin login attempt")

	user, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Failed to get admin user by email")
		return "", utils.ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Str("email", email).Msg("Admin account is inactive")
		return "", utils.ErrAccountInactive
	}

	// Verify password using bcrypt
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Admin password verification failed")
		return "", utils.ErrInvalidCredentials
	}

	log.Info().Str("email", email).Msg("Admin login successful")

	return utils.GenerateJWT(utils.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   utils.RoleAdmin,
	}, s.accessTokenTTL)
}

// EnsureAdmin creates an admin account at startup unless one with the
// email already exists. Re-running with the same configuration is a no-op.
func (s *AdminAuthService) EnsureAdmin(email, password, name string) error {
	_, err := s.adminRepo.GetByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if err := s.CreateAdmin(email, password, name); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("Seeded admin account")
	return nil
}

func (s *AdminAuthService) CreateAdmin(email, password, name string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		IsActive:     true,
	}

	return s.adminRepo.Create(user)
}
