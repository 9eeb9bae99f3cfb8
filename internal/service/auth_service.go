package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BobadilloLeftLane/medweg-api/internal/cache"
	"github.com/BobadilloLeftLane/medweg-api/internal/config"
	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/repository"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// AuthService handles institution and worker authentication: registration
// with email verification, login, refresh token rotation and logout.
type AuthService struct {
	institutionRepo *repository.InstitutionRepository
	workerRepo      *repository.WorkerRepository
	verifications   *cache.VerificationCache
	tokens          *cache.TokenCache
	mailer          Mailer
	cfg             config.AuthConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(
	institutionRepo *repository.InstitutionRepository,
	workerRepo *repository.WorkerRepository,
	verifications *cache.VerificationCache,
	tokens *cache.TokenCache,
	mailer Mailer,
	cfg config.AuthConfig,
) *AuthService {
	return &AuthService{
		institutionRepo: institutionRepo,
		workerRepo:      workerRepo,
		verifications:   verifications,
		tokens:          tokens,
		mailer:          mailer,
		cfg:             cfg,
	}
}

// RegisterRequest carries the institution self-registration payload.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson" binding:"required"`
	Phone         string `json:"phone"`
	Street        string `json:"street" binding:"required"`
	PostalCode    string `json:"postalCode" binding:"required"`
	City          string `json:"city" binding:"required"`
}

// TokenPair is returned on successful login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates an unverified institution and sends it a verification
// code.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.Institution, error) {
	if existing, err := s.institutionRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, utils.ErrEmailTaken
	} else if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	inst := &models.Institution{
		Email:         req.Email,
		PasswordHash:  string(hash),
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Street:        req.Street,
		PostalCode:    req.PostalCode,
		City:          req.City,
	}
	if err := s.institutionRepo.Create(inst); err != nil {
		return nil, err
	}

	if err := s.issueVerificationCode(ctx, inst); err != nil {
		// The account exists; the code can be re-requested.
		log.Error().Err(err).Int("institution_id", inst.ID).Msg("Failed to issue verification code")
	}

	log.Info().Int("institution_id", inst.ID).Str("email", inst.Email).Msg("Institution registered")
	return inst, nil
}

// ResendVerification issues a fresh verification code for an unverified
// account.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	inst, err := s.institutionRepo.GetByEmail(email)
	if err != nil {
		return utils.ErrInvalidCredentials
	}
	if inst.IsVerified {
		return nil
	}
	return s.issueVerificationCode(ctx, inst)
}

func (s *AuthService) issueVerificationCode(ctx context.Context, inst *models.Institution) error {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}
	if err := s.verifications.Store(ctx, inst.ID, code); err != nil {
		return err
	}
	return s.mailer.SendVerificationCode(ctx, inst.Email, code)
}

// Verify checks a submitted code and marks the institution verified.
func (s *AuthService) Verify(ctx context.Context, email, code string) error {
	inst, err := s.institutionRepo.GetByEmail(email)
	if err != nil {
		return utils.ErrInvalidVerification
	}
	if inst.IsVerified {
		return nil
	}

	ok, err := s.verifications.Check(ctx, inst.ID, code)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrInvalidVerification
	}

	if err := s.institutionRepo.MarkVerified(inst.ID, time.Now()); err != nil {
		return err
	}
	_ = s.verifications.Invalidate(ctx, inst.ID)

	log.Info().Int("institution_id", inst.ID).Msg("Institution verified")
	return nil
}

// Login authenticates an institution and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	inst, err := s.institutionRepo.GetByEmail(email)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(inst.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !inst.IsActive {
		return nil, utils.ErrAccountInactive
	}
	if !inst.IsVerified {
		return nil, utils.ErrAccountNotVerified
	}

	pair, err := s.issueTokens(ctx, &cache.RefreshSession{
		UserID:        inst.ID,
		Role:          utils.RoleInstitution,
		InstitutionID: inst.ID,
	}, inst.Email)
	if err != nil {
		return nil, err
	}

	log.Info().Int("institution_id", inst.ID).Msg("Institution login successful")
	return pair, nil
}

// WorkerLogin authenticates a worker credential and issues a token pair
// scoped to the worker's institution and patient.
func (s *AuthService) WorkerLogin(ctx context.Context, loginKey, secret string) (*TokenPair, error) {
	worker, err := s.workerRepo.GetByLoginKey(loginKey)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(worker.SecretHash), []byte(secret)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !worker.IsActive {
		return nil, utils.ErrAccountInactive
	}

	pair, err := s.issueTokens(ctx, &cache.RefreshSession{
		UserID:        worker.ID,
		Role:          utils.RoleWorker,
		InstitutionID: worker.InstitutionID,
		PatientID:     worker.PatientID,
	}, "")
	if err != nil {
		return nil, err
	}

	if err := s.workerRepo.TouchLogin(worker.ID, time.Now()); err != nil {
		log.Warn().Err(err).Int("worker_id", worker.ID).Msg("Failed to record worker login time")
	}
	return pair, nil
}

// Refresh rotates a refresh token and returns a new pair. The old token is
// revoked whether or not the rotation succeeds, so replays fail.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	session, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, utils.ErrInvalidRefreshToken
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, session, "")
}

// Logout revokes a refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, session *cache.RefreshSession, email string) (*TokenPair, error) {
	access, err := utils.GenerateJWT(utils.Claims{
		UserID:        session.UserID,
		Email:         email,
		Role:          session.Role,
		InstitutionID: session.InstitutionID,
		PatientID:     session.PatientID,
	}, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := utils.GenerateKey("mw_refresh")
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Store(ctx, refresh, session); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
