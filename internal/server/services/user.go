// Package services holds the server-side application services sitting
// between the HTTP handlers and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/server/auth"
	"github.com/dmitrijs2005/securepass/internal/server/config"
	"github.com/dmitrijs2005/securepass/internal/server/models"
	"github.com/dmitrijs2005/securepass/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// TwoFactorSetup is the enrollment payload: the shared secret and the
// otpauth provisioning URI. The secret is not persisted until the user
// proves possession via EnableTwoFactor.
type TwoFactorSetup struct {
	Secret string
	URI    string
}

type UserService struct {
	repo      users.Repository
	jwtSecret []byte
	cfg       *config.Config
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:      repo,
		jwtSecret: []byte(cfg.SecretKey),
		cfg:       cfg,
	}
}

func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user, err := s.repo.Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, common.ErrInternal
	}

	return user, nil
}

// Login verifies the account password (and the TOTP code when 2FA is
// enabled) and issues an access token. All credential failures collapse to
// ErrUnauthorized so a caller cannot probe which part was wrong.
func (s *UserService) Login(ctx context.Context, email, password, totpCode string) (string, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	if !user.IsActive {
		return "", common.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrUnauthorized
	}

	if user.TwoFactorEnabled() {
		if !auth.VerifyTOTP(user.TOTPSecret, totpCode) {
			return "", common.ErrUnauthorized
		}
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.cfg.AccessTokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// SetupTwoFactor generates (but does not yet persist) a TOTP enrollment for
// the user.
func (s *UserService) SetupTwoFactor(ctx context.Context, userID string) (*TwoFactorSetup, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	secret, uri, err := auth.GenerateTOTPSecret(user.Email)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &TwoFactorSetup{Secret: secret, URI: uri}, nil
}

// EnableTwoFactor persists the TOTP secret once the user has proven they can
// produce a valid code for it.
func (s *UserService) EnableTwoFactor(ctx context.Context, userID, secret, code string) error {
	if !auth.VerifyTOTP(secret, code) {
		return fmt.Errorf("%w: invalid 2fa code", common.ErrInvalidInput)
	}

	if err := s.repo.SetTOTPSecret(ctx, userID, secret); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrInternal
	}

	return nil
}
