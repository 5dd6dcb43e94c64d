package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/server/auth"
	"github.com/dmitrijs2005/securepass/internal/server/config"
	"github.com/dmitrijs2005/securepass/internal/server/models"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u := *user
	u.ID = uuid.NewString()
	u.IsActive = true
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = &u
	r.byID[u.ID] = &u
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) SetTOTPSecret(ctx context.Context, userID string, secret string) error {
	u, ok := r.byID[userID]
	if !ok {
		return common.ErrNotFound
	}
	u.TOTPSecret = secret
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

func TestUserService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo, testConfig())

	user, err := s.Register(context.Background(), "alice@example.com", "pa$$w0rd")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	// password must be stored hashed
	assert.NotEqual(t, "pa$$w0rd", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pa$$w0rd")))

	_, err = s.Register(context.Background(), "alice@example.com", "other")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestUserService_Register_Validation(t *testing.T) {
	s := NewUserService(newFakeUserRepo(), testConfig())

	_, err := s.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = s.Register(context.Background(), "a@b.c", "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUserService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	cfg := testConfig()
	s := NewUserService(repo, cfg)

	_, err := s.Register(context.Background(), "alice@example.com", "pa$$w0rd")
	require.NoError(t, err)

	token, err := s.Login(context.Background(), "alice@example.com", "pa$$w0rd", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := auth.GetUserIDFromToken(token, []byte(cfg.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, repo.byEmail["alice@example.com"].ID, userID)
}

func TestUserService_Login_Failures(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo, testConfig())

	_, err := s.Register(context.Background(), "alice@example.com", "pa$$w0rd")
	require.NoError(t, err)

	_, err = s.Login(context.Background(), "alice@example.com", "wrong", "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = s.Login(context.Background(), "nobody@example.com", "pa$$w0rd", "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	repo.byEmail["alice@example.com"].IsActive = false
	_, err = s.Login(context.Background(), "alice@example.com", "pa$$w0rd", "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestUserService_TwoFactorFlow(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewUserService(repo, testConfig())

	user, err := s.Register(context.Background(), "alice@example.com", "pa$$w0rd")
	require.NoError(t, err)

	setup, err := s.SetupTwoFactor(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Secret)
	assert.Contains(t, setup.URI, "otpauth://")

	// setup alone must not enable 2FA
	assert.Empty(t, repo.byID[user.ID].TOTPSecret)

	err = s.EnableTwoFactor(context.Background(), user.ID, setup.Secret, "000000")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.EnableTwoFactor(context.Background(), user.ID, setup.Secret, code))
	assert.Equal(t, setup.Secret, repo.byID[user.ID].TOTPSecret)

	// login now requires a valid code
	_, err = s.Login(context.Background(), "alice@example.com", "pa$$w0rd", "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)

	token, err := s.Login(context.Background(), "alice@example.com", "pa$$w0rd", code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
