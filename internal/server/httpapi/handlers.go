// Package httpapi exposes the server over REST. Handlers translate between
// JSON payloads and the application services; no cryptography happens here.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/generator"
	"github.com/dmitrijs2005/securepass/internal/logging"
	"github.com/dmitrijs2005/securepass/internal/server/config"
	"github.com/dmitrijs2005/securepass/internal/server/health"
	"github.com/dmitrijs2005/securepass/internal/server/secrets"
	"github.com/dmitrijs2005/securepass/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	users     *services.UserService
	entries   *services.EntryService
	shares    *secrets.Service
	pwned     *health.PwnedChecker
	config    *config.Config
	jwtSecret []byte
	logger    logging.Logger
}

func NewHandler(users *services.UserService, entries *services.EntryService,
	shares *secrets.Service, pwned *health.PwnedChecker,
	cfg *config.Config, logger logging.Logger) *Handler {
	return &Handler{
		users:     users,
		entries:   entries,
		shares:    shares,
		pwned:     pwned,
		config:    cfg,
		jwtSecret: []byte(cfg.SecretKey),
		logger:    logger.With("module", "httpapi"),
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TwoFactorSetupResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

type TwoFactorEnableRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}

type EntryRequest struct {
	SiteName          string `json:"site_name"`
	SiteURL           string `json:"site_url,omitempty"`
	EncryptedPassword string `json:"encrypted_password"`
}

type EntryResponse struct {
	ID                string    `json:"id"`
	SiteName          string    `json:"site_name"`
	SiteURL           string    `json:"site_url,omitempty"`
	EncryptedPassword string    `json:"encrypted_password"`
	HasAttachment     bool      `json:"has_attachment"`
	CreatedAt         time.Time `json:"created_at"`
}

type AttachmentUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

type AttachmentDownloadResponse struct {
	DownloadURL string `json:"download_url"`
}

type CheckHealthRequest struct {
	Password   string   `json:"password"`
	UserInputs []string `json:"user_inputs,omitempty"`
}

type CheckHealthResponse struct {
	Score       int      `json:"score"`
	Entropy     float64  `json:"entropy"`
	CrackTime   string   `json:"crack_time"`
	Feedback    []string `json:"feedback,omitempty"`
	BreachCount int      `json:"breach_count"`
}

type ShareCreateRequest struct {
	Content    string `json:"content"`
	TTLSeconds int    `json:"ttl_seconds"`
}

type ShareCreateResponse struct {
	UUID      string    `json:"uuid"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ShareRevealResponse struct {
	EncryptedContent string `json:"encrypted_content"`
}

type GenerateResponse struct {
	Password string `json:"password"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyExists):
			h.error(w, http.StatusConflict, "email already registered")
		case errors.Is(err, common.ErrInvalidInput):
			h.error(w, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	h.json(w, http.StatusCreated, RegisterResponse{ID: user.ID, Email: user.Email})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password, req.TOTPCode)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			h.error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.internalError(w, r, err)
		return
	}

	h.json(w, http.StatusOK, LoginResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) SetupTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	setup, err := h.users.SetupTwoFactor(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.json(w, http.StatusOK, TwoFactorSetupResponse{Secret: setup.Secret, URI: setup.URI})
}

func (h *Handler) EnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req TwoFactorEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.users.EnableTwoFactor(r.Context(), userID, req.Secret, req.Code); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			h.error(w, http.StatusBadRequest, "invalid 2fa code")
			return
		}
		h.internalError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.entries.Create(r.Context(), userID, req.SiteName, req.SiteURL, req.EncryptedPassword)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			h.error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	h.json(w, http.StatusCreated, EntryResponse{
		ID:                entry.ID,
		SiteName:          entry.SiteName,
		SiteURL:           entry.SiteURL,
		EncryptedPassword: entry.EncryptedPassword,
		CreatedAt:         entry.CreatedAt,
	})
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	list, err := h.entries.List(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	result := make([]EntryResponse, 0, len(list))
	for _, entry := range list {
		result = append(result, EntryResponse{
			ID:                entry.ID,
			SiteName:          entry.SiteName,
			SiteURL:           entry.SiteURL,
			EncryptedPassword: entry.EncryptedPassword,
			HasAttachment:     entry.AttachmentKey != "",
			CreatedAt:         entry.CreatedAt,
		})
	}

	h.json(w, http.StatusOK, result)
}

func (h *Handler) PresignAttachmentUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID := chi.URLParam(r, "id")

	key, url, err := h.entries.PresignAttachmentUpload(r.Context(), entryID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.error(w, http.StatusNotFound, "entry not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	h.json(w, http.StatusOK, AttachmentUploadResponse{Key: key, UploadURL: url})
}

func (h *Handler) PresignAttachmentDownload(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID := chi.URLParam(r, "id")

	url, err := h.entries.PresignAttachmentDownload(r.Context(), entryID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.error(w, http.StatusNotFound, "attachment not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	h.json(w, http.StatusOK, AttachmentDownloadResponse{DownloadURL: url})
}

// CheckHealth scores a candidate password and looks it up in breach corpora.
// The plaintext arrives only because the user explicitly submitted it for
// checking; it is never stored or logged.
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	var req CheckHealthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Password == "" {
		h.error(w, http.StatusBadRequest, "password is required")
		return
	}

	strength := health.EstimateStrength(req.Password, req.UserInputs)
	breaches := h.pwned.BreachCount(r.Context(), req.Password)

	h.json(w, http.StatusOK, CheckHealthResponse{
		Score:       strength.Score,
		Entropy:     strength.Entropy,
		CrackTime:   strength.CrackTime,
		Feedback:    strength.Feedback,
		BreachCount: breaches,
	})
}

func (h *Handler) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req ShareCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	share, err := h.shares.Create(r.Context(), req.Content, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidTTL), errors.Is(err, common.ErrInvalidInput):
			h.error(w, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, r, err)
		}
		return
	}

	// The key travels in the URL fragment, which browsers never send back.
	url := h.config.BaseURL + "/s/" + share.UUID + "#" + share.Key

	h.json(w, http.StatusCreated, ShareCreateResponse{
		UUID:      share.UUID,
		Key:       share.Key,
		URL:       url,
		ExpiresAt: share.ExpiresAt,
	})
}

func (h *Handler) RevealShare(w http.ResponseWriter, r *http.Request) {
	shareUUID := chi.URLParam(r, "uuid")

	content, err := h.shares.Reveal(r.Context(), shareUUID)
	if err != nil {
		// Unknown, expired and consumed are deliberately the same answer.
		h.error(w, http.StatusNotFound, "link invalid or already used")
		return
	}

	h.json(w, http.StatusOK, ShareRevealResponse{EncryptedContent: content})
}

func (h *Handler) GeneratePassword(w http.ResponseWriter, r *http.Request) {
	policy := generator.DefaultPolicy()

	q := r.URL.Query()
	if v := q.Get("length"); v != "" {
		length, err := strconv.Atoi(v)
		if err != nil {
			h.error(w, http.StatusBadRequest, "invalid length")
			return
		}
		policy.Length = length
	}
	if v := q.Get("uppercase"); v != "" {
		policy.Uppercase = v == "true"
	}
	if v := q.Get("digits"); v != "" {
		policy.Digits = v == "true"
	}
	if v := q.Get("symbols"); v != "" {
		policy.Symbols = v == "true"
	}

	password, err := generator.Generate(policy)
	if err != nil {
		if errors.Is(err, common.ErrInvalidLength) {
			h.error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	h.json(w, http.StatusOK, GenerateResponse{Password: password})
}

func (h *Handler) json(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) error(w http.ResponseWriter, status int, message string) {
	h.json(w, status, ErrorResponse{Error: message})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	h.error(w, http.StatusInternalServerError, "internal error")
}
