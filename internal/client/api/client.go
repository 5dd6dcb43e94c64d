// Package api is the HTTP client for the SecurePass server. All vault
// cryptography happens in the CLI before data reaches this package, so
// every payload passing through here is already sealed.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/securepass/internal/client/config"
	"github.com/dmitrijs2005/securepass/internal/common"
)

// ErrUnavailable reports that the server could not be reached at all, as
// opposed to an error response it returned.
var ErrUnavailable = errors.New("server unavailable")

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.ServerURL,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// SetToken stores the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type Entry struct {
	ID                string    `json:"id"`
	SiteName          string    `json:"site_name"`
	SiteURL           string    `json:"site_url,omitempty"`
	EncryptedPassword string    `json:"encrypted_password"`
	HasAttachment     bool      `json:"has_attachment"`
	CreatedAt         time.Time `json:"created_at"`
}

type TwoFactorSetup struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

type HealthReport struct {
	Score       int      `json:"score"`
	Entropy     float64  `json:"entropy"`
	CrackTime   string   `json:"crack_time"`
	Feedback    []string `json:"feedback,omitempty"`
	BreachCount int      `json:"breach_count"`
}

type ShareInfo struct {
	UUID      string    `json:"uuid"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/register", payload, nil)
}

func (c *Client) Login(ctx context.Context, email, password, totpCode string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	if totpCode != "" {
		payload["totp_code"] = totpCode
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", payload, &resp); err != nil {
		return "", err
	}

	c.token = resp.AccessToken
	return resp.AccessToken, nil
}

func (c *Client) SetupTwoFactor(ctx context.Context) (*TwoFactorSetup, error) {
	var resp TwoFactorSetup
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/2fa/setup", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) EnableTwoFactor(ctx context.Context, secret, code string) error {
	payload := map[string]string{"secret": secret, "code": code}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/2fa/enable", payload, nil)
}

func (c *Client) CreateEntry(ctx context.Context, siteName, siteURL, encryptedPassword string) (*Entry, error) {
	payload := map[string]string{
		"site_name":          siteName,
		"site_url":           siteURL,
		"encrypted_password": encryptedPassword,
	}

	var resp Entry
	if err := c.do(ctx, http.MethodPost, "/api/v1/vault", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListEntries(ctx context.Context) ([]Entry, error) {
	var resp []Entry
	if err := c.do(ctx, http.MethodGet, "/api/v1/vault", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CheckHealth(ctx context.Context, password string, userInputs []string) (*HealthReport, error) {
	payload := map[string]any{"password": password}
	if len(userInputs) > 0 {
		payload["user_inputs"] = userInputs
	}

	var resp HealthReport
	if err := c.do(ctx, http.MethodPost, "/api/v1/vault/check-health", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateShare(ctx context.Context, content string, ttl time.Duration) (*ShareInfo, error) {
	payload := map[string]any{
		"content":     content,
		"ttl_seconds": int(ttl.Seconds()),
	}

	var resp ShareInfo
	if err := c.do(ctx, http.MethodPost, "/api/v1/share", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RevealShare(ctx context.Context, shareUUID string) (string, error) {
	var resp struct {
		EncryptedContent string `json:"encrypted_content"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/share/"+shareUUID, nil, &resp); err != nil {
		return "", err
	}
	return resp.EncryptedContent, nil
}

func (c *Client) PresignAttachmentUpload(ctx context.Context, entryID string) (key string, url string, err error) {
	var resp struct {
		Key       string `json:"key"`
		UploadURL string `json:"upload_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/vault/"+entryID+"/attachment", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Key, resp.UploadURL, nil
}

func (c *Client) PresignAttachmentDownload(ctx context.Context, entryID string) (string, error) {
	var resp struct {
		DownloadURL string `json:"download_url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/vault/"+entryID+"/attachment", nil, &resp); err != nil {
		return "", err
	}
	return resp.DownloadURL, nil
}

// UploadToURL PUTs an already-encrypted payload to a presigned URL.
func (c *Client) UploadToURL(ctx context.Context, url string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload failed: %s", resp.Status)
	}
	return nil
}

// DownloadFromURL GETs an encrypted payload from a presigned URL.
func (c *Client) DownloadFromURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, result any) error {

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return err
		}
	}

	return nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error == "" {
		body.Error = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, body.Error)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, body.Error)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrAlreadyExists, body.Error)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, body.Error)
	default:
		return fmt.Errorf("%w: %s", common.ErrInternal, body.Error)
	}
}
