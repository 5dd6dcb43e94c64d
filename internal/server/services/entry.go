package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/securepass/internal/common"
	sc "github.com/dmitrijs2005/securepass/internal/server/config"
	"github.com/dmitrijs2005/securepass/internal/server/models"
	"github.com/dmitrijs2005/securepass/internal/server/repositories/entries"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignValidity = 15 * time.Minute

// EntryService stores and lists vault entries. The encrypted_password field
// is opaque here: it is written and read byte-for-byte, never decrypted,
// never logged. Attachments live in S3-compatible object storage and are
// reached through short-lived presigned URLs, so ciphertext bytes never flow
// through this server at all.
type EntryService struct {
	repo   entries.Repository
	config *sc.Config
}

func NewEntryService(repo entries.Repository, config *sc.Config) *EntryService {
	return &EntryService{
		repo:   repo,
		config: config,
	}
}

func (s *EntryService) Create(ctx context.Context, userID, siteName, siteURL, encryptedPassword string) (*models.VaultEntry, error) {
	if siteName == "" {
		return nil, fmt.Errorf("%w: site name is required", common.ErrInvalidInput)
	}
	if encryptedPassword == "" {
		return nil, fmt.Errorf("%w: encrypted password is required", common.ErrInvalidInput)
	}

	entry := &models.VaultEntry{
		UserID:            userID,
		SiteName:          siteName,
		SiteURL:           siteURL,
		EncryptedPassword: encryptedPassword,
	}

	entry, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return entry, nil
}

func (s *EntryService) List(ctx context.Context, userID string) ([]*models.VaultEntry, error) {
	result, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return result, nil
}

// GetRandomStorageKey produces a date-partitioned object key for a new
// attachment upload.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *EntryService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// PresignAttachmentUpload allocates an object key for the entry's attachment
// and returns a presigned PUT URL. The key is recorded on the entry so the
// later download can find it. Clients must encrypt before uploading; the
// object store only ever sees ciphertext.
func (s *EntryService) PresignAttachmentUpload(ctx context.Context, entryID, userID string) (string, string, error) {

	// Entry must exist and belong to the caller before a key is handed out.
	if _, err := s.repo.GetByID(ctx, entryID, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", "", common.ErrNotFound
		}
		return "", "", err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", "", err
	}

	if err := s.repo.SetAttachmentKey(ctx, entryID, userID, key); err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignAttachmentDownload returns a presigned GET URL for the entry's
// attachment, or ErrNotFound if the entry has none.
func (s *EntryService) PresignAttachmentDownload(ctx context.Context, entryID, userID string) (string, error) {

	entry, err := s.repo.GetByID(ctx, entryID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", err
	}
	if entry.AttachmentKey == "" {
		return "", common.ErrNotFound
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &entry.AttachmentKey,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
