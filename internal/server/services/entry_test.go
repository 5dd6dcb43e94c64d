package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntryRepo struct {
	entries map[string]*models.VaultEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]*models.VaultEntry)}
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error) {
	e := *entry
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.entries[e.ID] = &e
	return &e, nil
}

func (r *fakeEntryRepo) ListByUser(ctx context.Context, userID string) ([]*models.VaultEntry, error) {
	var result []*models.VaultEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeEntryRepo) GetByID(ctx context.Context, id string, userID string) (*models.VaultEntry, error) {
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrNotFound
	}
	return e, nil
}

func (r *fakeEntryRepo) SetAttachmentKey(ctx context.Context, id string, userID string, key string) error {
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return common.ErrNotFound
	}
	e.AttachmentKey = key
	return nil
}

func TestEntryService_CreateAndList(t *testing.T) {
	repo := newFakeEntryRepo()
	s := NewEntryService(repo, testConfig())

	blob := "AZHtp9Y0uPLlqKv1E9M9X3RKLXvDT8u1sQkM7g"

	entry, err := s.Create(context.Background(), "user-1", "github", "https://github.com", blob)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	// stored ciphertext must survive byte for byte
	assert.Equal(t, blob, entry.EncryptedPassword)

	_, err = s.Create(context.Background(), "user-2", "gitlab", "", blob)
	require.NoError(t, err)

	list, err := s.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "github", list[0].SiteName)
	assert.Equal(t, blob, list[0].EncryptedPassword)
}

func TestEntryService_Create_Validation(t *testing.T) {
	s := NewEntryService(newFakeEntryRepo(), testConfig())

	_, err := s.Create(context.Background(), "user-1", "", "", "blob")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = s.Create(context.Background(), "user-1", "github", "", "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestEntryService_PresignAttachmentUpload_UnknownEntry(t *testing.T) {
	s := NewEntryService(newFakeEntryRepo(), testConfig())

	_, _, err := s.PresignAttachmentUpload(context.Background(), uuid.NewString(), "user-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEntryService_PresignAttachmentUpload_WrongOwner(t *testing.T) {
	repo := newFakeEntryRepo()
	s := NewEntryService(repo, testConfig())

	entry, err := s.Create(context.Background(), "user-1", "github", "", "blob")
	require.NoError(t, err)

	_, _, err = s.PresignAttachmentUpload(context.Background(), entry.ID, "user-2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEntryService_PresignAttachmentDownload_NoAttachment(t *testing.T) {
	repo := newFakeEntryRepo()
	s := NewEntryService(repo, testConfig())

	entry, err := s.Create(context.Background(), "user-1", "github", "", "blob")
	require.NoError(t, err)

	_, err = s.PresignAttachmentDownload(context.Background(), entry.ID, "user-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetRandomStorageKey(t *testing.T) {
	k1 := GetRandomStorageKey()
	k2 := GetRandomStorageKey()
	assert.NotEqual(t, k1, k2)
	assert.Contains(t, k1, "users/")
}
