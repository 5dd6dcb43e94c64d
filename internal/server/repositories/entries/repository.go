package entries

import (
	"context"

	"github.com/dmitrijs2005/securepass/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*models.VaultEntry, error)
	GetByID(ctx context.Context, id string, userID string) (*models.VaultEntry, error)
	SetAttachmentKey(ctx context.Context, id string, userID string, key string) error
}
