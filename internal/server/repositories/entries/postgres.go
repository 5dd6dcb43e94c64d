package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/dbx"
	"github.com/dmitrijs2005/securepass/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error) {

	query :=
		`INSERT INTO vault_entries (user_id, site_name, site_url, encrypted_password)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.SiteName, entry.SiteURL, entry.EncryptedPassword).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.VaultEntry, error) {
	query :=
		`SELECT id, user_id, site_name, site_url, encrypted_password, COALESCE(attachment_key, ''), created_at, updated_at
		 FROM vault_entries
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.VaultEntry
	for rows.Next() {
		entry := &models.VaultEntry{}
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.SiteName, &entry.SiteURL,
			&entry.EncryptedPassword, &entry.AttachmentKey, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string, userID string) (*models.VaultEntry, error) {
	query :=
		`SELECT id, user_id, site_name, site_url, encrypted_password, COALESCE(attachment_key, ''), created_at, updated_at
		 FROM vault_entries
		 WHERE id = $1 AND user_id = $2
		 `

	entry := &models.VaultEntry{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&entry.ID, &entry.UserID, &entry.SiteName, &entry.SiteURL,
		&entry.EncryptedPassword, &entry.AttachmentKey, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) SetAttachmentKey(ctx context.Context, id string, userID string, key string) error {
	query :=
		`UPDATE vault_entries SET attachment_key = $3, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	result, err := r.db.ExecContext(ctx, query, id, userID, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if rows == 0 {
		return common.ErrNotFound
	}

	return nil
}
