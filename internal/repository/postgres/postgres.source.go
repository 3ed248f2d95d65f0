// FilePath: internal/repository/postgres/postgres.source.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/photodream/hub/internal/database"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
)

type SourceRepo struct {
	PostgresBaseRepo
}

func NewSourceRepository(db database.DB) *SourceRepo {
	repo := &PostgresBaseRepo{db: db}
	return &SourceRepo{PostgresBaseRepo: *repo}
}

func (r *SourceRepo) Create(ctx context.Context, source *models.Source) error {
	query := `
		INSERT INTO sources (
			id, name, base_url, api_key, created_at, updated_at
		) VALUES (
			:id, :name, :base_url, :api_key, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, source)
	if err != nil {
		return errors.NewDatabaseError("failed to create source", err)
	}
	return nil
}

func (r *SourceRepo) Get(ctx context.Context, id string) (*models.Source, error) {
	source := &models.Source{}
	query := `SELECT * FROM sources WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, source, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("source not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get source", err)
	}
	return source, nil
}

func (r *SourceRepo) Update(ctx context.Context, source *models.Source) error {
	query := `
		UPDATE sources SET
			name = :name,
			base_url = :base_url,
			api_key = :api_key,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, source)
	if err != nil {
		return errors.NewDatabaseError("failed to update source", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("source not found", nil)
	}

	return nil
}

// List returns all sources oldest first. The resolver relies on this order
// for its first-source fallback.
func (r *SourceRepo) List(ctx context.Context) ([]*models.Source, error) {
	sources := []*models.Source{}
	query := `SELECT * FROM sources ORDER BY created_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &sources, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list sources", err)
	}

	return sources, nil
}

func (r *SourceRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sources WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete source", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("source not found", nil)
	}

	return nil
}
