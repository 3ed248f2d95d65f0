// FilePath: internal/repository/postgres/postgres.profile.go
package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/photodream/hub/internal/database"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
)

type ProfileRepo struct {
	PostgresBaseRepo
}

func NewProfileRepository(db database.DB) *ProfileRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ProfileRepo{PostgresBaseRepo: *repo}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (
			id, source_id, name, search_filter, exclude_paths, created_at, updated_at
		) VALUES (
			:id, :source_id, :name, :search_filter, :exclude_paths, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, profile)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return errors.NewValidationError("profile name already exists for this source", err)
		}
		return errors.NewDatabaseError("failed to create profile", err)
	}
	return nil
}

func (r *ProfileRepo) Get(ctx context.Context, sourceID, name string) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `SELECT * FROM profiles WHERE source_id = $1 AND name = $2`

	err := r.db.GetDB().GetContext(ctx, profile, query, sourceID, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("profile not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get profile", err)
	}
	return profile, nil
}

func (r *ProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			search_filter = :search_filter,
			exclude_paths = :exclude_paths,
			updated_at = :updated_at
		WHERE source_id = :source_id AND name = :name`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, profile)
	if err != nil {
		return errors.NewDatabaseError("failed to update profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("profile not found", nil)
	}

	return nil
}

// ListBySource returns a source's profiles oldest first. The resolver relies
// on this order for its first-profile fallback.
func (r *ProfileRepo) ListBySource(ctx context.Context, sourceID string) ([]*models.Profile, error) {
	profiles := []*models.Profile{}
	query := `SELECT * FROM profiles WHERE source_id = $1 ORDER BY created_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &profiles, query, sourceID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list profiles", err)
	}

	return profiles, nil
}

func (r *ProfileRepo) Delete(ctx context.Context, sourceID, name string) error {
	query := `DELETE FROM profiles WHERE source_id = $1 AND name = $2`

	result, err := r.db.GetDB().ExecContext(ctx, query, sourceID, name)
	if err != nil {
		return errors.NewDatabaseError("failed to delete profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("profile not found", nil)
	}

	return nil
}

func (r *ProfileRepo) DeleteBySource(ctx context.Context, sourceID string) error {
	query := `DELETE FROM profiles WHERE source_id = $1`

	_, err := r.db.GetDB().ExecContext(ctx, query, sourceID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete profiles", err)
	}
	return nil
}
