// FilePath: internal/repository/postgres/postgres.device.go
package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/photodream/hub/internal/database"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/models"
)

type DeviceRepo struct {
	PostgresBaseRepo
}

func NewDeviceRepository(db database.DB) *DeviceRepo {
	repo := &PostgresBaseRepo{db: db}
	return &DeviceRepo{PostgresBaseRepo: *repo}
}

func (r *DeviceRepo) Create(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO devices (
			id, name, ip, port, profile, display, created_at, updated_at
		) VALUES (
			:id, :name, :ip, :port, :profile, :display, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, device)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return errors.NewValidationError("device already exists", err)
		}
		return errors.NewDatabaseError("failed to create device", err)
	}
	return nil
}

func (r *DeviceRepo) Get(ctx context.Context, id string) (*models.Device, error) {
	device := &models.Device{}
	query := `SELECT * FROM devices WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, device, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("device not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get device", err)
	}
	return device, nil
}

func (r *DeviceRepo) Update(ctx context.Context, device *models.Device) error {
	query := `
		UPDATE devices SET
			name = :name,
			ip = :ip,
			port = :port,
			profile = :profile,
			display = :display,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, device)
	if err != nil {
		return errors.NewDatabaseError("failed to update device", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("device not found", nil)
	}

	return nil
}

func (r *DeviceRepo) UpdateProfile(ctx context.Context, id, profile string, updatedAt time.Time) error {
	query := `UPDATE devices SET profile = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.GetDB().ExecContext(ctx, query, profile, updatedAt, id)
	if err != nil {
		return errors.NewDatabaseError("failed to update device profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("device not found", nil)
	}

	return nil
}

// List returns devices oldest first. The staggered fleet refresh walks this
// order, so the longest-registered frame refreshes first.
func (r *DeviceRepo) List(ctx context.Context, offset, limit int) ([]*models.Device, error) {
	devices := []*models.Device{}
	query := `SELECT * FROM devices ORDER BY created_at ASC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &devices, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list devices", err)
	}

	return devices, nil
}

func (r *DeviceRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM devices WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete device", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("device not found", nil)
	}

	return nil
}
