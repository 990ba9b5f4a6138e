package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aantony2/nautilus/internal/models"
)

// Get unmarshals the settings row for key into out. Returns false when no row
// exists; out is left untouched in that case.
func (r *PostgresRepository) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	var raw []byte
	err := r.db.GetContext(ctx, &raw, `SELECT value FROM settings WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return true, nil
}

// Set upserts the settings row for key.
func (r *PostgresRepository) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, raw, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// LoadCloudCredentials reads the cloud_credentials document, seeding the row
// with defaults when absent.
func LoadCloudCredentials(ctx context.Context, repo SettingsRepository) (models.CloudCredentials, error) {
	creds := models.DefaultCloudCredentials()
	found, err := repo.Get(ctx, models.SettingsKeyCloudCredentials, &creds)
	if err != nil {
		return creds, err
	}
	if !found {
		if err := repo.Set(ctx, models.SettingsKeyCloudCredentials, creds); err != nil {
			return creds, err
		}
	}
	if creds.UpdateSchedule == "" {
		creds.UpdateSchedule = models.DefaultUpdateSchedule
	}
	return creds, nil
}
