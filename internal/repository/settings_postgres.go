package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value FROM business_settings`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения настроек: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("ошибка сканирования настройки: %w", err)
		}
		settings[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке настроек: %w", err)
	}

	return settings, nil
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM business_settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("ошибка получения настройки %s: %w", key, err)
	}

	return value, true, nil
}

func (r *SettingsRepo) Set(ctx context.Context, values map[string]string) error {
	batch := &pgx.Batch{}
	for key, value := range values {
		batch.Queue(`
			INSERT INTO business_settings (key, value, updated_at) VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`, key, value)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("ошибка сохранения настроек: %w", err)
	}

	return nil
}

func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM business_settings WHERE key = $1`, key); err != nil {
		return fmt.Errorf("ошибка удаления настройки %s: %w", key, err)
	}

	return nil
}
