package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/models"
)

type SystemSettingRepository struct {
	DB *pgxpool.Pool
}

func NewSystemSettingRepository(db *pgxpool.Pool) *SystemSettingRepository {
	return &SystemSettingRepository{DB: db}
}

// Get retrieves a setting by key
func (r *SystemSettingRepository) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	err := r.DB.QueryRow(ctx,
		`SELECT id, setting_key, setting_value, COALESCE(description, ''), updated_at, COALESCE(updated_by_user_id, 0)
		 FROM system_settings WHERE setting_key = $1`, key,
	).Scan(&setting.ID, &setting.SettingKey, &setting.SettingValue, &setting.Description,
		&setting.UpdatedAt, &setting.UpdatedByUserID)

	if err != nil {
		return nil, err
	}

	return &setting, nil
}

// Set upserts a setting value
func (r *SystemSettingRepository) Set(ctx context.Context, key, value string, updatedByUserID int) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO system_settings(setting_key, setting_value, updated_at, updated_by_user_id)
		 VALUES($1, $2, NOW(), $3)
		 ON CONFLICT (setting_key) DO UPDATE
		 SET setting_value = EXCLUDED.setting_value, updated_at = NOW(), updated_by_user_id = EXCLUDED.updated_by_user_id`,
		key, value, updatedByUserID,
	)
	return err
}

// List returns all settings
func (r *SystemSettingRepository) List(ctx context.Context) ([]*models.SystemSetting, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, setting_key, setting_value, COALESCE(description, ''), updated_at, COALESCE(updated_by_user_id, 0)
		 FROM system_settings ORDER BY setting_key`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.SystemSetting
	for rows.Next() {
		var setting models.SystemSetting
		err := rows.Scan(&setting.ID, &setting.SettingKey, &setting.SettingValue, &setting.Description,
			&setting.UpdatedAt, &setting.UpdatedByUserID)
		if err != nil {
			return nil, err
		}
		settings = append(settings, &setting)
	}

	return settings, nil
}
