package sqldb

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/storage"
)

// GetSettings overlays stored keys on the defaults. Unknown keys are ignored.
func (r *Repo) GetSettings() (models.Settings, error) {
	rows, err := r.query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.DefaultSettings()
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingClockSkewToleranceSec:
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ClockSkewToleranceSec = n
		case constants.SettingEnforceClockPolicy:
			settings.EnforceClockPolicy = value == "true"
		case constants.SettingAgendaDays:
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.AgendaDays = n
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}
	return settings, nil
}

func (r *Repo) SaveSettings(settings models.Settings) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(r.dialect.Rebind(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value"))
	if err != nil {
		return err
	}
	defer stmt.Close()

	values := [][2]string{
		{constants.SettingTimezone, settings.Timezone},
		{constants.SettingClockSkewToleranceSec, strconv.Itoa(settings.ClockSkewToleranceSec)},
		{constants.SettingEnforceClockPolicy, strconv.FormatBool(settings.EnforceClockPolicy)},
		{constants.SettingAgendaDays, strconv.Itoa(settings.AgendaDays)},
	}
	for _, kv := range values {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("saving %s: %w", kv[0], err)
		}
	}

	return tx.Commit()
}
