package sqldb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/storage"
)

const scheduleColumns = `id, salon_id, tutor_email, subject, approved,
	start_year, start_month, end_year, end_month, created_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (models.Schedule, error) {
	var s models.Schedule
	var deletedAt sql.NullString
	err := row.Scan(&s.ID, &s.SalonID, &s.TutorEmail, &s.Subject, &s.Approved,
		&s.StartYear, &s.StartMonth, &s.EndYear, &s.EndMonth, &s.CreatedAt, &deletedAt)
	if err != nil {
		return models.Schedule{}, err
	}
	if deletedAt.Valid {
		s.DeletedAt = &deletedAt.String
	}
	return s, nil
}

func (r *Repo) AddSchedule(s models.Schedule) error {
	if s.CreatedAt == "" {
		s.CreatedAt = r.now().UTC().Format(time.RFC3339)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(r.dialect.Rebind(`
		INSERT INTO schedules (`+scheduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		s.ID, s.SalonID, s.TutorEmail, s.Subject, s.Approved,
		s.StartYear, s.StartMonth, s.EndYear, s.EndMonth, s.CreatedAt, s.DeletedAt)
	if err != nil {
		return fmt.Errorf("insert schedule %s: %w", s.ID, err)
	}

	if err := r.insertSessions(tx, s.ID, s.Sessions); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) insertSessions(tx *sql.Tx, scheduleID string, sessions []models.Session) error {
	stmt, err := tx.Prepare(r.dialect.Rebind(
		"INSERT INTO schedule_sessions (schedule_id, position, day_of_week, start_time) VALUES (?, ?, ?, ?)"))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, sess := range sessions {
		if _, err := stmt.Exec(scheduleID, i, int(sess.DayOfWeek), sess.StartTime); err != nil {
			return fmt.Errorf("insert session %d of schedule %s: %w", i, scheduleID, err)
		}
	}
	return nil
}

// GetSchedule returns a live schedule with its sessions in declaration order.
func (r *Repo) GetSchedule(id string) (models.Schedule, error) {
	row := r.queryRow("SELECT "+scheduleColumns+" FROM schedules WHERE id = ? AND deleted_at IS NULL", id)
	s, err := scanSchedule(row)
	if err != nil {
		return models.Schedule{}, wrapNoRows(err, "schedule", id)
	}

	sessions, err := r.sessionsByID(id)
	if err != nil {
		return models.Schedule{}, err
	}
	s.Sessions = sessions[id]
	return s, nil
}

func (r *Repo) GetAllSchedules(includeDeleted bool) ([]models.Schedule, error) {
	q := "SELECT " + scheduleColumns + " FROM schedules"
	if !includeDeleted {
		q += " WHERE deleted_at IS NULL"
	}
	q += " ORDER BY created_at, id"

	rows, err := r.query(q)
	if err != nil {
		return nil, err
	}
	var schedules []models.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	sessions, err := r.sessionsByID("")
	if err != nil {
		return nil, err
	}
	for i := range schedules {
		schedules[i].Sessions = sessions[schedules[i].ID]
	}
	return schedules, nil
}

// sessionsByID loads sessions grouped by schedule. An empty id loads all.
func (r *Repo) sessionsByID(id string) (map[string][]models.Session, error) {
	q := "SELECT schedule_id, day_of_week, start_time FROM schedule_sessions"
	var args []any
	if id != "" {
		q += " WHERE schedule_id = ?"
		args = append(args, id)
	}
	q += " ORDER BY schedule_id, position"

	rows, err := r.query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]models.Session)
	for rows.Next() {
		var scheduleID string
		var day, hour int
		if err := rows.Scan(&scheduleID, &day, &hour); err != nil {
			return nil, err
		}
		out[scheduleID] = append(out[scheduleID], models.Session{
			DayOfWeek: models.DayOfWeek(day),
			StartTime: hour,
		})
	}
	return out, rows.Err()
}

// UpdateSchedule rewrites a live schedule and replaces its sessions.
func (r *Repo) UpdateSchedule(s models.Schedule) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(r.dialect.Rebind(`
		UPDATE schedules SET salon_id = ?, tutor_email = ?, subject = ?, approved = ?,
			start_year = ?, start_month = ?, end_year = ?, end_month = ?
		WHERE id = ? AND deleted_at IS NULL`),
		s.SalonID, s.TutorEmail, s.Subject, s.Approved,
		s.StartYear, s.StartMonth, s.EndYear, s.EndMonth, s.ID)
	if err != nil {
		return fmt.Errorf("update schedule %s: %w", s.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return notFound("schedule", s.ID)
	}

	if _, err := tx.Exec(r.dialect.Rebind("DELETE FROM schedule_sessions WHERE schedule_id = ?"), s.ID); err != nil {
		return fmt.Errorf("clear sessions of schedule %s: %w", s.ID, err)
	}
	if err := r.insertSessions(tx, s.ID, s.Sessions); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) scheduleDeletedAt(id string) (sql.NullString, error) {
	var deletedAt sql.NullString
	err := r.queryRow("SELECT deleted_at FROM schedules WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		return deletedAt, wrapNoRows(err, "schedule", id)
	}
	return deletedAt, nil
}

// DeleteSchedule soft deletes a schedule by stamping deleted_at.
func (r *Repo) DeleteSchedule(id string) error {
	deletedAt, err := r.scheduleDeletedAt(id)
	if err != nil {
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("schedule %s: %w", id, storage.ErrAlreadyDeleted)
	}

	now := r.now().UTC().Format(time.RFC3339)
	return r.execOne("schedule", id, "UPDATE schedules SET deleted_at = ? WHERE id = ?", now, id)
}

func (r *Repo) RestoreSchedule(id string) error {
	deletedAt, err := r.scheduleDeletedAt(id)
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("schedule %s: %w", id, storage.ErrNotDeleted)
	}

	return r.execOne("schedule", id, "UPDATE schedules SET deleted_at = NULL WHERE id = ?", id)
}

func (r *Repo) SetScheduleApproved(id string, approved bool) error {
	return r.execOne("schedule", id,
		"UPDATE schedules SET approved = ? WHERE id = ? AND deleted_at IS NULL", approved, id)
}
