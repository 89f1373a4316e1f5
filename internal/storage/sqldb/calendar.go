package sqldb

import (
	"fmt"

	"github.com/julianstephens/tutorly/internal/models"
)

func (r *Repo) AddPeriod(p models.Period) error {
	_, err := r.exec("INSERT INTO periods (id, name, start_at, end_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, formatInstant(p.Start), formatInstant(p.End))
	if err != nil {
		return fmt.Errorf("insert period %s: %w", p.ID, err)
	}
	return nil
}

func (r *Repo) GetAllPeriods() ([]models.Period, error) {
	rows, err := r.query("SELECT id, name, start_at, end_at FROM periods ORDER BY start_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []models.Period
	for rows.Next() {
		var p models.Period
		var start, end string
		if err := rows.Scan(&p.ID, &p.Name, &start, &end); err != nil {
			return nil, err
		}
		if p.Start, err = parseInstant(start); err != nil {
			return nil, fmt.Errorf("period %s start: %w", p.ID, err)
		}
		if p.End, err = parseInstant(end); err != nil {
			return nil, fmt.Errorf("period %s end: %w", p.ID, err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (r *Repo) DeletePeriod(id string) error {
	return r.execOne("period", id, "DELETE FROM periods WHERE id = ?", id)
}

func (r *Repo) AddNonWorkingDay(d models.NonWorkingDay) error {
	_, err := r.exec("INSERT INTO non_working_days (id, date, reason) VALUES (?, ?, ?)",
		d.ID, formatInstant(d.Date), d.Reason)
	if err != nil {
		return fmt.Errorf("insert non-working day %s: %w", d.ID, err)
	}
	return nil
}

func (r *Repo) GetAllNonWorkingDays() ([]models.NonWorkingDay, error) {
	rows, err := r.query("SELECT id, date, reason FROM non_working_days ORDER BY date, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.NonWorkingDay
	for rows.Next() {
		var d models.NonWorkingDay
		var date string
		if err := rows.Scan(&d.ID, &date, &d.Reason); err != nil {
			return nil, err
		}
		if d.Date, err = parseInstant(date); err != nil {
			return nil, fmt.Errorf("non-working day %s: %w", d.ID, err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *Repo) DeleteNonWorkingDay(id string) error {
	return r.execOne("non-working day", id, "DELETE FROM non_working_days WHERE id = ?", id)
}
