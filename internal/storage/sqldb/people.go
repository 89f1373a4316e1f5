package sqldb

import (
	"fmt"

	"github.com/julianstephens/tutorly/internal/models"
)

func (r *Repo) AddClassroom(c models.Classroom) error {
	_, err := r.exec("INSERT INTO classrooms (id, name, building, capacity) VALUES (?, ?, ?, ?)",
		c.ID, c.Name, c.Building, c.Capacity)
	if err != nil {
		return fmt.Errorf("insert classroom %s: %w", c.ID, err)
	}
	return nil
}

func (r *Repo) GetClassroom(id string) (models.Classroom, error) {
	var c models.Classroom
	err := r.queryRow("SELECT id, name, building, capacity FROM classrooms WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.Building, &c.Capacity)
	if err != nil {
		return models.Classroom{}, wrapNoRows(err, "classroom", id)
	}
	return c, nil
}

func (r *Repo) GetAllClassrooms() ([]models.Classroom, error) {
	rows, err := r.query("SELECT id, name, building, capacity FROM classrooms ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Classroom
	for rows.Next() {
		var c models.Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.Building, &c.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, c)
	}
	return rooms, rows.Err()
}

func (r *Repo) DeleteClassroom(id string) error {
	return r.execOne("classroom", id, "DELETE FROM classrooms WHERE id = ?", id)
}

// SaveTutor inserts or replaces a tutor keyed by email.
func (r *Repo) SaveTutor(t models.Tutor) error {
	_, err := r.exec(`
		INSERT INTO tutors (email, name, role) VALUES (?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET name = excluded.name, role = excluded.role`,
		t.Email, t.Name, string(t.Role))
	if err != nil {
		return fmt.Errorf("save tutor %s: %w", t.Email, err)
	}
	return nil
}

func (r *Repo) GetTutor(email string) (models.Tutor, error) {
	var t models.Tutor
	var role string
	err := r.queryRow("SELECT email, name, role FROM tutors WHERE email = ?", email).
		Scan(&t.Email, &t.Name, &role)
	if err != nil {
		return models.Tutor{}, wrapNoRows(err, "tutor", email)
	}
	t.Role = models.Role(role)
	return t, nil
}

func (r *Repo) GetAllTutors() ([]models.Tutor, error) {
	rows, err := r.query("SELECT email, name, role FROM tutors ORDER BY email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tutors []models.Tutor
	for rows.Next() {
		var t models.Tutor
		var role string
		if err := rows.Scan(&t.Email, &t.Name, &role); err != nil {
			return nil, err
		}
		t.Role = models.Role(role)
		tutors = append(tutors, t)
	}
	return tutors, rows.Err()
}

func (r *Repo) SetTutorRole(email string, role models.Role) error {
	return r.execOne("tutor", email, "UPDATE tutors SET role = ? WHERE email = ?", string(role), email)
}
