package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/tutorly/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist (or is soft deleted).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyDeleted is returned when deleting a schedule that is already deleted.
	ErrAlreadyDeleted = errors.New("already deleted")
	// ErrNotDeleted is returned when restoring a schedule that is not deleted.
	ErrNotDeleted = errors.New("not deleted")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// ServerTime reads the database clock, used to check local clock skew.
	ServerTime() (time.Time, error)

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Schedules
	AddSchedule(models.Schedule) error
	GetSchedule(id string) (models.Schedule, error)
	GetAllSchedules(includeDeleted bool) ([]models.Schedule, error)
	UpdateSchedule(models.Schedule) error
	DeleteSchedule(id string) error
	RestoreSchedule(id string) error
	SetScheduleApproved(id string, approved bool) error

	// Periods
	AddPeriod(models.Period) error
	GetAllPeriods() ([]models.Period, error)
	DeletePeriod(id string) error

	// Non-working days
	AddNonWorkingDay(models.NonWorkingDay) error
	GetAllNonWorkingDays() ([]models.NonWorkingDay, error)
	DeleteNonWorkingDay(id string) error

	// Classrooms
	AddClassroom(models.Classroom) error
	GetClassroom(id string) (models.Classroom, error)
	GetAllClassrooms() ([]models.Classroom, error)
	DeleteClassroom(id string) error

	// Tutors
	SaveTutor(models.Tutor) error
	GetTutor(email string) (models.Tutor, error)
	GetAllTutors() ([]models.Tutor, error)
	SetTutorRole(email string, role models.Role) error

	// Utils
	GetConfigPath() string
}
