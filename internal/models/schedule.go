package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/tutorly/internal/constants"
)

// Session is one weekly recurrence slot. Sessions are one hour long.
type Session struct {
	DayOfWeek DayOfWeek `json:"day_of_week" validate:"min=1,max=7"`
	StartTime int       `json:"start_time" validate:"min=0,max=23"` // hour of day
}

// End returns the hour the session finishes. It is only used for display.
func (s Session) End() int {
	return s.StartTime + constants.SessionLengthHours
}

func (s Session) String() string {
	return fmt.Sprintf("%s %02d:00-%02d:00", s.DayOfWeek.Short(), s.StartTime, s.End())
}

// Schedule is a recurring weekly class bounded by an inclusive
// month-granularity validity window.
type Schedule struct {
	ID         string    `json:"id" validate:"required"`
	SalonID    string    `json:"salon_id" validate:"required"`
	TutorEmail string    `json:"tutor_email" validate:"required,email"`
	Subject    string    `json:"subject" validate:"required,max=120"`
	Approved   bool      `json:"approved"`
	StartYear  int       `json:"start_year" validate:"min=1970,max=9999"`
	StartMonth int       `json:"start_month" validate:"min=1,max=12"`
	EndYear    int       `json:"end_year" validate:"min=1970,max=9999"`
	EndMonth   int       `json:"end_month" validate:"min=1,max=12"`
	Sessions   []Session `json:"sessions" validate:"dive"`
	CreatedAt  string    `json:"created_at,omitempty"` // RFC3339 timestamp
	DeletedAt  *string   `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Validate checks field ranges and that the window is not inverted.
func (s Schedule) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	if s.StartYear > s.EndYear || (s.StartYear == s.EndYear && s.StartMonth > s.EndMonth) {
		return fmt.Errorf("window start %04d-%02d is after end %04d-%02d",
			s.StartYear, s.StartMonth, s.EndYear, s.EndMonth)
	}
	return nil
}

// Window renders the validity window as "YYYY-MM..YYYY-MM".
func (s Schedule) Window() string {
	return fmt.Sprintf("%04d-%02d..%04d-%02d", s.StartYear, s.StartMonth, s.EndYear, s.EndMonth)
}

// WindowStart returns the first day of the window in loc.
func (s Schedule) WindowStart(loc *time.Location) time.Time {
	return time.Date(s.StartYear, time.Month(s.StartMonth), 1, 0, 0, 0, 0, loc)
}

// WindowEnd returns the first instant after the window in loc.
func (s Schedule) WindowEnd(loc *time.Location) time.Time {
	return time.Date(s.EndYear, time.Month(s.EndMonth)+1, 1, 0, 0, 0, 0, loc)
}

// IsDeleted reports whether the schedule has been soft deleted.
func (s Schedule) IsDeleted() bool {
	return s.DeletedAt != nil
}
