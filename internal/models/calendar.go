package models

import (
	"fmt"
	"time"
)

// Period is an administrator defined inclusive date range, e.g. an academic term.
type Period struct {
	ID    string    `json:"id" validate:"required"`
	Name  string    `json:"name" validate:"required,max=80"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p Period) Validate() error {
	if err := validate.Struct(p); err != nil {
		return formatValidationError(err)
	}
	if p.End.Before(p.Start) {
		return fmt.Errorf("period %q ends before it starts", p.Name)
	}
	return nil
}

// NonWorkingDay is a single calendar date excluded from the agenda, e.g. a holiday.
type NonWorkingDay struct {
	ID     string    `json:"id" validate:"required"`
	Date   time.Time `json:"date"`
	Reason string    `json:"reason,omitempty" validate:"max=120"`
}

func (d NonWorkingDay) Validate() error {
	if err := validate.Struct(d); err != nil {
		return formatValidationError(err)
	}
	if d.Date.IsZero() {
		return fmt.Errorf("non-working day date is required")
	}
	return nil
}

// Classroom is a room schedules can be booked into. Schedules reference it by ID.
type Classroom struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required,max=80"`
	Building string `json:"building,omitempty" validate:"max=80"`
	Capacity int    `json:"capacity" validate:"min=0"`
}

func (c Classroom) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}
