package system

import (
	"fmt"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := validateData(ctx)
	if err != nil {
		return err
	}

	fmt.Println(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}

// validateData runs the cross-schedule checks. Classroom and tutor checks
// are skipped while no classrooms or tutors are registered.
func validateData(ctx *cli.Context) (validation.ValidationResult, error) {
	schedules, err := ctx.Store.GetAllSchedules(false)
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get schedules: %w", err)
	}
	classrooms, err := ctx.Store.GetAllClassrooms()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get classrooms: %w", err)
	}
	tutors, err := ctx.Store.GetAllTutors()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get tutors: %w", err)
	}

	if len(classrooms) == 0 {
		classrooms = nil
	}
	if len(tutors) == 0 {
		tutors = nil
	}
	return validation.New().ValidateSchedules(schedules, classrooms, tutors), nil
}
