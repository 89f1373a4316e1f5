package people

import (
	"fmt"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/models"
)

type TutorAddCmd struct {
	Email string `arg:"" help:"Tutor email."`
	Name  string `required:"" help:"Tutor display name."`
	Role  string `default:"pending" help:"Role: rejected, pending, tutor or admin (legacy codes -2, 0, 1, 2 accepted)."`
}

func (c *TutorAddCmd) Run(ctx *cli.Context) error {
	role, err := models.ParseRole(c.Role)
	if err != nil {
		return err
	}
	tutor := models.Tutor{Email: c.Email, Name: c.Name, Role: role}
	if err := tutor.Validate(); err != nil {
		return fmt.Errorf("invalid tutor: %w", err)
	}

	if err := ctx.Store.SaveTutor(tutor); err != nil {
		return fmt.Errorf("failed to save tutor: %w", err)
	}
	cli.Successf("Saved tutor: %s <%s> (%s)", tutor.Name, tutor.Email, tutor.Role)
	return nil
}

type TutorListCmd struct{}

func (c *TutorListCmd) Run(ctx *cli.Context) error {
	tutors, err := ctx.Store.GetAllTutors()
	if err != nil {
		return fmt.Errorf("failed to list tutors: %w", err)
	}
	if len(tutors) == 0 {
		fmt.Println("No tutors registered.")
		return nil
	}
	for _, t := range tutors {
		role := string(t.Role)
		if !t.Role.CanTeach() {
			role = cli.MutedStyle.Render(role)
		}
		fmt.Printf("%s <%s>  %s\n", t.Name, t.Email, role)
	}
	return nil
}

type TutorRoleCmd struct {
	Email string `arg:"" help:"Tutor email."`
	Role  string `arg:"" help:"New role: rejected, pending, tutor or admin."`
}

func (c *TutorRoleCmd) Run(ctx *cli.Context) error {
	role, err := models.ParseRole(c.Role)
	if err != nil {
		return err
	}
	if err := ctx.Store.SetTutorRole(c.Email, role); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	cli.Successf("%s is now %s", c.Email, role)
	return nil
}
