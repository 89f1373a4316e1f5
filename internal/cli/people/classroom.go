package people

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/models"
)

type ClassroomAddCmd struct {
	Name     string `arg:"" help:"Classroom name."`
	ID       string `help:"Classroom ID schedules refer to (generated when empty)."`
	Building string `help:"Building the classroom is in."`
	Capacity int    `help:"Number of seats."`
}

func (c *ClassroomAddCmd) Run(ctx *cli.Context) error {
	room := models.Classroom{
		ID:       c.ID,
		Name:     c.Name,
		Building: c.Building,
		Capacity: c.Capacity,
	}
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if err := room.Validate(); err != nil {
		return fmt.Errorf("invalid classroom: %w", err)
	}

	if err := ctx.Store.AddClassroom(room); err != nil {
		return fmt.Errorf("failed to add classroom: %w", err)
	}
	cli.Successf("Added classroom: %s (ID: %s)", room.Name, room.ID)
	return nil
}

type ClassroomListCmd struct{}

func (c *ClassroomListCmd) Run(ctx *cli.Context) error {
	rooms, err := ctx.Store.GetAllClassrooms()
	if err != nil {
		return fmt.Errorf("failed to list classrooms: %w", err)
	}
	if len(rooms) == 0 {
		fmt.Println("No classrooms registered.")
		return nil
	}
	for _, r := range rooms {
		building := r.Building
		if building == "" {
			building = "-"
		}
		fmt.Printf("%s  %s  %d seats  (ID: %s)\n", r.Name, building, r.Capacity, r.ID)
	}
	return nil
}

type ClassroomDeleteCmd struct {
	ID  string `arg:"" help:"Classroom ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClassroomDeleteCmd) Run(ctx *cli.Context) error {
	schedules, err := ctx.Store.GetAllSchedules(false)
	if err != nil {
		return fmt.Errorf("failed to get schedules: %w", err)
	}
	inUse := 0
	for _, s := range schedules {
		if s.SalonID == c.ID {
			inUse++
		}
	}

	description := ""
	if inUse > 0 {
		description = fmt.Sprintf("%d schedule(s) still reference this classroom.", inUse)
	}
	ok, err := ctx.Ask(fmt.Sprintf("Delete classroom %s?", c.ID), description, c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := ctx.Store.DeleteClassroom(c.ID); err != nil {
		return fmt.Errorf("failed to delete classroom: %w", err)
	}
	cli.Successf("Deleted classroom %s", c.ID)
	if inUse > 0 {
		cli.Warnf("%d schedule(s) now reference an unknown classroom; run 'tutorly validate'", inUse)
	}
	return nil
}
