package schedules

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/scheduler"
	"github.com/julianstephens/tutorly/internal/storage"
	"github.com/julianstephens/tutorly/internal/utils"
)

type ScheduleAddCmd struct {
	Subject  string `arg:"" help:"Subject taught in the sessions."`
	Tutor    string `required:"" help:"Tutor email."`
	Salon    string `required:"" help:"Classroom ID the sessions take place in."`
	Sessions string `required:"" help:"Weekly sessions as day@hour pairs, e.g. mon@14,fri@9."`
	From     string `required:"" help:"First month of the validity window (YYYY-MM)."`
	To       string `required:"" help:"Last month of the validity window (YYYY-MM)."`
	Approve  bool   `help:"Approve the schedule immediately."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	sessions, err := cli.ParseSessions(c.Sessions)
	if err != nil {
		return err
	}
	startYear, startMonth, err := utils.ParseMonth(c.From)
	if err != nil {
		return err
	}
	endYear, endMonth, err := utils.ParseMonth(c.To)
	if err != nil {
		return err
	}

	sched := models.Schedule{
		ID:         uuid.New().String(),
		SalonID:    c.Salon,
		TutorEmail: c.Tutor,
		Subject:    c.Subject,
		StartYear:  startYear,
		StartMonth: int(startMonth),
		EndYear:    endYear,
		EndMonth:   int(endMonth),
		Sessions:   sessions,
	}
	if err := sched.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	if c.Approve {
		if err := checkTutorCanTeach(ctx, sched.TutorEmail); err != nil {
			return err
		}
		sched.Approved = true
	}

	if _, err := ctx.Store.GetClassroom(sched.SalonID); errors.Is(err, storage.ErrNotFound) {
		cli.Warnf("Classroom %q is not registered", sched.SalonID)
	}

	if err := ctx.Store.AddSchedule(sched); err != nil {
		return fmt.Errorf("failed to add schedule: %w", err)
	}

	cli.Successf("Added schedule: %s (ID: %s)", sched.Subject, sched.ID)
	return nil
}

type ScheduleEditCmd struct {
	ID       string  `arg:"" help:"Schedule ID to edit."`
	Subject  *string `help:"New subject."`
	Tutor    *string `help:"New tutor email."`
	Salon    *string `help:"New classroom ID."`
	Sessions *string `help:"Replace sessions, e.g. mon@14,fri@9."`
	From     *string `help:"New first month (YYYY-MM)."`
	To       *string `help:"New last month (YYYY-MM)."`
}

func (c *ScheduleEditCmd) Run(ctx *cli.Context) error {
	sched, err := ctx.Store.GetSchedule(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if c.Subject != nil {
		sched.Subject = *c.Subject
	}
	if c.Tutor != nil {
		sched.TutorEmail = *c.Tutor
	}
	if c.Salon != nil {
		sched.SalonID = *c.Salon
	}
	if c.Sessions != nil {
		sessions, err := cli.ParseSessions(*c.Sessions)
		if err != nil {
			return err
		}
		sched.Sessions = sessions
	}
	if c.From != nil {
		year, month, err := utils.ParseMonth(*c.From)
		if err != nil {
			return err
		}
		sched.StartYear, sched.StartMonth = year, int(month)
	}
	if c.To != nil {
		year, month, err := utils.ParseMonth(*c.To)
		if err != nil {
			return err
		}
		sched.EndYear, sched.EndMonth = year, int(month)
	}

	if err := sched.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	if err := ctx.Store.UpdateSchedule(sched); err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	cli.Successf("Updated schedule: %s", sched.Subject)
	return nil
}

type ScheduleListCmd struct {
	All     bool `help:"Include deleted schedules."`
	Pending bool `help:"Only show schedules awaiting approval."`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	schedules, err := ctx.Store.GetAllSchedules(c.All)
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}

	shown := 0
	for _, s := range schedules {
		if c.Pending && (s.Approved || s.IsDeleted()) {
			continue
		}
		fmt.Println(cli.FormatSchedule(s))
		shown++
	}

	if shown == 0 {
		fmt.Println("No schedules found. Add one with 'tutorly schedule add'.")
	}
	return nil
}

type ScheduleShowCmd struct {
	ID string `arg:"" help:"Schedule ID to show."`
}

func (c *ScheduleShowCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Store.GetSchedule(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	cli.Title(s.Subject)
	fmt.Printf("  ID:        %s\n", s.ID)
	fmt.Printf("  Tutor:     %s\n", s.TutorEmail)
	fmt.Printf("  Classroom: %s\n", s.SalonID)
	fmt.Printf("  Window:    %s\n", s.Window())
	fmt.Printf("  Approved:  %v\n", s.Approved)
	fmt.Println("  Sessions:")
	for _, sess := range s.Sessions {
		fmt.Printf("    - %s\n", sess)
	}

	now := ctx.Scheduler.Now()
	if occ, ok := scheduler.NextSessionTime(s, now); ok {
		fmt.Printf("  Next:      %s %s (%s)\n",
			occ.Start.Format(constants.DateFormat), occ.Start.Format(constants.DisplayFormat), cli.Relative(occ.Start, now))
	} else {
		fmt.Println(cli.MutedStyle.Render("  Next:      none (outside the validity window)"))
	}
	return nil
}

type ScheduleApproveCmd struct {
	ID string `arg:"" help:"Schedule ID to approve."`
}

func (c *ScheduleApproveCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Store.GetSchedule(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	if err := checkTutorCanTeach(ctx, s.TutorEmail); err != nil {
		return err
	}
	if err := ctx.Store.SetScheduleApproved(s.ID, true); err != nil {
		return fmt.Errorf("failed to approve schedule: %w", err)
	}
	cli.Successf("Approved schedule: %s", s.Subject)
	return nil
}

type ScheduleRevokeCmd struct {
	ID string `arg:"" help:"Schedule ID to revoke approval for."`
}

func (c *ScheduleRevokeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.SetScheduleApproved(c.ID, false); err != nil {
		return fmt.Errorf("failed to revoke schedule: %w", err)
	}
	cli.Successf("Revoked approval for schedule %s", c.ID)
	return nil
}

type ScheduleDeleteCmd struct {
	ID  string `arg:"" help:"Schedule ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ScheduleDeleteCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Store.GetSchedule(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	ok, err := ctx.Ask(fmt.Sprintf("Delete schedule %q?", s.Subject), "It can be restored with 'tutorly schedule restore'.", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteSchedule(s.ID); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	cli.Successf("Deleted schedule: %s", s.Subject)
	return nil
}

type ScheduleRestoreCmd struct {
	ID string `arg:"" help:"Schedule ID to restore."`
}

func (c *ScheduleRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreSchedule(c.ID); err != nil {
		return fmt.Errorf("failed to restore schedule: %w", err)
	}
	cli.Successf("Restored schedule %s", c.ID)
	return nil
}

// checkTutorCanTeach rejects tutors whose registered role cannot teach.
// Unregistered tutors only produce a warning.
func checkTutorCanTeach(ctx *cli.Context, email string) error {
	tutor, err := ctx.Store.GetTutor(email)
	if errors.Is(err, storage.ErrNotFound) {
		cli.Warnf("Tutor %s is not registered", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get tutor: %w", err)
	}
	if !tutor.Role.CanTeach() {
		return fmt.Errorf("tutor %s has role %q and cannot be approved to teach", email, tutor.Role)
	}
	return nil
}
