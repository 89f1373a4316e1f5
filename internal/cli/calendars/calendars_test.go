package calendars

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/scheduler"
	"github.com/julianstephens/tutorly/internal/storage"
	"github.com/julianstephens/tutorly/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(scheduler.WithLocation(loc)),
		Confirm:   func(string, string) (bool, error) { return true, nil },
	}
}

func TestPeriodAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &PeriodAddCmd{Name: "Spring 2024", Start: "2024-01-15", End: "2024-05-31"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("period add failed: %v", err)
	}

	periods, err := ctx.Store.GetAllPeriods()
	if err != nil {
		t.Fatal(err)
	}
	if len(periods) != 1 {
		t.Fatalf("expected 1 period, got %d", len(periods))
	}

	loc := ctx.Scheduler.Location()
	start := periods[0].Start.In(loc)
	if start.Year() != 2024 || start.Month() != time.January || start.Day() != 15 || start.Hour() != 0 {
		t.Errorf("period start = %v, want local midnight 2024-01-15", start)
	}
	if err := (&PeriodListCmd{}).Run(ctx); err != nil {
		t.Errorf("period list failed: %v", err)
	}
}

func TestPeriodAddCmd_Invalid(t *testing.T) {
	ctx := setupTestDB(t)

	tests := []PeriodAddCmd{
		{Name: "Backwards", Start: "2024-05-31", End: "2024-01-15"},
		{Name: "Bad date", Start: "2024-02-30", End: "2024-05-31"},
		{Name: "", Start: "2024-01-15", End: "2024-05-31"},
	}
	for _, cmd := range tests {
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("expected error for %+v", cmd)
		}
	}
}

func TestPeriodDeleteCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&PeriodAddCmd{Name: "Fall", Start: "2024-08-20", End: "2024-12-15"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	periods, _ := ctx.Store.GetAllPeriods()

	if err := (&PeriodDeleteCmd{ID: periods[0].ID}).Run(ctx); err != nil {
		t.Fatalf("period delete failed: %v", err)
	}
	periods, _ = ctx.Store.GetAllPeriods()
	if len(periods) != 0 {
		t.Errorf("expected no periods, got %d", len(periods))
	}

	if err := (&PeriodDeleteCmd{ID: "missing", Yes: true}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHolidayCommands(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&HolidayAddCmd{Date: "2024-07-04", Reason: "Independence Day"}).Run(ctx); err != nil {
		t.Fatalf("holiday add failed: %v", err)
	}
	if err := (&HolidayAddCmd{Date: "July 4"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}

	days, err := ctx.Store.GetAllNonWorkingDays()
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].Reason != "Independence Day" {
		t.Fatalf("unexpected non-working days: %+v", days)
	}
	if got := days[0].Date.In(ctx.Scheduler.Location()).Format("2006-01-02"); got != "2024-07-04" {
		t.Errorf("stored date = %s, want 2024-07-04", got)
	}

	if err := (&HolidayListCmd{}).Run(ctx); err != nil {
		t.Errorf("holiday list failed: %v", err)
	}
	if err := (&HolidayDeleteCmd{ID: days[0].ID}).Run(ctx); err != nil {
		t.Errorf("holiday delete failed: %v", err)
	}
	if err := (&HolidayDeleteCmd{ID: days[0].ID}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
