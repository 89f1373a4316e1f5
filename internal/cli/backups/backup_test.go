package backups

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tutorly/internal/backup"
	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/scheduler"
	"github.com/julianstephens/tutorly/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Confirm:   func(string, string) (bool, error) { return true, nil },
	}, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list on empty dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	room := models.Classroom{ID: "lab-a", Name: "Lab A"}
	if err := ctx.Store.AddClassroom(room); err != nil {
		t.Fatal(err)
	}
	mgr := backup.NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.DeleteClassroom(room.ID); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}

	restored := sqlite.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	if _, err := restored.GetClassroom(room.ID); err != nil {
		t.Errorf("classroom missing after restore: %v", err)
	}
}

func TestBackupRestoreCmd_Cancelled(t *testing.T) {
	ctx, dbPath := setupTestDB(t)
	ctx.Confirm = func(string, string) (bool, error) { return false, nil }

	backupPath, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatalf("cancelled restore returned error: %v", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		t.Errorf("store should stay open after a cancelled restore: %v", err)
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := t.TempDir()
	name := "tutorly-20240515-100000.db"
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if got, err := resolveBackupPath(full, dir); err != nil || got != full {
		t.Errorf("absolute path: got %q, %v", got, err)
	}
	if got, err := resolveBackupPath(name, dir); err != nil || got != full {
		t.Errorf("bare name: got %q, %v", got, err)
	}
	if _, err := resolveBackupPath("missing.db", dir); err == nil {
		t.Error("expected error for missing backup")
	}
}
