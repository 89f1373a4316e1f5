package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tutorly/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tutorly.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE schedules (id TEXT PRIMARY KEY, subject TEXT)`,
		`INSERT INTO schedules (id, subject) VALUES ('s1', 'Calculus')`,
		`INSERT INTO schedules (id, subject) VALUES ('s2', 'Physics')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}
	return dbPath
}

// steppingClock returns a clock advancing one minute per call.
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func countSchedules(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM schedules").Scan(&n); err != nil {
		t.Fatalf("count schedules in %s: %v", path, err)
	}
	return n
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), "backups") {
		t.Errorf("backup written to %s", backupPath)
	}
	if got := countSchedules(t, backupPath); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup should fail when the database does not exist")
	}
}

func TestBackupRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = steppingClock(time.Date(2024, time.May, 15, 10, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i].Timestamp.Before(backups[i-1].Timestamp) {
			t.Errorf("backup %d is not older than backup %d", i, i-1)
		}
	}
	// The five oldest (10:00..10:04) were rotated away.
	oldest := backups[len(backups)-1].Timestamp
	if want := time.Date(2024, time.May, 15, 10, 5, 0, 0, time.Local); !oldest.Equal(want) {
		t.Errorf("oldest kept backup = %v, want %v", oldest, want)
	}
}

func TestListBackups(t *testing.T) {
	mgr := NewManager(setupTestDB(t))

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Size == 0 || b.Timestamp.IsZero() || b.Name() == "" {
			t.Errorf("incomplete backup info: %+v", b)
		}
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	fixed := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := 0; i < 12; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		name := filepath.Base(p)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}

	backups, _ := mgr.ListBackups()
	if len(backups) != 12 {
		t.Fatalf("expected 12 backups, got %d", len(backups))
	}
	if got := backups[0].Name(); got != "tutorly-20240515-100000-11.db" {
		t.Errorf("newest backup = %s, want the highest counter", got)
	}
	if got := backups[len(backups)-1].Name(); got != "tutorly-20240515-100000.db" {
		t.Errorf("oldest backup = %s, want the uncounted name", got)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, time.May, 15, 10, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schedules (id, subject) VALUES ('s3', 'Chemistry')"); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	db.Close()

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countSchedules(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
	if safety == "" {
		t.Fatal("expected a safety backup path")
	}
	if got := countSchedules(t, safety); got != 3 {
		t.Errorf("safety backup has %d rows, want the pre-restore 3", got)
	}

	backups, _ := mgr.ListBackups()
	if len(backups) != 2 {
		t.Errorf("expected 2 backups after restore, got %d", len(backups))
	}
}

func TestRestoreBackupRejectsInvalidFile(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	invalidPath := filepath.Join(mgr.GetBackupDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database, just some text that is long enough"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}

	if _, err := mgr.RestoreBackup(invalidPath); err == nil {
		t.Error("RestoreBackup should fail for an invalid backup")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(mgr.GetBackupDir(), "missing.db")); err == nil {
		t.Error("RestoreBackup should fail for a missing file")
	}
}

func TestPostgresUnsupported(t *testing.T) {
	mgr := NewManager("postgresql")

	if _, err := mgr.CreateBackup(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("CreateBackup() error = %v, want ErrUnsupported", err)
	}
	if _, err := mgr.ListBackups(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ListBackups() error = %v, want ErrUnsupported", err)
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name    string
		wantSeq int
		wantOK  bool
	}{
		{"tutorly-20240515-103000.db", 0, true},
		{"tutorly-20240515-103000-7.db", 7, true},
		{"tutorly-20240515-103000-x.db", 0, false},
		{"other-20240515-103000.db", 0, false},
		{"tutorly-latest.db", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, seq, ok := parseBackupName(tt.name)
			if ok != tt.wantOK || seq != tt.wantSeq {
				t.Errorf("parseBackupName() = (%v, %d, %v), want seq %d ok %v", ts, seq, ok, tt.wantSeq, tt.wantOK)
			}
		})
	}
}
