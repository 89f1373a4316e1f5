package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/tutorly/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://tutor@localhost:5432/tutorly?sslmode=disable"

	if err := SetConnectionString("", testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString("")
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("", ""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString("")

	if _, err := GetConnectionString(""); err != ErrNotFound {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("", "postgres://tutor@localhost:5432/tutorly"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(""); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(""); err != ErrNotFound {
		t.Errorf("after delete, GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(""); err != ErrNotFound {
		t.Errorf("second delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestUser(t *testing.T) {
	tests := []struct {
		profile string
		want    string
		wantErr bool
	}{
		{"", constants.DefaultKeyringUser, false},
		{"staging", constants.DefaultKeyringUser + ":staging", false},
		{"term_2026-fall", constants.DefaultKeyringUser + ":term_2026-fall", false},
		{"-leading", "", true},
		{"has space", "", true},
		{"a:b", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			got, err := User(tt.profile)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProfile) {
					t.Fatalf("User(%q) error = %v, want ErrInvalidProfile", tt.profile, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("User(%q) = %q, %v; want %q", tt.profile, got, err, tt.want)
			}
		})
	}
}

func TestProfilesAreIsolated(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("", "postgres://tutor@prod/tutorly"); err != nil {
		t.Fatal(err)
	}
	if err := SetConnectionString("staging", "postgres://tutor@staging/tutorly"); err != nil {
		t.Fatal(err)
	}

	if got, _ := GetConnectionString(""); got != "postgres://tutor@prod/tutorly" {
		t.Errorf("default profile = %q", got)
	}
	if got, _ := GetConnectionString("staging"); got != "postgres://tutor@staging/tutorly" {
		t.Errorf("staging profile = %q", got)
	}

	if err := DeleteConnectionString("staging"); err != nil {
		t.Fatal(err)
	}
	if _, err := GetConnectionString("staging"); err != ErrNotFound {
		t.Errorf("staging after delete error = %v, want %v", err, ErrNotFound)
	}
	if _, err := GetConnectionString(""); err != nil {
		t.Errorf("default profile should survive deleting staging: %v", err)
	}
	if _, err := GetConnectionString("qa"); err != ErrNotFound {
		t.Errorf("unset profile error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}
