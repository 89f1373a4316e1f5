package keyring

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tutorly/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrInvalidProfile is returned for profile names that cannot key an entry
	ErrInvalidProfile = errors.New("invalid keyring profile")
)

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,31}$`)

// User returns the keyring account for a profile. The empty profile maps to
// the default entry so existing installs keep working.
func User(profile string) (string, error) {
	if profile == "" {
		return constants.DefaultKeyringUser, nil
	}
	if !profilePattern.MatchString(profile) {
		return "", fmt.Errorf("%w %q: use letters, digits, '-' or '_'", ErrInvalidProfile, profile)
	}
	return constants.DefaultKeyringUser + ":" + profile, nil
}

// GetConnectionString retrieves the database connection string stored for
// profile.
func GetConnectionString(profile string) (string, error) {
	user, err := User(profile)
	if err != nil {
		return "", err
	}
	connStr, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(profile, connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	user, err := User(profile)
	if err != nil {
		return err
	}
	if err := keyring.Set(constants.AppName, user, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString(profile string) error {
	user, err := User(profile)
	if err != nil {
		return err
	}
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the keyring answers at all; a not-found read
// counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-check")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
