package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/tutorly/internal/models"
)

// ParseSessions parses a comma-separated list of day@hour pairs such as
// "mon@14,fri@9" or "1@14:00". Order is preserved.
func ParseSessions(s string) ([]models.Session, error) {
	var sessions []models.Session
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		day, hour, ok := strings.Cut(part, "@")
		if !ok {
			return nil, fmt.Errorf("invalid session %q (expected day@hour, e.g. mon@14)", part)
		}

		dow, err := models.ParseDayOfWeek(day)
		if err != nil {
			return nil, err
		}

		hour = strings.TrimSuffix(strings.TrimSpace(hour), ":00")
		h, err := strconv.Atoi(hour)
		if err != nil || h < 0 || h > 23 {
			return nil, fmt.Errorf("invalid session hour in %q (expected 0-23)", part)
		}

		sessions = append(sessions, models.Session{DayOfWeek: dow, StartTime: h})
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("at least one session is required")
	}
	return sessions, nil
}
