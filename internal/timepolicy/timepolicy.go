// Package timepolicy decides whether the local clock can be trusted by
// comparing it with a reference clock, normally the database server.
package timepolicy

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrClockUntrusted is returned when the local clock drifts past the tolerance.
	ErrClockUntrusted = errors.New("local clock is not trusted")
	// ErrServerTimeUnavailable is returned when the reference clock cannot be read.
	ErrServerTimeUnavailable = errors.New("server time unavailable")
)

// DefaultTolerance is used when a Guard is created with a non-positive tolerance.
const DefaultTolerance = 5 * time.Minute

// ServerClock supplies the reference timestamp.
type ServerClock interface {
	ServerTime() (time.Time, error)
}

// ServerClockFunc adapts a function to ServerClock.
type ServerClockFunc func() (time.Time, error)

func (f ServerClockFunc) ServerTime() (time.Time, error) { return f() }

// Report describes one clock comparison.
type Report struct {
	Local     time.Time
	Server    time.Time
	Skew      time.Duration // Local minus Server
	Tolerance time.Duration
}

// Trusted reports whether the absolute skew is within tolerance.
func (r Report) Trusted() bool {
	return abs(r.Skew) <= r.Tolerance
}

func (r Report) String() string {
	direction := "ahead of"
	if r.Skew < 0 {
		direction = "behind"
	}
	return fmt.Sprintf("local clock is %s %s server (tolerance %s)",
		abs(r.Skew).Round(time.Second), direction, r.Tolerance)
}

// Guard compares the local clock with a ServerClock.
type Guard struct {
	tolerance time.Duration
	now       func() time.Time
}

func NewGuard(tolerance time.Duration, now func() time.Time) *Guard {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if now == nil {
		now = time.Now
	}
	return &Guard{tolerance: tolerance, now: now}
}

// Check reads both clocks. The returned Report is populated whenever the
// server time could be read, including when the error is ErrClockUntrusted.
func (g *Guard) Check(src ServerClock) (Report, error) {
	server, err := src.ServerTime()
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrServerTimeUnavailable, err)
	}

	local := g.now()
	report := Report{
		Local:     local,
		Server:    server,
		Skew:      local.Sub(server),
		Tolerance: g.tolerance,
	}
	if !report.Trusted() {
		return report, fmt.Errorf("%w: %s", ErrClockUntrusted, report)
	}
	return report, nil
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
