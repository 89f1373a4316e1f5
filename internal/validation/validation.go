package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tutorly/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidSchedule  ConflictType = "invalid_schedule"
	ConflictInvertedWindow   ConflictType = "inverted_window"
	ConflictDuplicateSession ConflictType = "duplicate_session"
	ConflictClassroomBooking ConflictType = "classroom_double_booking"
	ConflictUnknownClassroom ConflictType = "unknown_classroom"
	ConflictTutorNotTeaching ConflictType = "tutor_not_teaching"
)

// Conflict represents a detected problem in one or more schedules
type Conflict struct {
	Type        ConflictType
	Description string
	ScheduleIDs []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, ids []string, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		ScheduleIDs: ids,
	})
}

// Validator checks schedules against each other and the reference data
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSchedules reports conflicts across live schedules. Deleted
// schedules are ignored. Classroom and tutor checks are skipped when the
// corresponding reference slice is nil.
func (v *Validator) ValidateSchedules(schedules []models.Schedule, classrooms []models.Classroom, tutors []models.Tutor) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var live []models.Schedule
	for _, s := range schedules {
		if !s.IsDeleted() {
			live = append(live, s)
		}
	}

	for _, s := range live {
		v.checkSchedule(&result, s)
	}

	if classrooms != nil {
		known := make(map[string]bool, len(classrooms))
		for _, c := range classrooms {
			known[c.ID] = true
		}
		for _, s := range live {
			if s.SalonID != "" && !known[s.SalonID] {
				result.add(ConflictUnknownClassroom, []string{s.ID},
					"Schedule %s (%s) references unknown classroom %q", s.ID, s.Subject, s.SalonID)
			}
		}
	}

	if tutors != nil {
		roles := make(map[string]models.Role, len(tutors))
		for _, t := range tutors {
			roles[t.Email] = t.Role
		}
		for _, s := range live {
			if !s.Approved {
				continue
			}
			role, ok := roles[s.TutorEmail]
			if !ok {
				result.add(ConflictTutorNotTeaching, []string{s.ID},
					"Approved schedule %s (%s) belongs to unregistered tutor %s", s.ID, s.Subject, s.TutorEmail)
			} else if !role.CanTeach() {
				result.add(ConflictTutorNotTeaching, []string{s.ID},
					"Approved schedule %s (%s) belongs to tutor %s with role %s", s.ID, s.Subject, s.TutorEmail, role)
			}
		}
	}

	v.checkClassroomBookings(&result, live)
	return result
}

func (v *Validator) checkSchedule(result *ValidationResult, s models.Schedule) {
	ids := []string{s.ID}

	if monthIndex(s.StartYear, s.StartMonth) > monthIndex(s.EndYear, s.EndMonth) {
		result.add(ConflictInvertedWindow, ids,
			"Schedule %s (%s) has an inverted window %s and will never produce sessions", s.ID, s.Subject, s.Window())
	} else if err := s.Validate(); err != nil {
		result.add(ConflictInvalidSchedule, ids, "Schedule %s (%s) is invalid: %v", s.ID, s.Subject, err)
	}

	if len(s.Sessions) == 0 {
		result.add(ConflictInvalidSchedule, ids, "Schedule %s (%s) has no sessions", s.ID, s.Subject)
	}

	seen := make(map[models.Session]bool, len(s.Sessions))
	for _, sess := range s.Sessions {
		if seen[sess] {
			result.add(ConflictDuplicateSession, ids,
				"Schedule %s (%s) declares %s more than once", s.ID, s.Subject, sess)
			continue
		}
		seen[sess] = true
	}
}

// checkClassroomBookings flags approved schedules sharing a classroom,
// weekday and hour during overlapping windows.
func (v *Validator) checkClassroomBookings(result *ValidationResult, live []models.Schedule) {
	for i := 0; i < len(live); i++ {
		a := live[i]
		if !a.Approved || a.SalonID == "" {
			continue
		}
		for j := i + 1; j < len(live); j++ {
			b := live[j]
			if !b.Approved || b.SalonID != a.SalonID || !windowsOverlap(a, b) {
				continue
			}
			if sess, ok := sharedSession(a, b); ok {
				result.add(ConflictClassroomBooking, []string{a.ID, b.ID},
					"Classroom %q is double booked on %s by schedules %s (%s) and %s (%s)",
					a.SalonID, sess, a.ID, a.Subject, b.ID, b.Subject)
			}
		}
	}
}

func monthIndex(year, month int) int {
	return year*12 + month - 1
}

func windowsOverlap(a, b models.Schedule) bool {
	return monthIndex(a.StartYear, a.StartMonth) <= monthIndex(b.EndYear, b.EndMonth) &&
		monthIndex(b.StartYear, b.StartMonth) <= monthIndex(a.EndYear, a.EndMonth)
}

func sharedSession(a, b models.Schedule) (models.Session, bool) {
	for _, sa := range a.Sessions {
		for _, sb := range b.Sessions {
			if sa == sb {
				return sa, true
			}
		}
	}
	return models.Session{}, false
}
