package models

import "fmt"

// Role is the permission level of a tutor account.
type Role string

const (
	RoleRejected Role = "rejected"
	RolePending  Role = "pending"
	RoleTutor    Role = "tutor"
	RoleAdmin    Role = "admin"
)

// RoleFromLegacy maps the integer permission codes used by older exports.
func RoleFromLegacy(code int) (Role, error) {
	switch code {
	case -2:
		return RoleRejected, nil
	case 0:
		return RolePending, nil
	case 1:
		return RoleTutor, nil
	case 2:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown legacy permission code: %d", code)
	}
}

// Legacy returns the integer permission code for r.
func (r Role) Legacy() int {
	switch r {
	case RoleRejected:
		return -2
	case RoleTutor:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

// ParseRole accepts a role name or a legacy integer code.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleRejected, RolePending, RoleTutor, RoleAdmin:
		return r, nil
	}
	var code int
	if _, err := fmt.Sscanf(s, "%d", &code); err == nil {
		return RoleFromLegacy(code)
	}
	return "", fmt.Errorf("invalid role: %q (expected rejected|pending|tutor|admin)", s)
}

// CanTeach reports whether schedules owned by this role may be approved.
func (r Role) CanTeach() bool {
	return r == RoleTutor || r == RoleAdmin
}

type Tutor struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=120"`
	Role  Role   `json:"role" validate:"required,oneof=rejected pending tutor admin"`
}

func (t Tutor) Validate() error {
	if err := validate.Struct(t); err != nil {
		return formatValidationError(err)
	}
	return nil
}
