package entity

// Role selects which account store an email belongs to.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole returns the role named by s, or false for anything else.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleTeacher:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

// Table is the account table backing the role.
func (r Role) Table() string {
	if r == RoleTeacher {
		return "teachers"
	}
	return "students"
}
