package domain

// The role set is closed: a token carrying anything else is invalid.
const (
	RolePatient = "Patient"
	RoleDoctor  = "Doctor"
	RoleAdmin   = "Admin"
)

// Roles lists every valid role.
var Roles = []string{RolePatient, RoleDoctor, RoleAdmin}

// ValidRole reports whether r is one of the fixed roles.
func ValidRole(r string) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}
