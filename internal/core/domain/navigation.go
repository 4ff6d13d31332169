package domain

// Logical navigation destinations served by the portal.
const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathRegister     = "/register"
	PathProfile      = "/profile"
	PathUnauthorized = "/unauthorized"
)

// DashboardPath maps a role to its dashboard destination.
func DashboardPath(r Role) string {
	switch r {
	case RoleAdmin:
		return "/dashboard/admin"
	case RoleDoctor:
		return "/dashboard/doctor"
	case RoleNurse:
		return "/dashboard/nurse"
	case RolePatient:
		return "/dashboard/patient"
	}
	// Unreachable for identities built through NewIdentity.
	return PathHome
}

// MenuEntry is one navigation affordance shown to the current session.
type MenuEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}
