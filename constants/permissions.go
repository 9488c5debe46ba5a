package constants

// Account roles
const (
	RoleAdmin     = "admin"
	RoleApplicant = "applicant"
)

// Token types carried in the token_type claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Application statuses
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
)

// Cookie names shared by the auth controller and middleware
const (
	AccessCookie  = "access"
	RefreshCookie = "refresh"
)

var (
	Roles = []string{RoleAdmin, RoleApplicant}

	ExtraCurricularChoices = []string{
		"NCC",
		"LITERACY",
		"NSS",
		"ATHLETICS",
		"CULTURAL",
		"ENVIRONMENT",
		"GAMES",
	}
)

// IsValidRole reports whether role is one of Roles.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
