package domain

type Role string

const (
	// User can manage only self-owned todos and their own profile.
	RoleUser Role = "user"
	// Admin can additionally list and delete todos of any user.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}
