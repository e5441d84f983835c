package types

// User is the authenticated identity returned by the backend's /api/auth/me.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	IsActive  bool   `json:"is_active"`
	Superuser bool   `json:"is_superuser,omitempty"`
	Role      string `json:"role,omitempty"`
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Admin reports whether the user may manage clients and other users.
func (u User) Admin() bool {
	return u.Superuser || u.Role == "admin" || u.Role == "team"
}

// Equal compares identities field by field. Callers use it to avoid
// re-rendering when a background identity refresh returned the same record.
func (u User) Equal(other User) bool {
	return u == other
}
