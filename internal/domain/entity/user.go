package entity

// Roles the backend assigns to an account.
const (
	RoleCustomer = "cliente"
	RoleSeller   = "vendedor"
	RoleAdmin    = "admin"
)

// User is the authenticated identity driving role-based behavior and
// ownership checks. It is persisted verbatim to local storage and is the
// single source of truth across restarts.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  string `json:"rol"`
}

func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
