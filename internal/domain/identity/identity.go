// Package identity describes the authenticated caller as seen by usecases.
package identity

type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

type Actor struct {
	UserID string
	Name   string
	Role   Role
}

func (a Actor) Is(r Role) bool { return a.Role == r }
