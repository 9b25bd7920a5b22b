package models

import "fmt"

// RoleBinding grants Role on database DB.
type RoleBinding struct {
	Role string `json:"role" bson:"role"`
	DB   string `json:"db" bson:"db"`
}

// String renders the binding as role@db.
func (r RoleBinding) String() string {
	return fmt.Sprintf("%s@%s", r.Role, r.DB)
}

// Account is a credentialed database account.
type Account struct {
	Username string        `json:"user" bson:"user"`
	Password string        `json:"-" bson:"-"`
	Roles    []RoleBinding `json:"roles" bson:"roles"`
}

// HasRole reports whether the account holds exactly the given binding.
func (a *Account) HasRole(want RoleBinding) bool {
	for _, r := range a.Roles {
		if r == want {
			return true
		}
	}
	return false
}
