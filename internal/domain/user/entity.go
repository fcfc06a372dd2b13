package user

import "strings"

// User represents a user entity as served by the users backend.
type User struct {
	ID        int64  `json:"id"`         // ID is assigned by the backend
	Username  string `json:"username"`   // Username is the unique login name
	Email     string `json:"email"`      // Email is the unique email address
	FirstName string `json:"first_name"` // FirstName is the given name
	LastName  string `json:"last_name"`  // LastName is the family name
	IsActive  bool   `json:"is_active"`  // IsActive marks whether the account is enabled
}

// Payload is the body of create and update requests. It never carries an ID.
type Payload struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

// FullName joins the first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Payload returns the user's fields without its ID.
func (u User) Payload() Payload {
	return Payload{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
	}
}
