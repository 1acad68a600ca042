package models

import "github.com/google/uuid"

// User represents a portal user.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	STT       *int      `json:"stt"`
	Groups    []Group   `json:"roles"`
}

// AnonymousUser is the user attached to requests whose caller is not known.
var AnonymousUser = User{}

// IsAuthenticated reports whether the user was resolved from the store.
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != uuid.Nil
}

// InGroup reports whether the user is a member of g.
func (u *User) InGroup(g Group) bool {
	if u == nil {
		return false
	}
	for _, member := range u.Groups {
		if member == g {
			return true
		}
	}
	return false
}

// UserProfile is the profile view of a user; email is the username.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	STT       *STT      `json:"stt"`
	Roles     []Role    `json:"roles"`
}

// STT is a state, territory or tribe.
type STT struct {
	ID   int    `json:"id"`
	Type string `json:"type,omitempty"`
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}
