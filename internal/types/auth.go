package types

import "time"

// User is the account returned by the session probe.
type User struct {
	ID        ID        `json:"id"`
	Email     string    `json:"email"`
	Picture   string    `json:"picture"`
	CreatedAt Timestamp `json:"created_at"`
}

// Session is the client's belief about who is logged in.
type Session struct {
	UserID          ID
	Email           string
	PictureURL      string
	CreatedAt       time.Time
	IsAuthenticated bool
}

// NewSession derives a session from a user. A nil user yields the anonymous
// session.
func NewSession(u *User) Session {
	if u == nil {
		return Session{}
	}
	return Session{
		UserID:          u.ID,
		Email:           u.Email,
		PictureURL:      u.Picture,
		CreatedAt:       u.CreatedAt.Time,
		IsAuthenticated: true,
	}
}
