package domain

import "time"

// Member is the slice of the platform user the chat service needs: identity
// and enough profile to label a conversation partner. The users table itself
// is owned by the web application.
type Member struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAlumni  bool   `json:"isAlumni"`
	IsStudent bool   `json:"isStudent"`
}

// MemberQuery narrows a member lookup.
type MemberQuery struct {
	ID       *int64
	Username *string
}

// MemberSession is the server-side session behind a login token.
type MemberSession struct {
	Token        string    `json:"Token"`
	UserID       int64     `json:"UserID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}
