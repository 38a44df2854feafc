package service

import "time"

// User identifies an account on the todo backend.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task represents a single todo entry. The ID is assigned by the
// server and is immutable; IsComplete is the only field the client
// ever changes.
type Task struct {
	ID         string    `json:"_id"`
	Text       string    `json:"task"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`

	// Author is the user who created the task. Nil for rows written
	// before the backend started recording authorship.
	Author *User `json:"author,omitempty"`
}

// Session is an authenticated identity: an opaque bearer token and the
// user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
