// Package service defines the backend-agnostic interface for todo operations.
package service

import "context"

// Service defines the interface for backend operations.
// All HTTP API calls go through this interface.
// Commands and UI views never build requests directly.
type Service interface {
	// Login authenticates with email and password and returns the
	// session token and user.
	Login(ctx context.Context, email, password string) (Session, error)

	// Register creates a new account.
	Register(ctx context.Context, name, email, password string) error

	// CheckEmail reports whether an account with this email exists.
	CheckEmail(ctx context.Context, email string) (bool, error)

	// Me returns the user that the installed token belongs to.
	Me(ctx context.Context) (User, error)

	// ListTasks returns the full task list in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new open task.
	CreateTask(ctx context.Context, text string) error

	// SetComplete sets the completion status of a task.
	SetComplete(ctx context.Context, id string, complete bool) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
