// Package resttasks implements service.Service against the todo REST API.
package resttasks

import (
	"context"

	"todoctl/internal/api"
	"todoctl/internal/service"
)

// Client implements service.Service over the HTTP API client.
type Client struct {
	api *api.Client
}

// New creates a backend client on top of the given API client.
func New(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Login authenticates with email and password.
// POST /user/login {email, password} -> {token, user}
func (c *Client) Login(ctx context.Context, email, password string) (service.Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var sess service.Session
	if err := c.api.Post(ctx, "/user/login", body, &sess); err != nil {
		return service.Session{}, err
	}
	return sess, nil
}

// Register creates a new account.
// POST /user/join {email, name, password}
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}{Email: email, Name: name, Password: password}

	return c.api.Post(ctx, "/user/join", body, nil)
}

// CheckEmail reports whether an account with this email exists.
// POST /user/check-email {email} -> {exists}
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.api.Post(ctx, "/user/check-email", body, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// Me returns the user for the installed token.
// GET /user/me -> {user}
func (c *Client) Me(ctx context.Context) (service.User, error) {
	var resp struct {
		User service.User `json:"user"`
	}
	if err := c.api.Get(ctx, "/user/me", &resp); err != nil {
		return service.User{}, err
	}
	return resp.User, nil
}

// ListTasks returns the full task list in server order.
// GET /tasks -> {data: [Task...]}
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var resp struct {
		Data []service.Task `json:"data"`
	}
	if err := c.api.Get(ctx, "/tasks", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateTask creates a new open task.
// POST /tasks {task, isComplete}
func (c *Client) CreateTask(ctx context.Context, text string) error {
	body := struct {
		Task       string `json:"task"`
		IsComplete bool   `json:"isComplete"`
	}{Task: text, IsComplete: false}

	return c.api.Post(ctx, "/tasks", body, nil)
}

// SetComplete sets the completion status of a task.
// PUT /tasks/:id {isComplete}
func (c *Client) SetComplete(ctx context.Context, id string, complete bool) error {
	body := struct {
		IsComplete bool `json:"isComplete"`
	}{IsComplete: complete}

	return c.api.Put(ctx, "/tasks/"+id, body, nil)
}

// DeleteTask deletes a task.
// DELETE /tasks/:id
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/tasks/"+id)
}
