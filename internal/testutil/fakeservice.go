// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"todoctl/internal/api"
	"todoctl/internal/service"
)

// TestToken is the token issued by FakeService logins.
const TestToken = "test-token"

// FakeService is an in-memory implementation of service.Service. It
// records per-method call counts so tests can assert that an operation
// did (or did not) reach the network boundary.
type FakeService struct {
	mu        sync.Mutex
	users     map[string]service.User // keyed by email
	passwords map[string]string       // keyed by email
	tasks     []service.Task
	nextID    int

	// SessionUser is what Me returns. Nil means the token is invalid.
	SessionUser *service.User

	// Error injection for testing.
	LoginErr       error
	RegisterErr    error
	CheckEmailErr  error
	MeErr          error
	ListTasksErr   error
	CreateTaskErr  error
	SetCompleteErr error
	DeleteTaskErr  error

	// Call counters.
	LoginCalls       int
	RegisterCalls    int
	CheckEmailCalls  int
	MeCalls          int
	ListTasksCalls   int
	CreateTaskCalls  int
	SetCompleteCalls int
	DeleteTaskCalls  int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users:     make(map[string]service.User),
		passwords: make(map[string]string),
	}
}

// AddUser registers an account directly, bypassing the join flow.
func (f *FakeService) AddUser(id, name, email, password string) service.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := service.User{ID: id, Name: name, Email: email}
	f.users[email] = u
	f.passwords[email] = password
	return u
}

// AddTask seeds a task. author may be nil.
func (f *FakeService) AddTask(id, text string, complete bool, author *service.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:         id,
		Text:       text,
		IsComplete: complete,
		CreatedAt:  time.Now(),
		Author:     author,
	})
}

// TaskList returns a copy of the current tasks.
func (f *FakeService) TaskList() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return service.Session{}, f.LoginErr
	}
	user, ok := f.users[email]
	if !ok || f.passwords[email] != password {
		return service.Session{}, &api.Error{
			Status:  http.StatusUnauthorized,
			Message: "email or password does not match",
		}
	}
	f.SessionUser = &user
	return service.Session{Token: TestToken, User: user}, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, name, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	if _, exists := f.users[email]; exists {
		return &api.Error{Status: http.StatusBadRequest, Message: "email already in use"}
	}
	f.users[email] = service.User{ID: fmt.Sprintf("u%d", len(f.users)+1), Name: name, Email: email}
	f.passwords[email] = password
	return nil
}

// CheckEmail implements service.Service.
func (f *FakeService) CheckEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CheckEmailCalls++
	if f.CheckEmailErr != nil {
		return false, f.CheckEmailErr
	}
	_, exists := f.users[email]
	return exists, nil
}

// Me implements service.Service.
func (f *FakeService) Me(ctx context.Context) (service.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MeCalls++
	if f.MeErr != nil {
		return service.User{}, f.MeErr
	}
	if f.SessionUser == nil {
		return service.User{}, &api.Error{Status: http.StatusUnauthorized, Message: "invalid token"}
	}
	return *f.SessionUser, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListTasksCalls++
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateTaskCalls++
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:        fmt.Sprintf("t%d", f.nextID),
		Text:      text,
		CreatedAt: time.Now(),
		Author:    f.SessionUser,
	})
	return nil
}

// SetComplete implements service.Service.
func (f *FakeService) SetComplete(ctx context.Context, id string, complete bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCompleteCalls++
	if f.SetCompleteErr != nil {
		return f.SetCompleteErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].IsComplete = complete
			return nil
		}
	}
	return &api.Error{Status: http.StatusNotFound, Message: "task not found"}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteTaskCalls++
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &api.Error{Status: http.StatusNotFound, Message: "task not found"}
}
