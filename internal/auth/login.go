// Package auth implements the login and registration flows. Each flow
// is a small linear state machine: idle, then submitting, then success
// or failed; a new submission clears a previous failure.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"todoctl/internal/api"
	"todoctl/internal/service"
	"todoctl/internal/session"
)

// State is the position of a flow in its lifecycle.
type State int

const (
	// StateIdle means no submission has started.
	StateIdle State = iota
	// StateSubmitting means a network call is in flight.
	StateSubmitting
	// StateSuccess means the flow completed.
	StateSuccess
	// StateFailed means the last submission failed; ErrorMessage holds
	// the user-facing text.
	StateFailed
)

// ErrValidation marks failures caught before any network call.
var ErrValidation = errors.New("validation failed")

// LoginFlow drives one login attempt: validate locally, call the
// backend, store the session on success.
type LoginFlow struct {
	svc   service.Service
	store *session.Store

	email    string
	password string

	state  State
	errMsg string
}

// NewLoginFlow creates a login flow writing to the given session store.
func NewLoginFlow(svc service.Service, store *session.Store) *LoginFlow {
	return &LoginFlow{svc: svc, store: store}
}

// SetEmail sets the login email, trimmed and lowercased.
func (f *LoginFlow) SetEmail(email string) {
	f.email = strings.ToLower(strings.TrimSpace(email))
}

// SetPassword sets the login password.
func (f *LoginFlow) SetPassword(password string) {
	f.password = password
}

// State returns the flow state.
func (f *LoginFlow) State() State { return f.state }

// ErrorMessage returns the user-facing text of the last failure, or "".
func (f *LoginFlow) ErrorMessage() string { return f.errMsg }

// Submit runs the login call and, on success, writes the session to
// the store. Empty fields fail validation before any network call.
// Submitting while a call is in flight is a no-op.
func (f *LoginFlow) Submit(ctx context.Context) error {
	if f.state == StateSubmitting {
		return nil
	}

	if f.email == "" || strings.TrimSpace(f.password) == "" {
		f.state = StateFailed
		f.errMsg = "enter both email and password"
		return fmt.Errorf("%w: %s", ErrValidation, f.errMsg)
	}

	f.state = StateSubmitting
	f.errMsg = ""

	sess, err := f.svc.Login(ctx, f.email, f.password)
	if err != nil {
		f.state = StateFailed
		f.errMsg = LoginErrorMessage(err)
		return err
	}

	if err := f.store.Set(sess.Token, sess.User); err != nil {
		f.state = StateFailed
		f.errMsg = "could not save session: " + err.Error()
		return err
	}

	f.state = StateSuccess
	return nil
}

// LoginErrorMessage maps a login error to user-facing text. Credential
// rejections prefer the server's own message when it sent one.
func LoginErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusUnauthorized:
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return "email or password is incorrect"
		case http.StatusNotFound:
			return "cannot reach the login server"
		default:
			return fmt.Sprintf("login failed with status %d", apiErr.Status)
		}
	}
	// No response at all: transport-level failure.
	return "cannot connect to the server; check your network"
}
