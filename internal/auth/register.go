package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todoctl/internal/service"
)

// CheckDebounce is how long the UI waits after the last email edit
// before firing the availability check. A new edit inside the window
// replaces the pending check.
const CheckDebounce = 300 * time.Millisecond

// RegisterFlow drives the registration form: an email-availability
// check independent of the submit path, then a local validation chain
// that must all pass before the join call is made.
type RegisterFlow struct {
	svc service.Service

	name     string
	email    string
	password string
	confirm  string

	// emailAvailable is set only by a confirmed-unused availability
	// check and reset by any edit to the email field.
	emailAvailable bool

	state  State
	errMsg string
}

// NewRegisterFlow creates a registration flow.
func NewRegisterFlow(svc service.Service) *RegisterFlow {
	return &RegisterFlow{svc: svc}
}

// SetName sets the display name.
func (f *RegisterFlow) SetName(name string) { f.name = name }

// SetEmail sets the email, trimmed and lowercased. Any change resets
// the availability flag: the new address must be re-checked.
func (f *RegisterFlow) SetEmail(email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != f.email {
		f.emailAvailable = false
	}
	f.email = email
}

// SetPassword sets the password.
func (f *RegisterFlow) SetPassword(password string) { f.password = password }

// SetConfirm sets the password confirmation.
func (f *RegisterFlow) SetConfirm(confirm string) { f.confirm = confirm }

// Email returns the current (normalized) email.
func (f *RegisterFlow) Email() string { return f.email }

// EmailAvailable reports whether the current email passed an
// availability check.
func (f *RegisterFlow) EmailAvailable() bool { return f.emailAvailable }

// SetEmailAvailable records the outcome of an availability check run
// outside the flow (the UI debounces its own checks). It carries the
// same meaning as the flag CheckEmail sets.
func (f *RegisterFlow) SetEmailAvailable(available bool) {
	f.emailAvailable = available
}

// State returns the flow state.
func (f *RegisterFlow) State() State { return f.state }

// ErrorMessage returns the user-facing text of the last failure, or "".
func (f *RegisterFlow) ErrorMessage() string { return f.errMsg }

// CheckEmail verifies availability of the current email against the
// backend and returns a user-facing notice in every case. Malformed
// input is rejected locally without a network call. The availability
// flag is set only on a confirmed-unused email.
func (f *RegisterFlow) CheckEmail(ctx context.Context) (available bool, notice string) {
	if f.email == "" {
		return false, "enter an email address"
	}
	if !strings.Contains(f.email, "@") {
		return false, "enter a valid email address"
	}

	exists, err := f.svc.CheckEmail(ctx, f.email)
	if err != nil {
		f.emailAvailable = false
		return false, "could not verify email; try again"
	}
	if exists {
		f.emailAvailable = false
		return false, "this email is already registered"
	}

	f.emailAvailable = true
	return true, "email is available"
}

// Validate runs the local pre-submit checks and returns a warning for
// the first rule that fails. No network call is made here.
func (f *RegisterFlow) Validate() (notice string, ok bool) {
	if strings.TrimSpace(f.name) == "" || f.email == "" ||
		f.password == "" || f.confirm == "" {
		return "fill in all fields", false
	}
	if !strings.Contains(f.email, "@") {
		return "enter a valid email address", false
	}
	if f.password != f.confirm {
		return "passwords do not match", false
	}
	if !f.emailAvailable {
		return "check email availability first", false
	}
	return "", true
}

// Submit registers the account. A failed local check aborts before any
// network call. Submitting while a call is in flight is a no-op.
func (f *RegisterFlow) Submit(ctx context.Context) error {
	if f.state == StateSubmitting {
		return nil
	}

	if notice, ok := f.Validate(); !ok {
		f.state = StateFailed
		f.errMsg = notice
		return fmt.Errorf("%w: %s", ErrValidation, notice)
	}

	f.state = StateSubmitting
	f.errMsg = ""

	if err := f.svc.Register(ctx, strings.TrimSpace(f.name), f.email, f.password); err != nil {
		f.state = StateFailed
		f.errMsg = "registration failed; try again"
		return err
	}

	f.state = StateSuccess
	return nil
}
