package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"todoctl/internal/service"
	"todoctl/internal/session"
)

var (
	// ErrEmptyText rejects adds whose text is blank.
	ErrEmptyText = errors.New("task text is empty")

	// ErrNotAuthor blocks deleting a task owned by another user.
	ErrNotAuthor = errors.New("task belongs to another user")

	// ErrAborted means the user declined the delete confirmation.
	ErrAborted = errors.New("aborted")

	// ErrUnknownTask means the id is not in the last fetched list.
	ErrUnknownTask = errors.New("unknown task")
)

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// Controller owns the client's view of the task list. The list is a
// cache of the last successful fetch: every mutation is followed by a
// full refetch that replaces it wholesale, and a failed mutation
// leaves it untouched. The displayed tasks are always the last fetch
// narrowed by the current filter.
type Controller struct {
	svc     service.Service
	store   *session.Store
	confirm ConfirmFunc
	log     *zap.Logger

	tasks   []service.Task
	pending string
	filter  Filter
}

// NewController creates a controller. confirm may be nil, in which
// case deletes proceed without asking.
func NewController(svc service.Service, store *session.Store, confirm ConfirmFunc, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{svc: svc, store: store, confirm: confirm, log: log}
}

// Refresh fetches the full task list and replaces the local copy. On
// failure the previous list is kept.
func (c *Controller) Refresh(ctx context.Context) error {
	list, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.log.Error("task list fetch failed", zap.Error(err))
		return err
	}
	c.tasks = list
	return nil
}

// Tasks returns the last fetched list in server order.
func (c *Controller) Tasks() []service.Task { return c.tasks }

// SetFilter sets the display filter.
func (c *Controller) SetFilter(f Filter) { c.filter = f }

// Filter returns the display filter.
func (c *Controller) Filter() Filter { return c.filter }

// Filtered returns the last fetched list narrowed by the filter.
func (c *Controller) Filtered() []service.Task {
	return Apply(c.tasks, c.filter)
}

// Counts returns the aggregates for the full (unfiltered) list.
func (c *Controller) Counts() Counts { return Count(c.tasks) }

// SetPending sets the draft text for the next add.
func (c *Controller) SetPending(text string) { c.pending = text }

// Pending returns the draft text for the next add.
func (c *Controller) Pending() string { return c.pending }

// Add creates a task from the pending text, then refetches. Blank text
// is rejected before any network call. The pending text is cleared
// only once the create is confirmed; on failure it is kept so the user
// can retry.
func (c *Controller) Add(ctx context.Context) error {
	text := strings.TrimSpace(c.pending)
	if text == "" {
		return ErrEmptyText
	}

	if err := c.svc.CreateTask(ctx, text); err != nil {
		c.log.Error("task create failed", zap.Error(err))
		return err
	}
	c.pending = ""

	return c.Refresh(ctx)
}

// Toggle flips the completion status of a task, then refetches. The
// negation of currentStatus is what goes on the wire.
func (c *Controller) Toggle(ctx context.Context, id string, currentStatus bool) error {
	if err := c.svc.SetComplete(ctx, id, !currentStatus); err != nil {
		c.log.Error("task update failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes a task, then refetches. Two client-side gates run
// before any network call: the acting user must be the task's author
// (tasks with no recorded author are deletable by anyone), and the
// confirm function, when set, must approve.
func (c *Controller) Delete(ctx context.Context, id string) error {
	task, ok := c.find(id)
	if !ok {
		return ErrUnknownTask
	}

	if !c.CanDelete(task) {
		return ErrNotAuthor
	}

	if c.confirm != nil && !c.confirm(fmt.Sprintf("delete %q?", task.Text)) {
		return ErrAborted
	}

	if err := c.svc.DeleteTask(ctx, id); err != nil {
		c.log.Error("task delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return c.Refresh(ctx)
}

// CanDelete reports whether the session user may delete the task.
func (c *Controller) CanDelete(task service.Task) bool {
	if task.Author == nil {
		return true
	}
	user, ok := c.store.Current()
	if !ok {
		return false
	}
	return task.Author.ID == user.ID
}

func (c *Controller) find(id string) (service.Task, bool) {
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
