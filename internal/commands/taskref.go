package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todoctl/internal/service"
	"todoctl/internal/tasks"
)

// ErrTaskRefRequired is returned when no task number was given.
var ErrTaskRefRequired = errors.New("task number required")

// parseTaskRef parses a 1-based task number as printed by
// `todoctl list`.
func parseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	raw := strings.TrimSpace(strings.Join(args, " "))
	num, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", raw)
	}
	if num < 1 {
		return 0, fmt.Errorf("task number out of range: %d", num)
	}
	return num, nil
}

// resolveTaskRef refreshes the controller and returns the task at the
// given 1-based position of the full list, matching the numbering of
// `todoctl list` with no filter.
func resolveTaskRef(ctx context.Context, ctrl *tasks.Controller, num int) (service.Task, error) {
	if err := ctrl.Refresh(ctx); err != nil {
		return service.Task{}, err
	}
	list := ctrl.Tasks()
	if num > len(list) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return list[num-1], nil
}
