package tasks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/internal/api"
	"todoctl/internal/config"
	"todoctl/internal/session"
	"todoctl/internal/tasks"
	"todoctl/internal/testutil"
)

// newController wires a controller to a fake backend with a logged-in
// session. confirm nil means deletes skip the prompt.
func newController(t *testing.T, svc *testutil.FakeService, confirm tasks.ConfirmFunc) (*tasks.Controller, *session.Store) {
	t.Helper()
	cfg, err := config.New(t.TempDir(), "http://localhost:9")
	require.NoError(t, err)
	store := session.NewStore(cfg, api.New(cfg.BaseURL, nil), nil)
	if svc.SessionUser != nil {
		require.NoError(t, store.Set(testutil.TestToken, *svc.SessionUser))
	}
	return tasks.NewController(svc, store, confirm, nil), store
}

func TestRefreshReplacesList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "one", false, nil)
	ctrl, _ := newController(t, svc, nil)

	require.NoError(t, ctrl.Refresh(context.Background()))
	require.Len(t, ctrl.Tasks(), 1)

	svc.AddTask("t2", "two", true, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))
	assert.Len(t, ctrl.Tasks(), 2)
}

func TestRefreshFailureKeepsPreviousList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "one", false, nil)
	ctrl, _ := newController(t, svc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	svc.ListTasksErr = errors.New("boom")
	require.Error(t, ctrl.Refresh(context.Background()))
	assert.Len(t, ctrl.Tasks(), 1, "stale list beats no list")
}

func TestAddEmptyTextNeverReachesNetwork(t *testing.T) {
	svc := testutil.NewFakeService()
	ctrl, _ := newController(t, svc, nil)
	ctrl.SetPending("   ")

	err := ctrl.Add(context.Background())

	require.ErrorIs(t, err, tasks.ErrEmptyText)
	assert.Zero(t, svc.CreateTaskCalls)
	assert.Zero(t, svc.ListTasksCalls)
}

func TestAddSuccessClearsPendingAndRefetches(t *testing.T) {
	svc := testutil.NewFakeService()
	ctrl, _ := newController(t, svc, nil)
	ctrl.SetPending("  buy milk  ")

	require.NoError(t, ctrl.Add(context.Background()))

	assert.Empty(t, ctrl.Pending(), "cleared only on confirmed create")
	assert.Equal(t, 1, svc.CreateTaskCalls)
	assert.Equal(t, 1, svc.ListTasksCalls, "exactly one refetch after the write")
	require.Len(t, ctrl.Tasks(), 1)
	assert.Equal(t, "buy milk", ctrl.Tasks()[0].Text)
}

func TestAddFailureKeepsPending(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("boom")
	ctrl, _ := newController(t, svc, nil)
	ctrl.SetPending("buy milk")

	require.Error(t, ctrl.Add(context.Background()))

	assert.Equal(t, "buy milk", ctrl.Pending(), "kept so the user can retry")
	assert.Zero(t, svc.ListTasksCalls, "no refetch after a failed write")
}

func TestToggleSendsNegation(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "one", false, nil)
	ctrl, _ := newController(t, svc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	require.NoError(t, ctrl.Toggle(context.Background(), "t1", false))
	assert.True(t, svc.TaskList()[0].IsComplete)
	assert.True(t, ctrl.Tasks()[0].IsComplete, "refetched after the write")

	require.NoError(t, ctrl.Toggle(context.Background(), "t1", true))
	assert.False(t, svc.TaskList()[0].IsComplete)
}

func TestToggleFailureKeepsList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "one", false, nil)
	ctrl, _ := newController(t, svc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))
	before := svc.ListTasksCalls

	svc.SetCompleteErr = errors.New("boom")
	require.Error(t, ctrl.Toggle(context.Background(), "t1", false))
	assert.Equal(t, before, svc.ListTasksCalls)
	assert.False(t, ctrl.Tasks()[0].IsComplete)
}

func TestDeleteUnknownTask(t *testing.T) {
	svc := testutil.NewFakeService()
	ctrl, _ := newController(t, svc, nil)

	err := ctrl.Delete(context.Background(), "nope")
	require.ErrorIs(t, err, tasks.ErrUnknownTask)
	assert.Zero(t, svc.DeleteTaskCalls)
}

func TestDeleteForeignTaskBlockedBeforeNetwork(t *testing.T) {
	svc := testutil.NewFakeService()
	me := svc.AddUser("u1", "Ana", "ana@example.com", "pw")
	other := svc.AddUser("u2", "Bob", "bob@example.com", "pw")
	svc.SessionUser = &me
	svc.AddTask("t1", "bob's task", false, &other)
	ctrl, _ := newController(t, svc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	err := ctrl.Delete(context.Background(), "t1")

	require.ErrorIs(t, err, tasks.ErrNotAuthor)
	assert.Zero(t, svc.DeleteTaskCalls, "the gate runs before any call")
}

func TestDeleteAuthorlessTaskAllowed(t *testing.T) {
	svc := testutil.NewFakeService()
	me := svc.AddUser("u1", "Ana", "ana@example.com", "pw")
	svc.SessionUser = &me
	svc.AddTask("t1", "orphan", false, nil)
	ctrl, _ := newController(t, svc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	require.NoError(t, ctrl.Delete(context.Background(), "t1"))
	assert.Equal(t, 1, svc.DeleteTaskCalls)
	assert.Empty(t, ctrl.Tasks())
}

func TestDeleteOwnTaskWithConfirmation(t *testing.T) {
	svc := testutil.NewFakeService()
	me := svc.AddUser("u1", "Ana", "ana@example.com", "pw")
	svc.SessionUser = &me
	svc.AddTask("t1", "mine", false, &me)

	var prompt string
	confirm := func(p string) bool { prompt = p; return true }
	ctrl, _ := newController(t, svc, confirm)
	require.NoError(t, ctrl.Refresh(context.Background()))
	listCallsBefore := svc.ListTasksCalls

	require.NoError(t, ctrl.Delete(context.Background(), "t1"))

	assert.Equal(t, `delete "mine"?`, prompt)
	assert.Equal(t, 1, svc.DeleteTaskCalls)
	assert.Equal(t, listCallsBefore+1, svc.ListTasksCalls)
	assert.Empty(t, ctrl.Tasks())
}

func TestDeleteDeclinedConfirmation(t *testing.T) {
	svc := testutil.NewFakeService()
	me := svc.AddUser("u1", "Ana", "ana@example.com", "pw")
	svc.SessionUser = &me
	svc.AddTask("t1", "mine", false, &me)
	confirm := func(string) bool { return false }
	ctrl, _ := newController(t, svc, confirm)
	require.NoError(t, ctrl.Refresh(context.Background()))

	err := ctrl.Delete(context.Background(), "t1")

	require.ErrorIs(t, err, tasks.ErrAborted)
	assert.Zero(t, svc.DeleteTaskCalls)
	require.Len(t, ctrl.Tasks(), 1)
}

func TestFilteredAndCounts(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "one", false, nil)
	svc.AddTask("t2", "two", true, nil)
	ctrl, _ := newController(t, svc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	ctrl.SetFilter(tasks.FilterCompleted)
	require.Len(t, ctrl.Filtered(), 1)
	assert.Equal(t, "t2", ctrl.Filtered()[0].ID)

	c := ctrl.Counts()
	assert.Equal(t, 2, c.Total, "counts ignore the filter")
	assert.Equal(t, 1, c.Remaining)
}
