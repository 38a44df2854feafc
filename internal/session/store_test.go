package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/internal/api"
	"todoctl/internal/config"
	"todoctl/internal/session"
	"todoctl/internal/testutil"
)

func newTestStore(t *testing.T) (*session.Store, *config.Config, *api.Client) {
	t.Helper()
	cfg, err := config.New(t.TempDir(), "http://localhost:9")
	require.NoError(t, err)
	client := api.New(cfg.BaseURL, nil)
	return session.NewStore(cfg, client, nil), cfg, client
}

func TestLoadWithoutTokenFile(t *testing.T) {
	store, _, _ := newTestStore(t)
	svc := testutil.NewFakeService()

	require.NoError(t, store.Load(context.Background(), svc))

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Zero(t, svc.MeCalls, "no token, no validation call")
}

func TestLoadValidToken(t *testing.T) {
	store, cfg, client := newTestStore(t)
	svc := testutil.NewFakeService()
	user := svc.AddUser("u1", "Ana", "ana@example.com", "pw")
	svc.SessionUser = &user

	require.NoError(t, os.MkdirAll(cfg.Dir, 0700))
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("stored-token\n"), 0600))

	require.NoError(t, store.Load(context.Background(), svc))

	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "stored-token", store.Token())
	assert.Equal(t, "stored-token", client.Token())
}

func TestLoadRejectedTokenDemotesSilently(t *testing.T) {
	store, cfg, client := newTestStore(t)
	svc := testutil.NewFakeService() // SessionUser nil: Me rejects

	require.NoError(t, os.MkdirAll(cfg.Dir, 0700))
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("stale"), 0600))

	require.NoError(t, store.Load(context.Background(), svc), "rejection is not an error")

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Empty(t, client.Token())
	_, err := os.Stat(cfg.TokenPath())
	assert.True(t, os.IsNotExist(err), "stale token file removed")
}

func TestSetPersistsAndInstalls(t *testing.T) {
	store, cfg, client := newTestStore(t)
	svc := testutil.NewFakeService()
	user := svc.AddUser("u1", "Ana", "ana@example.com", "pw")

	require.NoError(t, store.Set("fresh-token", user))

	data, err := os.ReadFile(cfg.TokenPath())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", string(data))
	assert.Equal(t, "fresh-token", client.Token())

	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestClear(t *testing.T) {
	store, cfg, client := newTestStore(t)
	svc := testutil.NewFakeService()
	user := svc.AddUser("u1", "Ana", "ana@example.com", "pw")
	require.NoError(t, store.Set("tok", user))

	require.NoError(t, store.Clear())

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Empty(t, store.Token())
	assert.Empty(t, client.Token())
	_, err := os.Stat(cfg.TokenPath())
	assert.True(t, os.IsNotExist(err))
}

func TestClearWithoutTokenFile(t *testing.T) {
	store, _, _ := newTestStore(t)
	require.NoError(t, store.Clear(), "clearing an empty session succeeds")
}

func TestLoadEmptyTokenFile(t *testing.T) {
	store, cfg, _ := newTestStore(t)
	svc := testutil.NewFakeService()

	require.NoError(t, os.MkdirAll(cfg.Dir, 0700))
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("  \n"), 0600))

	require.NoError(t, store.Load(context.Background(), svc))
	_, ok := store.Current()
	assert.False(t, ok)
	assert.Zero(t, svc.MeCalls)
	_, err := os.Stat(filepath.Join(cfg.Dir, config.TokenFile))
	assert.True(t, os.IsNotExist(err))
}
