package resttasks_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/internal/api"
	"todoctl/internal/backend/resttasks"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

// newRecorder returns a test server that records each request and
// replies with the canned body.
func newRecorder(t *testing.T, status int, reply string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		rec.body = string(data)
		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestLogin(t *testing.T) {
	srv, rec := newRecorder(t, 200, `{"token":"tok1","user":{"_id":"u1","name":"Ana","email":"ana@example.com"}}`)
	c := resttasks.New(api.New(srv.URL, nil))

	sess, err := c.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/user/login", rec.path)
	assert.JSONEq(t, `{"email":"ana@example.com","password":"pw"}`, rec.body)
	assert.Equal(t, "tok1", sess.Token)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, "Ana", sess.User.Name)
}

func TestRegister(t *testing.T) {
	srv, rec := newRecorder(t, 200, `{}`)
	c := resttasks.New(api.New(srv.URL, nil))

	require.NoError(t, c.Register(context.Background(), "Ana", "ana@example.com", "pw"))

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/user/join", rec.path)
	assert.JSONEq(t, `{"email":"ana@example.com","name":"Ana","password":"pw"}`, rec.body)
}

func TestCheckEmail(t *testing.T) {
	srv, rec := newRecorder(t, 200, `{"exists":true}`)
	c := resttasks.New(api.New(srv.URL, nil))

	exists, err := c.CheckEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)

	assert.True(t, exists)
	assert.Equal(t, "/user/check-email", rec.path)
	assert.JSONEq(t, `{"email":"ana@example.com"}`, rec.body)
}

func TestMe(t *testing.T) {
	srv, rec := newRecorder(t, 200, `{"user":{"_id":"u1","name":"Ana","email":"ana@example.com"}}`)
	c := resttasks.New(api.New(srv.URL, nil))

	user, err := c.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/user/me", rec.path)
	assert.Equal(t, "u1", user.ID)
}

func TestListTasksUnwrapsEnvelope(t *testing.T) {
	reply := `{"data":[
		{"_id":"t1","task":"buy milk","isComplete":false,"createdAt":"2026-01-02T15:04:05Z","author":{"_id":"u1","name":"Ana","email":"ana@example.com"}},
		{"_id":"t2","task":"ship it","isComplete":true,"createdAt":"2026-01-03T10:00:00Z"}
	]}`
	srv, rec := newRecorder(t, 200, reply)
	c := resttasks.New(api.New(srv.URL, nil))

	list, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "/tasks", rec.path)
	assert.Equal(t, "t1", list[0].ID)
	assert.Equal(t, "buy milk", list[0].Text)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, "u1", list[0].Author.ID)
	assert.True(t, list[1].IsComplete)
	assert.Nil(t, list[1].Author)
}

func TestCreateTask(t *testing.T) {
	srv, rec := newRecorder(t, 201, `{}`)
	c := resttasks.New(api.New(srv.URL, nil))

	require.NoError(t, c.CreateTask(context.Background(), "buy milk"))

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/tasks", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.body), &body))
	assert.Equal(t, "buy milk", body["task"])
	assert.Equal(t, false, body["isComplete"])
}

func TestSetComplete(t *testing.T) {
	srv, rec := newRecorder(t, 200, `{}`)
	c := resttasks.New(api.New(srv.URL, nil))

	require.NoError(t, c.SetComplete(context.Background(), "t7", true))

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/tasks/t7", rec.path)
	assert.JSONEq(t, `{"isComplete":true}`, rec.body)
}

func TestDeleteTask(t *testing.T) {
	srv, rec := newRecorder(t, 200, ``)
	c := resttasks.New(api.New(srv.URL, nil))

	require.NoError(t, c.DeleteTask(context.Background(), "t7"))

	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/tasks/t7", rec.path)
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	srv, _ := newRecorder(t, 401, `{"message":"email or password does not match"}`)
	c := resttasks.New(api.New(srv.URL, nil))

	_, err := c.Login(context.Background(), "ana@example.com", "bad")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "email or password does not match", apiErr.Message)
}
