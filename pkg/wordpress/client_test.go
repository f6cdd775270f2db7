package wordpress

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:  srv.URL + "/", // trailing slash must be trimmed
		Username: "svc",
		Password: "svc-pass",
	}, testLogger())
}

func wirePost(id int64) map[string]any {
	return map[string]any{
		"id":       id,
		"date":     "2025-03-01T10:00:00",
		"modified": "2025-03-02T11:30:00",
		"status":   "publish",
		"link":     "https://blog.example/p/1",
		"title":    map[string]string{"rendered": "Hello"},
		"content":  map[string]string{"rendered": "<p>Body</p>"},
		"excerpt":  map[string]string{"rendered": "<p>Short</p>"},
	}
}

func TestList(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "svc", user)
		assert.Equal(t, "svc-pass", pass)

		json.NewEncoder(w).Encode([]any{wirePost(1), wirePost(2)})
	})

	posts, err := c.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.Equal(t, "<p>Body</p>", posts[0].Content)
	assert.Equal(t, "publish", posts[0].Status)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), posts[0].Date)
}

func TestListClampsPageSize(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode([]any{})
	})

	_, err := c.List(context.Background(), 500)
	require.NoError(t, err)
}

func TestGet(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/posts/7", r.URL.Path)
		json.NewEncoder(w).Encode(wirePost(7))
	})

	post, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), post.ID)
}

func TestGetNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServerErrorIsRejected(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Get(context.Background(), 1)
	require.ErrorIs(t, err, ErrRejected)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(Config{BaseURL: srv.URL, Username: "svc", Password: "svc-pass"}, testLogger())
	srv.Close()

	_, err := c.List(context.Background(), 10)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCreate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Hello", payload["title"])
		assert.Equal(t, "<p>Body</p>", payload["content"])
		assert.Equal(t, "draft", payload["status"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(wirePost(42))
	})

	post, err := c.Create(context.Background(), "Hello", "<p>Body</p>", "draft")
	require.NoError(t, err)
	assert.Equal(t, int64(42), post.ID)
}

func TestUpdateOmitsEmptyStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/wp/v2/posts/42", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, hasStatus := payload["status"]
		assert.False(t, hasStatus, "empty status must be omitted so the remote leaves it unchanged")

		json.NewEncoder(w).Encode(wirePost(42))
	})

	_, err := c.Update(context.Background(), 42, "Hello", "<p>Body</p>", "")
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/wp-json/wp/v2/posts/42", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("force"))
		json.NewEncoder(w).Encode(wirePost(42))
	})

	require.NoError(t, c.Delete(context.Background(), 42))
}

func TestDeleteAbsentSurfacesNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Delete(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticateAsUsesCallerCredentials(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "her-pass", pass)

		json.NewEncoder(w).Encode([]any{})
	})

	ok, err := c.AuthenticateAs(context.Background(), "alice", "her-pass")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthenticateAsRejection(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	ok, err := c.AuthenticateAs(context.Background(), "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticateAsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(Config{BaseURL: srv.URL, Username: "svc", Password: "svc-pass"}, testLogger())
	srv.Close()

	ok, err := c.AuthenticateAs(context.Background(), "alice", "her-pass")
	assert.False(t, ok)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestProbe(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	assert.True(t, c.Probe(context.Background()))
}

func TestProbeNeverErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(Config{BaseURL: srv.URL, Username: "svc", Password: "svc-pass"}, testLogger())
	srv.Close()

	assert.False(t, c.Probe(context.Background()))
}

func TestCurrentUser(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/users/me", r.URL.Path)
		json.NewEncoder(w).Encode(User{ID: 3, Name: "Service Bot", Slug: "service-bot"})
	})

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Service Bot", user.Name)
}
