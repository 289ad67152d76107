package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/korwin-dev/citelinks-be/internal/api"
	"github.com/korwin-dev/citelinks-be/internal/database"
	"github.com/korwin-dev/citelinks-be/internal/services"
)

// sentMail captures one notifier call.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeNotifier records messages instead of sending them.
type fakeNotifier struct {
	sent []sentMail
}

func (f *fakeNotifier) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// env bundles the router and its collaborators for a handler test.
type env struct {
	router   *chi.Mux
	users    *services.UserService
	tokens   *services.TokenService
	links    *services.LinkService
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	users := services.NewUserService(db)
	tokens := services.NewTokenService(db, users)
	links := services.NewLinkService(db)
	events := services.NewEventService(db)
	notifier := &fakeNotifier{}

	return &env{
		router:   api.NewRouter(users, tokens, links, events, notifier, "http://localhost:3000"),
		users:    users,
		tokens:   tokens,
		links:    links,
		notifier: notifier,
	}
}

// do runs one JSON request through the router.
func (e *env) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func registrationPayload() map[string]string {
	return map[string]string{
		"email":        "danila@gmail.com",
		"password":     "qwerty12345",
		"first_name":   "Danila",
		"last_name":    "Korobkov",
		"organization": "MIPT",
	}
}

// register creates a user through the API and returns the issued token.
func (e *env) register(t *testing.T, fields map[string]string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/registration", fields, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}
