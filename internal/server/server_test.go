package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"quicknote-be/internal/bootstrap"
	"quicknote-be/internal/config"
	"quicknote-be/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:serverdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Note{}))

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "test.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			EventTopic:         "DOMAIN_EVENTS_TEST",
		},
		Auth: config.AuthConfig{
			JWTSecret: "server-test-secret",
			TokenTTL:  time.Hour,
		},
	}

	container := bootstrap.NewContainer(db, cfg)
	return New(cfg, container).GetApp()
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)

	return resp.StatusCode, env
}

func registerPayload(email string) map[string]string {
	return map[string]string{
		"email":                 email,
		"first_name":            "Alice",
		"last_name":             "Smith",
		"password":              "secret-password",
		"password_confirmation": "secret-password",
	}
}

type authData struct {
	AccessToken string `json:"access_token"`
	User        struct {
		Id    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func register(t *testing.T, app *fiber.App, email string) authData {
	t.Helper()

	status, env := doJSON(t, app, http.MethodPost, "/api/auth/register", "", registerPayload(email))
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var data authData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	data := register(t, app, "alice@example.com")
	assert.Equal(t, "alice@example.com", data.User.Email)
}

func TestRegisterEndpointFailures(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice@example.com")

	tests := []struct {
		name       string
		mutate     func(p map[string]string)
		wantStatus int
	}{
		{
			name:       "duplicate email",
			mutate:     func(p map[string]string) {},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "short email",
			mutate:     func(p map[string]string) { p["email"] = "a@b" },
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password mismatch",
			mutate: func(p map[string]string) {
				p["email"] = "new@example.com"
				p["password_confirmation"] = "different"
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := registerPayload("alice@example.com")
			tt.mutate(payload)

			status, env := doJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice@example.com")

	status, env := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/note/v1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/user/v1/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestNoteLifecycle(t *testing.T) {
	app := newTestApp(t)
	auth := register(t, app, "alice@example.com")

	// Create
	status, env := doJSON(t, app, http.MethodPost, "/api/note/v1", auth.AccessToken, map[string]string{
		"title":   "Groceries",
		"content": "Milk and eggs",
	})
	require.Equal(t, http.StatusOK, status)

	var note struct {
		Id    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &note))
	assert.Equal(t, "Groceries", note.Title)

	// List
	status, env = doJSON(t, app, http.MethodGet, "/api/note/v1", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		Id string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)

	// Update
	status, env = doJSON(t, app, http.MethodPut, "/api/note/v1/"+note.Id, auth.AccessToken, map[string]string{
		"title":   "Groceries v2",
		"content": "Milk, eggs, coffee",
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &note))
	assert.Equal(t, "Groceries v2", note.Title)

	// Delete
	status, _ = doJSON(t, app, http.MethodDelete, "/api/note/v1/"+note.Id, auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/note/v1/"+note.Id, auth.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNoteOwnershipEnforced(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")
	bob := register(t, app, "bob@example.com")

	status, env := doJSON(t, app, http.MethodPost, "/api/note/v1", alice.AccessToken, map[string]string{
		"title":   "Hers",
		"content": "Private",
	})
	require.Equal(t, http.StatusOK, status)

	var note struct {
		Id string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &note))

	status, _ = doJSON(t, app, http.MethodPut, "/api/note/v1/"+note.Id, bob.AccessToken, map[string]string{
		"title":   "Hijacked",
		"content": "Nope",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/note/v1/"+note.Id, bob.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Bob's list never shows Alice's note
	status, env = doJSON(t, app, http.MethodGet, "/api/note/v1", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		Id string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestProfileEndpoint(t *testing.T) {
	app := newTestApp(t)
	auth := register(t, app, "alice@example.com")

	status, env := doJSON(t, app, http.MethodGet, "/api/user/v1/profile", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	var profile struct {
		Id    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, auth.User.Id, profile.Id)
	assert.Equal(t, "alice@example.com", profile.Email)
}

func TestLogoutEndpoint(t *testing.T) {
	app := newTestApp(t)
	auth := register(t, app, "alice@example.com")

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/logout", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	// The revoked token no longer authenticates
	status, _ = doJSON(t, app, http.MethodGet, "/api/user/v1/profile", auth.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Logging out again still succeeds
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/logout", auth.AccessToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAccountDeletionEndpoint(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")
	bob := register(t, app, "bob@example.com")

	// Bob cannot delete Alice
	status, _ := doJSON(t, app, http.MethodDelete, "/api/user/v1/"+alice.User.Id, bob.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Alice deletes herself
	status, _ = doJSON(t, app, http.MethodDelete, "/api/user/v1/"+alice.User.Id, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	// Her token is dead
	status, _ = doJSON(t, app, http.MethodGet, "/api/user/v1/profile", alice.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// The email can sign up again
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", registerPayload("alice@example.com"))
	assert.Equal(t, http.StatusOK, status)
}
