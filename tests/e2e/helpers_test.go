//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/foyerapp/foyer-backend/internal/adapter/expo"
	"github.com/foyerapp/foyer-backend/internal/adapter/postgres"
	eventrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/event"
	foyerrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/foyer"
	reciperepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/recipe"
	shoppingrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/shopping"
	taskrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/task"
	"github.com/foyerapp/foyer-backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/token"
	travelrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/travel"
	userrepo "github.com/foyerapp/foyer-backend/internal/adapter/postgres/user"
	jwtauth "github.com/foyerapp/foyer-backend/internal/auth"
	"github.com/foyerapp/foyer-backend/internal/config"
	authsvc "github.com/foyerapp/foyer-backend/internal/service/auth"
	calendarsvc "github.com/foyerapp/foyer-backend/internal/service/calendar"
	foyersvc "github.com/foyerapp/foyer-backend/internal/service/foyer"
	recipesvc "github.com/foyerapp/foyer-backend/internal/service/recipe"
	shoppingsvc "github.com/foyerapp/foyer-backend/internal/service/shopping"
	tasksvc "github.com/foyerapp/foyer-backend/internal/service/task"
	travelsvc "github.com/foyerapp/foyer-backend/internal/service/travel"
	uploadsvc "github.com/foyerapp/foyer-backend/internal/service/upload"
	"github.com/foyerapp/foyer-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	foyers := foyerrepo.New(pool)
	events := eventrepo.New(pool)
	tasks := taskrepo.New(pool)
	shopping := shoppingrepo.New(pool)
	recipes := reciperepo.New(pool)
	travel := travelrepo.New(pool)

	cfg := &config.Config{
		Server: config.ServerConfig{
			RatePerMinute: 10000,
		},
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret-at-least-32-chars-long!!",
			JWTIssuer:        "test-issuer",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  168 * time.Hour,
			PasswordHashCost: 4,
		},
		Upload: config.UploadConfig{
			Dir:          t.TempDir(),
			MaxSizeBytes: 1 << 20,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,PUT,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
	}

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	notifier := expo.NopClient{}

	router := rest.NewRouter(rest.Deps{
		Logger:   logger,
		Cfg:      cfg,
		DB:       pool,
		Auth:     authsvc.NewService(logger, users, tokens, txm, jwtManager, cfg.Auth),
		Foyer:    foyersvc.NewService(logger, foyers, users, txm),
		Calendar: calendarsvc.NewService(logger, events, foyers, txm, notifier),
		Task:     tasksvc.NewService(logger, tasks, users, foyers, txm, notifier),
		Shopping: shoppingsvc.NewService(logger, shopping, foyers, notifier),
		Recipe:   recipesvc.NewService(logger, recipes),
		Travel:   travelsvc.NewService(logger, travel),
		Upload:   uploadsvc.NewService(logger, cfg.Upload),
		Notifier: notifier,
		Version:  "test-version",
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// doJSON sends a JSON request and returns status + decoded body.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err, "create request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result), "decode response")
	return resp.StatusCode, result
}

// account bundles the credentials and tokens of a registered test user.
type account struct {
	UserID       string
	Email        string
	Password     string
	AccessToken  string
	RefreshToken string
}

// registerAccount registers a fresh user through the API.
func registerAccount(t *testing.T, ts *testServer, name string) *account {
	t.Helper()

	email := fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8])
	password := "sup3r-secret"

	status, body := ts.doJSON(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, status, "register: %v", body)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "expected user object in register response")

	return &account{
		UserID:       user["id"].(string),
		Email:        email,
		Password:     password,
		AccessToken:  body["accessToken"].(string),
		RefreshToken: body["refreshToken"].(string),
	}
}

// createFoyer creates a household for the account and returns its invite code.
func createFoyer(t *testing.T, ts *testServer, acc *account, name string) (foyerID, code string) {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/foyer", map[string]any{
		"name": name,
		"rule": "take out the trash on your week",
	}, acc.AccessToken)
	require.Equal(t, http.StatusCreated, status, "create foyer: %v", body)

	f, ok := body["foyer"].(map[string]any)
	require.True(t, ok, "expected foyer object")
	return f["id"].(string), f["code"].(string)
}
