package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-eventdesk/api"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/goliatone/go-eventdesk/config"
	"github.com/goliatone/go-eventdesk/internal/testutil"
	"github.com/goliatone/go-eventdesk/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "api-test-signing-secret"

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type harness struct {
	t     *testing.T
	app   *fiber.App
	repos repository.Manager
	token string
}

func newHarness(t *testing.T, opts ...func(*api.Config)) *harness {
	t.Helper()

	repos := repository.NewRepositoryManager(testutil.NewTestDB(t))
	auther, err := auth.NewAuther(repos.Users(), config.AuthConfig{
		SecretKey:                testSecret,
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 30,
		HashCost:                 4,
	}, auth.WithLogger(nopLogger{}))
	require.NoError(t, err)

	cfg := api.Config{
		Auther:         auther,
		Repos:          repos,
		Logger:         zap.NewNop(),
		LoginRateLimit: "1000-M",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	app, err := api.New(cfg)
	require.NoError(t, err)

	h := &harness{t: t, app: app, repos: repos}

	_, err = auth.NewRegisterUserHandler(repos.Users(), auther.Hasher()).Execute(context.Background(), auth.RegisterUserMessage{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw123",
	})
	require.NoError(t, err)

	return h
}

// login stores a token for alice on the harness
func (h *harness) login() *harness {
	h.t.Helper()
	resp, body := h.do(http.MethodPost, "/security/token?login=alice&pwd=pw123", nil)
	require.Equal(h.t, http.StatusOK, resp.StatusCode, string(body))

	out := map[string]any{}
	require.NoError(h.t, json.Unmarshal(body, &out))
	h.token = out["access_token"].(string)
	return h
}

func (h *harness) do(method, path string, payload any) (*http.Response, []byte) {
	h.t.Helper()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp, body
}

func (h *harness) json(method, path string, payload any, wantStatus int) map[string]any {
	h.t.Helper()
	resp, body := h.do(method, path, payload)
	require.Equal(h.t, wantStatus, resp.StatusCode, string(body))

	out := map[string]any{}
	if len(body) > 0 {
		require.NoError(h.t, json.Unmarshal(body, &out))
	}
	return out
}

func (h *harness) list(path string) []map[string]any {
	h.t.Helper()
	resp, body := h.do(http.MethodGet, path, nil)
	require.Equal(h.t, http.StatusOK, resp.StatusCode, string(body))

	out := []map[string]any{}
	require.NoError(h.t, json.Unmarshal(body, &out))
	return out
}
