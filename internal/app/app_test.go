package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/communities-gateway/internal/auth"
	"github.com/heartmarshall/communities-gateway/internal/config"
	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/forumstub"
	"github.com/heartmarshall/communities-gateway/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stubConfig() config.StubConfig {
	return config.StubConfig{
		Host:            "127.0.0.1",
		RoutesPrefix:    "/routes",
		JWTSecret:       "app-test-secret-that-is-at-least-32-chars",
		JWTIssuer:       "forumstub",
		TokenTTL:        time.Hour,
		ShutdownTimeout: time.Second,
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}
}

func startStub(t *testing.T, cfg config.StubConfig) *httptest.Server {
	t.Helper()
	logger := discardLogger()
	handler, stop := NewStubHandler(cfg, forumstub.New(logger), logger)
	t.Cleanup(stop)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func mintToken(t *testing.T, cfg config.StubConfig, userID string) string {
	t.Helper()
	token, err := NewJWTManager(cfg).GenerateAccessToken(auth.Identity{UserID: userID, Name: userID})
	require.NoError(t, err)
	return token
}

func TestStubHandler_HealthAndRequestID(t *testing.T) {
	t.Parallel()
	srv := startStub(t, stubConfig())

	resp, err := http.Get(srv.URL + "/_healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestStubHandler_InvalidTokenRejected(t *testing.T) {
	t.Parallel()
	srv := startStub(t, stubConfig())

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/routes/communities/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStubHandler_RateLimit(t *testing.T) {
	t.Parallel()
	cfg := stubConfig()
	cfg.RateLimit = 2
	srv := startStub(t, cfg)

	codes := make([]int, 0, 3)
	for range 3 {
		resp, err := http.Get(srv.URL + "/_healthz")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestClient_SyncAgainstStub(t *testing.T) {
	t.Parallel()
	cfg := stubConfig()
	srv := startStub(t, cfg)

	reg := prometheus.NewRegistry()
	client := NewClient(config.GatewayConfig{
		BaseURL:      srv.URL,
		RoutesPrefix: cfg.RoutesPrefix,
		Token:        mintToken(t, cfg, "alice"),
		Timeout:      5 * time.Second,
		UserAgent:    "forumctl",
	}, discardLogger(), reg)

	ctx := context.Background()
	resp, err := client.Gateway.CreateCommunity(ctx, contract.CreateCommunityRequest{Name: "Gophers"})
	require.NoError(t, err)
	require.True(t, resp.OK())

	require.NoError(t, client.Sync(ctx))

	assert.Equal(t, store.StatusLoaded, client.Discovery.State().Status)
	assert.Len(t, client.Discovery.State().All, 1)
	assert.Equal(t, store.StatusLoaded, client.Membership.State().Status)
	assert.Len(t, client.Membership.State().Mine, 1)

	count, err := testutil.GatherAndCount(reg, "communities_gateway_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "one series per endpoint and status")
}

func TestClient_SyncReportsFailure(t *testing.T) {
	t.Parallel()
	srv := startStub(t, stubConfig())

	client := NewClient(config.GatewayConfig{
		BaseURL:      srv.URL,
		RoutesPrefix: "/routes",
		Timeout:      5 * time.Second,
	}, discardLogger(), nil)

	err := client.Sync(context.Background())
	require.Error(t, err)
}

func TestClient_SyncFailureLeavesOtherStoreLoaded(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /routes/communities", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"detail":"Error retrieving community list"}`)
	})
	mux.HandleFunc("GET /routes/communities/me", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"c1","name":"Gophers","description":"","creator_id":"alice","member_ids":[],"created_at":"2024-01-02T03:04:05Z"}]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(config.GatewayConfig{
		BaseURL:      srv.URL,
		RoutesPrefix: "/routes",
		Token:        "any-token",
		Timeout:      5 * time.Second,
	}, discardLogger(), nil)

	require.Error(t, client.Sync(context.Background()))

	assert.Equal(t, store.StatusErrored, client.Discovery.State().Status)

	mine := client.Membership.State()
	assert.Equal(t, store.StatusLoaded, mine.Status)
	assert.Empty(t, mine.Err)
	require.Len(t, mine.Mine, 1)
	assert.Equal(t, "c1", mine.Mine[0].ID)
}

func TestRunStub_StopsOnCancel(t *testing.T) {
	t.Parallel()
	cfg := stubConfig()
	cfg.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunStub(ctx, cfg, discardLogger()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunStub did not return after cancel")
	}
}
