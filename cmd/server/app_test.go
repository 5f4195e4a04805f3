package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/userbase-api/internal/config"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/platform/logger"
	"github.com/phrazzld/userbase-api/internal/store"
	"github.com/phrazzld/userbase-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   3000,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 5,
			MaxBodyBytes:           1 << 20,
		},
		Store: config.StoreConfig{
			Path:     filepath.Join(t.TempDir(), "users.json"),
			FileMode: 0o600,
		},
		Users: config.UsersConfig{CollationLocale: "und"},
	}
}

func TestNewApplication(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		cfg := testConfig(t)
		buf, log := logger.NewTestLogger(t)
		app, err := newApplication(context.Background(), cfg, log)

		require.NoError(t, err)
		assert.Equal(t, 0, app.userService.Count(context.Background()))
		assert.Contains(t, buf.String(), `"store_path":"`+cfg.Store.Path+`"`)
	})

	t.Run("loads existing file", func(t *testing.T) {
		cfg := testConfig(t)
		user := testutils.MustCreateUserForTest(t, testutils.WithUserID("k"))
		cfg.Store.Path = testutils.WriteUsersFile(t, filepath.Dir(cfg.Store.Path), user)

		_, log := logger.NewTestLogger(t)
		app, err := newApplication(context.Background(), cfg, log)

		require.NoError(t, err)
		assert.Equal(t, []domain.User{user}, app.userService.List(context.Background()))
	})

	t.Run("corrupt file is fatal by default", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.WriteFile(cfg.Store.Path, []byte(`{not json`), 0o600))

		_, log := logger.NewTestLogger(t)
		_, err := newApplication(context.Background(), cfg, log)

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrStoreLoad))
	})

	t.Run("corrupt file allowed when configured", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Store.AllowEmptyOnLoadError = true
		require.NoError(t, os.WriteFile(cfg.Store.Path, []byte(`{not json`), 0o600))

		buf, log := logger.NewTestLogger(t)
		app, err := newApplication(context.Background(), cfg, log)

		require.NoError(t, err)
		assert.Equal(t, 0, app.userService.Count(context.Background()))

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		var fallback map[string]interface{}
		for _, entry := range entries {
			if entry["msg"] == "users file could not be loaded, starting with an empty collection" {
				fallback = entry
			}
		}
		require.NotNil(t, fallback, "fallback start must be logged")
		assert.Equal(t, "ERROR", fallback["level"])
		assert.Equal(t, true, fallback["next_write_replaces_file"])
		assert.Equal(t, cfg.Store.Path, fallback["path"])
	})

	t.Run("invalid collation locale", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Users.CollationLocale = "!!"

		_, log := logger.NewTestLogger(t)
		_, err := newApplication(context.Background(), cfg, log)
		assert.Error(t, err)
	})
}

func TestRouterWritesThrough(t *testing.T) {
	cfg := testConfig(t)
	_, log := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","age":36}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	var created domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	data, err := os.ReadFile(cfg.Store.Path)
	require.NoError(t, err)
	var onDisk []domain.User
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, []domain.User{created}, onDisk)

	info, err := os.Stat(cfg.Store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	req = httptest.NewRequest(http.MethodGet, "/users/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	_, log := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), testConfig(t), log)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, app.setupRouter()) }()

	url := fmt.Sprintf("http://%s/health", ln.Addr().String())
	resp, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","users":0}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	ada := testutils.MustCreateUserForTest(t, testutils.WithUserName("Ada"), testutils.WithUserAge(36))
	cfg.Store.Path = testutils.WriteUsersFile(t, filepath.Dir(cfg.Store.Path), ada)

	_, log := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	server := testutils.CreateTestServer(t, app.setupRouter())

	resp, err := http.Post(server.URL+"/users", "application/json",
		strings.NewReader(`[{"name":"bob","email":"bob@gmail.com","age":20}]`))
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)
	var created []domain.User
	testutils.DecodeJSONResponse(t, resp, http.StatusCreated, &created)
	require.Len(t, created, 1)

	resp, err = http.Get(server.URL + "/users/sorted")
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)
	var sorted []domain.User
	testutils.DecodeJSONResponse(t, resp, http.StatusOK, &sorted)
	assert.Equal(t, []domain.User{ada, created[0]}, sorted)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/users/"+ada.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/users/" + ada.ID)
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)
	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "User not found")

	data, err := os.ReadFile(cfg.Store.Path)
	require.NoError(t, err)
	var onDisk []domain.User
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, created, onDisk)
}
