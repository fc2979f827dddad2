package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benni94/mazeChromeBE/internal/config"
	"github.com/benni94/mazeChromeBE/internal/repository"
	"github.com/benni94/mazeChromeBE/pkg/database"
)

func newTestRouter(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		Port:            "0",
		Env:             "test",
		DBFile:          filepath.Join(dir, "game_progress.db"),
		BackupFile:      filepath.Join(dir, "game_progress_backup.db"),
		AdminUser:       "admin",
		AdminPassword:   "geheim",
		RateLimitMax:    100,
		RateLimitWindow: 20 * time.Second,
		BackupInterval:  time.Hour,
		ProtectedTables: []string{"sqlite_sequence"},
	}
	if mutate != nil {
		mutate(cfg)
	}

	db, err := database.Open(cfg.DBFile)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.NewProgressRepository(db).EnsureSchema(context.Background()))

	router, err := SetupRouter(cfg, db)
	require.NoError(t, err)

	return router
}

func submitBody(name string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"name":                    name,
		"level":                   5,
		"functionDetails":         map[string]int{"moveForward": 3, "turnLeft": 2},
		"totalFunctions":          5,
		"completionTimeMs":        75000,
		"completionTimeFormatted": "00:01:15",
		"timestamp":               "27/08/2026, 14:03:59",
	})
	return body
}

func doJSON(router *gin.Engine, method, path string, body []byte, auth bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:12345"
	if auth {
		req.SetBasicAuth("admin", "geheim")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitAndLeaderboardFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/data", submitBody("Anna"), false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Positive(t, resp.ID)

	w = doJSON(router, http.MethodGet, "/api/gamedata", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Anna", entries[0]["name"])
	assert.Equal(t, "14:03:59", entries[0]["timeOnly"])
}

func TestSubmitDuplicateName(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/data", submitBody("Anna"), false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/data", submitBody("aNNa"), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitMissingName(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/data", []byte(`{"level":3}`), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitRateLimited(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimitMax = 1
	})

	w := doJSON(router, http.MethodPost, "/api/data", submitBody("First"), false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/data", submitBody("Second"), false)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestSubmissionsLock(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/submissions-lock/set", []byte(`{"locked":true}`), true)
	require.Equal(t, http.StatusOK, w.Code)

	// locked beats uniqueness and rate limiting
	w = doJSON(router, http.MethodPost, "/api/data", submitBody("Anna"), false)
	assert.Equal(t, http.StatusLocked, w.Code)

	w = doJSON(router, http.MethodGet, "/api/submissions-lock/status", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"locked":true`)

	w = doJSON(router, http.MethodPost, "/api/submissions-lock/set", []byte(`{"locked":false}`), true)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/data", submitBody("Anna"), false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminEndpointsRequireCredential(t *testing.T) {
	router := newTestRouter(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/replace-name"},
		{http.MethodDelete, "/api/clear-table"},
		{http.MethodPost, "/api/restore-db"},
		{http.MethodPost, "/api/backup-service/start"},
		{http.MethodGet, "/api/backup-service/status"},
		{http.MethodGet, "/api/submissions-lock/status"},
		{http.MethodPost, "/api/load-mock-data"},
	}

	for _, p := range paths {
		w := doJSON(router, p.method, p.path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
		assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic", "%s %s", p.method, p.path)
	}
}

func TestAdminWrongPassword(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/backup-service/status", nil)
	req.SetBasicAuth("admin", "falsch")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReplaceNameDistinguishesZeroMatches(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/data", submitBody("Alice"), false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/replace-name",
		[]byte(`{"findName":"Nobody","replaceName":"Bob"}`), true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rowsAffected":0`)

	w = doJSON(router, http.MethodPost, "/api/replace-name",
		[]byte(`{"findName":"Alice","replaceName":"Bob"}`), true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rowsAffected":1`)
}

func TestClearTableProtection(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.Config) {
		cfg.ProtectedTables = []string{"game_progress"}
	})

	w := doJSON(router, http.MethodPost, "/api/data", submitBody("Anna"), false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/clear-table",
		[]byte(`{"tableName":"game_progress"}`), true)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// data untouched
	w = doJSON(router, http.MethodGet, "/api/gamedata", nil, false)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
}

func TestClearTableUnprotected(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/data", submitBody("Anna"), false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/clear-table",
		[]byte(`{"tableName":"game_progress"}`), true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/gamedata", nil, false)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}

func TestRestoreWithoutBackup(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/restore-db", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBackupServiceLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/api/backup-service/status", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stopped")

	w = doJSON(router, http.MethodPost, "/api/backup-service/stop", nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, "/api/backup-service/start", nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/backup-service/start", nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodGet, "/api/backup-service/status", nil, true)
	assert.Contains(t, w.Body.String(), "running")

	w = doJSON(router, http.MethodPost, "/api/backup-service/stop", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBackupRestoreRoundTripOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/data", submitBody("RecordA"), false)
	require.Equal(t, http.StatusOK, w.Code)

	// start takes an immediate snapshot containing A
	w = doJSON(router, http.MethodPost, "/api/backup-service/start", nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	defer doJSON(router, http.MethodPost, "/api/backup-service/stop", nil, true)

	w = doJSON(router, http.MethodPost, "/api/data", submitBody("RecordB"), false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/restore-db", nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/gamedata", nil, false)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "RecordA", entries[0]["name"])
}

func TestLoadMockDataOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/load-mock-data", []byte(`{"count":10}`), true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/gamedata", nil, false)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 10)
}

func TestRankedOrderOverHTTP(t *testing.T) {
	router := newTestRouter(t, nil)

	submissions := []struct {
		name      string
		ms        int64
		formatted string
	}{
		{"NoTime", 0, "00:00:00"},
		{"Slow", 120000, "00:02:00"},
		{"Fast", 30000, "00:00:30"},
	}

	for _, s := range submissions {
		body, _ := json.Marshal(map[string]interface{}{
			"name":                    s.name,
			"level":                   1,
			"functionDetails":         map[string]int{"moveForward": 1},
			"totalFunctions":          1,
			"completionTimeMs":        s.ms,
			"completionTimeFormatted": s.formatted,
			"timestamp":               "27/08/2026, 14:03:59",
		})
		w := doJSON(router, http.MethodPost, "/api/data", body, false)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := doJSON(router, http.MethodGet, "/api/gamedata", nil, false)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 3)

	var names []string
	for _, e := range entries {
		names = append(names, fmt.Sprint(e["name"]))
	}
	assert.Equal(t, []string{"Fast", "Slow", "NoTime"}, names)
}
