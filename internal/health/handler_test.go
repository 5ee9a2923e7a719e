package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockHandler(t *testing.T) (*HealthHandler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHealthHandler(db), mock
}

func TestHealth(t *testing.T) {
	h, _ := newMockHandler(t)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "creatorvault-backend", body["service"])
}

func TestHealthDB(t *testing.T) {
	h, mock := newMockHandler(t)

	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	w := httptest.NewRecorder()
	h.HealthDB(w, httptest.NewRequest(http.MethodGet, "/health/db", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "connected", body["database"])
}

func TestHealthDBDown(t *testing.T) {
	h, mock := newMockHandler(t)

	mock.ExpectQuery("SELECT 1").
		WillReturnError(errors.New("pq: the database system is shutting down"))

	w := httptest.NewRecorder()
	h.HealthDB(w, httptest.NewRequest(http.MethodGet, "/health/db", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "disconnected", body["database"])
	// Driver error text stays out of the response.
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestReady(t *testing.T) {
	h, mock := newMockHandler(t)

	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	w := httptest.NewRecorder()
	h.Ready(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "ok", body.Checks["database"])
}

func TestReadyDatabaseDown(t *testing.T) {
	h, mock := newMockHandler(t)

	mock.ExpectQuery("SELECT 1").
		WillReturnError(errors.New("connection refused"))

	w := httptest.NewRecorder()
	h.Ready(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "failed", body.Checks["database"])
}
