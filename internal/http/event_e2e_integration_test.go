//go:build integration
// +build integration

package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"safecam-data/internal/alert"
	"safecam-data/internal/config"
	"safecam-data/internal/database"
	"safecam-data/internal/repository"
	"safecam-data/internal/service"
)

// newIntegrationRouter 组装一个连真库的路由（库不可用则跳过）
func newIntegrationRouter(t *testing.T) *Router {
	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		t.Skipf("Skipping integration test: database not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()
	events := service.NewEventService(
		repository.NewEventsRepository(db, logger),
		alert.NewLogNotifier(logger),
		cfg.Validation,
		logger,
	)

	router := NewRouter(logger)
	router.RegisterEventRoutes(NewEventHandler(events, logger))
	router.RegisterHealthRoutes(NewHealthHandler(db, logger))
	return router
}

func TestEventRoundTrip(t *testing.T) {
	router := newIntegrationRouter(t)

	payload := `{"equipment_type":"slide","timestamp":"2025-10-27T18:30:00","risk_type":"abnormal","score":62,"deductions":["posture"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	eventID := int64(created["event_id"].(float64))
	require.NotZero(t, eventID)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/events/%d", eventID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "abnormal", data["risk_type"])
	assert.Equal(t, float64(62), data["score"])
	assert.Equal(t, "new", data["status"])
	assert.Equal(t, []any{"posture"}, data["deductions"])
	assert.Equal(t, "2025-10-27T18:30:00Z", data["event_time"])
}

func TestEventListPagination(t *testing.T) {
	router := newIntegrationRouter(t)

	for i := 0; i < 3; i++ {
		payload := fmt.Sprintf(
			`{"equipment_type":"swing","timestamp":"2025-10-27T10:0%d:00","risk_type":"normal","score":%d}`,
			i, 90+i,
		)
		req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events?page=1&limit=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.LessOrEqual(t, len(body["data"].([]any)), 2)

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["currentPage"])
	assert.Equal(t, float64(2), pagination["pageSize"])
	assert.GreaterOrEqual(t, pagination["totalItems"], float64(3))
}
