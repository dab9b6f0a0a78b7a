package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/models"
	"safecam-data/internal/service"
)

// fakeEventService 脚本化的 EventService
type fakeEventService struct {
	ingestID  int64
	ingestErr error
	lastReq   *service.IngestEventRequest

	listResult *service.EventListResult
	listErr    error
	lastPage   int
	lastLimit  int

	view    *models.EventView
	viewErr error
}

func (f *fakeEventService) Ingest(_ context.Context, req *service.IngestEventRequest) (int64, error) {
	f.lastReq = req
	return f.ingestID, f.ingestErr
}

func (f *fakeEventService) List(_ context.Context, page, limit int) (*service.EventListResult, error) {
	f.lastPage, f.lastLimit = page, limit
	return f.listResult, f.listErr
}

func (f *fakeEventService) GetByID(_ context.Context, _ int64) (*models.EventView, error) {
	return f.view, f.viewErr
}

func newEventHandlerForTest(svc service.EventService) *EventHandler {
	return NewEventHandler(svc, zap.NewNop())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateEvent_Success(t *testing.T) {
	svc := &fakeEventService{ingestID: 42}
	h := newEventHandlerForTest(svc)

	payload := `{"equipment_type":"slide","timestamp":"2025-10-27T18:30:00","risk_type":"abnormal","score":62,"deductions":["posture"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(42), body["event_id"])

	require.NotNil(t, svc.lastReq)
	assert.Equal(t, "slide", svc.lastReq.EquipmentType)
	require.NotNil(t, svc.lastReq.Score)
	assert.Equal(t, 62, *svc.lastReq.Score)
}

func TestCreateEvent_EmptyBody(t *testing.T) {
	svc := &fakeEventService{}
	h := newEventHandlerForTest(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "no input data provided")
	assert.Nil(t, svc.lastReq)
}

func TestCreateEvent_EmptyObjectBody(t *testing.T) {
	for _, payload := range []string{`{}`, `null`} {
		t.Run(payload, func(t *testing.T) {
			svc := &fakeEventService{}
			h := newEventHandlerForTest(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(payload))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			// 空对象不进入字段级校验
			assert.Contains(t, body["message"], "no input data provided")
			assert.Nil(t, svc.lastReq)
		})
	}
}

func TestCreateEvent_MalformedJSON(t *testing.T) {
	h := newEventHandlerForTest(&fakeEventService{})

	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEvent_ValidationErrorStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing field", domain.NewError(domain.ErrMissingField, "missing required fields: score"), http.StatusBadRequest},
		{"invalid enum", domain.NewError(domain.ErrInvalidEnum, "invalid risk_type value"), http.StatusBadRequest},
		{"invalid timestamp", domain.NewError(domain.ErrInvalidTimestamp, "invalid timestamp format"), http.StatusBadRequest},
		{"persistence", domain.WrapPersistence("database error", assert.AnError), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newEventHandlerForTest(&fakeEventService{ingestErr: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"risk_type":"abnormal"}`))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestListEvents(t *testing.T) {
	svc := &fakeEventService{
		listResult: &service.EventListResult{
			Events: []models.EventView{{
				ID:         1,
				RiskType:   "abnormal",
				EventTime:  "2025-10-27T18:30:00Z",
				Deductions: []string{"posture"},
			}},
			Pagination: models.NewPagination(2, 20, 45),
		},
	}
	h := newEventHandlerForTest(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/events?page=2&limit=20", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.lastPage)
	assert.Equal(t, 20, svc.lastLimit)

	body := decodeBody(t, rec)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(45), pagination["totalItems"])
	assert.Equal(t, float64(3), pagination["totalPages"])
}

func TestListEvents_DefaultPagination(t *testing.T) {
	svc := &fakeEventService{
		listResult: &service.EventListResult{
			Events:     []models.EventView{},
			Pagination: models.NewPagination(1, 20, 0),
		},
	}
	h := newEventHandlerForTest(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.lastPage)
	assert.Equal(t, 20, svc.lastLimit)
}

func TestListEvents_InvalidPagination(t *testing.T) {
	h := newEventHandlerForTest(&fakeEventService{})

	req := httptest.NewRequest(http.MethodGet, "/api/events?page=abc", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["message"], "invalid pagination parameters")
}

func TestEventDetail_Success(t *testing.T) {
	svc := &fakeEventService{
		view: &models.EventView{
			ID:         7,
			RiskType:   "abnormal",
			Score:      62,
			Status:     "new",
			Deductions: []string{"posture"},
		},
	}
	h := newEventHandlerForTest(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/events/7", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "abnormal", data["risk_type"])
	assert.Equal(t, float64(62), data["score"])
	assert.Equal(t, []any{"posture"}, data["deductions"])
}

func TestEventDetail_NotFound(t *testing.T) {
	svc := &fakeEventService{viewErr: domain.NewError(domain.ErrNotFound, "no event found for the given id")}
	h := newEventHandlerForTest(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/events/99", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventDetail_NonNumericID(t *testing.T) {
	h := newEventHandlerForTest(&fakeEventService{})

	req := httptest.NewRequest(http.MethodGet, "/api/events/abc", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvents_MethodNotAllowed(t *testing.T) {
	h := newEventHandlerForTest(&fakeEventService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/events", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
