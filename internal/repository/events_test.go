package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"safecam-data/internal/models"
)

func setupMockEventsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *EventsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewEventsRepository(db, zap.NewNop())
	return db, mock, repo
}

func sampleEvent() *models.Event {
	return &models.Event{
		CameraID:      3,
		EquipmentType: "slide",
		EventTime:     time.Date(2025, 10, 27, 18, 30, 0, 0, time.UTC),
		RiskType:      models.RiskTypeAbnormal,
		Score:         62,
		ThumbnailURL:  "evt_001.jpg",
		ImageCount:    1,
		Status:        models.StatusNew,
		Deductions:    []string{"posture"},
	}
}

func TestInsertEvent_Success(t *testing.T) {
	db, mock, repo := setupMockEventsDB(t)
	defer db.Close()

	event := sampleEvent()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs(3, "slide", event.EventTime, "abnormal", 62, "evt_001.jpg", 1, "new", `["posture"]`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(17)))
	mock.ExpectCommit()

	id, err := repo.Insert(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, int64(17), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEvent_NilDeductionsStoredAsEmptyArray(t *testing.T) {
	db, mock, repo := setupMockEventsDB(t)
	defer db.Close()

	event := sampleEvent()
	event.Deductions = nil

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs(3, "slide", event.EventTime, "abnormal", 62, "evt_001.jpg", 1, "new", `[]`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(18)))
	mock.ExpectCommit()

	_, err := repo.Insert(context.Background(), event)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEvent_FailureRollsBack(t *testing.T) {
	db, mock, repo := setupMockEventsDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO events`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Insert(context.Background(), sampleEvent())

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "camera_id", "equipment_type", "event_time", "risk_type",
		"score", "thumbnail_url", "status", "deductions",
	})
}

func TestListPage(t *testing.T) {
	db, mock, repo := setupMockEventsDB(t)
	defer db.Close()

	eventTime := time.Date(2025, 10, 27, 18, 30, 0, 0, time.UTC)
	rows := eventRows().
		AddRow(int64(2), 3, "slide", eventTime, "abnormal", 62, "evt_002.jpg", "new", `["posture","speed"]`).
		AddRow(int64(1), 0, "swing", eventTime, "normal", 95, nil, "new", nil).
		AddRow(int64(3), 0, nil, eventTime, "normal", 80, "evt_003.jpg", "new", `{broken`)

	mock.ExpectQuery(`SELECT (.+) FROM events ORDER BY event_time DESC`).
		WithArgs(20, 0).
		WillReturnRows(rows)

	events, err := repo.ListPage(context.Background(), 20, 0)

	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, []string{"posture", "speed"}, events[0].Deductions)
	// NULL 和坏数据都归一化为空列表
	assert.Equal(t, []string{}, events[1].Deductions)
	assert.Equal(t, []string{}, events[2].Deductions)
	assert.Equal(t, "", events[1].ThumbnailURL)
	assert.Equal(t, "", events[2].EquipmentType)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAll(t *testing.T) {
	db, mock, repo := setupMockEventsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))

	total, err := repo.CountAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 45, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_Found(t *testing.T) {
	db, mock, repo := setupMockEventsDB(t)
	defer db.Close()

	eventTime := time.Date(2025, 10, 27, 18, 30, 0, 0, time.UTC)
	rows := eventRows().
		AddRow(int64(7), 0, "slide", eventTime, "abnormal", 62, "evt_007.jpg", "new", `["posture"]`)

	mock.ExpectQuery(`SELECT (.+) FROM events\s+WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	event, err := repo.GetByID(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, int64(7), event.ID)
	assert.Equal(t, []string{"posture"}, event.Deductions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockEventsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM events\s+WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(eventRows())

	event, err := repo.GetByID(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, event)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecodeDeductions(t *testing.T) {
	cases := []struct {
		name string
		raw  sql.NullString
		want []string
	}{
		{"null", sql.NullString{}, []string{}},
		{"empty string", sql.NullString{Valid: true, String: ""}, []string{}},
		{"json null", sql.NullString{Valid: true, String: "null"}, []string{}},
		{"bad json", sql.NullString{Valid: true, String: "{oops"}, []string{}},
		{"list", sql.NullString{Valid: true, String: `["a","b"]`}, []string{"a", "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeDeductions(tc.raw))
		})
	}
}
