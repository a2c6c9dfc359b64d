package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"obracheck/internal/attendance"
	attendanceerrors "obracheck/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	loadFn   func(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error)
	updateFn func(ctx context.Context, key attendance.RosterKey, workerID int64, status attendance.Status) (attendance.SiteRoster, error)
	current  *attendance.SiteRoster
	closed   []attendance.RosterKey
}

func (f *fakeService) Load(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error) {
	return f.loadFn(ctx, key)
}
func (f *fakeService) Current(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error) {
	if f.current == nil {
		return attendance.SiteRoster{}, attendanceerrors.ErrRosterNotLoaded
	}
	return *f.current, nil
}
func (f *fakeService) UpdateStatus(ctx context.Context, key attendance.RosterKey, workerID int64, status attendance.Status) (attendance.SiteRoster, error) {
	return f.updateFn(ctx, key, workerID, status)
}
func (f *fakeService) Close(ctx context.Context, key attendance.RosterKey) bool {
	f.closed = append(f.closed, key)
	return true
}
func (f *fakeService) Reconciled(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error) {
	return f.loadFn(ctx, key)
}
func (f *fakeService) Shutdown(ctx context.Context) error { return nil }

func newRouter(svc attendance.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	attendance.RegisterRoutes(r.Group("/api/v1"), attendance.NewHandler(svc))
	return r
}

func sampleRoster(key attendance.RosterKey) attendance.SiteRoster {
	return attendance.SiteRoster{
		Key:      key,
		SiteName: "Obra Norte",
		Records: attendance.Roster{
			{WorkerID: 1, WorkerName: "Ana Quispe", CI: "4455667", Status: attendance.StatusPresent},
			{WorkerID: 3, WorkerName: "Rosa Choque", CI: "9988776", Status: attendance.StatusNotRecorded},
		},
	}
}

func TestHandler_Load(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{loadFn: func(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error) {
			assert.Equal(t, attendance.RosterKey{SiteID: 7, Date: "2024-05-01"}, key)
			return sampleRoster(key), nil
		}}

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/attendance?date=2024-05-01", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"worker_name":"Ana Quispe"`)
		assert.Contains(t, w.Body.String(), `"status_label":"Presente"`)
		assert.Contains(t, w.Body.String(), `"summary":{"total":2,"not_recorded":1,"present":1,"absent":0,"late":0}`)
	})

	t.Run("missing date - today", func(t *testing.T) {
		today := time.Now().Format(attendance.DateLayout)
		svc := &fakeService{loadFn: func(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error) {
			assert.Equal(t, today, key.Date)
			return sampleRoster(key), nil
		}}

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/attendance", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := &fakeService{}

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/attendance?date=01-05-2024", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("invalid site", func(t *testing.T) {
		svc := &fakeService{}

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/abc/attendance?date=2024-05-01", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("backend failure - 502", func(t *testing.T) {
		svc := &fakeService{loadFn: func(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error) {
			return attendance.SiteRoster{}, attendanceerrors.ErrFetchAttendance
		}}

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/attendance?date=2024-05-01", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")
	})
}

func TestHandler_Current(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/attendance/current?date=2024-05-01", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	roster := sampleRoster(attendance.RosterKey{SiteID: 7, Date: "2024-05-01"})
	svc.current = &roster

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/attendance/current?date=2024-05-01", nil))
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestHandler_UpdateStatus(t *testing.T) {
	put := func(r http.Handler, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{updateFn: func(ctx context.Context, key attendance.RosterKey, workerID int64, status attendance.Status) (attendance.SiteRoster, error) {
			assert.Equal(t, int64(3), workerID)
			assert.Equal(t, attendance.StatusLate, status)
			return sampleRoster(key), nil
		}}

		w := put(newRouter(svc), "/api/v1/sites/7/attendance/workers/3?date=2024-05-01", `{"status":"late"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		w := put(newRouter(&fakeService{}), "/api/v1/sites/7/attendance/workers/3?date=2024-05-01", `{"status":"HOLIDAY"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("missing status", func(t *testing.T) {
		w := put(newRouter(&fakeService{}), "/api/v1/sites/7/attendance/workers/3?date=2024-05-01", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid worker id", func(t *testing.T) {
		w := put(newRouter(&fakeService{}), "/api/v1/sites/7/attendance/workers/x?date=2024-05-01", `{"status":"PRESENT"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("worker not in roster - 404", func(t *testing.T) {
		svc := &fakeService{updateFn: func(ctx context.Context, key attendance.RosterKey, workerID int64, status attendance.Status) (attendance.SiteRoster, error) {
			return attendance.SiteRoster{}, attendanceerrors.ErrWorkerNotInRoster
		}}

		w := put(newRouter(svc), "/api/v1/sites/7/attendance/workers/99?date=2024-05-01", `{"status":"PRESENT"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_Close(t *testing.T) {
	svc := &fakeService{}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/sites/7/attendance?date=2024-05-01", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []attendance.RosterKey{{SiteID: 7, Date: "2024-05-01"}}, svc.closed)
}
