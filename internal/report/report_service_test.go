package report_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"obracheck/internal/attendance"
	"obracheck/internal/report"
	reporterrors "obracheck/internal/report/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	calls  int
	roster attendance.SiteRoster
	err    error
}

func (f *fakeSource) Reconciled(ctx context.Context, key attendance.RosterKey) (attendance.SiteRoster, error) {
	f.calls++
	f.roster.Key = key
	return f.roster, f.err
}

var reportKey = attendance.RosterKey{SiteID: 7, Date: "2024-05-01"}

func TestReportService_Render(t *testing.T) {
	ctx := context.Background()
	ttl := 10 * time.Minute
	roster := attendance.SiteRoster{SiteName: "Obra Norte", Records: makeRoster(2)}

	t.Run("cache miss - rendered and stored", func(t *testing.T) {
		source := &fakeSource{roster: roster}
		rdb, redisMock := redismock.NewClientMock()
		svc := report.NewService(source, rdb, ttl)

		expected, _ := report.RenderPDF(meta, roster.Records)
		cacheKey := report.CacheKey(report.FormatPDF, 7, "2024-05-01")
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSet(cacheKey, expected, ttl).SetVal("OK")

		doc, err := svc.Render(ctx, reportKey, report.FormatPDF)

		assert.NoError(t, err)
		assert.Equal(t, expected, doc.Body)
		assert.Equal(t, "application/pdf", doc.ContentType)
		assert.Equal(t, "asistencia_7_2024-05-01.pdf", doc.Filename)
		assert.Equal(t, 1, source.calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit - roster not fetched", func(t *testing.T) {
		source := &fakeSource{roster: roster}
		rdb, redisMock := redismock.NewClientMock()
		svc := report.NewService(source, rdb, ttl)

		redisMock.ExpectGet(report.CacheKey(report.FormatXLSX, 7, "2024-05-01")).SetVal("cached-bytes")

		doc, err := svc.Render(ctx, reportKey, report.FormatXLSX)

		assert.NoError(t, err)
		assert.Equal(t, []byte("cached-bytes"), doc.Body)
		assert.Equal(t, 0, source.calls)
	})

	t.Run("no cache configured", func(t *testing.T) {
		source := &fakeSource{roster: roster}
		svc := report.NewService(source, nil, ttl)

		doc, err := svc.Render(ctx, reportKey, report.FormatXLSX)

		assert.NoError(t, err)
		assert.NotEmpty(t, doc.Body)
	})

	t.Run("source failure", func(t *testing.T) {
		source := &fakeSource{err: errors.New("backend down")}
		svc := report.NewService(source, nil, ttl)

		_, err := svc.Render(ctx, reportKey, report.FormatPDF)

		assert.Error(t, err)
	})
}

func TestReportService_Invalidate(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	svc := report.NewService(&fakeSource{}, rdb, time.Minute)

	redisMock.ExpectDel(
		"reports:attendance:pdf:7:2024-05-01",
		"reports:attendance:xlsx:7:2024-05-01",
	).SetVal(2)

	assert.NoError(t, svc.Invalidate(context.Background(), 7, "2024-05-01"))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat("")
	assert.NoError(t, err)
	assert.Equal(t, report.FormatPDF, f)

	f, err = report.ParseFormat("XLSX")
	assert.NoError(t, err)
	assert.Equal(t, report.FormatXLSX, f)

	_, err = report.ParseFormat("csv")
	assert.ErrorIs(t, err, reporterrors.ErrUnsupportedFormat)
}

func TestHandler_Download(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := report.NewService(&fakeSource{roster: attendance.SiteRoster{SiteName: "Obra Norte", Records: makeRoster(1)}}, nil, 0)
	report.RegisterRoutes(r.Group("/api/v1"), report.NewHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/attendance/report?date=2024-05-01&format=pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "asistencia_7_2024-05-01.pdf")

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/attendance/report?date=2024-05-01&format=doc", nil))
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}
