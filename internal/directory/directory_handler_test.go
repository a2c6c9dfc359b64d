package directory_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"obracheck/internal/directory"
	directoryerrors "obracheck/internal/directory/errors"
	directoryMock "obracheck/internal/directory/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newDirectoryRouter(svc directory.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	directory.RegisterRoutes(r.Group("/api/v1"), directory.NewHandler(svc))
	return r
}

func TestHandler_GetBySite(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := directoryMock.NewMockService(ctrl)
		svc.EXPECT().
			ListBySite(gomock.Any(), int64(7)).
			Return([]directory.WorkerRef{{ID: 1, Name: "Ana", CI: "111", SiteID: 7}}, nil)

		w := httptest.NewRecorder()
		newDirectoryRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/workers", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
	})

	t.Run("invalid site - catalog error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := directoryMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		newDirectoryRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/0/workers", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
		assert.Contains(t, w.Body.String(), directoryerrors.ErrInvalidSiteID.Message)
	})

	t.Run("backend failure - 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := directoryMock.NewMockService(ctrl)
		svc.EXPECT().ListBySite(gomock.Any(), int64(7)).Return(nil, directoryerrors.ErrFetchDirectory)

		w := httptest.NewRecorder()
		newDirectoryRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sites/7/workers", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")
	})
}

func TestHandler_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := directoryMock.NewMockService(ctrl)
	svc.EXPECT().Invalidate(gomock.Any()).Return(nil)

	w := httptest.NewRecorder()
	newDirectoryRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/workers/refresh", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"invalidated":true`)
}
