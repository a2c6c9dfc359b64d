package directory

import (
	"net/http"
	"strconv"

	directoryerrors "obracheck/internal/directory/errors"
	"obracheck/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetBySite(c *gin.Context) {
	siteID, err := strconv.ParseInt(c.Param("siteId"), 10, 64)
	if err != nil || siteID <= 0 {
		response.FromError(c, directoryerrors.ErrInvalidSiteID)
		return
	}

	workers, err := h.service.ListBySite(c.Request.Context(), siteID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	meta := response.NewListMeta(len(workers), 0)
	response.Success(c, http.StatusOK, workers, &meta)
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.service.Invalidate(c.Request.Context()); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invalidated": true}, nil)
}
