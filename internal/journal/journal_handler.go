package journal

import (
	"net/http"
	"strconv"
	"time"

	journalerrors "obracheck/internal/journal/errors"
	"obracheck/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetSyncLogs(c *gin.Context) {
	if h.service == nil {
		response.FromError(c, journalerrors.ErrJournalDisabled)
		return
	}

	siteID, err := strconv.ParseInt(c.Param("siteId"), 10, 64)
	if err != nil {
		response.FromError(c, journalerrors.ErrInvalidSiteID)
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	logs, err := h.service.List(c.Request.Context(), siteID, date)
	if err != nil {
		response.FromError(c, err)
		return
	}

	meta := response.NewListMeta(len(logs), defaultListLimit)
	response.Success(c, http.StatusOK, logs, &meta)
}
