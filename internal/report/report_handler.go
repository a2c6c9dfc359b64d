package report

import (
	"strconv"
	"time"

	"obracheck/internal/attendance"
	attendanceerrors "obracheck/internal/attendance/errors"
	"obracheck/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Download(c *gin.Context) {
	siteID, err := strconv.ParseInt(c.Param("siteId"), 10, 64)
	if err != nil {
		response.FromError(c, attendanceerrors.ErrInvalidSiteID)
		return
	}
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(attendance.DateLayout)
	}
	key, err := attendance.NewRosterKey(siteID, date)
	if err != nil {
		response.FromError(c, err)
		return
	}

	format, err := ParseFormat(c.Query("format"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	doc, err := h.service.Render(c.Request.Context(), key, format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Attachment(c, doc.Filename, doc.ContentType, doc.Body)
}
