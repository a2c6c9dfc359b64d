package attendance

import (
	"net/http"
	"strconv"
	"time"

	attendanceerrors "obracheck/internal/attendance/errors"
	"obracheck/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	now     func() time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// rosterKey reads :siteId and ?date=. A missing date means today.
func (h *Handler) rosterKey(c *gin.Context) (RosterKey, error) {
	siteID, err := strconv.ParseInt(c.Param("siteId"), 10, 64)
	if err != nil {
		return RosterKey{}, attendanceerrors.ErrInvalidSiteID
	}
	date := c.Query("date")
	if date == "" {
		date = h.now().Format(DateLayout)
	}
	return NewRosterKey(siteID, date)
}

func (h *Handler) Load(c *gin.Context) {
	key, err := h.rosterKey(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	roster, err := h.service.Load(c.Request.Context(), key)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapToResponse(roster), nil)
}

func (h *Handler) Current(c *gin.Context) {
	key, err := h.rosterKey(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	roster, err := h.service.Current(c.Request.Context(), key)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapToResponse(roster), nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	key, err := h.rosterKey(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	workerID, err := strconv.ParseInt(c.Param("workerId"), 10, 64)
	if err != nil || workerID <= 0 {
		response.FromError(c, attendanceerrors.ErrInvalidWorkerID)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	status, err := ParseStatus(req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	roster, err := h.service.UpdateStatus(c.Request.Context(), key, workerID, status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapToResponse(roster), nil)
}

func (h *Handler) Close(c *gin.Context) {
	key, err := h.rosterKey(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	closed := h.service.Close(c.Request.Context(), key)
	response.Success(c, http.StatusOK, gin.H{"closed": closed}, nil)
}
