package journal

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/sites/:siteId/attendance/sync-logs", h.GetSyncLogs)
}
