package directory

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, refreshRoles ...gin.HandlerFunc) {
	r.GET("/sites/:siteId/workers", h.GetBySite)

	refresh := append(refreshRoles, h.Refresh)
	r.POST("/workers/refresh", refresh...)
}
