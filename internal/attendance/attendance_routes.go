package attendance

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	site := r.Group("/sites/:siteId/attendance")
	{
		site.GET("", h.Load)
		site.GET("/current", h.Current)
		site.PUT("/workers/:workerId", h.UpdateStatus)
		site.DELETE("", h.Close)
	}
}
