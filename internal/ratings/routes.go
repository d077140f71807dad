package ratings

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, limiter *RateLimiter) {
	rg.POST("/ratings", limiter.Middleware(), h.PostRating)
	rg.GET("/ratings/averages", h.GetAverages)
	rg.GET("/ratings/user", h.GetUserRating)
	rg.GET("/leaderboard", h.GetLeaderboard)
	rg.GET("/user/stats", h.GetUserStats)
}
