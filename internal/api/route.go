package api

import (
	"Murmur/internal/api/middleware"
	"Murmur/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "pong",
			})
		})

		apiGroup.POST("/submit", group.EntryHandler.Submit)
		apiGroup.GET("/entries", group.EntryHandler.ListEntries)
		apiGroup.POST("/entries/:entry_id/view", group.EntryHandler.IncrView)

		apiGroup.POST("/vote", group.VoteHandler.VoteEntry)
		apiGroup.POST("/report", group.ReportHandler.ReportEntry)

		apiGroup.GET("/comments/:entry_id", group.CommentHandler.ListComments)
		apiGroup.POST("/comments", group.CommentHandler.Create)
		apiGroup.POST("/comment-vote", group.VoteHandler.VoteComment)
		apiGroup.POST("/comment-report", group.ReportHandler.ReportComment)

		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.POST("/login", group.AdminHandler.Login)

			authGroup := adminGroup.Group("")
			authGroup.Use(middleware.AdminAuthMiddleware())
			{
				authGroup.GET("/data", group.AdminHandler.Data)
				authGroup.POST("/entries/:entry_id/pin", group.AdminHandler.TogglePin)
				authGroup.DELETE("/entries/:entry_id", group.AdminHandler.DeleteEntry)
			}
		}
	}

	return r
}
