package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(authHandler *handlers.AuthHandler, reportHandler *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", authHandler.Login)

	authed := api.Group("", authHandler.RequireSession())
	authed.POST("/logout", authHandler.Logout)
	authed.GET("/employees", reportHandler.ListEmployees)
	authed.GET("/reports", reportHandler.ListReports)
	authed.POST("/reports", reportHandler.SubmitReport)
	authed.DELETE("/reports/:id", reportHandler.DeleteReport)
	authed.GET("/summary", reportHandler.Summary)
	authed.GET("/summary/export", reportHandler.ExportSummary)

	admin := authed.Group("/admin", authHandler.RequireManager())
	admin.POST("/send-summary", reportHandler.SendSummary)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
