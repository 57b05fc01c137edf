package api

import (
	"net/http"

	"callsheet/internal/workspace"
	"callsheet/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every workspace route. hub may be nil, which disables /ws.
func NewRouter(w *workspace.Workspace, hub *ws.Hub, logger *zap.Logger, maxUploadMB int64) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), cors())

	contactHandler := NewContactHandler(w, logger, maxUploadMB)
	dashboardHandler := NewDashboardHandler(w)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if hub != nil {
		r.GET("/ws", func(c *gin.Context) {
			hub.ServeWs(c.Writer, c.Request)
		})
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/workspace", dashboardHandler.GetWorkspace)
		apiGroup.DELETE("/workspace", dashboardHandler.ResetWorkspace)
		apiGroup.GET("/stats", dashboardHandler.GetStats)

		apiGroup.GET("/contacts", contactHandler.GetContacts)
		apiGroup.POST("/contacts", contactHandler.CreateContact)
		apiGroup.POST("/contacts/import", contactHandler.ImportContacts)
		apiGroup.GET("/contacts/export", contactHandler.ExportContacts)
		apiGroup.PUT("/contacts/:id", contactHandler.UpdateContact)
		apiGroup.DELETE("/contacts/:id", contactHandler.DeleteContact)
		apiGroup.GET("/contacts/:id/dial", contactHandler.DialContact)
	}

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()))
	}
}
