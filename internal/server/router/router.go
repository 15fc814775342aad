package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/server/middleware"
)

// OCRHandler defines the interface for the OCR handler.
type OCRHandler interface {
	HandleRoot(c *gin.Context)
	HandleExtract(c *gin.Context)
}

// New wires up handlers to the Gin engine.
func New(apiKey string, ocrHandler OCRHandler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.CORS(),
	)

	r.GET("/", ocrHandler.HandleRoot)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.POST("/extract-text", middleware.WithAPIKey(apiKey), ocrHandler.HandleExtract)

	return r
}
