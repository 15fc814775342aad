package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parishekpatidar-commits/Screenshot-to-text-converter/internal/server/service"
)

// RootMessage is returned by the liveness endpoint.
const RootMessage = "Screenshot to Text Converter API is running! POST /extract-text to use it."

// DefaultMaxMemory is the multipart budget held in memory before parts spill
// to disk.
const DefaultMaxMemory = 32 << 20

// OCRService defines the behavior consumed by the handler.
type OCRService interface {
	Process(ctx context.Context, file io.Reader, header *multipart.FileHeader) (service.Result, error)
}

// OCRHandler manages OCR HTTP interactions.
type OCRHandler struct {
	service   OCRService
	maxMemory int64
	logger    *slog.Logger
}

// NewOCRHandler builds the handler. maxMemory <= 0 uses DefaultMaxMemory.
func NewOCRHandler(svc OCRService, maxMemory int64, logger *slog.Logger) *OCRHandler {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRHandler{service: svc, maxMemory: maxMemory, logger: logger}
}

// HandleRoot reports that the service is up.
func (h *OCRHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": RootMessage})
}

// HandleExtract runs OCR on the multipart "file" part.
func (h *OCRHandler) HandleExtract(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxMemory); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"detail": "invalid multipart payload",
		})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"detail": "missing file",
		})
		return
	}
	defer file.Close()

	res, err := h.service.Process(c.Request.Context(), file, header)
	if err != nil {
		status, detail := h.classify(err)
		c.AbortWithStatusJSON(status, gin.H{"detail": detail})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *OCRHandler) classify(err error) (int, string) {
	appErr, ok := service.AsAppError(err)
	if !ok {
		h.logger.Error("unclassified ocr error", "error", err)
		return http.StatusInternalServerError, "internal server error"
	}
	if service.IsClientError(appErr.Code) {
		h.logger.Warn("rejected upload", "code", appErr.Code, "error", err)
		return http.StatusBadRequest, appErr.Message
	}
	h.logger.Error("ocr error", "code", appErr.Code, "error", err)
	return http.StatusInternalServerError, appErr.Message
}
