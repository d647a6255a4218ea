package handlers

import (
	"net/http"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/logger"
	"gymhub/internal/service"
	"gymhub/internal/validation"

	"github.com/gin-gonic/gin"
)

const defaultUploadMaxBytes = 50 << 20

type Handlers struct {
	services       *service.Services
	uploadMaxBytes int64
}

func NewHandlers(services *service.Services, uploadMaxBytes int64) *Handlers {
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = defaultUploadMaxBytes
	}
	return &Handlers{
		services:       services,
		uploadMaxBytes: uploadMaxBytes,
	}
}

// respond пишет конверт {status, message, ...}
func respond(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"status": status, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError переводит ошибку сервиса в HTTP статус. Store errors are logged
// and answered with the fallback so driver details never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	message := apperrors.Message(err)
	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error(fallback, "error", err)
		_ = c.Error(err)
		message = fallback
	}
	respond(c, status, message, nil)
}

func respondInvalid(c *gin.Context, err error) {
	respond(c, http.StatusBadRequest, "Request validation failed", gin.H{
		"errors": validation.Violations(err),
	})
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondInvalid(c, err)
		return false
	}
	return true
}

func bindURI(c *gin.Context, obj any) bool {
	if err := c.ShouldBindUri(obj); err != nil {
		respondInvalid(c, err)
		return false
	}
	return true
}

// missingID answers an update whose body carries no identifier.
func missingID(c *gin.Context, entity string) {
	respond(c, http.StatusNotFound, "Cannot find "+entity+" to update without ID", nil)
}
