package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/importer"
	"gymhub/internal/logger"

	"github.com/gin-gonic/gin"
)

const uploadField = "xml-file"

type importFunc func(ctx context.Context, r io.Reader) (importer.Operation, error)

// UploadActivities - POST /upload-xml-activities
func (h *Handlers) UploadActivities(c *gin.Context) {
	h.upload(c, h.services.Imports.ImportActivities)
}

// UploadRooms - POST /upload-xml-rooms
func (h *Handlers) UploadRooms(c *gin.Context) {
	h.upload(c, h.services.Imports.ImportRooms)
}

func (h *Handlers) upload(c *gin.Context, apply importFunc) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes)

	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond(c, http.StatusRequestEntityTooLarge, "Uploaded file is too large", nil)
			return
		}
		respond(c, http.StatusBadRequest, "No file selected", nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Failed to open uploaded file", "error", err)
		respond(c, http.StatusInternalServerError, "Failed to read uploaded file", nil)
		return
	}
	defer file.Close()

	op, err := apply(c.Request.Context(), file)
	if err != nil {
		respondImportError(c, err)
		return
	}

	respond(c, http.StatusOK, "XML Upload "+string(op)+" successful", nil)
}

// respondImportError: директива проверяется до записи, остальное - 500
func respondImportError(c *gin.Context, err error) {
	log := logger.WithContext(c.Request.Context())

	var applyErr *importer.ApplyError
	if errors.As(err, &applyErr) {
		log.Error("XML import failed", "error", err, "failed", applyErr.Failed, "total", applyErr.Total)
		// клиенту только сообщение ошибки, текст драйвера остается в логе
		detail := "record could not be saved"
		var appErr *apperrors.Error
		if errors.As(applyErr.Err, &appErr) {
			detail = appErr.Message
		}
		respond(c, http.StatusInternalServerError, "XML upload failed on database operation - "+detail, nil)
		return
	}

	var parseErr *importer.ParseError
	if errors.As(err, &parseErr) {
		log.Warn("XML import rejected", "error", err)
		respond(c, http.StatusInternalServerError, "Error parsing XML - "+parseErr.Error(), nil)
		return
	}

	if apperrors.Is(err, apperrors.KindValidation) {
		respond(c, http.StatusBadRequest, apperrors.Message(err), nil)
		return
	}

	respondError(c, err, "XML upload failed")
}
