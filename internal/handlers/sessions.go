package handlers

import (
	"net/http"
	"strconv"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateSession - POST /sessions
func (h *Handlers) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session := &models.Session{
		Datetime:      req.Datetime.Time,
		RoomID:        req.RoomID.Int64(),
		ActivityID:    req.ActivityID.Int64(),
		TrainerUserID: req.TrainerUserID.Int64(),
	}
	if err := h.services.Sessions.Create(c.Request.Context(), session); err != nil {
		respondError(c, err, "Failed to create session")
		return
	}

	respond(c, http.StatusOK, "Created session", gin.H{"session": session})
}

// ListSessions - GET /sessions
// Только предстоящие сессии
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions, err := h.services.Sessions.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get all sessions")
		return
	}

	respond(c, http.StatusOK, "Got all sessions", gin.H{"sessions": sessions})
}

// TopSessions - GET /top-sessions/:amount
func (h *Handlers) TopSessions(c *gin.Context) {
	var param models.AmountParam
	if !bindURI(c, &param) {
		return
	}

	amount, err := strconv.Atoi(param.Amount)
	if err != nil {
		respondError(c, apperrors.Validation("amount is out of range"), "")
		return
	}

	sessions, err := h.services.Sessions.Top(c.Request.Context(), amount)
	if err != nil {
		respondError(c, err, "Failed to get top sessions")
		return
	}

	respond(c, http.StatusOK, "Get top sessions", gin.H{"sessions": sessions})
}

// GetSession - GET /sessions/:id
func (h *Handlers) GetSession(c *gin.Context) {
	var param models.IDParam
	if !bindURI(c, &param) {
		return
	}

	session, err := h.services.Sessions.Get(c.Request.Context(), param.ID)
	if err != nil {
		respondError(c, err, "Failed to get session by ID")
		return
	}

	respond(c, http.StatusOK, "Got session by ID", gin.H{"session": session})
}

// UpdateSession - PATCH /sessions
func (h *Handlers) UpdateSession(c *gin.Context) {
	var req models.UpdateSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID <= 0 {
		missingID(c, "session")
		return
	}

	session := &models.Session{
		ID:            req.ID.Int64(),
		Datetime:      req.Datetime.Time,
		RoomID:        req.RoomID.Int64(),
		ActivityID:    req.ActivityID.Int64(),
		TrainerUserID: req.TrainerUserID.Int64(),
	}
	if err := h.services.Sessions.Update(c.Request.Context(), session); err != nil {
		respondError(c, err, "Failed to update session")
		return
	}

	respond(c, http.StatusOK, "Session updated", gin.H{"session": session})
}

// DeleteSession - DELETE /sessions
func (h *Handlers) DeleteSession(c *gin.Context) {
	var req models.DeleteSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.services.Sessions.Delete(c.Request.Context(), req.ID.Int64()); err != nil {
		respondError(c, err, "Failed to delete session by ID")
		return
	}

	respond(c, http.StatusOK, "Deleted session by ID", nil)
}
