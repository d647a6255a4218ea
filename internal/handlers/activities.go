package handlers

import (
	"net/http"

	"gymhub/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateActivity - POST /activities
func (h *Handlers) CreateActivity(c *gin.Context) {
	var req models.CreateActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	activity := &models.Activity{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration.Int64(),
	}
	if err := h.services.Activities.Create(c.Request.Context(), activity); err != nil {
		respondError(c, err, "Failed to create activity")
		return
	}

	respond(c, http.StatusOK, "Created activity", gin.H{"activity": activity})
}

// ListActivities - GET /activities
func (h *Handlers) ListActivities(c *gin.Context) {
	activities, err := h.services.Activities.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get all activities")
		return
	}

	respond(c, http.StatusOK, "Got all activities", gin.H{"activities": activities})
}

// GetActivity - GET /activities/:id
func (h *Handlers) GetActivity(c *gin.Context) {
	var param models.IDParam
	if !bindURI(c, &param) {
		return
	}

	activity, err := h.services.Activities.Get(c.Request.Context(), param.ID)
	if err != nil {
		respondError(c, err, "Failed to get activity by ID")
		return
	}

	respond(c, http.StatusOK, "Got activity by ID", gin.H{"activity": activity})
}

// UpdateActivity - PATCH /activities
func (h *Handlers) UpdateActivity(c *gin.Context) {
	var req models.UpdateActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID <= 0 {
		missingID(c, "activity")
		return
	}

	activity := &models.Activity{
		ID:          req.ID.Int64(),
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration.Int64(),
	}
	if err := h.services.Activities.Update(c.Request.Context(), activity); err != nil {
		respondError(c, err, "Failed to update activity")
		return
	}

	respond(c, http.StatusOK, "Activity updated", gin.H{"activity": activity})
}

// DeleteActivity - DELETE /activities
func (h *Handlers) DeleteActivity(c *gin.Context) {
	var req models.DeleteActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.services.Activities.Delete(c.Request.Context(), req.ID.Int64()); err != nil {
		respondError(c, err, "Failed to delete activity by ID")
		return
	}

	respond(c, http.StatusOK, "Deleted activity by ID", nil)
}
