package handlers

import (
	"net/http"

	"gymhub/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateRoom - POST /rooms
func (h *Handlers) CreateRoom(c *gin.Context) {
	var req models.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room := &models.Room{Location: req.Location, Number: req.Number}
	if err := h.services.Rooms.Create(c.Request.Context(), room); err != nil {
		respondError(c, err, "Failed to create room")
		return
	}

	respond(c, http.StatusOK, "Created room", gin.H{"room": room})
}

// ListRooms - GET /rooms
func (h *Handlers) ListRooms(c *gin.Context) {
	rooms, err := h.services.Rooms.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get all rooms")
		return
	}

	respond(c, http.StatusOK, "Got all rooms", gin.H{"rooms": rooms})
}

// GetRoom - GET /rooms/:id
func (h *Handlers) GetRoom(c *gin.Context) {
	var param models.IDParam
	if !bindURI(c, &param) {
		return
	}

	room, err := h.services.Rooms.Get(c.Request.Context(), param.ID)
	if err != nil {
		respondError(c, err, "Failed to get room by ID")
		return
	}

	respond(c, http.StatusOK, "Got room by ID", gin.H{"room": room})
}

// UpdateRoom - PATCH /rooms
func (h *Handlers) UpdateRoom(c *gin.Context) {
	var req models.UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID <= 0 {
		missingID(c, "room")
		return
	}

	room := &models.Room{ID: req.ID.Int64(), Location: req.Location, Number: req.Number}
	if err := h.services.Rooms.Update(c.Request.Context(), room); err != nil {
		respondError(c, err, "Failed to update room")
		return
	}

	respond(c, http.StatusOK, "Room updated", gin.H{"room": room})
}

// DeleteRoom - DELETE /rooms
func (h *Handlers) DeleteRoom(c *gin.Context) {
	var req models.DeleteRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.services.Rooms.Delete(c.Request.Context(), req.ID.Int64()); err != nil {
		respondError(c, err, "Failed to delete room by ID")
		return
	}

	respond(c, http.StatusOK, "Deleted room by ID", nil)
}
