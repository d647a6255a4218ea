package handlers

import (
	"net/http"

	"gymhub/internal/models"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// CreateBooking - POST /bookings
// Создать бронирование, время создания ставит база
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking := &models.Booking{
		UserID:    req.UserID.Int64(),
		SessionID: req.SessionID.Int64(),
	}
	if err := h.services.Bookings.Create(c.Request.Context(), booking); err != nil {
		respondError(c, err, "Failed to create booking")
		return
	}

	respond(c, http.StatusOK, "Created booking", gin.H{"booking": booking})
}

// ListBookings - GET /bookings
func (h *Handlers) ListBookings(c *gin.Context) {
	bookings, err := h.services.Bookings.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get all bookings")
		return
	}

	respond(c, http.StatusOK, "Got all bookings", gin.H{"bookings": bookings})
}

// ListUserBookings - GET /my-bookings/:user_id
// Бронирования пользователя на предстоящие сессии
func (h *Handlers) ListUserBookings(c *gin.Context) {
	var param models.UserIDParam
	if !bindURI(c, &param) {
		return
	}

	bookings, err := h.services.Bookings.ListByUser(c.Request.Context(), param.UserID)
	if err != nil {
		respondError(c, err, "Failed to get bookings by user ID")
		return
	}

	respond(c, http.StatusOK, "Got all bookings by user ID", gin.H{"bookings": bookings})
}

// GetBooking - GET /bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	var param models.IDParam
	if !bindURI(c, &param) {
		return
	}

	booking, err := h.services.Bookings.Get(c.Request.Context(), param.ID)
	if err != nil {
		respondError(c, err, "Failed to get booking by ID")
		return
	}

	respond(c, http.StatusOK, "Got booking by ID", gin.H{"booking": booking})
}

// UpdateBooking - PATCH /bookings
func (h *Handlers) UpdateBooking(c *gin.Context) {
	var req models.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID <= 0 {
		missingID(c, "booking")
		return
	}

	booking := &models.Booking{
		ID:        req.ID.Int64(),
		UserID:    req.UserID.Int64(),
		SessionID: req.SessionID.Int64(),
	}
	if err := h.services.Bookings.Update(c.Request.Context(), booking); err != nil {
		respondError(c, err, "Failed to update booking")
		return
	}

	respond(c, http.StatusOK, "Booking updated", gin.H{"booking": booking})
}

// DeleteBooking - DELETE /bookings
func (h *Handlers) DeleteBooking(c *gin.Context) {
	var req models.DeleteBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.services.Bookings.Delete(c.Request.Context(), req.ID.Int64()); err != nil {
		respondError(c, err, "Failed to delete booking by ID")
		return
	}

	respond(c, http.StatusOK, "Deleted booking by ID", nil)
}
