package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"gymhub/internal/middleware"
	"gymhub/internal/models"
	"gymhub/internal/validation"

	"github.com/gin-gonic/gin"
)

// Register - POST /users/register
// Роль всегда Member
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.services.Users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	respond(c, http.StatusOK, "Registration successful", gin.H{"user": user})
}

// Login - POST /users/login
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	key, err := h.services.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	respond(c, http.StatusOK, "User logged in", gin.H{"authenticationKey": key})
}

// Logout - POST /users/logout
// Ключ берётся из user_authenticationkey в теле, иначе из заголовка
func (h *Handlers) Logout(c *gin.Context) {
	var req models.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondInvalid(c, err)
		return
	}

	key := strings.TrimSpace(req.AuthenticationKey)
	if key == "" {
		key = strings.TrimSpace(c.GetHeader(middleware.AuthHeader))
	}
	if key == "" {
		respond(c, http.StatusBadRequest, "Request validation failed", gin.H{
			"errors": []validation.Violation{{
				Field:   "user_authenticationkey",
				Rule:    "required",
				Message: "user_authenticationkey is required",
			}},
		})
		return
	}

	if err := h.services.Users.Logout(c.Request.Context(), key); err != nil {
		respondError(c, err, "Failed to logout user")
		return
	}

	respond(c, http.StatusOK, "User logged out", nil)
}

// CreateUser - POST /users (Admin)
func (h *Handlers) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.services.Users.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create new user")
		return
	}

	respond(c, http.StatusOK, "Created new user", gin.H{"user": user})
}

// ListUsers - GET /users (Admin, Trainer)
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get all users")
		return
	}

	respond(c, http.StatusOK, "Got all users", gin.H{"users": users})
}

// GetUser - GET /users/:id
func (h *Handlers) GetUser(c *gin.Context) {
	var param models.IDParam
	if !bindURI(c, &param) {
		return
	}

	user, err := h.services.Users.Get(c.Request.Context(), param.ID)
	if err != nil {
		respondError(c, err, "Failed to get user by ID")
		return
	}

	respond(c, http.StatusOK, "Got user by ID", gin.H{"user": user})
}

// GetUserByKey - GET /users/by-key/:key
func (h *Handlers) GetUserByKey(c *gin.Context) {
	var param models.KeyParam
	if !bindURI(c, &param) {
		return
	}

	user, err := h.services.Users.GetByKey(c.Request.Context(), param.Key)
	if err != nil {
		respondError(c, err, "Failed to get user by authentication key")
		return
	}

	respond(c, http.StatusOK, "Got user by authentication key", gin.H{"user": user})
}

// UpdateUser - PATCH /users (Admin, Trainer)
// Тело либо {"user": {...}}, как шлёт веб-клиент, либо плоский объект.
func (h *Handlers) UpdateUser(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondInvalid(c, err)
		return
	}

	req, err := decodeUserUpdate(raw)
	if err != nil {
		respondInvalid(c, err)
		return
	}
	if req.ID <= 0 {
		missingID(c, "user")
		return
	}
	if err := validation.Struct(req); err != nil {
		respondInvalid(c, err)
		return
	}

	user, err := h.services.Users.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}

	respond(c, http.StatusOK, "Updated user", gin.H{"user": user})
}

func decodeUserUpdate(raw []byte) (*models.UpdateUserRequest, error) {
	if len(raw) == 0 {
		return nil, io.EOF
	}

	var envelope struct {
		User json.RawMessage `json:"user"`
	}
	payload := raw
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.User) > 0 && string(envelope.User) != "null" {
		payload = envelope.User
	}

	var req models.UpdateUserRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// DeleteUser - DELETE /users
func (h *Handlers) DeleteUser(c *gin.Context) {
	var req models.DeleteUserRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.services.Users.Delete(c.Request.Context(), req.ID.Int64()); err != nil {
		respondError(c, err, "Failed to delete user by ID")
		return
	}

	respond(c, http.StatusOK, "Deleted user by ID", nil)
}
