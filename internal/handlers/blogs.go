package handlers

import (
	"net/http"

	"gymhub/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateBlog - POST /blogs
func (h *Handlers) CreateBlog(c *gin.Context) {
	var req models.CreateBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	blog := &models.Blog{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID.Int64(),
	}
	if err := h.services.Blogs.Create(c.Request.Context(), blog); err != nil {
		respondError(c, err, "Failed to create blog")
		return
	}

	respond(c, http.StatusOK, "Created blog", gin.H{"blog": blog})
}

// ListBlogs - GET /blogs
// Новые сверху
func (h *Handlers) ListBlogs(c *gin.Context) {
	blogs, err := h.services.Blogs.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get all blogs")
		return
	}

	respond(c, http.StatusOK, "Got all blogs", gin.H{"blogs": blogs})
}

// ListUserBlogs - GET /my-blogs/:user_id
func (h *Handlers) ListUserBlogs(c *gin.Context) {
	var param models.UserIDParam
	if !bindURI(c, &param) {
		return
	}

	blogs, err := h.services.Blogs.ListByUser(c.Request.Context(), param.UserID)
	if err != nil {
		respondError(c, err, "Failed to get blogs by user ID")
		return
	}

	respond(c, http.StatusOK, "Got all blogs by user ID", gin.H{"blogs": blogs})
}

// GetBlog - GET /blogs/:id
func (h *Handlers) GetBlog(c *gin.Context) {
	var param models.IDParam
	if !bindURI(c, &param) {
		return
	}

	blog, err := h.services.Blogs.Get(c.Request.Context(), param.ID)
	if err != nil {
		respondError(c, err, "Failed to get blog by ID")
		return
	}

	respond(c, http.StatusOK, "Got blog by ID", gin.H{"blog": blog})
}

// UpdateBlog - PATCH /blogs
// blog_datetime сбрасывается на текущее время
func (h *Handlers) UpdateBlog(c *gin.Context) {
	var req models.UpdateBlogRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID <= 0 {
		missingID(c, "blog")
		return
	}

	blog := &models.Blog{
		ID:      req.ID.Int64(),
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID.Int64(),
	}
	if err := h.services.Blogs.Update(c.Request.Context(), blog); err != nil {
		respondError(c, err, "Failed to update blog")
		return
	}

	respond(c, http.StatusOK, "Blog updated", gin.H{"blog": blog})
}

// DeleteBlog - DELETE /blogs
func (h *Handlers) DeleteBlog(c *gin.Context) {
	var req models.DeleteBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.services.Blogs.Delete(c.Request.Context(), req.ID.Int64()); err != nil {
		respondError(c, err, "Failed to delete blog by ID")
		return
	}

	respond(c, http.StatusOK, "Deleted blog by ID", nil)
}
