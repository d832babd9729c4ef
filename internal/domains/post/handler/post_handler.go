package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

type PostHandler struct {
	service post.Service
}

func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// ========================================
// PUBLIC ENDPOINTS
// ========================================

// List handles GET /posts?page=&size=&published_only=
func (h *PostHandler) List(c *gin.Context) {
	req := post.DefaultListPostsRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	posts, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", posts, &response.Meta{
		Page:  req.Page,
		Size:  req.Size,
		Count: len(posts),
	})
}

// ListPublished handles GET /posts/published
func (h *PostHandler) ListPublished(c *gin.Context) {
	posts, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "", posts, &response.Meta{Count: len(posts)})
}

// Get handles GET /posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", res)
}

// ========================================
// AUTHENTICATED ENDPOINTS
// ========================================

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req post.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	res, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Post created successfully", res)
}

// Update handles PATCH /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	res, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post updated successfully", res)
}

// Delete handles DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ========================================
// HELPERS
// ========================================

func (h *PostHandler) actor(c *gin.Context) (*author.Author, bool) {
	a, ok := middleware.CurrentAuthor(c)
	if !ok {
		response.Unauthorized(c, "Could not validate credentials")
		return nil, false
	}
	return a, true
}

func (h *PostHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "Invalid post ID", nil)
		return 0, false
	}
	return id, true
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.BadRequest(c, "Validation failed", verrs)

	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, post.ErrForbidden):
		response.Forbidden(c, err.Error())

	case errors.Is(err, author.ErrUnauthenticated):
		response.Unauthorized(c, "Could not validate credentials")

	default:
		logger.Error("post request failed", err)
		response.InternalServerError(c)
	}
}
