package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

// AuthorHandler serves the /auth endpoints.
type AuthorHandler struct {
	service author.Service

	// duplicateStatus is 409 unless legacy clients expect 404
	duplicateStatus int
}

func NewAuthorHandler(service author.Service, legacyDuplicateStatus bool) *AuthorHandler {
	status := http.StatusConflict
	if legacyDuplicateStatus {
		status = http.StatusNotFound
	}
	return &AuthorHandler{
		service:         service,
		duplicateStatus: status,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /auth/register
func (h *AuthorHandler) Register(c *gin.Context) {
	var req author.RegisterRequest
	if err := h.bindJSON(c, &req); err != nil {
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Author registered successfully", dto)
}

// Login handles POST /auth/login
func (h *AuthorHandler) Login(c *gin.Context) {
	var req author.LoginRequest
	if err := h.bindJSON(c, &req); err != nil {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", res)
}

// Me handles GET /auth/me
func (h *AuthorHandler) Me(c *gin.Context) {
	current, ok := middleware.CurrentAuthor(c)
	if !ok {
		response.Unauthorized(c, "Could not validate credentials")
		return
	}

	dto := current.ToDTO()
	response.Success(c, http.StatusOK, "", dto)
}

// ========================================
// HELPERS
// ========================================

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.BadRequest(c, "Validation failed", verrs)

	case errors.Is(err, author.ErrAuthorAlreadyExists):
		response.Error(c, h.duplicateStatus, err.Error(), nil)

	case errors.Is(err, author.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())

	case errors.Is(err, author.ErrAccountDisabled):
		response.BadRequest(c, "Inactive author", nil)

	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("auth request failed", err)
		response.InternalServerError(c)
	}
}

func (h *AuthorHandler) bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return err
	}
	return nil
}
