package post

import (
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	MaxTitleLength = 100

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ========================================
// REQUEST DTOs
// ========================================

// CreatePostRequest - POST /posts
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength).Error("title must be 1-100 characters"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
	)
}

// UpdatePostRequest - PATCH /posts/:id
// A nil field is left untouched.
type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

func (r *UpdatePostRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil,
				validation.Required.Error("title cannot be empty"),
				validation.RuneLength(1, MaxTitleLength).Error("title must be 1-100 characters"),
			),
		),
		validation.Field(&r.Content,
			validation.When(r.Content != nil, validation.Required.Error("content cannot be empty")),
		),
	)
}

// ApplyTo merges the provided fields into p and stamps updated_at.
// Ownership and identity fields are never touched.
func (r UpdatePostRequest) ApplyTo(p *Post, now time.Time) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.IsPublished != nil {
		p.IsPublished = *r.IsPublished
	}
	p.UpdatedAt = &now
}

// ListPostsRequest - GET /posts query parameters
type ListPostsRequest struct {
	Page          int  `form:"page,default=1"`
	Size          int  `form:"size,default=20"`
	PublishedOnly bool `form:"published_only"`
}

func DefaultListPostsRequest() ListPostsRequest {
	return ListPostsRequest{Page: DefaultPage, Size: DefaultPageSize}
}

// Validate rejects an explicit page or size of zero as well as out-of-range values.
func (r ListPostsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page,
			validation.Required.Error("page must be >= 1"),
			validation.Min(1).Error("page must be >= 1"),
		),
		validation.Field(&r.Size,
			validation.Required.Error("size must be 1-100"),
			validation.Min(1).Error("size must be 1-100"),
			validation.Max(MaxPageSize).Error("size must be 1-100"),
		),
	)
}

// Offset saturates at math.MaxInt so an enormous page reads past the end
// instead of wrapping negative.
func (r ListPostsRequest) Offset() int {
	if r.Page < 1 || r.Size < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Size
}

// ========================================
// RESPONSE DTOs
// ========================================

type AuthorSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type PostResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Author      AuthorSummary `json:"author"`
	IsPublished bool          `json:"is_published"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at"`
}
