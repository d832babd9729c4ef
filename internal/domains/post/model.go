package post

import (
	"time"

	"github.com/google/uuid"
)

// Post - maps to the posts table; AuthorUsername is joined from authors.
type Post struct {
	ID             int64      `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Content        string     `db:"content" json:"content"`
	AuthorID       uuid.UUID  `db:"author_id" json:"author_id"`
	AuthorUsername string     `db:"author_username" json:"author_username"`
	IsPublished    bool       `db:"is_published" json:"is_published"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// NewPost builds an unpublished post owned by the given author.
func NewPost(title, content string, authorID uuid.UUID, authorUsername string, now time.Time) *Post {
	return &Post{
		Title:          title,
		Content:        content,
		AuthorID:       authorID,
		AuthorUsername: authorUsername,
		IsPublished:    false,
		CreatedAt:      now,
	}
}

func (p *Post) IsOwnedBy(authorID uuid.UUID) bool {
	return p.AuthorID == authorID
}

func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author: AuthorSummary{
			ID:       p.AuthorID,
			Username: p.AuthorUsername,
		},
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToResponses(posts []*Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ToResponse())
	}
	return out
}
