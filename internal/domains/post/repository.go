package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository - post storage.
// Update and Delete take the acting owner and only touch the row when it
// still belongs to that owner, so a concurrent ownership change is caught
// at write time as well as by the guard.
type Repository interface {
	// Create inserts p and assigns p.ID
	Create(ctx context.Context, p *Post) error

	// FindByID returns ErrPostNotFound when absent
	FindByID(ctx context.Context, id int64) (*Post, error)

	// List returns posts newest first (created_at DESC, id DESC)
	List(ctx context.Context, offset, limit int, publishedOnly bool) ([]*Post, error)

	// ListPublished returns every published post, newest first
	ListPublished(ctx context.Context) ([]*Post, error)

	// Update persists title, content, is_published and updated_at.
	// Returns ErrPostNotFound or ErrForbidden when no row matched.
	Update(ctx context.Context, p *Post, ownerID uuid.UUID) error

	// Delete returns ErrPostNotFound or ErrForbidden when no row matched.
	Delete(ctx context.Context, id int64, ownerID uuid.UUID) error
}
