package post

import (
	"context"

	"blog-backend/internal/domains/author"
)

// Guard decides whether an author may mutate a post.
type Guard interface {
	// LoadOwnedPost returns ErrPostNotFound when the post is absent (whoever
	// asks) and ErrForbidden when actor does not own it.
	LoadOwnedPost(ctx context.Context, postID int64, actor *author.Author) (*Post, error)
}

// Service - post business logic. Mutations require an already resolved actor.
type Service interface {
	List(ctx context.Context, req ListPostsRequest) ([]PostResponse, error)
	ListPublished(ctx context.Context) ([]PostResponse, error)
	Get(ctx context.Context, id int64) (*PostResponse, error)

	Create(ctx context.Context, actor *author.Author, req CreatePostRequest) (*PostResponse, error)
	Update(ctx context.Context, actor *author.Author, id int64, req UpdatePostRequest) (*PostResponse, error)
	Delete(ctx context.Context, actor *author.Author, id int64) error
}
