package service

import (
	"context"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
)

type guard struct {
	repo post.Repository
}

func NewGuard(repo post.Repository) post.Guard {
	return &guard{repo: repo}
}

// LoadOwnedPost does a single read. Existence is checked before ownership.
func (g *guard) LoadOwnedPost(ctx context.Context, postID int64, actor *author.Author) (*post.Post, error) {
	if actor == nil {
		return nil, author.ErrUnauthenticated
	}

	p, err := g.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !p.IsOwnedBy(actor.ID) {
		return nil, post.ErrForbidden
	}

	return p, nil
}
