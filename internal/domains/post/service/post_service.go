package service

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/pkg/logger"
)

type postService struct {
	repo  post.Repository
	guard post.Guard
	now   func() time.Time
}

func NewPostService(repo post.Repository, guard post.Guard) post.Service {
	return &postService{
		repo:  repo,
		guard: guard,
		now:   time.Now,
	}
}

// ========================================
// READS
// ========================================

func (s *postService) List(ctx context.Context, req post.ListPostsRequest) ([]post.PostResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	posts, err := s.repo.List(ctx, req.Offset(), req.Size, req.PublishedOnly)
	if err != nil {
		return nil, err
	}
	return post.ToResponses(posts), nil
}

func (s *postService) ListPublished(ctx context.Context) ([]post.PostResponse, error) {
	posts, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	return post.ToResponses(posts), nil
}

func (s *postService) Get(ctx context.Context, id int64) (*post.PostResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := p.ToResponse()
	return &res, nil
}

// ========================================
// WRITES
// ========================================

func (s *postService) Create(ctx context.Context, actor *author.Author, req post.CreatePostRequest) (*post.PostResponse, error) {
	if actor == nil {
		return nil, author.ErrUnauthenticated
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := post.NewPost(req.Title, req.Content, actor.ID, actor.Username, s.now().UTC())
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	logger.Info("post created", map[string]interface{}{
		"post_id":   p.ID,
		"author_id": actor.ID.String(),
	})

	res := p.ToResponse()
	return &res, nil
}

// Update applies a partial patch. An empty patch still bumps updated_at.
func (s *postService) Update(ctx context.Context, actor *author.Author, id int64, req post.UpdatePostRequest) (*post.PostResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.guard.LoadOwnedPost(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(p, s.now().UTC())

	if err := s.repo.Update(ctx, p, actor.ID); err != nil {
		return nil, err
	}

	res := p.ToResponse()
	return &res, nil
}

func (s *postService) Delete(ctx context.Context, actor *author.Author, id int64) error {
	if _, err := s.guard.LoadOwnedPost(ctx, id, actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, actor.ID); err != nil {
		return err
	}

	logger.Info("post deleted", map[string]interface{}{
		"post_id":   id,
		"author_id": actor.ID.String(),
	})
	return nil
}
