package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post"
)

// MemoryRepository keeps posts in process memory with sequential ids.
type MemoryRepository struct {
	mu sync.RWMutex

	posts  map[int64]post.Post
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		posts:  make(map[int64]post.Post),
		nextID: 1,
	}
}

func (r *MemoryRepository) Create(_ context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.posts[p.ID] = *p
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) List(_ context.Context, offset, limit int, publishedOnly bool) ([]*post.Post, error) {
	all := r.sorted(publishedOnly)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) || limit <= 0 {
		return []*post.Post{}, nil
	}
	end := offset + limit
	if end > len(all) || end < offset {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemoryRepository) ListPublished(_ context.Context) ([]*post.Post, error) {
	return r.sorted(true), nil
}

func (r *MemoryRepository) Update(_ context.Context, p *post.Post, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.posts[p.ID]
	if !ok {
		return post.ErrPostNotFound
	}
	if current.AuthorID != ownerID {
		return post.ErrForbidden
	}

	current.Title = p.Title
	current.Content = p.Content
	current.IsPublished = p.IsPublished
	current.UpdatedAt = p.UpdatedAt
	r.posts[p.ID] = current
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.posts[id]
	if !ok {
		return post.ErrPostNotFound
	}
	if current.AuthorID != ownerID {
		return post.ErrForbidden
	}

	delete(r.posts, id)
	return nil
}

// sorted returns copies ordered by created_at DESC, id DESC.
func (r *MemoryRepository) sorted(publishedOnly bool) []*post.Post {
	r.mu.RLock()
	out := make([]*post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if publishedOnly && !p.IsPublished {
			continue
		}
		p := p
		out = append(out, &p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
