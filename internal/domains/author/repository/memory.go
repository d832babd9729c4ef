package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
)

// MemoryRepository keeps authors in process memory. Uniqueness of username
// and email is enforced under the same lock as the insert.
type MemoryRepository struct {
	mu sync.RWMutex

	byID    map[uuid.UUID]author.Author
	byEmail map[string]uuid.UUID
	byName  map[string]uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]author.Author),
		byEmail: make(map[string]uuid.UUID),
		byName:  make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, a *author.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[a.Username]; taken {
		return author.ErrAuthorAlreadyExists
	}
	if _, taken := r.byEmail[a.Email]; taken {
		return author.ErrAuthorAlreadyExists
	}
	if _, taken := r.byID[a.ID]; taken {
		return author.ErrAuthorAlreadyExists
	}

	r.byID[a.ID] = *a
	r.byName[a.Username] = a.ID
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *MemoryRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, nameTaken := r.byName[username]
	_, emailTaken := r.byEmail[email]
	return nameTaken || emailTaken, nil
}
