package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the account directory for authors.
// Implementations: Postgres (production) and in-memory (local runs, tests).
type Repository interface {
	// Create inserts a new author.
	// Returns: ErrAuthorAlreadyExists when username or email is taken
	Create(ctx context.Context, a *Author) error

	// FindByID returns ErrAuthorNotFound when no author has this id
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByEmail is used by login and returns ErrAuthorNotFound on a miss
	FindByEmail(ctx context.Context, email string) (*Author, error)

	// ExistsByUsernameOrEmail is the single combined duplicate check used at registration
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
