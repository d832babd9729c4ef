package author

import (
	"context"

	"github.com/google/uuid"
)

// Service is the registration and login business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthorDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*AuthorDTO, error)
}

// IdentityResolver turns a raw Authorization header into an active author.
//
// Failure mapping:
//   - missing or malformed header, bad or expired token, missing subject,
//     unknown author: ErrUnauthenticated
//   - author exists but is inactive: ErrAccountDisabled
//
// Any other error is a backend failure.
type IdentityResolver interface {
	ResolveCurrentAuthor(ctx context.Context, rawAuthHeader string) (*Author, error)
}
