package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/hasher"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

// authorService implements author.Service
type authorService struct {
	repo       author.Repository
	hasher     hasher.PasswordHasher
	jwtManager *jwt.Manager
	now        func() time.Time

	// digest compared against when the email is unknown, so a miss costs as
	// much as a wrong password
	dummyDigest string
}

// NewAuthorService wires the registration and login flows.
func NewAuthorService(repo author.Repository, h hasher.PasswordHasher, jwtManager *jwt.Manager) author.Service {
	dummy, err := h.Hash(uuid.NewString())
	if err != nil {
		logger.Error("failed to prepare dummy password digest", err)
	}

	return &authorService{
		repo:        repo,
		hasher:      h,
		jwtManager:  jwtManager,
		now:         time.Now,
		dummyDigest: dummy,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates a new active, non-superuser author.
func (s *authorService) Register(ctx context.Context, req author.RegisterRequest) (*author.AuthorDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check author exists: %w", err)
	}
	if exists {
		return nil, author.ErrAuthorAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	newAuthor := author.NewAuthor(req.Username, req.Email, passwordHash, s.now().UTC())

	// the unique constraints catch a registration racing past the check above
	if err := s.repo.Create(ctx, newAuthor); err != nil {
		if errors.Is(err, author.ErrAuthorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create author: %w", err)
	}

	logger.Info("author registered", map[string]interface{}{
		"author_id": newAuthor.ID.String(),
		"username":  newAuthor.Username,
	})

	dto := newAuthor.ToDTO()
	return &dto, nil
}

// Login verifies credentials and issues an access token.
// The password is checked before the active flag so a disabled account is
// only revealed to someone who knows its password.
func (s *authorService) Login(ctx context.Context, req author.LoginRequest) (*author.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, author.ErrAuthorNotFound) {
			return nil, fmt.Errorf("find author: %w", err)
		}
		s.hasher.Verify(req.Password, s.dummyDigest)
		return nil, author.ErrInvalidCredentials
	}

	if !s.hasher.Verify(req.Password, a.PasswordHash) {
		return nil, author.ErrInvalidCredentials
	}

	if !a.IsActive {
		return nil, author.ErrAccountDisabled
	}

	token, expiresAt, err := s.jwtManager.Issue(a.ID.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &author.LoginResponse{
		AccessToken: token,
		TokenType:   author.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *authorService) GetProfile(ctx context.Context, id uuid.UUID) (*author.AuthorDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := a.ToDTO()
	return &dto, nil
}
