package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/jwt"
)

const bearerScheme = "bearer"

type resolver struct {
	repo       author.Repository
	jwtManager *jwt.Manager
}

// NewIdentityResolver builds the bearer-token to author resolver.
func NewIdentityResolver(repo author.Repository, jwtManager *jwt.Manager) author.IdentityResolver {
	return &resolver{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// ResolveCurrentAuthor performs exactly one repository read and no writes.
func (r *resolver) ResolveCurrentAuthor(ctx context.Context, rawAuthHeader string) (*author.Author, error) {
	token, ok := parseBearer(rawAuthHeader)
	if !ok {
		return nil, author.ErrUnauthenticated
	}

	// expired, forged and subject-less tokens are all just unauthenticated here
	claims, err := r.jwtManager.Verify(token)
	if err != nil {
		return nil, author.ErrUnauthenticated
	}

	authorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, author.ErrUnauthenticated
	}

	a, err := r.repo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, author.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load current author: %w", err)
	}

	// with Redis enabled the author may come from cache, so a deactivation can
	// take up to AUTHOR_CACHE_TTL to be seen here
	if !a.IsActive {
		return nil, author.ErrAccountDisabled
	}

	return a, nil
}

// parseBearer extracts the credential from "Bearer <token>"; the scheme is case-insensitive.
func parseBearer(header string) (string, bool) {
	scheme, credential, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	credential = strings.TrimSpace(credential)
	if credential == "" || strings.ContainsAny(credential, " \t") {
		return "", false
	}
	return credential, true
}
