package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

const authorColumns = `id, username, email, hashed_password, is_active, is_superuser, created_at`

// postgresRepository implements author.Repository on a pgx pool with a
// read-through cache in front of FindByID.
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresRepository returns the interface so callers never depend on the concrete type.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) author.Repository {
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("author:%s", id.String())
}

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.IsActive,
		&a.IsSuperuser,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the author; a unique violation on username or email means a
// concurrent registration won the race.
func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (` + authorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Username,
		a.Email,
		a.PasswordHash,
		a.IsActive,
		a.IsSuperuser,
		a.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return author.ErrAuthorAlreadyExists
		}
		return fmt.Errorf("insert author: %w", err)
	}

	return nil
}

// FindByID checks the cache first. The cached copy carries no password hash,
// which is fine: callers of FindByID never verify passwords.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	key := cacheKey(id)

	var cached author.Author
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("author cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author by id: %w", err)
	}

	// cache failures must not fail the request
	_ = r.cache.Set(ctx, key, a, r.cacheTTL)

	return a, nil
}

// FindByEmail is not cached: it is only hit on login and needs the password hash.
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE email = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author by email: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM authors WHERE username = $1 OR email = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check author exists: %w", err)
	}

	return exists, nil
}
