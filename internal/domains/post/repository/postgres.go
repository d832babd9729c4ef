package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/infrastructure/database"
	pgtx "blog-backend/pkg/database"
)

const selectPosts = `
	SELECT p.id, p.title, p.content, p.author_id, a.username,
	       p.is_published, p.created_at, p.updated_at
	FROM posts p
	JOIN authors a ON a.id = p.author_id
`

const orderNewestFirst = ` ORDER BY p.created_at DESC, p.id DESC`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.AuthorID,
		&p.AuthorUsername,
		&p.IsPublished,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]*post.Post, error) {
	defer rows.Close()

	posts := make([]*post.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Create inserts the post; AuthorUsername is expected to be set by the caller.
func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (title, content, author_id, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		p.Title,
		p.Content,
		p.AuthorID,
		p.IsPublished,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("insert post: unknown author %s: %w", p.AuthorID, err)
		}
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*post.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, selectPosts+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int, publishedOnly bool) ([]*post.Post, error) {
	query := selectPosts
	if publishedOnly {
		query += ` WHERE p.is_published = TRUE`
	}
	query += orderNewestFirst + ` LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}
	return posts, nil
}

func (r *postgresRepository) ListPublished(ctx context.Context) ([]*post.Post, error) {
	rows, err := r.pool.Query(ctx, selectPosts+` WHERE p.is_published = TRUE`+orderNewestFirst)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}
	return posts, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *post.Post, ownerID uuid.UUID) error {
	return pgtx.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE posts
			SET title = $1, content = $2, is_published = $3, updated_at = $4
			WHERE id = $5 AND author_id = $6
		`,
			p.Title,
			p.Content,
			p.IsPublished,
			p.UpdatedAt,
			p.ID,
			ownerID,
		)
		if err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return missingOrForbidden(ctx, tx, p.ID)
		}
		return nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64, ownerID uuid.UUID) error {
	return pgtx.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, id, ownerID)
		if err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return missingOrForbidden(ctx, tx, id)
		}
		return nil
	})
}

// missingOrForbidden explains a write that matched no row.
func missingOrForbidden(ctx context.Context, tx pgx.Tx, id int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if exists {
		return post.ErrForbidden
	}
	return post.ErrPostNotFound
}
