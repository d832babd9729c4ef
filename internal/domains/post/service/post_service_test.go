package service

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/domains/post/repository"
)

type fixture struct {
	repo    *repository.MemoryRepository
	guard   post.Guard
	service *postService
	clock   time.Time

	alice *author.Author
	bob   *author.Author
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:  repository.NewMemoryRepository(),
		clock: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
		alice: author.NewAuthor("alice", "a@x.com", "h", time.Now()),
		bob:   author.NewAuthor("bob", "b@x.com", "h", time.Now()),
	}
	f.guard = NewGuard(f.repo)
	f.service = NewPostService(f.repo, f.guard).(*postService)
	f.service.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) create(t *testing.T, actor *author.Author, title string) *post.PostResponse {
	t.Helper()
	res, err := f.service.Create(context.Background(), actor, post.CreatePostRequest{Title: title, Content: "body"})
	require.NoError(t, err)
	return res
}

func ptr[T any](v T) *T { return &v }

func isValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}

// ========================================
// GUARD
// ========================================

func TestGuardLoadOwnedPost(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.alice, "hello")

	p, err := f.guard.LoadOwnedPost(context.Background(), created.ID, f.alice)
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)

	_, err = f.guard.LoadOwnedPost(context.Background(), created.ID, f.bob)
	assert.ErrorIs(t, err, post.ErrForbidden)
}

func TestGuardNotFoundRegardlessOfOwnership(t *testing.T) {
	f := newFixture(t)

	for _, actor := range []*author.Author{f.alice, f.bob} {
		_, err := f.guard.LoadOwnedPost(context.Background(), 12345, actor)
		assert.ErrorIs(t, err, post.ErrPostNotFound)
		assert.NotErrorIs(t, err, post.ErrForbidden)
	}
}

func TestGuardRequiresActor(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.alice, "hello")

	_, err := f.guard.LoadOwnedPost(context.Background(), created.ID, nil)
	assert.ErrorIs(t, err, author.ErrUnauthenticated)
}

// ========================================
// CREATE / READ
// ========================================

func TestCreate(t *testing.T) {
	f := newFixture(t)

	res := f.create(t, f.alice, "  hello  ")
	assert.NotZero(t, res.ID)
	assert.Equal(t, "hello", res.Title)
	assert.Equal(t, f.alice.ID, res.Author.ID)
	assert.Equal(t, "alice", res.Author.Username)
	assert.False(t, res.IsPublished)
	assert.Equal(t, f.clock, res.CreatedAt)
	assert.Nil(t, res.UpdatedAt)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	cases := map[string]post.CreatePostRequest{
		"empty title":    {Title: "", Content: "body"},
		"blank title":    {Title: "   ", Content: "body"},
		"long title":     {Title: string(make([]rune, 101)), Content: "body"},
		"missing body":   {Title: "hello"},
		"missing fields": {},
	}

	for name, req := range cases {
		_, err := f.service.Create(context.Background(), f.alice, req)
		assert.True(t, isValidationError(err), "%s: got %v", name, err)
	}
}

func TestGetAndList(t *testing.T) {
	f := newFixture(t)
	first := f.create(t, f.alice, "first")
	f.clock = f.clock.Add(time.Minute)
	second := f.create(t, f.bob, "second")

	got, err := f.service.Get(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	_, err = f.service.Get(context.Background(), 999)
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	all, err := f.service.List(context.Background(), post.DefaultListPostsRequest())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	published, err := f.service.List(context.Background(), post.ListPostsRequest{Page: 1, Size: 20, PublishedOnly: true})
	require.NoError(t, err)
	assert.Empty(t, published)

	_, err = f.service.Update(context.Background(), f.alice, first.ID, post.UpdatePostRequest{IsPublished: ptr(true)})
	require.NoError(t, err)

	onlyPublished, err := f.service.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, onlyPublished, 1)
	assert.Equal(t, first.ID, onlyPublished[0].ID)
}

func TestListRejectsOutOfRangePaging(t *testing.T) {
	f := newFixture(t)

	for name, req := range map[string]post.ListPostsRequest{
		"page zero":     {Page: 0, Size: 20},
		"negative page": {Page: -1, Size: 20},
		"size zero":     {Page: 1, Size: 0},
		"size too big":  {Page: 1, Size: 101},
	} {
		_, err := f.service.List(context.Background(), req)
		assert.True(t, isValidationError(err), "%s: got %v", name, err)
	}
}

// ========================================
// UPDATE / DELETE
// ========================================

func TestUpdatePartialPatch(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.alice, "hello")
	f.clock = f.clock.Add(time.Hour)

	res, err := f.service.Update(context.Background(), f.alice, created.ID, post.UpdatePostRequest{Content: ptr("new body")})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Title)
	assert.Equal(t, "new body", res.Content)
	assert.False(t, res.IsPublished)
	require.NotNil(t, res.UpdatedAt)
	assert.Equal(t, f.clock, *res.UpdatedAt)
	assert.Equal(t, created.CreatedAt, res.CreatedAt)

	stored, err := f.repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new body", stored.Content)
}

func TestUpdateEmptyPatchBumpsUpdatedAt(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.alice, "hello")
	f.clock = f.clock.Add(time.Minute)

	res, err := f.service.Update(context.Background(), f.alice, created.ID, post.UpdatePostRequest{})
	require.NoError(t, err)
	require.NotNil(t, res.UpdatedAt)
	assert.Equal(t, f.clock, *res.UpdatedAt)
	assert.Equal(t, "hello", res.Title)
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.alice, "hello")

	_, err := f.service.Update(context.Background(), f.bob, created.ID, post.UpdatePostRequest{Title: ptr("pwned")})
	assert.ErrorIs(t, err, post.ErrForbidden)

	stored, err := f.repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", stored.Title)
	assert.Nil(t, stored.UpdatedAt)
}

func TestUpdateValidation(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.alice, "hello")

	_, err := f.service.Update(context.Background(), f.alice, created.ID, post.UpdatePostRequest{Title: ptr("  ")})
	assert.True(t, isValidationError(err))

	_, err = f.service.Update(context.Background(), f.alice, created.ID, post.UpdatePostRequest{Content: ptr("")})
	assert.True(t, isValidationError(err))
}

func TestUpdateMissingPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Update(context.Background(), f.alice, 77, post.UpdatePostRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.alice, "hello")

	assert.ErrorIs(t, f.service.Delete(context.Background(), f.bob, created.ID), post.ErrForbidden)
	require.NoError(t, f.service.Delete(context.Background(), f.alice, created.ID))

	_, err := f.service.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	assert.ErrorIs(t, f.service.Delete(context.Background(), f.alice, created.ID), post.ErrPostNotFound)
}

// ownershipFlip simulates the owner changing between the guard read and the write.
type ownershipFlip struct {
	post.Repository
	owner uuid.UUID
}

func (r ownershipFlip) FindByID(ctx context.Context, id int64) (*post.Post, error) {
	p, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.AuthorID = r.owner
	return p, nil
}

func TestWriteRechecksOwnerAfterGuard(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.alice, "hello")

	// the guard is fooled into thinking bob owns the post; the write is not
	flipped := ownershipFlip{Repository: f.repo, owner: f.bob.ID}
	svc := NewPostService(f.repo, NewGuard(flipped))

	_, err := svc.Update(context.Background(), f.bob, created.ID, post.UpdatePostRequest{Title: ptr("pwned")})
	assert.ErrorIs(t, err, post.ErrForbidden)

	err = svc.Delete(context.Background(), f.bob, created.ID)
	assert.ErrorIs(t, err, post.ErrForbidden)

	stored, err := f.repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", stored.Title)
}
