package post

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToMergesOnlyProvidedFields(t *testing.T) {
	owner := uuid.New()
	created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	p := NewPost("title", "content", owner, "alice", created)
	p.ID = 7

	title := "new title"
	published := true
	now := created.Add(time.Hour)

	UpdatePostRequest{Title: &title, IsPublished: &published}.ApplyTo(p, now)

	assert.Equal(t, "new title", p.Title)
	assert.Equal(t, "content", p.Content)
	assert.True(t, p.IsPublished)
	require.NotNil(t, p.UpdatedAt)
	assert.Equal(t, now, *p.UpdatedAt)

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, owner, p.AuthorID)
	assert.Equal(t, created, p.CreatedAt)
}

func TestListPostsRequestValidate(t *testing.T) {
	req := DefaultListPostsRequest()
	require.NoError(t, req.Validate())
	assert.Equal(t, 0, req.Offset())

	req.Page = 3
	req.Size = 10
	require.NoError(t, req.Validate())
	assert.Equal(t, 20, req.Offset())

	assert.Error(t, ListPostsRequest{Page: 0, Size: 20}.Validate())
	assert.Error(t, ListPostsRequest{Page: 1, Size: 0}.Validate())
	assert.Error(t, ListPostsRequest{Page: 1, Size: MaxPageSize + 1}.Validate())
	assert.NoError(t, ListPostsRequest{Page: 1, Size: MaxPageSize}.Validate())
}

func TestToResponseCarriesAuthorSummary(t *testing.T) {
	owner := uuid.New()
	p := NewPost("t", "c", owner, "alice", time.Now())

	res := p.ToResponse()
	assert.Equal(t, owner, res.Author.ID)
	assert.Equal(t, "alice", res.Author.Username)
	assert.Nil(t, res.UpdatedAt)
	assert.True(t, p.IsOwnedBy(owner))
	assert.False(t, p.IsOwnedBy(uuid.New()))
}

func TestListPostsRequestOffsetSaturates(t *testing.T) {
	req := ListPostsRequest{Page: 100000000000000000, Size: MaxPageSize}
	require.NoError(t, req.Validate())
	assert.Equal(t, math.MaxInt, req.Offset())

	assert.Equal(t, math.MaxInt, ListPostsRequest{Page: math.MaxInt, Size: 2}.Offset())
	assert.Equal(t, 0, ListPostsRequest{Page: 0, Size: 20}.Offset())
}
