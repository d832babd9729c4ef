package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTransactionCommits(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	err := WithTransaction(context.Background(), db, func(pgx.Tx) error { return nil })
	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), db, func(pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTransaction(context.Background(), db, func(pgx.Tx) error { panic("kaboom") })
	})
	assert.True(t, db.tx.rolledBack)
}

func TestWithTransactionCommitFailure(t *testing.T) {
	commitErr := errors.New("serialization failure")
	db := &fakeBeginner{tx: &fakeTx{commitErr: commitErr}}

	err := WithTransaction(context.Background(), db, func(pgx.Tx) error { return nil })
	assert.ErrorIs(t, err, commitErr)
	assert.True(t, db.tx.rolledBack)
}

func TestWithTransactionBeginFailure(t *testing.T) {
	beginErr := errors.New("pool closed")
	called := false

	err := WithTransaction(context.Background(), &fakeBeginner{err: beginErr}, func(pgx.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, beginErr)
	assert.False(t, called)
}

func TestWithTransactionResult(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	n, err := WithTransactionResult(context.Background(), db, func(pgx.Tx) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	db = &fakeBeginner{tx: &fakeTx{}}
	n, err = WithTransactionResult(context.Background(), db, func(pgx.Tx) (int, error) { return 7, errors.New("nope") })
	assert.Error(t, err)
	assert.Zero(t, n)
}
