package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthorStore(seed ...Author) *AuthorStore {
	return NewAuthorStore(zap.NewNop(), NewMockClocker(), NewObjectIDGenerator(), seed...)
}

// TestAuthorStoreAdd ensures new authors get a fresh id, the store
// timestamp and their defaults.
func TestAuthorStoreAdd(t *testing.T) {
	ctx := context.Background()
	store := newTestAuthorStore()

	author, err := store.Add(ctx, AuthorInput{Name: "George Orwell"})
	require.NoError(t, err)
	assert.NotEmpty(t, author.ID)
	assert.Equal(t, "George Orwell", author.Name)
	assert.Equal(t, "Unknown", author.Nationality)
	assert.Empty(t, author.Bio)
	assert.Nil(t, author.BirthYear)
	assert.Equal(t, NewMockClocker().Now(), author.CreatedAt)

	birthYear := 1903
	another, err := store.Add(ctx, AuthorInput{
		Name:        "Eric Blair",
		Nationality: "British",
		BirthYear:   &birthYear,
		Bio:         "Pen name George Orwell.",
	})
	require.NoError(t, err)
	assert.NotEqual(t, author.ID, another.ID)
	assert.Equal(t, "British", another.Nationality)
	require.NotNil(t, another.BirthYear)
	assert.Equal(t, 1903, *another.BirthYear)
}

// TestAuthorStoreGetOne ensures lookup by id returns the record or the
// not found sentinel.
func TestAuthorStoreGetOne(t *testing.T) {
	ctx := context.Background()
	store := newTestAuthorStore(SeedAuthors(NewMockClocker())...)

	author, err := store.GetOne(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Robert C. Martin", author.Name)

	_, err = store.GetOne(ctx, "unknown")
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

// TestAuthorStoreGetAll ensures the collection keeps its insertion order.
func TestAuthorStoreGetAll(t *testing.T) {
	ctx := context.Background()
	store := newTestAuthorStore(SeedAuthors(NewMockClocker())...)

	authors, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "1", authors[0].ID)
	assert.Equal(t, "2", authors[1].ID)

	_, err = store.Add(ctx, AuthorInput{Name: "George Orwell"})
	require.NoError(t, err)
	authors, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "George Orwell", authors[2].Name)
}
