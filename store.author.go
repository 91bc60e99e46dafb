package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Ensure *AuthorStore implements AuthorStorage.
var _ AuthorStorage = (*AuthorStore)(nil)

// AuthorStore is an in-memory implementation of AuthorStorage.
type AuthorStore struct {
	logger  *zap.Logger
	clock   Clocker
	ids     UIDGenerator
	mu      sync.RWMutex
	authors []Author
}

// NewAuthorStore provides an authors store pre-filled with the given seed records.
func NewAuthorStore(logger *zap.Logger, clock Clocker, ids UIDGenerator, seed ...Author) *AuthorStore {
	authors := make([]Author, len(seed))
	copy(authors, seed)
	return &AuthorStore{
		logger:  logger,
		clock:   clock,
		ids:     ids,
		authors: authors,
	}
}

// GetAll returns the full ordered collection.
func (as *AuthorStore) GetAll(_ context.Context) ([]Author, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	authors := make([]Author, len(as.authors))
	copy(authors, as.authors)
	return authors, nil
}

// GetOne returns the author with matching id or ErrAuthorNotFound.
func (as *AuthorStore) GetOne(_ context.Context, id string) (Author, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	for _, author := range as.authors {
		if author.ID == id {
			return author, nil
		}
	}
	return Author{}, ErrAuthorNotFound
}

// Add appends a new author built from the input with defaults applied
// for the absent optional fields. The id and createdAt are always
// assigned here, never taken from the caller.
func (as *AuthorStore) Add(_ context.Context, input AuthorInput) (Author, error) {
	as.mu.Lock()
	defer as.mu.Unlock()
	author := Author{
		ID:          as.ids.Generate(),
		Name:        input.Name,
		Nationality: input.Nationality,
		BirthYear:   input.BirthYear,
		Bio:         input.Bio,
		CreatedAt:   as.clock.Now().UTC(),
	}
	if author.Nationality == "" {
		author.Nationality = "Unknown"
	}
	as.authors = append(as.authors, author)
	as.logger.Debug("store: author added", zap.String("author.id", author.ID))
	return author, nil
}
