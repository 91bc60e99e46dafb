package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Ensure *BookStore implements BookStorage.
var _ BookStorage = (*BookStore)(nil)

// BookStore is an in-memory implementation of BookStorage. Records are
// kept in insertion order. Every read-modify-write sequence runs under
// the store mutex since the http server handles requests on parallel
// goroutines.
type BookStore struct {
	logger *zap.Logger
	clock  Clocker
	ids    UIDGenerator
	mu     sync.RWMutex
	books  []Book
}

// NewBookStore provides a books store pre-filled with the given seed
// records. The store owns the collection, callers always get copies.
func NewBookStore(logger *zap.Logger, clock Clocker, ids UIDGenerator, seed ...Book) *BookStore {
	books := make([]Book, len(seed))
	copy(books, seed)
	return &BookStore{
		logger: logger,
		clock:  clock,
		ids:    ids,
		books:  books,
	}
}

// GetAll returns the full ordered collection.
func (bs *BookStore) GetAll(_ context.Context) ([]Book, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	books := make([]Book, len(bs.books))
	copy(books, bs.books)
	return books, nil
}

// GetOne returns the book with matching id or ErrBookNotFound.
func (bs *BookStore) GetOne(_ context.Context, id string) (Book, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	for _, book := range bs.books {
		if book.ID == id {
			return book, nil
		}
	}
	return Book{}, ErrBookNotFound
}

// GetByISBN returns the book with matching isbn or ErrBookNotFound.
// Both sides are compared without their hyphens.
func (bs *BookStore) GetByISBN(_ context.Context, isbn string) (Book, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	want := NormalizeISBN(isbn)
	for _, book := range bs.books {
		if NormalizeISBN(book.ISBN) == want {
			return book, nil
		}
	}
	return Book{}, ErrBookNotFound
}

// Add appends a new book built from the input. The id and the timestamps
// are always assigned here, never taken from the caller.
func (bs *BookStore) Add(_ context.Context, input BookInput) (Book, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	now := bs.clock.Now().UTC()
	book := Book{
		ID:            bs.ids.Generate(),
		Title:         input.Title,
		AuthorID:      input.AuthorID,
		ISBN:          input.ISBN,
		Genre:         input.Genre,
		PublishedYear: input.PublishedYear,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if book.Genre == "" {
		book.Genre = "General"
	}
	if input.Price != nil {
		book.Price = *input.Price
	}
	if input.Stock != nil {
		book.Stock = *input.Stock
	}
	bs.books = append(bs.books, book)
	bs.logger.Debug("store: book added", zap.String("book.id", book.ID))
	return book, nil
}

// Update replaces all mutable fields of the identified book. The id and
// createdAt are preserved and updatedAt is refreshed.
func (bs *BookStore) Update(_ context.Context, id string, input BookInput) (Book, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	index := bs.indexOf(id)
	if index == -1 {
		return Book{}, ErrBookNotFound
	}
	book := bs.books[index]
	book.Title = input.Title
	book.AuthorID = input.AuthorID
	book.ISBN = input.ISBN
	book.Genre = input.Genre
	if book.Genre == "" {
		book.Genre = "General"
	}
	book.PublishedYear = input.PublishedYear
	book.Price = 0
	if input.Price != nil {
		book.Price = *input.Price
	}
	book.Stock = 0
	if input.Stock != nil {
		book.Stock = *input.Stock
	}
	book.UpdatedAt = bs.clock.Now().UTC()
	bs.books[index] = book
	return book, nil
}

// Patch merges only the provided fields over the identified book and
// refreshes updatedAt.
func (bs *BookStore) Patch(_ context.Context, id string, patch BookPatch) (Book, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	index := bs.indexOf(id)
	if index == -1 {
		return Book{}, ErrBookNotFound
	}
	book := bs.books[index]
	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.AuthorID != nil {
		book.AuthorID = *patch.AuthorID
	}
	if patch.ISBN != nil {
		book.ISBN = *patch.ISBN
	}
	if patch.Genre != nil {
		book.Genre = *patch.Genre
	}
	if patch.PublishedYear != nil {
		book.PublishedYear = patch.PublishedYear
	}
	if patch.Price != nil {
		book.Price = *patch.Price
	}
	if patch.Stock != nil {
		book.Stock = *patch.Stock
	}
	book.UpdatedAt = bs.clock.Now().UTC()
	bs.books[index] = book
	return book, nil
}

// Delete removes the identified book and reports whether a removal occurred.
func (bs *BookStore) Delete(_ context.Context, id string) (bool, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	index := bs.indexOf(id)
	if index == -1 {
		return false, nil
	}
	bs.books = append(bs.books[:index], bs.books[index+1:]...)
	bs.logger.Debug("store: book deleted", zap.String("book.id", id))
	return true, nil
}

// indexOf must be called with the store mutex held.
func (bs *BookStore) indexOf(id string) int {
	for i, book := range bs.books {
		if book.ID == id {
			return i
		}
	}
	return -1
}
