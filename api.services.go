package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// BookServiceProvider describes the book operations exposed to the handlers.
type BookServiceProvider interface {
	GetAll(ctx context.Context, query BookListQuery) ([]Book, Pagination, error)
	GetOne(ctx context.Context, id string) (BookWithAuthor, error)
	Create(ctx context.Context, input BookInput) (Book, error)
	Update(ctx context.Context, id string, input BookInput) (Book, error)
	Patch(ctx context.Context, id string, patch BookPatch) (Book, error)
	Delete(ctx context.Context, id string) error
}

// AuthorServiceProvider describes the author operations exposed to the handlers.
type AuthorServiceProvider interface {
	GetAll(ctx context.Context) ([]Author, error)
	GetOne(ctx context.Context, id string) (AuthorWithBooks, error)
	Create(ctx context.Context, input AuthorInput) (Author, error)
}

// BookService runs the cross-resource and uniqueness checks on top of the
// books store. It only surfaces domain errors to its callers.
type BookService struct {
	logger  *zap.Logger
	config  *Config
	books   BookStorage
	authors AuthorStorage
}

func NewBookService(logger *zap.Logger, config *Config, books BookStorage, authors AuthorStorage) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		books:   books,
		authors: authors,
	}
}

// GetAll returns the page of books matching the query filters along with
// the pagination summary computed over the whole filtered set.
func (bs *BookService) GetAll(ctx context.Context, query BookListQuery) ([]Book, Pagination, error) {
	books, err := bs.books.GetAll(ctx)
	if err != nil {
		return nil, Pagination{}, InternalError(err)
	}

	filtered := make([]Book, 0, len(books))
	for _, book := range books {
		if query.Genre != "" && !strings.EqualFold(book.Genre, query.Genre) {
			continue
		}
		if query.AuthorID != "" && book.AuthorID != query.AuthorID {
			continue
		}
		filtered = append(filtered, book)
	}

	total := len(filtered)
	totalPages := 0
	if total > 0 {
		totalPages = (total-1)/query.Limit + 1
	}
	pagination := Pagination{
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}

	// Comparing against the page count first keeps the offset
	// arithmetic below within int range for any accepted page value.
	if query.Page > totalPages {
		return []Book{}, pagination, nil
	}
	start := (query.Page - 1) * query.Limit
	end := start + query.Limit
	if end > total {
		end = total
	}
	return filtered[start:end], pagination, nil
}

// GetOne returns the identified book with its resolved author attached.
// The author field stays null when the author itself no longer exists.
func (bs *BookService) GetOne(ctx context.Context, id string) (BookWithAuthor, error) {
	book, err := bs.books.GetOne(ctx, id)
	if errors.Is(err, ErrBookNotFound) {
		return BookWithAuthor{}, NotFoundError(fmt.Sprintf("Book with id '%s'", id))
	}
	if err != nil {
		return BookWithAuthor{}, InternalError(err)
	}

	result := BookWithAuthor{Book: book}
	author, err := bs.authors.GetOne(ctx, book.AuthorID)
	if err == nil {
		result.Author = &author
	}
	return result, nil
}

// Create inserts a new book after checking that the referenced author
// exists and that the isbn is not already in use.
func (bs *BookService) Create(ctx context.Context, input BookInput) (Book, error) {
	if _, err := bs.authors.GetOne(ctx, input.AuthorID); err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return Book{}, NotFoundError(fmt.Sprintf("Author with id '%s'", input.AuthorID))
		}
		return Book{}, InternalError(err)
	}

	if existing, err := bs.books.GetByISBN(ctx, input.ISBN); err == nil {
		return Book{}, ConflictError("Book with ISBN '%s' already exists", existing.ISBN)
	} else if !errors.Is(err, ErrBookNotFound) {
		return Book{}, InternalError(err)
	}

	input.Title = strings.TrimSpace(input.Title)
	book, err := bs.books.Add(ctx, input)
	if err != nil {
		return Book{}, InternalError(err)
	}
	bs.logger.Info("service: book created", zap.String("book.id", book.ID))
	return book, nil
}

// Update replaces all fields of the identified book. The target book and
// the newly referenced author must both exist.
func (bs *BookService) Update(ctx context.Context, id string, input BookInput) (Book, error) {
	if _, err := bs.books.GetOne(ctx, id); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return Book{}, NotFoundError(fmt.Sprintf("Book with id '%s'", id))
		}
		return Book{}, InternalError(err)
	}

	if _, err := bs.authors.GetOne(ctx, input.AuthorID); err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return Book{}, NotFoundError(fmt.Sprintf("Author with id '%s'", input.AuthorID))
		}
		return Book{}, InternalError(err)
	}

	input.Title = strings.TrimSpace(input.Title)
	book, err := bs.books.Update(ctx, id, input)
	if err != nil {
		return Book{}, InternalError(err)
	}
	bs.logger.Info("service: book updated", zap.String("book.id", book.ID))
	return book, nil
}

// Patch merges the provided fields over the identified book. When the
// authorId is among them the referenced author must exist.
func (bs *BookService) Patch(ctx context.Context, id string, patch BookPatch) (Book, error) {
	if _, err := bs.books.GetOne(ctx, id); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return Book{}, NotFoundError(fmt.Sprintf("Book with id '%s'", id))
		}
		return Book{}, InternalError(err)
	}

	if patch.AuthorID != nil {
		if _, err := bs.authors.GetOne(ctx, *patch.AuthorID); err != nil {
			if errors.Is(err, ErrAuthorNotFound) {
				return Book{}, NotFoundError(fmt.Sprintf("Author with id '%s'", *patch.AuthorID))
			}
			return Book{}, InternalError(err)
		}
	}

	book, err := bs.books.Patch(ctx, id, patch)
	if err != nil {
		return Book{}, InternalError(err)
	}
	bs.logger.Info("service: book patched", zap.String("book.id", book.ID))
	return book, nil
}

// Delete removes the identified book. Deleting an unknown id fails with
// a not found error rather than silently succeeding.
func (bs *BookService) Delete(ctx context.Context, id string) error {
	removed, err := bs.books.Delete(ctx, id)
	if err != nil {
		return InternalError(err)
	}
	if !removed {
		return NotFoundError(fmt.Sprintf("Book with id '%s'", id))
	}
	bs.logger.Info("service: book deleted", zap.String("book.id", id))
	return nil
}

// AuthorService runs the author operations on top of the authors store.
type AuthorService struct {
	logger  *zap.Logger
	config  *Config
	authors AuthorStorage
	books   BookStorage
}

func NewAuthorService(logger *zap.Logger, config *Config, authors AuthorStorage, books BookStorage) AuthorServiceProvider {
	return &AuthorService{
		logger:  logger,
		config:  config,
		authors: authors,
		books:   books,
	}
}

// GetAll returns every author in insertion order.
func (as *AuthorService) GetAll(ctx context.Context) ([]Author, error) {
	authors, err := as.authors.GetAll(ctx)
	if err != nil {
		return nil, InternalError(err)
	}
	return authors, nil
}

// GetOne returns the identified author with every book referencing it attached.
func (as *AuthorService) GetOne(ctx context.Context, id string) (AuthorWithBooks, error) {
	author, err := as.authors.GetOne(ctx, id)
	if errors.Is(err, ErrAuthorNotFound) {
		return AuthorWithBooks{}, NotFoundError(fmt.Sprintf("Author with id '%s'", id))
	}
	if err != nil {
		return AuthorWithBooks{}, InternalError(err)
	}

	books, err := as.books.GetAll(ctx)
	if err != nil {
		return AuthorWithBooks{}, InternalError(err)
	}
	authorBooks := make([]Book, 0)
	for _, book := range books {
		if book.AuthorID == id {
			authorBooks = append(authorBooks, book)
		}
	}
	return AuthorWithBooks{Author: author, Books: authorBooks}, nil
}

// Create inserts a new author with its name trimmed and the optional
// fields defaulted by the store.
func (as *AuthorService) Create(ctx context.Context, input AuthorInput) (Author, error) {
	input.Name = strings.TrimSpace(input.Name)
	author, err := as.authors.Add(ctx, input)
	if err != nil {
		return Author{}, InternalError(err)
	}
	as.logger.Info("service: author created", zap.String("author.id", author.ID))
	return author, nil
}
