package main

import (
	"context"
	"strings"
	"time"
)

// Book represents a book entity.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	AuthorID      string    `json:"authorId"`
	ISBN          string    `json:"isbn"`
	Genre         string    `json:"genre"`
	PublishedYear *int      `json:"publishedYear"`
	Price         float64   `json:"price"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookInput carries the fields a client supplies on book creation or full
// update. Price and Stock are pointers so the validator can tell a missing
// field from a zero value.
type BookInput struct {
	Title         string   `json:"title"`
	AuthorID      string   `json:"authorId"`
	ISBN          string   `json:"isbn"`
	Genre         string   `json:"genre"`
	PublishedYear *int     `json:"publishedYear"`
	Price         *float64 `json:"price"`
	Stock         *int     `json:"stock"`
}

// BookPatch carries the fields a client supplies on a partial update.
// Only non-nil fields are merged over the stored record.
type BookPatch struct {
	Title         *string  `json:"title"`
	AuthorID      *string  `json:"authorId"`
	ISBN          *string  `json:"isbn"`
	Genre         *string  `json:"genre"`
	PublishedYear *int     `json:"publishedYear"`
	Price         *float64 `json:"price"`
	Stock         *int     `json:"stock"`
}

// BookWithAuthor is the shape served on single book fetch. The author
// field holds the resolved author or null when it no longer exists.
type BookWithAuthor struct {
	Book
	Author *Author `json:"author"`
}

// BookListQuery holds the filtering and pagination parameters of a
// book listing request.
type BookListQuery struct {
	Genre    string
	AuthorID string
	Page     int
	Limit    int
}

// BookStorage defines possible operations on the books collection.
type BookStorage interface {
	GetAll(ctx context.Context) ([]Book, error)
	GetOne(ctx context.Context, id string) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	Add(ctx context.Context, input BookInput) (Book, error)
	Update(ctx context.Context, id string, input BookInput) (Book, error)
	Patch(ctx context.Context, id string, patch BookPatch) (Book, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NormalizeISBN strips the hyphens so that two renderings of the same
// isbn compare equal for uniqueness enforcement.
func NormalizeISBN(isbn string) string {
	return strings.ReplaceAll(isbn, "-", "")
}

// SeedBooks provides the initial books collection served by a fresh instance.
func SeedBooks(clock Clocker) []Book {
	now := clock.Now().UTC()
	year1925, year2008 := 1925, 2008
	return []Book{
		{
			ID:            "1",
			Title:         "The Great Gatsby",
			AuthorID:      "1",
			ISBN:          "978-0743273565",
			Genre:         "Fiction",
			PublishedYear: &year1925,
			Price:         12.99,
			Stock:         50,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "2",
			Title:         "Clean Code",
			AuthorID:      "2",
			ISBN:          "978-0132350884",
			Genre:         "Technology",
			PublishedYear: &year2008,
			Price:         35,
			Stock:         30,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}
