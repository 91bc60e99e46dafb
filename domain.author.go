package main

import (
	"context"
	"time"
)

// Author represents an author entity. Authors only support creation and
// reads, so there is no updatedAt to maintain.
type Author struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Nationality string    `json:"nationality"`
	BirthYear   *int      `json:"birthYear"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthorInput carries the fields a client supplies on author creation.
type AuthorInput struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	BirthYear   *int   `json:"birthYear"`
	Bio         string `json:"bio"`
}

// AuthorWithBooks is the shape served on single author fetch. It embeds
// every book referencing the author.
type AuthorWithBooks struct {
	Author
	Books []Book `json:"books"`
}

// AuthorStorage defines possible operations on the authors collection.
type AuthorStorage interface {
	GetAll(ctx context.Context) ([]Author, error)
	GetOne(ctx context.Context, id string) (Author, error)
	Add(ctx context.Context, input AuthorInput) (Author, error)
}

// SeedAuthors provides the initial authors collection served by a fresh instance.
func SeedAuthors(clock Clocker) []Author {
	now := clock.Now().UTC()
	year1896, year1952 := 1896, 1952
	return []Author{
		{
			ID:          "1",
			Name:        "F. Scott Fitzgerald",
			Nationality: "American",
			BirthYear:   &year1896,
			Bio:         "American novelist and short story writer.",
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Robert C. Martin",
			Nationality: "American",
			BirthYear:   &year1952,
			Bio:         "Software engineer and author known as Uncle Bob.",
			CreatedAt:   now,
		},
	}
}
