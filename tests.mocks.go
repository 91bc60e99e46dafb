package main

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// This file contains mocks and helpers definitions needed to perform unit tests.

// MockBookStorage implements a fake BookStorage.
type MockBookStorage struct {
	GetAllFunc    func(ctx context.Context) ([]Book, error)
	GetOneFunc    func(ctx context.Context, id string) (Book, error)
	GetByISBNFunc func(ctx context.Context, isbn string) (Book, error)
	AddFunc       func(ctx context.Context, input BookInput) (Book, error)
	UpdateFunc    func(ctx context.Context, id string, input BookInput) (Book, error)
	PatchFunc     func(ctx context.Context, id string, patch BookPatch) (Book, error)
	DeleteFunc    func(ctx context.Context, id string) (bool, error)
}

func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockBookStorage) GetOne(ctx context.Context, id string) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockBookStorage) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return m.GetByISBNFunc(ctx, isbn)
}

func (m *MockBookStorage) Add(ctx context.Context, input BookInput) (Book, error) {
	return m.AddFunc(ctx, input)
}

func (m *MockBookStorage) Update(ctx context.Context, id string, input BookInput) (Book, error) {
	return m.UpdateFunc(ctx, id, input)
}

func (m *MockBookStorage) Patch(ctx context.Context, id string, patch BookPatch) (Book, error) {
	return m.PatchFunc(ctx, id, patch)
}

func (m *MockBookStorage) Delete(ctx context.Context, id string) (bool, error) {
	return m.DeleteFunc(ctx, id)
}

// MockAuthorStorage implements a fake AuthorStorage.
type MockAuthorStorage struct {
	GetAllFunc func(ctx context.Context) ([]Author, error)
	GetOneFunc func(ctx context.Context, id string) (Author, error)
	AddFunc    func(ctx context.Context, input AuthorInput) (Author, error)
}

func (m *MockAuthorStorage) GetAll(ctx context.Context) ([]Author, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockAuthorStorage) GetOne(ctx context.Context, id string) (Author, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockAuthorStorage) Add(ctx context.Context, input AuthorInput) (Author, error) {
	return m.AddFunc(ctx, input)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
// This equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC)}
}

// Now returns an already defined time to be used as mock.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDGenerator implements a fake UIDGenerator with sequential ids.
type MockUIDGenerator struct {
	next int
}

// NewMockUIDGenerator returns a mocked instance with predictable ids.
func NewMockUIDGenerator() *MockUIDGenerator {
	return &MockUIDGenerator{}
}

// Generate constructs a predictable id to be used as mock.
func (m *MockUIDGenerator) Generate() string {
	m.next++
	return "uid-" + strconv.Itoa(m.next)
}

// newTestAPIHandler wires a full api handler on top of fresh seeded
// in-memory stores. Production mode keeps the stack trace out of the
// failure envelopes so tests can assert on their exact content.
func newTestAPIHandler(logger *zap.Logger) *APIHandler {
	config := &Config{
		IsProduction:       true,
		OpsEndpointsEnable: true,
		RateLimit:          RateLimitConfig{Enable: false, RPS: 1, Burst: 1},
	}
	clock := NewClock(true)
	ids := NewObjectIDGenerator()
	books := NewBookStore(logger, clock, ids, SeedBooks(clock)...)
	authors := NewAuthorStore(logger, clock, ids, SeedAuthors(clock)...)
	bookService := NewBookService(logger, config, books, authors)
	authorService := NewAuthorService(logger, config, authors, books)
	return NewAPIHandler(logger, config, &Statistics{started: time.Now()}, clock, ids, bookService, authorService)
}
