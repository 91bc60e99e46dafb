package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestGetAllAuthorsHandler ensures the listing carries the total count.
func TestGetAllAuthorsHandler(t *testing.T) {
	api := newTestAPIHandler(zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/authors", nil)
	w := httptest.NewRecorder()
	api.GetAllAuthors(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

	m := decodeBody(t, res)
	assert.Equal(t, true, m["success"])
	assert.Equal(t, float64(2), m["total"])
	data, ok := m["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 2)
}

// TestGetOneAuthorHandler ensures a fetched author embeds its books.
func TestGetOneAuthorHandler(t *testing.T) {
	t.Run("should pass: books attached", func(t *testing.T) {
		api := newTestAPIHandler(zap.NewNop())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/authors/2", nil)
		w := httptest.NewRecorder()
		api.GetOneAuthor(w, req, httprouter.Params{{Key: "id", Value: "2"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)

		m := decodeBody(t, res)
		data, ok := m["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Robert C. Martin", data["name"])
		books, ok := data["books"].([]interface{})
		require.True(t, ok)
		require.Len(t, books, 1)
		book, ok := books[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Clean Code", book["title"])
	})

	t.Run("should fail: unknown author", func(t *testing.T) {
		api := newTestAPIHandler(zap.NewNop())
		req := httptest.NewRequest(http.MethodGet, "/api/v1/authors/unknown", nil)
		w := httptest.NewRecorder()
		api.GetOneAuthor(w, req, httprouter.Params{{Key: "id", Value: "unknown"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		block := errorBlock(t, decodeBody(t, res))
		assert.Equal(t, "NOT_FOUND", block["code"])
		assert.Equal(t, "Author with id 'unknown' not found", block["message"])
	})
}

// TestCreateAuthorHandler ensures name is the only required field and
// the defaults are applied.
func TestCreateAuthorHandler(t *testing.T) {
	t.Run("should pass: name only", func(t *testing.T) {
		api := newTestAPIHandler(zap.NewNop())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/authors", bytes.NewBufferString(`{"name":"George Orwell"}`))
		w := httptest.NewRecorder()
		api.CreateAuthor(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusCreated, res.StatusCode)

		m := decodeBody(t, res)
		assert.Equal(t, "Author created successfully", m["message"])
		data, ok := m["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "George Orwell", data["name"])
		assert.Equal(t, "Unknown", data["nationality"])
		assert.Equal(t, "", data["bio"])
		assert.NotEmpty(t, data["id"])
	})

	t.Run("should fail: missing name", func(t *testing.T) {
		api := newTestAPIHandler(zap.NewNop())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/authors", bytes.NewBufferString(`{"nationality":"British"}`))
		w := httptest.NewRecorder()
		api.CreateAuthor(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		block := errorBlock(t, decodeBody(t, res))
		assert.Equal(t, "VALIDATION_ERROR", block["code"])
		assert.Equal(t, "name is required", block["message"])
	})
}
