package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetAllBooks serves the filtered and paginated books listing.
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)

	query, err := ParseBookListQuery(r.URL.Query())
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	books, pagination, err := api.bookService.GetAll(r.Context(), query)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to get all books",
		zap.String("request.id", requestID),
		zap.Int("books.count", len(books)),
	)
	resp := SuccessResponse(books)
	resp.Pagination = &pagination
	if err = WriteResponse(w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneBook serves a single book with its resolved author embedded.
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")

	book, err := api.bookService.GetOne(r.Context(), id)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to get book", zap.String("book.id", id), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusOK, SuccessResponse(book)); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// CreateBook inserts a new book after payload validation.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)

	var input BookInput
	if err := DecodeBookInput(r, &input); err != nil {
		api.Fail(w, r, err)
		return
	}

	if err := ValidateCreateBookInput(&input); err != nil {
		api.Fail(w, r, err)
		return
	}

	book, err := api.bookService.Create(r.Context(), input)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to create book", zap.String("book.id", book.ID), zap.String("request.id", requestID))
	resp := SuccessResponse(book)
	resp.Message = "Book created successfully"
	if err = WriteResponse(w, http.StatusCreated, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateBook replaces all fields of a book. The payload obeys the same
// rules as creation, even for the values left unchanged.
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")

	var input BookInput
	if err := DecodeBookInput(r, &input); err != nil {
		api.Fail(w, r, err)
		return
	}

	if err := ValidateUpdateBookInput(&input); err != nil {
		api.Fail(w, r, err)
		return
	}

	book, err := api.bookService.Update(r.Context(), id, input)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to update book", zap.String("book.id", book.ID), zap.String("request.id", requestID))
	resp := SuccessResponse(book)
	resp.Message = "Book updated successfully"
	if err = WriteResponse(w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// PatchBook merges the provided fields over a book.
func (api *APIHandler) PatchBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")

	patch, err := DecodeBookPatch(r)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	book, err := api.bookService.Patch(r.Context(), id, patch)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to patch book", zap.String("book.id", book.ID), zap.String("request.id", requestID))
	resp := SuccessResponse(book)
	resp.Message = "Book partially updated successfully"
	if err = WriteResponse(w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneBook removes a book and answers with an empty body.
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")

	if err := api.bookService.Delete(r.Context(), id); err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to delete book", zap.String("book.id", id), zap.String("request.id", requestID))
	w.WriteHeader(http.StatusNoContent)
}
