package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetAllAuthors serves every author along with the total count.
func (api *APIHandler) GetAllAuthors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)

	authors, err := api.authorService.GetAll(r.Context())
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to get all authors",
		zap.String("request.id", requestID),
		zap.Int("authors.count", len(authors)),
	)
	total := len(authors)
	resp := SuccessResponse(authors)
	resp.Total = &total
	if err = WriteResponse(w, http.StatusOK, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneAuthor serves a single author with every book referencing it embedded.
func (api *APIHandler) GetOneAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")

	author, err := api.authorService.GetOne(r.Context(), id)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to get author", zap.String("author.id", id), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusOK, SuccessResponse(author)); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// CreateAuthor inserts a new author. Name is the only required field,
// every other one gets its default when absent.
func (api *APIHandler) CreateAuthor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)

	var input AuthorInput
	if err := DecodeAuthorInput(r, &input); err != nil {
		api.Fail(w, r, err)
		return
	}

	if err := ValidateAuthorInput(&input); err != nil {
		api.Fail(w, r, err)
		return
	}

	author, err := api.authorService.Create(r.Context(), input)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.logger.Info("success to create author", zap.String("author.id", author.ID), zap.String("request.id", requestID))
	resp := SuccessResponse(author)
	resp.Message = "Author created successfully"
	if err = WriteResponse(w, http.StatusCreated, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
