package main

import (
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// isbn13Regexp matches the bare 13-digit form with a 978 or 979 prefix,
// checked after the hyphens were removed.
var isbn13Regexp = regexp.MustCompile(`^(97[89])\d{10}$`)

// allowedPatchFields is the fixed set of field names a partial book
// update may carry.
var allowedPatchFields = map[string]struct{}{
	"title":         {},
	"authorId":      {},
	"isbn":          {},
	"genre":         {},
	"publishedYear": {},
	"price":         {},
	"stock":         {},
}

// DecodeBookInput reads the content of a book creation or full update request.
func DecodeBookInput(r *http.Request, input *BookInput) error {
	if r.Body == nil {
		return ValidationError("request body is required")
	}
	if err := jsonAPI.NewDecoder(r.Body).Decode(input); err != nil {
		return ValidationError("invalid request body: " + err.Error())
	}
	return nil
}

// DecodeAuthorInput reads the content of an author creation request.
func DecodeAuthorInput(r *http.Request, input *AuthorInput) error {
	if r.Body == nil {
		return ValidationError("request body is required")
	}
	if err := jsonAPI.NewDecoder(r.Body).Decode(input); err != nil {
		return ValidationError("invalid request body: " + err.Error())
	}
	return nil
}

// DecodeBookPatch reads the content of a partial book update request.
// The body is first unmarshalled into a raw field map so the provided
// field names can be checked against the allowed set, then into the
// typed patch carrying only those fields.
func DecodeBookPatch(r *http.Request) (BookPatch, error) {
	var patch BookPatch
	if r.Body == nil {
		return patch, ValidationError("request body is required")
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return patch, ValidationError("invalid request body: " + err.Error())
	}
	fields := make(map[string]jsoniter.RawMessage)
	if err := jsonAPI.Unmarshal(body, &fields); err != nil {
		return patch, ValidationError("invalid request body: " + err.Error())
	}
	if err := ValidateBookPatchFields(fields); err != nil {
		return patch, err
	}
	if err := jsonAPI.Unmarshal(body, &patch); err != nil {
		return patch, ValidationError("invalid request body: " + err.Error())
	}
	return patch, nil
}

// ValidateCreateBookInput checks the content of a book creation request.
// All violated rules are collected and reported together.
func ValidateCreateBookInput(input *BookInput) error {
	var violations []string

	if strings.TrimSpace(input.Title) == "" {
		violations = append(violations, "title is required and must be a non-empty string")
	}

	if input.AuthorID == "" {
		violations = append(violations, "authorId is required")
	}

	if input.ISBN == "" || !isbn13Regexp.MatchString(NormalizeISBN(input.ISBN)) {
		violations = append(violations, "isbn is required and must be a valid ISBN-13 format")
	}

	if input.Price == nil || *input.Price < 0 {
		violations = append(violations, "price is required and must be a non-negative number")
	}

	if len(violations) > 0 {
		return ValidationError(strings.Join(violations, "; "))
	}
	return nil
}

// ValidateUpdateBookInput checks the content of a full book update
// request. Every field is mandatory, identically to creation.
func ValidateUpdateBookInput(input *BookInput) error {
	return ValidateCreateBookInput(input)
}

// ValidateBookPatchFields checks that a partial update carries at least
// one field and that every provided field name belongs to the allowed
// set. Unknown names are reported together in a single failure.
func ValidateBookPatchFields(fields map[string]jsoniter.RawMessage) error {
	if len(fields) == 0 {
		return ValidationError("At least one field must be provided for update")
	}
	var unknown []string
	for name := range fields {
		if _, ok := allowedPatchFields[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ValidationError("Invalid fields: " + strings.Join(unknown, ", "))
	}
	return nil
}

// ValidateAuthorInput checks the content of an author creation request.
// Name is the only required field.
func ValidateAuthorInput(input *AuthorInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ValidationError("name is required")
	}
	return nil
}

// ParseBookListQuery extracts the filters and pagination parameters of a
// book listing request. Non-numeric or non-positive page/limit values
// are rejected rather than silently producing undefined slices.
func ParseBookListQuery(values url.Values) (BookListQuery, error) {
	query := BookListQuery{
		Genre:    values.Get("genre"),
		AuthorID: values.Get("authorId"),
		Page:     1,
		Limit:    10,
	}
	var violations []string

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			violations = append(violations, "page must be a positive integer")
		} else {
			query.Page = page
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			violations = append(violations, "limit must be a positive integer")
		} else {
			query.Limit = limit
		}
	}

	if len(violations) > 0 {
		return query, ValidationError(strings.Join(violations, "; "))
	}
	return query, nil
}
