package main

import (
	"net/url"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateCreateBookInput ensures every violated rule is collected
// and reported together.
func TestValidateCreateBookInput(t *testing.T) {
	testCases := []struct {
		name    string
		input   BookInput
		message string
	}{
		{
			"valid input",
			BookInput{Title: "A book", AuthorID: "1", ISBN: "9789999999991", Price: floatPtr(10)},
			"",
		},
		{
			"valid input with hyphenated isbn",
			BookInput{Title: "A book", AuthorID: "1", ISBN: "978-0132350884", Price: floatPtr(10)},
			"",
		},
		{
			"missing title",
			BookInput{Title: "   ", AuthorID: "1", ISBN: "9789999999991", Price: floatPtr(10)},
			"title is required and must be a non-empty string",
		},
		{
			"missing authorId",
			BookInput{Title: "A book", ISBN: "9789999999991", Price: floatPtr(10)},
			"authorId is required",
		},
		{
			"malformed isbn",
			BookInput{Title: "A book", AuthorID: "1", ISBN: "BADISBN", Price: floatPtr(10)},
			"isbn is required and must be a valid ISBN-13 format",
		},
		{
			"isbn with wrong prefix",
			BookInput{Title: "A book", AuthorID: "1", ISBN: "9771234567890", Price: floatPtr(10)},
			"isbn is required and must be a valid ISBN-13 format",
		},
		{
			"missing price",
			BookInput{Title: "A book", AuthorID: "1", ISBN: "9789999999991"},
			"price is required and must be a non-negative number",
		},
		{
			"negative price",
			BookInput{Title: "A book", AuthorID: "1", ISBN: "9789999999991", Price: floatPtr(-1)},
			"price is required and must be a non-negative number",
		},
		{
			"everything missing",
			BookInput{},
			"title is required and must be a non-empty string; authorId is required; isbn is required and must be a valid ISBN-13 format; price is required and must be a non-negative number",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCreateBookInput(&tc.input)
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			derr, ok := err.(*DomainError)
			require.True(t, ok)
			assert.Equal(t, KindValidation, derr.Kind)
			assert.Equal(t, tc.message, derr.Message)
		})
	}
}

// TestValidateUpdateBookInput ensures full updates obey the same rule
// set as creation.
func TestValidateUpdateBookInput(t *testing.T) {
	err := ValidateUpdateBookInput(&BookInput{})
	require.Error(t, err)
	derr, ok := err.(*DomainError)
	require.True(t, ok)
	assert.Equal(t, KindValidation, derr.Kind)

	err = ValidateUpdateBookInput(&BookInput{Title: "A book", AuthorID: "1", ISBN: "9789999999991", Price: floatPtr(0)})
	assert.NoError(t, err)
}

// TestValidateBookPatchFields ensures a patch carries at least one field
// and only names from the allowed set.
func TestValidateBookPatchFields(t *testing.T) {
	raw := func(names ...string) map[string]jsoniter.RawMessage {
		fields := make(map[string]jsoniter.RawMessage)
		for _, name := range names {
			fields[name] = jsoniter.RawMessage(`"x"`)
		}
		return fields
	}

	testCases := []struct {
		name    string
		fields  map[string]jsoniter.RawMessage
		message string
	}{
		{"single allowed field", raw("title"), ""},
		{"all allowed fields", raw("title", "authorId", "isbn", "genre", "publishedYear", "price", "stock"), ""},
		{"empty payload", raw(), "At least one field must be provided for update"},
		{"one unknown field", raw("title", "publisher"), "Invalid fields: publisher"},
		{"several unknown fields", raw("rating", "publisher"), "Invalid fields: publisher, rating"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBookPatchFields(tc.fields)
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			derr, ok := err.(*DomainError)
			require.True(t, ok)
			assert.Equal(t, KindValidation, derr.Kind)
			assert.Equal(t, tc.message, derr.Message)
		})
	}
}

// TestValidateAuthorInput ensures name is the only required author field.
func TestValidateAuthorInput(t *testing.T) {
	assert.NoError(t, ValidateAuthorInput(&AuthorInput{Name: "George Orwell"}))

	err := ValidateAuthorInput(&AuthorInput{Name: "  "})
	require.Error(t, err)
	derr, ok := err.(*DomainError)
	require.True(t, ok)
	assert.Equal(t, KindValidation, derr.Kind)
	assert.Equal(t, "name is required", derr.Message)
}

// TestParseBookListQuery ensures pagination defaults and the rejection
// of non-numeric page or limit values.
func TestParseBookListQuery(t *testing.T) {
	testCases := []struct {
		name    string
		values  url.Values
		query   BookListQuery
		invalid bool
	}{
		{
			"defaults applied",
			url.Values{},
			BookListQuery{Page: 1, Limit: 10},
			false,
		},
		{
			"filters and pagination",
			url.Values{"genre": {"Fiction"}, "authorId": {"1"}, "page": {"3"}, "limit": {"5"}},
			BookListQuery{Genre: "Fiction", AuthorID: "1", Page: 3, Limit: 5},
			false,
		},
		{
			"non-numeric page",
			url.Values{"page": {"abc"}},
			BookListQuery{},
			true,
		},
		{
			"zero limit",
			url.Values{"limit": {"0"}},
			BookListQuery{},
			true,
		},
		{
			"negative page",
			url.Values{"page": {"-2"}},
			BookListQuery{},
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := ParseBookListQuery(tc.values)
			if tc.invalid {
				require.Error(t, err)
				derr, ok := err.(*DomainError)
				require.True(t, ok)
				assert.Equal(t, KindValidation, derr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.query, query)
		})
	}
}
