package book

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidID    = errors.New("valid book id required")

	// ErrAuthorRefNotFound signals a referential-integrity failure: the
	// submitted authorId is well-formed but resolves to no live author.
	// Distinct from a validation error so callers can answer 400 with a
	// dedicated error name instead of a generic 500.
	ErrAuthorRefNotFound = errors.New("author id doesn't exist")

	ErrNoUpdatableFields = errors.New("no data provided for update")
	ErrNoInsertableBooks = errors.New("no valid books to insert")
)
