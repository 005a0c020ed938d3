package book

import (
	"encoding/json"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/shared/binding"
	"library-backend/internal/shared/query"
)

// ListOptions is the query contract slice for book listings.
var ListOptions = query.Options{
	DefaultSort: "createdAt",
	Allowed:     []string{"createdAt", "title", "year"},
}

type CreateRequest struct {
	Title    string   `json:"title"`
	AuthorID string   `json:"authorId"`
	Year     *int     `json:"year"`
	Summary  string   `json:"summary"`
	Genres   []string `json:"genres"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("valid author id required"),
			validation.By(objectIDHex),
		),
		validation.Field(&r.Year,
			validation.Min(1000).Error("year must be between 1000 and the current year"),
			validation.Max(time.Now().Year()).Error("year must be between 1000 and the current year"),
		),
		validation.Field(&r.Genres,
			validation.Each(validation.Length(1, 100)),
		),
	)
}

// Document converts a validated request into the persisted shape.
func (r CreateRequest) Document(now time.Time) Book {
	authorID, _ := primitive.ObjectIDFromHex(r.AuthorID)
	return Book{
		Title:     r.Title,
		AuthorID:  authorID,
		Year:      r.Year,
		Summary:   r.Summary,
		Genres:    r.Genres,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateRequest carries the allow-listed mutable fields. Pointer fields
// distinguish "absent" from "set to zero value". A changed authorId is
// re-validated against author existence before the merge.
type UpdateRequest struct {
	Title    *string   `json:"title"`
	Summary  *string   `json:"summary"`
	Year     *int      `json:"year"`
	Genres   *[]string `json:"genres"`
	AuthorID *string   `json:"authorId"`
}

func (r UpdateRequest) Validate() error {
	if r.Title == nil && r.Summary == nil && r.Year == nil && r.Genres == nil && r.AuthorID == nil {
		return ErrNoUpdatableFields
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Year,
			validation.Min(1000).Error("year must be between 1000 and the current year"),
			validation.Max(time.Now().Year()).Error("year must be between 1000 and the current year"),
		),
		validation.Field(&r.AuthorID,
			validation.NilOrNotEmpty.Error("valid author id required"),
			validation.By(objectIDHex),
		),
	)
}

const codeObjectID = "validation_object_id"

// ValidationMessage picks the envelope message for a failed create or
// update request. An authorId that is present but not a valid hex id gets
// its own message; every other failure (missing fields, bad lengths)
// answers with the generic one.
func ValidationMessage(err error) string {
	var errs validation.Errors
	if errors.As(err, &errs) {
		if fieldErr, ok := errs["authorId"]; ok {
			var e validation.ErrorObject
			if errors.As(fieldErr, &e) && e.Code() == codeObjectID {
				return e.Error()
			}
		}
	}
	return "all required fields are needed"
}

func objectIDHex(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	if !primitive.IsValidObjectID(s) {
		return validation.NewError(codeObjectID, "valid author id required")
	}
	return nil
}

// ItemError records a bulk item that never reached the store because its
// basic shape was invalid.
type ItemError struct {
	Index    int    `json:"index"`
	Title    string `json:"title,omitempty"`
	AuthorID string `json:"authorId,omitempty"`
	Reason   string `json:"reason"`
}

// SkippedBook records a structurally valid bulk item whose author did not
// resolve to a live document.
type SkippedBook struct {
	Title    string `json:"title"`
	AuthorID string `json:"authorId"`
	Reason   string `json:"reason"`
}

// BulkResult reports the three outcome buckets of a bulk insert. They are
// populated independently and never merged; the item counts sum to the
// request size.
type BulkResult struct {
	InsertedCount    int           `json:"insertedCount"`
	InsertedBooks    []Book        `json:"insertedBooks"`
	SkippedBooks     []SkippedBook `json:"skippedDueToInvalidAuthors"`
	ValidationErrors []ItemError   `json:"validationErrors"`
}

// ParseBulk decodes and shape-checks every bulk item up front. Failures
// accumulate as validation errors instead of aborting the batch, and the
// surviving requests keep their original order.
func ParseBulk(items []json.RawMessage) ([]CreateRequest, []ItemError) {
	valid := make([]CreateRequest, 0, len(items))
	itemErrors := []ItemError{}

	for i, raw := range items {
		var req CreateRequest
		if err := binding.Item(raw, &req); err != nil {
			itemErrors = append(itemErrors, ItemError{
				Index:  i,
				Reason: "missing or invalid required fields",
			})
			continue
		}

		if err := req.Validate(); err != nil {
			itemErrors = append(itemErrors, ItemError{
				Index:    i,
				Title:    req.Title,
				AuthorID: req.AuthorID,
				Reason:   "missing or invalid required fields",
			})
			continue
		}

		valid = append(valid, req)
	}

	return valid, itemErrors
}
