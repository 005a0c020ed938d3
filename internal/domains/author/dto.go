package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared/query"
)

// ListOptions is the query contract slice for author listings.
var ListOptions = query.Options{
	DefaultSort: "name",
	Allowed:     []string{"name", "age", "createdAt"},
}

type CreateRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Bio,
			validation.Length(0, 2000),
		),
	)
}

// UpdateRequest carries the allow-listed mutable fields. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
	Age  *int    `json:"age"`
}

func (r UpdateRequest) Validate() error {
	if r.Name == nil && r.Bio == nil && r.Age == nil {
		return ErrNoUpdatableFields
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name must not be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Bio,
			validation.Length(0, 2000),
		),
		validation.Field(&r.Age,
			validation.Min(0).Error("age must be between 0 and 150"),
			validation.Max(150).Error("age must be between 0 and 150"),
		),
	)
}
