// Package binding decodes JSON request bodies into typed DTOs. Unknown
// fields are rejected so arbitrary attributes can never reach the store.
package binding

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
)

var ErrEmptyArray = errors.New("an array of items is required")

// JSON decodes the request body into dst, failing on unknown fields.
func JSON(c *gin.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// JSONArray decodes the request body as a non-empty JSON array, deferring
// per-item decoding so one malformed item cannot fail the whole batch.
func JSONArray(c *gin.Context) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyArray
	}
	return items, nil
}

// Item decodes a single array element into dst, failing on unknown fields.
func Item(raw json.RawMessage, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
