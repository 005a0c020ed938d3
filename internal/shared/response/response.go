package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns, success or failure.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Error never carries stack traces or store internals in Details.
type Error struct {
	Name    string      `json:"name"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Meta describes the page a listing endpoint returned.
type Meta struct {
	Skip    int   `json:"skip"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
}

const (
	NameValidationError           = "ValidationError"
	NameNotFoundError             = "NotFoundError"
	NameReferentialIntegrityError = "ReferentialIntegrityError"
	NameRateLimitError            = "RateLimitError"
	NameInternalError             = "InternalError"
)

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, message string, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, name, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Error: &Error{
			Name:    name,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, name, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Error: &Error{
			Name:    name,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, NameValidationError, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, NameNotFoundError, message)
}

func TooManyRequests(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusTooManyRequests, NameRateLimitError, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, NameInternalError, message)
}
