package failure

import (
	"errors"
	"net/http"
	"strings"
)

// Category is a stable, machine readable classification of a Failure. Clients branch on it
// rather than on the message.
type Category string

const (
	CategoryValidation   Category = "validation_error"
	CategoryCapacity     Category = "capacity_error"
	CategoryNotFound     Category = "not_found"
	CategoryConflict     Category = "conflict"
	CategoryUnauthorized Category = "unauthorized"
	CategoryForbidden    Category = "forbidden"
	CategoryInternal     Category = "internal_error"
)

// Failure is an error that knows its HTTP status and category.
type Failure struct {
	Code     int      `json:"code"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
}

var ForbiddenError = newFailure(http.StatusForbidden, CategoryForbidden, "You don't have the required permissions")

func newFailure(code int, category Category, msg string) *Failure {
	return &Failure{Code: code, Category: category, Message: msg}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest classifies a decoding or parsing error as a validation failure. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, CategoryValidation, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, CategoryValidation, msg)
}

// Validation carries every reason the input was rejected. The message joins all details so
// callers that only read Error() still see them.
func Validation(details ...string) error {
	if len(details) == 0 {
		details = []string{"invalid request"}
	}

	fail := newFailure(http.StatusBadRequest, CategoryValidation, strings.Join(details, "; "))
	fail.Details = details

	return fail
}

// Capacity rejects a well formed request that cannot be served for lack of inventory.
func Capacity(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, CategoryCapacity, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, CategoryUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, CategoryForbidden, msg)
}

func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, CategoryNotFound, msg)
}

// Conflict reports a request that lost against the current state, such as a room taken
// between quote and write.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, CategoryConflict, msg)
}

// InternalError marks err as a server fault. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, CategoryInternal, err.Error())
}

func as(err error) (*Failure, bool) {
	var fail *Failure

	return fail, errors.As(err, &fail)
}

// GetCode returns the HTTP status of err, 500 for anything unclassified.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetCategory returns the category of err, internal_error for anything unclassified.
func GetCategory(err error) Category {
	if fail, ok := as(err); ok && fail.Category != "" {
		return fail.Category
	}

	return CategoryInternal
}

// GetDetails returns the detail messages of err, or its message when there are none.
func GetDetails(err error) []string {
	if err == nil {
		return nil
	}

	fail, ok := as(err)

	switch {
	case !ok:
		return []string{err.Error()}
	case len(fail.Details) > 0:
		return fail.Details
	default:
		return []string{fail.Message}
	}
}

func Is(err error, category Category) bool {
	return GetCategory(err) == category
}
