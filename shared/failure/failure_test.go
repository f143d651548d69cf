package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		category failure.Category
		message  string
	}{
		{
			name:     "bad request",
			err:      failure.BadRequest(errors.New("unexpected EOF")),
			code:     http.StatusBadRequest,
			category: failure.CategoryValidation,
			message:  "unexpected EOF",
		},
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("update request cannot be empty"),
			code:     http.StatusBadRequest,
			category: failure.CategoryValidation,
			message:  "update request cannot be empty",
		},
		{
			name:     "capacity",
			err:      failure.Capacity("no deluxe rooms left for 2025-07-01 to 2025-07-04"),
			code:     http.StatusUnprocessableEntity,
			category: failure.CategoryCapacity,
			message:  "no deluxe rooms left for 2025-07-01 to 2025-07-04",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("Token has expired"),
			code:     http.StatusUnauthorized,
			category: failure.CategoryUnauthorized,
			message:  "Token has expired",
		},
		{
			name:     "forbidden",
			err:      failure.Forbidden("user account is deactivated"),
			code:     http.StatusForbidden,
			category: failure.CategoryForbidden,
			message:  "user account is deactivated",
		},
		{
			name:     "predefined forbidden",
			err:      failure.ForbiddenError,
			code:     http.StatusForbidden,
			category: failure.CategoryForbidden,
			message:  "You don't have the required permissions",
		},
		{
			name:     "not found",
			err:      failure.NotFound("reservation not found"),
			code:     http.StatusNotFound,
			category: failure.CategoryNotFound,
			message:  "reservation not found",
		},
		{
			name:     "conflict",
			err:      failure.Conflict("reservation is already cancelled"),
			code:     http.StatusConflict,
			category: failure.CategoryConflict,
			message:  "reservation is already cancelled",
		},
		{
			name:     "internal",
			err:      failure.InternalError(errors.New("connection reset")),
			code:     http.StatusInternalServerError,
			category: failure.CategoryInternal,
			message:  "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}

			if got := failure.GetCategory(tt.err); got != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, got)
			}

			if tt.err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.err.Error())
			}

			wrapped := fmt.Errorf("booking service: %w", tt.err)
			if failure.GetCode(wrapped) != tt.code || !failure.Is(wrapped, tt.category) {
				t.Error("classification must survive wrapping")
			}
		})
	}
}

func TestNilStaysNil(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("BadRequest(nil) should be nil")
	}

	if failure.InternalError(nil) != nil {
		t.Error("InternalError(nil) should be nil")
	}

	if failure.GetDetails(nil) != nil {
		t.Error("GetDetails(nil) should be nil")
	}
}

func TestValidation(t *testing.T) {
	err := failure.Validation("check_in is required", "guests must be less than or equal to 8")

	if err.Error() != "check_in is required; guests must be less than or equal to 8" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if details := failure.GetDetails(err); len(details) != 2 || details[1] != "guests must be less than or equal to 8" {
		t.Errorf("unexpected details %v", details)
	}

	if got := failure.GetDetails(failure.Validation()); len(got) != 1 || got[0] != "invalid request" {
		t.Errorf("expected a default detail, got %v", got)
	}
}

func TestUnclassified(t *testing.T) {
	err := errors.New("pq: deadlock detected")

	if failure.GetCode(err) != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", failure.GetCode(err))
	}

	if failure.GetCategory(err) != failure.CategoryInternal {
		t.Errorf("expected internal_error, got %s", failure.GetCategory(err))
	}

	if details := failure.GetDetails(err); len(details) != 1 || details[0] != err.Error() {
		t.Errorf("expected the raw message, got %v", details)
	}

	if failure.GetCategory(&failure.Failure{Code: http.StatusTeapot}) != failure.CategoryInternal {
		t.Error("a failure without a category counts as internal")
	}
}
