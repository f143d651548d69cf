package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("SERVER_ENV", constant.ServerEnvProduction)

	os.Exit(m.Run())
}

type errorBody struct {
	Error    string   `json:"error"`
	Category string   `json:"category"`
	Errors   []string `json:"errors"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"confirmation_code": "CC4M9Q2X7K"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
	assert.JSONEq(t, `{"data":{"confirmation_code":"CC4M9Q2X7K"}}`, rec.Body.String())
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"`+constant.ResponseErrorRequestLimitExceeded+`"}`, rec.Body.String())
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		message  string
		category string
		errors   []string
	}{
		{
			name:     "single validation detail",
			err:      failure.Validation("check_out must be after check_in"),
			code:     http.StatusBadRequest,
			message:  "check_out must be after check_in",
			category: string(failure.CategoryValidation),
		},
		{
			name:     "every validation detail is listed",
			err:      failure.Validation("email is required", "guest_count must be at least 1"),
			code:     http.StatusBadRequest,
			message:  "email is required; guest_count must be at least 1",
			category: string(failure.CategoryValidation),
			errors:   []string{"email is required", "guest_count must be at least 1"},
		},
		{
			name:     "capacity",
			err:      failure.Capacity("no deluxe rooms left for these dates"),
			code:     http.StatusUnprocessableEntity,
			message:  "no deluxe rooms left for these dates",
			category: string(failure.CategoryCapacity),
		},
		{
			name:     "unclassified errors are masked",
			err:      errors.New("pq: connection refused"),
			code:     http.StatusInternalServerError,
			message:  constant.ResponseErrorInternal,
			category: string(failure.CategoryInternal),
		},
		{
			name:     "internal failures are masked",
			err:      failure.InternalError(errors.New("redis: timeout")),
			code:     http.StatusInternalServerError,
			message:  constant.ResponseErrorInternal,
			category: string(failure.CategoryInternal),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)

			body := decode[errorBody](t, rec)
			assert.Equal(t, tt.message, body.Error)
			assert.Equal(t, tt.category, body.Category)
			assert.Equal(t, tt.errors, body.Errors)
		})
	}
}
