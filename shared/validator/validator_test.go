package validator_test

import (
	"bytes"
	"errors"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
)

type guestRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	CheckIn   string `json:"check_in"  validate:"required,isodate"`
	CheckOut  string `json:"check_out" validate:"required,isodate,nefield=CheckIn"`
	RoomType  string `json:"room_type" validate:"required,roomtype"`
	Guests    int    `json:"guests"    validate:"gte=1,lte=8"`
	Source    string `json:"source"    validate:"omitempty,oneof=guest staff"`
	Reference string `json:"-"         validate:"empty"`
}

func validGuest() guestRequest {
	return guestRequest{
		Email:    "ada@example.com",
		CheckIn:  "2025-07-01",
		CheckOut: "2025-07-04",
		RoomType: "ocean-view",
		Guests:   2,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *guestRequest)
		message string
	}{
		{name: "valid", mutate: func(*guestRequest) {}},
		{name: "missing email", mutate: func(r *guestRequest) { r.Email = "" }, message: "email is required"},
		{name: "bad email", mutate: func(r *guestRequest) { r.Email = "ada" }, message: "email must be a valid email address"},
		{name: "not a date", mutate: func(r *guestRequest) { r.CheckIn = "07/01/2025" }, message: "check_in must be a date in YYYY-MM-DD format"},
		{name: "impossible date", mutate: func(r *guestRequest) { r.CheckOut = "2025-02-30" }, message: "check_out must be a date in YYYY-MM-DD format"},
		{name: "same day", mutate: func(r *guestRequest) { r.CheckOut = r.CheckIn }, message: "check_out must differ from CheckIn"},
		{name: "upper case room", mutate: func(r *guestRequest) { r.RoomType = "Ocean_View" }, message: "room_type must be a lowercase room type code"},
		{name: "too many guests", mutate: func(r *guestRequest) { r.Guests = 9 }, message: "guests must be less than or equal to 8"},
		{name: "unknown source", mutate: func(r *guestRequest) { r.Source = "ota" }, message: "source must be one of guest staff"},
		{name: "client supplied reference", mutate: func(r *guestRequest) { r.Reference = "X" }, message: "Reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validGuest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.message == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				return
			}

			if failure.GetCategory(err) != failure.CategoryValidation {
				t.Fatalf("expected a validation failure, got %v", err)
			}

			details := strings.Join(failure.GetDetails(err), "; ")
			if !strings.Contains(details, tt.message) {
				t.Errorf("expected %q in %q", tt.message, details)
			}
		})
	}
}

func TestValidateStruct_ReportsEveryField(t *testing.T) {
	req := guestRequest{Guests: 0}

	err := validator.ValidateStruct(&req)
	if got := len(failure.GetDetails(err)); got != 5 {
		t.Errorf("expected 5 violations, got %d: %v", got, failure.GetDetails(err))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		decodeErr bool
		ruleErr   bool
	}{
		{
			name: "valid body",
			body: `{"email":"ada@example.com","check_in":"2025-07-01","check_out":"2025-07-04","room_type":"standard","guests":1}`,
		},
		{name: "malformed json", body: `{"email":`, decodeErr: true},
		{name: "wrong type", body: `{"guests":"two"}`, decodeErr: true},
		{name: "oversized body", body: `{"email":"` + strings.Repeat("a", 2<<20) + `"}`, decodeErr: true},
		{name: "rule violation", body: `{"email":"ada@example.com"}`, ruleErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req guestRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			switch {
			case tt.decodeErr:
				if err == nil || !strings.Contains(err.Error(), "failed to decode request body") {
					t.Errorf("expected a decode failure, got %v", err)
				}
			case tt.ruleErr:
				if len(failure.GetDetails(err)) < 2 {
					t.Errorf("expected one detail per violated field, got %v", failure.GetDetails(err))
				}
			case err != nil:
				t.Errorf("unexpected error: %v", err)
			}

			if err != nil && failure.GetCode(err) != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", failure.GetCode(err))
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("deluxe-suite", "roomtype"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := validator.ValidateVar("2025-13-01", "isodate")
	if failure.GetCategory(err) != failure.CategoryValidation {
		t.Errorf("expected a validation failure, got %v", err)
	}

	var f *failure.Failure
	if !errors.As(err, &f) {
		t.Fatalf("expected *failure.Failure, got %T", err)
	}
}

type imageRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func fileHeader(t *testing.T, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="room.png"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = part.Write(content); err != nil {
		t.Fatal(err)
	}

	if err = writer.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/v1/rooms/deluxe/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if err = req.ParseMultipartForm(4 << 20); err != nil {
		t.Fatal(err)
	}

	return req.MultipartForm.File["image"][0]
}

func TestImageUpload(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	tests := []struct {
		name        string
		contentType string
		content     []byte
		valid       bool
	}{
		{name: "png", contentType: "image/png", content: png, valid: true},
		{name: "declared gif", contentType: "image/gif", content: png},
		{name: "script posing as png", contentType: "image/png", content: []byte("#!/bin/sh\necho pwned\n")},
		{name: "too large", contentType: "image/png", content: append(png, make([]byte, 2<<20)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := imageRequest{Image: fileHeader(t, tt.contentType, tt.content)}

			err := validator.ValidateStruct(&req)
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.valid && err == nil {
				t.Error("expected the upload to be rejected")
			}
		})
	}
}
