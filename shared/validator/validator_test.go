package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"mehfil/shared/constant"
	"mehfil/shared/validator"
)

type bookingForm struct {
	ExperienceID string `validate:"required,uuid4"            json:"experience_id"`
	FirstName    string `validate:"required,max=100"          json:"first_name"`
	Email        string `validate:"required,email"            json:"email"`
	Age          int    `validate:"required,gte=1,lte=120"    json:"age"`
	Gender       string `validate:"required,oneof=Male Female Other" json:"gender"`
}

func validBookingForm() bookingForm {
	return bookingForm{
		ExperienceID: "550e8400-e29b-41d4-a716-446655440000",
		FirstName:    "Asha",
		Email:        "asha@example.com",
		Age:          27,
		Gender:       "Female",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*bookingForm)
		expectError bool
	}{
		{
			name:        "valid form",
			mutate:      func(*bookingForm) {},
			expectError: false,
		},
		{
			name:        "missing required field",
			mutate:      func(f *bookingForm) { f.FirstName = "" },
			expectError: true,
		},
		{
			name:        "malformed experience id",
			mutate:      func(f *bookingForm) { f.ExperienceID = "not-a-uuid" },
			expectError: true,
		},
		{
			name:        "invalid email",
			mutate:      func(f *bookingForm) { f.Email = "not-an-email" },
			expectError: true,
		},
		{
			name:        "age out of range",
			mutate:      func(f *bookingForm) { f.Age = 150 },
			expectError: true,
		},
		{
			name:        "gender outside the allowed set",
			mutate:      func(f *bookingForm) { f.Gender = "Unknown" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validBookingForm()
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "required string present",
			field:       "Ghazal Evening",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "required string empty",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid rating",
			field:       "Excellent",
			tag:         "oneof=Excellent Good Average Poor",
			expectError: false,
		},
		{
			name:        "invalid rating",
			field:       "Amazing",
			tag:         "oneof=Excellent Good Average Poor",
			expectError: true,
		},
		{
			name:        "fee within range",
			field:       499,
			tag:         "gte=0",
			expectError: false,
		},
		{
			name:        "negative fee",
			field:       -1,
			tag:         "gte=0",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid body",
			jsonBody:    `{"experience_id":"550e8400-e29b-41d4-a716-446655440000","first_name":"Asha","email":"asha@example.com","age":27,"gender":"Female"}`,
			expectError: false,
		},
		{
			name:        "body failing validation",
			jsonBody:    `{"experience_id":"550e8400-e29b-41d4-a716-446655440000","first_name":"Asha","email":"nope","age":27,"gender":"Female"}`,
			expectError: true,
		},
		{
			name:        "malformed json",
			jsonBody:    `{"first_name":}`,
			expectError: true,
		},
		{
			name:        "empty body",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form bookingForm
			err := validator.Validate(strings.NewReader(tt.jsonBody), &form)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

type uploadForm struct {
	Image multipart.FileHeader `validate:"mimetypes=image/png image/jpeg,maxfilesize=5"`
}

func newImageHeader(contentType string, size int64) multipart.FileHeader {
	header := multipart.FileHeader{
		Filename: "poster.png",
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	header.Header.Set(constant.RequestHeaderContentType, contentType)

	return header
}

func TestFileUploadValidators(t *testing.T) {
	tests := []struct {
		name        string
		header      multipart.FileHeader
		expectError bool
	}{
		{
			name:        "allowed mimetype within size",
			header:      newImageHeader("image/png", 1024),
			expectError: false,
		},
		{
			name:        "disallowed mimetype",
			header:      newImageHeader("application/pdf", 1024),
			expectError: true,
		},
		{
			name:        "file larger than the limit",
			header:      newImageHeader("image/png", 6*1024*1024),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := uploadForm{Image: tt.header}
			err := validator.ValidateStruct(&form)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessageIsDescriptive(t *testing.T) {
	form := bookingForm{}

	err := validator.ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected validation error for empty form")
	}

	if !strings.Contains(err.Error(), "required") {
		t.Errorf("expected error message to mention 'required', got: %s", err.Error())
	}
}
