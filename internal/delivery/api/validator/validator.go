// Package validator checks request payloads per endpoint.
package validator

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"faceauth/internal/domain/entity"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/errors"

	"github.com/go-playground/validator/v10"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	FirstName       string                      `json:"firstName" validate:"required,max=100"`
	LastName        string                      `json:"lastName" validate:"required,max=100"`
	Email           string                      `json:"email" validate:"required,email,max=255"`
	Password        string                      `json:"password" validate:"required,max=72,maxbytes=72"`
	ConfirmPassword string                      `json:"confirmPassword" validate:"required,eqfield=Password"`
	FaceDescriptors []entity.LabeledDescriptors `json:"faceDescriptors,omitempty" validate:"omitempty,max=16,descriptors"`
}

// LoginRequest is the body of POST /login. Either a password or a face payload is required.
type LoginRequest struct {
	Email          string `json:"email" validate:"required,email,max=255"`
	Password       string `json:"password" validate:"required_without=FaceDescriptor,max=72,maxbytes=72"`
	FaceDescriptor string `json:"faceDescriptor"`
}

// CheckRequest is the body of POST /check.
type CheckRequest struct {
	Email          string `json:"email" validate:"required,email,max=255"`
	FaceDescriptor string `json:"faceDescriptor" validate:"required"`
}

// Result is the outcome of validating one request.
type Result struct {
	Errors   map[string]string
	Fields   []string // field names in the order their errors were found
	NotValid bool
}

// First returns the message of the first error found, or an empty string.
func (r Result) First() string {
	if len(r.Fields) == 0 {
		return ""
	}

	return r.Errors[r.Fields[0]]
}

// Err converts an invalid result into a validation error answered with httpCode.
func (r Result) Err(httpCode int) error {
	if !r.NotValid {
		return nil
	}

	return domainerrors.NewValidationError(httpCode, r.First(), r.Errors)
}

var fieldLabels = map[string]string{
	"firstName":       "First name",
	"lastName":        "Last name",
	"email":           "Email",
	"password":        "Password",
	"confirmPassword": "Confirm password",
	"faceDescriptors": "Face descriptors",
	"faceDescriptor":  "Face",
}

//nolint:gochecknoglobals
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	mustRegister(v, "maxbytes", maxBytes)
	mustRegister(v, "descriptors", wellFormedDescriptors)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// maxBytes bounds the UTF-8 length of a string; bcrypt reads at most 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

// wellFormedDescriptors requires every entry to carry a label and at least one
// non-empty descriptor, with one dimension across the whole set.
func wellFormedDescriptors(fl validator.FieldLevel) bool {
	labeled, ok := fl.Field().Interface().([]entity.LabeledDescriptors)
	if !ok {
		return false
	}

	dimension := 0
	for _, entry := range labeled {
		if strings.TrimSpace(entry.Label) == "" || len(entry.Descriptors) == 0 {
			return false
		}
		for _, descriptor := range entry.Descriptors {
			if len(descriptor) == 0 || (dimension != 0 && len(descriptor) != dimension) {
				return false
			}
			dimension = len(descriptor)
		}
	}

	return true
}

// ValidateRegistration checks a registration request.
func ValidateRegistration(req *RegisterRequest) Result {
	return check(req)
}

// ValidateLogin checks a login request.
func ValidateLogin(req *LoginRequest) Result {
	return check(req)
}

// ValidateCheck checks a face check request.
func ValidateCheck(req *CheckRequest) Result {
	return check(req)
}

func check(req any) Result {
	result := Result{Errors: map[string]string{}}

	err := validate.Struct(req)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.NotValid = true
		result.Errors["body"] = "Invalid request."
		result.Fields = append(result.Fields, "body")

		return result
	}

	for _, fieldErr := range fieldErrs {
		field := fieldErr.Field()
		if _, seen := result.Errors[field]; seen {
			continue
		}
		result.Errors[field] = message(fieldErr)
		result.Fields = append(result.Fields, field)
	}
	result.NotValid = len(result.Fields) > 0

	return result
}

func message(fieldErr validator.FieldError) string {
	label, ok := fieldLabels[fieldErr.Field()]
	if !ok {
		label = fieldErr.Field()
	}

	switch fieldErr.Tag() {
	case "required", "required_without":
		return label + " field is required"
	case "email":
		return "Email is invalid"
	case "eqfield":
		return "Passwords must match"
	case "max":
		if fieldErr.Kind() == reflect.Slice {
			return label + " must contain at most " + fieldErr.Param() + " entries"
		}

		return label + " must be at most " + fieldErr.Param() + " characters"
	case "maxbytes":
		return label + " must be at most " + fieldErr.Param() + " bytes"
	case "descriptors":
		return "Face descriptors need a label and vectors of one size"
	default:
		return label + " is invalid"
	}
}

// EchoValidator adapts the endpoint validators to echo.Validator.
type EchoValidator struct{}

// New returns the validator installed on the echo server.
func New() *EchoValidator {
	return &EchoValidator{}
}

// Validate implements echo.Validator. Failures are 400 validation errors.
func (v *EchoValidator) Validate(i any) error {
	return check(i).Err(http.StatusBadRequest)
}
