package validation

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinNameLength     = 20
	MaxNameLength     = 60
	MinPasswordLength = 8
	MaxPasswordLength = 16
	MaxAddressLength  = 400
	MaxStoreNameLen   = 60
	MinRating         = 1
	MaxRating         = 5

	// SpecialCharacters is the set a password must draw at least one character from.
	SpecialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
)

// Error describes one rejected field.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is the full set of violations found for one request.
type Errors []*Error

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, item := range e {
		parts = append(parts, item.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Collect drops nil results and returns nil when nothing failed.
func Collect(results ...*Error) error {
	var out Errors
	for _, item := range results {
		if item != nil {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func Email(field string, value string) *Error {
	value = strings.TrimSpace(value)
	if value == "" {
		return &Error{Field: field, Message: "email is required"}
	}
	if !emailPattern.MatchString(value) {
		return &Error{Field: field, Message: "please enter a valid email address"}
	}
	return nil
}

func Password(field string, value string) *Error {
	length := utf8.RuneCountInString(value)
	switch {
	case value == "":
		return &Error{Field: field, Message: "password is required"}
	case length < MinPasswordLength:
		return &Error{Field: field, Message: "password must be at least 8 characters"}
	case length > MaxPasswordLength:
		return &Error{Field: field, Message: "password must not exceed 16 characters"}
	case !upperPattern.MatchString(value):
		return &Error{Field: field, Message: "password must contain at least one uppercase letter"}
	case !strings.ContainsAny(value, SpecialCharacters):
		return &Error{Field: field, Message: "password must contain at least one special character"}
	}
	return nil
}

func Name(field string, value string) *Error {
	length := utf8.RuneCountInString(value)
	switch {
	case strings.TrimSpace(value) == "":
		return &Error{Field: field, Message: "name is required"}
	case length < MinNameLength:
		return &Error{Field: field, Message: "name must be at least 20 characters"}
	case length > MaxNameLength:
		return &Error{Field: field, Message: "name must not exceed 60 characters"}
	case !namePattern.MatchString(value):
		return &Error{Field: field, Message: "name can only contain letters and spaces"}
	}
	return nil
}

// Address accepts an empty value; required addresses use RequiredAddress.
func Address(field string, value string) *Error {
	if utf8.RuneCountInString(value) > MaxAddressLength {
		return &Error{Field: field, Message: "address must not exceed 400 characters"}
	}
	return nil
}

func RequiredAddress(field string, value string) *Error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: field, Message: "address is required"}
	}
	return Address(field, value)
}

func StoreName(field string, value string) *Error {
	value = strings.TrimSpace(value)
	if value == "" {
		return &Error{Field: field, Message: "store name is required"}
	}
	if utf8.RuneCountInString(value) > MaxStoreNameLen {
		return &Error{Field: field, Message: "store name must not exceed 60 characters"}
	}
	return nil
}

// RatingValue checks a decoded JSON number and returns it as an int.
func RatingValue(field string, value *float64) (int, *Error) {
	if value == nil {
		return 0, &Error{Field: field, Message: "rating is required"}
	}
	v := *value
	if math.IsNaN(v) || math.Trunc(v) != v || v < MinRating || v > MaxRating {
		return 0, &Error{Field: field, Message: "rating must be an integer between 1 and 5"}
	}
	return int(v), nil
}

func ID(field string, value string) *Error {
	if _, err := uuid.Parse(strings.TrimSpace(value)); err != nil {
		return &Error{Field: field, Message: "must be a valid id"}
	}
	return nil
}

func Required(field string, value string) *Error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: field, Message: field + " is required"}
	}
	return nil
}
