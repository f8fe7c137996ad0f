package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles request and business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates a struct against its validate tags
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := bv.validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: bv.getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// ValidateRegister validates self-registration requests, including the
// role/profile coherence rules that tags cannot express.
func (bv *BusinessValidator) ValidateRegister(req *RegisterUserRequest) ValidationErrors {
	errors := bv.Validate(req)

	switch req.Role {
	case "teacher":
		if req.Student != nil {
			errors = append(errors, ValidationError{
				Field:   "student",
				Message: "must be empty when registering a teacher",
				Rule:    "business_logic",
			})
		}
	case "student":
		if req.Teacher != nil {
			errors = append(errors, ValidationError{
				Field:   "teacher",
				Message: "must be empty when registering a student",
				Rule:    "business_logic",
			})
		}
		if req.Student == nil {
			errors = append(errors, ValidationError{
				Field:   "student",
				Message: "is required when registering a student",
				Rule:    "business_logic",
			})
		}
	}

	return errors
}

// registerBusinessRules registers custom account rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Username: 1-150 chars, letters, digits and @ . + - _ only
	bv.validate.RegisterValidation("account_username", func(fl validator.FieldLevel) bool {
		username := fl.Field().String()
		if len(username) < 1 || len(username) > 150 {
			return false
		}
		return usernameRe.MatchString(username)
	})

	// Password: at least 8 chars with at least one letter and one digit
	bv.validate.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		if len(password) < 8 || len(password) > 128 {
			return false
		}
		hasLetter, hasDigit := false, false
		for _, r := range password {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasLetter && hasDigit
	})

	// Phone: digits with optional leading +, 7-15 digits
	bv.validate.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		phone := strings.TrimSpace(fl.Field().String())
		return phoneRe.MatchString(phone)
	})
}

// getErrorMessage returns user-friendly error messages
func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "datetime":
		return fmt.Sprintf("must match format %s", err.Param())
	case "account_username":
		return "must be 1-150 characters using letters, digits and @/./+/-/_ only"
	case "password_strength":
		return "must be at least 8 characters with at least one letter and one digit"
	case "phone_number":
		return "must be 7-15 digits with an optional leading +"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
