package book

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	minYear        = 1000
	maxTitleLen    = 100
	maxAuthorLen   = 100
	maxGenreLen    = 50
	fieldBody      = "body"
	emptyUpdateMsg = "at least one field must be provided for update"
)

// FieldError describes one violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Validator checks create, update and output records. Each field has its
// own check; the schema methods compose them and collect every failure.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator returns a Validator that reads the current year from the
// system clock.
func NewValidator() *Validator {
	return NewValidatorWithClock(time.Now)
}

// NewValidatorWithClock returns a Validator using now for the year bound.
func NewValidatorWithClock(now func() time.Time) *Validator {
	return &Validator{validate: validator.New(), now: now}
}

// Create validates a create body.
func (v *Validator) Create(in CreateInput) error {
	var errs []FieldError
	errs = v.checkTitle(errs, in.Title)
	errs = v.checkAuthor(errs, in.Author)
	errs = v.checkYear(errs, in.Year)
	errs = v.checkGenre(errs, in.Genre)
	errs = v.checkDescription(errs, in.Description)
	return result(errs)
}

// Update validates a partial update body. Absent fields are skipped, but
// at least one field must be present.
func (v *Validator) Update(in UpdateInput) error {
	if in.Empty() {
		return &ValidationError{Fields: []FieldError{{Field: fieldBody, Message: emptyUpdateMsg}}}
	}
	var errs []FieldError
	if in.Title != nil {
		errs = v.checkTitle(errs, *in.Title)
	}
	if in.Author != nil {
		errs = v.checkAuthor(errs, *in.Author)
	}
	if in.Year != nil {
		errs = v.checkYear(errs, *in.Year)
	}
	if in.Genre != nil {
		errs = v.checkGenre(errs, *in.Genre)
	}
	if in.Description != nil {
		errs = v.checkDescription(errs, *in.Description)
	}
	return result(errs)
}

// Book validates a stored record, including its id.
func (v *Validator) Book(b Book) error {
	var errs []FieldError
	errs = v.check(errs, "id", b.ID, "gte=1")
	errs = v.checkTitle(errs, b.Title)
	errs = v.checkAuthor(errs, b.Author)
	errs = v.checkYear(errs, b.Year)
	errs = v.checkGenre(errs, b.Genre)
	errs = v.checkDescription(errs, b.Description)
	return result(errs)
}

func (v *Validator) checkTitle(errs []FieldError, title string) []FieldError {
	return v.check(errs, "title", title, fmt.Sprintf("min=1,max=%d", maxTitleLen))
}

func (v *Validator) checkAuthor(errs []FieldError, author string) []FieldError {
	return v.check(errs, "author", author, fmt.Sprintf("min=1,max=%d", maxAuthorLen))
}

func (v *Validator) checkYear(errs []FieldError, year int) []FieldError {
	return v.check(errs, "year", year, fmt.Sprintf("gte=%d,lte=%d", minYear, v.now().Year()))
}

func (v *Validator) checkGenre(errs []FieldError, genre string) []FieldError {
	return v.check(errs, "genre", genre, fmt.Sprintf("min=1,max=%d", maxGenreLen))
}

func (v *Validator) checkDescription(errs []FieldError, description string) []FieldError {
	return v.check(errs, "description", description, "min=1")
}

func (v *Validator) check(errs []FieldError, field string, value any, tag string) []FieldError {
	err := v.validate.Var(value, tag)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return append(errs, FieldError{Field: field, Message: field + " is invalid"})
	}
	return append(errs, FieldError{Field: field, Message: message(field, verrs[0])})
}

func message(field string, fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "min":
		if param == "1" {
			return fmt.Sprintf("%s must not be empty", field)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func result(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
