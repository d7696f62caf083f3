package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var personNamePattern = regexp.MustCompile(`^[\p{L} '\-]+$`)

type CustomValidator struct {
	validator *validator.Validate
	now       func() time.Time
}

func NewValidator() *CustomValidator {
	return NewValidatorWithClock(time.Now)
}

// NewValidatorWithClock builds a validator whose notion of "today" comes from now.
func NewValidatorWithClock(now func() time.Time) *CustomValidator {
	cv := &CustomValidator{
		validator: validator.New(validator.WithRequiredStructEnabled()),
		now:       now,
	}

	cv.validator.RegisterTagNameFunc(jsonFieldName)
	cv.mustRegister("personname", validatePersonName)
	cv.mustRegister("lastname", validateLastName)
	cv.mustRegister("notfuture", cv.validateNotFuture)

	return cv
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidateField validates i and reports the message for a single field only.
// ok is true when that field has no violation.
func (cv *CustomValidator) ValidateField(i interface{}, field string) (message string, ok bool) {
	err := cv.Validate(i)
	if err == nil {
		return "", true
	}
	message, found := cv.FormatValidationErrors(err)[field]
	return message, !found
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fieldErrors
	}

	for _, e := range validationErrors {
		field := e.Field()
		if _, seen := fieldErrors[field]; seen {
			continue
		}
		switch e.Tag() {
		case "required":
			fieldErrors[field] = field + " is required"
		case "email":
			fieldErrors[field] = field + " must be a valid email address"
		case "min":
			fieldErrors[field] = field + " must be at least " + e.Param() + " characters"
		case "max":
			fieldErrors[field] = field + " must be at most " + e.Param() + " characters"
		case "gt":
			fieldErrors[field] = field + " must be greater than " + e.Param()
		case "gte":
			fieldErrors[field] = field + " must be greater than or equal to " + e.Param()
		case "lte":
			fieldErrors[field] = field + " must be less than or equal to " + e.Param()
		case "oneof":
			fieldErrors[field] = field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
		case "datetime":
			fieldErrors[field] = field + " must be a valid date (YYYY-MM-DD)"
		case "personname":
			fieldErrors[field] = field + " may only contain letters, spaces, hyphens and single quotes"
		case "lastname":
			if value, ok := e.Value().(string); ok {
				if ruleErr := CheckLastName(value); ruleErr != nil {
					fieldErrors[field] = ruleErr.Error()
					continue
				}
			}
			fieldErrors[field] = field + " is invalid"
		case "notfuture":
			fieldErrors[field] = ErrDateOfBirthInFuture.Error()
		default:
			fieldErrors[field] = field + " is invalid"
		}
	}

	return fieldErrors
}

// IsDateInFuture reports whether date falls after today, both taken at local midnight.
func (cv *CustomValidator) IsDateInFuture(date time.Time) bool {
	now := cv.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return day.After(today)
}

func (cv *CustomValidator) validateNotFuture(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	date, err := time.ParseInLocation(dateLayout, value, cv.now().Location())
	if err != nil {
		// format errors are reported by the datetime tag
		return true
	}
	return !cv.IsDateInFuture(date)
}

func (cv *CustomValidator) mustRegister(tag string, fn validator.Func) {
	if err := cv.validator.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func validatePersonName(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || personNamePattern.MatchString(value)
}

func validateLastName(fl validator.FieldLevel) bool {
	return CheckLastName(fl.Field().String()) == nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
