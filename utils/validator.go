package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"admission-portal/apperrors"

	"github.com/go-playground/validator/v10"
)

var (
	validate     = newValidator()
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	RegisterCustomValidations(v)
	return v
}

// RegisterCustomValidations registers custom validation rules
func RegisterCustomValidations(v *validator.Validate) {
	v.RegisterValidation("phone", validatePhone)
}

func validatePhone(fl validator.FieldLevel) bool {
	return ValidatePhoneNumber(fl.Field().String())
}

// ValidatePhoneNumber accepts 7 to 15 digits with an optional leading +.
func ValidatePhoneNumber(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// ValidateStruct runs the validate tags of s and returns a Validation error
// listing every failing field.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return apperrors.NewValidation(apperrors.ErrValidation.Reason, TranslateValidationError(err))
	}
	return nil
}

func TranslateValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		var messages []string
		for _, fe := range ve {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				messages = append(messages, field+" is required")
			case "email":
				messages = append(messages, "invalid email format")
			case "phone":
				messages = append(messages, field+" must be a phone number of 7 to 15 digits")
			case "min":
				messages = append(messages, field+" must be at least "+fe.Param()+" characters")
			case "max":
				messages = append(messages, field+" must be at most "+fe.Param()+" characters")
			case "len":
				messages = append(messages, field+" must be exactly "+fe.Param()+" characters")
			case "numeric":
				messages = append(messages, field+" must contain only numbers")
			case "datetime":
				messages = append(messages, field+" must be a date in YYYY-MM-DD format")
			case "oneof":
				messages = append(messages, field+" must be one of: "+fe.Param())
			case "gte", "lte":
				messages = append(messages, field+" is out of range")
			case "ltefield":
				messages = append(messages, field+" must not exceed "+fe.Param())
			default:
				messages = append(messages, field+" is invalid")
			}
		}
		return strings.Join(messages, ", ")
	}
	return err.Error()
}
