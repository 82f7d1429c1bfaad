package validator

import (
	"fmt"
	"sort"
	"strings"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// NewValidator builds the shared validator with the billing specific tags:
// weekday (MON..SUN) and calendar_month (1..12)
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return types.Weekday(fl.Field().String()).Validate() == nil
	})
	_ = v.RegisterValidation("calendar_month", func(fl validator.FieldLevel) bool {
		m := fl.Field().Int()
		return m >= 1 && m <= 12
	})
	validate = v
	return validate
}

func GetValidator() *validator.Validate {
	return validate
}

func ValidateRequest(req interface{}) error {
	if validate == nil {
		return ierr.NewError("validator not initialized").
			WithHint("Validator must be initialized before using it").
			Mark(ierr.ErrSystem)
	}

	if err := validate.Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = fmt.Sprintf("failed on %s", err.Tag())
			}
		}
		return ierr.WithError(err).
			WithHint(hintFor(details)).
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// hintFor names the offending fields so the message is actionable
func hintFor(details map[string]any) string {
	if len(details) == 0 {
		return "Request validation failed"
	}
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "Invalid value for " + strings.Join(fields, ", ")
}
