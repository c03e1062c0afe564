package listing

import (
	"errors"
	"reflect"
	"strings"

	"jobboard/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var fieldMessages = map[string]string{
	"title":       "Title must be at least 3 characters",
	"company":     "Company name must be at least 2 characters",
	"description": "Description must be at least 50 characters",
	"location":    "Location must be at least 2 characters",
	"job_type":    "Job type must be one of " + categoryNames(),
}

func categoryNames() string {
	names := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// InvalidCategory is the validation error for a job type the store refused.
func InvalidCategory() error {
	return apperr.Validation(map[string]string{"job_type": fieldMessages["job_type"]})
}

// Validate checks f against the rule table. It returns nil or a validation
// error carrying one message per failing field.
func Validate(f Fields) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.InvalidInput("invalid listing", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		msg, ok := fieldMessages[name]
		if !ok {
			msg = name + " is invalid"
		}
		fields[name] = msg
	}
	return apperr.Validation(fields)
}
