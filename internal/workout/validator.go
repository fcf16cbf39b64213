package workout

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator checks that decoded records have the shape the API promises
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() (*Validator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch value := field.Interface().(type) {
		case Date:
			return value.String()
		case Timestamp:
			return value.String()
		}
		return nil
	}, Date{}, Timestamp{})

	return &Validator{
		validate:   validate,
		translator: trans,
	}, nil
}

// Struct validates a record and joins translated violations into one error
func (v *Validator) Struct(record interface{}) error {
	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate.Struct > %w", err)
	}
	errorMsgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		errorMsgs = append(errorMsgs, e.Translate(v.translator))
	}
	return errors.New(strings.Join(errorMsgs, ", "))
}

// Logs validates every log in order and reports the first invalid index
func (v *Validator) Logs(logs []WorkoutLog) error {
	for i, log := range logs {
		if err := v.Struct(log); err != nil {
			return fmt.Errorf("logs[%d]: %w", i, err)
		}
	}
	return nil
}

// Dates rejects empty entries in a list of dates
func (v *Validator) Dates(dates []Date) error {
	for i, date := range dates {
		if date.IsZero() {
			return fmt.Errorf("dates[%d] is empty", i)
		}
	}
	return nil
}
