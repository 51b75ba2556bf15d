package student

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidationError maps form field names (JSON tag names) to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, or "".
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

var phonePattern = regexp.MustCompile(`^\d{10}$`)

var (
	validateOnce sync.Once
	validate     *govalidator.Validate
	trans        ut.Translator
)

// validator returns the shared validator with English messages and the
// phone rule registered.
func validator() (*govalidator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		v := govalidator.New(govalidator.WithRequiredStructEnabled())

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("phone10", func(fl govalidator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		t, _ := uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, t)

		override := func(tag, text string) {
			_ = v.RegisterTranslation(tag, t,
				func(u ut.Translator) error { return u.Add(tag, text, true) },
				func(u ut.Translator, fe govalidator.FieldError) string {
					msg, err := u.T(tag, fe.Field())
					if err != nil {
						return fe.Error()
					}
					return msg
				},
			)
		}
		override("phone10", "{0} must be a 10-digit phone number")
		override("eqfield", "passwords do not match")
		override("oneof", "{0} must be one of 10th, 12th, UG, PG")

		validate, trans = v, t
	})
	return validate, trans
}

// check validates s and converts failures to a *ValidationError.
func check(s any) error {
	v, t := validator()
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate: %w", err)
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fe.Translate(t)
		}
	}
	return &ValidationError{Fields: fields}
}
