package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Rana718/jsonsql/internal/types"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
)

func newValidator() (*validator.Validate, ut.Translator) {
	v := validator.New()

	enLocale := en.New()
	enTranslator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(fmt.Errorf("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(v, enTranslator); err != nil {
		panic(fmt.Errorf("translator was not registered: %w", err))
	}

	// Use JSON field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v, enTranslator
}

// Validate checks the document structure. Failures wrap types.ErrInvalidMapping
// and name fields by their JSON keys, e.g. "columns[0].type is a required field".
func Validate(doc Document) error {
	validatorOnce.Do(func() {
		validate, translator = newValidator()
	})

	if err := validate.Struct(doc); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return fmt.Errorf("%w: %v", types.ErrInvalidMapping, err)
		}
		msgs := make([]string, 0, len(validationErrs))
		for _, e := range validationErrs {
			msgs = append(msgs, fieldPrefix(e.Namespace())+e.Translate(translator))
		}
		return types.NewMappingError("%s", strings.Join(msgs, "; "))
	}

	return ToTable(doc).Validate()
}

// fieldPrefix drops the struct name and the field name itself from a
// validator namespace, since the translated message already names the field.
func fieldPrefix(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 2 {
		return ""
	}
	return strings.Join(parts[1:len(parts)-1], ".") + "."
}
