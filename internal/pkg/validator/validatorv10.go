package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mabinihs/portal/internal/pkg/strcase"
)

var (
	reOTP   = regexp.MustCompile(`^[0-9]{6}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Roles accepted by the "role" rule.
var Roles = []string{"student", "teacher"}

// ErrTranslatorNotFound indicates the English translator could not be built.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError maps snake_case field names to translated messages.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// First returns the message of the alphabetically first field, for callers
// that can only show one line.
func (vs V10ValidationError) First() string {
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return vs[keys[0]]
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerRules(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{validate: validate, translator: enTrans}, nil
}

func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	out := make(V10ValidationError, len(validateErrs))
	for _, fe := range validateErrs {
		out[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
	}

	return out
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

type rule struct {
	tag     string
	message string
	fn      validator.Func
}

func registerRules(validate *validator.Validate, enTrans ut.Translator) error {
	rules := []rule{
		{
			tag:     "password",
			message: "{0} must be at least 6 characters",
			fn: func(fl validator.FieldLevel) bool {
				return utf8.RuneCountInString(fl.Field().String()) >= 6
			},
		},
		{
			tag:     "otp",
			message: "{0} must be exactly 6 digits",
			fn:      func(fl validator.FieldLevel) bool { return reOTP.MatchString(fl.Field().String()) },
		},
		{
			tag:     "role",
			message: "{0} must be one of student, teacher",
			fn: func(fl validator.FieldLevel) bool {
				r := fl.Field().String()
				for _, allowed := range Roles {
					if r == allowed {
						return true
					}
				}
				return false
			},
		},
		{
			tag:     "phone",
			message: "{0} must be a valid phone number",
			fn: func(fl validator.FieldLevel) bool {
				p := strings.NewReplacer(" ", "", "-", "").Replace(fl.Field().String())
				return rePhone.MatchString(p)
			},
		},
	}

	for _, r := range rules {
		if err := validate.RegisterValidation(r.tag, r.fn); err != nil {
			return err
		}

		msg := r.message
		tag := r.tag
		err := validate.RegisterTranslation(tag, enTrans,
			func(tr ut.Translator) error { return tr.Add(tag, msg, false) },
			func(tr ut.Translator, fe validator.FieldError) string {
				t, err := tr.T(fe.Tag(), fe.Field())
				if err != nil {
					slog.Warn("error translating validation message", "tag", fe.Tag(), "error", err)
					return fe.Error()
				}
				return t
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}
