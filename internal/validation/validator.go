// Package validation checks request bodies and query strings at the HTTP
// boundary.  Rules are go-playground/validator tags plus the custom tags
// registered in rules.go; failures come back as an apperror carrying one
// message per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/movie-catalog/internal/apperror"
)

// GeneralField holds errors that concern the body as a whole.
const GeneralField = "general"

// Validator implements echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with every custom rule registered.
func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := registerRules(v); err != nil {
		return nil, err
	}
	v.RegisterStructValidation(profileLevel, UpdateProfileRequest{})
	v.RegisterStructValidation(movieUpdateLevel, UpdateMovieRequest{})
	return &Validator{v: v}, nil
}

// MustNew is New for wiring code that cannot continue without a validator.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

func profileLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(UpdateProfileRequest)
	if r.empty() {
		sl.ReportError(nil, GeneralField, GeneralField, "atleastone", "")
	}
}

func movieUpdateLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(UpdateMovieRequest)
	if r.empty() {
		sl.ReportError(nil, GeneralField, GeneralField, "atleastone", "")
	}
	if r.ReleaseYear.Present() && !ValidReleaseYear(r.ReleaseYear.Value) {
		sl.ReportError(r.ReleaseYear.Value, "releaseYear", "ReleaseYear", "release_year", "")
	}
}

// Validate normalizes i when it supports it and runs the rules.
func (cv *Validator) Validate(i any) error {
	if n, ok := i.(normalizer); ok {
		n.Normalize()
	}
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(err, apperror.CodeInvalid, apperror.ValidationFailed)
	}
	return apperror.Validation(translate(verrs))
}

// translate turns validator errors into the response's field map.  Errors
// on slice elements ("genres[2]") are collected into an array indexed like
// the input, with null for elements that passed.
func translate(verrs validator.ValidationErrors) map[string]any {
	fields := map[string]any{}
	indexed := map[string]map[int]string{}
	for _, fe := range verrs {
		field := fe.Field()
		if base, idx, ok := splitIndex(field); ok {
			if indexed[base] == nil {
				indexed[base] = map[int]string{}
			}
			indexed[base][idx] = message(base+"[]", fe)
			continue
		}
		if _, seen := fields[field]; !seen {
			fields[field] = message(field, fe)
		}
	}
	for base, byIdx := range indexed {
		last := 0
		for i := range byIdx {
			if i > last {
				last = i
			}
		}
		arr := make([]any, last+1)
		for i, msg := range byIdx {
			arr[i] = msg
		}
		fields[base] = arr
	}
	return fields
}

func splitIndex(field string) (string, int, bool) {
	open := strings.IndexByte(field, '[')
	if open < 0 || !strings.HasSuffix(field, "]") {
		return "", 0, false
	}
	idx, err := strconv.Atoi(field[open+1 : len(field)-1])
	if err != nil {
		return "", 0, false
	}
	return field[:open], idx, true
}

func message(field string, fe validator.FieldError) string {
	if m, ok := messages[field+"."+fe.Tag()]; ok {
		if strings.Contains(m, "%s") {
			return fmt.Sprintf(m, fe.Param())
		}
		return m
	}
	return fmt.Sprintf("%s is invalid", field)
}

const passwordRules = "Password must contain uppercase, lowercase, number, special character and length 8-32"

var messages = map[string]string{
	"general.atleastone": "At least one field is required",

	"name.required":    "Name is required",
	"name.nonblank":    "Name is required",
	"name.person_name": "Name format is invalid",
	"name.max":         "Name must be at most %s characters",

	"email.required":    "Email is required",
	"email.nonblank":    "Email is required",
	"email.email_basic": "Email format is invalid",
	"email.max":         "Email must be at most %s characters",

	"password.required":          "Password is required",
	"password.password_strength": passwordRules,
	"confirmPassword.required":   "Confirm password is required",
	"confirmPassword.eqfield":    "Passwords do not match",

	"role.nonblank": "Role is required",
	"role.oneof":    "Role must be user or admin",

	"currentPassword.required":      "Current password is required",
	"newPassword.required":          "New password is required",
	"newPassword.password_strength": passwordRules,
	"confirmNewPassword.required":   "Confirm new password is required",
	"confirmNewPassword.eqfield":    "Passwords do not match",

	"title.required":    "title is required",
	"title.nonblank":    "title is required",
	"title.movie_title": "Title format is invalid",
	"title.max":         "Title must be at most %s characters",

	"language.required":         "Language is required",
	"language.nonblank":         "Language is required",
	"language.max":              "Language must be at most %s characters",
	"language.allowed_language": "Language is not allowed",

	"genres.min":             "At least one genre is required",
	"genres.max":             "You can add at most %s genres",
	"genres[].nonblank":      "Genre is required",
	"genres[].allowed_genre": "This Genre is not allowed",
	"genres[].max":           "Genre must be at most %s characters",
	"genres[].genre_chars":   "Genre format is invalid",

	"releaseYear.release_year": "Release year is invalid",
}
