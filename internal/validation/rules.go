package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{2,20}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	titleRe = regexp.MustCompile(`^[A-Za-z0-9 .,'"!?:;()\-&+]+$`)
	genreRe = regexp.MustCompile(`^[A-Za-z0-9 &'-]+$`)
)

const passwordSpecials = "@$!%*?&"

// MinReleaseYear is the earliest accepted release year.
const MinReleaseYear = 1900

// StrongPassword reports whether pw is 8-32 characters drawn from letters,
// digits and @$!%*?&, with at least one of each class.
func StrongPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > 32 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// ValidReleaseYear reports whether y lies in [1900, current year].
func ValidReleaseYear(y int) bool {
	return y >= MinReleaseYear && y <= time.Now().Year()
}

func regexRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool { return re.MatchString(fl.Field().String()) }
}

func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"person_name": regexRule(nameRe),
		"email_basic": regexRule(emailRe),
		"movie_title": regexRule(titleRe),
		"genre_chars": regexRule(genreRe),
		"nonblank": func(fl validator.FieldLevel) bool {
			return strings.TrimFunc(fl.Field().String(), unicode.IsSpace) != ""
		},
		"password_strength": func(fl validator.FieldLevel) bool {
			return StrongPassword(fl.Field().String())
		},
		"allowed_language": func(fl validator.FieldLevel) bool {
			return contains(AllowedLanguages, strings.ToUpper(fl.Field().String()))
		},
		"allowed_genre": func(fl validator.FieldLevel) bool {
			return contains(AllowedGenres, NormalizeGenre(fl.Field().String()))
		},
		"release_year": func(fl validator.FieldLevel) bool {
			return ValidReleaseYear(int(fl.Field().Int()))
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
