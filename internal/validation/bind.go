package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/apperror"
)

// InvalidJSON is the message for bodies that are not a JSON object.
const InvalidJSON = "Invalid Json"

// typeMessages names the error reported when a field has the wrong JSON type.
var typeMessages = map[string]string{
	"genres":      "Genres must be an array",
	"releaseYear": "Release year is invalid",
}

var binder = &echo.DefaultBinder{}

// BindJSON decodes the request body into dst and validates it.  Malformed
// JSON is an "Invalid Json" error; a field of the wrong type is reported as
// a validation failure on that field.
func BindJSON(c echo.Context, dst any) error {
	if err := binder.BindBody(c, dst); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			field := strings.SplitN(ute.Field, ".", 2)[0]
			msg, ok := typeMessages[field]
			if !ok {
				msg = field + " is invalid"
			}
			return apperror.Validation(map[string]any{field: msg})
		}
		return apperror.Wrap(err, apperror.CodeInvalid, InvalidJSON)
	}
	return c.Validate(dst)
}
