package responses

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BindAndValidate decodes the JSON body into dst and runs validation with
// `validate:"..."` tags. On any failure it writes a 400 carrying msg and
// reports false.
func BindAndValidate[T any](w http.ResponseWriter, r *http.Request, dst *T, msg string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, msg)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		WriteBadRequest(w, msg)
		return false
	}
	return true
}
