package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Package-wide validator. validator.New caches struct metadata, so one
// instance serves every request body type; it is safe for concurrent use.
var validate = validator.New()

// DecodeJSON decodes the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// ValidateRequest checks dst against its `validate` struct tags.
func ValidateRequest(dst any) error {
	return validate.Struct(dst)
}
