// Package v1 hosts shared request-parsing helpers for the API controllers.
package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"vidtube/internal/contextutils"
	"vidtube/internal/services"

	"github.com/gorilla/mux"
)

// PathID extracts a positive int64 path variable.
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid "+name, err)
	}
	return id, nil
}

// Actor returns the authenticated user's ID. Routes behind the required
// auth middleware always have one.
func Actor(r *http.Request) int64 {
	id, _ := contextutils.GetUserID(r.Context())
	return id
}

// Viewer returns the acting user's ID when present, nil for anonymous
// requests.
func Viewer(r *http.Request) *int64 {
	if id, ok := contextutils.GetUserID(r.Context()); ok {
		return &id
	}
	return nil
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return services.NewValidationError("request body is required", err)
		}
		return services.NewValidationError("invalid request body", err)
	}
	return nil
}
