package http

import (
	"net/http"
	"time"

	apperrors "bookcal/pkg/errors"
	"bookcal/pkg/model"
)

const dateLayout = "2006-01-02"

// ExtractDate parses a required YYYY-MM-DD query parameter, normalized to
// midnight UTC.
func ExtractDate(r *http.Request, param string) (time.Time, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return time.Time{}, apperrors.InvalidInput("'" + param + "' query parameter is required")
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + param + " format, must be YYYY-MM-DD")
	}
	return model.NormalizeDate(parsed), nil
}

// ExtractOptionalDate is ExtractDate for parameters that may be absent; the
// zero time signals "not provided".
func ExtractOptionalDate(r *http.Request, param string) (time.Time, error) {
	if r.URL.Query().Get(param) == "" {
		return time.Time{}, nil
	}
	return ExtractDate(r, param)
}
