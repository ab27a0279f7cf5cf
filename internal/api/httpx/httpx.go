package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeObject reads the request body, which must hold a single JSON object.
// It returns the decoded object alongside the raw bytes so callers can both
// inspect keys and unmarshal into a typed value.
func DecodeObject(r *http.Request) (map[string]any, []byte, error) {
	defer r.Body.Close()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, apperr.TooLarge("request body too large", err)
		}
		return nil, nil, apperr.Validation("cannot read request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, apperr.Validation("request body must be a JSON object")
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, nil, apperr.Validation("request body must be a JSON object")
	}
	return obj, raw, nil
}
