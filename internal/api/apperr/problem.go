package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/5w1tchy/bookshelf-api/internal/logger"
)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`    // e.g. "unique", "not_null", "invalid", "too_long"
	Message string `json:"message"` // human readable
}

type Problem struct {
	Type        string       `json:"type,omitempty"`   // RFC7807 type URI
	Title       string       `json:"title"`            // short summary
	Status      int          `json:"status"`           // HTTP status code
	Detail      string       `json:"detail,omitempty"` // human details
	Instance    string       `json:"instance,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
}

func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	if p.Instance == "" && r != nil {
		p.Instance = r.URL.Path
	}
	if p.RequestID == "" && r != nil {
		p.RequestID = logger.RequestID(r.Context())
		if p.RequestID == "" {
			p.RequestID = r.Header.Get("X-Request-ID")
		}
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// Convenience: fast write with just status+title+detail
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	Write(w, r, Problem{Status: status, Title: title, Detail: detail})
}

// Respond is the single error-to-response translator for handlers.
// *Error values keep their status; PostgreSQL errors go through FromPG;
// everything else becomes a 500 whose detail is only logged.
func Respond(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	var ae *Error
	if !errors.As(err, &ae) {
		if mapped, ok := FromPG(err); ok {
			ae = mapped
		} else {
			ae = Unexpected(err)
		}
	}

	log := logger.FromContext(r.Context()).WithField("kind", ae.Kind.String())
	if ae.Status >= http.StatusInternalServerError {
		log.WithError(err).Errorf("%s %s failed", r.Method, r.URL.Path)
	} else {
		log.Debugf("%s %s rejected: %v", r.Method, r.URL.Path, ae)
	}

	p := Problem{Status: ae.Status}
	switch {
	case ae.Kind == KindUnexpected:
		p.Detail = "internal server error"
	case len(ae.Messages) == 1:
		p.Detail = ae.Messages[0]
	}
	if ae.Kind == KindValidation {
		p.Errors = ae.Messages
	}
	if fe, ok := fieldErrors(ae); ok {
		p.FieldErrors = fe
	}
	Write(w, r, p)
}
