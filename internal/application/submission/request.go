package submission

import (
	"errors"
	"strings"

	"vibemarket-backend/internal/domain"
	"vibemarket-backend/internal/pkg/validation"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("Unauthorized")
)

// Request is the untrusted body of a submission. Ownership, status and votes
// are not part of it and are always set by the server.
type Request struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	LiveURL     string   `json:"live_url"`
	Tool        string   `json:"tool"`
	Tags        []string `json:"tags"`
	KeyFeatures []string `json:"key_features"`
	Country     string   `json:"country"`
	Category    string   `json:"category"`
	UseCase     string   `json:"use_case"`
	LogoURL     string   `json:"logo_url"`
	Plan        string   `json:"plan"`
}

// FieldError names one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return ErrValidation.Error() + ": " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate checks the request as a whole. It returns a *ValidationError
// covering all problems, or nil.
func (r *Request) Validate() error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	if validation.IsBlank(r.Title) {
		add("title", "Title is required")
	}
	if validation.IsBlank(r.Description) {
		add("description", "Description is required")
	}
	switch {
	case validation.IsBlank(r.LiveURL):
		add("live_url", "Live URL is required")
	case !validation.IsValidURL(r.LiveURL):
		add("live_url", "Live URL must be an http(s) URL")
	}
	switch {
	case validation.IsBlank(r.Tool):
		add("tool", "Tool is required")
	case !domain.Tool(r.Tool).Valid():
		add("tool", "Unknown tool")
	}
	if r.Plan != "" && !domain.Plan(r.Plan).Valid() {
		add("plan", "Plan must be free or paid")
	}
	if r.Country != "" && !validation.IsValidCountry(strings.ToUpper(r.Country)) {
		add("country", "Country must be a two-letter code or GLOBAL")
	}
	if r.LogoURL != "" && !validation.IsValidURL(r.LogoURL) {
		add("logo_url", "Logo URL must be an http(s) URL")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (r *Request) plan() domain.Plan {
	if r.Plan == "" {
		return domain.PlanFree
	}
	return domain.Plan(r.Plan)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
