package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "fellowname", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// BodyFormat selects how the global error handler writes an HTTPError.
type BodyFormat int

const (
	// BodyJSON writes the full HTTPError as JSON. It is the zero value.
	BodyJSON BodyFormat = iota
	// BodyText writes only Message as text/plain.
	BodyText
	// BodyNone writes the status with an empty body.
	BodyNone
)

// HTTPError is the error type every layer above the repositories returns
// when it knows which HTTP status the failure maps to.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`

	// Body is a rendering hint and never serialized.
	Body BodyFormat `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	c := *e
	c.Message = message
	return &c
}

// AsText returns a copy of e rendered as a plain-text message.
func (e *HTTPError) AsText() *HTTPError {
	c := *e
	c.Body = BodyText
	return &c
}

// WithoutBody returns a copy of e rendered as a bare status code.
func (e *HTTPError) WithoutBody() *HTTPError {
	c := *e
	c.Body = BodyNone
	return &c
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
