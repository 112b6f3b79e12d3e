package constants

import "net/http"

// CodedError is an error carrying the HTTP status it should be rendered
// with. The api error handler unwraps down to the first CodedError it finds.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrUnauthorized      = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrMissingAuthCookie = NewCodedError(http.StatusUnauthorized, "missing auth cookie")

	ErrSessionNotFound  = NewCodedError(http.StatusNotFound, "session not found")
	ErrUnknownDimension = NewCodedError(http.StatusBadRequest, "unknown selection dimension")
	ErrUnknownFlag      = NewCodedError(http.StatusBadRequest, "unknown messaging flag")

	// ErrTemplateRequired signals the first phase of a bulk enable: the
	// caller has to pick a template and repeat the request with it.
	ErrTemplateRequired = NewCodedError(http.StatusBadRequest, "a template id is required to enable this flag")
	ErrInvalidFlagValue = NewCodedError(http.StatusBadRequest, "flag value must be 0 or 1")
	ErrLeadDaysRange    = NewCodedError(http.StatusBadRequest, "dias_antes must be between 0 and 5")
	ErrNoTargets        = NewCodedError(http.StatusBadRequest, "no target rows for bulk action")

	ErrUpstreamNotFound = NewCodedError(http.StatusNotFound, "not found upstream")
	ErrUpstream         = NewCodedError(http.StatusBadGateway, "upstream request failed")
)
