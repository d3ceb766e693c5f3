// Package apierror provides RFC 9457 Problem Details error responses
// for the insights API.
package apierror

// ProblemDetails represents an RFC 9457 Problem Details response.
// See https://www.rfc-editor.org/rfc/rfc9457.html
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	RequestID   string   `json:"request_id,omitempty"`   // Correlation ID from X-Request-ID header
	UserMessage string   `json:"user_message,omitempty"` // UI-safe message for client display
	Allowed     []string `json:"allowed,omitempty"`      // Accepted values when a parameter is rejected
}

// Error implements the error interface for ProblemDetails.
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
