package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/babytracker/backend/internal/insights"
	"github.com/JonnyWalker81/babytracker/backend/internal/repository"
	"github.com/JonnyWalker81/babytracker/backend/internal/service"
	"github.com/JonnyWalker81/babytracker/backend/pkg/supabase"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes a ProblemDetails response to the gin context.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewInvalidSubjectError creates a 400 response for a malformed subject id.
func NewInvalidSubjectError(requestID, value string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidSubject,
		Title:       TitleInvalidSubject,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Subject ID '%s' is not a valid UUID", value),
		RequestID:   requestID,
		UserMessage: "Invalid identifier format",
	}
}

// NewUnknownScopeError creates a 400 response listing the accepted insight types.
func NewUnknownScopeError(requestID, value string, allowed []string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUnknownScope,
		Title:       TitleUnknownScope,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Insight type '%s' is not supported", value),
		RequestID:   requestID,
		UserMessage: "Choose one of the supported insight types",
		Allowed:     allowed,
	}
}

// NewNotFoundError creates a 404 response for a missing subject.
func NewNotFoundError(requestID, id string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("Subject with ID '%s' was not found", id),
		RequestID:   requestID,
		UserMessage: "The requested baby profile could not be found",
	}
}

// NewUnauthorizedError creates a 401 response.
func NewUnauthorizedError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUnauthorized,
		Title:       TitleUnauthorized,
		Status:      http.StatusUnauthorized,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "Please sign in to continue",
	}
}

// NewUpstreamError creates a 502 response. The upstream body is not exposed.
func NewUpstreamError(requestID string, status int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUpstream,
		Title:       TitleUpstream,
		Status:      http.StatusBadGateway,
		Detail:      fmt.Sprintf("The record store responded with status %d", status),
		RequestID:   requestID,
		UserMessage: "Your records could not be loaded. Please try again later.",
	}
}

// NewInternalError creates a 500 response. Internal details stay in the logs.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}

// FromError maps a service error to a problem response.
// subjectID and scope are the raw request values, echoed in the detail.
func FromError(requestID, subjectID, scope string, err error) *ProblemDetails {
	var upstream *supabase.Error
	switch {
	case errors.Is(err, service.ErrInvalidSubjectID):
		return NewInvalidSubjectError(requestID, subjectID)
	case errors.Is(err, insights.ErrUnknownScope):
		return NewUnknownScopeError(requestID, scope, ScopeNames())
	case errors.Is(err, repository.ErrSubjectNotFound):
		return NewNotFoundError(requestID, subjectID)
	case errors.As(err, &upstream):
		return NewUpstreamError(requestID, upstream.StatusCode)
	default:
		return NewInternalError(requestID)
	}
}

// ScopeNames lists the accepted insight type values
func ScopeNames() []string {
	scopes := insights.Scopes()
	names := make([]string, len(scopes))
	for i, s := range scopes {
		names[i] = string(s)
	}
	return names
}
