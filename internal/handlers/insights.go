package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/babytracker/backend/internal/apierror"
	"github.com/JonnyWalker81/babytracker/backend/internal/insights"
	"github.com/JonnyWalker81/babytracker/backend/internal/logger"
	"github.com/JonnyWalker81/babytracker/backend/internal/service"
)

// InsightsHandler handles insights-related HTTP requests
type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
	}
}

// GetInsights returns insights for one subject. The type query parameter
// selects the scope and defaults to comprehensive.
// GET /api/v1/subjects/:id/insights?type=feeding|sleep|growth|diaper|comprehensive|all
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	subjectID := c.Param("id")
	rawScope := c.Query("type")
	requestID := apierror.GetRequestID(c)

	scope, err := insights.ParseScope(rawScope)
	if err != nil {
		apierror.WriteProblem(c, apierror.FromError(requestID, subjectID, rawScope, err))
		return
	}

	report, err := h.insightsService.GetInsights(c.Request.Context(), subjectID, scope)
	if err != nil {
		problem := apierror.FromError(requestID, subjectID, rawScope, err)
		if problem.Status >= http.StatusInternalServerError {
			logger.Ctx(logger.WithSubjectID(c.Request.Context(), subjectID)).Error("failed to get insights",
				logger.Err(err),
				logger.String("scope", string(scope)),
			)
		}
		_ = c.Error(err)
		apierror.WriteProblem(c, problem)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListScopes returns the accepted insight types
// GET /api/v1/insights/types
func (h *InsightsHandler) ListScopes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"types":   apierror.ScopeNames(),
		"default": "comprehensive",
	})
}
