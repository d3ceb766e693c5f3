package service

import (
	"context"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

// InsightsService fetches one subject's records and computes insights over them
type InsightsService interface {
	GetFeedingInsights(ctx context.Context, subjectID string) (*models.FeedingInsights, error)
	GetSleepInsights(ctx context.Context, subjectID string) (*models.SleepInsights, error)
	GetGrowthInsights(ctx context.Context, subjectID string) (*models.GrowthInsights, error)
	GetDiaperInsights(ctx context.Context, subjectID string) (*models.DiaperInsights, error)
	GetComprehensiveInsights(ctx context.Context, subjectID string) (*models.ComprehensiveInsights, error)
	GetInsights(ctx context.Context, subjectID string, scope models.InsightScope) (*models.InsightsReport, error)
}
