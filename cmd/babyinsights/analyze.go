package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/babytracker/backend/internal/config"
	"github.com/JonnyWalker81/babytracker/backend/internal/insights"
	"github.com/JonnyWalker81/babytracker/backend/internal/repository"
	"github.com/JonnyWalker81/babytracker/backend/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute insights from snapshot files",
	Long: `Load one or more record snapshot files (JSON or YAML), compute insights for a
subject and print the result as JSON. The snapshot's as_of time is used as the
reference time for age computations when set.`,
	Example: `  babyinsights analyze --snapshot ada.yaml --type sleep
  babyinsights analyze --snapshot ada.yaml --snapshot max.json --subject 7c0e3a9d-52b1-4f8e-a6d3-91b4c2e7f058 --type all`,
	RunE: runAnalyze,
}

var (
	snapshotPaths []string
	subjectID     string
	insightType   string
	pretty        bool
)

func init() {
	analyzeCmd.Flags().StringSliceVarP(&snapshotPaths, "snapshot", "s", nil, "Snapshot file to load (repeatable, overrides config)")
	analyzeCmd.Flags().StringVar(&subjectID, "subject", "", "Subject id (optional when a single snapshot is loaded)")
	analyzeCmd.Flags().StringVarP(&insightType, "type", "t", "comprehensive", "Insight type: feeding, sleep, growth, diaper, comprehensive or all")
	analyzeCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Read(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if len(snapshotPaths) > 0 {
		cfg.Snapshot.Paths = snapshotPaths
	}
	if len(cfg.Snapshot.Paths) == 0 {
		return errors.New("at least one --snapshot is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogger(cfg.Log)

	scope, err := insights.ParseScope(insightType)
	if err != nil {
		return fmt.Errorf("%w (accepted: feeding, sleep, growth, diaper, comprehensive, all)", err)
	}

	repo, err := repository.NewFileRecordRepository(cfg.Snapshot.Paths...)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}

	id := subjectID
	if id == "" {
		ids := repo.SubjectIDs()
		if len(ids) != 1 {
			return fmt.Errorf("--subject is required when %d subjects are loaded", len(ids))
		}
		id = ids[0]
	}

	clock := func() time.Time {
		if asOf := repo.AsOf(id); !asOf.IsZero() {
			return asOf
		}
		return time.Now()
	}

	insightsService := service.NewInsightsService(repo, insights.NewEngine(cfg.Insights), service.WithClock(clock))
	report, err := insightsService.GetInsights(cmd.Context(), id, scope)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
