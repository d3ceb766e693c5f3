package models

import "time"

// InsightScope selects which analyzers run for a request
type InsightScope string

const (
	ScopeFeeding       InsightScope = "feeding"
	ScopeSleep         InsightScope = "sleep"
	ScopeGrowth        InsightScope = "growth"
	ScopeDiaper        InsightScope = "diaper"
	ScopeComprehensive InsightScope = "comprehensive"
	ScopeAll           InsightScope = "all"
)

// Confidence represents the confidence level of a prediction
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// TrendDirection classifies a fitted slope
type TrendDirection string

const (
	TrendStable           TrendDirection = "stable"
	TrendIncreasing       TrendDirection = "increasing"
	TrendDecreasing       TrendDirection = "decreasing"
	TrendInsufficientData TrendDirection = "insufficient_data"
	TrendNonNumeric       TrendDirection = "non_numeric"
)

// Trend holds the result of a least-squares fit of a series against its index
type Trend struct {
	Direction TrendDirection `json:"direction"`
	Slope     *float64       `json:"slope,omitempty"`
	Points    int            `json:"points"`
}

// AnomalyType identifies the check that produced an anomaly
type AnomalyType string

const (
	AnomalyTypeInterval             AnomalyType = "interval"
	AnomalyTypeMagnitude            AnomalyType = "magnitude"
	AnomalyTypePatternShift         AnomalyType = "pattern_shift"
	AnomalyTypeBedtimeInconsistency AnomalyType = "bedtime_inconsistency"
	AnomalyTypeFragmentedSleep      AnomalyType = "fragmented_sleep"
	AnomalyTypeWeightLoss           AnomalyType = "weight_loss"
)

// Anomaly is a statistically flagged deviation from the subject's own history
type Anomaly struct {
	Type        AnomalyType            `json:"type"`
	Description string                 `json:"description"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// TimeRange is a closed interval between two instants
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DailyTotal aggregates one calendar day of events
type DailyTotal struct {
	Date     string   `json:"date"`
	Count    int      `json:"count"`
	Quantity *float64 `json:"quantity,omitempty"`
}

// EventPrediction extrapolates the next occurrence of a recurring event
type EventPrediction struct {
	PredictedTime       time.Time  `json:"predicted_time"`
	IntervalHours       float64    `json:"interval_hours"`
	Confidence          Confidence `json:"confidence"`
	SampleSize          int        `json:"sample_size"`
	DayOfWeek           string     `json:"day_of_week"`
	DayOfWeekModalHours []int      `json:"day_of_week_modal_hours,omitempty"`
}

// =============================================================================
// Feeding
// =============================================================================

// FeedingInsights is the feeding analyzer result
type FeedingInsights struct {
	InsufficientData bool                  `json:"insufficient_data"`
	Message          string                `json:"message,omitempty"`
	SampleSize       int                   `json:"sample_size"`
	Basic            *FeedingBasicInsights `json:"basic_insights,omitempty"`
	Patterns         *FeedingPatterns      `json:"pattern_insights,omitempty"`
	Anomalies        []Anomaly             `json:"anomalies"`
	Predictions      *FeedingPredictions   `json:"predictions,omitempty"`
}

// FeedingBasicInsights holds descriptive feeding statistics
type FeedingBasicInsights struct {
	TotalFeedings           int                 `json:"total_feedings"`
	RecommendedFeedingHours []int               `json:"recommended_feeding_hours"`
	AverageFeedingInterval  float64             `json:"average_feeding_interval"` // hours
	FeedingsPerDay          float64             `json:"feedings_per_day"`
	AverageQuantity         *float64            `json:"average_quantity,omitempty"`
	QuantityStdDev          *float64            `json:"quantity_std_dev,omitempty"`
	TypeDistribution        map[FeedingType]int `json:"type_distribution"`
	SideDistribution        map[FeedingSide]int `json:"side_distribution,omitempty"`
	DailyTotals             []DailyTotal        `json:"daily_totals"`
}

// PeriodPattern summarizes feedings within a slice of the week
type PeriodPattern struct {
	Count                int      `json:"count"`
	ModalHours           []int    `json:"modal_hours,omitempty"`
	AverageIntervalHours *float64 `json:"average_interval_hours,omitempty"`
}

// FeedingPatterns holds temporal feeding patterns
type FeedingPatterns struct {
	Weekday               PeriodPattern `json:"weekday"`
	Weekend               PeriodPattern `json:"weekend"`
	HourlyDistribution    []float64     `json:"hourly_distribution"`      // percentages, 24 buckets
	DayOfWeekDistribution []float64     `json:"day_of_week_distribution"` // percentages, Sunday first
	HourConsistency       float64       `json:"hour_consistency"`         // 0-1, 1 = very consistent
	QuantityTrend         *Trend        `json:"quantity_trend,omitempty"`
}

// FeedingPredictions holds the next-feeding estimate
type FeedingPredictions struct {
	NextFeeding *EventPrediction `json:"next_feeding,omitempty"`
}

// =============================================================================
// Sleep
// =============================================================================

// SleepInsights is the sleep analyzer result
type SleepInsights struct {
	InsufficientData bool                `json:"insufficient_data"`
	Message          string              `json:"message,omitempty"`
	SampleSize       int                 `json:"sample_size"`
	Basic            *SleepBasicInsights `json:"basic_insights,omitempty"`
	Patterns         *SleepPatterns      `json:"pattern_insights,omitempty"`
	Anomalies        []Anomaly           `json:"anomalies"`
	Predictions      *SleepPredictions   `json:"predictions,omitempty"`
}

// SleepBasicInsights holds descriptive sleep statistics
type SleepBasicInsights struct {
	TotalSessions          int     `json:"total_sessions"`
	CompletedSessions      int     `json:"completed_sessions"`
	OngoingSessions        int     `json:"ongoing_sessions"`
	AverageSleepDuration   float64 `json:"average_sleep_duration"` // hours
	SleepDurationStdDev    float64 `json:"sleep_duration_std_dev"`
	RecommendedNapTimes    []int   `json:"recommended_nap_times"`
	DaysTracked            int     `json:"days_tracked"`
	AverageDailySleepHours float64 `json:"average_daily_sleep_hours"`
	AverageSessionsPerDay  float64 `json:"average_sessions_per_day"`
}

// SleepCluster describes one side of the nap/night partition
type SleepCluster struct {
	Label                string  `json:"label"`
	Count                int     `json:"count"`
	AverageDurationHours float64 `json:"average_duration_hours"`
	TypicalStartHours    []int   `json:"typical_start_hours,omitempty"`
	Message              string  `json:"message,omitempty"`
}

// SleepClusters is the nap vs night sleep partition
type SleepClusters struct {
	Message        string       `json:"message,omitempty"`
	Differentiated bool         `json:"differentiated"`
	Separation     float64      `json:"separation"`
	Nap            SleepCluster `json:"nap"`
	NightSleep     SleepCluster `json:"night_sleep"`
}

// SleepQuality is the heuristic 1-10 quality score
type SleepQuality struct {
	Score            int      `json:"score"`
	Factors          []string `json:"factors"`
	RecommendedHours float64  `json:"recommended_hours"`
	BedtimeStdDev    *float64 `json:"bedtime_std_dev,omitempty"`
}

// SleepPatterns holds clustering and quality results
type SleepPatterns struct {
	Clusters      *SleepClusters `json:"clusters"`
	Quality       SleepQuality   `json:"sleep_quality"`
	DurationTrend *Trend         `json:"duration_trend,omitempty"`
}

// SleepPrediction extrapolates the next sleep onset from awake intervals
type SleepPrediction struct {
	PredictedTime     time.Time  `json:"predicted_time"`
	LastWakeTime      time.Time  `json:"last_wake_time"`
	AverageAwakeHours float64    `json:"average_awake_hours"`
	Confidence        Confidence `json:"confidence"`
	SampleSize        int        `json:"sample_size"`
}

// SleepPredictions holds the next-sleep estimate
type SleepPredictions struct {
	NextSleep *SleepPrediction `json:"next_sleep,omitempty"`
}

// =============================================================================
// Growth
// =============================================================================

// GrowthInsights is the growth analyzer result
type GrowthInsights struct {
	InsufficientData bool                 `json:"insufficient_data"`
	Message          string               `json:"message,omitempty"`
	SampleSize       int                  `json:"sample_size"`
	Basic            *GrowthBasicInsights `json:"basic_insights,omitempty"`
	Velocity         *GrowthVelocity      `json:"velocity,omitempty"`
	Trends           *GrowthTrends        `json:"trends,omitempty"`
	Anomalies        []Anomaly            `json:"anomalies"`
	Predictions      *GrowthPredictions   `json:"predictions,omitempty"`
}

// GrowthPoint is a measurement annotated with the subject's age
type GrowthPoint struct {
	Date      time.Time `json:"date"`
	AgeMonths float64   `json:"age_months"`
	Height    float64   `json:"height"`
	Weight    float64   `json:"weight"`
}

// GrowthBasicInsights holds the latest measurement and the annotated series
type GrowthBasicInsights struct {
	Measurements    []GrowthPoint `json:"measurements"`
	LatestHeight    float64       `json:"latest_height"`
	LatestWeight    float64       `json:"latest_weight"`
	LatestAgeMonths float64       `json:"latest_age_months"`
	AgeSource       string        `json:"age_source"` // "birth_date" or "first_measurement"
}

// GrowthVelocity is the rate of change per month
type GrowthVelocity struct {
	HeightCmPerMonth float64 `json:"height_cm_per_month"`
	WeightKgPerMonth float64 `json:"weight_kg_per_month"`
	Method           string  `json:"method"` // "endpoint" or "trailing_mean"
	PairsUsed        int     `json:"pairs_used"`
}

// GrowthTrends classifies each metric's series
type GrowthTrends struct {
	Height Trend `json:"height"`
	Weight Trend `json:"weight"`
}

// GrowthPredictions projects one month ahead from the current velocity
type GrowthPredictions struct {
	ProjectedDate   time.Time `json:"projected_date"`
	NextMonthHeight float64   `json:"next_month_height"`
	NextMonthWeight float64   `json:"next_month_weight"`
}

// =============================================================================
// Diaper
// =============================================================================

// DiaperInsights is the diaper analyzer result
type DiaperInsights struct {
	InsufficientData bool                    `json:"insufficient_data"`
	Message          string                  `json:"message,omitempty"`
	SampleSize       int                     `json:"sample_size"`
	Basic            *DiaperBasicInsights    `json:"basic_insights,omitempty"`
	Patterns         *DiaperPatterns         `json:"pattern_insights,omitempty"`
	Health           *DiaperHealthIndicators `json:"health_indicators,omitempty"`
	Anomalies        []Anomaly               `json:"anomalies"`
	Predictions      *DiaperPredictions      `json:"predictions,omitempty"`
}

// DiaperBasicInsights holds descriptive diaper statistics
type DiaperBasicInsights struct {
	TotalChanges         int                `json:"total_changes"`
	DaysTracked          int                `json:"days_tracked"`
	AverageChangesPerDay float64            `json:"average_changes_per_day"`
	TypeDistribution     map[DiaperType]int `json:"type_distribution"`
	WetPerDay            float64            `json:"wet_per_day"`
	SoiledPerDay         float64            `json:"soiled_per_day"`
	DailyCounts          []DailyTotal       `json:"daily_counts"`
}

// DiaperPatterns holds the hour-of-day distribution
type DiaperPatterns struct {
	HourlyDistribution []int `json:"hourly_distribution"` // counts, 24 buckets
	PeakHours          []int `json:"peak_hours"`
}

// DiaperHealthIndicators holds hydration and constipation heuristics
type DiaperHealthIndicators struct {
	Evaluated           bool     `json:"evaluated"`
	HydrationConcern    bool     `json:"hydration_concern"`
	ConstipationConcern bool     `json:"constipation_concern"`
	Notes               []string `json:"notes,omitempty"`
}

// DiaperPredictions holds the next-change estimate
type DiaperPredictions struct {
	NextChange *EventPrediction `json:"next_change,omitempty"`
}

// =============================================================================
// Cross-domain
// =============================================================================

// CorrelationType identifies a cross-activity association
type CorrelationType string

const (
	CorrelationFeedingBeforeSleep CorrelationType = "feeding_before_sleep"
	CorrelationDiaperSleepDisrupt CorrelationType = "diaper_sleep_disruption"
)

// Correlation is an association between two domains' records
type Correlation struct {
	Type        CorrelationType        `json:"type"`
	Domains     []string               `json:"domains"`
	Description string                 `json:"description"`
	Strength    float64                `json:"strength"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// CorrelationReport is the correlation engine result. Message is set whenever
// Correlations is empty.
type CorrelationReport struct {
	Message      string        `json:"message,omitempty"`
	Correlations []Correlation `json:"correlations"`
}

// Priority ranks a recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// RecommendationCategory groups recommendations
type RecommendationCategory string

const (
	CategoryFeeding     RecommendationCategory = "feeding"
	CategorySleep       RecommendationCategory = "sleep"
	CategoryGrowth      RecommendationCategory = "growth"
	CategoryHealth      RecommendationCategory = "health"
	CategoryDevelopment RecommendationCategory = "development"
	CategoryRoutine     RecommendationCategory = "routine"
	CategoryTracking    RecommendationCategory = "tracking"
)

// Recommendation is a prioritized, categorized suggestion
type Recommendation struct {
	Category    RecommendationCategory `json:"category"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    Priority               `json:"priority"`
}

// DataCompleteness flags which domains had enough data for analysis
type DataCompleteness struct {
	Feeding bool `json:"feeding"`
	Sleep   bool `json:"sleep"`
	Growth  bool `json:"growth"`
	Diaper  bool `json:"diaper"`
}

// Count returns the number of domains with sufficient data
func (d DataCompleteness) Count() int {
	n := 0
	for _, ok := range []bool{d.Feeding, d.Sleep, d.Growth, d.Diaper} {
		if ok {
			n++
		}
	}
	return n
}

// InsightsSummary is the header of a comprehensive result
type InsightsSummary struct {
	SubjectID        string           `json:"subject_id"`
	AgeMonths        float64          `json:"age_months"`
	AgeKnown         bool             `json:"age_known"`
	GeneratedAt      time.Time        `json:"generated_at"`
	DataCompleteness DataCompleteness `json:"data_completeness"`
	RecordCounts     map[string]int   `json:"record_counts"`
}

// ComprehensiveInsights combines every domain with correlations and recommendations
type ComprehensiveInsights struct {
	Summary         InsightsSummary  `json:"summary"`
	Correlations    []Correlation    `json:"correlations"`
	CorrelationNote string           `json:"correlation_note,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	Feeding         *FeedingInsights `json:"feeding_insights"`
	Sleep           *SleepInsights   `json:"sleep_insights"`
	Growth          *GrowthInsights  `json:"growth_insights"`
	Diaper          *DiaperInsights  `json:"diaper_insights"`
}

// InsightsReport is the scope-dispatched response
type InsightsReport struct {
	SubjectID     string                 `json:"subject_id"`
	Scope         InsightScope           `json:"scope"`
	Feeding       *FeedingInsights       `json:"feeding_insights,omitempty"`
	Sleep         *SleepInsights         `json:"sleep_insights,omitempty"`
	Growth        *GrowthInsights        `json:"growth_insights,omitempty"`
	Diaper        *DiaperInsights        `json:"diaper_insights,omitempty"`
	Comprehensive *ComprehensiveInsights `json:"comprehensive_insights,omitempty"`
}
