package schema

import "time"

// TrendAnalysis summarizes the direction and stability of the aggregate
// daily cost series.
type TrendAnalysis struct {
	Direction        string  `json:"direction" yaml:"direction"` // increasing or decreasing
	MagnitudePct     float64 `json:"magnitude_pct" yaml:"magnitude_pct"`
	RecentAvgDaily   float64 `json:"recent_avg_daily" yaml:"recent_avg_daily"`
	PreviousAvgDaily float64 `json:"previous_avg_daily" yaml:"previous_avg_daily"`
	Volatility       float64 `json:"volatility" yaml:"volatility"`
	VolatilityLevel  string  `json:"volatility_level" yaml:"volatility_level"` // low, medium or high
	DaysAnalyzed     int     `json:"days_analyzed" yaml:"days_analyzed"`
	DataQuality      string  `json:"data_quality" yaml:"data_quality"` // good or limited
}

// DailyAnomaly is one anomalous day flagged by the rolling scan of the
// aggregate daily series.
type DailyAnomaly struct {
	Date         time.Time  `json:"date" yaml:"date"`
	Actual       float64    `json:"actual" yaml:"actual"`
	Expected     float64    `json:"expected" yaml:"expected"`
	DeviationPct float64    `json:"deviation_pct" yaml:"deviation_pct"` // fraction of expected
	ZScore       float64    `json:"z_score" yaml:"z_score"`
	Kind         ChangeKind `json:"kind" yaml:"kind"` // spike or drop
	Severity     Severity   `json:"severity" yaml:"severity"`
	Confidence   float64    `json:"confidence" yaml:"confidence"`
	Description  string     `json:"description" yaml:"description"`
}

// ReportResult bundles everything the report command renders.
type ReportResult struct {
	GeneratedAt  time.Time      `json:"generated_at" yaml:"generated_at"`
	TotalCost    float64        `json:"total_cost" yaml:"total_cost"`
	AvgDaily     float64        `json:"avg_daily" yaml:"avg_daily"`
	DaysAnalyzed int            `json:"days_analyzed" yaml:"days_analyzed"`
	Anomalies    []DailyAnomaly `json:"anomalies" yaml:"anomalies"`
	Trends       *TrendAnalysis `json:"trends" yaml:"trends"`
}
