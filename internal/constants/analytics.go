package constants

const (
	// TrendWindowSize is the number of logged days averaged into one trend point
	TrendWindowSize = 7
	// MaxTrendPoints bounds the trend series kept in a report
	MaxTrendPoints = 28
	// MinCorrelationSamples is the smallest paired sample reported by the correlation engine
	MinCorrelationSamples = 3

	// Effect size thresholds on |r|
	EffectLargeThreshold  = 0.5
	EffectMediumThreshold = 0.3
	EffectSmallThreshold  = 0.1

	// Confidence thresholds on sample size (exclusive upper bounds)
	ConfidenceLowMaxSamples    = 10
	ConfidenceMediumMaxSamples = 21

	// DirectionThreshold separates "similar" from "higher"/"lower" narratives
	DirectionThreshold = 0.05

	// ReviewWindowDays is the length of a weekly review window
	ReviewWindowDays = 7
	// ReviewMinMetrics is the number of logged days needed before a review is produced
	ReviewMinMetrics = 7
	// ReviewMaxCorrelationHighlights caps the correlation excerpts in a review
	ReviewMaxCorrelationHighlights = 3
	// ReviewRegenerationDays is the gap between a stored review and new data that triggers regeneration
	ReviewRegenerationDays = 7
)
