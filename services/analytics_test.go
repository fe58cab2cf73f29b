package services

import (
	"testing"

	"journal-engagement-system/models"

	"github.com/stretchr/testify/assert"
)

func moodSeries(values ...int) []models.MoodSample {
	out := make([]models.MoodSample, 0, len(values))
	for _, v := range values {
		out = append(out, models.MoodSample{Value: v})
	}
	return out
}

func repeatMood(value, n int) []models.MoodSample {
	out := make([]models.MoodSample, n)
	for i := range out {
		out[i] = models.MoodSample{Value: value}
	}
	return out
}

func TestAnalyzeMoodTrendTooFewSamples(t *testing.T) {
	svc := NewAnalyticsService()

	for _, samples := range [][]models.MoodSample{nil, moodSeries(3)} {
		report := svc.AnalyzeMoodTrend(samples)
		assert.Equal(t, models.TrendStable, report.TrendDirection)
		assert.Zero(t, report.Confidence)
		assert.Contains(t, report.Insight, "Not enough data")
	}
}

func TestAnalyzeMoodTrendTwoSamplesComputes(t *testing.T) {
	svc := NewAnalyticsService()

	// Exactly two samples clear the degenerate guard and produce a real report
	report := svc.AnalyzeMoodTrend(moodSeries(3, 3))
	assert.Equal(t, models.TrendStable, report.TrendDirection)
	assert.Equal(t, 29, report.Confidence) // 2 of 7 samples
	assert.InDelta(t, 3.0, report.Average7, 0.001)
	assert.NotContains(t, report.Insight, "Not enough data")
}

func TestAnalyzeMoodTrendStable(t *testing.T) {
	svc := NewAnalyticsService()

	report := svc.AnalyzeMoodTrend(repeatMood(3, 30))
	assert.Equal(t, models.TrendStable, report.TrendDirection)
	assert.Equal(t, 100, report.Confidence)
	assert.InDelta(t, 3.0, report.Average7, 0.001)
	assert.InDelta(t, 3.0, report.Average30, 0.001)
	assert.Equal(t, "😐 Neutral", report.PredictedMood)
}

func TestAnalyzeMoodTrendImproving(t *testing.T) {
	svc := NewAnalyticsService()

	samples := append(repeatMood(2, 23), repeatMood(5, 7)...)
	report := svc.AnalyzeMoodTrend(samples)
	assert.Equal(t, models.TrendImproving, report.TrendDirection)
	assert.InDelta(t, 5.0, report.Average7, 0.001)
	assert.Equal(t, "😊 Excellent", report.PredictedMood)
	assert.NotEmpty(t, report.Recommendation)
}

func TestAnalyzeMoodTrendDeclining(t *testing.T) {
	svc := NewAnalyticsService()

	samples := append(repeatMood(4, 23), repeatMood(1, 7)...)
	report := svc.AnalyzeMoodTrend(samples)
	assert.Equal(t, models.TrendDeclining, report.TrendDirection)
	assert.InDelta(t, 1.0, report.Average7, 0.001)
	assert.Equal(t, "😢 Very Low", report.PredictedMood)
}

func TestAnalyzeMoodTrendConfidenceScalesWithSamples(t *testing.T) {
	svc := NewAnalyticsService()

	report := svc.AnalyzeMoodTrend(moodSeries(3, 3, 3))
	assert.Equal(t, 43, report.Confidence) // 3 of 7 samples

	report = svc.AnalyzeMoodTrend(repeatMood(3, 7))
	assert.Equal(t, 100, report.Confidence)
}

func TestAnalyzeMoodTrendWindowsUseMostRecentSamples(t *testing.T) {
	svc := NewAnalyticsService()

	// 40 samples; only the last 30 should feed the long window
	samples := append(repeatMood(1, 10), repeatMood(3, 30)...)
	report := svc.AnalyzeMoodTrend(samples)
	assert.Equal(t, models.TrendStable, report.TrendDirection)
	assert.InDelta(t, 3.0, report.Average30, 0.001)
}
