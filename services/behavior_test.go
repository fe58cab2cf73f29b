package services

import (
	"testing"

	"journal-engagement-system/models"

	"github.com/stretchr/testify/assert"
)

func TestKeywordScorer(t *testing.T) {
	scorer := KeywordScorer{}

	hits := scorer.Score(models.JournalEntry{
		Content: "Today I did an analysis of my savings and set a new goal.",
	})
	assert.True(t, hits.Analytical)
	assert.True(t, hits.Objective)
	assert.True(t, hits.Structured)
	assert.False(t, hits.Emotional)
	assert.False(t, hits.Reflective)

	// A recorded mood counts as an emotional signal even without keywords
	hits = scorer.Score(models.JournalEntry{Content: "Nothing much happened.", Mood: "😊"})
	assert.True(t, hits.Emotional)

	// Matching is case-insensitive
	hits = scorer.Score(models.JournalEntry{Content: "I REALIZE I need to THINK more."})
	assert.True(t, hits.Reflective)
}

func TestAnalyzeBehaviorEmpty(t *testing.T) {
	svc := NewBehaviorService()

	analysis := svc.AnalyzeBehavior(nil)
	assert.Zero(t, analysis.TotalEntries)
	assert.Zero(t, analysis.ConsistencyScore)
}

func TestAnalyzeBehaviorAggregates(t *testing.T) {
	svc := NewBehaviorService()

	entries := []models.JournalEntry{
		{Content: "I feel overwhelmed by emotion today", WordCount: 150},
		{Content: "My goal is a better plan for the week", WordCount: 250},
		{Content: "I realize the pattern in my data", WordCount: 100},
	}
	analysis := svc.AnalyzeBehavior(entries)
	assert.Equal(t, 3, analysis.TotalEntries)
	assert.Equal(t, 1, analysis.EmotionalEntries)
	assert.Equal(t, 1, analysis.StructuredEntries)
	assert.Equal(t, 1, analysis.AnalyticalEntries)
	assert.Equal(t, 1, analysis.ReflectiveEntries)
	assert.Equal(t, 30, analysis.ConsistencyScore)
	assert.Equal(t, 3, analysis.TimeToWrite) // ceil(500 words / 200 wpm)
}

func TestAnalyzeBehaviorConsistencyCaps(t *testing.T) {
	svc := NewBehaviorService()

	entries := make([]models.JournalEntry, 15)
	analysis := svc.AnalyzeBehavior(entries)
	assert.Equal(t, 100, analysis.ConsistencyScore)
}

func TestRecommendModeNoData(t *testing.T) {
	svc := NewBehaviorService()

	rec := svc.RecommendMode(models.BehaviorAnalysis{})
	assert.Equal(t, models.ModeWellness, rec.SuggestedMode)
	assert.Zero(t, rec.Confidence)
	assert.Equal(t, "Not enough data to recommend", rec.Reason)
}

func TestRecommendModePicksDominantStyle(t *testing.T) {
	svc := NewBehaviorService()

	rec := svc.RecommendMode(models.BehaviorAnalysis{
		TotalEntries:      5,
		ObjectiveEntries:  5,
		StructuredEntries: 3,
	})
	assert.Equal(t, models.ModeProductivity, rec.SuggestedMode)
	assert.NotEmpty(t, rec.Reason)
	assert.NotEmpty(t, rec.SupportingMetrics)

	rec = svc.RecommendMode(models.BehaviorAnalysis{
		TotalEntries:      5,
		AnalyticalEntries: 5,
		ObjectiveEntries:  2,
	})
	assert.Equal(t, models.ModeTrader, rec.SuggestedMode)
}

func TestRecommendModeTieKeepsFirstListed(t *testing.T) {
	svc := NewBehaviorService()

	// Wellness and productivity both score 2; wellness wins the tie
	rec := svc.RecommendMode(models.BehaviorAnalysis{
		TotalEntries:     2,
		EmotionalEntries: 1,
		ObjectiveEntries: 1,
	})
	assert.Equal(t, models.ModeWellness, rec.SuggestedMode)
}

func TestShouldRecommendModeChange(t *testing.T) {
	svc := NewBehaviorService()

	behavior := models.BehaviorAnalysis{
		TotalEntries:      5,
		EmotionalEntries:  5,
		ReflectiveEntries: 5,
	}

	// Confident suggestion, but the user already runs that mode
	assert.Nil(t, svc.ShouldRecommendModeChange(models.ModeWellness, behavior))

	rec := svc.ShouldRecommendModeChange(models.ModeProductivity, behavior)
	assert.NotNil(t, rec)
	assert.Equal(t, models.ModeWellness, rec.SuggestedMode)
	assert.GreaterOrEqual(t, rec.Confidence, svc.Threshold)
}

func TestShouldRecommendModeChangeBelowThreshold(t *testing.T) {
	svc := NewBehaviorService()

	// One weak signal across many entries keeps confidence low
	behavior := models.BehaviorAnalysis{
		TotalEntries:     10,
		EmotionalEntries: 1,
	}
	assert.Nil(t, svc.ShouldRecommendModeChange(models.ModeProductivity, behavior))
}
