package services

import (
	"fmt"
	"math"

	"journal-engagement-system/models"
)

var moodLabels = map[int]string{
	1: "😢 Very Low",
	2: "😟 Low",
	3: "😐 Neutral",
	4: "🙂 Good",
	5: "😊 Excellent",
}

var trendRecommendations = map[string]string{
	models.TrendImproving: "Keep up the positive momentum! Your recent entries show you're on an upward trajectory.",
	models.TrendDeclining: "It looks like things have been challenging. Consider writing more to process your feelings.",
	models.TrendStable:    "You're maintaining consistency. Try exploring new topics to deepen your reflections.",
}

type AnalyticsService struct{}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

// AnalyzeMoodTrend classifies the direction of a mood time series by
// comparing the 7-sample mean against the 30-sample mean. Fewer than two
// samples short-circuits to the stable default — never a division by zero.
func (s *AnalyticsService) AnalyzeMoodTrend(samples []models.MoodSample) models.MoodTrendReport {
	if len(samples) < 2 {
		return models.MoodTrendReport{
			TrendDirection: models.TrendStable,
			Confidence:     0,
			Insight:        "Not enough data yet. Keep journaling!",
			Recommendation: "Add more entries to unlock insights",
			PredictedMood:  "😊",
		}
	}

	last7 := tail(samples, 7)
	last30 := tail(samples, 30)
	avg7 := mean(last7)
	avg30 := mean(last30)

	direction := models.TrendStable
	if avg7 > avg30*1.1 {
		direction = models.TrendImproving
	} else if avg7 < avg30*0.9 {
		direction = models.TrendDeclining
	}

	confidence := int(math.Round(math.Min(100, float64(len(last7))/7*100)))

	predicted := moodLabels[int(math.Round(avg7))]
	if predicted == "" {
		predicted = moodLabels[5]
	}

	return models.MoodTrendReport{
		TrendDirection: direction,
		Confidence:     confidence,
		Insight:        fmt.Sprintf("Your mood has been **%s** over the past week. Average: %.1f/5.", direction, avg7),
		Recommendation: trendRecommendations[direction],
		PredictedMood:  predicted,
		Average7:       avg7,
		Average30:      avg30,
	}
}

func tail(samples []models.MoodSample, n int) []models.MoodSample {
	if len(samples) <= n {
		return samples
	}
	return samples[len(samples)-n:]
}

func mean(samples []models.MoodSample) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += float64(s.Value)
	}
	return sum / float64(len(samples))
}
