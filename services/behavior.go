package services

import (
	"fmt"
	"math"
	"strings"

	"journal-engagement-system/models"
)

// BehaviorScorer scores a single entry into writing-style dimensions.
// Pluggable so the keyword heuristics can be swapped for a real classifier
// without touching the recommendation selection below.
type BehaviorScorer interface {
	Score(entry models.JournalEntry) models.DimensionHits
}

// KeywordScorer flags a dimension when any of its keywords appears in the
// entry text. Crude, but cheap and predictable.
type KeywordScorer struct{}

var dimensionKeywords = struct {
	analytical, emotional, objective, reflective, structured []string
}{
	analytical: []string{"analysis", "data", "pattern"},
	emotional:  []string{"feel", "emotion"},
	objective:  []string{"today", "did", "accomplished"},
	reflective: []string{"think", "realize", "understand"},
	structured: []string{"goal", "plan", "target"},
}

func (KeywordScorer) Score(entry models.JournalEntry) models.DimensionHits {
	content := strings.ToLower(entry.Content)
	return models.DimensionHits{
		Analytical: containsAny(content, dimensionKeywords.analytical),
		Emotional:  containsAny(content, dimensionKeywords.emotional) || entry.Mood != "",
		Objective:  containsAny(content, dimensionKeywords.objective),
		Reflective: containsAny(content, dimensionKeywords.reflective),
		Structured: containsAny(content, dimensionKeywords.structured),
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

const DefaultRecommendationThreshold = 60

type BehaviorService struct {
	Scorer    BehaviorScorer
	Threshold int
}

func NewBehaviorService() *BehaviorService {
	return &BehaviorService{Scorer: KeywordScorer{}, Threshold: DefaultRecommendationThreshold}
}

// AnalyzeBehavior aggregates per-entry dimension hits over a user's history.
func (s *BehaviorService) AnalyzeBehavior(entries []models.JournalEntry) models.BehaviorAnalysis {
	if len(entries) == 0 {
		return models.BehaviorAnalysis{}
	}

	var analysis models.BehaviorAnalysis
	var totalWords int64
	for _, entry := range entries {
		hits := s.Scorer.Score(entry)
		if hits.Analytical {
			analysis.AnalyticalEntries++
		}
		if hits.Emotional {
			analysis.EmotionalEntries++
		}
		if hits.Objective {
			analysis.ObjectiveEntries++
		}
		if hits.Reflective {
			analysis.ReflectiveEntries++
		}
		if hits.Structured {
			analysis.StructuredEntries++
		}
		totalWords += entry.WordCount
	}

	analysis.TotalEntries = len(entries)
	if totalWords > 0 {
		analysis.TimeToWrite = int(math.Ceil(float64(totalWords) / 200))
	}
	analysis.ConsistencyScore = len(entries) * 10
	if analysis.ConsistencyScore > 100 {
		analysis.ConsistencyScore = 100
	}
	return analysis
}

// modeWeight pins the evaluation order so score ties resolve the same way on
// every call.
type modeWeight struct {
	mode  string
	score func(b models.BehaviorAnalysis) float64
}

var modeWeights = []modeWeight{
	// Wellness: emotional + reflective focus
	{models.ModeWellness, func(b models.BehaviorAnalysis) float64 {
		return float64(b.EmotionalEntries)*2 + float64(b.ReflectiveEntries)
	}},
	// Productivity: objective + structured focus
	{models.ModeProductivity, func(b models.BehaviorAnalysis) float64 {
		return float64(b.ObjectiveEntries)*2 + float64(b.StructuredEntries)
	}},
	// Trader: analytical + objective (decision-focused writing)
	{models.ModeTrader, func(b models.BehaviorAnalysis) float64 {
		return float64(b.AnalyticalEntries)*2 + float64(b.ObjectiveEntries)
	}},
	// Team: reflective + consistency
	{models.ModeTeam, func(b models.BehaviorAnalysis) float64 {
		return float64(b.ReflectiveEntries) + float64(b.ConsistencyScore)/20
	}},
	// Therapy: deep reflection + emotion
	{models.ModeTherapy, func(b models.BehaviorAnalysis) float64 {
		return float64(b.ReflectiveEntries)*1.5 + float64(b.EmotionalEntries)
	}},
}

// RecommendMode picks the best-scoring mode for the observed behavior.
func (s *BehaviorService) RecommendMode(behavior models.BehaviorAnalysis) models.ModeRecommendation {
	if behavior.TotalEntries == 0 {
		return models.ModeRecommendation{
			SuggestedMode: models.ModeWellness,
			Confidence:    0,
			Reason:        "Not enough data to recommend",
		}
	}

	suggested := models.ModeWellness
	maxScore := 0.0
	for _, w := range modeWeights {
		if score := w.score(behavior); score > maxScore {
			maxScore = score
			suggested = w.mode
		}
	}

	confidence := int(math.Round(math.Min(100, maxScore/float64(behavior.TotalEntries)*50)))

	var reason string
	var metrics []string
	switch {
	case suggested == models.ModeWellness && behavior.EmotionalEntries > behavior.AnalyticalEntries:
		reason = "Your entries focus on emotions and self-reflection."
		metrics = append(metrics, fmt.Sprintf("%d emotional entries", behavior.EmotionalEntries))
	case suggested == models.ModeProductivity && behavior.ObjectiveEntries > behavior.EmotionalEntries:
		reason = "Your entries emphasize achievements and goals."
		metrics = append(metrics, fmt.Sprintf("%d goal-focused entries", behavior.ObjectiveEntries))
	case suggested == models.ModeTrader && behavior.AnalyticalEntries > behavior.EmotionalEntries:
		reason = "Your entries show analytical, decision-focused thinking."
		metrics = append(metrics, fmt.Sprintf("%d analytical entries", behavior.AnalyticalEntries))
	case suggested == models.ModeTherapy && behavior.ReflectiveEntries > behavior.AnalyticalEntries:
		reason = "Your entries show deep reflection and processing."
		metrics = append(metrics, fmt.Sprintf("%d reflective entries", behavior.ReflectiveEntries))
	}

	return models.ModeRecommendation{
		SuggestedMode:     suggested,
		Confidence:        confidence,
		Reason:            reason,
		SupportingMetrics: metrics,
	}
}

// ShouldRecommendModeChange surfaces a recommendation only when confidence
// clears the threshold and the suggested mode differs from the current one —
// the guard against noisy flapping suggestions.
func (s *BehaviorService) ShouldRecommendModeChange(currentMode string, behavior models.BehaviorAnalysis) *models.ModeRecommendation {
	rec := s.RecommendMode(behavior)
	if rec.Confidence >= s.Threshold && rec.SuggestedMode != currentMode {
		return &rec
	}
	return nil
}
