package models

// Trend directions
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// Modes the product can present
const (
	ModeWellness     = "wellness"
	ModeProductivity = "productivity"
	ModeTrader       = "trader"
	ModeTeam         = "team"
	ModeTherapy      = "therapy"
)

// MoodSample is one point of the append-only mood time series supplied by
// the journal subsystem. Value is 1 (very low) to 5 (excellent).
type MoodSample struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// MoodTrendReport is the derived trend fact handed back to the caller
type MoodTrendReport struct {
	TrendDirection string  `json:"trend_direction"`
	Confidence     int     `json:"confidence"`
	Insight        string  `json:"insight"`
	Recommendation string  `json:"recommendation"`
	PredictedMood  string  `json:"predicted_mood"`
	Average7       float64 `json:"average_7"`
	Average30      float64 `json:"average_30"`
}

// JournalEntry is the read-only entry record the behavior classifier consumes
type JournalEntry struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	WordCount int64  `json:"word_count"`
}

// DimensionHits marks which writing-style dimensions a single entry exhibits
type DimensionHits struct {
	Analytical bool
	Emotional  bool
	Objective  bool
	Reflective bool
	Structured bool
}

// BehaviorAnalysis aggregates dimension counts over a user's entries
type BehaviorAnalysis struct {
	AnalyticalEntries int `json:"analytical_entries"`
	EmotionalEntries  int `json:"emotional_entries"`
	ObjectiveEntries  int `json:"objective_entries"`
	ReflectiveEntries int `json:"reflective_entries"`
	StructuredEntries int `json:"structured_entries"`
	ConsistencyScore  int `json:"consistency_score"` // 0-100
	TimeToWrite       int `json:"time_to_write"`     // estimated minutes
	TotalEntries      int `json:"total_entries"`
}

// ModeRecommendation suggests a UX mode switch based on inferred behavior
type ModeRecommendation struct {
	SuggestedMode     string   `json:"suggested_mode"`
	Confidence        int      `json:"confidence"` // 0-100
	Reason            string   `json:"reason"`
	SupportingMetrics []string `json:"supporting_metrics"`
}
