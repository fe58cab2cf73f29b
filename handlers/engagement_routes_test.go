package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"journal-engagement-system/services"
	"journal-engagement-system/store"
	"journal-engagement-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	st := store.NewMemory()
	progression := services.NewProgressionService(st)
	achievements := services.NewAchievementService(st)
	streaks := services.NewStreakService(st, progression)
	challenges := services.NewChallengeService(st, progression)
	analytics := services.NewAnalyticsService()
	behavior := services.NewBehaviorService()
	notifier := workers.NewNotifyWorker("")

	SetupEngagementRoutes(app, progression, achievements, streaks, challenges, analytics, behavior, notifier)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, userID string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	if len(raw) > 0 {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestActivityEndpointRequiresIdentity(t *testing.T) {
	app := newTestApp()

	status, _ := doJSON(t, app, "POST", "/user/activity", "", map[string]interface{}{"entries": 1})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestActivityEndpointRecordsAndEvaluates(t *testing.T) {
	app := newTestApp()

	status, body := doJSON(t, app, "POST", "/user/activity", "user-1", map[string]interface{}{
		"entries": 5,
		"words":   600,
	})
	assert.Equal(t, fiber.StatusOK, status)

	progress := body["progress"].(map[string]interface{})
	assert.Equal(t, float64(5), progress["total_entries"])
	assert.Equal(t, float64(2), progress["level"])

	unlocked := body["new_achievements"].([]interface{})
	assert.Len(t, unlocked, 2) // first_entry and five_entries

	status, body = doJSON(t, app, "GET", "/user/progress", "user-1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, "Beginner", stats["level_name"])
}

func TestCompleteCheckInEndpointNotFound(t *testing.T) {
	app := newTestApp()

	status, _ := doJSON(t, app, "POST", "/user/checkins/nope/complete", "user-1", map[string]interface{}{
		"journal_written": true,
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCheckInFlowEndpoints(t *testing.T) {
	app := newTestApp()

	status, body := doJSON(t, app, "POST", "/user/checkins", "user-1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	checkInID := body["id"].(string)
	assert.NotEmpty(t, checkInID)

	status, body = doJSON(t, app, "POST", "/user/checkins/"+checkInID+"/complete", "user-1", map[string]interface{}{
		"journal_written": true,
		"reflection":      "solid day",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["streak_after"])

	status, body = doJSON(t, app, "GET", "/user/streak", "user-1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["current_streak"])
}

func TestChallengeEndpoints(t *testing.T) {
	app := newTestApp()

	status, body := doJSON(t, app, "POST", "/user/challenges/morning-reflection/complete", "user-1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(10), body["reward"])

	// Repeat the same day is rejected without error
	status, body = doJSON(t, app, "POST", "/user/challenges/morning-reflection/complete", "user-1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["success"])

	status, body = doJSON(t, app, "GET", "/user/challenges", "user-1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_completed"])
}

func TestMoodTrendEndpoint(t *testing.T) {
	app := newTestApp()

	samples := make([]map[string]interface{}, 0, 10)
	for i := 0; i < 10; i++ {
		samples = append(samples, map[string]interface{}{"value": 3})
	}
	status, body := doJSON(t, app, "POST", "/analytics/mood-trend", "user-1", map[string]interface{}{
		"samples": samples,
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "stable", body["trend_direction"])
	assert.Equal(t, float64(100), body["confidence"])
}

func TestModeRecommendationEndpoint(t *testing.T) {
	app := newTestApp()

	entries := []map[string]interface{}{
		{"content": "I feel a lot of emotion and I realize things", "word_count": 100},
		{"content": "I feel grateful and I think a lot", "word_count": 100},
	}
	status, body := doJSON(t, app, "POST", "/analytics/mode-recommendation", "user-1", map[string]interface{}{
		"current_mode": "productivity",
		"entries":      entries,
	})
	assert.Equal(t, fiber.StatusOK, status)

	behavior := body["behavior"].(map[string]interface{})
	assert.Equal(t, float64(2), behavior["emotional_entries"])

	rec := body["recommendation"].(map[string]interface{})
	assert.Equal(t, "wellness", rec["suggested_mode"])
}
