package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"journal-engagement-system/models"
)

// NotifyWorker forwards derived engagement events (unlocks, milestones,
// challenge rewards) to an external notification service. The engine itself
// never notifies users; this worker is the caller-side bridge.
type NotifyWorker struct {
	WebhookURL string
	HTTPClient *http.Client
	events     chan models.EngagementEvent
}

func NewNotifyWorker(webhookURL string) *NotifyWorker {
	return &NotifyWorker{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		events:     make(chan models.EngagementEvent, 256),
	}
}

// Publish queues events for delivery. Nil-safe and non-blocking: when the
// buffer is full the event is dropped with a log line — notifications are
// best-effort, the persisted derived state is the source of truth.
func (w *NotifyWorker) Publish(events ...models.EngagementEvent) {
	if w == nil {
		return
	}
	for _, ev := range events {
		select {
		case w.events <- ev:
		default:
			log.Printf("⚠️ [Notify] buffer full, dropping %s event for %s", ev.Type, ev.UserID)
		}
	}
}

// Run drains the queue until the context is cancelled.
func (w *NotifyWorker) Run(ctx context.Context) {
	log.Println("Starting engagement notify worker...")
	for {
		select {
		case <-ctx.Done():
			log.Println("Notify worker stopped.")
			return
		case ev := <-w.events:
			w.deliver(ctx, ev)
		}
	}
}

func (w *NotifyWorker) deliver(ctx context.Context, ev models.EngagementEvent) {
	if w.WebhookURL == "" {
		log.Printf("🔔 [Notify] %s: %s", ev.UserID, ev.Message)
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("❌ [Notify] failed to encode event: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.WebhookURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ [Notify] failed to create request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.HTTPClient.Do(req)
	if err != nil {
		log.Printf("❌ [Notify] delivery failed for %s: %v", ev.Type, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("❌ [Notify] notifier returned status %d for %s", resp.StatusCode, ev.Type)
	}
}
