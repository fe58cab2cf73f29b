// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartStatusSweep drives tournament status transitions on the wall clock.
// Statuses are also refreshed on read; the sweep just keeps the stored
// projection warm for listing queries.
func (s *TournamentService) StartStatusSweep() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			tournaments, err := s.Store.Tournaments.List()
			if err != nil {
				log.Printf("[Sweep] store error: %v", err)
				return
			}

			now := s.Now()
			for i := range tournaments {
				// Re-read under the tournament lock; the listed copy may be
				// stale by the time this iteration runs.
				unlock := tournamentLocks.Lock(tournaments[i].ID)
				t, ok, err := s.Store.Tournaments.ByID(tournaments[i].ID)
				if err != nil || !ok {
					unlock()
					continue
				}
				derived := TournamentStatusAt(now, t.StartDate, t.EndDate)
				if derived != t.Status {
					t.Status = derived
					if err := s.Store.Tournaments.Save(t); err != nil {
						log.Printf("[Sweep] failed to update tournament %s: %v", t.ID, err)
					} else {
						log.Printf("🏁 Tournament %s → %s", t.Name, derived)
					}
				}
				unlock()
			}
		}),
	)
}
