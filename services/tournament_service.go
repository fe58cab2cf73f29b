package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"journal-engagement-system/models"
	"journal-engagement-system/store"
	"journal-engagement-system/utils"

	"github.com/google/uuid"
)

// tournamentLocks serializes per-tournament mutations (join, leaderboard
// replace) without blocking unrelated tournaments.
var tournamentLocks = utils.NewKeyedMutex()

type TournamentService struct {
	Store *store.Store

	Now func() time.Time
}

func NewTournamentService(st *store.Store) *TournamentService {
	return &TournamentService{Store: st, Now: time.Now}
}

// TournamentStatusAt derives the status from the clock — the stored column
// is only a cached projection of this.
func TournamentStatusAt(now, start, end time.Time) string {
	if now.Before(start) {
		return models.TournamentUpcoming
	}
	if now.Before(end) {
		return models.TournamentActive
	}
	return models.TournamentCompleted
}

// endDateFor derives the end from the type: weekly +7d, monthly +1 calendar
// month, seasonal +30d.
func endDateFor(tournamentType string, start time.Time) time.Time {
	switch tournamentType {
	case models.TournamentWeekly:
		return start.AddDate(0, 0, 7)
	case models.TournamentMonthly:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 30)
	}
}

func prizeFor(tournamentType string) string {
	switch tournamentType {
	case models.TournamentWeekly:
		return "500 AI Prompts"
	case models.TournamentMonthly:
		return "2000 AI Prompts"
	default:
		return "10000 AI Prompts"
	}
}

func validTournamentType(t string) bool {
	return t == models.TournamentWeekly || t == models.TournamentMonthly || t == models.TournamentSeasonal
}

// CreateTournament starts a tournament now; the end date follows from the type.
func (s *TournamentService) CreateTournament(name, description, tournamentType string) (*models.Tournament, error) {
	if !validTournamentType(tournamentType) {
		return nil, fmt.Errorf("unknown tournament type %q", tournamentType)
	}

	now := s.Now()
	t := &models.Tournament{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		Type:         tournamentType,
		StartDate:    now,
		EndDate:      endDateFor(tournamentType, now),
		Prize:        prizeFor(tournamentType),
		Rules:        "Most journal entries wins!",
		Participants: []string{},
		Leaderboard:  []models.LeaderboardEntry{},
	}
	t.Status = TournamentStatusAt(now, t.StartDate, t.EndDate)

	if err := s.Store.Tournaments.Save(t); err != nil {
		return nil, err
	}
	log.Printf("🏆 Tournament created: %s (%s, ends %s)", t.Name, t.Type, t.EndDate.Format(time.DateOnly))
	t.ParticipantCount = len(t.Participants)
	return t, nil
}

// JoinTournament adds a participant. Re-joining and unknown ids are no-ops
// reported through the boolean.
func (s *TournamentService) JoinTournament(tournamentID, userID string) (bool, error) {
	unlock := tournamentLocks.Lock(tournamentID)
	defer unlock()

	t, ok, err := s.Store.Tournaments.ByID(tournamentID)
	if err != nil || !ok {
		return false, err
	}
	for _, p := range t.Participants {
		if p == userID {
			return false, nil
		}
	}
	t.Participants = append(t.Participants, userID)
	if err := s.Store.Tournaments.Save(t); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateLeaderboard replaces the leaderboard projection: entries sorted by
// score descending, dense ranks 1..N, stable on ties.
func (s *TournamentService) UpdateLeaderboard(tournamentID string, entries []models.LeaderboardEntry) (bool, error) {
	unlock := tournamentLocks.Lock(tournamentID)
	defer unlock()

	t, ok, err := s.Store.Tournaments.ByID(tournamentID)
	if err != nil || !ok {
		return false, err
	}

	ranked := make([]models.LeaderboardEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	t.Leaderboard = ranked
	if err := s.Store.Tournaments.Save(t); err != nil {
		return false, err
	}
	return true, nil
}

// GetTournamentByID returns a tournament with its status projection
// refreshed opportunistically.
func (s *TournamentService) GetTournamentByID(id string) (*models.Tournament, bool, error) {
	t, ok, err := s.refreshStatus(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	t.ParticipantCount = len(t.Participants)
	return t, true, nil
}

// GetActiveTournaments lists tournaments whose derived status is active.
func (s *TournamentService) GetActiveTournaments() ([]models.Tournament, error) {
	all, err := s.Store.Tournaments.List()
	if err != nil {
		return nil, err
	}
	var active []models.Tournament
	for i := range all {
		t, ok, err := s.refreshStatus(all[i].ID)
		if err != nil {
			return nil, err
		}
		if !ok || t.Status != models.TournamentActive {
			continue
		}
		t.ParticipantCount = len(t.Participants)
		active = append(active, *t)
	}
	return active, nil
}

// GetAllTournaments lists every tournament with refreshed status.
func (s *TournamentService) GetAllTournaments() ([]models.Tournament, error) {
	all, err := s.Store.Tournaments.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.Tournament, 0, len(all))
	for i := range all {
		t, ok, err := s.refreshStatus(all[i].ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		t.ParticipantCount = len(t.Participants)
		out = append(out, *t)
	}
	return out, nil
}

// refreshStatus re-derives the cached status under the tournament lock and
// returns the fresh record. The re-read plus locked save keeps a refresh that
// fires across a status transition from overwriting a concurrent join or
// leaderboard write with a stale copy.
func (s *TournamentService) refreshStatus(id string) (*models.Tournament, bool, error) {
	unlock := tournamentLocks.Lock(id)
	defer unlock()

	t, ok, err := s.Store.Tournaments.ByID(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	derived := TournamentStatusAt(s.Now(), t.StartDate, t.EndDate)
	if derived != t.Status {
		t.Status = derived
		if err := s.Store.Tournaments.Save(t); err != nil {
			return nil, false, err
		}
	}
	return t, true, nil
}

// InitializeDefaultTournaments seeds the standing competitions. Skipped when
// any tournament already exists, so restarts don't duplicate.
func (s *TournamentService) InitializeDefaultTournaments() error {
	existing, err := s.Store.Tournaments.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []struct{ name, description, tournamentType string }{
		{"Weekly Writing Challenge", "Write the most entries this week", models.TournamentWeekly},
		{"Monthly Consistency Challenge", "Maintain your streak throughout the month", models.TournamentMonthly},
		{"Seasonal Journaling Marathon", "Epic 30-day writing marathon", models.TournamentSeasonal},
	}
	for _, d := range defaults {
		if _, err := s.CreateTournament(d.name, d.description, d.tournamentType); err != nil {
			return err
		}
	}
	return nil
}
