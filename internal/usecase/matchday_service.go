package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/league"
	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/platform/id"
)

type OpenMatchdayInput struct {
	LeagueID      string
	DeadlineEndAt *time.Time
	SlotMinutes   int
}

// matchdaySnapshotter decouples matchday close from the scoring service.
type matchdaySnapshotter interface {
	SnapshotMatchday(ctx context.Context, leagueID, matchdayID string, final bool) error
}

// MatchdayService drives the matchday lifecycle: open, settings update,
// close with an optional finalizing snapshot.
type MatchdayService struct {
	leagueRepo   league.Repository
	matchdayRepo matchday.Repository
	idGen        id.Generator
	snapshotter  matchdaySnapshotter
	now          func() time.Time
}

func NewMatchdayService(
	leagueRepo league.Repository,
	matchdayRepo matchday.Repository,
	idGen id.Generator,
) *MatchdayService {
	return &MatchdayService{
		leagueRepo:   leagueRepo,
		matchdayRepo: matchdayRepo,
		idGen:        idGen,
		now:          time.Now,
	}
}

func (s *MatchdayService) SetSnapshotter(snapshotter matchdaySnapshotter) {
	s.snapshotter = snapshotter
}

// Open creates the next sequential matchday. A league carries at most
// one open matchday, so an existing open one blocks the call.
func (s *MatchdayService) Open(ctx context.Context, input OpenMatchdayInput) (matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.Open")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	if input.LeagueID == "" {
		return matchday.Matchday{}, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if input.SlotMinutes == 0 {
		input.SlotMinutes = matchday.DefaultSlotMinutes
	}
	if input.SlotMinutes < 0 {
		return matchday.Matchday{}, fmt.Errorf("%w: slot_minutes must be > 0", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		return matchday.Matchday{}, fmt.Errorf("get league by id: %w", err)
	} else if !exists {
		return matchday.Matchday{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	if open, exists, err := s.matchdayRepo.GetOpenByLeague(ctx, input.LeagueID); err != nil {
		return matchday.Matchday{}, fmt.Errorf("get open matchday: %w", err)
	} else if exists {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday %d is still open", ErrInvalidInput, open.Number)
	}

	last, err := s.matchdayRepo.LastNumberByLeague(ctx, input.LeagueID)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("get last matchday number: %w", err)
	}

	item := matchday.Matchday{
		ID:            s.idGen.NewID(),
		LeagueID:      input.LeagueID,
		Number:        last + 1,
		Status:        matchday.StatusOpen,
		DeadlineEndAt: input.DeadlineEndAt,
		SlotMinutes:   input.SlotMinutes,
		CreatedAt:     s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return matchday.Matchday{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchdayRepo.Create(ctx, item); err != nil {
		return matchday.Matchday{}, fmt.Errorf("create matchday: %w", err)
	}

	return item, nil
}

// UpdateSettings changes the deadline and slot length of an open
// matchday. Schedule regeneration stays a separate explicit action.
func (s *MatchdayService) UpdateSettings(ctx context.Context, leagueID, matchdayID string, deadlineEndAt time.Time, slotMinutes int) (matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.UpdateSettings")
	defer span.End()

	md, err := s.loadMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return matchday.Matchday{}, err
	}
	if !md.IsOpen() {
		return matchday.Matchday{}, fmt.Errorf("%w: cannot change settings of a locked matchday", ErrInvalidInput)
	}
	if deadlineEndAt.IsZero() {
		return matchday.Matchday{}, fmt.Errorf("%w: deadline_end_at is required", ErrInvalidInput)
	}
	if slotMinutes <= 0 {
		return matchday.Matchday{}, fmt.Errorf("%w: slot_minutes must be > 0", ErrInvalidInput)
	}

	if err := s.matchdayRepo.UpdateSettings(ctx, matchdayID, deadlineEndAt, slotMinutes); err != nil {
		return matchday.Matchday{}, fmt.Errorf("update matchday settings: %w", err)
	}

	md.DeadlineEndAt = &deadlineEndAt
	md.SlotMinutes = slotMinutes
	return md, nil
}

// Close snapshots the matchday scores. With finalize the snapshot is
// written as final and the matchday locks; without it the matchday
// stays open and the snapshot is provisional.
func (s *MatchdayService) Close(ctx context.Context, leagueID, matchdayID string, finalize bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.Close")
	defer span.End()

	md, err := s.loadMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return err
	}
	if !md.IsOpen() {
		return fmt.Errorf("%w: matchday is already locked", ErrInvalidInput)
	}

	if s.snapshotter != nil {
		if err := s.snapshotter.SnapshotMatchday(ctx, leagueID, matchdayID, finalize); err != nil {
			return fmt.Errorf("snapshot matchday scores: %w", err)
		}
	}

	if finalize {
		if err := s.matchdayRepo.UpdateStatus(ctx, matchdayID, matchday.StatusLocked); err != nil {
			return fmt.Errorf("lock matchday: %w", err)
		}
	}

	return nil
}

func (s *MatchdayService) GetCurrent(ctx context.Context, leagueID string) (matchday.Matchday, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.GetCurrent")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return matchday.Matchday{}, false, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}

	md, exists, err := s.matchdayRepo.GetOpenByLeague(ctx, leagueID)
	if err != nil {
		return matchday.Matchday{}, false, fmt.Errorf("get open matchday: %w", err)
	}

	return md, exists, nil
}

func (s *MatchdayService) loadMatchday(ctx context.Context, leagueID, matchdayID string) (matchday.Matchday, error) {
	leagueID = strings.TrimSpace(leagueID)
	matchdayID = strings.TrimSpace(matchdayID)
	if leagueID == "" || matchdayID == "" {
		return matchday.Matchday{}, fmt.Errorf("%w: league_id and matchday_id are required", ErrInvalidInput)
	}

	md, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("get matchday by id: %w", err)
	}
	if !exists || md.LeagueID != leagueID {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
	}

	return md, nil
}
