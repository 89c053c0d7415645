package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/pickschedule"
	"github.com/fantachat/fantachat-api/internal/domain/team"
)

// ScheduleService owns the pick submission calendar: it generates the
// per-team slot table for a matchday, serves it with derived submission
// statuses, and renders the chat recap.
type ScheduleService struct {
	matchdayRepo matchday.Repository
	teamRepo     team.Repository
	scheduleRepo pickschedule.Repository
	blackout     pickschedule.Blackout
	location     *time.Location
	now          func() time.Time
}

func NewScheduleService(
	matchdayRepo matchday.Repository,
	teamRepo team.Repository,
	scheduleRepo pickschedule.Repository,
	location *time.Location,
) *ScheduleService {
	if location == nil {
		location = time.UTC
	}
	return &ScheduleService{
		matchdayRepo: matchdayRepo,
		teamRepo:     teamRepo,
		scheduleRepo: scheduleRepo,
		blackout:     pickschedule.DefaultBlackout(),
		location:     location,
		now:          time.Now,
	}
}

// Generate computes the slot table for an open matchday and replaces
// any previously stored schedule. Regeneration is an explicit admin
// action; the result is deterministic for the same inputs.
func (s *ScheduleService) Generate(ctx context.Context, leagueID, matchdayID string) ([]pickschedule.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate")
	defer span.End()

	md, err := s.loadMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return nil, err
	}
	if !md.IsOpen() {
		return nil, fmt.Errorf("%w: cannot generate a schedule for a locked matchday", ErrInvalidInput)
	}
	if md.DeadlineEndAt == nil {
		return nil, fmt.Errorf("%w: matchday has no deadline configured", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams for schedule: %w", err)
	}

	inputs := make([]pickschedule.TeamSlotInput, 0, len(teams))
	for _, t := range teams {
		inputs = append(inputs, pickschedule.TeamSlotInput{TeamID: t.ID, TeamName: t.Name})
	}

	slots, err := pickschedule.GenerateSlots(*md.DeadlineEndAt, md.SlotMinutes, pickschedule.OrderTeams(inputs), s.blackout, s.location)
	if err != nil {
		return nil, fmt.Errorf("generate slots: %w", err)
	}

	if _, err := s.scheduleRepo.ReplaceForMatchday(ctx, leagueID, matchdayID, slots); err != nil {
		return nil, fmt.Errorf("replace schedule for matchday: %w", err)
	}

	return slots, nil
}

// GetWithStatus returns the stored schedule with submission statuses
// recomputed from the persisted timestamps, never the stored snapshot.
func (s *ScheduleService) GetWithStatus(ctx context.Context, leagueID, matchdayID string) ([]pickschedule.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GetWithStatus")
	defer span.End()

	if _, err := s.loadMatchday(ctx, leagueID, matchdayID); err != nil {
		return nil, err
	}

	entries, err := s.scheduleRepo.ListByMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("list schedule for matchday: %w", err)
	}
	for i := range entries {
		entries[i].SubmittedStatus = pickschedule.Classify(entries[i].SlotStartAt, entries[i].SlotEndAt, entries[i].SubmittedAt)
	}

	return entries, nil
}

// Recap renders the plain-text slot summary for pasting into the league
// group chat.
func (s *ScheduleService) Recap(ctx context.Context, leagueID, matchdayID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Recap")
	defer span.End()

	md, err := s.loadMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return "", err
	}

	entries, err := s.scheduleRepo.ListByMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return "", fmt.Errorf("list schedule for recap: %w", err)
	}

	text := pickschedule.RenderRecap(md.Number, entries)
	if len(entries) > 0 && (strings.TrimSpace(text) == "" || text == pickschedule.EmptyRecapMarker) {
		return "", fmt.Errorf("render recap for matchday %s: %w", matchdayID, pickschedule.ErrEmptyRecap)
	}

	return text, nil
}

// RecordSubmission marks a team's schedule row as submitted and returns
// the derived status. A matchday without a generated schedule has no
// row to mark; the submission itself still stands.
func (s *ScheduleService) RecordSubmission(ctx context.Context, leagueID, matchdayID, teamID string, submittedAt time.Time) (pickschedule.Status, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.RecordSubmission")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	matchdayID = strings.TrimSpace(matchdayID)
	teamID = strings.TrimSpace(teamID)
	if leagueID == "" || matchdayID == "" || teamID == "" {
		return pickschedule.StatusNone, fmt.Errorf("%w: league_id, matchday_id and team_id are required", ErrInvalidInput)
	}

	entry, exists, err := s.scheduleRepo.GetByTeam(ctx, leagueID, matchdayID, teamID)
	if err != nil {
		return pickschedule.StatusNone, fmt.Errorf("get schedule entry for team: %w", err)
	}
	if !exists {
		return pickschedule.StatusNone, nil
	}

	status := pickschedule.Classify(entry.SlotStartAt, entry.SlotEndAt, &submittedAt)
	if err := s.scheduleRepo.RecordSubmission(ctx, leagueID, matchdayID, teamID, submittedAt, status); err != nil {
		return pickschedule.StatusNone, fmt.Errorf("record submission: %w", err)
	}

	return status, nil
}

func (s *ScheduleService) loadMatchday(ctx context.Context, leagueID, matchdayID string) (matchday.Matchday, error) {
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
