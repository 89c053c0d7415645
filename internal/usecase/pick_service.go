package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/pick"
	"github.com/fantachat/fantachat-api/internal/domain/pickschedule"
	"github.com/fantachat/fantachat-api/internal/domain/player"
	"github.com/fantachat/fantachat-api/internal/domain/realteam"
	"github.com/fantachat/fantachat-api/internal/domain/user"
)

// Each fantasy team may field at most one player from a top-6 club.
const maxTop6Picks = 1

type SavePicksInput struct {
	GoalkeeperID string
	DefenderID   string
	MidfielderID string
	ForwardID    string
}

// submissionRecorder lets the pick flow stamp the schedule row without
// depending on the whole schedule service.
type submissionRecorder interface {
	RecordSubmission(ctx context.Context, leagueID, matchdayID, teamID string, submittedAt time.Time) (pickschedule.Status, error)
}

// PickService validates and stores the weekly four-player pick.
type PickService struct {
	matchdayRepo matchday.Repository
	playerRepo   player.Repository
	realteamRepo realteam.Repository
	pickRepo     pick.Repository
	recorder     submissionRecorder
	now          func() time.Time
}

func NewPickService(
	matchdayRepo matchday.Repository,
	playerRepo player.Repository,
	realteamRepo realteam.Repository,
	pickRepo pick.Repository,
) *PickService {
	return &PickService{
		matchdayRepo: matchdayRepo,
		playerRepo:   playerRepo,
		realteamRepo: realteamRepo,
		pickRepo:     pickRepo,
		now:          time.Now,
	}
}

func (s *PickService) SetSubmissionRecorder(recorder submissionRecorder) {
	s.recorder = recorder
}

// Save applies the full pick rule set in the order the client expects
// the failures: locked matchday, double submission, unknown or
// wrong-role players, duplicate clubs, top-6 quota, taken players.
func (s *PickService) Save(ctx context.Context, principal user.Principal, matchdayID string, input SavePicksInput) (pick.Pick, pickschedule.Status, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Save")
	defer span.End()

	if !principal.HasLeagueContext() {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("%w: caller has no team in this league", ErrUnauthorized)
	}

	input.GoalkeeperID = strings.TrimSpace(input.GoalkeeperID)
	input.DefenderID = strings.TrimSpace(input.DefenderID)
	input.MidfielderID = strings.TrimSpace(input.MidfielderID)
	input.ForwardID = strings.TrimSpace(input.ForwardID)
	matchdayID = strings.TrimSpace(matchdayID)
	if matchdayID == "" {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("%w: matchday_id is required", ErrInvalidInput)
	}
	if input.GoalkeeperID == "" || input.DefenderID == "" || input.MidfielderID == "" || input.ForwardID == "" {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("%w: all four pick slots are required", ErrInvalidInput)
	}

	md, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID)
	if err != nil {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("get matchday by id: %w", err)
	}
	if !exists || md.LeagueID != principal.LeagueID {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
	}
	if !md.IsOpen() {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("save picks: %w", pick.ErrMatchdayLocked)
	}

	if _, already, err := s.pickRepo.GetByTeam(ctx, principal.LeagueID, matchdayID, principal.TeamID); err != nil {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("get existing pick: %w", err)
	} else if already {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("save picks: %w", pick.ErrAlreadySubmitted)
	}

	item := pick.Pick{
		LeagueID:    principal.LeagueID,
		MatchdayID:  matchdayID,
		TeamID:      principal.TeamID,
		GKPlayerID:  input.GoalkeeperID,
		DefPlayerID: input.DefenderID,
		MidPlayerID: input.MidfielderID,
		FwdPlayerID: input.ForwardID,
	}

	playersByID, err := s.loadPickedPlayers(ctx, item)
	if err != nil {
		return pick.Pick{}, pickschedule.StatusNone, err
	}
	if err := validatePickRoles(item, playersByID); err != nil {
		return pick.Pick{}, pickschedule.StatusNone, err
	}
	if err := validateDistinctClubs(item, playersByID); err != nil {
		return pick.Pick{}, pickschedule.StatusNone, err
	}
	if err := s.validateTop6Quota(ctx, item, playersByID); err != nil {
		return pick.Pick{}, pickschedule.StatusNone, err
	}
	if err := s.validatePlayersFree(ctx, item); err != nil {
		return pick.Pick{}, pickschedule.StatusNone, err
	}

	item.SubmittedAt = s.now().UTC()
	if err := s.pickRepo.Create(ctx, item); err != nil {
		return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("create pick: %w", err)
	}

	status := pickschedule.StatusNone
	if s.recorder != nil {
		status, err = s.recorder.RecordSubmission(ctx, item.LeagueID, item.MatchdayID, item.TeamID, item.SubmittedAt)
		if err != nil {
			return pick.Pick{}, pickschedule.StatusNone, fmt.Errorf("record schedule submission: %w", err)
		}
	}

	return item, status, nil
}

func (s *PickService) GetByTeam(ctx context.Context, principal user.Principal, matchdayID string) (pick.Pick, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetByTeam")
	defer span.End()

	if !principal.HasLeagueContext() {
		return pick.Pick{}, false, fmt.Errorf("%w: caller has no team in this league", ErrUnauthorized)
	}
	matchdayID = strings.TrimSpace(matchdayID)
	if matchdayID == "" {
		return pick.Pick{}, false, fmt.Errorf("%w: matchday_id is required", ErrInvalidInput)
	}

	item, exists, err := s.pickRepo.GetByTeam(ctx, principal.LeagueID, matchdayID, principal.TeamID)
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("get pick by team: %w", err)
	}

	return item, exists, nil
}

func (s *PickService) loadPickedPlayers(ctx context.Context, item pick.Pick) (map[string]player.Player, error) {
	ids := item.PlayerIDs()
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) != len(ids) {
		return nil, fmt.Errorf("%w: the four picks must be distinct players", ErrInvalidInput)
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get picked players: %w", err)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown player id %s", ErrInvalidInput, id)
		}
		if !p.Active {
			return nil, fmt.Errorf("%w: player %s is not active", ErrInvalidInput, id)
		}
	}

	return byID, nil
}

func validatePickRoles(item pick.Pick, playersByID map[string]player.Player) error {
	slots := []struct {
		playerID string
		role     string
	}{
		{item.GKPlayerID, player.RoleGoalkeeper},
		{item.DefPlayerID, player.RoleDefender},
		{item.MidPlayerID, player.RoleMidfielder},
		{item.FwdPlayerID, player.RoleForward},
	}
	for _, slot := range slots {
		if playersByID[slot.playerID].Role != slot.role {
			return fmt.Errorf("player %s is not a %s: %w", slot.playerID, slot.role, pick.ErrWrongRole)
		}
	}

	return nil
}

func validateDistinctClubs(item pick.Pick, playersByID map[string]player.Player) error {
	clubs := make(map[string]struct{}, 4)
	for _, id := range item.PlayerIDs() {
		club := playersByID[id].RealTeamID
		if _, dup := clubs[club]; dup {
			return fmt.Errorf("two picks from club %s: %w", club, pick.ErrDuplicateRealTeam)
		}
		clubs[club] = struct{}{}
	}

	return nil
}

func (s *PickService) validateTop6Quota(ctx context.Context, item pick.Pick, playersByID map[string]player.Player) error {
	top6, err := s.realteamRepo.ListTop6(ctx, item.MatchdayID)
	if err != nil {
		return fmt.Errorf("list top6 clubs: %w", err)
	}
	if len(top6) == 0 {
		return nil
	}

	top6Set := make(map[string]struct{}, len(top6))
	for _, entry := range top6 {
		top6Set[entry.RealTeamID] = struct{}{}
	}

	count := 0
	for _, id := range item.PlayerIDs() {
		if _, hit := top6Set[playersByID[id].RealTeamID]; hit {
			count++
		}
	}
	if count > maxTop6Picks {
		return fmt.Errorf("%d picks from top-6 clubs: %w", count, pick.ErrTooManyTop6)
	}

	return nil
}

func (s *PickService) validatePlayersFree(ctx context.Context, item pick.Pick) error {
	existing, err := s.pickRepo.ListByMatchday(ctx, item.LeagueID, item.MatchdayID)
	if err != nil {
		return fmt.Errorf("list matchday picks: %w", err)
	}

	taken := make(map[string]struct{})
	for _, other := range existing {
		if other.TeamID == item.TeamID {
			continue
		}
		for _, id := range other.PlayerIDs() {
			taken[id] = struct{}{}
		}
	}
	for _, id := range item.PlayerIDs() {
		if _, hit := taken[id]; hit {
			return fmt.Errorf("player %s: %w", id, pick.ErrPlayerAlreadyTaken)
		}
	}

	return nil
}
