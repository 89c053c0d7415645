package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fantachat/fantachat-api/internal/domain/fixture"
	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/pick"
	"github.com/fantachat/fantachat-api/internal/domain/player"
	"github.com/fantachat/fantachat-api/internal/domain/rating"
	"github.com/fantachat/fantachat-api/internal/domain/realteam"
)

type PickedPlayer struct {
	Player player.Player
	Vote   *float64
}

type RatingInput struct {
	PlayerID string
	Vote     float64
}

type Top6Club struct {
	Rank int
	Club realteam.RealTeam
}

type FixtureInput struct {
	HomeClubID string
	AwayClubID string
}

type MatchFixture struct {
	Position int
	Home     realteam.RealTeam
	Away     realteam.RealTeam
}

// RatingService backs the admin matchday data entry: the round's
// fixtures, the distinct picked players with their votes, and the
// top-6 selection.
type RatingService struct {
	matchdayRepo matchday.Repository
	pickRepo     pick.Repository
	playerRepo   player.Repository
	ratingRepo   rating.Repository
	realteamRepo realteam.Repository
	fixtureRepo  fixture.Repository
}

func NewRatingService(
	matchdayRepo matchday.Repository,
	pickRepo pick.Repository,
	playerRepo player.Repository,
	ratingRepo rating.Repository,
	realteamRepo realteam.Repository,
	fixtureRepo fixture.Repository,
) *RatingService {
	return &RatingService{
		matchdayRepo: matchdayRepo,
		pickRepo:     pickRepo,
		playerRepo:   playerRepo,
		ratingRepo:   ratingRepo,
		realteamRepo: realteamRepo,
		fixtureRepo:  fixtureRepo,
	}
}

// PickedPlayers returns every player picked in the matchday with their
// current vote, ordered GK-DEF-MID-FWD then by name.
func (s *RatingService) PickedPlayers(ctx context.Context, leagueID, matchdayID string) ([]PickedPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.PickedPlayers")
	defer span.End()

	if _, err := s.loadMatchday(ctx, leagueID, matchdayID); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("list matchday picks: %w", err)
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0, len(picks)*4)
	for _, item := range picks {
		for _, id := range item.PlayerIDs() {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []PickedPlayer{}, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get picked players: %w", err)
	}

	votes, err := s.voteIndex(ctx, matchdayID)
	if err != nil {
		return nil, err
	}

	out := make([]PickedPlayer, 0, len(players))
	for _, p := range players {
		row := PickedPlayer{Player: p}
		if vote, ok := votes[p.ID]; ok {
			v := vote
			row.Vote = &v
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := player.RoleSortIndex(out[i].Player.Role), player.RoleSortIndex(out[j].Player.Role)
		if ri != rj {
			return ri < rj
		}
		return out[i].Player.Name < out[j].Player.Name
	})

	return out, nil
}

// UpsertBulk writes the admin's votes for a matchday. Votes replace any
// previous value for the same player.
func (s *RatingService) UpsertBulk(ctx context.Context, leagueID, matchdayID string, items []RatingInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.UpsertBulk")
	defer span.End()

	if _, err := s.loadMatchday(ctx, leagueID, matchdayID); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: at least one rating is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(items))
	rows := make([]rating.Rating, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		playerID := strings.TrimSpace(item.PlayerID)
		if playerID == "" {
			return 0, fmt.Errorf("%w: rating player id cannot be empty", ErrInvalidInput)
		}
		if _, dup := seen[playerID]; dup {
			return 0, fmt.Errorf("%w: duplicate rating for player %s", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}

		row := rating.Rating{MatchdayID: matchdayID, PlayerID: playerID, Vote: item.Vote}
		if err := row.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rows = append(rows, row)
		ids = append(ids, playerID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("get rated players: %w", err)
	}
	if len(players) != len(ids) {
		return 0, fmt.Errorf("%w: some rated players do not exist", ErrInvalidInput)
	}

	count, err := s.ratingRepo.UpsertBulk(ctx, matchdayID, rows)
	if err != nil {
		return 0, fmt.Errorf("upsert ratings: %w", err)
	}

	return count, nil
}

func (s *RatingService) GetTop6(ctx context.Context, leagueID, matchdayID string) ([]Top6Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.GetTop6")
	defer span.End()

	if _, err := s.loadMatchday(ctx, leagueID, matchdayID); err != nil {
		return nil, err
	}

	entries, err := s.realteamRepo.ListTop6(ctx, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("list top6: %w", err)
	}
	if len(entries) == 0 {
		return []Top6Club{}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.RealTeamID)
	}
	clubs, err := s.realteamRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get top6 clubs: %w", err)
	}
	clubsByID := make(map[string]realteam.RealTeam, len(clubs))
	for _, club := range clubs {
		clubsByID[club.ID] = club
	}

	out := make([]Top6Club, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Top6Club{Rank: entry.Rank, Club: clubsByID[entry.RealTeamID]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	return out, nil
}

// SetTop6 replaces the matchday's ranked top-6 clubs. Exactly six
// distinct existing clubs, ranked by position in the input.
func (s *RatingService) SetTop6(ctx context.Context, leagueID, matchdayID string, clubIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.SetTop6")
	defer span.End()

	if _, err := s.loadMatchday(ctx, leagueID, matchdayID); err != nil {
		return err
	}
	if len(clubIDs) != realteam.Top6Size {
		return fmt.Errorf("%w: exactly %d clubs are required", ErrInvalidInput, realteam.Top6Size)
	}

	seen := make(map[string]struct{}, len(clubIDs))
	entries := make([]realteam.Top6Entry, 0, len(clubIDs))
	for i, clubID := range clubIDs {
		clubID = strings.TrimSpace(clubID)
		if clubID == "" {
			return fmt.Errorf("%w: club id cannot be empty", ErrInvalidInput)
		}
		if _, dup := seen[clubID]; dup {
			return fmt.Errorf("%w: duplicate club %s in top6", ErrInvalidInput, clubID)
		}
		seen[clubID] = struct{}{}
		entries = append(entries, realteam.Top6Entry{MatchdayID: matchdayID, Rank: i + 1, RealTeamID: clubID})
	}

	clubs, err := s.realteamRepo.GetByIDs(ctx, clubIDs)
	if err != nil {
		return fmt.Errorf("get top6 clubs: %w", err)
	}
	if len(clubs) != len(clubIDs) {
		return fmt.Errorf("%w: some clubs do not exist", ErrInvalidInput)
	}

	if _, err := s.realteamRepo.ReplaceTop6(ctx, matchdayID, entries); err != nil {
		return fmt.Errorf("replace top6: %w", err)
	}

	return nil
}

// SetFixtures replaces the matchday's real-match pairings. Every club
// appears in at most one pairing of the round.
func (s *RatingService) SetFixtures(ctx context.Context, leagueID, matchdayID string, pairs []FixtureInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.SetFixtures")
	defer span.End()

	if _, err := s.loadMatchday(ctx, leagueID, matchdayID); err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("%w: at least one fixture is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(pairs)*2)
	rows := make([]fixture.Fixture, 0, len(pairs))
	ids := make([]string, 0, len(pairs)*2)
	for i, pair := range pairs {
		row := fixture.Fixture{
			MatchdayID: matchdayID,
			Position:   i + 1,
			HomeClubID: strings.TrimSpace(pair.HomeClubID),
			AwayClubID: strings.TrimSpace(pair.AwayClubID),
		}
		if err := row.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		for _, clubID := range []string{row.HomeClubID, row.AwayClubID} {
			if _, dup := seen[clubID]; dup {
				return fmt.Errorf("%w: club %s appears in more than one fixture", ErrInvalidInput, clubID)
			}
			seen[clubID] = struct{}{}
			ids = append(ids, clubID)
		}
		rows = append(rows, row)
	}

	clubs, err := s.realteamRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("get fixture clubs: %w", err)
	}
	if len(clubs) != len(ids) {
		return fmt.Errorf("%w: some fixture clubs do not exist", ErrInvalidInput)
	}

	if _, err := s.fixtureRepo.ReplaceForMatchday(ctx, matchdayID, rows); err != nil {
		return fmt.Errorf("replace fixtures: %w", err)
	}

	return nil
}

// ListFixtures returns the matchday's pairings in round order.
func (s *RatingService) ListFixtures(ctx context.Context, leagueID, matchdayID string) ([]MatchFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.ListFixtures")
	defer span.End()

	if _, err := s.loadMatchday(ctx, leagueID, matchdayID); err != nil {
		return nil, err
	}

	rows, err := s.fixtureRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	if len(rows) == 0 {
		return []MatchFixture{}, nil
	}

	ids := make([]string, 0, len(rows)*2)
	for _, row := range rows {
		ids = append(ids, row.HomeClubID, row.AwayClubID)
	}
	clubs, err := s.realteamRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get fixture clubs: %w", err)
	}
	clubsByID := make(map[string]realteam.RealTeam, len(clubs))
	for _, club := range clubs {
		clubsByID[club.ID] = club
	}

	out := make([]MatchFixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, MatchFixture{
			Position: row.Position,
			Home:     clubsByID[row.HomeClubID],
			Away:     clubsByID[row.AwayClubID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out, nil
}

func (s *RatingService) voteIndex(ctx context.Context, matchdayID string) (map[string]float64, error) {
	ratings, err := s.ratingRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("list matchday ratings: %w", err)
	}
	votes := make(map[string]float64, len(ratings))
	for _, r := range ratings {
		votes[r.PlayerID] = r.Vote
	}
	return votes, nil
}

func (s *RatingService) loadMatchday(ctx context.Context, leagueID, matchdayID string) (matchday.Matchday, error) {
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
