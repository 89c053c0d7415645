package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/pick"
	"github.com/fantachat/fantachat-api/internal/domain/player"
	"github.com/fantachat/fantachat-api/internal/domain/rating"
	"github.com/fantachat/fantachat-api/internal/domain/scoring"
	"github.com/fantachat/fantachat-api/internal/domain/team"
	"github.com/fantachat/fantachat-api/internal/domain/user"
	"github.com/fantachat/fantachat-api/internal/platform/cache"
)

type LineupPlayer struct {
	Player player.Player
	Vote   *float64
}

type MatchdayLineup struct {
	Players []LineupPlayer
	Total   float64
}

type MatchdayResult struct {
	MatchdayNumber int
	Score          float64
	IsFinal        bool
}

type SeasonStats struct {
	Rank      int
	TeamCount int
	Total     float64
	Average   float64
	Best      float64
	Worst     float64
	Played    int
	History   []MatchdayResult
}

// ScoringService computes the live matchday totals and every standing
// read model derived from the score snapshots.
type ScoringService struct {
	matchdayRepo matchday.Repository
	teamRepo     team.Repository
	pickRepo     pick.Repository
	ratingRepo   rating.Repository
	playerRepo   player.Repository
	scoreRepo    scoring.Repository
	store        *cache.Store
	pool         *ants.Pool
}

func NewScoringService(
	matchdayRepo matchday.Repository,
	teamRepo team.Repository,
	pickRepo pick.Repository,
	ratingRepo rating.Repository,
	playerRepo player.Repository,
	scoreRepo scoring.Repository,
	store *cache.Store,
	pool *ants.Pool,
) *ScoringService {
	return &ScoringService{
		matchdayRepo: matchdayRepo,
		teamRepo:     teamRepo,
		pickRepo:     pickRepo,
		ratingRepo:   ratingRepo,
		playerRepo:   playerRepo,
		scoreRepo:    scoreRepo,
		store:        store,
		pool:         pool,
	}
}

// LiveScores computes the current per-team totals of a matchday: the
// sum of the team's four picked players' votes, a missing vote counts
// zero, a team without a pick scores zero. Descending by total.
func (s *ScoringService) LiveScores(ctx context.Context, leagueID, matchdayID string) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.LiveScores")
	defer span.End()

	md, err := s.loadMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return nil, err
	}

	if s.store == nil {
		return s.computeLive(ctx, md)
	}

	key := "scores:" + leagueID + ":" + matchdayID
	value, err := s.store.GetOrLoad(key, func() (any, error) {
		return s.computeLive(ctx, md)
	})
	if err != nil {
		return nil, err
	}

	return value.([]scoring.TeamScore), nil
}

// SnapshotMatchday persists the current totals as the matchday's score
// rows, provisional or final, replacing any previous snapshot.
func (s *ScoringService) SnapshotMatchday(ctx context.Context, leagueID, matchdayID string, final bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SnapshotMatchday")
	defer span.End()

	md, err := s.loadMatchday(ctx, leagueID, matchdayID)
	if err != nil {
		return err
	}

	rows, err := s.computeLive(ctx, md)
	if err != nil {
		return err
	}
	for i := range rows {
		rows[i].IsFinal = final
	}

	if _, err := s.scoreRepo.ReplaceForMatchday(ctx, leagueID, matchdayID, rows); err != nil {
		return fmt.Errorf("replace score snapshot: %w", err)
	}
	if s.store != nil {
		s.store.DeletePrefix("scores:" + leagueID + ":")
		s.store.Delete("table:" + leagueID)
	}

	return nil
}

// Table aggregates the finalized snapshots into the league standings,
// including teams that have not played yet.
func (s *ScoringService) Table(ctx context.Context, leagueID string) ([]scoring.TableRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Table")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}

	if s.store == nil {
		return s.computeTable(ctx, leagueID)
	}

	value, err := s.store.GetOrLoad("table:"+leagueID, func() (any, error) {
		return s.computeTable(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}

	return value.([]scoring.TableRow), nil
}

// MyLineup returns the caller's picked four with their votes and the
// running total. The bool reports whether a pick exists at all.
func (s *ScoringService) MyLineup(ctx context.Context, principal user.Principal, matchdayID string) (MatchdayLineup, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.MyLineup")
	defer span.End()

	if !principal.HasLeagueContext() {
		return MatchdayLineup{}, false, fmt.Errorf("%w: caller has no team in this league", ErrUnauthorized)
	}
	if _, err := s.loadMatchday(ctx, principal.LeagueID, matchdayID); err != nil {
		return MatchdayLineup{}, false, err
	}

	item, exists, err := s.pickRepo.GetByTeam(ctx, principal.LeagueID, matchdayID, principal.TeamID)
	if err != nil {
		return MatchdayLineup{}, false, fmt.Errorf("get pick by team: %w", err)
	}
	if !exists {
		return MatchdayLineup{}, false, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, item.PlayerIDs())
	if err != nil {
		return MatchdayLineup{}, false, fmt.Errorf("get lineup players: %w", err)
	}
	playersByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	votes, err := s.voteIndex(ctx, matchdayID)
	if err != nil {
		return MatchdayLineup{}, false, err
	}

	lineup := MatchdayLineup{Players: make([]LineupPlayer, 0, 4)}
	for _, id := range item.PlayerIDs() {
		row := LineupPlayer{Player: playersByID[id]}
		if vote, ok := votes[id]; ok {
			v := vote
			row.Vote = &v
			lineup.Total += vote
		}
		lineup.Players = append(lineup.Players, row)
	}

	return lineup, true, nil
}

// SeasonStats summarizes the caller's season from finalized snapshots:
// rank, totals, best and worst rounds, and the per-matchday history.
func (s *ScoringService) SeasonStats(ctx context.Context, principal user.Principal) (SeasonStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SeasonStats")
	defer span.End()

	if !principal.HasLeagueContext() {
		return SeasonStats{}, fmt.Errorf("%w: caller has no team in this league", ErrUnauthorized)
	}

	rows, err := s.scoreRepo.ListByLeague(ctx, principal.LeagueID)
	if err != nil {
		return SeasonStats{}, fmt.Errorf("list league scores: %w", err)
	}

	stats := SeasonStats{History: []MatchdayResult{}}
	for _, row := range rows {
		if row.TeamID != principal.TeamID {
			continue
		}
		stats.History = append(stats.History, MatchdayResult{
			MatchdayNumber: row.MatchdayNumber,
			Score:          row.TotalScore,
			IsFinal:        row.IsFinal,
		})
		if !row.IsFinal {
			continue
		}
		stats.Played++
		stats.Total += row.TotalScore
		if stats.Played == 1 || row.TotalScore > stats.Best {
			stats.Best = row.TotalScore
		}
		if stats.Played == 1 || row.TotalScore < stats.Worst {
			stats.Worst = row.TotalScore
		}
	}
	sort.SliceStable(stats.History, func(i, j int) bool {
		return stats.History[i].MatchdayNumber < stats.History[j].MatchdayNumber
	})
	if stats.Played > 0 {
		stats.Average = stats.Total / float64(stats.Played)
	}

	table, err := s.computeTable(ctx, principal.LeagueID)
	if err != nil {
		return SeasonStats{}, err
	}
	stats.TeamCount = len(table)
	for i, row := range table {
		if row.TeamID == principal.TeamID {
			stats.Rank = i + 1
			break
		}
	}

	return stats, nil
}

// CumulativeSeries feeds the standings chart: each team's running total
// after every finalized matchday, ordered by matchday number.
func (s *ScoringService) CumulativeSeries(ctx context.Context, leagueID string) ([]scoring.SeriesPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CumulativeSeries")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}

	rows, err := s.scoreRepo.ListFinalByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list final scores: %w", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].MatchdayNumber != rows[j].MatchdayNumber {
			return rows[i].MatchdayNumber < rows[j].MatchdayNumber
		}
		return rows[i].TeamName < rows[j].TeamName
	})

	running := make(map[string]float64)
	out := make([]scoring.SeriesPoint, 0, len(rows))
	for _, row := range rows {
		running[row.TeamID] += row.TotalScore
		out = append(out, scoring.SeriesPoint{
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			MatchdayNumber: row.MatchdayNumber,
			Cumulative:     running[row.TeamID],
		})
	}

	return out, nil
}

// RecomputeLeague re-snapshots every matchday of the league, fanning
// the work out on the shared worker pool. Locked matchdays are written
// as final, the open one as provisional.
func (s *ScoringService) RecomputeLeague(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecomputeLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}

	matchdays, err := s.matchdayRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list league matchdays: %w", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, md := range matchdays {
		md := md
		run := func() {
			defer wg.Done()
			if err := s.SnapshotMatchday(ctx, leagueID, md.ID, !md.IsOpen()); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("recompute matchday %d: %w", md.Number, err)
				}
				mu.Unlock()
			}
		}

		wg.Add(1)
		if s.pool != nil {
			if err := s.pool.Submit(run); err != nil {
				wg.Done()
				return fmt.Errorf("submit recompute task: %w", err)
			}
			continue
		}
		run()
	}
	wg.Wait()

	return firstErr
}

func (s *ScoringService) computeLive(ctx context.Context, md matchday.Matchday) ([]scoring.TeamScore, error) {
	teams, err := s.teamRepo.ListByLeague(ctx, md.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}
	picks, err := s.pickRepo.ListByMatchday(ctx, md.LeagueID, md.ID)
	if err != nil {
		return nil, fmt.Errorf("list matchday picks: %w", err)
	}
	votes, err := s.voteIndex(ctx, md.ID)
	if err != nil {
		return nil, err
	}

	picksByTeam := make(map[string]pick.Pick, len(picks))
	for _, item := range picks {
		picksByTeam[item.TeamID] = item
	}

	rows := make([]scoring.TeamScore, 0, len(teams))
	for _, t := range teams {
		row := scoring.TeamScore{
			LeagueID:       md.LeagueID,
			MatchdayID:     md.ID,
			MatchdayNumber: md.Number,
			TeamID:         t.ID,
			TeamName:       t.Name,
		}
		if item, ok := picksByTeam[t.ID]; ok {
			for _, id := range item.PlayerIDs() {
				row.TotalScore += votes[id]
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		return rows[i].TeamName < rows[j].TeamName
	})

	return rows, nil
}

func (s *ScoringService) computeTable(ctx context.Context, leagueID string) ([]scoring.TableRow, error) {
	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}
	finals, err := s.scoreRepo.ListFinalByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list final scores: %w", err)
	}

	byTeam := make(map[string]*scoring.TableRow, len(teams))
	out := make([]scoring.TableRow, 0, len(teams))
	for _, t := range teams {
		out = append(out, scoring.TableRow{TeamID: t.ID, TeamName: t.Name})
	}
	for i := range out {
		byTeam[out[i].TeamID] = &out[i]
	}
	for _, row := range finals {
		line, ok := byTeam[row.TeamID]
		if !ok {
			continue
		}
		line.Played++
		line.TotalScore += row.TotalScore
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].TeamName < out[j].TeamName
	})

	return out, nil
}

func (s *ScoringService) voteIndex(ctx context.Context, matchdayID string) (map[string]float64, error) {
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

func (s *ScoringService) loadMatchday(ctx context.Context, leagueID, matchdayID string) (matchday.Matchday, error) {
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
