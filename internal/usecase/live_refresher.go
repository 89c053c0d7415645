package usecase

import (
	"context"
	"time"

	"github.com/fantachat/fantachat-api/internal/domain/league"
	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/platform/logging"
)

// LiveRefresher periodically re-snapshots the open matchday of every
// league so the live view reads fresh provisional totals without each
// client forcing a recompute.
type LiveRefresher struct {
	leagueRepo   league.Repository
	matchdayRepo matchday.Repository
	snapshotter  matchdaySnapshotter
	interval     time.Duration
	logger       *logging.Logger
}

func NewLiveRefresher(
	leagueRepo league.Repository,
	matchdayRepo matchday.Repository,
	snapshotter matchdaySnapshotter,
	interval time.Duration,
	logger *logging.Logger,
) *LiveRefresher {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LiveRefresher{
		leagueRepo:   leagueRepo,
		matchdayRepo: matchdayRepo,
		snapshotter:  snapshotter,
		interval:     interval,
		logger:       logger,
	}
}

// Run blocks until ctx is cancelled, refreshing on every tick. A failed
// refresh for one league is logged and does not stop the loop.
func (r *LiveRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *LiveRefresher) refreshAll(ctx context.Context) {
	leagues, err := r.leagueRepo.List(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "live refresh: list leagues", "error", err)
		return
	}

	for _, item := range leagues {
		md, exists, err := r.matchdayRepo.GetOpenByLeague(ctx, item.ID)
		if err != nil {
			r.logger.ErrorContext(ctx, "live refresh: get open matchday", "league_id", item.ID, "error", err)
			continue
		}
		if !exists {
			continue
		}
		if err := r.snapshotter.SnapshotMatchday(ctx, item.ID, md.ID, false); err != nil {
			r.logger.ErrorContext(ctx, "live refresh: snapshot matchday", "league_id", item.ID, "matchday_id", md.ID, "error", err)
		}
	}
}
