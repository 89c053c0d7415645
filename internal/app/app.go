package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fantachat/fantachat-api/external/authgate"
	"github.com/fantachat/fantachat-api/external/newsdesk"
	"github.com/fantachat/fantachat-api/internal/config"
	"github.com/fantachat/fantachat-api/internal/domain/article"
	"github.com/fantachat/fantachat-api/internal/domain/fixture"
	"github.com/fantachat/fantachat-api/internal/domain/league"
	"github.com/fantachat/fantachat-api/internal/domain/matchday"
	"github.com/fantachat/fantachat-api/internal/domain/membership"
	"github.com/fantachat/fantachat-api/internal/domain/pick"
	"github.com/fantachat/fantachat-api/internal/domain/pickschedule"
	"github.com/fantachat/fantachat-api/internal/domain/player"
	"github.com/fantachat/fantachat-api/internal/domain/rating"
	"github.com/fantachat/fantachat-api/internal/domain/realteam"
	"github.com/fantachat/fantachat-api/internal/domain/scoring"
	"github.com/fantachat/fantachat-api/internal/domain/team"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/memory"
	"github.com/fantachat/fantachat-api/internal/infrastructure/repository/postgres"
	"github.com/fantachat/fantachat-api/internal/interfaces/httpapi"
	"github.com/fantachat/fantachat-api/internal/platform/cache"
	idgen "github.com/fantachat/fantachat-api/internal/platform/id"
	"github.com/fantachat/fantachat-api/internal/platform/logging"
	"github.com/fantachat/fantachat-api/internal/platform/resilience"
	"github.com/fantachat/fantachat-api/internal/usecase"
)

// App bundles the HTTP server with the background pieces main has to
// run and tear down.
type App struct {
	Server    *http.Server
	Refresher *usecase.LiveRefresher

	db   *sqlx.DB
	pool *ants.Pool
}

type repositories struct {
	leagues     league.Repository
	teams       team.Repository
	memberships membership.Repository
	matchdays   matchday.Repository
	schedule    pickschedule.Repository
	picks       pick.Repository
	players     player.Repository
	realTeams   realteam.Repository
	ratings     rating.Repository
	fixtures    fixture.Repository
	scores      scoring.Repository
	articles    article.Repository
}

func New(cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if appLogger == nil {
		appLogger = logging.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	var db *sqlx.DB
	var repos repositories
	if cfg.DBURL == "" {
		logger.Info("storage: in-memory (DB_URL empty)")
		repos = memoryRepositories()
	} else {
		db, err = openDatabase(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		logger.Info("storage: postgres", "db_name", dbNameFromURL(cfg.DBURL))
		repos = postgresRepositories(db)
	}

	pool, err := ants.NewPool(cfg.WorkerPoolSize)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.teams, repos.memberships, idgen.RandomGenerator{}, idgen.InviteCodeGenerator{})
	matchdaySvc := usecase.NewMatchdayService(repos.leagues, repos.matchdays, idgen.RandomGenerator{})
	scheduleSvc := usecase.NewScheduleService(repos.matchdays, repos.teams, repos.schedule, loc)
	pickSvc := usecase.NewPickService(repos.matchdays, repos.players, repos.realTeams, repos.picks)
	pickSvc.SetSubmissionRecorder(scheduleSvc)
	ratingSvc := usecase.NewRatingService(repos.matchdays, repos.picks, repos.players, repos.ratings, repos.realTeams, repos.fixtures)
	scoringSvc := usecase.NewScoringService(repos.matchdays, repos.teams, repos.picks, repos.ratings, repos.players, repos.scores, store, pool)
	matchdaySvc.SetSnapshotter(scoringSvc)

	var composer *newsdesk.Client
	if cfg.NewsdeskEnabled {
		composer = newsdesk.NewClient(newsdesk.ClientConfig{
			BaseURL:    cfg.NewsdeskBaseURL,
			APIKey:     cfg.NewsdeskAPIKey,
			Model:      cfg.NewsdeskModel,
			Timeout:    cfg.NewsdeskTimeout,
			MaxRetries: cfg.NewsdeskMaxRetries,
			Logger:     appLogger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NewsdeskCircuitEnabled,
				FailureThreshold: cfg.NewsdeskCircuitFailureCount,
				OpenTimeout:      cfg.NewsdeskCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.NewsdeskCircuitHalfOpenMaxReq,
			},
		})
	}
	var articleSvc *usecase.ArticleService
	if composer != nil {
		articleSvc = usecase.NewArticleService(repos.matchdays, repos.articles, scoringSvc, composer)
	} else {
		articleSvc = usecase.NewArticleService(repos.matchdays, repos.articles, scoringSvc, nil)
	}

	verifier := authgate.NewClient(authgate.ClientConfig{
		BaseURL:         cfg.AuthgateBaseURL,
		IntrospectPath:  cfg.AuthgateIntrospectPath,
		Timeout:         cfg.AuthgateTimeout,
		CacheTTL:        cfg.AuthgateCacheTTL,
		CacheMaxEntries: cfg.AuthgateCacheMaxEntries,
		Logger:          appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AuthgateCircuitEnabled,
			FailureThreshold: cfg.AuthgateCircuitFailureCount,
			OpenTimeout:      cfg.AuthgateCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AuthgateCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(leagueSvc, matchdaySvc, scheduleSvc, pickSvc, ratingSvc, scoringSvc, articleSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		pool.Release()
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	refresher := usecase.NewLiveRefresher(repos.leagues, repos.matchdays, scoringSvc, cfg.LiveRefreshInterval, appLogger)

	return &App{
		Server:    server,
		Refresher: refresher,
		db:        db,
		pool:      pool,
	}, nil
}

func (a *App) Close() error {
	if a.pool != nil {
		a.pool.Release()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func memoryRepositories() repositories {
	return repositories{
		leagues:     memory.NewLeagueRepository(),
		teams:       memory.NewTeamRepository(),
		memberships: memory.NewMembershipRepository(),
		matchdays:   memory.NewMatchdayRepository(),
		schedule:    memory.NewPickScheduleRepository(),
		picks:       memory.NewPickRepository(),
		players:     memory.NewPlayerRepository(memory.SeedPlayers()),
		realTeams:   memory.NewRealTeamRepository(memory.SeedRealTeams()),
		ratings:     memory.NewRatingRepository(),
		fixtures:    memory.NewFixtureRepository(),
		scores:      memory.NewScoringRepository(),
		articles:    memory.NewArticleRepository(),
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		leagues:     postgres.NewLeagueRepository(db),
		teams:       postgres.NewTeamRepository(db),
		memberships: postgres.NewMembershipRepository(db),
		matchdays:   postgres.NewMatchdayRepository(db),
		schedule:    postgres.NewPickScheduleRepository(db),
		picks:       postgres.NewPickRepository(db),
		players:     postgres.NewPlayerRepository(db),
		realTeams:   postgres.NewRealTeamRepository(db),
		ratings:     postgres.NewRatingRepository(db),
		fixtures:    postgres.NewFixtureRepository(db),
		scores:      postgres.NewScoringRepository(db),
		articles:    postgres.NewArticleRepository(db),
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
