package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"

	"github.com/mirchoi/classcup/external/tablestore"
	"github.com/mirchoi/classcup/internal/config"
	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
	cacherepo "github.com/mirchoi/classcup/internal/infrastructure/repository/cache"
	"github.com/mirchoi/classcup/internal/infrastructure/repository/memory"
	"github.com/mirchoi/classcup/internal/infrastructure/repository/postgres"
	"github.com/mirchoi/classcup/internal/interfaces/httpapi"
	platformcache "github.com/mirchoi/classcup/internal/platform/cache"
	idgen "github.com/mirchoi/classcup/internal/platform/id"
	"github.com/mirchoi/classcup/internal/platform/resilience"
	"github.com/mirchoi/classcup/internal/usecase"

	_ "github.com/lib/pq"
)

type repositories struct {
	matches     match.Repository
	players     player.Repository
	goals       goal.Repository
	predictions prediction.Repository
	closeFn     func() error
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := platformcache.NewStore(cfg.CacheTTL)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.goals = cacherepo.NewGoalRepository(repos.goals, store)
		repos.predictions = cacherepo.NewPredictionRepository(repos.predictions, store)
	}

	snapshotStore := usecase.NewSnapshotStore()
	tournamentSvc := usecase.NewTournamentService(
		repos.matches,
		repos.players,
		repos.goals,
		repos.predictions,
		snapshotStore,
		logger,
	)
	if err := tournamentSvc.Load(context.Background()); err != nil {
		if closeErr := repos.closeFn(); closeErr != nil {
			logger.Warn("close storage after failed snapshot load", "error", closeErr)
		}
		return nil, nil, fmt.Errorf("load initial snapshot: %w", err)
	}

	draftSvc := usecase.NewDraftService(snapshotStore, idgen.NewRandomGenerator(), logger)
	commitSvc := usecase.NewCommitService(snapshotStore, draftSvc, repos.matches, repos.goals, logger)
	rankingSvc := usecase.NewRankingService(snapshotStore)
	predictionSvc := usecase.NewPredictionService(snapshotStore, repos.predictions, cfg.PredictionMaxScore, logger)

	handler := httpapi.NewHandler(tournamentSvc, rankingSvc, predictionSvc, draftSvc, commitSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminKey)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		if closeErr := repos.closeFn(); closeErr != nil {
			logger.Warn("close storage", "error", closeErr)
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, repos.closeFn, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			matches:     postgres.NewMatchRepository(db),
			players:     postgres.NewPlayerRepository(db),
			goals:       postgres.NewGoalRepository(db),
			predictions: postgres.NewPredictionRepository(db),
			closeFn:     db.Close,
		}, nil

	case config.StorageDriverTableStore:
		client := tablestore.NewClient(tablestore.ClientConfig{
			BaseURL:    cfg.TableStoreBaseURL,
			APIKey:     cfg.TableStoreAPIKey,
			Timeout:    cfg.TableStoreTimeout,
			MaxRetries: cfg.TableStoreMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.TableStoreCircuitEnabled,
				FailureThreshold: cfg.TableStoreCircuitFailureCount,
				OpenTimeout:      cfg.TableStoreCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.TableStoreCircuitHalfOpenMaxReq,
			},
		})
		return repositories{
			matches:     tablestore.NewMatchStore(client),
			players:     tablestore.NewPlayerStore(client),
			goals:       tablestore.NewGoalStore(client),
			predictions: tablestore.NewPredictionStore(client),
			closeFn:     func() error { return nil },
		}, nil

	case config.StorageDriverMemory:
		return repositories{
			matches:     memory.NewMatchRepository(memory.SeedMatches()),
			players:     memory.NewPlayerRepository(memory.SeedPlayers()),
			goals:       memory.NewGoalRepository(nil),
			predictions: memory.NewPredictionRepository(nil),
			closeFn:     func() error { return nil },
		}, nil

	default:
		return repositories{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemNamePostgreSQL),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}
