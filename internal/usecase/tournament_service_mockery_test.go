package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
	goalmock "github.com/mirchoi/classcup/internal/mocks/domain/goal"
	matchmock "github.com/mirchoi/classcup/internal/mocks/domain/match"
	playermock "github.com/mirchoi/classcup/internal/mocks/domain/player"
	predictionmock "github.com/mirchoi/classcup/internal/mocks/domain/prediction"
)

func TestTournamentService_Load_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	goalRepo := goalmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)

	expectedMatches := []match.Match{
		{ID: 1, MatchNo: 1, Name: "Quarterfinal 1", HomeTeam: "1-2", AwayTeam: "2-3", Status: match.StatusScheduled},
	}
	expectedPlayers := []player.Player{
		{ID: 10, Class: "3-1", Number: 10, Name: "Oh Seungmin", Position: "MF"},
	}

	matchRepo.On("List", mock.Anything).Return(expectedMatches, nil).Once()
	playerRepo.On("List", mock.Anything).Return(expectedPlayers, nil).Once()
	goalRepo.On("List", mock.Anything).Return([]goal.Goal(nil), nil).Once()
	predictionRepo.On("List", mock.Anything).Return([]prediction.Prediction(nil), nil).Once()

	store := NewSnapshotStore()
	service := NewTournamentService(matchRepo, playerRepo, goalRepo, predictionRepo, store, slog.New(slog.DiscardHandler))

	if err := service.Load(ctx); err != nil {
		t.Fatalf("load snapshot: %v", err)
	}

	snap := store.Get()
	if len(snap.Matches) != 1 || snap.Matches[0].Name != "Quarterfinal 1" {
		t.Fatalf("unexpected matches in snapshot: %+v", snap.Matches)
	}
	if len(snap.Players) != 1 || snap.Players[0].Name != "Oh Seungmin" {
		t.Fatalf("unexpected players in snapshot: %+v", snap.Players)
	}
}

func TestTournamentService_Load_RepositoryFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	goalRepo := goalmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)

	repoErr := errors.New("tablestore unavailable")
	matchRepo.On("List", mock.Anything).Return([]match.Match(nil), nil).Once()
	playerRepo.On("List", mock.Anything).Return([]player.Player(nil), nil).Once()
	goalRepo.On("List", mock.Anything).Return([]goal.Goal(nil), repoErr).Once()
	predictionRepo.On("List", mock.Anything).Return([]prediction.Prediction(nil), nil).Once()

	store := NewSnapshotStore()
	store.Replace(&Snapshot{Matches: []match.Match{{ID: 1, MatchNo: 1}}})
	service := NewTournamentService(matchRepo, playerRepo, goalRepo, predictionRepo, store, slog.New(slog.DiscardHandler))

	if err := service.Load(ctx); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}

	// A failed load must not clobber the snapshot already being served.
	if len(store.Get().Matches) != 1 {
		t.Fatalf("snapshot replaced despite load failure")
	}
}
