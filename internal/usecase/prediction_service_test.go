package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mirchoi/classcup/internal/domain/match"
)

func newPredictionHarness(matches []match.Match, repo *stubPredictionRepository, now time.Time) (*PredictionService, *SnapshotStore) {
	store := NewSnapshotStore()
	store.Replace(&Snapshot{Matches: match.CloneAll(matches)})
	svc := NewPredictionService(store, repo, DefaultPredictionMaxScore, slog.New(slog.DiscardHandler))
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestPredictionSubmit(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	matches := []match.Match{{ID: 1, MatchNo: 1, Datetime: kickoff, Status: match.StatusScheduled}}
	repo := &stubPredictionRepository{}
	svc, store := newPredictionHarness(matches, repo, kickoff.Add(-time.Minute))

	saved, err := svc.Submit(context.Background(), SubmitPredictionInput{
		MatchID:         1,
		WriterStudentNo: " 20301 ",
		WriterName:      "Han",
		HomeScore:       2,
		AwayScore:       1,
		Comment:         "home side looks sharp",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("saved prediction has no store id")
	}
	if saved.WriterStudentNo != "20301" {
		t.Fatalf("student number not trimmed: %q", saved.WriterStudentNo)
	}
	if saved.CreatedAt.Location() != time.UTC {
		t.Fatalf("created_at not stamped in UTC: %v", saved.CreatedAt)
	}
	if preds := store.Get().Predictions; len(preds) != 1 || preds[0].ID != saved.ID {
		t.Fatalf("snapshot not updated: %+v", preds)
	}
}

func TestPredictionSubmitClosesAtKickoff(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	matches := []match.Match{{ID: 1, MatchNo: 1, Datetime: kickoff, Status: match.StatusScheduled}}
	repo := &stubPredictionRepository{}
	svc, _ := newPredictionHarness(matches, repo, kickoff)

	_, err := svc.Submit(context.Background(), SubmitPredictionInput{
		MatchID: 1, WriterStudentNo: "20301", WriterName: "Han", HomeScore: 1, AwayScore: 0,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("submission at kickoff must be rejected, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatal("rejected prediction reached the gateway")
	}
}

func TestPredictionSubmitValidation(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	matches := []match.Match{{ID: 1, MatchNo: 1, Datetime: kickoff}}

	tests := []struct {
		name    string
		input   SubmitPredictionInput
		wantErr error
	}{
		{
			name:    "unknown match",
			input:   SubmitPredictionInput{MatchID: 9, WriterStudentNo: "20301", WriterName: "Han"},
			wantErr: ErrNotFound,
		},
		{
			name:    "blank student number",
			input:   SubmitPredictionInput{MatchID: 1, WriterStudentNo: "   ", WriterName: "Han"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "blank writer name",
			input:   SubmitPredictionInput{MatchID: 1, WriterStudentNo: "20301"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative score",
			input:   SubmitPredictionInput{MatchID: 1, WriterStudentNo: "20301", WriterName: "Han", HomeScore: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "score above cap",
			input:   SubmitPredictionInput{MatchID: 1, WriterStudentNo: "20301", WriterName: "Han", AwayScore: 21},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &stubPredictionRepository{}
			svc, _ := newPredictionHarness(matches, repo, kickoff.Add(-time.Hour))
			_, err := svc.Submit(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPredictionSubmitGatewayFailure(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
	matches := []match.Match{{ID: 1, MatchNo: 1, Datetime: kickoff}}
	repo := &stubPredictionRepository{insertErr: errors.New("gateway down")}
	svc, store := newPredictionHarness(matches, repo, kickoff.Add(-time.Hour))

	_, err := svc.Submit(context.Background(), SubmitPredictionInput{
		MatchID: 1, WriterStudentNo: "20301", WriterName: "Han", HomeScore: 1, AwayScore: 0,
	})
	if err == nil {
		t.Fatal("expected the gateway error to surface")
	}
	if len(store.Get().Predictions) != 0 {
		t.Fatal("failed insert still reached the snapshot")
	}
}
