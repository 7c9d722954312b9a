package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mirchoi/classcup/internal/domain/prediction"
)

const DefaultPredictionMaxScore = 20

// SubmitPredictionInput is one fan's score guess for an upcoming match.
type SubmitPredictionInput struct {
	MatchID         int64
	WriterStudentNo string
	WriterName      string
	HomeScore       int
	AwayScore       int
	Comment         string
}

// PredictionService accepts fan predictions. Submissions close at kickoff;
// the engine never sees a late or malformed row.
type PredictionService struct {
	store          *SnapshotStore
	predictionRepo prediction.Repository
	maxScore       int
	logger         *slog.Logger
	now            func() time.Time
}

func NewPredictionService(
	store *SnapshotStore,
	predictionRepo prediction.Repository,
	maxScore int,
	logger *slog.Logger,
) *PredictionService {
	if maxScore <= 0 {
		maxScore = DefaultPredictionMaxScore
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PredictionService{
		store:          store,
		predictionRepo: predictionRepo,
		maxScore:       maxScore,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	m, ok := s.store.Get().matchByID(input.MatchID)
	if !ok {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%d", ErrNotFound, input.MatchID)
	}

	now := s.now()
	if !now.Before(m.Datetime) {
		return prediction.Prediction{}, fmt.Errorf("%w: match %d already kicked off", ErrInvalidInput, input.MatchID)
	}

	studentNo := strings.TrimSpace(input.WriterStudentNo)
	if studentNo == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: student number is required", ErrInvalidInput)
	}
	writerName := strings.TrimSpace(input.WriterName)
	if writerName == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: writer name is required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: predicted scores must be >= 0", ErrInvalidInput)
	}
	if input.HomeScore > s.maxScore || input.AwayScore > s.maxScore {
		return prediction.Prediction{}, fmt.Errorf("%w: predicted scores must be <= %d", ErrInvalidInput, s.maxScore)
	}

	row := prediction.Prediction{
		MatchID:         input.MatchID,
		WriterStudentNo: studentNo,
		WriterName:      writerName,
		HomeScore:       input.HomeScore,
		AwayScore:       input.AwayScore,
		Comment:         strings.TrimSpace(input.Comment),
		CreatedAt:       now.UTC(),
	}

	saved, err := s.predictionRepo.Insert(ctx, row)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("insert prediction: %w", err)
	}

	s.store.PrependPrediction(saved)
	s.logger.InfoContext(ctx, "prediction submitted", "match_id", saved.MatchID, "writer", saved.WriterStudentNo)

	return saved, nil
}
