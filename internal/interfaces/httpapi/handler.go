package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
	"github.com/mirchoi/classcup/internal/usecase"
)

const defaultRecentResultsLimit = 5

type Handler struct {
	tournamentService *usecase.TournamentService
	rankingService    *usecase.RankingService
	predictionService *usecase.PredictionService
	draftService      *usecase.DraftService
	commitService     *usecase.CommitService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	rankingService *usecase.RankingService,
	predictionService *usecase.PredictionService,
	draftService *usecase.DraftService,
	commitService *usecase.CommitService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		rankingService:    rankingService,
		predictionService: predictionService,
		draftService:      draftService,
		commitService:     commitService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches := h.tournamentService.Matches(ctx)

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) NextMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NextMatch")
	defer span.End()

	next, ok := h.tournamentService.NextMatch(ctx)
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, next))
}

func (h *Handler) RecentResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecentResults")
	defer span.End()

	limit := defaultRecentResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	matches := h.tournamentService.RecentResults(ctx, limit)

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetail")
	defer span.End()

	matchID, err := parseID(r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.tournamentService.MatchDetail(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match detail failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailToDTO(ctx, detail))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players := h.tournamentService.Players(ctx)

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGoals")
	defer span.End()

	goals := h.tournamentService.Goals(ctx)

	items := make([]goalDTO, 0, len(goals))
	for _, g := range goals {
		items = append(items, goalToDTO(ctx, g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPredictions")
	defer span.End()

	predictions := h.tournamentService.Predictions(ctx)

	items := make([]predictionDTO, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, predictionToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ScorerRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScorerRanking")
	defer span.End()

	rows := h.rankingService.ScorerRanking(ctx)

	items := make([]scorerRankingDTO, 0, len(rows))
	for i, row := range rows {
		items = append(items, scorerRankingDTO{
			Rank:   i + 1,
			Player: playerToDTO(ctx, row.Player),
			Goals:  row.Goals,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) TeamStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamStandings")
	defer span.End()

	rows := h.rankingService.TeamStandings(ctx)

	items := make([]teamStandingDTO, 0, len(rows))
	for i, row := range rows {
		items = append(items, teamStandingDTO{
			Rank:           i + 1,
			Team:           row.Team,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference(),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PredictionRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictionRanking")
	defer span.End()

	rows := h.rankingService.PredictionRanking(ctx)

	items := make([]predictionRankingDTO, 0, len(rows))
	for i, row := range rows {
		items = append(items, predictionRankingDTO{
			Rank:            i + 1,
			WriterStudentNo: row.WriterStudentNo,
			WriterName:      row.WriterName,
			Hits:            row.Hits,
			Total:           row.Total,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	matchID, err := parseID(r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPredictionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.predictionService.Submit(ctx, usecase.SubmitPredictionInput{
		MatchID:         matchID,
		WriterStudentNo: req.WriterStudentNo,
		WriterName:      req.WriterName,
		HomeScore:       req.HomeScore,
		AwayScore:       req.AwayScore,
		Comment:         req.Comment,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit prediction failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(ctx, saved))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

type submitPredictionRequest struct {
	WriterStudentNo string `json:"writerStudentNo" validate:"required,max=20"`
	WriterName      string `json:"writerName" validate:"required,max=50"`
	HomeScore       int    `json:"homeScore" validate:"min=0"`
	AwayScore       int    `json:"awayScore" validate:"min=0"`
	Comment         string `json:"comment" validate:"max=500"`
}

type matchDTO struct {
	ID        int64  `json:"id"`
	MatchNo   int    `json:"matchNo"`
	Name      string `json:"name"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	Datetime  string `json:"datetime"`
	Location  string `json:"location"`
	Status    string `json:"status"`
	HomeScore *int   `json:"homeScore"`
	AwayScore *int   `json:"awayScore"`
	HomePK    *int   `json:"homePk"`
	AwayPK    *int   `json:"awayPk"`
	Winner    string `json:"winner,omitempty"`
}

type playerDTO struct {
	ID       int64  `json:"id"`
	Class    string `json:"class"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type goalDTO struct {
	ID       int64  `json:"id,omitempty"`
	LocalKey string `json:"localKey,omitempty"`
	MatchID  int64  `json:"matchId"`
	Team     string `json:"team"`
	PlayerID *int64 `json:"playerId"`
	Count    int    `json:"count"`
	Type     string `json:"type"`
}

type predictionDTO struct {
	ID              int64  `json:"id"`
	MatchID         int64  `json:"matchId"`
	WriterStudentNo string `json:"writerStudentNo"`
	WriterName      string `json:"writerName"`
	HomeScore       int    `json:"homeScore"`
	AwayScore       int    `json:"awayScore"`
	Comment         string `json:"comment"`
	CreatedAt       string `json:"createdAt"`
}

type scorerRankingDTO struct {
	Rank   int       `json:"rank"`
	Player playerDTO `json:"player"`
	Goals  int       `json:"goals"`
}

type teamStandingDTO struct {
	Rank           int    `json:"rank"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
}

type predictionRankingDTO struct {
	Rank            int    `json:"rank"`
	WriterStudentNo string `json:"writerStudentNo"`
	WriterName      string `json:"writerName"`
	Hits            int    `json:"hits"`
	Total           int    `json:"total"`
}

type scorerSummaryDTO struct {
	PlayerID *int64 `json:"playerId"`
	Name     string `json:"name"`
	Goals    int    `json:"goals"`
}

type teamTotalsDTO struct {
	Team         string `json:"team"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Played       int    `json:"played"`
}

type predictionViewDTO struct {
	predictionDTO
	Hit bool `json:"hit"`
}

type matchDetailDTO struct {
	Match              matchDTO            `json:"match"`
	Goals              []goalDTO           `json:"goals"`
	HomeScorers        []scorerSummaryDTO  `json:"homeScorers"`
	AwayScorers        []scorerSummaryDTO  `json:"awayScorers"`
	HomeTotals         teamTotalsDTO       `json:"homeTotals"`
	AwayTotals         teamTotalsDTO       `json:"awayTotals"`
	Predictions        []predictionViewDTO `json:"predictions"`
	AcceptsPredictions bool                `json:"acceptsPredictions"`
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	winner, _ := v.Result()
	return matchDTO{
		ID:        v.ID,
		MatchNo:   v.MatchNo,
		Name:      v.Name,
		HomeTeam:  v.HomeTeam,
		AwayTeam:  v.AwayTeam,
		Datetime:  v.Datetime.UTC().Format(time.RFC3339),
		Location:  v.Location,
		Status:    v.Status,
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		HomePK:    v.HomePK,
		AwayPK:    v.AwayPK,
		Winner:    winner,
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:       v.ID,
		Class:    v.Class,
		Number:   v.Number,
		Name:     v.Name,
		Position: v.Position,
	}
}

func goalToDTO(ctx context.Context, v goal.Goal) goalDTO {
	ctx, span := startSpan(ctx, "httpapi.goalToDTO")
	defer span.End()

	return goalDTO{
		ID:       v.ID,
		LocalKey: v.LocalKey,
		MatchID:  v.MatchID,
		Team:     v.Team,
		PlayerID: v.PlayerID,
		Count:    v.Count,
		Type:     v.Type,
	}
}

func predictionToDTO(ctx context.Context, v prediction.Prediction) predictionDTO {
	ctx, span := startSpan(ctx, "httpapi.predictionToDTO")
	defer span.End()

	return predictionDTO{
		ID:              v.ID,
		MatchID:         v.MatchID,
		WriterStudentNo: v.WriterStudentNo,
		WriterName:      v.WriterName,
		HomeScore:       v.HomeScore,
		AwayScore:       v.AwayScore,
		Comment:         v.Comment,
		CreatedAt:       v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func matchDetailToDTO(ctx context.Context, detail usecase.MatchDetail) matchDetailDTO {
	ctx, span := startSpan(ctx, "httpapi.matchDetailToDTO")
	defer span.End()

	goals := make([]goalDTO, 0, len(detail.Goals))
	for _, g := range detail.Goals {
		goals = append(goals, goalToDTO(ctx, g))
	}

	predictions := make([]predictionViewDTO, 0, len(detail.Predictions))
	for _, view := range detail.Predictions {
		predictions = append(predictions, predictionViewDTO{
			predictionDTO: predictionToDTO(ctx, view.Prediction),
			Hit:           view.Hit,
		})
	}

	return matchDetailDTO{
		Match:              matchToDTO(ctx, detail.Match),
		Goals:              goals,
		HomeScorers:        scorerSummariesToDTO(detail.HomeScorers),
		AwayScorers:        scorerSummariesToDTO(detail.AwayScorers),
		HomeTotals:         teamTotalsToDTO(detail.HomeTotals),
		AwayTotals:         teamTotalsToDTO(detail.AwayTotals),
		Predictions:        predictions,
		AcceptsPredictions: detail.AcceptsPredictions,
	}
}

func scorerSummariesToDTO(rows []usecase.ScorerSummary) []scorerSummaryDTO {
	out := make([]scorerSummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, scorerSummaryDTO{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Goals:    row.Goals,
		})
	}
	return out
}

func teamTotalsToDTO(v usecase.TeamTotals) teamTotalsDTO {
	return teamTotalsDTO{
		Team:         v.Team,
		GoalsFor:     v.GoalsFor,
		GoalsAgainst: v.GoalsAgainst,
		Played:       v.Played,
	}
}
