package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/usecase"
)

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	draft := h.draftService.Get(ctx)
	writeSuccess(ctx, w, http.StatusOK, draftToDTO(ctx, draft))
}

func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetDraft")
	defer span.End()

	draft := h.draftService.Reset(ctx)
	writeSuccess(ctx, w, http.StatusOK, draftToDTO(ctx, draft))
}

func (h *Handler) PatchDraftMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PatchDraftMatch")
	defer span.End()

	matchID, err := parseID(r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req patchDraftMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.draftService.UpdateMatch(ctx, matchID, patch)
	if err != nil {
		h.logger.WarnContext(ctx, "patch draft match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, updated))
}

func (h *Handler) UpsertDraftGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertDraftGoal")
	defer span.End()

	var req upsertDraftGoalRequest
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

	saved, err := h.draftService.UpsertGoal(ctx, goal.Goal{
		ID:       req.ID,
		LocalKey: req.LocalKey,
		MatchID:  req.MatchID,
		Team:     req.Team,
		PlayerID: req.PlayerID,
		Count:    req.Count,
		Type:     req.Type,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert draft goal failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, goalToDTO(ctx, saved))
}

func (h *Handler) DeleteDraftGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDraftGoal")
	defer span.End()

	raw := r.PathValue("goalKey")
	if raw == "" {
		writeError(ctx, w, fmt.Errorf("%w: goal key is required", usecase.ErrInvalidInput))
		return
	}

	if err := h.draftService.DeleteGoal(ctx, goal.ParseKey(raw)); err != nil {
		h.logger.WarnContext(ctx, "delete draft goal failed", "goal_key", raw, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": raw})
}

func (h *Handler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitDraft")
	defer span.End()

	result, err := h.commitService.Commit(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "commit draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, commitResultToDTO(ctx, result))
}

func (h *Handler) ReloadSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadSnapshot")
	defer span.End()

	if err := h.tournamentService.Load(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reload snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reloaded"})
}

type patchDraftMatchRequest struct {
	Name      *string `json:"name"`
	HomeTeam  *string `json:"homeTeam"`
	AwayTeam  *string `json:"awayTeam"`
	Datetime  *string `json:"datetime"`
	Location  *string `json:"location"`
	Status    *string `json:"status"`
	SetResult bool    `json:"setResult"`
	HomeScore *int    `json:"homeScore"`
	AwayScore *int    `json:"awayScore"`
	HomePK    *int    `json:"homePk"`
	AwayPK    *int    `json:"awayPk"`
}

func (req patchDraftMatchRequest) toPatch() (usecase.MatchPatch, error) {
	patch := usecase.MatchPatch{
		Name:      req.Name,
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		Location:  req.Location,
		SetResult: req.SetResult,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		HomePK:    req.HomePK,
		AwayPK:    req.AwayPK,
	}

	if req.Datetime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Datetime)
		if err != nil {
			return usecase.MatchPatch{}, fmt.Errorf("%w: datetime must be RFC3339: %v", usecase.ErrInvalidInput, err)
		}
		patch.Datetime = &parsed
	}

	if req.Status != nil {
		status := match.NormalizeStatus(*req.Status)
		if !match.IsValidStatus(status) {
			return usecase.MatchPatch{}, fmt.Errorf("%w: unknown match status %q", usecase.ErrInvalidInput, *req.Status)
		}
		patch.Status = &status
	}

	return patch, nil
}

type upsertDraftGoalRequest struct {
	ID       int64  `json:"id"`
	LocalKey string `json:"localKey"`
	MatchID  int64  `json:"matchId" validate:"required,gt=0"`
	Team     string `json:"team" validate:"required,oneof=home away"`
	PlayerID *int64 `json:"playerId"`
	Count    int    `json:"count" validate:"required,gt=0"`
	Type     string `json:"type" validate:"required,oneof=normal own_goal etc"`
}

type draftDTO struct {
	Matches []matchDTO `json:"matches"`
	Goals   []goalDTO  `json:"goals"`
}

func draftToDTO(ctx context.Context, draft usecase.Draft) draftDTO {
	ctx, span := startSpan(ctx, "httpapi.draftToDTO")
	defer span.End()

	matches := make([]matchDTO, 0, len(draft.Matches))
	for _, m := range draft.Matches {
		matches = append(matches, matchToDTO(ctx, m))
	}

	goals := make([]goalDTO, 0, len(draft.Goals))
	for _, g := range draft.Goals {
		goals = append(goals, goalToDTO(ctx, g))
	}

	return draftDTO{Matches: matches, Goals: goals}
}

type commitResultDTO struct {
	Matches []matchDTO `json:"matches"`
	Goals   []goalDTO  `json:"goals"`
}

func commitResultToDTO(ctx context.Context, result usecase.CommitResult) commitResultDTO {
	ctx, span := startSpan(ctx, "httpapi.commitResultToDTO")
	defer span.End()

	matches := make([]matchDTO, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, matchToDTO(ctx, m))
	}

	goals := make([]goalDTO, 0, len(result.Goals))
	for _, g := range result.Goals {
		goals = append(goals, goalToDTO(ctx, g))
	}

	return commitResultDTO{Matches: matches, Goals: goals}
}
