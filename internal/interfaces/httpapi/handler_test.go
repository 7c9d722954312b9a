package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/mirchoi/classcup/internal/infrastructure/repository/memory"
	idgen "github.com/mirchoi/classcup/internal/platform/id"
	"github.com/mirchoi/classcup/internal/usecase"
)

const testAdminKey = "test-admin-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	matches := memory.SeedMatches()
	// Quarterfinal 1 kicks off in the future so prediction submissions stay open.
	matches[0].Datetime = time.Now().Add(24 * time.Hour)

	matchRepo := memory.NewMatchRepository(matches)
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	goalRepo := memory.NewGoalRepository(nil)
	predictionRepo := memory.NewPredictionRepository(nil)

	logger := slog.New(slog.DiscardHandler)
	store := usecase.NewSnapshotStore()
	tournament := usecase.NewTournamentService(matchRepo, playerRepo, goalRepo, predictionRepo, store, logger)
	if err := tournament.Load(context.Background()); err != nil {
		t.Fatalf("load snapshot: %v", err)
	}

	drafts := usecase.NewDraftService(store, idgen.NewRandomGenerator(), logger)
	commits := usecase.NewCommitService(store, drafts, matchRepo, goalRepo, logger)
	rankings := usecase.NewRankingService(store)
	predictions := usecase.NewPredictionService(store, predictionRepo, 0, logger)

	handler := NewHandler(tournament, rankings, predictions, drafts, commits, logger)
	return NewRouter(handler, logger, []string{"*"}, testAdminKey)
}

func decodeData(t *testing.T, body []byte, target any) {
	t.Helper()

	var envelope struct {
		APIVersion string          `json:"apiVersion"`
		Data       json.RawMessage `json:"data"`
	}
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if err := sonic.Unmarshal(envelope.Data, target); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestListMatchesReturnsSeededBracket(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var items []matchDTO
	decodeData(t, rec.Body.Bytes(), &items)
	if len(items) != 7 {
		t.Fatalf("expected 7 matches, got %d", len(items))
	}
	if items[0].MatchNo != 1 || items[6].MatchNo != 7 {
		t.Fatalf("expected matches ordered by match number, got first=%d last=%d", items[0].MatchNo, items[6].MatchNo)
	}
}

func TestGetMatchDetailUnknownMatch(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/matches/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetMatchDetailBadID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/matches/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAdminDraftRequiresKey(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/draft", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/draft", nil)
	req.Header.Set("X-Admin-Key", testAdminKey)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var draft draftDTO
	decodeData(t, rec.Body.Bytes(), &draft)
	if len(draft.Matches) != 7 {
		t.Fatalf("expected 7 draft matches, got %d", len(draft.Matches))
	}
}

func TestSubmitPrediction(t *testing.T) {
	router := newTestRouter(t)

	payload := []byte(`{"writerStudentNo":"10204","writerName":"Yang Subin","homeScore":2,"awayScore":1,"comment":"go 1-2!"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/matches/1/predictions", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var saved predictionDTO
	decodeData(t, rec.Body.Bytes(), &saved)
	if saved.ID == 0 {
		t.Fatalf("expected store-assigned prediction id")
	}
	if saved.WriterStudentNo != "10204" {
		t.Fatalf("unexpected writer student number: %q", saved.WriterStudentNo)
	}
}

func TestSubmitPredictionRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	payload := []byte(`{"writerStudentNo":"10204","writerName":"Yang Subin","homeScore":2,"awayScore":1,"bogus":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/matches/1/predictions", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSubmitPredictionRejectsClosedMatch(t *testing.T) {
	router := newTestRouter(t)

	// Quarterfinal 2 keeps its seeded kickoff, which is already in the past.
	payload := []byte(`{"writerStudentNo":"10204","writerName":"Yang Subin","homeScore":1,"awayScore":0,"comment":""}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/matches/2/predictions", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAdminCommitFlowUpdatesPublicViews(t *testing.T) {
	router := newTestRouter(t)

	adminReq := func(method, path string, body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("X-Admin-Key", testAdminKey)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := adminReq(http.MethodPatch, "/v1/admin/draft/matches/2", []byte(`{"status":"finished","setResult":true,"homeScore":2,"awayScore":0}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("patch draft match: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = adminReq(http.MethodPut, "/v1/admin/draft/goals", []byte(`{"matchId":2,"team":"home","playerId":10,"count":2,"type":"normal"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert draft goal: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var draftGoal goalDTO
	decodeData(t, rec.Body.Bytes(), &draftGoal)
	if draftGoal.LocalKey == "" || draftGoal.ID != 0 {
		t.Fatalf("expected unsaved draft goal with local key, got id=%d key=%q", draftGoal.ID, draftGoal.LocalKey)
	}

	rec = adminReq(http.MethodPost, "/v1/admin/draft/commit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("commit draft: expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result commitResultDTO
	decodeData(t, rec.Body.Bytes(), &result)
	if len(result.Goals) != 1 {
		t.Fatalf("expected 1 committed goal, got %d", len(result.Goals))
	}
	if result.Goals[0].ID == 0 || result.Goals[0].LocalKey != "" {
		t.Fatalf("expected committed goal with store id, got id=%d key=%q", result.Goals[0].ID, result.Goals[0].LocalKey)
	}

	// Winner of quarterfinal 2 advances into the semifinal slot.
	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	pub := httptest.NewRecorder()
	router.ServeHTTP(pub, req)
	var items []matchDTO
	decodeData(t, pub.Body.Bytes(), &items)
	if items[4].HomeTeam == "" || items[4].AwayTeam != "3-1" {
		// Semifinal 1 away side is fed by quarterfinal 2.
		t.Fatalf("expected semifinal away slot 3-1, got %q", items[4].AwayTeam)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/rankings/scorers", nil)
	pub = httptest.NewRecorder()
	router.ServeHTTP(pub, req)
	var scorers []scorerRankingDTO
	decodeData(t, pub.Body.Bytes(), &scorers)
	if len(scorers) != 1 || scorers[0].Goals != 2 || scorers[0].Player.ID != 10 {
		t.Fatalf("unexpected scorer ranking: %+v", scorers)
	}
}

func TestAdminResetDiscardsDraftEdits(t *testing.T) {
	router := newTestRouter(t)

	adminReq := func(method, path string, body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("X-Admin-Key", testAdminKey)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := adminReq(http.MethodPut, "/v1/admin/draft/goals", []byte(`{"matchId":1,"team":"home","count":1,"type":"normal"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert draft goal: expected status 200, got %d", rec.Code)
	}

	rec = adminReq(http.MethodPost, "/v1/admin/draft/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset draft: expected status 200, got %d", rec.Code)
	}

	var draft draftDTO
	decodeData(t, rec.Body.Bytes(), &draft)
	if len(draft.Goals) != 0 {
		t.Fatalf("expected empty goal list after reset, got %d", len(draft.Goals))
	}
}
