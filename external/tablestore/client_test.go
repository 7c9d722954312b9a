package tablestore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/platform/resilience"
	"github.com/mirchoi/classcup/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
	return client, server
}

func TestMatchStoreList(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/matches" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "test-key" {
			t.Errorf("apikey header = %q", got)
		}
		if got := r.URL.Query().Get("order"); got != "match_no.asc" {
			t.Errorf("order = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"match_no":1,"name":"Quarterfinal 1","home_team":"1-2","away_team":"2-3","datetime":"2026-05-18T09:00:00Z","location":"Main Field","status":"finished","home_score":2,"away_score":1,"home_pk":null,"away_pk":null},
			{"id":5,"match_no":5,"name":"Semifinal 1","home_team":"quarterfinal-1 winner","away_team":"quarterfinal-2 winner","datetime":"2026-05-19T09:00:00Z","location":"Main Field","status":"scheduled","home_score":null,"away_score":null,"home_pk":null,"away_pk":null}
		]`))
	})

	rows, err := NewMatchStore(client).List(context.Background())
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(rows))
	}
	if rows[0].HomeScore == nil || *rows[0].HomeScore != 2 {
		t.Fatalf("home score = %v", rows[0].HomeScore)
	}
	if rows[1].HomeScore != nil {
		t.Fatalf("unplayed match must keep nil scores: %+v", rows[1])
	}
	if winner, _ := rows[0].Result(); winner != "1-2" {
		t.Fatalf("winner = %q", winner)
	}
}

func TestMatchStoreUpsertAllSendsMergePrefer(t *testing.T) {
	t.Parallel()

	var gotPrefer, gotConflict string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		gotConflict = r.URL.Query().Get("on_conflict")
		w.WriteHeader(http.StatusCreated)
	})

	err := NewMatchStore(client).UpsertAll(context.Background(), []match.Match{{ID: 1, MatchNo: 1, Name: "Quarterfinal 1"}})
	if err != nil {
		t.Fatalf("upsert matches: %v", err)
	}
	if gotPrefer != preferUpsert {
		t.Fatalf("Prefer header = %q", gotPrefer)
	}
	if gotConflict != "id" {
		t.Fatalf("on_conflict = %q", gotConflict)
	}
}

func TestGoalStoreInsertAllReturnsStoreIDs(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		if got := r.Header.Get("Prefer"); got != preferInsert {
			t.Errorf("Prefer header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":41,"match_id":1,"team":"home","player_id":7,"count":2,"type":"normal"}]`))
	})

	rows, err := NewGoalStore(client).InsertAll(context.Background(), []goal.Goal{
		{LocalKey: "draft-key-a", MatchID: 1, Team: goal.TeamHome, Count: 2, Type: goal.TypeNormal},
	})
	if err != nil {
		t.Fatalf("insert goals: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 41 || rows[0].LocalKey != "" {
		t.Fatalf("inserted rows = %+v", rows)
	}
}

func TestGoalStoreDeleteByIDsBuildsInFilter(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	})

	if err := NewGoalStore(client).DeleteByIDs(context.Background(), []int64{5, 9}); err != nil {
		t.Fatalf("delete goals: %v", err)
	}
	if gotQuery != "id=in.(5,9)" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestClientRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		MaxRetries: 2,
	})

	if _, err := NewGoalStore(client).List(context.Background()); err != nil {
		t.Fatalf("list goals after retry: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "bad-key",
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	})

	if _, err := NewMatchStore(client).List(context.Background()); err == nil {
		t.Fatal("expected an error for status 401")
	}
	if attempts != 1 {
		t.Fatalf("client errors must not retry, got %d attempts", attempts)
	}
}

func TestClientCircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	store := NewPlayerStore(client)
	for i := 0; i < 2; i++ {
		if _, err := store.List(context.Background()); err == nil {
			t.Fatal("expected store failure")
		}
	}

	_, err := store.List(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once the circuit opens, got %v", err)
	}
}
