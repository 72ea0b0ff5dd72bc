package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hoopsight/projection-api/internal/logic"
	"github.com/hoopsight/projection-api/internal/models"
)

func withPlayer(req *http.Request, player string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("player", player)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPlayerProjection_QueryParams(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantStatus   int
		wantOpponent string
		wantRest     int
		wantCalled   bool
	}{
		{"defaults", "", http.StatusOK, "", 0, true},
		{"opponent and rest", "?opponent=bos&rest_days=2", http.StatusOK, "bos", 2, true},
		{"none", "?opponent=none", http.StatusOK, "none", 0, true},
		{"rest not a number", "?rest_days=two", http.StatusBadRequest, "", 0, false},
		{"negative rest", "?rest_days=-1", http.StatusBadRequest, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &MockProjectionService{
				ProjectFunc: func(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResponse, error) {
					called = true
					if req.Player != "jayson_tatum" || req.Opponent != tt.wantOpponent || req.RestDays != tt.wantRest {
						t.Errorf("service got %+v", req)
					}
					return &models.ProjectionResponse{MatchupStatus: models.MatchupNotRequested}, nil
				},
			}
			h := newTestHandler(svc, nil)

			req := withPlayer(httptest.NewRequest("GET", "/api/v1/players/jayson_tatum/projection"+tt.query, nil), "jayson_tatum")
			w := httptest.NewRecorder()
			h.GetPlayerProjection(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if called != tt.wantCalled {
				t.Errorf("service called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestCreateProjection(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantStage  string
	}{
		{"valid", `{"player":"jayson_tatum","opponent":"BOS","rest_days":1}`, nil, http.StatusOK, ""},
		{"long rest", `{"player":"jayson_tatum","rest_days":400}`, nil, http.StatusOK, ""},
		{"negative rest", `{"player":"jayson_tatum","rest_days":-1}`, nil, http.StatusBadRequest, "validate"},
		{"bad json", `{"player":`, nil, http.StatusBadRequest, ""},
		{"missing player", `{"opponent":"BOS"}`, nil, http.StatusBadRequest, "validate"},
		{"unknown opponent", `{"player":"a","opponent":"LAL"}`, &logic.StageError{Stage: logic.StageValidate, Err: fmt.Errorf("%w: LAL", logic.ErrUnknownOpponent)}, http.StatusBadRequest, "validate"},
		{"model failure", `{"player":"a"}`, &logic.StageError{Stage: logic.StagePredict, Err: fmt.Errorf("%w: boom", logic.ErrModelInvocation)}, http.StatusBadGateway, "predict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockProjectionService{
				ProjectFunc: func(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResponse, error) {
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					return &models.ProjectionResponse{
						SummaryResponse: models.SummaryResponse{Player: req.Player},
						PredictedPoints: 19.2,
						MatchupStatus:   models.MatchupAdjusted,
					}, nil
				},
			}
			h := newTestHandler(svc, nil)

			w := httptest.NewRecorder()
			h.CreateProjection(w, httptest.NewRequest("POST", "/api/v1/projections", strings.NewReader(tt.body)))
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}

			var body map[string]interface{}
			decodeBody(t, w, &body)
			if tt.wantStage != "" && body["stage"] != tt.wantStage {
				t.Errorf("stage = %v, want %s", body["stage"], tt.wantStage)
			}
			if tt.wantStatus == http.StatusOK && body["matchup_status"] != "adjusted" {
				t.Errorf("unexpected body: %v", body)
			}
		})
	}
}

func TestCreateRosterProjection(t *testing.T) {
	svc := &MockProjectionService{
		ProjectRosterFunc: func(ctx context.Context, req models.RosterRequest) (*models.RosterResponse, error) {
			resp := &models.RosterResponse{Opponent: "BOS"}
			for _, p := range req.Players {
				entry := models.RosterEntry{Player: p}
				if p == "missing" {
					entry.Error = logic.ErrPlayerNotFound.Error()
					entry.Stage = string(logic.StageLoad)
				} else {
					entry.Projection = &models.ProjectionResponse{}
				}
				resp.Results = append(resp.Results, entry)
			}
			return resp, nil
		},
	}
	h := newTestHandler(svc, nil)

	w := httptest.NewRecorder()
	body := `{"players":["a","missing"],"opponent":"BOS"}`
	h.CreateRosterProjection(w, httptest.NewRequest("POST", "/api/v1/projections/roster", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp models.RosterResponse
	decodeBody(t, w, &resp)
	if len(resp.Results) != 2 || resp.Results[1].Stage != "load" || resp.Results[0].Projection == nil {
		t.Errorf("unexpected response: %+v", resp)
	}

	w = httptest.NewRecorder()
	h.CreateRosterProjection(w, httptest.NewRequest("POST", "/api/v1/projections/roster", strings.NewReader(`{"players":[""]}`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty player name: expected 400, got %d", w.Code)
	}
}
