package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/engine"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/repo"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/runner"
)

// PassRunner é o recorte do runner usado pela API
type PassRunner interface {
	RunPass(ctx context.Context) (runner.Summary, error)
	Preview(ctx context.Context, id string) (domain.Wager, engine.Decision, error)
}

// API expõe o disparo manual da liquidação e a prévia de uma aposta
type API struct {
	Runner PassRunner
	Log    *zap.Logger
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/v1/settlement/run", a.runPass)     // executa uma liquidação completa
	r.Get("/v1/wagers/{id}/preview", a.preview) // calcula sem gravar
	return r
}

// PreviewResponse é o corpo de GET /v1/wagers/{id}/preview
type PreviewResponse struct {
	WagerID string          `json:"wagerId"`
	Market  string          `json:"market"`
	Current domain.Result   `json:"current"`
	Outcome engine.Decision `json:"outcome"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) runPass(w http.ResponseWriter, r *http.Request) {
	sum, err := a.Runner.RunPass(r.Context())
	if errors.Is(err, runner.ErrPassRunning) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		a.Log.Error("manual settlement pass failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (a *API) preview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wager, d, err := a.Runner.Preview(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{
		WagerID: wager.ID,
		Market:  string(wager.MarketType),
		Current: wager.Result,
		Outcome: d,
	})
}
