package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	bettingapi "github.com/radieske/event-betting-console/internal/betting-api"
	bettingdto "github.com/radieske/event-betting-console/internal/betting-api/dto"
	"github.com/radieske/event-betting-console/pkg/contracts/events"
)

const bettingHome = "/betting"

type bettingIndexView struct {
	Events    []bettingdto.ActiveEvent
	Readiness bettingdto.HealthStatus
}

// bettingIndex lista os eventos ativos e o estado de prontidão do Betting
func (s *Server) bettingIndex(w http.ResponseWriter, r *http.Request) {
	body, err := s.betting.GetActiveEvents(r.Context())
	if err != nil {
		s.renderErrorWithDetails(w, r, err, "Could not fetch active events from the Betting API.")
		return
	}
	v := bettingIndexView{Events: []bettingdto.ActiveEvent{}}
	if err := body.Decode(&v.Events); err != nil {
		s.renderError(w, r, err, "Could not fetch active events from the Betting API.")
		return
	}
	v.Readiness = s.betting.CheckReadiness(r.Context())
	s.render(w, r, http.StatusOK, pageBettingIndex, "Betting", v)
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	in := bettingapi.BetInput{
		UserID:           r.PostForm.Get("userId"),
		EventID:          r.PostForm.Get("eventId"),
		Amount:           r.PostForm.Get("amount"),
		PredictedOutcome: r.PostForm.Get("predictedOutcome"),
	}
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.EventID) == "" ||
		strings.TrimSpace(in.Amount) == "" || strings.TrimSpace(in.PredictedOutcome) == "" {
		redirect(w, r, bettingHome, "error", "Failed to place bet: Missing required fields for placing a bet.")
		return
	}

	body, err := s.betting.PlaceBet(r.Context(), in)
	if err != nil {
		redirect(w, r, bettingHome, "error", "Failed to place bet: "+err.Error())
		return
	}
	var bet bettingdto.Bet
	s.decodeSuccess(r, body, &bet)
	id, amount, outcome := betSummary(bet, in)
	msg := fmt.Sprintf("Bet placed successfully! Bet ID: %s, Amount: %s, Outcome: %s", id, amount, outcome)
	s.audit.Record(r.Context(), events.ActionBetPlaced, in.EventID, msg)
	redirect(w, r, bettingHome, "success", msg)
}

// betSummary completa com o form o que a resposta do Betting não trouxe
func betSummary(bet bettingdto.Bet, in bettingapi.BetInput) (id, amount, outcome string) {
	id, amount, outcome = bet.ID, strings.TrimSpace(in.Amount), strings.TrimSpace(in.PredictedOutcome)
	if id == "" {
		id = "n/a"
	}
	if bet.Amount > 0 {
		amount = strconv.FormatFloat(bet.Amount, 'f', -1, 64)
	}
	if bet.PredictedOutcome != "" {
		outcome = string(bet.PredictedOutcome)
	}
	return id, amount, outcome
}

func (s *Server) finalizeEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	result := strings.TrimSpace(r.PostForm.Get("result"))
	if result == "" {
		redirect(w, r, bettingHome, "error",
			fmt.Sprintf("Failed to finalize event %s: Result (HomeWin, AwayWin, Draw) is required to finalize.", id))
		return
	}

	body, err := s.betting.FinalizeEvent(r.Context(), id, result)
	if err != nil {
		redirect(w, r, bettingHome, "error", fmt.Sprintf("Failed to finalize event %s: %s", id, err.Error()))
		return
	}
	var ack bettingdto.Ack
	s.decodeSuccess(r, body, &ack)
	msg := ack.Message
	if msg == "" {
		msg = fmt.Sprintf("Event %s finalized with result %s.", id, result)
	}
	s.audit.Record(r.Context(), events.ActionEventFinalized, id, msg)
	redirect(w, r, bettingHome, "success", msg)
}

type statusView struct {
	Health    bettingdto.HealthStatus `json:"health"`
	Readiness bettingdto.HealthStatus `json:"readiness"`
}

// bettingStatus devolve os dois probes em JSON
func (s *Server) bettingStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusView{
		Health:    s.betting.CheckHealth(r.Context()),
		Readiness: s.betting.CheckReadiness(r.Context()),
	})
}
