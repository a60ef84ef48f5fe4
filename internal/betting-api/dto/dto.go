package dto

import "time"

// Outcome é o resultado previsto/final de um evento no Betting
type Outcome string

const (
	HomeWin Outcome = "HomeWin"
	AwayWin Outcome = "AwayWin"
	Draw    Outcome = "Draw"
)

// Outcomes na ordem exibida nas mensagens e nos selects
var Outcomes = []Outcome{HomeWin, AwayWin, Draw}

// BetRequest é o corpo de POST /bets
type BetRequest struct {
	UserID           string  `json:"userId"`
	EventID          string  `json:"eventId"`
	Amount           float64 `json:"amount"`
	PredictedOutcome Outcome `json:"predictedOutcome"`
}

// FinalizeRequest é o corpo de POST /events/{id}/finalize
type FinalizeRequest struct {
	Result Outcome `json:"result"`
}

// Bet é a aposta criada devolvida pelo upstream
type Bet struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	EventID          string    `json:"eventId"`
	Amount           float64   `json:"amount"`
	PredictedOutcome Outcome   `json:"predictedOutcome"`
	PlacedAt         time.Time `json:"placedAt"`
	Status           string    `json:"status"` // Pending, Won, Lost, Paid, Failed
}

// ActiveEvent é um item de GET /events
type ActiveEvent struct {
	ID             string   `json:"id"`
	EventName      string   `json:"eventName"`
	HomeTeam       string   `json:"homeTeam"`
	AwayTeam       string   `json:"awayTeam"`
	HomeWinChance  float64  `json:"homeWinChance"`
	AwayWinChance  float64  `json:"awayWinChance"`
	DrawChance     float64  `json:"drawChance"`
	EventStartDate string   `json:"eventStartDate"`
	EventEndDate   string   `json:"eventEndDate"`
	EventResult    *Outcome `json:"eventResult,omitempty"`
	Type           string   `json:"type"`
}

// Ack é a confirmação sintetizada quando o upstream responde sem corpo
type Ack struct {
	Message string `json:"message"`
}

// Estados devolvidos pelos probes
const (
	StatusOK          = "OK"
	StatusReady       = "Ready"
	StatusError       = "Error"
	StatusUnavailable = "Unavailable"
)

// HealthStatus é o descritor dos probes /healthz e /readyz
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
