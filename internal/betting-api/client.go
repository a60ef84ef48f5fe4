package bettingapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/event-betting-console/internal/betting-api/dto"
	"github.com/radieske/event-betting-console/internal/shared/upstream"
)

// Client conversa com o serviço de Betting
type Client struct {
	api *upstream.Client
}

type Option func(*Client)

// WithObserver liga as métricas de upstream
func WithObserver(fn upstream.RequestObserver) Option {
	return func(c *Client) { c.api.OnRequest = fn }
}

// NewNormalizer devolve a política de erro do Betting: mantém o payload em Details
// e descreve conexão recusada com a base URL
func NewNormalizer() upstream.Normalizer {
	return upstream.Normalizer{
		Service:         "Betting API",
		Fallback:        "An unknown betting API error occurred",
		KeepDetails:     true,
		DescribeRefused: true,
	}
}

func New(cfg upstream.Config, log *zap.Logger, opts ...Option) *Client {
	c := &Client{api: upstream.New(cfg, NewNormalizer(), log)}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL devolve a URL do upstream configurado
func (c *Client) BaseURL() string { return c.api.BaseURL() }

// GetActiveEvents nunca devolve corpo ausente: vazio ou null vira []
func (c *Client) GetActiveEvents(ctx context.Context) (upstream.Body, error) {
	resp, err := c.api.Get(ctx, "getActiveEvents", "/events", nil)
	if err != nil {
		return nil, err
	}
	if resp.Body.IsEmpty() {
		return upstream.Body("[]"), nil
	}
	return resp.Body, nil
}

// PlaceBet valida localmente antes de qualquer request
func (c *Client) PlaceBet(ctx context.Context, in BetInput) (upstream.Body, error) {
	payload, err := BuildBetRequest(in)
	if err != nil {
		return nil, err
	}
	c.api.Logger().Debug("placing bet",
		zap.String("user_id", payload.UserID),
		zap.String("event_id", payload.EventID),
		zap.Float64("amount", payload.Amount),
		zap.String("outcome", string(payload.PredictedOutcome)),
	)
	resp, err := c.api.Do(ctx, upstream.Request{
		Operation: "placeBet",
		Method:    http.MethodPost,
		Path:      "/bets",
		Body:      payload,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// FinalizeEvent sintetiza a confirmação quando o upstream responde 200 sem corpo
func (c *Client) FinalizeEvent(ctx context.Context, eventID, result string) (upstream.Body, error) {
	payload, err := BuildFinalizeRequest(eventID, result)
	if err != nil {
		return nil, err
	}
	eventID = strings.TrimSpace(eventID)
	resp, err := c.api.Do(ctx, upstream.Request{
		Operation:  "finalizeEvent",
		Method:     http.MethodPost,
		Path:       "/events/{id}/finalize",
		PathParams: map[string]string{"id": eventID},
		Body:       payload,
	})
	if err != nil {
		return nil, err
	}
	if resp.Body.IsEmpty() {
		msg := fmt.Sprintf("Event %s finalization initiated with result %s.", eventID, payload.Result)
		return upstream.JSON(dto.Ack{Message: msg}), nil
	}
	return resp.Body, nil
}

// CheckHealth nunca falha; o erro vira descritor
func (c *Client) CheckHealth(ctx context.Context) dto.HealthStatus {
	if _, err := c.api.Get(ctx, "checkHealth", "/healthz", nil); err != nil {
		return dto.HealthStatus{Status: dto.StatusError, Message: err.Error()}
	}
	return dto.HealthStatus{Status: dto.StatusOK}
}

// CheckReadiness diferencia 503 (Unavailable) de qualquer outra falha (Error)
func (c *Client) CheckReadiness(ctx context.Context) dto.HealthStatus {
	_, err := c.api.Get(ctx, "checkReadiness", "/readyz", nil)
	switch {
	case err == nil:
		return dto.HealthStatus{Status: dto.StatusReady}
	case upstream.IsUpstreamStatus(err, http.StatusServiceUnavailable):
		return dto.HealthStatus{Status: dto.StatusUnavailable, Message: err.Error()}
	default:
		return dto.HealthStatus{Status: dto.StatusError, Message: err.Error()}
	}
}
