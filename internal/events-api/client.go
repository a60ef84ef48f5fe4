package eventsapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/event-betting-console/internal/events-api/dto"
	"github.com/radieske/event-betting-console/internal/shared/apierr"
	"github.com/radieske/event-betting-console/internal/shared/upstream"
)

// Defaults aplicados ao criar eventos e rounds
const (
	DefaultEventName = "Unnamed Event"
	DefaultHomeTeam  = "Home Team"
	DefaultAwayTeam  = "Away Team"
	DefaultType      = 0
	DefaultRound     = 1
)

// isoLayout segue o formato de Date.toISOString (UTC com milissegundos)
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Client conversa com o serviço de Events. Sem estado mutável entre chamadas.
type Client struct {
	api *upstream.Client
	now func() time.Time
}

type Option func(*Client)

// WithObserver liga as métricas de upstream
func WithObserver(fn upstream.RequestObserver) Option {
	return func(c *Client) { c.api.OnRequest = fn }
}

// WithClock troca o relógio usado nos defaults de data (testes)
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewNormalizer devolve a política de erro do Events: só mensagem, sem details
func NewNormalizer() upstream.Normalizer {
	return upstream.Normalizer{
		Service:  "Events API",
		Fallback: "An unknown API error occurred",
	}
}

func New(cfg upstream.Config, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		api: upstream.New(cfg, NewNormalizer(), log),
		now: time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL devolve a URL do upstream configurado
func (c *Client) BaseURL() string { return c.api.BaseURL() }

// EventInput são os campos crus do formulário; string vazia = ausente
type EventInput struct {
	EventName      string
	Type           string
	HomeTeam       string
	AwayTeam       string
	EventStartDate string
	EventEndDate   string
}

// DetailInput são os campos crus de um round; string vazia = ausente
type DetailInput struct {
	RoundNumber   string
	HomeTeamScore string
	AwayTeamScore string
}

// ListEvents não promete ordem; quem chama decide como ordenar
func (c *Client) ListEvents(ctx context.Context) (upstream.Body, error) {
	resp, err := c.api.Get(ctx, "listEvents", "/Events/all", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (upstream.Body, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	resp, err := c.api.Get(ctx, "getEvent", "/Events/{id}", idParam(id))
	if upstream.IsUpstreamStatus(err, http.StatusNotFound) {
		return nil, notFound(fmt.Sprintf("Event with ID %s not found.", id), err)
	}
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// BuildCreateRequest aplica os defaults de criação; só falha se type não for inteiro
func (c *Client) BuildCreateRequest(in EventInput) (dto.EventCreateRequest, error) {
	typ := DefaultType
	if strings.TrimSpace(in.Type) != "" {
		v, err := strconv.Atoi(strings.TrimSpace(in.Type))
		if err != nil {
			return dto.EventCreateRequest{}, apierr.Validationf("Invalid event type %q: must be an integer.", in.Type)
		}
		typ = v
	}

	now := c.now().UTC().Format(isoLayout)
	return dto.EventCreateRequest{
		EventName:      orDefault(in.EventName, DefaultEventName),
		Type:           typ,
		HomeTeam:       orDefault(in.HomeTeam, DefaultHomeTeam),
		AwayTeam:       orDefault(in.AwayTeam, DefaultAwayTeam),
		EventStartDate: orDefault(in.EventStartDate, now),
		EventEndDate:   orDefault(in.EventEndDate, now),
	}, nil
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (upstream.Body, error) {
	payload, err := c.BuildCreateRequest(in)
	if err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, upstream.Request{
		Operation: "createEvent",
		Method:    http.MethodPost,
		Path:      "/Events/create",
		Body:      payload,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) EndEvent(ctx context.Context, id string) (upstream.Body, error) {
	return c.transition(ctx, "endEvent", "/Events/{id}/end", id)
}

// CancelEvent pode devolver corpo vazio ou só um texto de confirmação
func (c *Client) CancelEvent(ctx context.Context, id string) (upstream.Body, error) {
	return c.transition(ctx, "cancelEvent", "/Events/{id}/cancel", id)
}

func (c *Client) transition(ctx context.Context, op, path, id string) (upstream.Body, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, upstream.Request{
		Operation:  op,
		Method:     http.MethodPost,
		Path:       path,
		PathParams: idParam(id),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// SubscribeToEvent não valida callbackURL; isso é responsabilidade da camada HTTP
func (c *Client) SubscribeToEvent(ctx context.Context, id, callbackURL string) (upstream.Body, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, upstream.Request{
		Operation:  "subscribeToEvent",
		Method:     http.MethodPost,
		Path:       "/Events/{id}/subscribe",
		PathParams: idParam(id),
		Body:       dto.SubscribeRequest{CallbackURL: callbackURL},
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// DeleteEvent só sintetiza o ack quando o upstream respondeu 2xx (esperado 204);
// qualquer outro status já saiu como erro em Do
func (c *Client) DeleteEvent(ctx context.Context, id string) (upstream.Body, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, upstream.Request{
		Operation:  "deleteEvent",
		Method:     http.MethodDelete,
		Path:       "/Events/{id}/delete",
		PathParams: idParam(id),
	})
	if err != nil {
		return nil, err
	}
	c.api.Logger().Debug("event deleted", zap.String("event_id", id), zap.Int("status", resp.Status))
	return upstream.JSON(dto.DeleteAck{Message: fmt.Sprintf("Event %s deleted successfully.", id)}), nil
}

func (c *Client) GetEventDetails(ctx context.Context, id string) (upstream.Body, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	resp, err := c.api.Get(ctx, "getEventDetails", "/Events/{id}/details", idParam(id))
	if upstream.IsUpstreamStatus(err, http.StatusNotFound) {
		return nil, notFound(fmt.Sprintf("Event details not found for ID %s", id), err)
	}
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// BuildDetailCreateRequest: round 1 e placares 0 quando ausentes
func BuildDetailCreateRequest(in DetailInput) (dto.EventDetailCreateRequest, error) {
	round, err := optionalInt("roundNumber", in.RoundNumber, DefaultRound, 1)
	if err != nil {
		return dto.EventDetailCreateRequest{}, err
	}
	home, err := optionalInt("homeTeamScore", in.HomeTeamScore, 0, 0)
	if err != nil {
		return dto.EventDetailCreateRequest{}, err
	}
	away, err := optionalInt("awayTeamScore", in.AwayTeamScore, 0, 0)
	if err != nil {
		return dto.EventDetailCreateRequest{}, err
	}
	return dto.EventDetailCreateRequest{RoundNumber: round, HomeTeamScore: home, AwayTeamScore: away}, nil
}

func (c *Client) CreateEventDetail(ctx context.Context, id string, in DetailInput) (upstream.Body, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	payload, err := BuildDetailCreateRequest(in)
	if err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, upstream.Request{
		Operation:  "createEventDetail",
		Method:     http.MethodPost,
		Path:       "/Events/{id}/details/create",
		PathParams: idParam(id),
		Body:       payload,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// BuildDetailPatchRequest exige roundNumber; placares entram só se vieram no input
func BuildDetailPatchRequest(in DetailInput) (dto.EventDetailPatchRequest, error) {
	if strings.TrimSpace(in.RoundNumber) == "" {
		return dto.EventDetailPatchRequest{}, apierr.Validation("Round number is required to update event details.")
	}
	round, err := optionalInt("roundNumber", in.RoundNumber, 0, 1)
	if err != nil {
		return dto.EventDetailPatchRequest{}, err
	}

	payload := dto.EventDetailPatchRequest{RoundNumber: round}
	if strings.TrimSpace(in.HomeTeamScore) != "" {
		v, err := optionalInt("homeTeamScore", in.HomeTeamScore, 0, 0)
		if err != nil {
			return dto.EventDetailPatchRequest{}, err
		}
		payload.HomeTeamScore = &v
	}
	if strings.TrimSpace(in.AwayTeamScore) != "" {
		v, err := optionalInt("awayTeamScore", in.AwayTeamScore, 0, 0)
		if err != nil {
			return dto.EventDetailPatchRequest{}, err
		}
		payload.AwayTeamScore = &v
	}
	return payload, nil
}

// UpdateEventDetail usa PATCH; falha de validação não chega na rede
func (c *Client) UpdateEventDetail(ctx context.Context, id string, in DetailInput) (upstream.Body, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	payload, err := BuildDetailPatchRequest(in)
	if err != nil {
		return nil, err
	}
	resp, err := c.api.Do(ctx, upstream.Request{
		Operation:  "updateEventDetail",
		Method:     http.MethodPatch,
		Path:       "/Events/{id}/details",
		PathParams: idParam(id),
		Body:       payload,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
