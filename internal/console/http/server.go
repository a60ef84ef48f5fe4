package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	bettingapi "github.com/radieske/event-betting-console/internal/betting-api"
	bettingdto "github.com/radieske/event-betting-console/internal/betting-api/dto"
	"github.com/radieske/event-betting-console/internal/console/audit"
	eventsapi "github.com/radieske/event-betting-console/internal/events-api"
	"github.com/radieske/event-betting-console/internal/shared/upstream"
)

// EventsAPI é o que as páginas de eventos usam do client de Events
type EventsAPI interface {
	ListEvents(ctx context.Context) (upstream.Body, error)
	GetEvent(ctx context.Context, id string) (upstream.Body, error)
	CreateEvent(ctx context.Context, in eventsapi.EventInput) (upstream.Body, error)
	EndEvent(ctx context.Context, id string) (upstream.Body, error)
	CancelEvent(ctx context.Context, id string) (upstream.Body, error)
	SubscribeToEvent(ctx context.Context, id, callbackURL string) (upstream.Body, error)
	DeleteEvent(ctx context.Context, id string) (upstream.Body, error)
	GetEventDetails(ctx context.Context, id string) (upstream.Body, error)
	CreateEventDetail(ctx context.Context, id string, in eventsapi.DetailInput) (upstream.Body, error)
	UpdateEventDetail(ctx context.Context, id string, in eventsapi.DetailInput) (upstream.Body, error)
}

// BettingAPI é o que as páginas de apostas usam do client de Betting
type BettingAPI interface {
	GetActiveEvents(ctx context.Context) (upstream.Body, error)
	PlaceBet(ctx context.Context, in bettingapi.BetInput) (upstream.Body, error)
	FinalizeEvent(ctx context.Context, eventID, result string) (upstream.Body, error)
	CheckHealth(ctx context.Context) bettingdto.HealthStatus
	CheckReadiness(ctx context.Context) bettingdto.HealthStatus
}

// Server renderiza as páginas do console e encaminha os formulários para os upstreams
type Server struct {
	log     *zap.Logger
	events  EventsAPI
	betting BettingAPI
	audit   *audit.Recorder
	pages   *pages
}

func NewServer(log *zap.Logger, ev EventsAPI, bt BettingAPI, rec *audit.Recorder) (*Server, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = audit.NewRecorder(audit.Nop{}, log)
	}
	return &Server{log: log, events: ev, betting: bt, audit: rec, pages: p}, nil
}

// Router monta as rotas; o override de método roda antes do roteamento do chi
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(compress)
	r.Use(flash)

	r.Get("/", s.listEvents)
	r.Get("/events/new", s.newEventForm)
	r.Post("/events", s.createEvent)
	r.Route("/events/{id}", func(r chi.Router) {
		r.Get("/", s.showEvent)
		r.Delete("/", s.deleteEvent)
		r.Post("/end", s.endEvent)
		r.Post("/cancel", s.cancelEvent)
		r.Post("/subscribe", s.subscribe)
		r.Get("/details/new", s.newDetailForm)
		r.Post("/details", s.createDetail)
		r.Patch("/details", s.updateDetail)
	})

	r.Route("/betting", func(r chi.Router) {
		r.Get("/", s.bettingIndex)
		r.Post("/bets", s.placeBet)
		r.Post("/events/{id}/finalize", s.finalizeEvent)
		r.Get("/status", s.bettingStatus)
	})

	r.NotFound(s.notFound)

	return methodOverride(r)
}

func compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
