package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/radieske/event-betting-console/internal/shared/apierr"
)

// Resultados usados como rótulo de métrica
const (
	OutcomeSuccess        = "success"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeTransportError = "transport_error"
)

// RequestObserver recebe uma chamada por requisição enviada (métricas)
type RequestObserver func(service, operation, outcome string, elapsed time.Duration)

// Request descreve uma única chamada ao upstream
type Request struct {
	Operation  string            // nome lógico, ex: "placeBet"
	Method     string            // http.MethodGet, ...
	Path       string            // ex: "/Events/{id}/details"
	PathParams map[string]string // substituídos e escapados pelo resty
	Body       any               // nil = sem corpo
}

// Response é a resposta 2xx do upstream
type Response struct {
	Status int
	Body   Body
}

// Client encapsula o resty configurado para um upstream
type Client struct {
	cfg  Config
	rest *resty.Client
	norm Normalizer
	log  *zap.Logger

	OnRequest RequestObserver
}

// New cria o client; timeout e headers vêm da Config, nunca de estado global
func New(cfg Config, norm Normalizer, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	rc := resty.New().
		SetBaseURL(cfg.baseURL()).
		SetTimeout(cfg.Timeout).
		SetHeaders(cfg.headers()).
		SetLogger(log.Sugar())

	return &Client{
		cfg:  cfg,
		rest: rc,
		norm: norm,
		log:  log.Named(cfg.Name),
	}
}

// BaseURL devolve a URL configurada, sem barra final
func (c *Client) BaseURL() string { return c.cfg.baseURL() }

// Name devolve o rótulo do upstream
func (c *Client) Name() string { return c.cfg.Name }

// Do envia a requisição. Qualquer falha (transporte ou status não-2xx) sai como *apierr.Error.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	start := time.Now()

	req := c.rest.R().SetContext(ctx)
	if len(r.PathParams) > 0 {
		req.SetPathParams(r.PathParams)
	}
	if r.Body != nil {
		req.SetBody(r.Body)
	}

	resp, err := req.Execute(r.Method, r.Path)
	if err != nil {
		nerr := c.norm.Normalize(Failure{Err: err, BaseURL: c.BaseURL()})
		c.observe(r.Operation, OutcomeTransportError, start)
		c.log.Warn("upstream transport error",
			zap.String("operation", r.Operation),
			zap.String("base_url", c.BaseURL()),
			zap.Error(err),
		)
		return nil, nerr
	}

	if !resp.IsSuccess() {
		nerr := c.norm.Normalize(Failure{
			Status:  resp.StatusCode(),
			Payload: resp.Body(),
			BaseURL: c.BaseURL(),
		})
		c.observe(r.Operation, OutcomeUpstreamError, start)
		c.log.Warn("upstream returned error",
			zap.String("operation", r.Operation),
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()),
		)
		return nil, nerr
	}

	c.observe(r.Operation, OutcomeSuccess, start)
	return &Response{Status: resp.StatusCode(), Body: Body(resp.Body())}, nil
}

// Get é um atalho para GET sem corpo
func (c *Client) Get(ctx context.Context, op, path string, params map[string]string) (*Response, error) {
	return c.Do(ctx, Request{Operation: op, Method: http.MethodGet, Path: path, PathParams: params})
}

func (c *Client) observe(op, outcome string, start time.Time) {
	if c.OnRequest != nil {
		c.OnRequest(c.cfg.Name, op, outcome, time.Since(start))
	}
}

// IsUpstreamStatus verifica se err é uma resposta do upstream com o status dado
func IsUpstreamStatus(err error, status int) bool {
	e, ok := apierr.As(err)
	return ok && e.Kind == apierr.KindUpstream && e.Status == status
}

// Logger devolve o logger nomeado do upstream
func (c *Client) Logger() *zap.Logger { return c.log }
