package upstream

import (
	"strings"
	"time"
)

// Config descreve um serviço remoto; construída uma vez no main e passada para cada client
type Config struct {
	Name    string // rótulo de métricas/logs, ex: "events-api"
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// DefaultHeaders são enviados em toda requisição para os dois upstreams
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

func (c Config) headers() map[string]string {
	h := DefaultHeaders()
	for k, v := range c.Headers {
		h[k] = v
	}
	return h
}

func (c Config) baseURL() string {
	return strings.TrimSuffix(c.BaseURL, "/")
}
