package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"

	"github.com/radieske/event-betting-console/internal/shared/apierr"
)

// Normalizer converte falhas de transporte e respostas não-2xx em *apierr.Error.
// Cada client tem a sua instância (mensagem padrão e política de details diferentes).
type Normalizer struct {
	Service     string // nome exibido nas mensagens, ex: "Betting API"
	Fallback    string
	KeepDetails bool // anexa o payload bruto em Details
	// DescribeRefused troca "connection refused" por uma mensagem com a base URL
	DescribeRefused bool
}

// Failure reúne o que se sabe sobre uma chamada que falhou
type Failure struct {
	Status  int    // 0 quando não houve resposta
	Payload []byte // corpo bruto do upstream
	Err     error  // erro de transporte, se houver
	BaseURL string
}

// envelope são os campos convencionais de mensagem nos payloads de erro
type envelope struct {
	Title   string
	Message string
}

// envelopeOf lê title/message de um objeto já decodificado; escalares valem, objetos e arrays não
func envelopeOf(m map[string]any) envelope {
	return envelope{Title: scalarField(m, "title"), Message: scalarField(m, "message")}
}

func scalarField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// parsedFailure é o payload já decodificado, consumido pelas regras de extração
type parsedFailure struct {
	Failure
	env     envelope
	decoded any
	hasJSON bool
}

type messageRule func(p parsedFailure) (string, bool)

// messageRules em ordem de prioridade; a primeira que casar vence
var messageRules = []messageRule{
	titleRule,
	messageFieldRule,
	rawPayloadRule,
	transportRule,
}

func titleRule(p parsedFailure) (string, bool) {
	return p.env.Title, strings.TrimSpace(p.env.Title) != ""
}

func messageFieldRule(p parsedFailure) (string, bool) {
	return p.env.Message, strings.TrimSpace(p.env.Message) != ""
}

func rawPayloadRule(p parsedFailure) (string, bool) {
	if s, ok := p.decoded.(string); ok {
		return s, strings.TrimSpace(s) != ""
	}
	raw := strings.TrimSpace(string(p.Payload))
	if raw == "" || raw == "null" {
		return "", false
	}
	if p.hasJSON {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(raw)); err == nil {
			return buf.String(), true
		}
	}
	return raw, true
}

func transportRule(p parsedFailure) (string, bool) {
	if p.Err != nil {
		return p.Err.Error(), true
	}
	if p.Status > 0 {
		return fmt.Sprintf("request failed with status code %d", p.Status), true
	}
	return "", false
}

func parse(f Failure) parsedFailure {
	p := parsedFailure{Failure: f}
	if len(bytes.TrimSpace(f.Payload)) == 0 {
		return p
	}
	if err := json.Unmarshal(f.Payload, &p.decoded); err == nil {
		p.hasJSON = true
		if m, ok := p.decoded.(map[string]any); ok {
			p.env = envelopeOf(m)
		}
	}
	return p
}

// Normalize aplica as regras e devolve sempre um *apierr.Error
func (n Normalizer) Normalize(f Failure) *apierr.Error {
	if f.Err != nil && f.Status == 0 {
		return n.transport(f)
	}

	p := parse(f)
	msg := n.message(p)

	var details any
	if n.KeepDetails && p.Payload != nil && len(bytes.TrimSpace(p.Payload)) > 0 {
		if p.hasJSON {
			details = p.decoded
		} else {
			details = strings.TrimSpace(string(p.Payload))
		}
	}
	return apierr.Upstream(f.Status, msg, details)
}

func (n Normalizer) message(p parsedFailure) string {
	for _, rule := range messageRules {
		if msg, ok := rule(p); ok {
			return msg
		}
	}
	return n.Fallback
}

func (n Normalizer) transport(f Failure) *apierr.Error {
	if n.DescribeRefused && IsConnRefused(f.Err) {
		msg := fmt.Sprintf("Connection refused when trying to reach %s at %s. Is it running?", n.Service, f.BaseURL)
		return apierr.Transport(http.StatusServiceUnavailable, msg, f.Err)
	}
	if n.DescribeRefused && IsTimeout(f.Err) {
		msg := fmt.Sprintf("Timed out waiting for %s at %s.", n.Service, f.BaseURL)
		return apierr.Transport(http.StatusInternalServerError, msg, f.Err)
	}
	msg, ok := transportRule(parsedFailure{Failure: f})
	if !ok {
		msg = n.Fallback
	}
	return apierr.Transport(http.StatusInternalServerError, msg, f.Err)
}

// IsConnRefused detecta ECONNREFUSED através de url.Error/net.OpError
func IsConnRefused(err error) bool {
	return err != nil && errors.Is(err, syscall.ECONNREFUSED)
}

// IsTimeout detecta timeout do http.Client ou do contexto
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
