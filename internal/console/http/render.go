package httpapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	bettingdto "github.com/radieske/event-betting-console/internal/betting-api/dto"
	eventsdto "github.com/radieske/event-betting-console/internal/events-api/dto"
	"github.com/radieske/event-betting-console/internal/shared/apierr"
	"github.com/radieske/event-betting-console/internal/shared/upstream"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex        = "index.html"
	pageCreateEvent  = "create-event.html"
	pageEventDetail  = "event-detail.html"
	pageCreateDetail = "create-detail.html"
	pageBettingIndex = "betting-index.html"
	pageError        = "error.html"
)

var pageNames = []string{pageIndex, pageCreateEvent, pageEventDetail, pageCreateDetail, pageBettingIndex, pageError}

var funcs = template.FuncMap{
	"formatDate": func(s string) string {
		if t, ok := eventsdto.ParseTimestamp(s); ok {
			return t.Format("2006-01-02 15:04")
		}
		return s
	},
	"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"outcomes": func() []bettingdto.Outcome { return bettingdto.Outcomes },
}

// pages guarda um template por página, cada um com o layout comum
type pages struct {
	byName map[string]*template.Template
}

func loadPages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		p.byName[name] = t
	}
	return p, nil
}

// view é o dado entregue a todo template
type view struct {
	Title string
	Flash Flash
	Data  any
}

type errorView struct {
	Status  int
	Message string
}

// render executa em buffer para não mandar página pela metade em caso de erro de template
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	t, ok := s.pages.byName[page]
	if !ok {
		http.Error(w, "unknown page "+page, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", view{Title: title, Flash: flashFrom(r.Context()), Data: data}); err != nil {
		s.log.Error("template render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError mostra a página de erro com o status normalizado
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := apierr.StatusCode(err)
	msg := fallback
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	s.log.Warn("rendering error page", zap.Int("status", status), zap.String("path", r.URL.Path), zap.Error(err))
	s.render(w, r, status, pageError, "Error", errorView{Status: status, Message: msg})
}

// renderErrorWithDetails anexa o payload bruto do upstream (páginas de apostas)
func (s *Server) renderErrorWithDetails(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if e, ok := apierr.As(err); ok && e.HasDetails() {
		b, jerr := json.MarshalIndent(e.Details, "", "  ")
		if jerr == nil {
			err = &apierr.Error{
				Kind:    e.Kind,
				Status:  e.Status,
				Message: fmt.Sprintf("%s (Details: %s)", e.Message, b),
				Cause:   e,
			}
		}
	}
	s.renderError(w, r, err, fallback)
}

// redirect volta para path com a mensagem codificada na query
func redirect(w http.ResponseWriter, r *http.Request, path, kind, msg string) {
	q := url.Values{}
	q.Set("message", msg)
	q.Set("type", kind)
	http.Redirect(w, r, path+"?"+q.Encode(), http.StatusFound)
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, apierr.NotFound("Page Not Found"), "Page Not Found")
}

// decodeSuccess lê o corpo de uma resposta 2xx; se não decodificar, loga e o handler usa o que veio do form
func (s *Server) decodeSuccess(r *http.Request, body upstream.Body, v any) {
	if body.IsEmpty() {
		return
	}
	if err := body.Decode(v); err != nil {
		s.log.Debug("undecodable upstream success body",
			zap.String("path", r.URL.Path), zap.String("body", body.String()), zap.Error(err))
	}
}
