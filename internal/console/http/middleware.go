package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type flashKey struct{}

// Flash é a mensagem de retorno passada por query string (?message=...&type=...)
type Flash struct {
	Message string
	Type    string // info, success, error
}

// flash expõe message/type da query para os templates
func flash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := Flash{Message: q.Get("message"), Type: q.Get("type")}
		if f.Type == "" {
			f.Type = "info"
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), flashKey{}, f)))
	})
}

func flashFrom(ctx context.Context) Flash {
	f, _ := ctx.Value(flashKey{}).(Flash)
	return f
}

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// methodOverride troca POST por _method (query ou corpo urlencoded); formulários HTML só fazem GET/POST
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get("_method")
			if m == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				if err := r.ParseForm(); err == nil {
					m = r.PostForm.Get("_method")
				}
			}
			if m = strings.ToUpper(strings.TrimSpace(m)); overridable[m] {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger registra método, rota, status e latência de cada request
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
