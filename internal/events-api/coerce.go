package eventsapi

import (
	"strconv"
	"strings"

	"github.com/radieske/event-betting-console/internal/shared/apierr"
)

func idParam(id string) map[string]string {
	return map[string]string{"id": strings.TrimSpace(id)}
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apierr.Validation("Event ID is required.")
	}
	return nil
}

func notFound(msg string, cause error) error {
	e := apierr.NotFound(msg)
	e.Cause = cause
	return e
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// optionalInt converte o campo do formulário; vazio devolve def, abaixo de min é 400
func optionalInt(field, raw string, def, min int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.Validationf("Invalid value for %s: %q is not an integer.", field, raw)
	}
	if v < min {
		return 0, apierr.Validationf("Invalid value for %s: must be at least %d.", field, min)
	}
	return v, nil
}
