package dto

import (
	"sort"
	"strings"
	"time"
)

// Event é a visão de um evento usada pelas páginas; o upstream pode mandar mais campos
type Event struct {
	ID               string   `json:"id"`
	EventName        string   `json:"eventName"`
	Type             any      `json:"type"` // número ou nome do enum, depende da versão do upstream
	HomeTeam         string   `json:"homeTeam"`
	AwayTeam         string   `json:"awayTeam"`
	EventStartDate   string   `json:"eventStartDate"`
	EventEndDate     string   `json:"eventEndDate"`
	EventResult      any      `json:"eventResult,omitempty"`
	EventSubscribers []string `json:"eventSubscribers,omitempty"`
}

// Round representa um round/período dentro do evento
type Round struct {
	RoundNumber   int    `json:"roundNumber"`
	HomeTeamScore int    `json:"homeTeamScore"`
	AwayTeamScore int    `json:"awayTeamScore"`
	RoundDateTime string `json:"roundDateTime,omitempty"`
}

// EventDetails é a resposta de GET /Events/{id}/details
type EventDetails struct {
	Event
	EventRounds []Round `json:"eventRounds"`
}

// EndResult é a resposta de POST /Events/{id}/end
type EndResult struct {
	Result any `json:"result"`
}

// formatos vistos no upstream: com fuso (RFC3339) e sem fuso (LocalDateTime do C#)
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp aceita os formatos acima; ok=false quando nenhum casa
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByStartDesc ordena do início mais recente para o mais antigo;
// datas inválidas vão para o fim
func SortByStartDesc(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, oki := ParseTimestamp(events[i].EventStartDate)
		tj, okj := ParseTimestamp(events[j].EventStartDate)
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
}
