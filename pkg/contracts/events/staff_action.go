package events

// Ações registradas na auditoria do console
const (
	ActionEventCreated    = "event_created"
	ActionEventEnded      = "event_ended"
	ActionEventCancelled  = "event_cancelled"
	ActionEventSubscribed = "event_subscribed"
	ActionEventDeleted    = "event_deleted"
	ActionDetailCreated   = "event_detail_created"
	ActionDetailUpdated   = "event_detail_updated"
	ActionBetPlaced       = "bet_placed"
	ActionEventFinalized  = "event_finalized"
)

// Evento publicado no tópico "staff_actions" após cada mutação bem-sucedida
type StaffAction struct {
	ID       string `json:"id"`
	Action   string `json:"action"`
	EventID  string `json:"event_id,omitempty"`
	Detail   string `json:"detail,omitempty"` // mensagem exibida ao usuário
	TsUnixMs int64  `json:"ts_unix_ms"`
}
