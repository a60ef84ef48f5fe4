package dto

// EventCreateRequest é o payload de POST /Events/create; todos os campos sempre presentes
type EventCreateRequest struct {
	EventName      string `json:"eventName"`
	Type           int    `json:"type"` // enum numérico do upstream, 0 = padrão
	HomeTeam       string `json:"homeTeam"`
	AwayTeam       string `json:"awayTeam"`
	EventStartDate string `json:"eventStartDate"` // ISO-8601
	EventEndDate   string `json:"eventEndDate"`
}

// EventDetailCreateRequest é o payload de POST /Events/{id}/details/create
type EventDetailCreateRequest struct {
	RoundNumber   int `json:"roundNumber"`
	HomeTeamScore int `json:"homeTeamScore"`
	AwayTeamScore int `json:"awayTeamScore"`
}

// EventDetailPatchRequest é o PATCH parcial; placares ausentes não vão no JSON (nem como null)
type EventDetailPatchRequest struct {
	RoundNumber   int  `json:"roundNumber"`
	HomeTeamScore *int `json:"homeTeamScore,omitempty"`
	AwayTeamScore *int `json:"awayTeamScore,omitempty"`
}

type SubscribeRequest struct {
	CallbackURL string `json:"callbackUrl"`
}

// DeleteAck é sintetizado localmente, o DELETE do upstream não tem corpo
type DeleteAck struct {
	Message string `json:"message"`
}
