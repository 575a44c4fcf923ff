package models

// Envelope is the body of every analytics response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Insight string      `json:"insight,omitempty"`
	Metric  string      `json:"metric,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type TopTeamsRequest struct {
	Metric string `json:"metric" validate:"required,oneof=wins goals titles"`
	Limit  int    `json:"limit" validate:"gt=0"`
}

type ContinentRequest struct {
	Basis string `json:"basis" validate:"required,oneof=host team"`
}

type TeamComparisonRequest struct {
	Team1 string `json:"team1" validate:"required"`
	Team2 string `json:"team2" validate:"required"`
}
