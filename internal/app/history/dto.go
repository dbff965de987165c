package history

import "wildbound/internal/app/ports"

type Request struct {
	Slot  string
	Limit int
	// EndedFrom and EndedTo are unix seconds; zero leaves that side open.
	EndedFrom int64
	EndedTo   int64
}

type Summary struct {
	Won      int `json:"won"`
	Lost     int `json:"lost"`
	Ran      int `json:"ran"`
	Captured int `json:"captured"`
	Bosses   int `json:"bosses"`
}

type Response struct {
	Slot    string               `json:"slot"`
	Records []ports.BattleRecord `json:"records"`
	Summary Summary              `json:"summary"`
}
