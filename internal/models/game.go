package models

const (
	MinNumber = 1
	MaxNumber = 100
	MinBet    = 1
)

// Round is one game attempt as submitted by the player.
type Round struct {
	SelectedNumber int     `json:"selectedNumber"`
	PlacedBet      float64 `json:"placedBet"`
}

// Result is the outcome of a played round.
type Result struct {
	GeneratedNumber int     `json:"generatedNumber"`
	IsWin           bool    `json:"isWin"`
	WonAmount       float64 `json:"wonAmount"`
}
