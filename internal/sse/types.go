package sse

// RankChangedPayload is streamed when a player's leaderboard position changes
type RankChangedPayload struct {
	Player   string `json:"player"`
	Period   uint64 `json:"period"`
	Position int    `json:"position"`
	Score    uint64 `json:"score"`
}

// PeriodSettledPayload summarises a settlement for live clients
type PeriodSettledPayload struct {
	Period  uint64       `json:"period"`
	Forced  bool         `json:"forced"`
	Total   uint64       `json:"total"`
	Dust    uint64       `json:"dust"`
	Winners []WinnerInfo `json:"winners"`
}

// WinnerInfo is one paid position of a settled period
type WinnerInfo struct {
	Position int    `json:"position"`
	Player   string `json:"player"`
	Amount   uint64 `json:"amount"`
}
