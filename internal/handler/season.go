package handler

import (
	"net/http"
	"time"

	"github.com/osse101/questledger/internal/domain"
)

// ApplyPointsRequest adds points to a player's score for the current period
type ApplyPointsRequest struct {
	Player string `json:"player" validate:"required,player"`
	Points uint64 `json:"points"`
}

// DepositRequest moves value from an account into the reward pool
type DepositRequest struct {
	From   string `json:"from" validate:"required,player"`
	Amount uint64 `json:"amount" validate:"gt=0"`
}

// LeaderboardResponse is a period leaderboard with its time window
type LeaderboardResponse struct {
	domain.LeaderboardSnapshot
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// PlayerResponse summarises a player's standing in the current period
type PlayerResponse struct {
	Player           string                  `json:"player"`
	Period           uint64                  `json:"period"`
	Score            uint64                  `json:"score"`
	Rank             int                     `json:"rank"`
	LastScoredPeriod *uint64                 `json:"last_scored_period,omitempty"`
	Multiplier       domain.RewardMultiplier `json:"multiplier"`
}

// WeightResponse is a player's reward weight for the current period
type WeightResponse struct {
	Player     string                  `json:"player"`
	Period     uint64                  `json:"period"`
	Weight     uint64                  `json:"weight"`
	Multiplier domain.RewardMultiplier `json:"multiplier"`
}

// PoolResponse describes the reward pool and the settlement parameters
type PoolResponse struct {
	Balance         uint64              `json:"balance"`
	CurrentPeriod   uint64              `json:"current_period"`
	LastKnownPeriod uint64              `json:"last_known_period"`
	RewardConfig    domain.RewardConfig `json:"reward_config"`
}

// DepositResponse carries the pool balance after a deposit
type DepositResponse struct {
	Balance uint64 `json:"balance"`
}

// NotRanked is the rank reported for a player without a leaderboard slot
const NotRanked = -1

// HandleApplyPoints scores points for a player
// @Summary Apply points
// @Description Adds points to the player's score for the current period. The first call of a new period settles the previous one.
// @Tags season
// @Accept json
// @Produce json
// @Param request body ApplyPointsRequest true "Points to apply"
// @Success 200 {object} domain.ScoreResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /points [post]
func HandleApplyPoints(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ApplyPointsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Apply points"); err != nil {
			return
		}

		result, err := season.ApplyPoints(r.Context(), req.Player, req.Points)
		if err != nil {
			respondServiceError(w, r, "apply_points", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetCurrentLeaderboard returns the leaderboard of the clock's period
// @Summary Current leaderboard
// @Tags season
// @Produce json
// @Success 200 {object} LeaderboardResponse
// @Router /leaderboard [get]
func HandleGetCurrentLeaderboard(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, leaderboardResponse(season, season.CurrentPeriod()))
	}
}

// HandleGetLeaderboard returns the leaderboard of any period
// @Summary Period leaderboard
// @Tags season
// @Produce json
// @Param period path int true "Period index"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Router /leaderboard/{period} [get]
func HandleGetLeaderboard(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := periodParam(w, r)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, leaderboardResponse(season, period))
	}
}

func leaderboardResponse(season Season, period uint64) LeaderboardResponse {
	start, end := season.PeriodBounds(period)
	return LeaderboardResponse{
		LeaderboardSnapshot: season.Leaderboard(period),
		StartsAt:            start,
		EndsAt:              end,
	}
}

// HandleGetPlayer returns a player's score and rank in the current period
// @Summary Player standing
// @Tags season
// @Produce json
// @Param player path string true "Player ID"
// @Success 200 {object} PlayerResponse
// @Failure 400 {object} ErrorResponse
// @Router /players/{player} [get]
func HandleGetPlayer(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, ok := playerParam(w, r)
		if !ok {
			return
		}

		period := season.CurrentPeriod()
		resp := PlayerResponse{
			Player:     player,
			Period:     period,
			Rank:       NotRanked,
			Multiplier: season.Multiplier(player),
		}

		if state, ok := season.PlayerState(player); ok {
			last := state.Period
			resp.LastScoredPeriod = &last
			if state.Period == period {
				resp.Score = state.Score
			}
		}

		for _, e := range season.Leaderboard(period).Entries {
			if e.Player == player {
				resp.Rank = e.Position
				break
			}
		}

		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleGetPlayerWeight returns the player's effective reward weight
// @Summary Player reward weight
// @Description Base weight 10000 plus the NFT and activity bonuses the player currently qualifies for
// @Tags season
// @Produce json
// @Param player path string true "Player ID"
// @Success 200 {object} WeightResponse
// @Failure 400 {object} ErrorResponse
// @Router /players/{player}/weight [get]
func HandleGetPlayerWeight(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, ok := playerParam(w, r)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, WeightResponse{
			Player:     player,
			Period:     season.CurrentPeriod(),
			Weight:     season.EffectiveWeight(r.Context(), player),
			Multiplier: season.Multiplier(player),
		})
	}
}

// HandleGetPool returns the reward pool balance and settlement parameters
// @Summary Reward pool
// @Tags pool
// @Produce json
// @Success 200 {object} PoolResponse
// @Router /pool [get]
func HandleGetPool(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, PoolResponse{
			Balance:         season.PoolBalance(),
			CurrentPeriod:   season.CurrentPeriod(),
			LastKnownPeriod: season.LastKnownPeriod(),
			RewardConfig:    season.RewardConfig(),
		})
	}
}

// HandleDeposit moves value from an account into the reward pool
// @Summary Deposit into the reward pool
// @Tags pool
// @Accept json
// @Produce json
// @Param request body DepositRequest true "Deposit"
// @Success 200 {object} DepositResponse
// @Failure 400 {object} ErrorResponse
// @Router /pool/deposit [post]
func HandleDeposit(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DepositRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Pool deposit"); err != nil {
			return
		}

		balance, err := season.Deposit(r.Context(), req.From, req.Amount)
		if err != nil {
			respondServiceError(w, r, "pool_deposit", err)
			return
		}
		respondJSON(w, http.StatusOK, DepositResponse{Balance: balance})
	}
}
