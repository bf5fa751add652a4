package handler

import (
	"net/http"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/logger"
)

// ForceSettleRequest settles a finished period on demand
type ForceSettleRequest struct {
	Period *uint64 `json:"period" validate:"required"`
}

// RewardConfigRequest changes settlement parameters. Omitted fields keep their value.
type RewardConfigRequest struct {
	RewardPercentage       *uint64 `json:"reward_percentage" validate:"omitempty,lte=3000"`
	MinimumScore           *uint64 `json:"minimum_score"`
	ParticipationThreshold *uint64 `json:"participation_threshold"`
}

// MultiplierRequest sets a player's bonuses in basis points
type MultiplierRequest struct {
	NFT      uint64 `json:"nft" validate:"lte=3000"`
	Activity uint64 `json:"activity" validate:"lte=2000"`
}

// RolloverResponse reports the outcome of a manual rollover
type RolloverResponse struct {
	Message  string `json:"message"`
	Advanced bool   `json:"advanced"`
	Period   uint64 `json:"period"`
}

// HandleForceSettle settles a past period immediately
// @Summary Force settle a period
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ForceSettleRequest true "Period to settle"
// @Success 200 {object} domain.Distribution
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/settle [post]
func HandleForceSettle(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForceSettleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Force settle"); err != nil {
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgForceSettle, "period", *req.Period)

		dist, err := season.ForceSettle(r.Context(), *req.Period)
		if err != nil {
			respondServiceError(w, r, "force_settle", err)
			return
		}
		respondJSON(w, http.StatusOK, dist)
	}
}

// HandleUpdateRewardConfig updates the settlement parameters
// @Summary Update reward config
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RewardConfigRequest true "Fields to change"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/reward-config [put]
func HandleUpdateRewardConfig(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RewardConfigRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update reward config"); err != nil {
			return
		}

		cfg := season.RewardConfig()
		if req.RewardPercentage != nil {
			cfg.RewardPercentage = *req.RewardPercentage
		}
		if req.MinimumScore != nil {
			cfg.MinimumScore = *req.MinimumScore
		}
		if req.ParticipationThreshold != nil {
			cfg.ParticipationThreshold = *req.ParticipationThreshold
		}

		if err := season.UpdateRewardConfig(r.Context(), cfg); err != nil {
			respondServiceError(w, r, "update_reward_config", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgRewardConfigUpdated, Data: cfg})
	}
}

// HandleSetMultiplier sets a player's NFT and activity bonuses
// @Summary Set player multiplier
// @Tags admin
// @Accept json
// @Produce json
// @Param player path string true "Player ID"
// @Param request body MultiplierRequest true "Bonuses in basis points"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/multipliers/{player} [put]
func HandleSetMultiplier(season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, ok := playerParam(w, r)
		if !ok {
			return
		}

		var req MultiplierRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set multiplier"); err != nil {
			return
		}

		m := domain.RewardMultiplier{NFT: req.NFT, Activity: req.Activity}
		if err := season.SetMultiplier(r.Context(), player, m); err != nil {
			respondServiceError(w, r, "set_multiplier", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgMultiplierUpdated, Data: m})
	}
}

// HandleRollover advances the season to the clock's period now
// @Summary Trigger a rollover
// @Tags admin
// @Produce json
// @Success 200 {object} RolloverResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/rollover [post]
func HandleRollover(roller Roller, season Season) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		advanced, err := roller.RunOnce(r.Context())
		if err != nil {
			respondServiceError(w, r, "rollover", err)
			return
		}

		msg := MsgRolloverUnchanged
		if advanced {
			msg = MsgRolloverAdvanced
		}
		respondJSON(w, http.StatusOK, RolloverResponse{
			Message:  msg,
			Advanced: advanced,
			Period:   season.LastKnownPeriod(),
		})
	}
}

// HandleListAccounts returns every ledger account with its balance
// @Summary Ledger accounts
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Account
// @Router /admin/accounts [get]
func HandleListAccounts(accounts AccountLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := accounts.Accounts(r.Context())
		if err != nil {
			respondServiceError(w, r, "list_accounts", err)
			return
		}
		if list == nil {
			list = []domain.Account{}
		}
		respondJSON(w, http.StatusOK, list)
	}
}
