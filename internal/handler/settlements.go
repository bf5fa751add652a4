package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/history"
)

// HandleListSettlements returns recent settlements, newest first
// @Summary Settlement history
// @Tags settlements
// @Produce json
// @Param limit query int false "Maximum number of settlements (default 20, max 100)"
// @Success 200 {array} domain.Distribution
// @Failure 400 {object} ErrorResponse
// @Router /settlements [get]
func HandleListSettlements(svc history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(GetOptionalQueryParam(r, ParamLimit, "0"))
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}

		dists, err := svc.ListSettlements(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "list_settlements", err)
			return
		}
		if dists == nil {
			dists = []domain.Distribution{}
		}
		respondJSON(w, http.StatusOK, dists)
	}
}

// HandleGetSettlement returns the settlement of one period
// @Summary Period settlement
// @Tags settlements
// @Produce json
// @Param period path int true "Period index"
// @Success 200 {object} domain.Distribution
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /settlements/{period} [get]
func HandleGetSettlement(svc history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := periodParam(w, r)
		if !ok {
			return
		}

		dist, err := svc.GetSettlement(r.Context(), period)
		if err != nil {
			respondServiceError(w, r, "get_settlement", err)
			return
		}
		respondJSON(w, http.StatusOK, dist)
	}
}
