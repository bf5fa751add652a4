package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/questledger/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written and the handler should return.
//
// Example usage:
//
//	var req ApplyPointsRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Apply points"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam retrieves an optional query parameter from the request
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// periodParam parses the {period} path parameter.
// If ok is false the response has already been written.
func periodParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	period, err := strconv.ParseUint(chi.URLParam(r, ParamPeriod), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPeriod)
		return 0, false
	}
	return period, true
}

// playerParam reads and checks the {player} path parameter.
// If ok is false the response has already been written.
func playerParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	player := chi.URLParam(r, ParamPlayer)
	if err := GetValidator().ValidateVar(player, "required,player"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPlayer)
		return "", false
	}
	return player, true
}
