package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/logger"
)

// maxPooledBuffer keeps one oversized settlement listing from pinning memory in the pool
const maxPooledBuffer = 64 << 10

var encodeBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 512)) },
}

func releaseBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	encodeBuffers.Put(buf)
}

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer releaseBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// headers are already sent
		slog.Error(LogMsgEncodeResponseFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteResponseFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with its mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgRequestFailed, "op", op, "error", err)
	} else {
		log.Warn(LogMsgRequestFailed, "op", op, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on. Specific causes are checked before the generic
// transfer failure that may wrap them.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrAlreadySettled):
		return http.StatusConflict, ErrMsgAlreadySettledError
	case errors.Is(err, domain.ErrNoEligiblePlayers):
		return http.StatusConflict, ErrMsgNoEligiblePlayersError
	case errors.Is(err, domain.ErrFuturePeriodSettlement):
		return http.StatusBadRequest, ErrMsgFuturePeriodError
	case errors.Is(err, domain.ErrSettlementNotFound):
		return http.StatusNotFound, ErrMsgSettlementNotFoundErr
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgInsufficientFundsError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict, ErrMsgPoolTooSmallError
	case errors.Is(err, domain.ErrPercentageTooHigh):
		return http.StatusBadRequest, ErrMsgPercentageTooHighError
	case errors.Is(err, domain.ErrBonusOutOfRange):
		return http.StatusBadRequest, ErrMsgBonusOutOfRangeError
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrLevelTooLow):
		return http.StatusForbidden, ErrMsgLevelTooLowError
	case errors.Is(err, domain.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity, ErrMsgOverflowError
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusBadGateway, ErrMsgTransferFailedError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
