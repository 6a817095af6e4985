// Package httperr maps the domain error taxonomy to HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/GlebRadaev/movebroker/internal/domain"
	"github.com/GlebRadaev/movebroker/pkg/utils"
	"go.uber.org/zap"
)

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOwnershipMismatch), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotFoundOrForbidden):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error. Client errors expose their message;
// upstream and internal errors are logged and replaced with a safe message.
func Respond(w http.ResponseWriter, err error) {
	code := Status(err)
	switch code {
	case http.StatusBadGateway:
		zap.L().Error("upstream failure", zap.Error(err))
		utils.RespondWithError(w, code, "Payment system error, please contact support")
	case http.StatusInternalServerError:
		zap.L().Error("internal error", zap.Error(err))
		utils.RespondWithError(w, code, "Internal server error")
	case http.StatusPaymentRequired:
		zap.L().Info("payment declined", zap.Error(err))
		utils.RespondWithError(w, code, "Card declined, please retry with another card")
	case http.StatusNotFound:
		utils.RespondWithError(w, code, "Not found")
	default:
		zap.L().Info("request rejected", zap.Int("status", code), zap.Error(err))
		utils.RespondWithError(w, code, err.Error())
	}
}
