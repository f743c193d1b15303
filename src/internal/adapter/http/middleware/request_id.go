package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/api-sage/wallet-ledger-service/src/internal/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an identifier so log lines across the
// controller and repository layers can be correlated. An incoming header is
// honored, otherwise a fresh one is minted.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, requestID)
			r.Header.Set(requestIDHeader, requestID)

			logger.Info("request id assigned", logger.Fields{
				"requestId": requestID,
				"method":    r.Method,
				"path":      r.URL.Path,
			})

			next.ServeHTTP(w, r)
		})
	}
}
