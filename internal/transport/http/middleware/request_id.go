package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/avercheq/taskhive/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID propagates an inbound X-Request-Id or mints one, echoes it on the
// response and stores it in context for error payloads and logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)

		ctx := appctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
