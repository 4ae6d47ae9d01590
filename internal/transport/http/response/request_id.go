package response

import (
	"net/http"

	appctx "github.com/avercheq/taskhive/internal/pkg/context"
)

// RequestIDFromContext extracts the request id placed by the request-id
// middleware, "" when the middleware is not installed.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
