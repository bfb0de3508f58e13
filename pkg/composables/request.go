package composables

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/meterdesk/meterdesk/pkg/constants"
)

// Params carries per-request metadata resolved by middleware. UserID comes
// from the trusted gateway header; 0 means anonymous.
type Params struct {
	IP        string
	UserAgent string
	UserID    int
	Request   *http.Request
	Writer    http.ResponseWriter
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the logger from the context.
// Panics when no logging middleware is installed.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic("logger not found")
	}
	return logger.(*logrus.Entry)
}

// UseUserID returns the acting user id from the context.
// If no user was resolved, the second return value will be false.
func UseUserID(ctx context.Context) (int, bool) {
	params, ok := UseParams(ctx)
	if !ok || params.UserID == 0 {
		return 0, false
	}
	return params.UserID, true
}

// UseIP returns the IP address from the context.
// If the IP address is not found, the second return value will be false.
func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}

// UseUserAgent returns the user agent from the context.
// If the user agent is not found, the second return value will be false.
func UseUserAgent(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.UserAgent, true
}

// GetLastQueryParam returns the last occurrence of a query parameter. List
// screens append form values to the URL on partial reloads, so duplicates
// appear and the last occurrence is the current form state.
func GetLastQueryParam(r *http.Request, key string) string {
	values := r.URL.Query()[key]
	if len(values) > 0 {
		return values[len(values)-1]
	}
	return ""
}

// GetLastQueryParams returns the last occurrence of multiple query parameters.
func GetLastQueryParams(r *http.Request, keys ...string) map[string]string {
	result := make(map[string]string, len(keys))
	query := r.URL.Query()
	for _, key := range keys {
		if values := query[key]; len(values) > 0 {
			result[key] = values[len(values)-1]
		}
	}
	return result
}
