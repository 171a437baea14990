package api

import (
	"context"
	"time"
)

// QueryTimeout bounds every trip to the report, user and admin collections
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives a context for a single store read or write. The
// cancel func must always be deferred by the caller.
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
