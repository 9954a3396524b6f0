package context

import (
	"context"

	"github.com/farhanmaulana/clinic-orders/constant"
)

// WithUserID stamps the authenticated representative id onto the context.
func WithUserID(ctx context.Context, userID uint64) context.Context {
	return context.WithValue(ctx, constant.UserIDKey, userID)
}

// GetUserID extracts the representative id set by the auth middleware.
func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
