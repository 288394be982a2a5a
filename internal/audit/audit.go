// Package audit writes structured audit events for security-relevant
// actions (logins, refreshes, admin user mutations). Events go through the
// application logger; wiring them to an external sink stays a drop-in
// change here.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
)

// Log writes a structured audit event.
func Log(ctx context.Context, event string, fields map[string]any) {
	zf := make([]zap.Field, 0, len(fields)+1)
	zf = append(zf, zap.String("audit_event", event))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	logger.From(ctx).Info("audit", zf...)
}
