package usecase

import (
	"context"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
)

// NotificationSink is told about publications. Implementations must not block.
type NotificationSink interface {
	OnTeamsPublished(ctx context.Context, date matchday.Date) error
}

// AuditSink records administrative actions on a best effort basis.
type AuditSink interface {
	Record(ctx context.Context, action, target string, detail map[string]any)
}

type noopNotificationSink struct{}

func (noopNotificationSink) OnTeamsPublished(context.Context, matchday.Date) error {
	return nil
}

func NewNoopNotificationSink() NotificationSink {
	return noopNotificationSink{}
}

type noopAuditSink struct{}

func (noopAuditSink) Record(context.Context, string, string, map[string]any) {}

func NewNoopAuditSink() AuditSink {
	return noopAuditSink{}
}

const (
	AuditActionGenerate = "teams.generate"
	AuditActionPublish  = "teams.publish"
	AuditActionTrigger  = "teams.trigger"
)
