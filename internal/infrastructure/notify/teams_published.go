package notify

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday-teams/internal/domain/jobscheduler"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
)

const EventTeamsPublished = "teams.published"

// Publisher delivers one webhook payload.
type Publisher interface {
	Publish(ctx context.Context, payload any, deduplicationID string) error
}

type TeamsPublishedConfig struct {
	Workers int
	Timeout time.Duration
}

// TeamsPublishedNotifier sends the publication webhook from a bounded worker
// pool so the generation pipeline never waits on delivery.
type TeamsPublishedNotifier struct {
	publisher    Publisher
	pool         *ants.Pool
	dispatchRepo jobscheduler.Repository
	timeout      time.Duration
	logger       *logging.Logger
	now          func() time.Time
	inflight     sync.WaitGroup
}

func NewTeamsPublishedNotifier(publisher Publisher, dispatchRepo jobscheduler.Repository, cfg TeamsPublishedConfig, logger *logging.Logger) (*TeamsPublishedNotifier, error) {
	if publisher == nil {
		return nil, crerr.New("notification publisher is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(cfg.Workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, crerr.Wrap(err, "create notification worker pool")
	}

	return &TeamsPublishedNotifier{
		publisher:    publisher,
		pool:         pool,
		dispatchRepo: dispatchRepo,
		timeout:      cfg.Timeout,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// OnTeamsPublished queues the webhook and returns immediately. An error means
// the job could not be queued; delivery failures are only logged.
func (n *TeamsPublishedNotifier) OnTeamsPublished(ctx context.Context, date matchday.Date) error {
	publishedAt := n.now().UTC()
	dedupID := "teams-published-" + date.String()
	dispatchID := dedupID + "-" + publishedAt.Format("20060102T150405Z")
	payload := map[string]any{
		"event":        EventTeamsPublished,
		"match_date":   date.String(),
		"published_at": publishedAt.Format(time.RFC3339),
		"dispatch_id":  dispatchID,
	}

	n.record(ctx, jobscheduler.DispatchEvent{
		DispatchID: dispatchID,
		MatchDate:  date.String(),
		Status:     jobscheduler.StatusSent,
		Payload:    payload,
	})

	n.inflight.Add(1)
	err := n.pool.Submit(func() {
		defer n.inflight.Done()
		n.deliver(ctx, date, dispatchID, dedupID, payload)
	})
	if err != nil {
		n.inflight.Done()
		n.record(ctx, jobscheduler.DispatchEvent{
			DispatchID:   dispatchID,
			MatchDate:    date.String(),
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
		})
		return crerr.Wrapf(err, "queue teams published notification date=%s", date)
	}
	return nil
}

func (n *TeamsPublishedNotifier) deliver(ctx context.Context, date matchday.Date, dispatchID, dedupID string, payload map[string]any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	event := jobscheduler.DispatchEvent{
		DispatchID: dispatchID,
		MatchDate:  date.String(),
		Status:     jobscheduler.StatusCompleted,
		Payload:    payload,
	}
	if err := n.publisher.Publish(ctx, payload, dedupID); err != nil {
		n.logger.WarnContext(ctx, "teams published notification failed",
			"match_date", date.String(),
			"dispatch_id", dispatchID,
			"error", err,
		)
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = err.Error()
	}
	n.record(ctx, event)
}

func (n *TeamsPublishedNotifier) record(ctx context.Context, event jobscheduler.DispatchEvent) {
	if n.dispatchRepo == nil {
		return
	}
	event.JobName = jobscheduler.JobTeamsPublished
	event.OccurredAt = n.now().UTC()
	event.TraceID, event.SpanID = logging.TraceIDs(ctx)
	if err := n.dispatchRepo.UpsertEvent(context.WithoutCancel(ctx), event); err != nil {
		n.logger.WarnContext(ctx, "record notification dispatch failed",
			"dispatch_id", event.DispatchID,
			"error", err,
		)
	}
}

// Close waits for queued deliveries up to timeout and releases the workers.
func (n *TeamsPublishedNotifier) Close(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-time.After(timeout):
		err = crerr.Newf("notification workers still busy after %s", timeout)
	}
	n.pool.Release()
	return err
}
