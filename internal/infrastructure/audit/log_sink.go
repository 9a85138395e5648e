package audit

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
)

// LogSink writes one structured line per administrative action.
type LogSink struct {
	logger *logging.Logger
	now    func() time.Time
}

func NewLogSink(logger *logging.Logger) *LogSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSink{
		logger: logger.Named("audit"),
		now:    time.Now,
	}
}

func (s *LogSink) Record(ctx context.Context, action, target string, detail map[string]any) {
	args := make([]any, 0, 6+len(detail)*2)
	args = append(args,
		"action", action,
		"target", target,
		"at", s.now().UTC().Format(time.RFC3339),
	)
	for _, key := range slices.Sorted(maps.Keys(detail)) {
		args = append(args, "detail."+key, detail[key])
	}
	s.logger.InfoContext(ctx, "audit", args...)
}
