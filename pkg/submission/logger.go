package submission

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/goliatone/go-jobform/pkg/application"
)

// Logger accepts every application and records it in the log. Resume content
// is never logged, only its name and size.
type Logger struct {
	log   *slog.Logger
	clock clockwork.Clock
}

var _ application.Submitter = (*Logger)(nil)

// NewLogger returns a Logger writing to log, or slog.Default when nil.
func NewLogger(log *slog.Logger, clock clockwork.Clock) *Logger {
	if log == nil {
		log = slog.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Logger{log: log, clock: clock}
}

// Submit logs the application and returns a fresh receipt.
func (l *Logger) Submit(ctx context.Context, submission application.Submission) (application.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return application.Receipt{}, err
	}

	receipt := application.Receipt{
		ID:          uuid.NewString(),
		SubmittedAt: l.clock.Now().UTC(),
	}

	attrs := []any{"receipt", receipt.ID}
	values := submission.State.Values()
	for _, name := range application.TextFields() {
		attrs = append(attrs, name, values[name])
	}
	if resume := submission.State.Resume; resume != nil {
		attrs = append(attrs, slog.Group("resume",
			"name", resume.Name,
			"size", resume.Size,
		))
	}
	l.log.InfoContext(ctx, "application submitted", attrs...)
	return receipt, nil
}
