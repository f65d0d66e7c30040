// Package habit reconciles habit record status and computes per-habit statistics.
package habit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notionhabit/internal/service"
)

// Tracker queries habit records and closes overdue ones.
type Tracker struct {
	store  service.Store
	logger *zap.Logger
	now    func() time.Time
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock overrides the clock used to decide what "today" is.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a Tracker backed by store.
func NewTracker(store service.Store, logger *zap.Logger, opts ...TrackerOption) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// QueryRecords returns habit records matching the base tag clause and extra.
// Store errors are returned unchanged; there is no retry.
func (t *Tracker) QueryRecords(ctx context.Context, extra ...service.Clause) ([]service.Record, error) {
	clauses := make([]service.Clause, 0, len(extra)+1)
	clauses = append(clauses, service.TagContains(service.BaseTag))
	clauses = append(clauses, extra...)

	records, err := t.store.Query(ctx, clauses)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("query ok", zap.Int("records", len(records)))
	return records, nil
}

// ListUniqueHabitNames returns each habit name once, in first-seen order.
func (t *Tracker) ListUniqueHabitNames(ctx context.Context) ([]string, error) {
	records, err := t.QueryRecords(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	var names []string
	for _, r := range records {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		names = append(names, r.Name)
	}
	return names, nil
}

// CloseOverdueToDos marks every To-Do record not dated today as Failed.
// Records are assumed to be created on the day they represent, so any other
// date means overdue. The first failed write aborts the batch; the number of
// records already transitioned is returned alongside the error.
func (t *Tracker) CloseOverdueToDos(ctx context.Context) (int, error) {
	today := t.now().Format(time.DateOnly)

	records, err := t.QueryRecords(ctx, service.StatusEquals(service.StatusToDo))
	if err != nil {
		return 0, err
	}
	t.logger.Info("today's date", zap.String("date", today))
	t.logger.Info("habits filtered with To-Do status", zap.Int("count", len(records)))

	updated := 0
	for _, r := range records {
		t.logger.Info("habit", zap.String("name", r.Name), zap.String("date", r.Date))
		if r.Date == today {
			continue
		}

		t.logger.Info("updating", zap.String("id", r.ID), zap.String("status", string(service.StatusFailed)))
		if err := r.SetStatus(ctx, t.store, service.StatusFailed); err != nil {
			return updated, err
		}
		updated++
	}

	t.logger.Info("habits updated", zap.Int("count", updated))
	return updated, nil
}
