package habit

import (
	"context"
	"strconv"

	"github.com/gosuri/uitable"
	"go.uber.org/zap"

	"notionhabit/internal/service"
)

// Result holds per-bucket counts for one habit over one window.
type Result struct {
	Done   int
	Failed int
	ToDo   int
	Total  int
}

// Rate returns n as an integer percentage of Total. A zero Total is treated
// as 1, so every rate is 0; this is a display convention, not a "no data" flag.
func (r Result) Rate(n int) int {
	total := r.Total
	if total < 1 {
		total = 1
	}
	return n * 100 / total
}

// Analyzer computes status statistics for habits.
type Analyzer struct {
	tracker *Tracker
	logger  *zap.Logger
}

// NewAnalyzer creates an Analyzer reading through tracker.
func NewAnalyzer(tracker *Tracker, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{tracker: tracker, logger: logger}
}

// Analyze counts the records of habitName within w by status bucket.
// Records with an unrecognised status count toward Total only.
func (a *Analyzer) Analyze(ctx context.Context, habitName string, w service.Window) (Result, error) {
	if !w.Valid() {
		err := &service.InvalidWindowError{Window: w}
		a.logger.Error("analysis skipped", zap.String("habit", habitName), zap.Error(err))
		return Result{}, err
	}

	records, err := a.tracker.QueryRecords(ctx,
		service.NameContains(habitName),
		service.DateWithin(w),
	)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, r := range records {
		res.Total++
		switch r.Status {
		case service.StatusDone:
			res.Done++
		case service.StatusFailed:
			res.Failed++
		case service.StatusToDo:
			res.ToDo++
		default:
			a.logger.Warn("unrecognised habit status",
				zap.String("id", r.ID),
				zap.String("habit", r.Name),
				zap.String("status", string(r.Status)),
			)
		}
	}

	a.logger.Debug("habit analysed",
		zap.String("habit", habitName),
		zap.Stringer("window", w),
		zap.Int("done", res.Done),
		zap.Int("failed", res.Failed),
		zap.Int("todo", res.ToDo),
		zap.Int("total", res.Total),
	)
	return res, nil
}

// RenderTable formats r as a fixed-width table of counts and rates.
func RenderTable(r Result) string {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", "Done", "Failed", "To-Do")
	tbl.AddRow("count", r.Done, r.Failed, r.ToDo)
	tbl.AddRow("rate(%)",
		strconv.Itoa(r.Rate(r.Done)),
		strconv.Itoa(r.Rate(r.Failed)),
		strconv.Itoa(r.Rate(r.ToDo)),
	)
	return tbl.String()
}
