package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"notionhabit/internal/habit"
	"notionhabit/internal/output"
	"notionhabit/internal/service"
)

func init() {
	Register(&AnalyzeCmd{})
}

// AnalyzeCmd prints a status table for every habit over a window.
type AnalyzeCmd struct {
	enabled  bool
	duration int
}

// SetEnabled selects the action (for testing).
func (c *AnalyzeCmd) SetEnabled(v bool) { c.enabled = v }

// SetDuration sets the window selector (for testing).
func (c *AnalyzeCmd) SetDuration(d int) { c.duration = d }

func (c *AnalyzeCmd) Name() string     { return "analyze" }
func (c *AnalyzeCmd) Synopsis() string { return "statistics of habits over --duration" }
func (c *AnalyzeCmd) Order() int       { return 30 }
func (c *AnalyzeCmd) Enabled() bool    { return c.enabled }

func (c *AnalyzeCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.enabled, "analyze", "a", false, c.Synopsis())
	fs.IntVarP(&c.duration, "duration", "d", int(service.ThisWeek),
		"window for --analyze: 0 - this week, 1 - past week, 2 - past month, 3 - past year")
}

// Run analyzes each habit in turn. An invalid window skips that habit and is
// reported after all habits were visited; any other error stops the run.
func (c *AnalyzeCmd) Run(ctx context.Context, env *Env, out io.Writer) error {
	window := service.Window(c.duration)

	names, err := env.Tracker.ListUniqueHabitNames(ctx)
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if env.Config != nil && env.Config.Pace > 0 {
		limiter = rate.NewLimiter(rate.Every(env.Config.Pace), 1)
	}

	var skipped error
	for _, name := range names {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		res, err := env.Analyzer.Analyze(ctx, name, window)
		if err != nil {
			var windowErr *service.InvalidWindowError
			if errors.As(err, &windowErr) {
				skipped = err
				continue
			}
			return fmt.Errorf("analyze %q: %w", name, err)
		}

		table := habit.RenderTable(res)
		env.Logger.Info("habit analysis",
			zap.String("habit", name),
			zap.Stringer("window", window),
			zap.String("table", table),
		)
		output.FormatAnalysisHeader(out, name, window)
		output.FormatTable(out, table)
	}

	return skipped
}
