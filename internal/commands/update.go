package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"notionhabit/internal/output"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd marks overdue To-Do habits as Failed.
type UpdateCmd struct {
	enabled bool
}

// SetEnabled selects the action (for testing).
func (c *UpdateCmd) SetEnabled(v bool) { c.enabled = v }

func (c *UpdateCmd) Name() string     { return "update" }
func (c *UpdateCmd) Synopsis() string { return "mark overdue To-Do habits as Failed" }
func (c *UpdateCmd) Order() int       { return 20 }
func (c *UpdateCmd) Enabled() bool    { return c.enabled }

func (c *UpdateCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.enabled, "update", "u", false, c.Synopsis())
}

func (c *UpdateCmd) Run(ctx context.Context, env *Env, out io.Writer) error {
	count, err := env.Tracker.CloseOverdueToDos(ctx)
	if err != nil {
		return fmt.Errorf("update aborted after %d habits: %w", count, err)
	}
	env.Logger.Info("habits updated", zap.Int("count", count))

	output.FormatUpdated(out, count)
	return nil
}
