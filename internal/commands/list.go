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
	Register(&ListCmd{})
}

// ListCmd prints the distinct habit names.
type ListCmd struct {
	enabled bool
}

// SetEnabled selects the action (for testing).
func (c *ListCmd) SetEnabled(v bool) { c.enabled = v }

func (c *ListCmd) Name() string     { return "list" }
func (c *ListCmd) Synopsis() string { return "list habit names" }
func (c *ListCmd) Order() int       { return 10 }
func (c *ListCmd) Enabled() bool    { return c.enabled }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.enabled, "list", "l", false, c.Synopsis())
}

func (c *ListCmd) Run(ctx context.Context, env *Env, out io.Writer) error {
	names, err := env.Tracker.ListUniqueHabitNames(ctx)
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}
	env.Logger.Info("habits", zap.Strings("names", names))

	if len(names) == 0 {
		fmt.Fprintln(out, "no habits found")
		return nil
	}
	for _, name := range names {
		output.FormatHabitName(out, name)
	}
	return nil
}
