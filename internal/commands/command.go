// Package commands provides the action interface and implementations.
package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"notionhabit/internal/config"
	"notionhabit/internal/habit"
)

// Env carries the collaborators an action runs against.
type Env struct {
	Config   *config.Config
	Logger   *zap.Logger
	Tracker  *habit.Tracker
	Analyzer *habit.Analyzer
}

// Command defines the interface for CLI actions.
// Actions are selected by flags and may be combined; enabled actions run in
// Order, lowest first.
type Command interface {
	// Name returns the action name (also its long flag).
	Name() string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Order returns the position of the action in a run.
	Order() int

	// RegisterFlags registers the action's flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Enabled reports whether the parsed flags selected this action.
	Enabled() bool

	// Run executes the action, writing results to out.
	Run(ctx context.Context, env *Env, out io.Writer) error
}
