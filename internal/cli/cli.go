package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/layoutkit/rect2lef/pkg/buildinfo"
	"github.com/layoutkit/rect2lef/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "rect2lef"

	// outputPerm is the mode of written output files.
	outputPerm = 0o644
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself performs the conversion.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.convertCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(flagError)
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs root with args after rewriting legacy option spellings.
func Execute(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(NormalizeArgs(args))
	return root.ExecuteContext(ctx)
}

// flagError reports unknown or malformed options together with usage.
func flagError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(cmd.UsageString())
	return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid arguments")
}
