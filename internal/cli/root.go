package cli

import (
	"github.com/spf13/cobra"

	"github.com/nekodev/skillring/internal/config"
)

// preRun loads configuration and attaches the logger to the command context.
//
// Log level precedence, highest first:
//   - --verbose (-v): debug
//   - log_level from the config file or SKILLRING_LOG_LEVEL
//   - info
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.Level()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("configuration loaded", "path", c.configPath, "log_level", level)
	return nil
}
