package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nekodev/skillring/pkg/cache"
)

// cacheCommand groups the subcommands that manage rendered SVGs on disk.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered SVG cache",
	}
	cmd.AddCommand(c.cacheInfoCommand(), c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

// openCacheDir opens the file cache if its directory exists. A nil cache
// with a nil error means nothing has been cached yet.
func openCacheDir() (*cache.FileCache, string, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, dir, nil
	}
	fc, err := cache.NewFileCache(dir)
	return fc, dir, err
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show how many renderings are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openCacheDir()
			if err != nil {
				return err
			}
			entries, size := 0, int64(0)
			if fc != nil {
				if entries, size, err = fc.Stats(); err != nil {
					return err
				}
			}
			printKeyValue("Directory", dir)
			printKeyValue("Entries", fmt.Sprint(entries))
			printKeyValue("Size", fmt.Sprintf("%.1f KiB", float64(size)/1024))
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openCacheDir()
			if err != nil {
				return err
			}
			if fc == nil {
				printInfo("Cache is empty")
				return nil
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
