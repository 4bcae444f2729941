package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wallfeed/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the upstream response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached upstream responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			opts := c.cfg.Cache.Options()

			switch opts.Backend {
			case cache.BackendNone:
				printInfo(out, "Cache is disabled (cache.backend = %q)", opts.Backend)
				return nil
			case cache.BackendMemory:
				printWarning(out, "The memory cache lives inside a running server; restart it to clear")
				return nil
			}

			backend, err := cache.Open(opts)
			if err != nil {
				return err
			}
			defer backend.Close()

			clearer, ok := backend.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", opts.Backend)
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear %s cache: %w", opts.Backend, err)
			}
			if n == 0 {
				printInfo(out, "Cache is empty")
				return nil
			}
			printSuccess(out, "Cleared %d cached entries", n)
			printDetail(out, "%s", describeCache(opts))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached responses are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.Cache.Options()
			if opts.Backend == cache.BackendFile {
				fmt.Fprintln(cmd.OutOrStdout(), opts.Dir)
				return nil
			}
			printKeyValue(cmd.OutOrStdout(), "backend", opts.Backend)
			printDetail(cmd.OutOrStdout(), "%s", describeCache(opts))
			return nil
		},
	}
}

func describeCache(opts cache.Options) string {
	switch opts.Backend {
	case cache.BackendFile:
		return "Directory: " + opts.Dir
	case cache.BackendRedis:
		prefix := opts.Redis.Prefix
		if prefix == "" {
			prefix = cache.DefaultRedisPrefix
		}
		return fmt.Sprintf("Redis: %s db %d, keys %s*", opts.Redis.Addr, opts.Redis.DB, prefix)
	case cache.BackendMemory:
		return "In-process memory"
	default:
		return "No cache"
	}
}
