package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/wallfeed/internal/server"
	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/pipeline"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// maxParallelFetches bounds --all.
const maxParallelFetches = 4

type fetchOpts struct {
	count   int
	typ     string
	json    bool
	all     bool
	noCache bool
}

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var opts fetchOpts

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one batch of wallpapers and print it",
		Example: `  wallfeed fetch
  wallfeed fetch -n 4 -t official
  wallfeed fetch --all --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.newRuntime(opts.noCache)
			if err != nil {
				return err
			}
			defer rt.Close()

			if opts.all {
				return runFetchAll(cmd, rt, opts)
			}
			return runFetch(cmd, rt, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of wallpapers (default fetch.default_count)")
	cmd.Flags().StringVarP(&opts.typ, "type", "t", "", "provider tag; random when empty")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the API response body instead of a table")
	cmd.Flags().BoolVar(&opts.all, "all", false, "fetch one batch from every enabled provider")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the upstream response cache")
	_ = cmd.RegisterFlagCompletionFunc("type", completeTypes)

	return cmd
}

func completeTypes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(wallpaper.AllTypes))
	for i, t := range wallpaper.AllTypes {
		names[i] = string(t)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func runFetch(cmd *cobra.Command, rt *runtime, opts fetchOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var spin *Spinner
	if !opts.json {
		spin = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Fetching wallpapers...")
		spin.Start()
	}
	start := time.Now()
	res := rt.Runner.ResolveAndFetch(ctx, opts.count, opts.typ)
	elapsed := time.Since(start)
	if spin != nil {
		spin.Stop()
	}

	if opts.json {
		if err := writeEnvelope(out, res); err != nil {
			return err
		}
	} else if len(res.Wallpapers) > 0 {
		fmt.Fprintln(out, wallpaperTable(res.Wallpapers, 0, -1).Render())
		printBatchSummary(out, res.Provider, len(res.Wallpapers), elapsed)
	}

	if res.Err != nil {
		return fmt.Errorf("%s: %s", res.Provider, errors.UserMessage(res.Err))
	}
	return nil
}

// runFetchAll fetches from each enabled provider concurrently. Each provider
// gets its own single-provider runner so the fetches do not contend for one
// in-flight guard.
func runFetchAll(cmd *cobra.Command, rt *runtime, opts fetchOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	registry := rt.Runner.Registry()
	types := registry.Types()

	results := make([]pipeline.Result, len(types))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, t := range types {
		g.Go(func() error {
			a, _ := registry.Get(t)
			single, err := provider.NewRegistry(a)
			if err != nil {
				return err
			}
			results[i] = pipeline.NewRunner(single, rt.Client, rt.Options).ResolveAndFetch(gctx, opts.count, "")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.json {
		batches := make(map[wallpaper.Type][]wallpaper.Record, len(results))
		for _, r := range results {
			batches[r.Provider] = r.Wallpapers
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(batches)
	}

	failed := 0
	for _, r := range results {
		fmt.Fprintln(out, StyleTitle.Render(string(r.Provider)))
		if r.Err != nil {
			failed++
			printError(out, "%s", errors.UserMessage(r.Err))
			printDetail(out, "code: %s", errors.CodeOf(r.Err))
			continue
		}
		fmt.Fprintln(out, wallpaperTable(r.Wallpapers, 0, -1).Render())
	}
	if failed == len(results) && failed > 0 {
		return fmt.Errorf("all %d providers failed", failed)
	}
	return nil
}

// writeEnvelope prints res in the /api/wallpapers response shape.
func writeEnvelope(w io.Writer, res pipeline.Result) error {
	body := server.WallpapersResponse{Success: true, Wallpapers: res.Wallpapers}
	if res.Provider != "" {
		body.CurrentAPI = &res.Provider
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}
