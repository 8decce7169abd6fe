package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slackdb/slackdb-server/internal/service"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count catalog entities per kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				stats, err := rt.search.Stats(ctx, rt.store)
				if err != nil {
					return err
				}

				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), stats)
				}

				out := cmd.OutOrStdout()
				for _, k := range stats.Kinds {
					fmt.Fprintf(out, "%-8s %d\n", k.Kind, k.Count)
				}
				fmt.Fprintf(out, "%-8s %d\n", "total", stats.Total)
				if rt.search.Enabled() {
					fmt.Fprintf(out, "%-8s %d\n", "indexed", stats.IndexedEntries)
				}
				return nil
			})
		},
	}
}

func newReindexCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index from the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				if !rt.search.Enabled() {
					return service.ErrSearchDisabled
				}
				if err := rt.search.Reindex(ctx); err != nil {
					return err
				}
				n, err := rt.search.DocumentCount()
				if err != nil {
					return err
				}

				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), map[string]uint64{"documents": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "indexed %d documents\n", n)
				return nil
			})
		},
	}
}

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of slackdb",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{"version": Version})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "slackdb "+Version)
			return err
		},
	}
}
