package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/ingest"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// ingestResult is the outcome for one gear kind.
type ingestResult struct {
	Kind    domain.Kind    `json:"kind"`
	Skipped bool           `json:"skipped,omitempty"` // table not empty and --force not given
	Report  *ingest.Report `json:"report,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func newIngestCmd(opts *options) *cobra.Command {
	var (
		force bool
		file  string
	)

	cmd := &cobra.Command{
		Use:   "ingest [webbing|weblock|roller|all]",
		Short: "Ingest scraped JSON files into the catalog",
		Long: `Ingest reads the seed file of each requested gear kind, cleans every record,
resolves or creates its brand and persists the survivors in one transaction.

Kinds whose table already holds rows are skipped unless --force is given.
Ingestion is not idempotent: forcing a kind twice inserts its records twice.

Examples:
  # Seed every empty gear table from the configured seed files
  slackdb ingest

  # Append a fresh webbing scrape
  slackdb ingest webbing --force --file ./scrapes/webbings.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := gearKinds(args)
			if err != nil {
				return err
			}
			if file != "" && len(kinds) != 1 {
				return errors.New("--file needs a single gear kind")
			}

			return opts.withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				pipeline := ingest.NewPipeline(rt.store, rt.cfg.Seed.File, validation.New(), nil, rt.log.Component("ingest"))

				results := make([]ingestResult, 0, len(kinds))
				persisted, failed := 0, 0
				for _, kind := range kinds {
					res := runIngest(ctx, rt, pipeline, kind, file, force)
					if res.Report != nil {
						persisted += res.Report.Persisted
					}
					if res.Error != "" {
						failed++
					}
					results = append(results, res)
				}

				if persisted > 0 {
					if err := rt.search.Reindex(ctx); err != nil {
						rt.log.Warn("search reindex after ingestion failed", "error", err)
					}
				}

				if opts.jsonOutput {
					if err := printJSON(cmd.OutOrStdout(), results); err != nil {
						return err
					}
				} else {
					printIngestResults(cmd, results)
				}

				if failed > 0 {
					return fmt.Errorf("%d of %d kinds failed", failed, len(kinds))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Ingest even when the table already has rows")
	cmd.Flags().StringVar(&file, "file", "", "Source file, overriding the configured seed file")
	return cmd
}

func runIngest(ctx context.Context, rt *runtime, p *ingest.Pipeline, kind domain.Kind, file string, force bool) ingestResult {
	res := ingestResult{Kind: kind}

	if !force {
		n, err := ingest.CountKind(ctx, rt.store, kind)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		if n > 0 {
			res.Skipped = true
			return res
		}
	}

	if file == "" {
		file = rt.cfg.Seed.File(string(kind))
	}
	rep, err := p.IngestFile(ctx, kind, file)
	res.Report = &rep
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func printIngestResults(cmd *cobra.Command, results []ingestResult) {
	out := cmd.OutOrStdout()
	for _, r := range results {
		switch {
		case r.Skipped:
			fmt.Fprintf(out, "%-8s skipped (table not empty, use --force)\n", r.Kind)
		case r.Error != "":
			fmt.Fprintf(out, "%-8s failed: %s\n", r.Kind, r.Error)
		default:
			fmt.Fprintf(out, "%-8s read %d, persisted %d, skipped %d, brands created %d\n",
				r.Kind, r.Report.Read, r.Report.Persisted, r.Report.Skipped, r.Report.BrandsCreated)
		}
	}
}

// gearKinds resolves the optional kind argument. No argument or "all"
// selects every gear kind in seeding order.
func gearKinds(args []string) ([]domain.Kind, error) {
	if len(args) == 0 || args[0] == "all" {
		return domain.GearKinds, nil
	}
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	if !kind.IsGear() {
		return nil, fmt.Errorf("%s is not a gear kind; brands are created while ingesting gear", kind)
	}
	return []domain.Kind{kind}, nil
}
