package cli

import (
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/ingest"
	"github.com/slackdb/slackdb-server/internal/normalize"
)

// rejected is a record that failed cleaning.
type rejected struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// cleanOutput is what clean prints.
type cleanOutput[T any] struct {
	Kind     string                  `json:"kind"`
	Read     int                     `json:"read"`
	Cleaned  []*normalize.Cleaned[T] `json:"cleaned"`
	Rejected []rejected              `json:"rejected"`
}

func newCleanCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <webbing|weblock|roller> <file>",
		Short: "Print the cleaned form of every record in a scraped JSON file",
		Long: `Clean runs the ingestion cleaning rules over a source file without touching
the catalog and prints the result as JSON. Brands are shown by name since
nothing is resolved against the store.

Examples:
  slackdb clean weblock ./scrapes/weblocks.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := gearKinds(args[:1])
			if err != nil {
				return err
			}
			records, err := ingest.ReadJSONArray(args[1])
			if err != nil {
				return err
			}

			var out any
			switch kinds[0] {
			case domain.KindWebbing:
				out = cleanAll(normalize.WebbingRules(), records)
			case domain.KindWeblock:
				out = cleanAll(normalize.WeblockRules(), records)
			default:
				out = cleanAll(normalize.RollerRules(), records)
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func cleanAll[T any](c *normalize.Cleaner[T], records []gjson.Result) cleanOutput[T] {
	out := cleanOutput[T]{
		Kind:     string(c.Kind),
		Read:     len(records),
		Cleaned:  make([]*normalize.Cleaned[T], 0, len(records)),
		Rejected: []rejected{},
	}
	for i, rec := range records {
		cleaned, err := c.Clean(rec)
		if err != nil {
			out.Rejected = append(out.Rejected, rejected{Index: i, Error: err.Error()})
			continue
		}
		out.Cleaned = append(out.Cleaned, cleaned)
	}
	return out
}
