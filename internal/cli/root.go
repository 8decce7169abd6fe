// Package cli implements the slackdb command line tool: offline ingestion,
// record cleaning, catalog statistics and index maintenance.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slackdb/slackdb-server/internal/config"
	"github.com/slackdb/slackdb-server/internal/di/providers"
	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/search"
	"github.com/slackdb/slackdb-server/internal/service"
	"github.com/slackdb/slackdb-server/internal/store"
)

// Version is reported by the version command.
const Version = "v1.0.0"

// options holds the persistent flags shared by every command.
type options struct {
	jsonOutput bool
	envFile    string
	dataPath   string
	backend    string
	seedPath   string
	logLevel   string
	noSearch   bool
}

// configArgs forwards the set flags to config.Load, which applies the
// usual flag > env > .env > default precedence.
func (o *options) configArgs() []string {
	args := []string{"-env-file", o.envFile}
	for flag, v := range map[string]string{
		"-data-path": o.dataPath,
		"-store":     o.backend,
		"-seed-path": o.seedPath,
		"-log-level": o.logLevel,
	} {
		if v != "" {
			args = append(args, flag, v)
		}
	}
	if o.noSearch {
		args = append(args, "-search", "false")
	}
	return args
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "slackdb",
		Short: "SlackDB CLI - maintain the slackline gear catalog",
		Long: `SlackDB CLI maintains the slackline gear catalog offline.
It ingests scraped JSON files, previews how records are cleaned, reports
catalog statistics and rebuilds the search index.

The server must not be running against the same data directory.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to .env file")
	cmd.PersistentFlags().StringVar(&opts.dataPath, "data-path", "", "Directory for database files")
	cmd.PersistentFlags().StringVar(&opts.backend, "store", "", "Store backend (sqlite, badger)")
	cmd.PersistentFlags().StringVar(&opts.seedPath, "seed-path", "", "Directory holding seed JSON files")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.noSearch, "no-search", false, "Skip the search index")

	cmd.AddCommand(
		newIngestCmd(opts),
		newCleanCmd(opts),
		newStatsCmd(opts),
		newReindexCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		if asJSON, _ := cmd.PersistentFlags().GetBool("json"); asJSON {
			_ = printJSON(os.Stdout, map[string]string{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// runtime is the opened catalog a command works on.
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	store  store.Store
	index  *search.SearchIndex // nil when search is disabled
	search *service.SearchService
}

// open loads configuration and opens the store and, unless disabled, the
// search index. Logs go to stderr so stdout stays machine readable.
func (o *options) open(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(o.configArgs())
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Writer:      cmd.ErrOrStderr(),
		Format:      cfg.Logger.Format,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	st, err := providers.OpenStore(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, log: log, store: st}

	var catalog *search.Catalog
	if cfg.Search.Enabled {
		rt.index, err = search.NewSearchIndex(search.Options{
			DataPath: cfg.Store.DataPath,
			Logger:   log.Component("search"),
		})
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("open search index: %w", err)
		}
		catalog = search.NewCatalog(rt.index, st, log.Component("search"))
	}
	rt.search = service.NewSearchService(catalog, log.Component("search_service"))

	return rt, nil
}

// Close releases the index and the store.
func (rt *runtime) Close() {
	if rt.index != nil {
		if err := rt.index.Close(); err != nil {
			rt.log.Warn("closing search index", "error", err)
		}
	}
	if err := rt.store.Close(); err != nil {
		rt.log.Warn("closing store", "error", err)
	}
}

// withRuntime opens the catalog around fn.
func (o *options) withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	rt, err := o.open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(cmd.Context(), rt)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
