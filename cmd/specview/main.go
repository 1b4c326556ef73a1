package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"specview/internal/config"
	"specview/internal/filter"
	"specview/internal/loader"
	"specview/internal/report"
	"specview/internal/spec"
	"specview/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "specview",
		Short: "Inspect an MPI API specification: calls, operations, analyses and their mappings",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	configPath string
	sourceURL  string
	dbPath     string
	verbose    bool

	view   config.View
	params filter.Params
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML configuration")
	flags.StringVarP(&sourceURL, "source", "s", config.DefaultSource, "Specification file path or URL")
	flags.StringVarP(&dbPath, "db", "d", config.DefaultDB, "Path to the TODO notes database (SQLite)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Display toggles
	flags.BoolVar(&view.ShowArgType, "sat", false, "Show argument types")
	flags.BoolVar(&view.ShowArgIntent, "sai", false, "Show argument intents")
	flags.BoolVar(&view.ShowArgOrder, "sao", false, "Show argument order")
	flags.BoolVar(&view.ShowAnalysisGroup, "sag", false, "Show analysis group prefix")
	flags.BoolVar(&view.ShowAnalysisOrder, "sano", false, "Show analysis order")
	flags.BoolVar(&view.Highlight, "hl", false, "Highlight names matched by the filters")

	// Filters, case-insensitive regular expressions
	flags.StringVar(&params.CallName, "call", "", "Filter calls by name")
	flags.StringVar(&params.ArgName, "arg", "", "Filter calls by argument name")
	flags.StringVar(&params.ArgType, "type", "", "Filter calls by argument type, pointers ignored")
	flags.StringVar(&params.Intent, "intent", "", fmt.Sprintf("Filter calls by argument intent (%s, %s, %s, %s)",
		spec.IntentIn, spec.IntentOut, spec.IntentInOut, filter.IntentAll))
	flags.StringVar(&params.AnalysisName, "analysis", "", "Filter analyses by name")
	flags.StringVar(&params.MappedArg, "mapped-arg", "", "Filter analyses by mapped argument name")

	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(analysesCmd)
	rootCmd.AddCommand(operationsCmd)
	rootCmd.AddCommand(mappedCmd)
	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(todosCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(crosscheckCmd)
	rootCmd.AddCommand(graphCmd)
}

// loadConfig merges the config file with explicitly set flags.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Spec.Source = sourceURL
	}
	if flags.Changed("db") {
		cfg.Notes.DB = dbPath
	}
	overrideBool(cmd, "sat", &cfg.View.ShowArgType, view.ShowArgType)
	overrideBool(cmd, "sai", &cfg.View.ShowArgIntent, view.ShowArgIntent)
	overrideBool(cmd, "sao", &cfg.View.ShowArgOrder, view.ShowArgOrder)
	overrideBool(cmd, "sag", &cfg.View.ShowAnalysisGroup, view.ShowAnalysisGroup)
	overrideBool(cmd, "sano", &cfg.View.ShowAnalysisOrder, view.ShowAnalysisOrder)
	overrideBool(cmd, "hl", &cfg.View.Highlight, view.Highlight)
	return cfg
}

func overrideBool(cmd *cobra.Command, name string, dst *bool, value bool) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

// loadSpec loads the configured document. A missing document is reported
// and yields an empty result, a malformed one is reported and rendered empty.
func loadSpec(ctx context.Context, cfg *config.Config) *loader.Result {
	res, err := loader.New().Load(ctx, cfg.Spec.Source)
	if err != nil {
		log.Fatalf("Failed to load specification: %v", err)
	}
	if !res.Found {
		fmt.Fprintf(os.Stderr, "⚠️  Specification not found: %s\n", cfg.Spec.Source)
	}
	if res.ParseError != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Specification is not well-formed: %v\n", res.ParseError)
	}
	return res
}

func newRenderer(cfg *config.Config) *report.Renderer {
	p := params
	p.Highlight = cfg.View.Highlight
	return report.NewRenderer(filter.New(p), report.OptionsFromView(cfg.View))
}

// initStore opens the notes database.
func initStore(cfg *config.Config) *storage.SQLiteStore {
	store, err := storage.NewSQLiteStore(cfg.Notes.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	return store
}

// loadNotes returns the bodies of all notes keyed by call name.
func loadNotes(ctx context.Context, cfg *config.Config) map[string]string {
	store := initStore(cfg)
	defer store.Close()

	notes, err := store.ListNotes(ctx)
	if err != nil {
		log.Fatalf("Failed to list notes: %v", err)
	}
	return report.NoteBodies(notes)
}
