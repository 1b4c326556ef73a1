package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"specview/internal/report"

	"github.com/spf13/cobra"
)

var withNotes bool

func init() {
	callsCmd.Flags().BoolVar(&withNotes, "notes", false, "Add the TODO note of each call")
	mappedAnalysesCmd.Flags().BoolVar(&withNotes, "notes", false, "Print the TODO note after each call")

	mappedCmd.AddCommand(mappedAnalysesCmd)
	mappedCmd.AddCommand(mappedOperationsCmd)
}

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "List calls and their arguments",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig(cmd)
		res := loadSpec(ctx, cfg)

		var notes map[string]string
		if withNotes {
			notes = loadNotes(ctx, cfg)
		}
		fmt.Print(newRenderer(cfg).Calls(res, notes))
	},
}

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "List calls and their analyses",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		res := loadSpec(context.Background(), cfg)
		fmt.Print(newRenderer(cfg).Analyses(res))
	},
}

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List calls and their operations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		res := loadSpec(context.Background(), cfg)
		fmt.Print(newRenderer(cfg).Operations(res))
	},
}

var mappedCmd = &cobra.Command{
	Use:   "mapped",
	Short: "Show how analyses or operations map to call arguments",
}

var mappedAnalysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Show analyses mapped to call arguments",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig(cmd)
		res := loadSpec(ctx, cfg)

		var notes map[string]string
		if withNotes {
			notes = loadNotes(ctx, cfg)
		}
		fmt.Print(newRenderer(cfg).MappedAnalyses(res, notes))
	},
}

var mappedOperationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "Show operations mapped to call arguments",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		res := loadSpec(context.Background(), cfg)
		fmt.Print(newRenderer(cfg).MappedOperations(res))
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the loaded structure as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		res := loadSpec(context.Background(), cfg)

		out, err := report.Dump(res)
		if err != nil {
			log.Fatalf("Failed to dump specification: %v", err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatalf("Failed to write dump: %v", err)
		}
	},
}
