package main

import (
	"context"
	"fmt"
	"log"
	"sort"

	"specview/internal/crawler"
	"specview/internal/crosscheck"
	"specview/internal/extractor"
	"specview/internal/filter"
	"specview/internal/graph"
	"specview/internal/impact"
	"specview/internal/index"
	"specview/internal/report"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report mapping references that do not resolve",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		res := loadSpec(context.Background(), cfg)

		g := graph.Build(filter.New(params).Calls(res.Calls))
		fmt.Printf("📊 %d calls, %d nodes, %d edges\n", len(res.Calls), len(g.Nodes), len(g.Edges))
		for _, kind := range []graph.RelationKind{graph.RelationInspects, graph.RelationUsesOperation, graph.RelationConsumes} {
			fmt.Printf("  -> %s: %d\n", kind, g.EdgeKindCounts()[kind])
		}

		if unmapped := g.UnmappedArguments(); len(unmapped) > 0 {
			fmt.Printf("ℹ️  %d arguments are read by no operation or analysis\n", len(unmapped))
			for _, n := range unmapped {
				fmt.Printf("  %s.%s\n", n.Call, n.Name)
			}
		}

		if len(g.Unresolved) == 0 {
			fmt.Println("✅ All references resolve.")
			return
		}

		counts := g.UnresolvedReasonCounts()
		reasons := make([]string, 0, len(counts))
		for reason := range counts {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		fmt.Printf("⚠️  %d unresolved references\n", len(g.Unresolved))
		for _, reason := range reasons {
			fmt.Printf("  -> %s: %d\n", reason, counts[graph.UnresolvedReason(reason)])
		}
		for _, u := range g.Unresolved {
			fmt.Printf("  %s -[%s]-> %s (%s)\n", u.From, u.Kind, u.Target, u.Reason)
		}
	},
}

var impactCmd = &cobra.Command{
	Use:   "impact <call> <argument>",
	Short: "List analyses and operations that read a call argument",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		res := loadSpec(context.Background(), cfg)

		call := res.Call(args[0])
		if call == nil {
			log.Fatalf("Unknown call: %s", args[0])
		}
		if !call.HasArgument(args[1]) {
			fmt.Printf("⚠️  %s has no argument %s\n", call.Name, args[1])
		}

		rep := impact.NewAnalyzer(call).AnalyzeImpact(args[1])
		if rep.Empty() {
			fmt.Printf("✅ Nothing maps to %s.%s\n", rep.Call, rep.Argument)
			return
		}

		fmt.Printf("🔍 Impact of %s.%s\n", rep.Call, rep.Argument)
		fmt.Printf("  -> %d analyses read it directly\n", len(rep.DirectlyAffected))
		for _, an := range rep.DirectlyAffected {
			fmt.Printf("     %s\n", an.Name)
		}
		fmt.Printf("  -> %d analyses read it through an operation\n", len(rep.IndirectlyAffected))
		for _, an := range rep.IndirectlyAffected {
			fmt.Printf("     %s\n", an.Name)
		}
		fmt.Printf("  -> %d operations consume it\n", len(rep.Operations))
		for _, op := range rep.Operations {
			fmt.Printf("     %s\n", op.Key())
		}
	},
}

var snapshotPath string

func init() {
	crosscheckCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Save the extracted prototypes to this JSON file")
}

var crosscheckCmd = &cobra.Command{
	Use:   "crosscheck <dir|file|snapshot.json>",
	Short: "Compare the specification with C prototypes found in headers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		res := loadSpec(context.Background(), cfg)

		ext, err := extractor.NewExtractor("c")
		if err != nil {
			log.Fatalf("Failed to create extractor: %v", err)
		}

		fmt.Printf("📂 Reading prototypes: %s\n", args[0])
		idx := index.NewIndexer(crawler.NewCrawler(ext))
		snap, err := idx.Load(args[0])
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		if snapshotPath != "" {
			if err := index.SaveSnapshot(snap, snapshotPath); err != nil {
				log.Fatalf("Failed to save snapshot: %v", err)
			}
			fmt.Printf("💾 Snapshot saved to %s\n", snapshotPath)
		}
		protos := snap.Prototypes

		rep := crosscheck.Compare(res.Calls, protos)
		fmt.Printf("📊 %d calls, %d prototypes, %d matched\n", len(res.Calls), len(protos), rep.Matched)
		if rep.Clean() {
			fmt.Println("✅ Specification and headers agree.")
			return
		}
		for _, name := range rep.MissingPrototypes {
			fmt.Printf("  missing prototype: %s\n", name)
		}
		for _, name := range rep.UnknownPrototypes {
			fmt.Printf("  prototype without call: %s\n", name)
		}
		for _, m := range rep.Mismatches {
			switch m.Kind {
			case crosscheck.ArgumentCount:
				fmt.Printf("  %s: %s arguments in specification, %s in %s\n", m.Call, m.Expected, m.Found, m.Prototype)
			default:
				fmt.Printf("  %s: argument %d is %q in specification, %q in %s\n", m.Call, m.Position, m.Expected, m.Found, m.Prototype)
			}
		}
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph [call...]",
	Short: "Draw the mapping graph as a mermaid flowchart",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		res := loadSpec(context.Background(), cfg)

		g := graph.Build(filter.New(params).Calls(res.Calls))
		fmt.Print(report.Mermaid(g, args...))
	},
}
