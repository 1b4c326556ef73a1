package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"specview/internal/report"
	"specview/internal/storage"

	"github.com/spf13/cobra"
)

func init() {
	todoCmd.AddCommand(todoSetCmd)
	todoCmd.AddCommand(todoShowCmd)
}

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Edit the TODO note of a call",
}

var todoSetCmd = &cobra.Command{
	Use:   "set <call> <text|->",
	Short: "Replace the note of a call; '-' reads it from stdin, an empty text removes it",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig(cmd)
		res := loadSpec(ctx, cfg)

		callName, body := args[0], args[1]
		if body == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatalf("Failed to read note from stdin: %v", err)
			}
			body = string(data)
		}
		if res.Call(callName) == nil {
			fmt.Printf("⚠️  %s is not a call of %s\n", callName, cfg.Spec.Source)
		}

		store := initStore(cfg)
		defer store.Close()

		note := &storage.Note{CallName: callName, Body: body, SpecDigest: res.Digest, UpdatedAt: time.Now().UTC()}
		if err := store.SaveNote(ctx, note); err != nil {
			log.Fatalf("Failed to save note: %v", err)
		}
		fmt.Printf("💾 Note of %s saved to %s\n", callName, cfg.Notes.DB)
	},
}

var todoShowCmd = &cobra.Command{
	Use:   "show <call>",
	Short: "Print the note of a call",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig(cmd)
		res := loadSpec(ctx, cfg)

		store := initStore(cfg)
		defer store.Close()

		note, err := store.GetNote(ctx, args[0])
		if err != nil {
			log.Fatalf("Failed to read note: %v", err)
		}
		if note == nil {
			fmt.Printf("No note for %s.\n", args[0])
			return
		}
		if note.Stale(res.Digest) {
			fmt.Printf("⚠️  Note was written against another version of the specification (%s)\n", note.UpdatedAt.Format(time.RFC3339))
		}
		fmt.Println(note.Body)
	},
}

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "Overview of all TODO notes and the checks they name",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig(cmd)
		res := loadSpec(ctx, cfg)

		store := initStore(cfg)
		defer store.Close()

		notes, err := store.ListNotes(ctx)
		if err != nil {
			log.Fatalf("Failed to list notes: %v", err)
		}
		fmt.Print(report.Todos(notes, res.Digest))
	},
}
