package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rcsb/molpreset/pkg/store"
	"github.com/spf13/cobra"
)

var (
	historyDB     string
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history <entry-id>",
	Short: "Show recorded preset applications for an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyDB, "db", "molpreset.db", "Store path")
	historyCmd.Flags().StringVar(&historyFormat, "format", "table", "Output format: table, json")
}

func runHistory(cmd *cobra.Command, args []string) error {
	entryID := args[0]

	if historyDB == ":memory:" {
		return fmt.Errorf("cannot read history from an in-memory store")
	}

	s, err := store.New(store.Config{Path: historyDB})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	records, err := s.Presets(entryID)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	switch historyFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "table":
		return outputHistoryTable(cmd, records)
	default:
		return fmt.Errorf("unknown output format: %s", historyFormat)
	}
}

func outputHistoryTable(cmd *cobra.Command, records []*store.PresetRecord) error {
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No presets recorded.\n")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "APPLIED\tKIND\tASSEMBLY")
	for _, rec := range records {
		assembly := rec.AssemblyID
		if assembly == "" {
			assembly = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.AppliedAt.Format(time.RFC3339), rec.Kind, assembly)
	}
	return w.Flush()
}
