package main

import (
	"encoding/json"
	"fmt"

	"github.com/rcsb/molpreset"
	"github.com/spf13/cobra"
)

var motifTargets string

var motifCmd = &cobra.Command{
	Use:   "motif <entry-id>",
	Short: "Build a structure motif search query",
	Long: `Build a structure motif search query from a YAML list of targets.
Targets with residue ranges are unrolled to individual residues; a query
is limited to one entry and at most ten residues.`,
	Args: cobra.ExactArgs(1),
	RunE: runMotif,
}

func init() {
	motifCmd.Flags().StringVar(&motifTargets, "targets", "", "Path to YAML file of targets")
}

func runMotif(cmd *cobra.Command, args []string) error {
	entryID := args[0]

	targets, err := loadTargets(motifTargets)
	if err != nil {
		return err
	}

	r := molpreset.New()
	query := r.MotifQuery(entryID, targets)
	if query == nil {
		return fmt.Errorf("motif query rejected: needs 1-10 residues from a single entry")
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(query)
}
