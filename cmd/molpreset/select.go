package main

import (
	"encoding/json"
	"fmt"

	"github.com/rcsb/molpreset"
	"github.com/rcsb/molpreset/pkg/selection"
	"github.com/rcsb/molpreset/pkg/types"
	"github.com/spf13/cobra"
)

var (
	selectTargets string
	selectLabel   string
	selectColor   string
	selectHidden  bool
	selectGroup   string
)

var selectCmd = &cobra.Command{
	Use:   "select <entry-id>",
	Short: "Build selection expressions from targets",
	Long: `Turn a YAML list of targets into the selection expressions a viewer
renders: one expression per target plus a hidden whole-entry expression
that keeps the full structure loaded. With no targets the whole entry
is selected.

Runs entirely offline; no entry data is fetched.`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&selectTargets, "targets", "", "Path to YAML file of targets")
	selectCmd.Flags().StringVar(&selectLabel, "label", "", "Label override for targeted expressions")
	selectCmd.Flags().StringVar(&selectColor, "color", "", "Uniform color as #RRGGBB (empty lets the host theme decide)")
	selectCmd.Flags().BoolVar(&selectHidden, "hidden", false, "Mark targeted expressions hidden")
	selectCmd.Flags().StringVar(&selectGroup, "group", "", "Host UI group for the expressions")
}

func runSelect(cmd *cobra.Command, args []string) error {
	entryID := args[0]

	targets, err := loadTargets(selectTargets)
	if err != nil {
		return err
	}

	c, err := types.ParseColor(selectColor)
	if err != nil {
		return fmt.Errorf("parsing --color: %w", err)
	}

	r := molpreset.New()
	exprs := r.BuildSelections(entryID, targets, selection.Options{
		Label:  selectLabel,
		Color:  c,
		Hidden: selectHidden,
		Group:  selectGroup,
	})

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(exprs)
}
