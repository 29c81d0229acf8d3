package main

import (
	"fmt"
	"os"

	"github.com/rcsb/molpreset"
	"github.com/rcsb/molpreset/pkg/fetch"
	"github.com/rcsb/molpreset/pkg/logging"
	"github.com/rcsb/molpreset/pkg/store"
	"github.com/rcsb/molpreset/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "molpreset",
	Short: "Molpreset - structure preset and selection resolver",
	Long: `Molpreset resolves molecular-visualization presets for PDB entries:
it fetches mmCIF files, infers the assembly a set of targets belongs to,
and turns targets into the selection expressions a viewer renders.

It can run as a one-shot CLI or as a long-lived server speaking NDJSON
over stdio or JSON over a websocket.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if quiet {
			return nil
		}
		return logging.Init(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(motifCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadTargets reads a YAML list of targets from a file.
func loadTargets(path string) ([]types.Target, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading targets file: %w", err)
	}
	var targets []types.Target
	if err := yaml.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("parsing targets file %s: %w", path, err)
	}
	return targets, nil
}

// newResolver builds a resolver from the common --db / --base-url flags.
// An empty dbPath means no store; entries are then only cached in memory.
func newResolver(dbPath, baseURL string) (*molpreset.Resolver, error) {
	var opts []molpreset.Option

	var s store.Store
	if dbPath != "" {
		var err error
		s, err = store.New(store.Config{Path: dbPath})
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		opts = append(opts, molpreset.WithStore(s))
	}

	var fopts []fetch.Option
	if baseURL != "" {
		fopts = append(fopts, fetch.WithBaseURL(baseURL))
	}
	if s != nil {
		fopts = append(fopts, fetch.WithStore(s))
	}
	if len(fopts) > 0 {
		opts = append(opts, molpreset.WithFetcher(fetch.New(fopts...)))
	}

	return molpreset.New(opts...), nil
}
