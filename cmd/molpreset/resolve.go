package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/rcsb/molpreset/pkg/preset"
	"github.com/rcsb/molpreset/pkg/types"
	"github.com/spf13/cobra"
)

var (
	resolveKind     string
	resolveParams   string
	resolveTargets  string
	resolveAssembly string
	resolveModel    int
	resolveFormat   string
	resolveDB       string
	resolveBaseURL  string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <entry-id>",
	Short: "Resolve a preset into a plan",
	Long: `Resolve preset parameters for an entry into a plan: the effective
assembly, model index, and the selection expressions a viewer would render.

Parameters come either from --kind plus the relevant flags, or from an
inline JSON object via --params (which wins when both are given).`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveKind, "kind", "standard", "Preset kind: standard, validation, symmetry, feature, density, membrane, feature-density, prop-set, motif, empty")
	resolveCmd.Flags().StringVar(&resolveParams, "params", "", "Inline JSON preset parameters (overrides --kind)")
	resolveCmd.Flags().StringVar(&resolveTargets, "targets", "", "Path to YAML file of targets (feature and motif kinds)")
	resolveCmd.Flags().StringVar(&resolveAssembly, "assembly", "", "Assembly id (empty lets target-carrying presets infer it)")
	resolveCmd.Flags().IntVar(&resolveModel, "model", 0, "Model index")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "human", "Output format: json, human")
	resolveCmd.Flags().StringVar(&resolveDB, "db", "", "Store path for fetched entries (empty disables the store)")
	resolveCmd.Flags().StringVar(&resolveBaseURL, "base-url", "", "Entry download base URL (default RCSB)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	entryID := args[0]

	params, err := resolveParamsFromFlags()
	if err != nil {
		return err
	}

	r, err := newResolver(resolveDB, resolveBaseURL)
	if err != nil {
		return err
	}
	defer r.Close()

	plan, err := r.ResolvePreset(context.Background(), entryID, params)
	if err != nil {
		return fmt.Errorf("resolving preset: %w", err)
	}

	switch resolveFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(plan)
	case "human":
		return outputPlan(cmd, plan)
	default:
		return fmt.Errorf("unknown output format: %s", resolveFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// resolveParamsFromFlags builds preset parameters from --params or --kind.
func resolveParamsFromFlags() (preset.Params, error) {
	if resolveParams != "" {
		p, err := preset.UnmarshalParams([]byte(resolveParams))
		if err != nil {
			return nil, fmt.Errorf("parsing --params: %w", err)
		}
		return p, nil
	}

	targets, err := loadTargets(resolveTargets)
	if err != nil {
		return nil, err
	}

	base := preset.Base{AssemblyID: resolveAssembly, ModelIndex: resolveModel}

	switch preset.Kind(resolveKind) {
	case preset.KindStandard:
		return preset.Standard{Base: base}, nil
	case preset.KindValidation:
		return preset.Validation{Base: base}, nil
	case preset.KindSymmetry:
		return preset.Symmetry{Base: base}, nil
	case preset.KindDensity:
		return preset.Density{Base: base}, nil
	case preset.KindMembrane:
		return preset.Membrane{Base: base}, nil
	case preset.KindEmpty:
		return preset.Empty{Base: base}, nil
	case preset.KindFeature:
		if len(targets) == 0 {
			return nil, fmt.Errorf("feature preset requires --targets")
		}
		return preset.Feature{Base: base, Target: targets[0]}, nil
	case preset.KindFeatureDensity:
		if len(targets) == 0 {
			return nil, fmt.Errorf("feature-density preset requires --targets")
		}
		return preset.FeatureDensity{Base: base, Target: targets[0]}, nil
	case preset.KindMotif:
		if len(targets) == 0 {
			return nil, fmt.Errorf("motif preset requires --targets")
		}
		return preset.Motif{Base: base, Targets: targets}, nil
	case preset.KindPropSet:
		return nil, fmt.Errorf("prop-set preset requires --params with explicit selections")
	default:
		return nil, fmt.Errorf("unknown preset kind: %s", resolveKind)
	}
}

// planStyles holds color formatters for human plan output.
type planStyles struct {
	heading *color.Color
	tag     *color.Color
	hidden  *color.Color
	value   *color.Color
}

func newPlanStyles() *planStyles {
	return &planStyles{
		heading: color.New(color.Bold, color.FgHiWhite),
		tag:     color.New(color.FgHiGreen),
		hidden:  color.New(color.FgHiBlack),
		value:   color.New(color.FgYellow),
	}
}

func outputPlan(cmd *cobra.Command, plan *preset.Plan) error {
	out := cmd.OutOrStdout()
	s := newPlanStyles()

	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Entry:"), plan.EntryID)
	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Preset:"), plan.Kind)
	assembly := plan.AssemblyID
	if assembly == "" {
		assembly = "(deposited model)"
	}
	fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Assembly:"), s.value.Sprint(assembly))
	if plan.ModelIndex != 0 {
		fmt.Fprintf(out, "%s %d\n", s.heading.Sprint("Model:"), plan.ModelIndex)
	}

	if len(plan.Expressions) == 0 {
		fmt.Fprintf(out, "\nNo selection expressions.\n")
		return nil
	}

	fmt.Fprintf(out, "\nSelections:\n")
	for _, expr := range plan.Expressions {
		line := fmt.Sprintf("  %s %s (%d targets)", s.tag.Sprint(expr.Tag), expr.Label, len(expr.Targets))
		if expr.Color != types.ColorNone {
			line += " " + s.value.Sprint(expr.Color.String())
		}
		if expr.Hidden {
			line += " " + s.hidden.Sprint("[hidden]")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
