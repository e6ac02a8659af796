package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/internal/api"
	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
)

// layoutCommand creates the layout command for computing layered layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool

		direction   string
		ranking     string
		crossing    string
		coordinates string
	)
	opts := layout.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a layered layout from a graph JSON file",
		Long: `Compute a layered layout from a graph JSON file.

The layout command reads a graph.json file, runs the layered layout pipeline
(cycle breaking, ranking, crossing minimization, coordinate assignment), and
writes a layout.json with node positions, routed edges, bounds, and stats.

Layout computation never fails on graph content: malformed edges are dropped
and disconnected nodes are placed at the first level.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags explicitly set on the command line win over the config
			// file; everything else falls back to the file, then defaults.
			effective := cfg.Layout
			f := cmd.Flags()
			if f.Changed("direction") {
				effective.Direction = layout.Direction(direction)
			}
			if f.Changed("ranking") {
				effective.Ranking = layout.Ranking(ranking)
			}
			if f.Changed("crossing") {
				effective.Crossing = layout.Crossing(crossing)
			}
			if f.Changed("coordinates") {
				effective.Coordinates = layout.Coordinates(coordinates)
			}
			if f.Changed("level-sep") {
				effective.LevelSeparation = opts.LevelSeparation
			}
			if f.Changed("node-sep") {
				effective.NodeSeparation = opts.NodeSeparation
			}
			if f.Changed("crossing-iterations") {
				effective.CrossingIterations = opts.CrossingIterations
			}
			if f.Changed("tight-tree-passes") {
				effective.TightTreePasses = opts.TightTreePasses
			}
			if f.Changed("alignment-iterations") {
				effective.AlignmentIterations = opts.AlignmentIterations
			}
			if f.Changed("grid-size") {
				effective.GridSize = opts.GridSize
			}
			if f.Changed("margin") {
				effective.Margin = opts.Margin
			}
			if f.Changed("roots") {
				effective.RootNodes = opts.RootNodes
			}
			if f.Changed("align-to-grid") {
				effective.AlignToGrid = opts.AlignToGrid
			}
			if f.Changed("compact") {
				effective.Compact = opts.Compact
			}

			return c.runLayout(cmd.Context(), args[0], effective, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().StringVarP(&direction, "direction", "d", string(opts.Direction), "layout direction: TB, BT, LR, RL")
	cmd.Flags().StringVar(&ranking, "ranking", string(opts.Ranking), "ranking strategy: longest-path, tight-tree, network-simplex")
	cmd.Flags().StringVar(&crossing, "crossing", string(opts.Crossing), "crossing heuristic: barycenter, median, none")
	cmd.Flags().StringVar(&coordinates, "coordinates", string(opts.Coordinates), "coordinate assigner: simple, brandes-kopf, tight")
	cmd.Flags().Float64Var(&opts.LevelSeparation, "level-sep", opts.LevelSeparation, "gap between adjacent levels")
	cmd.Flags().Float64Var(&opts.NodeSeparation, "node-sep", opts.NodeSeparation, "gap between nodes within a level")
	cmd.Flags().IntVar(&opts.CrossingIterations, "crossing-iterations", opts.CrossingIterations, "crossing minimization sweep cap")
	cmd.Flags().IntVar(&opts.TightTreePasses, "tight-tree-passes", opts.TightTreePasses, "tight-tree refinement pass cap")
	cmd.Flags().IntVar(&opts.AlignmentIterations, "alignment-iterations", opts.AlignmentIterations, "coordinate alignment pass cap")
	cmd.Flags().Float64Var(&opts.GridSize, "grid-size", opts.GridSize, "grid pitch for --align-to-grid")
	cmd.Flags().Float64Var(&opts.Margin, "margin", opts.Margin, "minimum coordinate on both axes")
	cmd.Flags().StringSliceVar(&opts.RootNodes, "roots", nil, "pin rank-assignment root node ids")
	cmd.Flags().BoolVar(&opts.AlignToGrid, "align-to-grid", opts.AlignToGrid, "snap coordinates to the grid")
	cmd.Flags().BoolVar(&opts.Compact, "compact", opts.Compact, "re-pack levels after alignment")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts layout.Options, output string, noCache bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	eng, err := layout.New(opts)
	if err != nil {
		return err
	}

	layoutCache := newCLICache(noCache)
	defer layoutCache.Close()

	graphData, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	key := cache.NewDefaultKeyer().LayoutKey(cache.Hash(graphData), api.KeyOpts(eng.Options()))

	prog := newProgress(c.Logger)
	var result layout.Result
	cached := false
	if data, hit, err := layoutCache.Get(ctx, key); err == nil && hit {
		if err := json.Unmarshal(data, &result); err == nil {
			cached = true
		}
	}
	if !cached {
		result = eng.Layout(ctx, g)
		if data, err := json.Marshal(result); err == nil {
			if err := layoutCache.Set(ctx, key, data, 0); err != nil {
				c.Logger.Debug("cache write failed", "err", err)
			}
		}
	}
	prog.done("Layout complete")

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := layout.WriteResultFile(outputPath, result); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(g.Nodes), len(g.Edges),
		result.Stats.Crossings, result.Stats.ReversedEdges, result.Stats.DummyNodes, cached)
	printNewline()
	printNextStep("Serve", "strata serve")

	return nil
}
