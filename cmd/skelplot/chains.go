package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"skelplot/internal/chain"
	"skelplot/internal/mathutil"
	"skelplot/internal/skeleton"
)

func newChainsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chains [model.xml]",
		Short: "Print the configured joint chains of the zero pose.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args)
			if err != nil {
				return err
			}
			_, pose, err := a.loadPose(cfg.Model)
			if err != nil {
				return err
			}

			chains, err := extractChains(pose.Hierarchy(), pose.GlobalPositions(), cfg.Chains)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold).SprintFunc()
			for _, name := range slices.Sorted(maps.Keys(chains)) {
				pts := chains[name]
				fmt.Fprintf(out, "%s (%d joints)\n", bold(name), len(pts))
				for k, p := range pts {
					fmt.Fprintf(out, "  %-18s %s\n", cfg.Chains[name][k], formatVec(p))
				}
			}
			return nil
		},
	}
}

// extractChains resolves every named chain against h. When spine, hands
// and legs are all configured they are extracted together as a chain.Set.
func extractChains(h skeleton.Hierarchy, points []mathutil.Vec3, chains map[string][]string) (map[string][]mathutil.Vec3, error) {
	out := make(map[string][]mathutil.Vec3, len(chains))

	groups := []string{"spine", "hands", "legs"}
	var idx [3][]int
	complete := true
	for k, name := range groups {
		names, ok := chains[name]
		if !ok {
			complete = false
			break
		}
		var err error
		if idx[k], err = chain.Indices(h, names); err != nil {
			return nil, errors.Wrapf(err, "chain %q", name)
		}
	}
	if complete {
		set, err := chain.Chains(points, idx[0], idx[1], idx[2])
		if err != nil {
			return nil, err
		}
		out["spine"], out["hands"], out["legs"] = set.Spine, set.Hands, set.Legs
	}

	for _, name := range slices.Sorted(maps.Keys(chains)) {
		if _, done := out[name]; done {
			continue
		}
		pts, err := chain.ByName(h, points, chains[name])
		if err != nil {
			return nil, errors.Wrapf(err, "chain %q", name)
		}
		out[name] = pts
	}
	return out, nil
}
