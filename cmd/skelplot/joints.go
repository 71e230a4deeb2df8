package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"skelplot/internal/mathutil"
)

func newJointsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "joints [model.xml]",
		Short: "List the skeleton joints with their zero-pose positions.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args)
			if err != nil {
				return err
			}
			model, pose, err := a.loadPose(cfg.Model)
			if err != nil {
				return err
			}

			tree := pose.Tree()
			global := pose.GlobalPositions()
			var rows [][]string
			for i, name := range tree.NodeNames() {
				parent, ok := tree.ParentOf(name)
				if !ok {
					parent = "-"
				}
				var dofs []string
				for _, j := range model.Bodies[i].Joints {
					dofs = append(dofs, j.Name)
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					name,
					parent,
					formatVec(tree.Joint(i).LocalTranslation),
					formatVec(global[i]),
					strings.Join(dofs, " "),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"Index", "Joint", "Parent", "Local", "Global", "DOF"})
			table.Configure(func(cfg *tablewriter.Config) {
				cfg.Row.Alignment.Global = tw.AlignLeft
			})
			if err := table.Bulk(rows); err != nil {
				return err
			}
			return table.Render()
		},
	}
}

func formatVec(v mathutil.Vec3) string {
	return fmt.Sprintf("%7.3f %7.3f %7.3f", v[0], v[1], v[2])
}
