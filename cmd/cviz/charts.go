package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/compassviz/pkg/model"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

func parseLevel(s string) (model.Level, error) {
	switch l := model.Level(strings.ToLower(strings.TrimSpace(s))); l {
	case model.LevelCluster, model.LevelConstruct:
		return l, nil
	default:
		return "", fmt.Errorf("unknown level %q (want cluster or construct)", s)
	}
}

func (a *app) radarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "radar",
		Short: "Render a cluster or construct radar chart",
		Example: `  cviz radar -s scores.json --level cluster -o clusters.svg
  cviz radar --level construct --format png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flag, _ := cmd.Flags().GetString("level")
			level, err := parseLevel(flag)
			if err != nil {
				return err
			}
			p, _, err := a.loadProfile(cmd)
			if err != nil {
				return err
			}
			var sc scene.Scene
			if level == model.LevelCluster {
				sc = a.engine.ClusterRadar(p, a.settings).Scene
			} else {
				sc = a.engine.ConstructRadar(p, a.settings).Scene
			}
			return a.writeChart(cmd, &sc, string(level)+"-radar")
		},
	}
	cmd.Flags().String("level", string(model.LevelCluster), "Taxonomy level: cluster or construct")
	addOutputFlags(cmd)
	return cmd
}

func (a *app) matrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Render the pairwise synergy matrix of construct scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := a.loadProfile(cmd)
			if err != nil {
				return err
			}
			sc := a.engine.SynergyMatrix(p, a.settings).Scene
			return a.writeChart(cmd, &sc, "synergy-matrix")
		},
	}
	cmd.Flags().String("mode", "", "Colour mode: delta or magnitude")
	addOutputFlags(cmd)
	return cmd
}

func (a *app) heatmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Render the pairwise difference heatmap of construct scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := a.loadProfile(cmd)
			if err != nil {
				return err
			}
			sc := a.engine.DifferenceHeatmap(p, a.settings).Scene
			return a.writeChart(cmd, &sc, "difference-heatmap")
		},
	}
	cmd.Flags().Float64("cell", 0, "Cell size in pixels")
	addOutputFlags(cmd)
	return cmd
}
