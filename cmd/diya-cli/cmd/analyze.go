package cmd

import (
	"diya-backend/internal/brand"
	"diya-backend/internal/pipeline"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url...>",
	Short: "Extracts the brand assets of the websites given as positional arguments.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, errs := components.Extractor.ExtractAll(cmd.Context(), args)

		failed := 0
		for i, assets := range results {
			if errs[i] != nil {
				failed++
				fmt.Printf("%s: %v\n\n", args[i], errs[i])
				continue
			}
			printAssets(assets)
		}
		if failed == len(args) {
			return fmt.Errorf("no website could be analyzed")
		}
		return nil
	},
}

func printAssets(assets brand.BrandAssets) {
	fmt.Printf("%s (%s)\n", assets.CompanyName, assets.WebsiteURL)
	if assets.CompanySummary != "" {
		fmt.Println(assets.CompanySummary)
	}
	if assets.Logo != nil {
		fmt.Printf("Logo: %s [%s]\n", assets.Logo.URL, assets.Logo.Format)
	}
	if len(assets.BrandVibe) > 0 {
		fmt.Printf("Vibe: %s\n", strings.Join(assets.BrandVibe, ", "))
	}

	profile := pipeline.ToProfile(assets)
	palette := newTable()
	palette.AppendHeader(table.Row{"Color", "Role"})
	for _, c := range profile.Colors {
		palette.AppendRow(table.Row{c.Hex, c.Label})
	}
	palette.Render()

	fonts := newTable()
	fonts.AppendHeader(table.Row{"Font", "Source", "Primary", "Body"})
	for _, f := range assets.Fonts {
		fonts.AppendRow(table.Row{f.Family, f.Source, f.IsPrimary, f.IsBody})
	}
	fonts.Render()

	if assets.Strategy != nil {
		strategy := newTable()
		strategy.AppendHeader(table.Row{"Strategy", ""})
		strategy.AppendRows([]table.Row{
			{"Archetype", assets.Strategy.BrandArchetype},
			{"Voice", assets.Strategy.BrandVoice},
			{"Audience", assets.Strategy.TargetAudience},
			{"Design", assets.Strategy.DesignStyle},
			{"Pillars", strings.Join(assets.Strategy.ContentPillars, "\n")},
			{"Post types", strings.Join(assets.Strategy.RecommendedPostTypes, "\n")},
		})
		strategy.Render()
	}
	fmt.Println()
}
