package cmd

import (
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/llm"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(modelsCmd)
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Lists the generative models available to the configured api key with their scores.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if components.Provider == nil {
			return llm.ErrNoAPIKey
		}
		models, err := components.Provider.ListModels(cmd.Context())
		if err != nil {
			return err
		}

		text, image := llm.Categorized(models)

		t := newTable()
		t.AppendHeader(table.Row{"Model", "Display name", "Score"})
		for _, m := range text {
			t.AppendRow(table.Row{m.Name, m.DisplayName, llm.Score(m.Name)})
		}
		t.Render()

		if len(image) > 0 {
			t = newTable()
			t.AppendHeader(table.Row{"Image model", "Priority"})
			for _, m := range image {
				t.AppendRow(table.Row{m.Name, llm.ImagePriority(m.Name)})
			}
			t.Render()
		}

		selection := llm.Discover(cmd.Context(), components.Provider, telemetry.SlogAPI{})
		fmt.Printf(
			"fast: %s\nreasoning: %s\nvision: %s\nimage: %s\n",
			selection.Fast, selection.Reasoning, selection.Vision, selection.Image,
		)
		return nil
	},
}
