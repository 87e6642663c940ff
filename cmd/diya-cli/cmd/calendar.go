package cmd

import (
	"diya-backend/internal/calendar"
	"diya-backend/internal/pipeline"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	calendarPlatforms []string
	calendarFrequency string
	calendarTone      string
)

func init() {
	calendarCmd.Flags().StringSliceVar(&calendarPlatforms, "platforms", []string{calendar.PLATFORM_INSTAGRAM}, "Platforms to plan posts for.")
	calendarCmd.Flags().StringVar(&calendarFrequency, "frequency", "3/week", "How often to post, ex. 3/week or 12/month.")
	calendarCmd.Flags().StringVar(&calendarTone, "tone", calendar.TONE_PROFESSIONAL, "Tone of the posts.")
	rootCmd.AddCommand(calendarCmd)
}

var calendarCmd = &cobra.Command{
	Use:   "calendar <url>",
	Short: "Analyzes a website and prints a week of posts for it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link := args[0]

		var profile pipeline.Profile
		assets, err := components.Extractor.Extract(cmd.Context(), link)
		if err != nil {
			fmt.Printf("%s: %v, using a fallback profile\n", link, err)
			profile = pipeline.FallbackProfile(link, err)
		} else {
			profile = pipeline.ToProfile(assets)
			profile.Name = pipeline.LookupName(profile, link)
		}

		posts := components.Generator.Generate(cmd.Context(), calendar.Request{
			Brand:        profile,
			Platforms:    calendarPlatforms,
			PostsPerWeek: calendar.ParseFrequency(calendarFrequency),
			Tone:         calendarTone,
		})

		t := newTable()
		t.AppendHeader(table.Row{"Date", "Platform", "Title", "Caption"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 4, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		})
		for _, p := range posts {
			t.AppendRow(table.Row{
				strings.Replace(p.ScheduledDate, "T", " ", 1),
				p.Platform,
				p.Title,
				p.Caption,
			})
		}
		t.Render()
		return nil
	},
}
