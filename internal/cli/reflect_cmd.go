package cli

import (
	"context"
	"fmt"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/spf13/cobra"
)

func newReflectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "End-of-day reflections",
	}

	cmd.AddCommand(
		newReflectAddCmd(app),
		newReflectListCmd(app),
	)

	return cmd
}

func newReflectAddCmd(app *App) *cobra.Command {
	var date, content string
	var mood int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reflection to a day's report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rep, err := app.Reports.GetByDate(ctx, dateOrToday(date))
			if err != nil {
				return err
			}
			r := &domain.Reflection{
				ReportID: rep.ID,
				Content:  content,
				Mood:     mood,
			}
			if err := app.Reflections.Add(ctx, r); err != nil {
				return err
			}
			fmt.Printf("Added reflection (%s)\n", shortID(r.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&content, "text", "", "Reflection text")
	cmd.Flags().IntVar(&mood, "mood", 0, "Mood 1-5")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newReflectListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's reflections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rep, err := app.Reports.GetByDate(ctx, dateOrToday(date))
			if err != nil {
				return err
			}
			reflections, err := app.Reflections.ListByReport(ctx, rep.ID)
			if err != nil {
				return err
			}
			if len(reflections) == 0 {
				fmt.Println(styleDim.Render("no reflections"))
				return nil
			}
			for _, r := range reflections {
				fmt.Printf("%s mood %s\n%s\n",
					styleDim.Render(shortID(r.ID)), conditionCell(r.Mood), r.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	return cmd
}
