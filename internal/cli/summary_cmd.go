package cli

import (
	"context"
	"fmt"

	"github.com/dogeja/blueprint/internal/service"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate stats over a period",
	}

	cmd.AddCommand(
		newSummaryWeekCmd(app),
		newSummaryMonthCmd(app),
		newSummaryRangeCmd(app),
	)

	return cmd
}

func newSummaryWeekCmd(app *App) *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Summarize the seven days ending at a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Summary.WeekSummary(context.Background(), dateOrToday(end))
			if err != nil {
				return err
			}
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "Last day of the week (YYYY-MM-DD, default today)")
	return cmd
}

func newSummaryMonthCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Summarize the calendar month containing a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Summary.MonthSummary(context.Background(), dateOrToday(date))
			if err != nil {
				return err
			}
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date in the month (YYYY-MM-DD, default today)")
	return cmd
}

func newSummaryRangeCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Summarize an arbitrary date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Summary.Range(context.Background(), from, to)
			if err != nil {
				return err
			}
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printSummary(s *service.PeriodSummary) {
	fmt.Printf("%s %s to %s\n", styleHeader.Render("Period"), s.From, s.To)

	if len(s.Days) == 0 {
		fmt.Println(styleDim.Render("no reports in period"))
		return
	}

	rows := make([][]string, 0, len(s.Days))
	for _, d := range s.Days {
		rows = append(rows, []string{
			d.Date,
			conditionCell(d.Condition),
			fmt.Sprintf("%d/%d", d.TaskCompleted, d.TaskTotal),
			fmt.Sprintf("%dm", d.ActualMin),
		})
	}
	fmt.Print(renderTable([]string{"DATE", "CONDITION", "TASKS", "TIME"}, rows))

	fmt.Printf("\ntasks %d/%d (%.0f%%)  avg condition %.1f  time %dm  carried over %d\n",
		s.TaskCompleted, s.TaskTotal, s.CompletionRate*100,
		s.AvgCondition, s.TotalActualMin, s.CarriedOver)
}
