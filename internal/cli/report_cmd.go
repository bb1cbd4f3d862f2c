package cli

import (
	"context"
	"fmt"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Manage daily reports",
	}

	cmd.AddCommand(
		newReportShowCmd(app),
		newReportSaveCmd(app),
		newReportListCmd(app),
		newReportRemoveCmd(app),
	)

	return cmd
}

func newReportShowCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day's report with its tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dateOrToday(date)
			rep, err := app.Reports.GetByDate(context.Background(), d)
			if err != nil {
				return err
			}
			printReport(rep)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	return cmd
}

func printReport(rep *domain.DailyReport) {
	hours := "-"
	if rep.WorkStart != "" || rep.WorkEnd != "" {
		hours = fmt.Sprintf("%s - %s", rep.WorkStart, rep.WorkEnd)
	}
	fmt.Printf("%s  condition %s  hours %s  %s\n",
		styleHeader.Render(rep.Date), conditionCell(rep.Condition), hours, rep.Location)

	if len(rep.Tasks) == 0 {
		fmt.Println(styleDim.Render("no tasks"))
		return
	}

	rows := make([][]string, 0, len(rep.Tasks))
	for _, t := range rep.Tasks {
		rows = append(rows, []string{
			shortID(t.ID),
			t.Title,
			string(t.Category),
			statusStyle(t.Status).Render(string(t.Status)),
			progressCell(t.ProgressRate),
		})
	}
	fmt.Print(renderTable([]string{"ID", "TITLE", "CATEGORY", "STATUS", "PROGRESS"}, rows))
}

func newReportSaveCmd(app *App) *cobra.Command {
	var date, workStart, workEnd, location string
	var condition int

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update a day's report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := &domain.DailyReport{
				Date:      dateOrToday(date),
				Condition: condition,
				WorkStart: workStart,
				WorkEnd:   workEnd,
				Location:  location,
			}
			if err := app.Reports.Save(context.Background(), rep); err != nil {
				return err
			}
			fmt.Printf("Saved report for %s\n", rep.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&condition, "condition", 3, "Condition score 1-5")
	cmd.Flags().StringVar(&workStart, "start", "", "Work start time (HH:MM)")
	cmd.Flags().StringVar(&workEnd, "end", "", "Work end time (HH:MM)")
	cmd.Flags().StringVar(&location, "location", "", "Work location")
	return cmd
}

func newReportListCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := app.Reports.ListRange(context.Background(), from, to)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Println(styleDim.Render("no reports in range"))
				return nil
			}
			rows := make([][]string, 0, len(reports))
			for _, r := range reports {
				rows = append(rows, []string{
					r.Date,
					conditionCell(r.Condition),
					r.Location,
				})
			}
			fmt.Print(renderTable([]string{"DATE", "CONDITION", "LOCATION"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newReportRemoveCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a day's report and everything under it",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dateOrToday(date)
			if err := app.Reports.Delete(context.Background(), d); err != nil {
				return err
			}
			fmt.Printf("Deleted report for %s\n", d)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	return cmd
}
