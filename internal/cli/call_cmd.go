package cli

import (
	"context"
	"fmt"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/spf13/cobra"
)

func newCallCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Log phone calls against a day's report",
	}

	cmd.AddCommand(
		newCallLogCmd(app),
		newCallListCmd(app),
	)

	return cmd
}

func newCallLogCmd(app *App) *cobra.Command {
	var date, caller, subject, memo string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a phone call",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rep, err := app.Reports.GetByDate(ctx, dateOrToday(date))
			if err != nil {
				return err
			}
			call := &domain.PhoneCall{
				ReportID: rep.ID,
				Caller:   caller,
				Subject:  subject,
				Memo:     memo,
			}
			if err := app.PhoneCalls.Log(ctx, call); err != nil {
				return err
			}
			fmt.Printf("Logged call from %s (%s)\n", call.Caller, shortID(call.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&caller, "from", "", "Caller name")
	cmd.Flags().StringVar(&subject, "subject", "", "Call subject")
	cmd.Flags().StringVar(&memo, "memo", "", "Free-form memo")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newCallListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's phone calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rep, err := app.Reports.GetByDate(ctx, dateOrToday(date))
			if err != nil {
				return err
			}
			calls, err := app.PhoneCalls.ListByReport(ctx, rep.ID)
			if err != nil {
				return err
			}
			if len(calls) == 0 {
				fmt.Println(styleDim.Render("no calls"))
				return nil
			}
			rows := make([][]string, 0, len(calls))
			for _, c := range calls {
				rows = append(rows, []string{
					c.ReceivedAt.Format("15:04"),
					c.Caller,
					c.Subject,
				})
			}
			fmt.Print(renderTable([]string{"TIME", "CALLER", "SUBJECT"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	return cmd
}
