package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/service"
	"github.com/spf13/cobra"
)

func newCarryOverCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carryover",
		Short: "Reconcile yesterday's unfinished tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCarryOverPrompt(app)
		},
	}

	cmd.AddCommand(
		newCarryOverMoveCmd(app),
		newCarryOverDismissCmd(app),
	)

	return cmd
}

// runCarryOverPrompt evaluates today's candidates and, on an interactive
// terminal, presents a multi-select form. Non-interactive invocations print
// the candidates and leave the decision to the move/dismiss subcommands.
func runCarryOverPrompt(app *App) error {
	ctx := context.Background()
	date := today()

	set, err := app.Store.EvaluateCarryOver(ctx, date)
	if err != nil {
		return err
	}
	if set.Empty() {
		fmt.Println(styleDim.Render("nothing to carry over"))
		return nil
	}

	if app.IsInteractive == nil || !app.IsInteractive() {
		printCandidates(set)
		fmt.Println(styleDim.Render("run 'blueprint carryover move --id ...' or 'blueprint carryover dismiss'"))
		return nil
	}

	options := make([]huh.Option[string], 0, len(set.All()))
	for _, t := range set.Continuous {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%s (continuous, %d%%)", t.Title, t.ProgressRate), t.ID).Selected(true))
	}
	for _, t := range set.ShortTerm {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%s (short-term, %d%%)", t.Title, t.ProgressRate), t.ID))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Carry over which tasks from yesterday?").
				Options(options...).
				Value(&selected),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	if len(selected) == 0 {
		if err := app.Store.DismissCarryOver(ctx); err != nil {
			return err
		}
		fmt.Println("Dismissed; yesterday's tasks stay where they are.")
		return nil
	}

	result, err := app.Store.AcceptCarryOverSelection(ctx, selected)
	if err != nil {
		return err
	}
	reportMoveResult(result)
	return nil
}

func printCandidates(set service.CandidateSet) {
	rows := make([][]string, 0, len(set.All()))
	for _, t := range set.All() {
		rows = append(rows, []string{
			shortID(t.ID),
			t.Title,
			string(t.Category),
			progressCell(t.ProgressRate),
		})
	}
	fmt.Print(renderTable([]string{"ID", "TITLE", "CATEGORY", "PROGRESS"}, rows))
}

func reportMoveResult(result *service.MoveResult) {
	for _, t := range result.Moved {
		fmt.Printf("%s %s\n", styleGreen.Render("moved"), t.Title)
	}
	for _, f := range result.Failed {
		fmt.Printf("%s %s: %v\n", styleRed.Render("failed"), shortID(f.TaskID), f.Err)
	}
	if !result.FullSuccess() {
		fmt.Println(styleDim.Render("failed tasks can be retried; the day stays unresolved"))
	}
}

func newCarryOverMoveCmd(app *App) *cobra.Command {
	var date string
	var ids []string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move selected tasks into a date's report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d := dateOrToday(date)

			resolved := make([]string, 0, len(ids))
			for _, id := range ids {
				full, err := resolveCandidateID(ctx, app, d, id)
				if err != nil {
					return err
				}
				resolved = append(resolved, full)
			}

			result, err := app.CarryOver.ResolveBySelectionMove(ctx, resolved, d)
			if err != nil {
				return err
			}
			reportMoveResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Target date (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVar(&ids, "id", nil, "Task IDs or prefixes to move (repeatable)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// resolveCandidateID matches a full or prefixed id against the date's
// carry-over candidates.
func resolveCandidateID(ctx context.Context, app *App, date, input string) (string, error) {
	set, err := app.CarryOver.FindIncompleteTasks(ctx, date)
	if err != nil {
		return "", err
	}

	var matches []*domain.Task
	for _, t := range set.All() {
		if t.ID == input {
			return t.ID, nil
		}
		if len(input) > 0 && len(t.ID) >= len(input) && t.ID[:len(input)] == input {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no carry-over candidate matches %q", input)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("candidate ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newCarryOverDismissCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "dismiss",
		Short: "Dismiss the carry-over prompt for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dateOrToday(date)
			if err := app.CarryOver.ResolveByDismissal(context.Background(), d); err != nil {
				return err
			}
			fmt.Printf("Dismissed carry-over for %s\n", d)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Target date (YYYY-MM-DD, default today)")
	return cmd
}
