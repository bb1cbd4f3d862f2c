package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage the goal hierarchy",
	}

	cmd.AddCommand(
		newGoalAddCmd(app),
		newGoalListCmd(app),
		newGoalTreeCmd(app),
		newGoalUpdateCmd(app),
		newGoalRemoveCmd(app),
	)

	return cmd
}

func resolveGoalID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("goal ID is required")
	}
	goals, err := app.Goals.List(ctx, true)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, g := range goals {
		if g.ID == input {
			return g.ID, nil
		}
		if strings.HasPrefix(g.ID, input) {
			matches = append(matches, g.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("goal not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("goal ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newGoalAddCmd(app *App) *cobra.Command {
	var title, description, period, parent, target string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			g := &domain.Goal{
				Title:       title,
				Description: description,
				Period:      domain.GoalPeriod(period),
			}
			if parent != "" {
				parentID, err := resolveGoalID(ctx, app, parent)
				if err != nil {
					return err
				}
				g.ParentID = &parentID
			}
			if target != "" {
				t, err := time.Parse(domain.DateLayout, target)
				if err != nil {
					return fmt.Errorf("invalid target date %q: %w", target, err)
				}
				g.TargetDate = &t
			}

			if err := app.Goals.Create(ctx, g); err != nil {
				return err
			}
			fmt.Printf("Created goal %s (%s)\n", g.Title, shortID(g.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Goal title")
	cmd.Flags().StringVar(&description, "desc", "", "Goal description")
	cmd.Flags().StringVar(&period, "period", "weekly", "Period: yearly, monthly, weekly or daily")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent goal ID")
	cmd.Flags().StringVar(&target, "target", "", "Target date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := app.Goals.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Println(styleDim.Render("no goals"))
				return nil
			}
			rows := make([][]string, 0, len(goals))
			for _, g := range goals {
				rows = append(rows, []string{
					shortID(g.ID),
					g.Title,
					string(g.Period),
					string(g.Status),
					progressCell(g.ProgressRate),
				})
			}
			fmt.Print(renderTable([]string{"ID", "TITLE", "PERIOD", "STATUS", "PROGRESS"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include achieved and abandoned goals")
	return cmd
}

func newGoalTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the goal hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := app.Goals.Tree(context.Background())
			if err != nil {
				return err
			}
			if len(roots) == 0 {
				fmt.Println(styleDim.Render("no goals"))
				return nil
			}
			for _, root := range roots {
				printGoalNode(root, 0)
			}
			return nil
		},
	}
}

func printGoalNode(node *domain.GoalNode, depth int) {
	indent := strings.Repeat("  ", depth)
	g := node.Goal
	fmt.Printf("%s%s %s %s %s\n",
		indent,
		styleDim.Render(shortID(g.ID)),
		g.Title,
		styleBlue.Render(string(g.Period)),
		progressCell(g.ProgressRate),
	)
	for _, child := range node.Children {
		printGoalNode(child, depth+1)
	}
}

func newGoalUpdateCmd(app *App) *cobra.Command {
	var id, title, status string
	var progress int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, id)
			if err != nil {
				return err
			}
			g, err := app.Goals.GetByID(ctx, goalID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				g.Title = title
			}
			if cmd.Flags().Changed("status") {
				g.Status = domain.GoalStatus(status)
			}
			if cmd.Flags().Changed("progress") {
				g.ProgressRate = progress
			}

			if err := app.Goals.Update(ctx, g); err != nil {
				return err
			}
			fmt.Printf("Updated goal %s\n", shortID(g.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Goal ID or prefix")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&status, "status", "", "Status: active, achieved or abandoned")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress rate 0-100")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newGoalRemoveCmd(app *App) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a goal (children become roots)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, id)
			if err != nil {
				return err
			}
			if err := app.Goals.Delete(ctx, goalID); err != nil {
				return err
			}
			fmt.Printf("Deleted goal %s\n", shortID(goalID))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Goal ID or prefix")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
