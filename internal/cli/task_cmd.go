package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage a report's tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskReorderCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

// resolveTaskID matches a full or prefixed task id within a date's report.
func resolveTaskID(ctx context.Context, app *App, date, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	rep, err := app.Reports.GetByDate(ctx, date)
	if err != nil {
		return "", err
	}
	tasks, err := app.Tasks.ListByReport(ctx, rep.ID)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var date, title, description, category, goalID string
	var priority, estimatedMin int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a day's report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d := dateOrToday(date)

			if category != "" && !domain.ValidTaskCategories[category] {
				return fmt.Errorf("unknown category %q (continuous or short_term)", category)
			}

			rep, err := app.Reports.GetByDate(ctx, d)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					return err
				}
				rep = &domain.DailyReport{Date: d}
				if err := app.Reports.Save(ctx, rep); err != nil {
					return err
				}
			}

			t := &domain.Task{
				ReportID:     rep.ID,
				Title:        title,
				Description:  description,
				Category:     domain.TaskCategory(category),
				Priority:     priority,
				EstimatedMin: estimatedMin,
			}
			if goalID != "" {
				t.GoalID = &goalID
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Added task %s (%s)\n", t.Title, shortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&category, "category", "", "Task category (continuous or short_term)")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority 1-5")
	cmd.Flags().IntVar(&estimatedMin, "estimate", 0, "Estimated minutes")
	cmd.Flags().StringVar(&goalID, "goal", "", "Linked goal ID")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := app.Reports.GetByDate(context.Background(), dateOrToday(date))
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

func newTaskUpdateCmd(app *App) *cobra.Command {
	var date, id, title, status string
	var progress, actualMin int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a task's fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, dateOrToday(date), id)
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				t.Title = title
			}
			if cmd.Flags().Changed("progress") {
				if progress < 0 || progress > 100 {
					return fmt.Errorf("progress must be 0-100")
				}
				t.ProgressRate = progress
			}
			if cmd.Flags().Changed("status") {
				t.Status = domain.TaskStatus(status)
			}
			if cmd.Flags().Changed("actual") {
				t.ActualMin = actualMin
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", shortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&id, "id", "", "Task ID or prefix")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress rate 0-100")
	cmd.Flags().StringVar(&status, "status", "", "Task status")
	cmd.Flags().IntVar(&actualMin, "actual", 0, "Actual minutes spent")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var date, id string

	cmd := &cobra.Command{
		Use:   "done",
		Short: "Mark a task complete",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, dateOrToday(date), id)
			if err != nil {
				return err
			}
			if err := app.Tasks.Complete(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Completed task %s\n", shortID(taskID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&id, "id", "", "Task ID or prefix")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTaskReorderCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reorder ID...",
		Short: "Rewrite the display order of a day's tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d := dateOrToday(date)

			rep, err := app.Reports.GetByDate(ctx, d)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(args))
			for _, arg := range args {
				id, err := resolveTaskID(ctx, app, d, arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			if err := app.Tasks.Reorder(ctx, rep.ID, ids); err != nil {
				return err
			}
			fmt.Printf("Reordered %d tasks\n", len(ids))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var date, id string

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, dateOrToday(date), id)
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Deleted task %s\n", shortID(taskID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&id, "id", "", "Task ID or prefix")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
