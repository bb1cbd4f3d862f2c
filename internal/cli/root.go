package cli

import (
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/httpapi"
	"github.com/dogeja/blueprint/internal/service"
	"github.com/dogeja/blueprint/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Store       *store.DailyReportStore
	Reports     service.ReportService
	Tasks       service.TaskService
	Goals       service.GoalService
	PhoneCalls  service.PhoneCallService
	Reflections service.ReflectionService
	CarryOver   service.CarryOverService
	Summary     service.SummaryService

	// HTTP is the pre-wired API server run by "blueprint serve".
	HTTP *httpapi.Server

	// IsInteractive reports whether stdin is a terminal; interactive
	// prompts are skipped when it returns false.
	IsInteractive func() bool

	Log zerolog.Logger
}

// NewRootCmd creates the top-level "blueprint" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "blueprint",
		Short: "Daily report and goal tracker with task carry-over",
	}

	root.AddCommand(
		newReportCmd(app),
		newTaskCmd(app),
		newGoalCmd(app),
		newCallCmd(app),
		newReflectCmd(app),
		newCarryOverCmd(app),
		newSummaryCmd(app),
		newServeCmd(app),
		newTUICmd(app),
	)

	return root
}

// today returns the current wall-clock date in report format.
func today() string {
	return time.Now().Format(domain.DateLayout)
}

// dateOrToday normalizes an optional --date flag.
func dateOrToday(date string) string {
	if date == "" {
		return today()
	}
	return date
}
