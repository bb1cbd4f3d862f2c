// Package httpapi exposes the daily report workflow over a JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dogeja/blueprint/internal/domain"
	"github.com/dogeja/blueprint/internal/repository"
	"github.com/dogeja/blueprint/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Services bundles everything the handlers need.
type Services struct {
	Reports     service.ReportService
	Tasks       service.TaskService
	Goals       service.GoalService
	PhoneCalls  service.PhoneCallService
	Reflections service.ReflectionService
	CarryOver   service.CarryOverService
	Summary     service.SummaryService
}

// Config holds the listener settings.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Server wraps echo with the application's routes and middleware.
type Server struct {
	echo   *echo.Echo
	svcs   Services
	log    zerolog.Logger
	config Config
}

func NewServer(svcs Services, log zerolog.Logger, cfg Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			log.Info().
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("http request")

			return err
		}
	})

	s := &Server{echo: e, svcs: svcs, log: log, config: cfg}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")

	v1.GET("/reports", s.handleListReports)
	v1.GET("/reports/:date", s.handleGetReport)
	v1.PUT("/reports/:date", s.handleSaveReport)
	v1.DELETE("/reports/:date", s.handleDeleteReport)

	v1.POST("/reports/:date/tasks", s.handleCreateTask)
	v1.PUT("/reports/:date/tasks/order", s.handleReorderTasks)
	v1.PATCH("/tasks/:id", s.handleUpdateTask)
	v1.POST("/tasks/:id/complete", s.handleCompleteTask)
	v1.DELETE("/tasks/:id", s.handleDeleteTask)

	v1.GET("/goals", s.handleListGoals)
	v1.GET("/goals/tree", s.handleGoalTree)
	v1.POST("/goals", s.handleCreateGoal)
	v1.GET("/goals/:id", s.handleGetGoal)
	v1.GET("/goals/:id/children", s.handleGoalChildren)
	v1.PATCH("/goals/:id", s.handleUpdateGoal)
	v1.DELETE("/goals/:id", s.handleDeleteGoal)

	v1.GET("/reports/:date/calls", s.handleListPhoneCalls)
	v1.POST("/reports/:date/calls", s.handleLogPhoneCall)
	v1.DELETE("/calls/:id", s.handleDeletePhoneCall)

	v1.GET("/reports/:date/reflections", s.handleListReflections)
	v1.POST("/reports/:date/reflections", s.handleAddReflection)
	v1.PATCH("/reflections/:id", s.handleUpdateReflection)
	v1.DELETE("/reflections/:id", s.handleDeleteReflection)

	v1.GET("/carryover/:date", s.handleCarryOverCandidates)
	v1.POST("/carryover/:date/move", s.handleCarryOverMove)
	v1.POST("/carryover/:date/dismiss", s.handleCarryOverDismiss)

	v1.GET("/summary/week", s.handleWeekSummary)
	v1.GET("/summary/month", s.handleMonthSummary)
	v1.GET("/summary/range", s.handleRangeSummary)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// apiError maps service errors onto HTTP status codes.
func apiError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidDate):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoSelection):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyResolved):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.config.Addr).Msg("starting http server")
	return s.echo.Start(s.config.Addr)
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}
	return s.echo.Shutdown(ctx)
}
