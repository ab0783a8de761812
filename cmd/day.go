package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryan-cox/pointledger/internal/clipboard"
	"github.com/bryan-cox/pointledger/internal/httpapi"
	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/report"
	"github.com/bryan-cox/pointledger/internal/ui"
)

var (
	copyToClipboard bool
	serveAddr       string

	todayCmd = &cobra.Command{
		Use:     "today",
		Aliases: []string{"status"},
		Short:   "Show today's score and per-task progress.",
		Args:    cobra.NoArgs,
		RunE:    withSession(runToday),
	}

	completeDayCmd = &cobra.Command{
		Use:   "complete-day",
		Short: "Archive today into the history now and start a fresh ledger.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runCompleteDay),
	}

	weekCmd = &cobra.Command{
		Use:   "week",
		Short: "Show the last seven archived days.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runWeek),
	}

	calendarCmd = &cobra.Command{
		Use:   "calendar",
		Short: "Show this year's heatmap.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runCalendar),
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics, streaks and trend.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runStats),
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Archive each day automatically at midnight until interrupted.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runWatch),
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for a local front end, with automatic rollover.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runServe),
	}
)

func init() {
	todayCmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Also copy the report to the clipboard.")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config).")

	rootCmd.AddCommand(todayCmd, completeDayCmd, weekCmd, calendarCmd, statsCmd, watchCmd, serveCmd)
}

func runToday(cmd *cobra.Command, _ []string, s *session) error {
	var buf bytes.Buffer
	report.PrintToday(&buf, s.tracker.Today())
	cmd.Print(buf.String())

	if copyToClipboard {
		if err := clipboard.CopyText(buf.String()); err != nil {
			s.log.Warn("could not copy report to clipboard", zap.Error(err))
			cmd.PrintErrln(ui.IconWarn + " Could not copy to clipboard: " + err.Error())
		} else {
			cmd.Println("Report copied to clipboard.")
		}
	}
	return nil
}

func runCompleteDay(cmd *cobra.Command, _ []string, s *session) error {
	entry := s.tracker.CompleteDay()
	cmd.Printf("%s Archived %s with %s points\n", ui.IconTrophy, entry.Date, ui.Points(entry.Points))
	return nil
}

func runWeek(cmd *cobra.Command, _ []string, s *session) error {
	report.PrintWeek(cmd.OutOrStdout(), s.tracker.History())
	return nil
}

func runCalendar(cmd *cobra.Command, _ []string, s *session) error {
	report.PrintCalendar(cmd.OutOrStdout(), s.tracker.History(), s.tracker.Now())
	return nil
}

func runStats(cmd *cobra.Command, _ []string, s *session) error {
	report.PrintStats(cmd.OutOrStdout(), s.tracker.History(), s.tracker.Now())
	return nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func announceArchive(cmd *cobra.Command) func(model.HistoryEntry) {
	return func(e model.HistoryEntry) {
		cmd.Printf("%s Archived %s with %s points\n", ui.IconCalendar, e.Date, ui.Points(e.Points))
	}
}

func runWatch(cmd *cobra.Command, _ []string, s *session) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	s.log.Info("watching for day rollover", zap.Duration("interval", s.cfg.Rollover.PollInterval))
	err := s.tracker.Watch(ctx, s.cfg.Rollover.PollInterval, announceArchive(cmd))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runServe(cmd *cobra.Command, _ []string, s *session) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	addr := s.cfg.HTTP.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	httpapi.Register(e, s.tracker, s.log)

	go func() {
		_ = s.tracker.Watch(ctx, s.cfg.Rollover.PollInterval, announceArchive(cmd))
	}()

	errc := make(chan error, 1)
	go func() {
		s.log.Info("serving", zap.String("addr", addr))
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not serve on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
