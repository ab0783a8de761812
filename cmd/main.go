package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryan-cox/pointledger/internal/config"
	"github.com/bryan-cox/pointledger/internal/logging"
	"github.com/bryan-cox/pointledger/internal/store"
	"github.com/bryan-cox/pointledger/internal/tracker"
)

// errRejected is returned when the tracker refuses an operation.
var errRejected = errors.New("rejected")

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	configPath   string
	storeBackend string
	storePath    string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "pointledger",
		Short: "Track daily self-improvement tasks as a points score.",
		Long: `PointLedger turns checkbox habits, timed practice, job applications, protein and workouts
into a single daily score out of 100, and archives each day into a history for weekly views,
a yearly calendar and streak statistics.`,
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default is the user config dir).")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "Store backend: file, sqlite, redis or memory.")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "Path of the file or sqlite store.")
}

// --- Main Application Entry Point ---

func main() {
	Execute()
}

// --- Session Setup ---

// session is everything a command needs to read and change state.
type session struct {
	cfg       config.Config
	log       *zap.Logger
	store     store.Store
	persister *store.Persister
	tracker   *tracker.Tracker
}

// openSession loads config, opens the store and runs the startup rollover check.
func openSession(cmd *cobra.Command) (*session, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if storeBackend != "" {
		cfg.Store.Backend = storeBackend
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}

	log := logging.New(cfg.Log, os.Stderr)
	ctx := cmd.Context()
	s, err := store.Open(ctx, store.Options{
		Backend:       cfg.Store.Backend,
		Path:          cfg.Store.Path,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
		RedisPrefix:   cfg.Store.RedisPrefix,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("could not open %s store: %w", cfg.Store.Backend, err)
	}

	clock := tracker.SystemClock{}
	p := store.NewPersister(s, log)
	tr := tracker.New(
		tracker.LoadState(ctx, s, log, clock.Now()),
		tracker.WithClock(clock),
		tracker.WithLogger(log),
		tracker.WithSaver(p),
	)
	tr.CheckRollover()

	return &session{cfg: cfg, log: log, store: s, persister: p, tracker: tr}, nil
}

// Close flushes pending writes and releases the store.
func (s *session) Close() {
	s.persister.Close()
	if err := s.store.Close(); err != nil {
		s.log.Warn("store close failed", zap.Error(err))
	}
	_ = s.log.Sync()
}

// withSession wraps a command body with session setup and teardown.
func withSession(run func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		return run(cmd, args, s)
	}
}
