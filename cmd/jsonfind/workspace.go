package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taigrr/jsonfind/internal/config"
	"github.com/taigrr/jsonfind/internal/filesystem"
	"github.com/taigrr/jsonfind/internal/pathfilter"
	"github.com/taigrr/jsonfind/internal/search"
)

// workspace bundles the services a command runs against.
type workspace struct {
	root     string
	settings *config.Config
	logger   *slog.Logger
	files    *filesystem.Service
	search   *search.Service
}

// rootArg returns args[i] as an absolute path, or the working directory.
func rootArg(args []string, i int) (string, error) {
	if len(args) > i {
		root, err := filepath.Abs(args[i])
		if err != nil {
			return "", fmt.Errorf("failed to resolve workspace root: %w", err)
		}
		return root, nil
	}
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return root, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the settings file and applies explicitly set flags
// on top of it.
func loadSettings(cmd *cobra.Command, root string, logger *slog.Logger) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	if configPath == "" {
		configPath = config.Find(root)
	}

	settings := config.New()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
		logger.Debug("loaded settings", "path", configPath)
	}

	if flags.Changed("include") {
		settings.Include, _ = flags.GetStringSlice("include")
	}
	if flags.Changed("exclude") {
		settings.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("workers") {
		settings.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("limit") {
		settings.Limit, _ = flags.GetInt("limit")
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// openWorkspace prepares the document and search services for root.
func openWorkspace(cmd *cobra.Command, root string) (*workspace, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	settings, err := loadSettings(cmd, root, logger)
	if err != nil {
		return nil, err
	}

	pf := pathfilter.New(settings.PathFilter())
	files := filesystem.NewOS(root, pf, logger)

	return &workspace{
		root:     root,
		settings: settings,
		logger:   logger,
		files:    files,
		search: search.New(files, search.Options{
			Workers:      settings.Workers,
			DisplayWidth: settings.DisplayWidth,
			Logger:       logger,
		}),
	}, nil
}
