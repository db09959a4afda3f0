// Package cmd implements the CLI command structure for taskmanager.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/config"
	"github.com/nibzard/taskmanager-go/internal/logging"
	"github.com/nibzard/taskmanager-go/internal/task"
	"github.com/nibzard/taskmanager-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskmanager CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskmanager", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "update":
		return updateCommand(cfg, remainingArgs)
	case "delete", "rm":
		return deleteCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newLogger returns the stderr logger of CLI subcommands.
func newLogger(cfg *config.Config) *log.Logger {
	return logging.NewFromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// openStore opens the configured task store, creating the data file and its
// directory when missing.
func openStore(cfg *config.Config, logger *log.Logger) (task.Store, error) {
	if cfg.DataFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DataFile), 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	opts := append(cfg.StoreOptions(), task.WithLogger(logger))
	s, err := task.Open(cfg.BackendKind(), cfg.DataFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
	}
	return s, nil
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskmanager tui", flag.ContinueOnError)
	view := fs.String("view", cfg.View, "Initial view: buttons, columns, rows or chart")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	// The terminal belongs to the TUI, so logs go to a session file.
	session, err := logging.NewSession(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("creating log session: %w", err)
	}
	defer session.Close()
	logger := logging.NewFromConfig(session.Writer(), cfg.LogLevel, cfg.LogFormat, true, cfg.LogCaller)
	logger.Info("session started", "backend", cfg.Backend, "data", cfg.DataFile)

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := ui.Options{
		Store:  store,
		Logger: logger,
		View:   *view,
	}
	if cfg.Watch {
		opts.WatchPath = store.Path()
	}
	if err := ui.Run(ctx, opts); err != nil {
		logger.Error("tui stopped", "err", err)
		return err
	}
	logger.Info("session ended")
	return nil
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskmanager config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}
	cws.Print(os.Stdout)
	return nil
}

// tailCommand tails the latest TUI session log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskmanager tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}

	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	err = logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
	if *follow && ctx.Err() != nil {
		return nil
	}
	return err
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskmanager version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Task Manager - one task list, four synchronized views")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskmanager [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                               Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  ls                                List tasks")
	fmt.Fprintln(w, "  add <title> [priority]            Add a task (priority 1-5, default 5)")
	fmt.Fprintln(w, "  update <number> <title> <priority> Replace a task")
	fmt.Fprintln(w, "  delete <number>                   Delete a task")
	fmt.Fprintln(w, "  init                              Create the data, schema and config files")
	fmt.Fprintln(w, "  config                            Show the effective configuration")
	fmt.Fprintln(w, "  tail                              Tail the latest TUI session log")
	fmt.Fprintln(w, "  version                           Show version information")
	fmt.Fprintln(w, "  help                              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task numbers are the ones printed by ls, starting at 1.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options:")
	fmt.Fprintln(w, "  -view string")
	fmt.Fprintln(w, "        Initial view: buttons, columns, rows or chart")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -sort string")
	fmt.Fprintln(w, "        Order by: index, priority, title or modified (default index)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options:")
	fmt.Fprintln(w, "  -force        Overwrite existing files")
	fmt.Fprintln(w, "  -skip-config  Do not write the config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
