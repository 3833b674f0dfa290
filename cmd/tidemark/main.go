// cmd/tidemark/main.go
package main

import (
	"fmt"
	"io"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bethropolis/tidemark/internal/app"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/logger"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tidemark [file.md]",
		Short: "Tidemark - a terminal markdown note editor",
		Long: `Tidemark shows a markdown note rendered, and switches to a raw
editor with a shortcut, keeping your cursor between switches.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runEditor,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.DefineFlags(rootCmd.Flags())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tidemark version %s (%s)\n", version, commit)
			fmt.Printf("go version %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// runEditor is the default command: load config, start logging, run the UI.
func runEditor(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	configPath, err := flags.GetString(config.FlagConfig)
	if err != nil {
		return err
	}
	cfg, loadRes, err := config.LoadConfig(configPath, flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logOut, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOut)
	loadRes.Log()

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting with an empty note.")
	}

	logger.Infof("Starting tidemark %s...", version)
	tidemarkApp, err := app.NewApp(app.Options{FilePath: filePath, Config: cfg})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}
	if err := tidemarkApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}
	logger.Infof("tidemark finished.")
	return nil
}

// openLog opens the log destination. The terminal belongs to tcell, so
// "-" (stderr) is only useful when stderr is redirected.
func openLog(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		path = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening '%s': %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return config.DefaultLogFileName
	}
	return filepath.Join(dir, config.AppName, config.DefaultLogFileName)
}
