package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitspan/gitspan/internal/report"
	"github.com/gitspan/gitspan/internal/util"
)

var (
	// Logging related
	debug bool

	// Time window
	since string
	until string

	// Output related
	outputFormat string
	timezone     string

	// Filtering
	author string

	rootCmd = &cobra.Command{
		Use:   "gitspan [flags] <repository>...",
		Short: "Multi-repository commit history reporting tool",
		Long: `gitspan aggregates commit history across multiple local repositories.

It walks every local branch of each repository, filters commits by an
inclusive time window and an optional author substring, merges everything
into one chronologically ordered report, and prints it to stdout.

Examples:
  gitspan ~/src/app ~/src/lib                      # Full history of two repositories
  gitspan --since 2024-01-01 ~/src/app             # Commits since Jan 1st (UTC midnight)
  gitspan --until 2024-06-30T18:00:00Z ~/src/app   # Commits up to and including an instant
  gitspan --format daily ~/src/app                 # Group commits by calendar date
  gitspan --author alice ~/src/app ~/src/lib       # Only commits whose author matches`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          runReport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

const defaultLogFile = "~/.gitspan/logs/app.log"

func init() {
	// Time filtering
	rootCmd.Flags().StringVar(&since, "since", "",
		"Lower bound, inclusive (RFC 3339 or YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&until, "until", "",
		"Upper bound, inclusive (RFC 3339 or YYYY-MM-DD)")

	// Filtering
	rootCmd.Flags().StringVarP(&author, "author", "a", "",
		"Keep only commits whose author contains this substring")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "flat",
		"Output format (flat, daily)")
	rootCmd.Flags().StringVar(&timezone, "timezone", "UTC",
		"Timezone for rendered dates (e.g., UTC, Local, Asia/Shanghai)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runReport(cmd *cobra.Command, args []string) error {
	initLogging()

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return err
	}

	config := &report.Config{
		Repositories: args,
		Since:        since,
		Until:        until,
		Format:       outputFormat,
		Author:       author,
		Timezone:     timezone,
		Concurrency:  runtime.NumCPU(),
	}

	return report.New(config).Run()
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
