package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gitspan/gitspan/internal/presentation/formatter"
	"github.com/gitspan/gitspan/internal/report"
	"github.com/gitspan/gitspan/internal/util"
	"github.com/gitspan/gitspan/internal/watch"
)

var (
	// Time window
	watchSince string
	watchUntil string

	// Output related
	watchFormat   string
	watchTimezone string

	// Filtering
	watchAuthor string

	// Refresh behavior
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <repository>...",
	Short: "Re-render the commit report whenever a repository changes",
	Long: `Renders the commit report and keeps it on screen, re-rendering whenever a
watched repository's branches move (new commits, branch creation, rebases).

Every refresh is a full recompute over the current repository state; nothing
is cached between renders. Press Ctrl+C to exit.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	// Time filtering
	watchCmd.Flags().StringVar(&watchSince, "since", "",
		"Lower bound, inclusive (RFC 3339 or YYYY-MM-DD)")
	watchCmd.Flags().StringVar(&watchUntil, "until", "",
		"Upper bound, inclusive (RFC 3339 or YYYY-MM-DD)")

	// Filtering
	watchCmd.Flags().StringVarP(&watchAuthor, "author", "a", "",
		"Keep only commits whose author contains this substring")

	// Output configuration
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "flat",
		"Output format (flat, daily)")
	watchCmd.Flags().StringVar(&watchTimezone, "timezone", "UTC",
		"Timezone for rendered dates (e.g., UTC, Local, Asia/Shanghai)")

	// Refresh behavior
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"Quiet period before re-rendering after a repository change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	initLogging()

	if err := util.InitializeTimeProvider(watchTimezone); err != nil {
		return err
	}

	// Validate the render mode before watching anything.
	f, err := formatter.New(watchFormat)
	if err != nil {
		return err
	}

	reporter := report.New(&report.Config{
		Repositories: args,
		Since:        watchSince,
		Until:        watchUntil,
		Format:       watchFormat,
		Author:       watchAuthor,
		Timezone:     watchTimezone,
		Concurrency:  runtime.NumCPU(),
	})

	watcher, err := watch.NewRepoWatcher(args)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	render := func() error {
		records, err := reporter.Collect()
		if err != nil {
			return err
		}

		width := terminalWidth()
		header := fmt.Sprintf("gitspan watch: %d repositories, updated %s",
			len(args), util.GetTimeProvider().Format(time.Now(), "15:04:05"))

		fmt.Print(util.ClearScreen + util.MoveCursorHome)
		fmt.Println(util.CenterText(header, width))
		fmt.Println(util.SectionSeparator(width))
		return f.Format(records)
	}

	fmt.Print(util.HideCursor)
	defer fmt.Print(util.ShowCursor)

	if err := render(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-watcher.Events():
			util.LogDebug(fmt.Sprintf("Repository change: %s (%s %s)", ev.Repository, ev.Operation, ev.Path))
			if err := waitQuiet(ctx, watcher, watchDebounce); err != nil {
				return nil
			}
			if err := render(); err != nil {
				return err
			}
		}
	}
}

// waitQuiet absorbs follow-up events until the debounce window passes with
// no further changes. A single commit touches several files under .git, so
// rendering on the first event would redraw multiple times per change.
func waitQuiet(ctx context.Context, watcher *watch.RepoWatcher, quiet time.Duration) error {
	timer := time.NewTimer(quiet)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-watcher.Events():
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(quiet)
		case <-timer.C:
			return nil
		}
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
