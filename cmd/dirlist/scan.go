package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/michaelscutari/dirlist/internal/config"
	"github.com/michaelscutari/dirlist/internal/pathutil"
	"github.com/michaelscutari/dirlist/internal/scan"
	"github.com/michaelscutari/dirlist/internal/snapshot"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory and write the inventory report",
	Long: `Scan a directory tree and write <name>.txt with one line per regular
file, plus errors_parsing_<name>.txt listing every path that was skipped or
could not be read. With --index the inventory is also stored in a SQLite
snapshot for the info, query and tui commands.`,
	RunE: runScan,
}

var (
	scanRoot       string
	scanOut        string
	scanWorkers    int
	scanUTC        bool
	scanTimeLayout string
	scanIndex      bool
	scanRetention  int
	scanEnv        string
	scanProgress   time.Duration
)

func init() {
	bindScanFlags(scanCmd)
}

func bindScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scanRoot, "basepath", "b", "", "Directory to inventory (required)")
	cmd.Flags().StringVarP(&scanOut, "outputpath", "o", "", "Output directory (default: current directory)")
	cmd.Flags().IntVarP(&scanWorkers, "workers", "w", 0, "Number of attribute reader goroutines (default: number of CPUs)")
	cmd.Flags().BoolVar(&scanUTC, "utc", false, "Format timestamps in UTC instead of the local zone")
	cmd.Flags().StringVar(&scanTimeLayout, "time-layout", "", "Go time layout for timestamps (default \"1/2/06, 3:04 PM\")")
	cmd.Flags().BoolVar(&scanIndex, "index", false, "Also write a SQLite index snapshot")
	cmd.Flags().IntVar(&scanRetention, "retention", 5, "Number of index snapshots to retain (0 = unlimited)")
	cmd.Flags().StringVar(&scanEnv, "env", config.DefaultFile, "Config file with DIRLIST_* settings")
	cmd.Flags().DurationVar(&scanProgress, "progress-interval", 30*time.Second, "Emit progress lines to stderr at this interval when not a TTY (0 to disable)")
	cmd.MarkFlagRequired("basepath")
}

// loadScanConfig reads the config file and applies explicitly set flags on top.
func loadScanConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(scanEnv)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("outputpath") {
		cfg.OutputDir = scanOut
	}
	if flags.Changed("workers") {
		if scanWorkers < 1 {
			return nil, fmt.Errorf("invalid --workers %d: must be a positive integer", scanWorkers)
		}
		cfg.Workers = scanWorkers
	}
	if flags.Changed("utc") {
		cfg.UTC = scanUTC
	}
	if flags.Changed("time-layout") {
		cfg.TimeLayout = scanTimeLayout
	}
	if flags.Changed("index") {
		cfg.Index = scanIndex
	}
	if flags.Changed("retention") {
		cfg.Retention = scanRetention
	}
	if rootVerbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadScanConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		setupLogging(true)
	}

	root, err := pathutil.Sanitize(scanRoot)
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}
	if _, err := snapshot.ResolveRoot(root); err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		if outDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to resolve output path: %w", err)
		}
	}
	if outDir, err = pathutil.Sanitize(outDir); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	opts := scan.DefaultOptions().
		WithWorkers(cfg.Workers).
		WithTimeLayout(cfg.TimeLayout)
	if cfg.UTC {
		opts.WithLocation(time.UTC)
	}

	base := pathutil.BaseName(root)
	fmt.Printf("Writing directory contents to: %s\n", filepath.Join(outDir, pathutil.ReportFileName(base)))
	fmt.Printf("Writing error logs to: %s\n", filepath.Join(outDir, pathutil.ErrorFileName(base)))

	mgr := snapshot.NewManager(outDir, cfg.Retention)
	mgr.SetIndex(cfg.Index)
	mgr.SetLogger(slog.Default())

	// Cancellation only reaches the index stage; the report always completes.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nCanceling... (press Ctrl+C again to force)")
		cancel()
		<-sigCh
		os.Exit(130)
	}()

	startTime := time.Now()
	progress := newProgressDisplay(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()), startTime, scanProgress)
	mgr.SetStderr(progress)
	mgr.SetProgressFunc(progress.update)
	mgr.SetStageFunc(progress.setStage)
	progress.start()

	res, err := mgr.RunScan(ctx, root, opts)
	progress.stop()

	if err != nil {
		if errors.Is(err, context.Canceled) && res != nil {
			fmt.Fprintln(os.Stderr, "Index canceled; report was written.")
			return nil
		}
		color.New(color.FgRed).Println("Operation failed.")
		return err
	}

	color.New(color.FgGreen).Println("Operation completed successfully.")

	slog.Debug("scan finished", "elapsed", time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Files:       %s\n", humanize.Comma(res.Files))
	fmt.Printf("  Total size:  %s\n", humanize.Bytes(res.TotalSize))
	if res.Diagnostics > 0 {
		fmt.Printf("  Diagnostics: %s\n", color.New(color.FgYellow).Sprint(humanize.Comma(res.Diagnostics)))
	}
	if res.IndexPath != "" {
		fmt.Printf("  Index:       %s\n", res.IndexPath)
	}
	fmt.Printf("  Elapsed:     %s\n", time.Since(startTime).Round(time.Millisecond))

	return nil
}
