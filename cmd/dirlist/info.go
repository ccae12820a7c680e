package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/michaelscutari/dirlist/internal/db"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display scan metadata",
	Long:  `Print metadata about an index snapshot including timestamps and statistics.`,
	RunE:  runInfo,
}

var infoDB string

func init() {
	infoCmd.Flags().StringVarP(&infoDB, "db", "d", "", "Path to index file")
}

func runInfo(cmd *cobra.Command, args []string) error {
	database, err := openIndex(infoDB)
	if err != nil {
		return err
	}
	defer database.Close()

	meta, err := db.GetScanMeta(database)
	if err != nil {
		return fmt.Errorf("failed to read scan metadata: %w", err)
	}

	fmt.Printf("Scan Information\n")
	fmt.Printf("================\n\n")
	fmt.Printf("Scan ID:      %s\n", meta.ScanID)
	fmt.Printf("Root Path:    %s\n", meta.RootPath)
	fmt.Printf("Start Time:   %s\n", meta.StartTime.Format(time.RFC3339))
	if !meta.EndTime.IsZero() {
		fmt.Printf("End Time:     %s\n", meta.EndTime.Format(time.RFC3339))
		fmt.Printf("Duration:     %s\n", meta.EndTime.Sub(meta.StartTime).Round(time.Millisecond))
	}
	fmt.Printf("\nStatistics\n")
	fmt.Printf("----------\n")
	fmt.Printf("Files:        %s\n", humanize.Comma(meta.FileCount))
	fmt.Printf("Total Size:   %s\n", humanize.Bytes(uint64(meta.TotalSize)))
	if meta.ErrorCount > 0 {
		fmt.Printf("Diagnostics:  %s\n", humanize.Comma(meta.ErrorCount))
	}

	return nil
}
