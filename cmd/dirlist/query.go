package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/michaelscutari/dirlist/internal/db"
	"github.com/michaelscutari/dirlist/internal/scan"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query an index non-interactively",
	Long:  `List records or diagnostics from an index snapshot for scripting.`,
	RunE:  runQuery,
}

var (
	queryDB     string
	querySort   string
	queryLimit  int
	queryErrors bool
)

func init() {
	queryCmd.Flags().StringVarP(&queryDB, "db", "d", "", "Path to index file")
	queryCmd.Flags().StringVarP(&querySort, "sort", "s", "size", "Sort by: size, name, mtime, path")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 20, "Maximum number of results (0 = all)")
	queryCmd.Flags().BoolVar(&queryErrors, "errors", false, "List diagnostics instead of records")
}

func runQuery(cmd *cobra.Command, args []string) error {
	switch querySort {
	case "size", "name", "mtime", "path":
	default:
		return fmt.Errorf("invalid sort %q (expected size|name|mtime|path)", querySort)
	}

	database, err := openIndex(queryDB)
	if err != nil {
		return err
	}
	defer database.Close()

	if queryErrors {
		messages, err := db.LoadDiagnostics(database, queryLimit)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		for _, msg := range messages {
			fmt.Println(msg)
		}
		return nil
	}

	records, err := db.LoadRecords(database, querySort, queryLimit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	format := scan.DefaultOptions().Formatter().Format
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SIZE\tMODIFIED\tPATH\n")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			humanize.Bytes(r.Size),
			format(r.Modified),
			r.Path,
		)
	}
	w.Flush()

	return nil
}
