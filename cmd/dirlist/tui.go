package main

import (
	"fmt"

	"github.com/michaelscutari/dirlist/internal/scan"
	"github.com/michaelscutari/dirlist/internal/tui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse an index interactively",
	Long:  `Open an interactive TUI to browse inventory records and diagnostics.`,
	RunE:  runTUI,
}

var tuiDB string

func init() {
	tuiCmd.Flags().StringVarP(&tuiDB, "db", "d", "", "Path to index file")
}

func runTUI(cmd *cobra.Command, args []string) error {
	database, err := openIndex(tuiDB)
	if err != nil {
		return err
	}
	defer database.Close()

	model := tui.NewModel(database, scan.DefaultOptions().Formatter().Format)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
