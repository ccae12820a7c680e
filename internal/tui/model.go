package tui

import (
	"database/sql"
	"strings"
	"time"

	"github.com/michaelscutari/dirlist/internal/db"
	"github.com/michaelscutari/dirlist/internal/entry"

	tea "github.com/charmbracelet/bubbletea"
)

// SortColumn represents the current sort field.
type SortColumn int

const (
	SortBySize SortColumn = iota
	SortByName
	SortByMtime
	SortByPath
)

func (s SortColumn) String() string {
	switch s {
	case SortByName:
		return "name"
	case SortByMtime:
		return "mtime"
	case SortByPath:
		return "path"
	default:
		return "size"
	}
}

// Model holds the TUI state.
type Model struct {
	db              *sql.DB
	allRecords      []entry.Record
	records         []entry.Record
	diagnostics     []string
	cursor          int
	diagCursor      int
	showDiagnostics bool
	sort            SortColumn
	width           int
	height          int
	scanMeta        *entry.ScanMeta
	filter          string
	filterActive    bool
	timeFormat      func(time.Time) string
	err             error
}

// NewModel creates a new TUI model. format renders record timestamps.
func NewModel(database *sql.DB, format func(time.Time) string) *Model {
	if format == nil {
		format = func(t time.Time) string { return t.Format("2006-01-02 15:04") }
	}
	return &Model{
		db:         database,
		sort:       SortBySize,
		timeFormat: format,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadInitialData
}

type dataLoadedMsg struct {
	scanMeta    *entry.ScanMeta
	records     []entry.Record
	diagnostics []string
	err         error
}

func (m *Model) loadInitialData() tea.Msg {
	meta, err := db.GetScanMeta(m.db)
	if err != nil {
		return dataLoadedMsg{err: err}
	}

	records, err := db.LoadRecords(m.db, m.sort.String(), 0)
	if err != nil {
		return dataLoadedMsg{err: err}
	}

	diagnostics, err := db.LoadDiagnostics(m.db, 0)
	if err != nil {
		return dataLoadedMsg{err: err}
	}

	return dataLoadedMsg{
		scanMeta:    meta,
		records:     records,
		diagnostics: diagnostics,
	}
}

type recordsLoadedMsg struct {
	records []entry.Record
	err     error
}

func (m *Model) loadRecords() tea.Cmd {
	sortBy := m.sort.String()
	return func() tea.Msg {
		records, err := db.LoadRecords(m.db, sortBy, 0)
		if err != nil {
			return recordsLoadedMsg{err: err}
		}
		return recordsLoadedMsg{records: records}
	}
}

func (m *Model) helpLine() string {
	if m.filterActive {
		return "Type to filter | Enter: apply | Esc: clear | q: quit"
	}
	if m.showDiagnostics {
		return "↑/↓ move | e: records | q: quit"
	}
	return "↑/↓ move | s/n/m/p: sort | /: filter | e: diagnostics | q: quit"
}

func (m *Model) setRecords(records []entry.Record) {
	m.allRecords = records
	m.applyFilter()
}

// applyFilter keeps records whose name or path contains the filter,
// ignoring case.
func (m *Model) applyFilter() {
	if m.filter == "" {
		m.records = m.allRecords
	} else {
		filtered := make([]entry.Record, 0, len(m.allRecords))
		needle := strings.ToLower(m.filter)
		for _, r := range m.allRecords {
			if strings.Contains(strings.ToLower(r.Name), needle) ||
				strings.Contains(strings.ToLower(r.Path), needle) {
				filtered = append(filtered, r)
			}
		}
		m.records = filtered
	}
	m.cursor = 0
}

// rows returns the length of the active list and a pointer to its cursor.
func (m *Model) rows() (int, *int) {
	if m.showDiagnostics {
		return len(m.diagnostics), &m.diagCursor
	}
	return len(m.records), &m.cursor
}
