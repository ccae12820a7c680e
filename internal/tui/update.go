package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.scanMeta = msg.scanMeta
		m.diagnostics = msg.diagnostics
		m.filter = ""
		m.filterActive = false
		m.setRecords(msg.records)
		return m, nil

	case recordsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setRecords(msg.records)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterActive {
		switch msg.String() {
		case "enter":
			m.filterActive = false
			return m, nil

		case "esc":
			m.filterActive = false
			m.filter = ""
			m.applyFilter()
			return m, nil

		case "backspace":
			if len(m.filter) > 0 {
				runes := []rune(m.filter)
				m.filter = string(runes[:len(runes)-1])
				m.applyFilter()
			}
			return m, nil

		case "ctrl+c":
			return m, tea.Quit
		}

		if msg.Type == tea.KeyRunes {
			m.filter += msg.String()
			m.applyFilter()
			return m, nil
		}

		return m, nil
	}

	n, cursor := m.rows()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if *cursor > 0 {
			*cursor--
		}
		return m, nil

	case "down", "j":
		if *cursor < n-1 {
			*cursor++
		}
		return m, nil

	case "home", "g":
		*cursor = 0
		return m, nil

	case "end", "G":
		if n > 0 {
			*cursor = n - 1
		}
		return m, nil

	case "pgup":
		*cursor = max(*cursor-10, 0)
		return m, nil

	case "pgdown":
		*cursor = max(min(*cursor+10, n-1), 0)
		return m, nil

	case "e":
		m.showDiagnostics = !m.showDiagnostics
		return m, nil
	}

	if m.showDiagnostics {
		return m, nil
	}

	switch msg.String() {
	case "s":
		m.sort = SortBySize
		return m, m.loadRecords()

	case "n":
		m.sort = SortByName
		return m, m.loadRecords()

	case "m":
		m.sort = SortByMtime
		return m, m.loadRecords()

	case "p":
		m.sort = SortByPath
		return m, m.loadRecords()

	case "/":
		m.filterActive = true
		return m, nil
	}

	return m, nil
}
