package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmhobbs/concord/internal/result"
)

// pagerModel scrolls a passage in a full-screen viewport.
type pagerModel struct {
	title    string
	content  string
	styles   Styles
	viewport viewport.Model
	ready    bool
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.viewport.View(), m.footerView())
}

func (m pagerModel) headerView() string {
	return m.styles.Header.Render(m.title)
}

func (m pagerModel) footerView() string {
	pct := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
	return m.styles.Dim.Render(pct + "  ↑/↓ scroll · q quit")
}

// passageContent renders a result set for the pager, one verse per
// paragraph with the verse number as a leading marker.
func passageContent(set *result.Set, styles Styles) string {
	var sb strings.Builder
	lastChapter := -1
	for _, v := range set.Verses {
		if v.Ref.Chapter != lastChapter {
			if lastChapter != -1 {
				sb.WriteString("\n")
			}
			sb.WriteString(styles.Header.Render(
				fmt.Sprintf("%s %d", v.Ref.Book, v.Ref.Chapter)))
			sb.WriteString("\n\n")
			lastChapter = v.Ref.Chapter
		}
		sb.WriteString(styles.Rank.Render(fmt.Sprintf("%d ", v.Ref.Verse)))
		sb.WriteString(styles.Text.Render(v.Text))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Page opens set in an interactive full-screen pager. Title is shown
// in the header, usually the reference the passage was resolved from.
func Page(title string, set *result.Set, styles Styles) error {
	m := pagerModel{
		title:   title,
		content: passageContent(set, styles),
		styles:  styles,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
