package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
)

const columnWidth = 26

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")).Padding(0, 1).Width(columnWidth)
	activeHeader = headerStyle.Background(lipgloss.Color("4"))
	columnStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Width(columnWidth)
	activeColumn = columnStyle.BorderForeground(lipgloss.Color("4"))
	cardStyle    = lipgloss.NewStyle().Padding(0, 1)
	selectedCard = cardStyle.Reverse(true)
	heldCard     = cardStyle.Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	scoreHigh    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreLow     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpLine     = "←/→ column  ↑/↓ card  [/] step  space pick up  enter drop  1-9 jump  r reload  q quit"
)

func (m BoardModel) View() string {
	if m.loading && m.board == nil {
		return "Loading board...\n"
	}
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n\n" + dimStyle.Render("r retry  q quit") + "\n"
	}
	if m.board == nil {
		return ""
	}

	var sb strings.Builder
	title := m.title
	if title == "" {
		title = m.jobID
	}
	sb.WriteString(titleStyle.Render(title))
	if m.pending > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  saving %d...", m.pending)))
	}
	sb.WriteString("\n\n")

	cols := m.columns()
	rendered := make([]string, 0, len(cols))
	for ci, col := range cols {
		rendered = append(rendered, m.renderColumn(ci, col))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	sb.WriteString("\n")

	if m.notice != "" {
		style := noticeStyle
		if m.noticeErr {
			style = errorStyle
		}
		sb.WriteString(style.Render(m.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(helpLine))
	sb.WriteString("\n")
	return sb.String()
}

func (m BoardModel) renderColumn(ci int, col pipeline.Column) string {
	active := ci == m.col
	header := headerStyle
	box := columnStyle
	if active {
		header = activeHeader
		box = activeColumn
	}

	lines := []string{header.Render(fmt.Sprintf("%d. %s (%d)", ci+1, truncate(col.Stage, columnWidth-8), len(col.Cards)))}
	if len(col.Cards) == 0 {
		lines = append(lines, dimStyle.Render("  empty"))
	}
	for ri, card := range col.Cards {
		style := cardStyle
		switch {
		case m.holding != nil && m.holding.applicationID == card.ApplicationID:
			style = heldCard
		case active && ri == m.row:
			style = selectedCard
		}
		lines = append(lines, style.Render(truncate(displayName(card), columnWidth-8))+" "+renderScore(card.Score))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func renderScore(score *int) string {
	if score == nil {
		return dimStyle.Render("--")
	}
	text := fmt.Sprintf("%3d", *score)
	if *score >= pipeline.AutoAdvanceThreshold {
		return scoreHigh.Render(text)
	}
	return scoreLow.Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
