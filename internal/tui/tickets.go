package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aiutodesk/desk/internal/ticket"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle    = lipgloss.NewStyle().Bold(true)

	statusStyles = map[ticket.Status]lipgloss.Style{
		ticket.StatusOpen:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		ticket.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		ticket.StatusClosed:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

// ticketKeyMap defines the keyboard shortcuts for the ticket browser.
type ticketKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
	Quit key.Binding
}

var ticketKeys = ticketKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// TicketModel is the TUI state for the ticket browser: a selectable list
// with a per-ticket detail view.
type TicketModel struct {
	tickets  []ticket.Ticket
	cursor   int
	detail   bool
	quitting bool
	width    int
}

// NewTicketModel creates a browser over tickets.
func NewTicketModel(tickets []ticket.Ticket) *TicketModel {
	return &TicketModel{tickets: tickets}
}

// Init implements tea.Model.
func (m *TicketModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *TicketModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ticketKeys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, ticketKeys.Up):
			if !m.detail && m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, ticketKeys.Down):
			if !m.detail && m.cursor < len(m.tickets)-1 {
				m.cursor++
			}

		case key.Matches(msg, ticketKeys.Open):
			if len(m.tickets) > 0 {
				m.detail = true
			}

		case key.Matches(msg, ticketKeys.Back):
			if m.detail {
				m.detail = false
			} else {
				m.quitting = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *TicketModel) View() string {
	if m.quitting {
		return ""
	}
	if m.detail {
		return m.detailView()
	}
	return m.listView()
}

func (m *TicketModel) listView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Chamados"))
	b.WriteString("\n\n")

	if len(m.tickets) == 0 {
		b.WriteString(dimStyle.Render("No tickets found."))
		b.WriteString("\n")
		return b.String()
	}

	for i, t := range m.tickets {
		line := fmt.Sprintf("#%d  %s  %s", t.ID, renderStatus(t.Status), t.Title)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ navigate · enter open · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *TicketModel) detailView() string {
	t := m.tickets[m.cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Chamado #%d", t.ID)))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Título:     ") + t.Title + "\n")
	b.WriteString(labelStyle.Render("Status:     ") + renderStatus(t.Status) + "\n")
	b.WriteString(labelStyle.Render("Prioridade: ") + t.Priority.Label() + "\n")
	b.WriteString(labelStyle.Render("Solicitante: ") + t.Requester + "\n")
	b.WriteString(labelStyle.Render("Abertura:   ") + t.OpenedAt.Format("02/01/2006 15:04") + "\n\n")
	b.WriteString(t.Description)
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("esc back · q quit"))
	b.WriteString("\n")
	return b.String()
}

func renderStatus(s ticket.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(s.Label())
	}
	return s.Label()
}

// BrowseTickets runs the interactive ticket browser until the user quits.
func BrowseTickets(tickets []ticket.Ticket) error {
	program := tea.NewProgram(NewTicketModel(tickets))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ticket browser failed: %w", err)
	}
	return nil
}
