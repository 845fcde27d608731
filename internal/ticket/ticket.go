// Package ticket holds the local help-desk ticket catalog: a seeded set of
// example tickets plus any created locally, persisted as JSON under the
// application config directory.
package ticket

import (
	"strings"
	"time"
)

// Status is a ticket lifecycle stage.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

// ParseStatus maps user input to a Status. Empty input is valid and means
// no filter.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", true
	case StatusOpen:
		return StatusOpen, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusClosed:
		return StatusClosed, true
	default:
		return "", false
	}
}

// Label returns the display form of the status.
func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "Aberto"
	case StatusInProgress:
		return "Em andamento"
	case StatusClosed:
		return "Fechado"
	default:
		return string(s)
	}
}

// Priority is the urgency of a ticket.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps user input to a Priority.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityLow:
		return PriorityLow, true
	default:
		return "", false
	}
}

// Label returns the display form of the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "Alta"
	case PriorityMedium:
		return "Média"
	case PriorityLow:
		return "Baixa"
	default:
		return string(p)
	}
}

// Ticket is one support request.
type Ticket struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Requester   string    `json:"requester"`
	Description string    `json:"description"`
	OpenedAt    time.Time `json:"openedAt"`
}

// Seed returns the example tickets a fresh catalog starts with.
func Seed() []Ticket {
	return []Ticket{
		{
			ID:        1,
			Title:     "Erro ao acessar sistema interno",
			Status:    StatusOpen,
			Priority:  PriorityHigh,
			Requester: "Maria Souza",
			Description: "Usuária relata que não consegue acessar o sistema interno desde o " +
				"início do expediente. Já tentou trocar de navegador e reiniciar o computador.",
			OpenedAt: time.Date(2025, 12, 5, 8, 15, 0, 0, time.Local),
		},
		{
			ID:        2,
			Title:     "Impressora do setor financeiro parada",
			Status:    StatusInProgress,
			Priority:  PriorityMedium,
			Requester: "João Lima",
			Description: "Impressora não responde a novos pedidos de impressão. " +
				"Já foi reiniciada, mas o problema persiste.",
			OpenedAt: time.Date(2025, 12, 4, 15, 42, 0, 0, time.Local),
		},
		{
			ID:        3,
			Title:     "Solicitação de criação de e-mail institucional",
			Status:    StatusClosed,
			Priority:  PriorityLow,
			Requester: "Carlos Borba",
			Description: "Criação de novo e-mail institucional para colaborador " +
				"recém-contratado no setor de inovação.",
			OpenedAt: time.Date(2025, 12, 3, 10, 5, 0, 0, time.Local),
		},
	}
}
