package ticket

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aiutodesk/desk/internal/errors"
	"github.com/aiutodesk/desk/internal/log"
)

const catalogFileName = "tickets.json"

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status   Status
	Priority Priority
}

// CreateRequest carries the fields needed to open a ticket.
type CreateRequest struct {
	Title       string
	Description string
	Priority    Priority
	Requester   string
}

// Repository stores the ticket catalog as a JSON file under dir. A missing
// file means a fresh catalog, which starts from the seed set.
type Repository struct {
	path   string
	logger *log.Logger
}

func NewRepository(dir string, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Repository{path: filepath.Join(dir, catalogFileName), logger: logger}
}

func (r *Repository) load() ([]Ticket, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return Seed(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read ticket catalog", err)
	}

	var tickets []Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "ticket catalog is corrupted", err).
			WithSuggestion("Delete " + r.path + " to start from the example tickets")
	}
	return tickets, nil
}

func (r *Repository) save(tickets []Ticket) error {
	data, err := json.MarshalIndent(tickets, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to encode ticket catalog", err)
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write ticket catalog", err)
	}
	return nil
}

// List returns tickets matching filter, newest first.
func (r *Repository) List(filter Filter) ([]Ticket, error) {
	tickets, err := r.load()
	if err != nil {
		return nil, err
	}

	matched := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		matched = append(matched, t)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].OpenedAt.After(matched[j].OpenedAt)
	})
	return matched, nil
}

// Get returns the ticket with the given id.
func (r *Repository) Get(id int) (*Ticket, error) {
	tickets, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if t.ID == id {
			ticket := t
			return &ticket, nil
		}
	}
	return nil, errors.New(errors.ErrCodeTicketNotFound, "ticket not found").
		WithSuggestion("Run 'desk tickets list' to see existing tickets")
}

// Create opens a new ticket and persists the catalog. Title and description
// are required; priority defaults to medium.
func (r *Repository) Create(req CreateRequest) (*Ticket, error) {
	if req.Title == "" || req.Description == "" {
		return nil, errors.New(errors.ErrCodeMissingField, "title and description are required")
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}

	tickets, err := r.load()
	if err != nil {
		return nil, err
	}

	next := 1
	for _, t := range tickets {
		if t.ID >= next {
			next = t.ID + 1
		}
	}

	ticket := Ticket{
		ID:          next,
		Title:       req.Title,
		Status:      StatusOpen,
		Priority:    req.Priority,
		Requester:   req.Requester,
		Description: req.Description,
		OpenedAt:    time.Now(),
	}
	tickets = append(tickets, ticket)

	if err := r.save(tickets); err != nil {
		return nil, err
	}
	r.logger.Debug("ticket created", "ticket_id", ticket.ID)
	return &ticket, nil
}
