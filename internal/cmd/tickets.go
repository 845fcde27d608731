package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiutodesk/desk/internal/errors"
	"github.com/aiutodesk/desk/internal/ticket"
	"github.com/aiutodesk/desk/internal/tui"
)

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Manage the local ticket catalog",
	Long: `Manage the local help-desk ticket catalog.

Tickets live in a JSON file under the user config directory. A fresh
catalog starts with a set of example tickets.

Examples:
  desk tickets list
  desk tickets list --status open
  desk tickets show 2
  desk tickets create
  desk tickets browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var ticketsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		rawStatus, _ := cmd.Flags().GetString("status")
		status, ok := ticket.ParseStatus(rawStatus)
		if !ok {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown status: %s", rawStatus)).
				WithSuggestion("Use open, in_progress, or closed")
		}

		rawPriority, _ := cmd.Flags().GetString("priority")
		var priority ticket.Priority
		if rawPriority != "" {
			priority, ok = ticket.ParsePriority(rawPriority)
			if !ok {
				return errors.New(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("unknown priority: %s", rawPriority)).
					WithSuggestion("Use high, medium, or low")
			}
		}

		tickets, err := app.tickets.List(ticket.Filter{Status: status, Priority: priority})
		if err != nil {
			return err
		}
		if len(tickets) == 0 {
			fmt.Println("No tickets found.")
			return nil
		}

		for _, t := range tickets {
			fmt.Printf("#%-3d %-13s %-6s %s\n", t.ID, t.Status.Label(), t.Priority.Label(), t.Title)
		}
		return nil
	},
}

var ticketsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("ticket id must be a number: %s", args[0]))
		}

		t, err := app.tickets.Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("Chamado #%d\n", t.ID)
		fmt.Printf("  Título:      %s\n", t.Title)
		fmt.Printf("  Status:      %s\n", t.Status.Label())
		fmt.Printf("  Prioridade:  %s\n", t.Priority.Label())
		fmt.Printf("  Solicitante: %s\n", t.Requester)
		fmt.Printf("  Abertura:    %s\n", t.OpenedAt.Format("02/01/2006 15:04"))
		fmt.Println()
		fmt.Println(t.Description)
		return nil
	},
}

var ticketsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new ticket",
	Long: `Open a new support ticket in the local catalog.

Missing fields are prompted for interactively when running in a terminal.

Examples:
  desk tickets create --title "VPN não conecta" --description "..." --priority high
  desk tickets create`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		input := tui.TicketInput{}
		input.Title, _ = cmd.Flags().GetString("title")
		input.Description, _ = cmd.Flags().GetString("description")
		input.Priority, _ = cmd.Flags().GetString("priority")

		if (input.Title == "" || input.Description == "") && tui.ShouldPrompt() {
			if err := tui.RunTicketForm(&input); err != nil {
				return err
			}
		}

		priority := ticket.Priority(input.Priority)
		if input.Priority != "" {
			var ok bool
			priority, ok = ticket.ParsePriority(input.Priority)
			if !ok {
				return errors.New(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("unknown priority: %s", input.Priority)).
					WithSuggestion("Use high, medium, or low")
			}
		}

		requester := ""
		if err := app.session.Restore(cmd.Context()); err == nil {
			if user := app.session.Snapshot().User; user != nil {
				requester = user.Name
			}
		}

		created, err := app.tickets.Create(ticket.CreateRequest{
			Title:       input.Title,
			Description: input.Description,
			Priority:    priority,
			Requester:   requester,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Ticket #%d created.\n", created.ID)
		return nil
	},
}

var ticketsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse tickets interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		tickets, err := app.tickets.List(ticket.Filter{})
		if err != nil {
			return err
		}
		return tui.BrowseTickets(tickets)
	},
}

func init() {
	ticketsCmd.AddCommand(ticketsListCmd)
	ticketsCmd.AddCommand(ticketsShowCmd)
	ticketsCmd.AddCommand(ticketsCreateCmd)
	ticketsCmd.AddCommand(ticketsBrowseCmd)

	ticketsListCmd.Flags().String("status", "", "Filter by status (open, in_progress, closed)")
	ticketsListCmd.Flags().String("priority", "", "Filter by priority (high, medium, low)")

	ticketsCreateCmd.Flags().String("title", "", "Ticket title")
	ticketsCreateCmd.Flags().String("description", "", "Problem description")
	ticketsCreateCmd.Flags().String("priority", "", "Priority (high, medium, low)")

	rootCmd.AddCommand(ticketsCmd)
}
