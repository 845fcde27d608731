package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	tenantHeaderStyle = lipgloss.NewStyle().Bold(true)
	tenantIDStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var tenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "Browse organizations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var tenantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations available for registration",
	Long: `List the organizations new accounts can register into.

The list comes from the backend; when it is unreachable a built-in set of
well-known organizations is shown instead.

Examples:
  desk tenants list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		tenants := app.tenants.List(cmd.Context())

		fmt.Println(tenantHeaderStyle.Render("Organizations"))
		fmt.Println()
		for _, t := range tenants {
			fmt.Printf("  %s  %s\n", tenantIDStyle.Render(t.ID), t.Name)
		}
		return nil
	},
}

var tenantsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		tenant, err := app.tenants.Resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Name:   %s\n", tenant.Name)
		fmt.Printf("ID:     %s\n", tenant.ID)
		if tenant.Subdomain != "" {
			fmt.Printf("Domain: %s\n", tenant.Subdomain)
		}
		if tenant.Status != "" {
			fmt.Printf("Status: %s\n", tenant.Status)
		}
		return nil
	},
}

func init() {
	tenantsCmd.AddCommand(tenantsListCmd)
	tenantsCmd.AddCommand(tenantsShowCmd)
	rootCmd.AddCommand(tenantsCmd)
}
