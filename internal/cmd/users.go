package cmd

import (
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, optionally filtered by role",
	Long: `List registered users.

Examples:
  caresync users list
  caresync users list --role doctor`,
	RunE: runUsersList,
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersListCmd.Flags().String("role", "", "filter by role: patient or doctor")
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	a := getApp()
	if err := requireAuth(a); err != nil {
		return err
	}

	role, _ := cmd.Flags().GetString("role")

	users, err := a.client.ListUsers(cmd.Context(), role)
	if err != nil {
		a.logger.WithError(err).Warn("could not fetch users")
	}

	rows := make([][]string, 0, len(users))
	for _, user := range users {
		rows = append(rows, []string{
			user.ID(),
			user.Name(),
			user.Email(),
			user.Role(),
		})
	}

	text := a.styles.Table([]string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
	if len(users) == 0 {
		text = a.styles.Muted.Render("No users.") + "\n"
	}
	return a.render(users, text)
}
