/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// usersCmd represents the users command.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Admin user management",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		store.Bootstrap(cmd.Context())

		users, err := store.Client().ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tNAME\tEMAIL\tADMIN")
		for _, user := range users {
			admin := ""
			if user.IsAdmin {
				admin = "yes"
			}
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", user.Username, user.FirstName, user.LastName, user.Email, admin)
		}
		return w.Flush()
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		store.Bootstrap(cmd.Context())

		if err := store.Client().DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}
