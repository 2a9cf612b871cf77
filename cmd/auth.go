/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gamely-app/webclient/config"
	"github.com/gamely-app/webclient/internal/gamely"
	"github.com/gamely-app/webclient/internal/session"
	"github.com/spf13/cobra"
)

// newStore wires the config, API client, and file-backed token storage the
// CLI commands share.
func newStore() *session.Store {
	cfg := config.LoadConfig()
	api := gamely.New(cfg.API.BaseURL)
	return session.NewStore(api, session.FileStorage{Path: cfg.TokenFile})
}

// resultErr converts a failed session result into a printable error.
func resultErr(result session.Result) error {
	return errors.New(strings.Join(result.Errors, "\n"))
}

var (
	loginUsername string
	loginPassword string
)

// loginCmd represents the login command.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		result := store.Login(cmd.Context(), gamely.Credentials{
			Username: loginUsername,
			Password: loginPassword,
		})
		if !result.Success {
			return resultErr(result)
		}
		fmt.Printf("logged in as %s\n", loginUsername)
		return nil
	},
}

var signupFlags gamely.Registration

// signupCmd represents the signup command.
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register an account and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		result := store.Signup(cmd.Context(), signupFlags)
		if !result.Success {
			return resultErr(result)
		}
		fmt.Printf("registered as %s\n", signupFlags.Username)
		return nil
	},
}

// logoutCmd represents the logout command.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		store.Logout()
		fmt.Println("logged out")
		return nil
	},
}

// whoamiCmd represents the whoami command.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		store.Bootstrap(cmd.Context())
		user := store.CurrentUser()
		if user == nil {
			return errors.New("not logged in")
		}
		fmt.Printf("%s (%s %s <%s>)\n", user.Username, user.FirstName, user.LastName, user.Email)
		if user.IsAdmin {
			fmt.Println("admin: yes")
		}
		if len(user.Likes) > 0 {
			fmt.Printf("liked games: %d\n", len(user.Likes))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")

	signupCmd.Flags().StringVarP(&signupFlags.Username, "username", "u", "", "account username")
	signupCmd.Flags().StringVarP(&signupFlags.Password, "password", "p", "", "account password")
	signupCmd.Flags().StringVar(&signupFlags.FirstName, "first-name", "", "first name")
	signupCmd.Flags().StringVar(&signupFlags.LastName, "last-name", "", "last name")
	signupCmd.Flags().StringVar(&signupFlags.Email, "email", "", "email address")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
