/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var gamesTitle string

// gamesCmd represents the games command.
var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List games, optionally filtered by title",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		store.Bootstrap(cmd.Context())

		games, err := store.Client().Games(cmd.Context(), gamesTitle)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tGENRE\tRATING\tRELEASED\tDEVELOPER")
		for _, game := range games {
			fmt.Fprintf(w, "%d\t%s\t%s\t%g\t%s\t%s\n",
				game.ID, game.Title, game.GenreHandle, game.Rating, game.ReleaseDateDisplay(), game.Developer)
		}
		return w.Flush()
	},
}

// likeCmd represents the like command.
var likeCmd = &cobra.Command{
	Use:   "like <game-id>",
	Short: "Like a game as the logged-in user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid game id %q", args[0])
		}

		store := newStore()
		store.Bootstrap(cmd.Context())
		user := store.CurrentUser()
		if user == nil {
			return errors.New("not logged in")
		}

		result := store.LikeGame(cmd.Context(), user.Username, gameID)
		if !result.Success {
			return resultErr(result)
		}
		fmt.Printf("liked game %d\n", gameID)
		return nil
	},
}

func init() {
	gamesCmd.Flags().StringVar(&gamesTitle, "title", "", "search games by title")

	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(likeCmd)
}
