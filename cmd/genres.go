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

var genresName string

// genresCmd represents the genres command.
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List genres, optionally filtered by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		store.Bootstrap(cmd.Context())

		genres, err := store.Client().Genres(cmd.Context(), genresName)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "HANDLE\tNAME")
		for _, genre := range genres {
			fmt.Fprintf(w, "%s\t%s\n", genre.Handle, genre.Name)
		}
		return w.Flush()
	},
}

// genreCmd represents the genre command.
var genreCmd = &cobra.Command{
	Use:   "genre <handle>",
	Short: "Show one genre and its games",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		store.Bootstrap(cmd.Context())

		genre, err := store.Client().GetGenre(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", genre.Name, genre.Handle)
		if genre.Description != "" {
			fmt.Println(genre.Description)
		}
		for _, game := range genre.Games {
			fmt.Printf("  %d  %s\n", game.ID, game.Title)
		}
		return nil
	},
}

func init() {
	genresCmd.Flags().StringVar(&genresName, "name", "", "search genres by name")

	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(genreCmd)
}
