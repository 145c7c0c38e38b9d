package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"weekboard/internal/board"
	"weekboard/internal/notes"
	"weekboard/internal/week"
)

var (
	weekOffset int
	asJSON     bool
	showSat    bool
	showSun    bool
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the dates of a week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := week.Resolve(weekOffset, time.Now())
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), info)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, info.Label)
		for _, d := range info.Days {
			fmt.Fprintf(out, "  %-10s %s\n", d.Name, d.Date.Format("2006-01-02"))
		}
		return nil
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "List the notes of a week, grouped by day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		b, err := a.Notes.Board(ctx, weekOffset)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), b)
		}

		state := board.State{WeekOffset: weekOffset, ShowSaturday: showSat, ShowSunday: showSun}
		printBoard(cmd.OutOrStdout(), b, state)
		return nil
	},
}

func printBoard(w io.Writer, b *notes.Board, state board.State) {
	fmt.Fprintln(w, b.Week.Label)
	for _, d := range state.VisibleDays() {
		bucket := b.Bucket(d)
		fmt.Fprintf(w, "\n%s %s\n", d.Label(), bucket.Date.Format("02/01"))
		if len(bucket.Notes) == 0 {
			fmt.Fprintln(w, "  (sin actividades)")
			continue
		}
		for i, n := range bucket.Notes {
			fmt.Fprintf(w, "  %d. [%s] %s  (%s, pos %d)\n", i, n.Category.Meta().Label, n.Title, n.ID, n.Position)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{weekCmd, boardCmd} {
		c.Flags().IntVarP(&weekOffset, "offset", "o", 0, "Week offset relative to the current week")
		c.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	}
	boardCmd.Flags().BoolVar(&showSat, "saturday", false, "Include Saturday")
	boardCmd.Flags().BoolVar(&showSun, "sunday", false, "Include Sunday")

	rootCmd.AddCommand(weekCmd, boardCmd)
}
