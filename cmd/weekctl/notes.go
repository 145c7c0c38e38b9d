package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weekboard/internal/notes"
)

var addInput notes.CreateNoteInput

var addCmd = &cobra.Command{
	Use:   "add <title> <content>",
	Short: "Create a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		input := addInput
		input.Title, input.Content = args[0], args[1]

		note, err := a.Notes.Create(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s on %s (week %d)\n", note.ID, note.Day, note.WeekOffset)
		return nil
	},
}

var moveIndex int

var moveCmd = &cobra.Command{
	Use:   "move <id> <day>",
	Short: "Move a note to a day and index",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		note, moved, err := a.Notes.Move(ctx, args[0], notes.MoveInput{Day: args[1], Index: moveIndex})
		if err != nil {
			return err
		}
		if !moved {
			fmt.Fprintln(cmd.OutOrStdout(), "note already at that slot")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %s at %d\n", note.ID, note.Day, note.Position)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		if err := a.Notes.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addInput.Day, "day", "d", "monday", "Day of week")
	addCmd.Flags().StringVarP(&addInput.Category, "category", "k", "task", "Category: task, presentation, celebration, birthday")
	addCmd.Flags().StringVar(&addInput.Color, "color", "default", "Card color")
	addCmd.Flags().IntVarP(&addInput.WeekOffset, "offset", "o", 0, "Week offset")
	addCmd.Flags().IntVarP(&addInput.Position, "position", "p", 0, "Position within the day")
	addCmd.Flags().BoolVar(&addInput.Repeat, "repeat", false, "Mark the note as repeating (stored only)")

	moveCmd.Flags().IntVarP(&moveIndex, "index", "i", 0, "Target index within the day")

	rootCmd.AddCommand(addCmd, moveCmd, rmCmd)
}
