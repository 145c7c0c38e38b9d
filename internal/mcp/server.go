package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"weekboard/internal/notes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with tools for week board operations
func NewServer(svc *notes.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Weekboard",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Tool: resolve_week - Dates and label of a week
	s.AddTool(
		mcp.NewTool("resolve_week",
			mcp.WithDescription("Resolve a week offset (0 = this week, -1 = last week, 1 = next week) to its Monday-Friday range, the date of every day and a display label."),
			mcp.WithNumber("week_offset",
				mcp.Description("Week offset relative to the current week (default: 0)"),
			),
		),
		handleResolveWeek(svc),
	)

	// Tool: get_board - Notes of a week grouped by day
	s.AddTool(
		mcp.NewTool("get_board",
			mcp.WithDescription("Get the notes of one week grouped by day, each day ordered by position. Use this to see what is planned for a week."),
			mcp.WithNumber("week_offset",
				mcp.Description("Week offset relative to the current week (default: 0)"),
			),
		),
		handleGetBoard(svc),
	)

	// Tool: get_note - Get a specific note by ID
	s.AddTool(
		mcp.NewTool("get_note",
			mcp.WithDescription("Get a specific note by its ID."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note ID"),
			),
		),
		handleGetNote(svc),
	)

	// Tool: create_note - Place a new note on a day
	s.AddTool(
		mcp.NewTool("create_note",
			mcp.WithDescription("Create a note on a day of a week."),
			mcp.WithString("title", mcp.Required(), mcp.Description("Short title")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Note text (markdown)")),
			mcp.WithString("day", mcp.Required(),
				mcp.Enum("monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"),
				mcp.Description("Day of week"),
			),
			mcp.WithString("category", mcp.Required(),
				mcp.Enum("task", "presentation", "celebration", "birthday"),
				mcp.Description("Note category"),
			),
			mcp.WithString("color",
				mcp.Enum("default", "red", "green", "blue", "yellow", "purple", "pink", "orange"),
				mcp.Description("Card color (default: default)"),
			),
			mcp.WithNumber("week_offset", mcp.Description("Week offset (default: 0)")),
			mcp.WithNumber("position", mcp.Description("Order within the day (default: 0)")),
		),
		handleCreateNote(svc),
	)

	// Tool: update_note - Partial update
	s.AddTool(
		mcp.NewTool("update_note",
			mcp.WithDescription("Update fields of a note. Omitted fields are left unchanged."),
			mcp.WithString("id", mcp.Required(), mcp.Description("The note ID")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("content", mcp.Description("New content")),
			mcp.WithString("day",
				mcp.Enum("monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"),
				mcp.Description("New day of week"),
			),
			mcp.WithString("category", mcp.Description("New category")),
			mcp.WithString("color", mcp.Description("New color")),
			mcp.WithNumber("week_offset", mcp.Description("New week offset")),
			mcp.WithNumber("position", mcp.Description("New order within the day")),
			mcp.WithBoolean("repeat", mcp.Description("Whether the note repeats weekly")),
		),
		handleUpdateNote(svc),
	)

	// Tool: move_note - Drag-and-drop equivalent
	s.AddTool(
		mcp.NewTool("move_note",
			mcp.WithDescription("Move a note to a day and a 0-based index within that day. Moving a note onto its current slot changes nothing."),
			mcp.WithString("id", mcp.Required(), mcp.Description("The note ID")),
			mcp.WithString("day", mcp.Required(), mcp.Description("Target day")),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("Target index within the day")),
		),
		handleMoveNote(svc),
	)

	// Tool: delete_note - Permanent removal
	s.AddTool(
		mcp.NewTool("delete_note",
			mcp.WithDescription("Delete a note permanently."),
			mcp.WithString("id", mcp.Required(), mcp.Description("The note ID")),
		),
		handleDeleteNote(svc),
	)

	return s
}

// DayResult represents one day of a board in tool responses
type DayResult struct {
	Day   string        `json:"day"`
	Date  string        `json:"date"`
	Notes []*notes.Note `json:"notes"`
}

// BoardResult represents a board in tool responses
type BoardResult struct {
	WeekOffset int         `json:"weekOffset"`
	Label      string      `json:"label"`
	Days       []DayResult `json:"days"`
}

func handleResolveWeek(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(svc.Week(req.GetInt("week_offset", 0)))
	}
}

func handleGetBoard(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := svc.Board(ctx, req.GetInt("week_offset", 0))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load board: %v", err)), nil
		}

		result := BoardResult{WeekOffset: b.Week.Offset, Label: b.Week.Label}
		for _, d := range b.Days {
			result.Days = append(result.Days, DayResult{
				Day:   string(d.Day),
				Date:  d.Date.Format("2006-01-02"),
				Notes: d.Notes,
			})
		}
		return jsonResult(result)
	}
}

func handleGetNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		note, err := svc.Get(ctx, id)
		if err != nil {
			return toolError("get note", err), nil
		}
		return jsonResult(note)
	}
}

func handleCreateNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		note, err := svc.Create(ctx, notes.CreateNoteInput{
			Title:      req.GetString("title", ""),
			Content:    req.GetString("content", ""),
			Day:        req.GetString("day", ""),
			Category:   req.GetString("category", ""),
			Color:      req.GetString("color", ""),
			WeekOffset: req.GetInt("week_offset", 0),
			Position:   req.GetInt("position", 0),
		})
		if err != nil {
			return toolError("create note", err), nil
		}
		return jsonResult(note)
	}
}

func handleUpdateNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		args := req.GetArguments()
		has := func(key string) bool {
			_, ok := args[key]
			return ok
		}
		optional := func(key string) *string {
			if !has(key) {
				return nil
			}
			v := req.GetString(key, "")
			return &v
		}
		optionalInt := func(key string) *int {
			if !has(key) {
				return nil
			}
			v := req.GetInt(key, 0)
			return &v
		}

		input := notes.UpdateNoteInput{
			Title:      optional("title"),
			Content:    optional("content"),
			Day:        optional("day"),
			Category:   optional("category"),
			Color:      optional("color"),
			WeekOffset: optionalInt("week_offset"),
			Position:   optionalInt("position"),
		}
		if has("repeat") {
			repeat := req.GetBool("repeat", false)
			input.Repeat = &repeat
		}

		note, err := svc.Update(ctx, id, input)
		if err != nil {
			return toolError("update note", err), nil
		}
		return jsonResult(note)
	}
}

func handleMoveNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}
		day, err := req.RequireString("day")
		if err != nil {
			return mcp.NewToolResultError("day is required"), nil
		}
		index, err := req.RequireInt("index")
		if err != nil {
			return mcp.NewToolResultError("index is required"), nil
		}

		note, moved, err := svc.Move(ctx, id, notes.MoveInput{Day: day, Index: index})
		if err != nil {
			return toolError("move note", err), nil
		}
		return jsonResult(map[string]any{"note": note, "moved": moved})
	}
}

func handleDeleteNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		if err := svc.Delete(ctx, id); err != nil {
			return toolError("delete note", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("note %s deleted", id)), nil
	}
}

// Helper functions

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toolError(action string, err error) *mcp.CallToolResult {
	var verr *notes.ValidationError
	if errors.As(err, &verr) {
		data, _ := json.Marshal(verr.Fields)
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: invalid fields %s", action, data))
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}
