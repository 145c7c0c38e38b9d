package notes

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"weekboard/internal/week"
)

//go:embed schema.sql
var schema string

const noteColumns = `id, title, content, day, category, color, image, week_offset, repeat, position, owner_ref, created_at`

// SQLiteRepo stores notes in a SQLite database.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

// Migrate creates the notes table when missing.
func (r *SQLiteRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return storageErr("init schema", err)
	}
	return nil
}

func (r *SQLiteRepo) Insert(ctx context.Context, n *Note) error {
	n.ID = uuid.NewString()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, string(n.Day), string(n.Category), string(n.Color), n.Image,
		n.WeekOffset, n.Repeat, n.Position, nullable(n.OwnerRef), n.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return storageErr("insert note", err)
	}
	return nil
}

func (r *SQLiteRepo) FindByID(ctx context.Context, id string) (*Note, error) {
	return findNote(ctx, r.db, id)
}

func (r *SQLiteRepo) ListByWeek(ctx context.Context, weekOffset int) ([]*Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE week_offset = ? ORDER BY rowid`, weekOffset)
	if err != nil {
		return nil, storageErr("list notes", err)
	}
	defer rows.Close()

	notes := []*Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, storageErr("scan note", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list notes", err)
	}
	return notes, nil
}

// Update merges the patch into the stored row inside one transaction.
func (r *SQLiteRepo) Update(ctx context.Context, id string, p Patch) (*Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin update", err)
	}
	defer tx.Rollback()

	n, err := findNote(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(n)

	_, err = tx.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, day = ?, category = ?, color = ?, image = ?,
		 week_offset = ?, repeat = ?, position = ?, owner_ref = ? WHERE id = ?`,
		n.Title, n.Content, string(n.Day), string(n.Category), string(n.Color), n.Image,
		n.WeekOffset, n.Repeat, n.Position, nullable(n.OwnerRef), id,
	)
	if err != nil {
		return nil, storageErr("update note "+id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr("commit update", err)
	}
	return n, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete note", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete note", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func findNote(ctx context.Context, q queryer, id string) (*Note, error) {
	row := q.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, storageErr("find note "+id, err)
	}
	return n, nil
}

func scanNote(s scanner) (*Note, error) {
	var (
		n                    Note
		day, category, color string
		ownerRef             sql.NullString
		createdAt            string
	)
	err := s.Scan(&n.ID, &n.Title, &n.Content, &day, &category, &color, &n.Image,
		&n.WeekOffset, &n.Repeat, &n.Position, &ownerRef, &createdAt)
	if err != nil {
		return nil, err
	}
	n.Day = week.Day(day)
	n.Category = Category(category)
	n.Color = Color(color)
	if ownerRef.Valid {
		ref := ownerRef.String
		n.OwnerRef = &ref
	}
	n.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &n, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
