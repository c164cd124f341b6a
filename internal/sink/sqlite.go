package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/spatialbench/sbgen/internal/tables"
)

// SQLiteLoader loads generated tables into a SQLite database file.
type SQLiteLoader struct {
	path string
	db   *sql.DB
}

func NewSQLiteLoader(path string) *SQLiteLoader {
	return &SQLiteLoader{path: path}
}

func (l *SQLiteLoader) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite3", l.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	l.db = db
	return nil
}

func (l *SQLiteLoader) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

func (l *SQLiteLoader) EnsureTable(ctx context.Context, gen tables.Generator) error {
	name := string(gen.Table())
	var existing string
	err := l.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&existing)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)",
		name, columnDDL(gen.Columns(), "INTEGER", "TEXT"))
	_, err = l.db.ExecContext(ctx, createSQL)
	return err
}

func (l *SQLiteLoader) TruncateTable(ctx context.Context, tableName string) error {
	_, err := l.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", tableName))
	return err
}

func (l *SQLiteLoader) InsertBatch(ctx context.Context, table string, columns []tables.Column, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
		placeholders[i] = "?"
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
