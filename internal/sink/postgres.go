package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/spatialbench/sbgen/internal/tables"
)

// PostgresLoader loads generated tables into a PostgreSQL schema using
// multi-row VALUES inserts.
type PostgresLoader struct {
	dsn    string
	schema string
	db     *sql.DB
}

func NewPostgresLoader(dsn, schema string) *PostgresLoader {
	if schema == "" {
		schema = "public"
	}
	return &PostgresLoader{dsn: dsn, schema: schema}
}

func (l *PostgresLoader) Connect(ctx context.Context) error {
	db, err := sql.Open("postgres", l.dsn)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	l.db = db
	return nil
}

func (l *PostgresLoader) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

func (l *PostgresLoader) EnsureTable(ctx context.Context, gen tables.Generator) error {
	name := string(gen.Table())
	var exists bool
	query := `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2
	)`
	if err := l.db.QueryRowContext(ctx, query, l.schema, name).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s.%s (%s)",
		l.schema, name, columnDDL(gen.Columns(), "BIGINT", "TEXT"))
	_, err := l.db.ExecContext(ctx, createSQL)
	return err
}

func (l *PostgresLoader) TruncateTable(ctx context.Context, tableName string) error {
	_, err := l.db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s.%s", l.schema, tableName))
	return err
}

func (l *PostgresLoader) InsertBatch(ctx context.Context, table string, columns []tables.Column, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}

	placeholders := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		rowPlaceholders := make([]string, len(columns))
		for j := range columns {
			rowPlaceholders[j] = fmt.Sprintf("$%d", i*len(columns)+j+1)
			args = append(args, row[j])
		}
		placeholders[i] = "(" + strings.Join(rowPlaceholders, ", ") + ")"
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s.%s (%s) VALUES %s",
		l.schema, table, strings.Join(names, ", "), strings.Join(placeholders, ", "))

	_, err := l.db.ExecContext(ctx, insertSQL, args...)
	return err
}
