package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/studentdir/internal/pkg/logger"
)

// PostgresCollection stores documents as JSONB rows keyed by their id.
type PostgresCollection struct {
	db    *pgxpool.Pool
	table string
	sb    squirrel.StatementBuilderType
}

// NewPostgresCollection creates a Collection over the given table.
func NewPostgresCollection(db *pgxpool.Pool, table string) *PostgresCollection {
	return &PostgresCollection{
		db:    db,
		table: table,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EnsureSchema creates the backing table if it does not exist yet, mirroring a
// create-if-not-exists collection bootstrap.
func (c *PostgresCollection) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id  TEXT PRIMARY KEY,
		doc JSONB NOT NULL
	);`, pgx.Identifier{c.table}.Sanitize())

	if _, err := c.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create collection table %s: %w", c.table, err)
	}
	return nil
}

// Scan returns every document in the collection.
func (c *PostgresCollection) Scan(ctx context.Context) ([]Document, error) {
	sql, args, err := c.sb.Select("doc").From(c.table).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building scan SQL")
		return nil, fmt.Errorf("failed to build scan query: %w", err)
	}

	rows, err := c.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", c.table).Msg("Error executing scan query")
		return nil, fmt.Errorf("error scanning collection: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

// Read returns the document stored under id.
func (c *PostgresCollection) Read(ctx context.Context, id string) (Document, bool, error) {
	sql, args, err := c.sb.Select("doc").
		From(c.table).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building read SQL")
		return nil, false, fmt.Errorf("failed to build read query: %w", err)
	}

	var raw []byte
	err = c.db.QueryRow(ctx, sql, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		logger.Error().Err(err).Str("id", id).Msg("Error reading document")
		return nil, false, fmt.Errorf("error reading document: %w", err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// Put stores doc under id, replacing any existing row.
func (c *PostgresCollection) Put(ctx context.Context, id string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	sql, args, err := c.sb.Insert(c.table).
		Columns("id", "doc").
		Values(id, raw).
		Suffix("ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building put SQL")
		return fmt.Errorf("failed to build put query: %w", err)
	}

	if _, err := c.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("id", id).Msg("Error writing document")
		return fmt.Errorf("error writing document: %w", err)
	}
	return nil
}

// Delete removes the document stored under id.
func (c *PostgresCollection) Delete(ctx context.Context, id string) (bool, error) {
	sql, args, err := c.sb.Delete(c.table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete SQL")
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	cmdTag, err := c.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("id", id).Msg("Error deleting document")
		return false, fmt.Errorf("error deleting document: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// Ping reports whether the database is reachable.
func (c *PostgresCollection) Ping(ctx context.Context) error {
	return c.db.Ping(ctx)
}

func decodeDocument(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}
