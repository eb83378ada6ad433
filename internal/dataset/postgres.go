package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/jmylchreest/threadmatch/internal/colour"
	"github.com/jmylchreest/threadmatch/internal/match"
)

// DefaultTable is the table read by PostgresSource when none is set.
const DefaultTable = "thread_colours"

// PostgresSource loads every dataset stored in a thread colour table.
// The table holds one row per colour: dataset, code, name, category, r, g, b and position.
type PostgresSource struct {
	DB    *sql.DB
	Table string
}

// NewPostgresSource creates a source reading DefaultTable.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{DB: db, Table: DefaultTable}
}

// OpenPostgres opens and pings a Postgres connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not establish connection with database: %w", err)
	}
	return db, nil
}

func (s *PostgresSource) String() string {
	return "postgres:" + s.table()
}

func (s *PostgresSource) table() string {
	if s.Table == "" {
		return DefaultTable
	}
	return s.Table
}

// query returns the select statement for the configured table.
func (s *PostgresSource) query() string {
	return fmt.Sprintf(
		"SELECT dataset, code, name, category, r, g, b FROM %s ORDER BY dataset, position",
		pq.QuoteIdentifier(s.table()),
	)
}

// Load reads every row and groups them into palettes by dataset name.
func (s *PostgresSource) Load(ctx context.Context) ([]match.Palette, error) {
	rows, err := s.DB.QueryContext(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table(), err)
	}
	defer rows.Close()

	var records []colourRow
	for rows.Next() {
		var rec colourRow
		var category sql.NullString
		if err := rows.Scan(&rec.Dataset, &rec.Code, &rec.Name, &category, &rec.R, &rec.G, &rec.B); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec.Category = category.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return groupRows(records)
}

type colourRow struct {
	Dataset  string
	Code     string
	Name     string
	Category string
	R, G, B  int
}

// groupRows builds palettes from rows ordered by dataset, keeping row order within each.
func groupRows(records []colourRow) ([]match.Palette, error) {
	var palettes []match.Palette
	index := make(map[string]int)

	for _, rec := range records {
		for _, v := range []int{rec.R, rec.G, rec.B} {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("dataset %s: colour %s: rgb channel %d out of range", rec.Dataset, rec.Code, v)
			}
		}

		i, ok := index[rec.Dataset]
		if !ok {
			i = len(palettes)
			index[rec.Dataset] = i
			palettes = append(palettes, match.Palette{Name: rec.Dataset})
		}
		palettes[i].Entries = append(palettes[i].Entries, match.Entry{
			Code:     rec.Code,
			Name:     rec.Name,
			Category: rec.Category,
			Colour:   colour.RGB{R: uint8(rec.R), G: uint8(rec.G), B: uint8(rec.B)},
		})
	}

	for _, p := range palettes {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return palettes, nil
}
