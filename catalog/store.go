package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/atomic"
)

const (
	// CruisesTable is the table name surfaced to SQL generation prompts.
	CruisesTable = "cruises"
	PricingTable = "pricing"
)

// CruiseColumns lists the queryable columns of the cruises table in the
// order they appear in the schema. Prompt builders embed this list so the
// model only references real columns.
var CruiseColumns = []string{
	"cruise_id", "ship_name", "departure_port", "departure_date",
	"duration", "destination", "ports_of_call", "cabin_type",
	"price_per_person", "total_price", "availability", "amenities",
	"description",
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS cruises (
	cruise_id        TEXT PRIMARY KEY,
	ship_name        TEXT NOT NULL,
	departure_port   TEXT,
	departure_date   TEXT,
	duration         INTEGER,
	destination      TEXT,
	ports_of_call    TEXT,
	cabin_type       TEXT,
	price_per_person REAL,
	total_price      REAL,
	availability     TEXT,
	amenities        TEXT,
	description      TEXT
);
CREATE INDEX IF NOT EXISTS idx_cruises_destination ON cruises(destination);
CREATE INDEX IF NOT EXISTS idx_cruises_price ON cruises(price_per_person);

CREATE TABLE IF NOT EXISTS pricing (
	cruise_id      TEXT PRIMARY KEY REFERENCES cruises(cruise_id),
	starting_price REAL NOT NULL
);
`

// Stats reports catalog contents and usage counters.
type Stats struct {
	Cruises      int64   `json:"cruises"`
	PricingRows  int64   `json:"pricing_rows"`
	Destinations int64   `json:"destinations"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	AvgPrice     float64 `json:"avg_price"`
	Queries      int64   `json:"queries_executed"`
	QueryErrors  int64   `json:"query_errors"`
}

// Store is the SQL-queryable cruise catalog backed by SQLite. The zero
// value is not usable; construct with Open.
type Store struct {
	db *sqlx.DB

	queries     atomic.Int64
	queryErrors atomic.Int64
}

// Open opens (or creates) a catalog database at the given path and applies
// the schema. Use ":memory:" for an ephemeral catalog.
func Open(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	// SQLite with an in-memory DSN gives every connection its own database
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadCruises upserts cruise records in one transaction.
func (s *Store) LoadCruises(ctx context.Context, records []Cruise) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	const stmt = `INSERT OR REPLACE INTO cruises (
		cruise_id, ship_name, departure_port, departure_date, duration,
		destination, ports_of_call, cabin_type, price_per_person,
		total_price, availability, amenities, description
	) VALUES (
		:cruise_id, :ship_name, :departure_port, :departure_date, :duration,
		:destination, :ports_of_call, :cabin_type, :price_per_person,
		:total_price, :availability, :amenities, :description
	)`
	for i := range records {
		if _, err := tx.NamedExecContext(ctx, stmt, &records[i]); err != nil {
			return fmt.Errorf("catalog: insert cruise %s: %w", records[i].CruiseID, err)
		}
	}
	return tx.Commit()
}

// LoadPricing upserts pricing rows in one transaction.
func (s *Store) LoadPricing(ctx context.Context, records []Pricing) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	const stmt = `INSERT OR REPLACE INTO pricing (cruise_id, starting_price)
		VALUES (:cruise_id, :starting_price)`
	for i := range records {
		if _, err := tx.NamedExecContext(ctx, stmt, &records[i]); err != nil {
			return fmt.Errorf("catalog: insert pricing %s: %w", records[i].CruiseID, err)
		}
	}
	return tx.Commit()
}

// ExecuteQuery runs a guarded read-only SQL statement and returns rows as
// maps keyed by column name. Byte slices from the driver come back as
// strings so results marshal cleanly to JSON.
func (s *Store) ExecuteQuery(ctx context.Context, query string) ([]map[string]any, error) {
	if err := GuardQuery(query); err != nil {
		s.queryErrors.Inc()
		return nil, err
	}
	s.queries.Inc()
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		s.queryErrors.Inc()
		return nil, fmt.Errorf("catalog: query failed: %w", err)
	}
	defer rows.Close()
	var results []map[string]any
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			s.queryErrors.Inc()
			return nil, err
		}
		for k, v := range row {
			if bs, ok := v.([]byte); ok {
				row[k] = string(bs)
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		s.queryErrors.Inc()
		return nil, err
	}
	return results, nil
}

// CruiseByID returns the cruise with the given ID, or nil when no such
// cruise exists.
func (s *Store) CruiseByID(ctx context.Context, id string) (*Cruise, error) {
	var c Cruise
	err := s.db.GetContext(ctx, &c, `SELECT * FROM cruises WHERE cruise_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Cruises returns up to limit cruises ordered by ID. A non-positive limit
// returns the whole catalog.
func (s *Store) Cruises(ctx context.Context, limit int) ([]Cruise, error) {
	query := `SELECT * FROM cruises ORDER BY cruise_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	var out []Cruise
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// PriceRange returns cruises whose per-person price falls inside the
// inclusive range, cheapest first.
func (s *Store) PriceRange(ctx context.Context, minPrice, maxPrice float64) ([]Cruise, error) {
	if maxPrice > 0 && minPrice > maxPrice {
		return nil, fmt.Errorf("catalog: min price %.2f exceeds max price %.2f", minPrice, maxPrice)
	}
	query := `SELECT * FROM cruises WHERE price_per_person >= ?`
	args := []any{minPrice}
	if maxPrice > 0 {
		query += ` AND price_per_person <= ?`
		args = append(args, maxPrice)
	}
	query += ` ORDER BY price_per_person`
	var out []Cruise
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// Pricing returns the pricing row for a cruise, or nil when the cruise has
// no pricing entry.
func (s *Store) Pricing(ctx context.Context, cruiseID string) (*Pricing, error) {
	var p Pricing
	err := s.db.GetContext(ctx, &p, `SELECT * FROM pricing WHERE cruise_id = ?`, cruiseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Stats summarizes catalog contents plus query counters accumulated since
// the store was opened.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Queries:     s.queries.Load(),
		QueryErrors: s.queryErrors.Load(),
	}
	row := s.db.QueryRowxContext(ctx, `SELECT
		COUNT(*),
		COUNT(DISTINCT destination),
		COALESCE(MIN(price_per_person), 0),
		COALESCE(MAX(price_per_person), 0),
		COALESCE(AVG(price_per_person), 0)
	FROM cruises`)
	if err := row.Scan(&stats.Cruises, &stats.Destinations, &stats.MinPrice, &stats.MaxPrice, &stats.AvgPrice); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &stats.PricingRows, `SELECT COUNT(*) FROM pricing`); err != nil {
		return nil, err
	}
	return stats, nil
}
