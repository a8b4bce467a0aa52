// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
)

// DuckDBSource loads the harmonized CSV dataset through an in-memory DuckDB
// instance. DuckDB's read_csv_auto handles delimiter and type inference; the
// projection queries apply the schema-with-defaults contract, so columns
// missing from a given dataset revision surface as zeros, not errors.
type DuckDBSource struct {
	path string
}

// NewDuckDBSource creates a source reading the CSV at path.
func NewDuckDBSource(path string) *DuckDBSource {
	return &DuckDBSource{path: path}
}

// Load reads the dataset and returns normalized entity tables.
func (s *DuckDBSource) Load(ctx context.Context) (*Tables, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("closing duckdb")
		}
	}()

	cols, err := s.discoverColumns(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("inspect dataset %s: %w", s.path, err)
	}

	users, err := s.loadUsers(ctx, db, cols)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	businesses, err := s.loadBusinesses(ctx, db, cols)
	if err != nil {
		return nil, fmt.Errorf("load businesses: %w", err)
	}

	interactions, err := s.loadInteractions(ctx, db, cols)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	logging.Info().
		Str("path", s.path).
		Int("user_rows", len(users)).
		Int("business_rows", len(businesses)).
		Int("interaction_rows", len(interactions)).
		Msg("dataset loaded")

	return Normalize(users, businesses, interactions), nil
}

// discoverColumns returns the set of column names present in the CSV.
// Column presence varies across dataset revisions; the projection queries
// substitute defaults for anything missing.
func (s *DuckDBSource) discoverColumns(ctx context.Context, db *sql.DB) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM read_csv_auto(%s) LIMIT 0", quoteLiteral(s.path)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cols := make(map[string]struct{}, len(names))
	missing := []string{}
	for _, n := range names {
		cols[strings.ToLower(n)] = struct{}{}
	}
	for _, want := range []string{"user_id", "business_id", "review_stars"} {
		if _, ok := cols[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func (s *DuckDBSource) loadUsers(ctx context.Context, db *sql.DB, cols map[string]struct{}) ([]User, error) {
	query := fmt.Sprintf(`SELECT
		%s AS user_id,
		%s AS average_stars,
		%s AS review_count,
		%s AS useful,
		%s AS funny,
		%s AS cool
	FROM read_csv_auto(%s)`,
		strExpr(cols, "user_id"),
		numExpr(cols, "average_stars"),
		numExpr(cols, "user_review_count"),
		numExpr(cols, "useful_user"),
		numExpr(cols, "funny_user"),
		numExpr(cols, "cool_user"),
		quoteLiteral(s.path),
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.AverageStars, &u.ReviewCount, &u.Useful, &u.Funny, &u.Cool); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *DuckDBSource) loadBusinesses(ctx context.Context, db *sql.DB, cols map[string]struct{}) ([]Business, error) {
	// The harmonized dataset carries business rating as business_stars;
	// older revisions used a plain stars column.
	starsCol := "business_stars"
	if _, ok := cols[starsCol]; !ok {
		starsCol = "stars"
	}

	query := fmt.Sprintf(`SELECT
		%s AS business_id,
		%s AS name,
		%s AS categories,
		%s AS stars,
		%s AS review_count,
		%s AS latitude,
		%s AS longitude
	FROM read_csv_auto(%s)`,
		strExpr(cols, "business_id"),
		strExpr(cols, "name"),
		strExpr(cols, "categories"),
		numExpr(cols, starsCol),
		numExpr(cols, "business_review_count"),
		numExpr(cols, "latitude"),
		numExpr(cols, "longitude"),
		quoteLiteral(s.path),
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []Business
	for rows.Next() {
		var b Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Categories, &b.Stars, &b.ReviewCount, &b.Latitude, &b.Longitude); err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (s *DuckDBSource) loadInteractions(ctx context.Context, db *sql.DB, cols map[string]struct{}) ([]Interaction, error) {
	query := fmt.Sprintf(`SELECT
		%s AS user_id,
		%s AS business_id,
		%s AS stars,
		%s AS date
	FROM read_csv_auto(%s)`,
		strExpr(cols, "user_id"),
		strExpr(cols, "business_id"),
		numExpr(cols, "review_stars"),
		dateExpr(cols, "date"),
		quoteLiteral(s.path),
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		var (
			in   Interaction
			date sql.NullTime
		)
		if err := rows.Scan(&in.UserID, &in.BusinessID, &in.Stars, &date); err != nil {
			return nil, err
		}
		if date.Valid {
			in.Date = date.Time
		}
		interactions = append(interactions, in)
	}
	return interactions, rows.Err()
}

// numExpr builds a projection expression yielding a non-null DOUBLE for the
// named column, or the constant 0 when the column is absent.
func numExpr(cols map[string]struct{}, name string) string {
	if _, ok := cols[name]; !ok {
		return "CAST(0 AS DOUBLE)"
	}
	return fmt.Sprintf("COALESCE(TRY_CAST(%s AS DOUBLE), 0)", quoteIdent(name))
}

// strExpr builds a projection expression yielding a non-null VARCHAR for the
// named column, or the empty string when the column is absent.
func strExpr(cols map[string]struct{}, name string) string {
	if _, ok := cols[name]; !ok {
		return "CAST('' AS VARCHAR)"
	}
	return fmt.Sprintf("COALESCE(CAST(%s AS VARCHAR), '')", quoteIdent(name))
}

// dateExpr builds a projection expression yielding a nullable TIMESTAMP.
func dateExpr(cols map[string]struct{}, name string) string {
	if _, ok := cols[name]; !ok {
		return "CAST(NULL AS TIMESTAMP)"
	}
	return fmt.Sprintf("TRY_CAST(%s AS TIMESTAMP)", quoteIdent(name))
}

// quoteLiteral escapes a string for use as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent escapes a column name for use as a SQL identifier.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
