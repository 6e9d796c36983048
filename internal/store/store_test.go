// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"catalogseo/internal/database"
)

// Fixture ids live far above the demo seed so tests can share a database.
const (
	fxMake      = 900013
	fxModel     = 900045
	fxType      = 900005
	fxRange     = 900010
	fxLinked    = 900007
	fxNoAlias   = 900008
	fxDeepRange = 900402
	fxHidden    = 900077
	fxFamily    = 900004
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "catalogseo")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "catalogseo")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if _, err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// mustExec runs a fixture statement and fails the test on error.
func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("fixture %q: %v", query, err)
	}
}

// seedFixtures inserts a small catalog under the fx* ids and removes it
// when the test ends.
func seedFixtures(t *testing.T, db *sql.DB) {
	t.Helper()
	cleanFixtures(db)
	t.Cleanup(func() { cleanFixtures(db) })

	mustExec(t, db, `INSERT INTO vehicle_makes (make_id, name, alias, meta) VALUES ($1, 'Renault', '', 'Renault Meta')`, fxMake)
	mustExec(t, db, `INSERT INTO vehicle_models (model_id, make_id, name, alias) VALUES ($1, $2, 'Clio III', 'clio-3')`, fxModel, fxMake)
	mustExec(t, db, `INSERT INTO vehicle_types (type_id, model_id, name, alias, body, fuel, engine_code, year_from, power_hp)
		VALUES ($1, $2, '1.5 dCi', '', 'Berline', 'Diesel', 'K9K', 2005, 86)`, fxType, fxModel)

	mustExec(t, db, `INSERT INTO catalog_ranges (range_id, name, alias, meta, level, displayable, family_id, articles_count, sort_order) VALUES
		($1, 'Filtres à huile', 'filtres-a-huile', 'filtre', 1, TRUE, $6, 150, -40),
		($2, 'Plaquettes', 'plaquettes', '', 1, TRUE, NULL, 10, -30),
		($3, 'Disques de frein', '', '', 2, TRUE, NULL, 10, -20),
		($4, 'Vis', 'vis', '', 3, TRUE, NULL, 10, -10),
		($5, 'Archives', 'archives', '', 1, FALSE, NULL, 0, -5)`,
		fxRange, fxLinked, fxNoAlias, fxDeepRange, fxHidden, fxFamily)

	mustExec(t, db, `INSERT INTO catalog_range_vehicles (range_id, type_id, articles_count) VALUES ($1, $3, 5), ($2, $3, 0)`,
		fxLinked, fxNoAlias, fxType)
}

func cleanFixtures(db *sql.DB) {
	db.Exec(`DELETE FROM seo_range_switches WHERE range_id BETWEEN 900000 AND 900999`)
	db.Exec(`DELETE FROM seo_family_switches WHERE family_id = $1`, fxFamily)
	db.Exec(`DELETE FROM catalog_ranges WHERE range_id BETWEEN 900000 AND 900999`)
	db.Exec(`DELETE FROM vehicle_makes WHERE make_id = $1`, fxMake)
}
