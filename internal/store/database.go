package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database wraps the HoopHub PostgreSQL connection pool. Every unit of work
// acquires a connection from the pool through the standard database/sql
// interfaces and releases it on return; nothing holds a shared cursor.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens a pooled connection to the HoopHub database.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// RunMigrations executes all migration files in order.
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations := []string{
		"001_create_coaches.sql",
		"002_create_venues.sql",
		"003_create_teams.sql",
		"004_create_players.sql",
		"005_create_games.sql",
		"006_create_player_game_stats.sql",
		"007_create_standings_view.sql",
	}

	for _, migration := range migrations {
		if err := db.runMigration(migration); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration, err)
		}
	}

	log.Println("✓ All migrations completed successfully")

	return nil
}

func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

// runMigration runs a single migration file if it hasn't been applied yet.
func (db *Database) runMigration(filename string) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", filename).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("  ⊘ Skipping %s (already applied)", filename)
		return nil
	}

	migrationPath := filepath.Join("migrations", filename)
	content, err := os.ReadFile(migrationPath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", filename); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", filename)
	return nil
}

// SeedData inserts reference data (coaches, venues, teams). The seed files
// use ON CONFLICT DO NOTHING, so re-running is harmless.
func (db *Database) SeedData() error {
	log.Println("Running seed data...")

	seedFiles := []string{
		"001_coaches.sql",
		"002_venues.sql",
		"003_teams.sql",
	}

	for _, seedFile := range seedFiles {
		seedPath := filepath.Join("seed", seedFile)
		content, err := os.ReadFile(seedPath)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", seedFile, err)
		}

		if _, err := db.conn.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute seed file %s: %w", seedFile, err)
		}

		log.Printf("  ✓ Seeded %s", seedFile)
	}

	log.Println("✓ Seed data completed successfully")
	return nil
}

// HealthCheck performs a health check on the database.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
