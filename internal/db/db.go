// Package db opens the sqlite database and applies the embedded migrations.
package db

import (
	"embed"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose keeps its base fs and dialect in package globals
var migrateMutex sync.Mutex

// Open connects to the sqlite database file at `path` and migrates it to the latest version.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	conn, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	// sqlite only supports a single writer
	conn.SetMaxOpenConns(1)

	err = Migrate(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Migrate applies every pending migration.
func Migrate(conn *sqlx.DB) error {
	migrateMutex.Lock()
	defer migrateMutex.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	err := goose.SetDialect(string(goose.DialectSQLite3))
	if err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	err = goose.Up(conn.DB, "migrations")
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Version returns the current migration version.
func Version(conn *sqlx.DB) (int64, error) {
	migrateMutex.Lock()
	defer migrateMutex.Unlock()

	err := goose.SetDialect(string(goose.DialectSQLite3))
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersion(conn.DB)
}
