package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Open connects to the database named by url and applies pending migrations.
// postgres:// and postgresql:// URLs use lib/pq; anything else is treated as
// a SQLite file path.
func Open(url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database url not set")
	}

	driver, dialect, dsn := "sqlite3", "sqlite3", url
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		driver, dialect = "postgres", "postgres"
	} else {
		var path string
		path, dsn = sqliteDSN(url)
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite3" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(conn, dialect); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return conn, nil
}

// sqliteDSN returns the file path of a SQLite url and the DSN with
// foreign keys and a busy timeout added to any query it already has.
func sqliteDSN(url string) (path, dsn string) {
	path, query, hasQuery := strings.Cut(url, "?")
	path = strings.TrimPrefix(path, "file:")

	sep := "?"
	if hasQuery {
		sep = "&"
		if query == "" {
			sep = ""
		}
	}
	return path, url + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func runMigrations(conn *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		return err
	}

	version, err := goose.GetDBVersion(conn)
	if err != nil {
		return fmt.Errorf("failed to verify migration version: %w", err)
	}
	log.Printf("[database] schema at version %d (%s)", version, dialect)
	return nil
}
