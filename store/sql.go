package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQL is a Store backed by a single table in a SQLite or PostgreSQL database.
//
//	CREATE TABLE <table> (key TEXT PRIMARY KEY, value TEXT NOT NULL)
type SQL struct {
	db    *sql.DB
	table string

	get    string
	set    string
	remove string
}

var _ Store = (*SQL)(nil)

// OpenSQLite opens (or creates) the SQLite database at path, ":memory:" works too.
func OpenSQLite(path, table string) (*SQL, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// an in-memory database only lives as long as its connection
	db.SetMaxOpenConns(1)

	return NewSQLite(db, table)
}

// NewSQLite initializes the table in db, which must use a SQLite driver.
func NewSQLite(db *sql.DB, table string) (*SQL, error) {
	s := &SQL{
		db:     db,
		table:  tableName(table),
		get:    `SELECT value FROM %s WHERE key = ?`,
		set:    `INSERT INTO %s (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		remove: `DELETE FROM %s WHERE key = ?`,
	}
	return s, s.init()
}

// OpenPostgres connects to dsn through the pgx driver.
func OpenPostgres(dsn, table string) (*SQL, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	return NewPostgres(db, table)
}

// NewPostgres initializes the table in db, which must use a PostgreSQL driver.
func NewPostgres(db *sql.DB, table string) (*SQL, error) {
	s := &SQL{
		db:     db,
		table:  tableName(table),
		get:    `SELECT value FROM %s WHERE key = $1`,
		set:    `INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		remove: `DELETE FROM %s WHERE key = $1`,
	}
	return s, s.init()
}

func tableName(table string) string {
	if table == "" {
		return "hooks_kv"
	}
	return table
}

func (s *SQL) init() error {
	s.get = fmt.Sprintf(s.get, s.table)
	s.set = fmt.Sprintf(s.set, s.table)
	s.remove = fmt.Sprintf(s.remove, s.table)

	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`, s.table))
	if err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

func (s *SQL) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(s.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}

	return value, true, nil
}

func (s *SQL) Set(key, value string) error {
	if _, err := s.db.Exec(s.set, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Remove(key string) error {
	if _, err := s.db.Exec(s.remove, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
