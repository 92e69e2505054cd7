package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	novacore "github.com/yuchemey-cpu/NovaCore"
)

// SQLiteStateStore implements novacore.StateStore on a single SQLite table.
type SQLiteStateStore struct {
	db    *sql.DB
	table string
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	Table       string // table name, default "nova_state"
	AutoMigrate bool   // create table if not exist, default true
}

// OpenSQLiteStateStore opens (or creates) the database file and wraps it.
func OpenSQLiteStateStore(path string, config ...SQLiteStoreConfig) (*SQLiteStateStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s, err := NewSQLiteStateStore(db, config...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStateStore wraps an already-opened database.
func NewSQLiteStateStore(db *sql.DB, config ...SQLiteStoreConfig) (*SQLiteStateStore, error) {
	cfg := SQLiteStoreConfig{Table: "nova_state", AutoMigrate: true}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Table == "" {
			cfg.Table = "nova_state"
		}
	}

	s := &SQLiteStateStore{db: db, table: cfg.Table}
	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			return nil, fmt.Errorf("migrate sqlite store: %w", err)
		}
	}
	return s, nil
}

func (s *SQLiteStateStore) migrate() error {
	_, err := s.db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value BLOB NOT NULL)`, s.table))
	return err
}

func (s *SQLiteStateStore) Load(key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, s.table), key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *SQLiteStateStore) Save(key string, data []byte) error {
	_, err := s.db.Exec(fmt.Sprintf(
		`INSERT INTO %s (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, s.table), key, data)
	return err
}

func (s *SQLiteStateStore) Delete(key string) error {
	_, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, s.table), key)
	return err
}

func (s *SQLiteStateStore) Keys() ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStateStore) Close() error {
	return s.db.Close()
}

// Compile-time interface check.
var _ novacore.StateStore = (*SQLiteStateStore)(nil)
