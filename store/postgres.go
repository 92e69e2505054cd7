package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	novacore "github.com/yuchemey-cpu/NovaCore"
)

// PostgresStateStore implements novacore.StateStore on a PostgreSQL table.
type PostgresStateStore struct {
	db    *sql.DB
	table string
}

// PostgresStoreConfig configures the Postgres store.
type PostgresStoreConfig struct {
	Table       string // table name, default "nova_state"
	AutoMigrate bool   // create table if not exist, default true
}

// OpenPostgresStateStore connects with the given DSN and wraps the pool.
func OpenPostgresStateStore(dsn string, config ...PostgresStoreConfig) (*PostgresStateStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	s, err := NewPostgresStateStore(db, config...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStateStore wraps an already-opened pool.
func NewPostgresStateStore(db *sql.DB, config ...PostgresStoreConfig) (*PostgresStateStore, error) {
	cfg := PostgresStoreConfig{Table: "nova_state", AutoMigrate: true}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Table == "" {
			cfg.Table = "nova_state"
		}
	}

	s := &PostgresStateStore{db: db, table: cfg.Table}
	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			return nil, fmt.Errorf("migrate postgres store: %w", err)
		}
	}
	return s, nil
}

func (s *PostgresStateStore) migrate() error {
	_, err := s.db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value BYTEA NOT NULL)`, s.table))
	return err
}

func (s *PostgresStateStore) Load(key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table), key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *PostgresStateStore) Save(key string, data []byte) error {
	_, err := s.db.Exec(fmt.Sprintf(
		`INSERT INTO %s (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, s.table), key, data)
	return err
}

func (s *PostgresStateStore) Delete(key string) error {
	_, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table), key)
	return err
}

func (s *PostgresStateStore) Keys() ([]string, error) {
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

func (s *PostgresStateStore) Close() error {
	return s.db.Close()
}

// Compile-time interface check.
var _ novacore.StateStore = (*PostgresStateStore)(nil)
