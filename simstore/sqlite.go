package simstore

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?cache=shared&_fk=1")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(
		`CREATE TABLE IF NOT EXISTS sim_values (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create sim_values")
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(
		ctx,
		`SELECT
			value
		FROM
			sim_values
		WHERE
			key = ?
		LIMIT
			1`,
		key,
	).Scan(
		&value,
	)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sim_values (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().Unix(),
	)
	return errors.WithStack(err)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
