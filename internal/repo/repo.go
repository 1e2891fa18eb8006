// Package repo provides the data-access layer over PostgreSQL. Cascade rules
// live in schema.sql: deleting a user removes their posts, comments, sessions
// and follow edges; deleting a post removes its comments; deleting a group
// nulls the group reference on its posts.
package repo

import (
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Store implements the queries behind every page of the site.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
