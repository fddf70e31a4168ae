// Package store owns all database access. It is constructed with an
// injected GORM handle so handlers and tests never reach for a global
// connection.
package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a project, target, category, item or
// checklist entry id does not exist.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// lockForUpdate adds row-level locking on databases that support it.
// SQLite has a single writer per database and rejects FOR UPDATE syntax,
// so the transaction alone is enough there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
