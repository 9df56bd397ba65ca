// Package store is the persistent storage of the LiteCode REPL: a bbolt
// database holding the history of entered lines.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.litecode.dev/pkg/env"
	"src.litecode.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

// ErrNoMatchingCmd is the error returned when a Cmd or PrevCmd query completes
// with no result.
var ErrNoMatchingCmd = errors.New("no matching command line")

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}

// Store is the interface of the history storage.
type Store interface {
	NextCmdSeq() (int, error)
	AddCmd(text string) (int, error)
	Cmd(seq int) (string, error)
	Cmds(from, upto int) ([]Cmd, error)
	PrevCmd(upto int, prefix string) (Cmd, error)
	Close() error
}

// DBStore is a Store backed by a database file.
type DBStore interface {
	Store
	// Path returns the path of the database file.
	Path() string
}

type dbStore struct {
	db *bolt.DB
}

// Functions run in a single transaction when a database is opened, keyed by
// a description.
var initDB = map[string](func(*bolt.Tx) error){}

// Open opens the database at the given path, creating it and any missing
// parent directories if needed.
func Open(path string) (DBStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history database %s: %w", path, err)
	}
	logger.Println("opened database", path)
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return dbStore{db}, nil
}

// DefaultPath returns the default path of the database:
// $XDG_STATE_HOME/litecode/db.bolt, or ~/.local/state/litecode/db.bolt.
func DefaultPath() (string, error) {
	if dir := os.Getenv(env.XDG_STATE_HOME); dir != "" {
		return filepath.Join(dir, "litecode", "db.bolt"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine history database path: %w", err)
	}
	return filepath.Join(home, ".local", "state", "litecode", "db.bolt"), nil
}

func (s dbStore) Path() string { return s.db.Path() }

// Close closes the database.
func (s dbStore) Close() error { return s.db.Close() }
