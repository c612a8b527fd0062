// Package prefixstore persists the many-to-many relation between
// normalized prefixes and file offsets ("refs") that the indexer builds
// and the lookup engine queries. It is backed by an embedded,
// transactional, pure-Go SQLite engine (modernc.org/sqlite) — the
// specific engine is a free choice (any embedded relational store with
// ordered keys and transactions would serve); only the set-intersection
// semantics of Refs are load-bearing.
package prefixstore

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/dictcore/ding/internal/dicterr"
)

const schema = `
CREATE TABLE IF NOT EXISTS prefixes (
	prefix_id   INTEGER PRIMARY KEY,
	prefix_bytes BLOB NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS refs (
	prefix_id INTEGER NOT NULL REFERENCES prefixes(prefix_id),
	ref       INTEGER NOT NULL,
	UNIQUE(prefix_id, ref)
);
CREATE INDEX IF NOT EXISTS idx_refs_prefix ON refs(prefix_id);
`

// Store wraps the on-disk index database.
type Store struct {
	db *sql.DB
	tx *sql.Tx // non-nil only while an install transaction is open

	// prefixIDCache memoizes prefix_bytes -> prefix_id lookups within the
	// lifetime of a single open transaction, avoiding a round trip for
	// prefixes already seen earlier in the same install.
	prefixIDCache map[string]int64
}

// Open opens (creating if absent) the index database at path and ensures
// its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, dicterr.NewStoreError("open", err)
	}
	db.SetMaxOpenConns(1) // the SQLite driver is not safe for concurrent writers
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, dicterr.NewStoreError("create schema", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Truncate empties both tables, used at the start of a reinstall.
func (s *Store) Truncate() error {
	if _, err := s.db.Exec(`DELETE FROM refs`); err != nil {
		return dicterr.NewStoreError("truncate refs", err)
	}
	if _, err := s.db.Exec(`DELETE FROM prefixes`); err != nil {
		return dicterr.NewStoreError("truncate prefixes", err)
	}
	return nil
}

// BeginInstall opens the single transaction that spans an entire install
// pass, mandatory for write throughput on an embedded store.
func (s *Store) BeginInstall() error {
	tx, err := s.db.Begin()
	if err != nil {
		return dicterr.NewStoreError("begin transaction", err)
	}
	s.tx = tx
	s.prefixIDCache = make(map[string]int64, 4096)
	return nil
}

// CommitInstall commits the open install transaction.
func (s *Store) CommitInstall() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	s.prefixIDCache = nil
	if err != nil {
		return dicterr.NewStoreError("commit transaction", err)
	}
	return nil
}

// RollbackInstall abandons the open install transaction, used on error or
// cancellation.
func (s *Store) RollbackInstall() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	s.prefixIDCache = nil
	if err != nil {
		return dicterr.NewStoreError("rollback transaction", err)
	}
	return nil
}

// Add ensures every prefix in prefixes exists (insert-if-absent) and
// inserts one (prefix_id, ref) row per prefix, within the open install
// transaction. The caller has already deduplicated prefixes within a
// single call; duplicates across calls are filtered by the refs table's
// uniqueness constraint.
func (s *Store) Add(ref int64, prefixes [][]byte) error {
	if s.tx == nil {
		return dicterr.NewStoreError("add", fmt.Errorf("no install transaction open"))
	}
	for _, p := range prefixes {
		id, err := s.prefixID(p)
		if err != nil {
			return err
		}
		if _, err := s.tx.Exec(
			`INSERT OR IGNORE INTO refs(prefix_id, ref) VALUES (?, ?)`, id, ref,
		); err != nil {
			return dicterr.NewStoreError("insert ref", err)
		}
	}
	return nil
}

func (s *Store) prefixID(prefix []byte) (int64, error) {
	key := string(prefix)
	if id, ok := s.prefixIDCache[key]; ok {
		return id, nil
	}
	var id int64
	err := s.tx.QueryRow(`SELECT prefix_id FROM prefixes WHERE prefix_bytes = ?`, prefix).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := s.tx.Exec(`INSERT INTO prefixes(prefix_bytes) VALUES (?)`, prefix)
		if err != nil {
			return 0, dicterr.NewStoreError("insert prefix", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, dicterr.NewStoreError("insert prefix id", err)
		}
	} else if err != nil {
		return 0, dicterr.NewStoreError("lookup prefix", err)
	}
	s.prefixIDCache[key] = id
	return id, nil
}

// RefsForKeywordPrefixes returns, in ascending order, the set of refs
// that appear for every prefix given (set intersection). Implemented as a
// single join/group-by/having query rather than repeated probes.
func (s *Store) RefsForKeywordPrefixes(prefixes [][]byte) ([]int64, error) {
	if len(prefixes) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(prefixes))
	args := make([]any, len(prefixes))
	for i, p := range prefixes {
		placeholders[i] = "?"
		args[i] = p
	}
	query := fmt.Sprintf(`
		SELECT r.ref
		FROM refs r
		JOIN prefixes p ON p.prefix_id = r.prefix_id
		WHERE p.prefix_bytes IN (%s)
		GROUP BY r.ref
		HAVING COUNT(DISTINCT p.prefix_bytes) = ?
		ORDER BY r.ref ASC
	`, strings.Join(placeholders, ","))
	args = append(args, len(prefixes))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, dicterr.NewStoreError("intersect refs", err)
	}
	defer rows.Close()

	var refs []int64
	for rows.Next() {
		var ref int64
		if err := rows.Scan(&ref); err != nil {
			return nil, dicterr.NewStoreError("scan ref", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, dicterr.NewStoreError("iterate refs", err)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs, nil
}

// AllPrefixes returns every distinct prefix in the store as strings, used
// by the did-you-mean suggestion path. Not used on the hot lookup path.
func (s *Store) AllPrefixes() ([]string, error) {
	rows, err := s.db.Query(`SELECT prefix_bytes FROM prefixes`)
	if err != nil {
		return nil, dicterr.NewStoreError("list prefixes", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p []byte
		if err := rows.Scan(&p); err != nil {
			return nil, dicterr.NewStoreError("scan prefix", err)
		}
		out = append(out, string(p))
	}
	if err := rows.Err(); err != nil {
		return nil, dicterr.NewStoreError("iterate prefixes", err)
	}
	return out, nil
}
