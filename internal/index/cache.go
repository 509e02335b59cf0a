package index

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jmhobbs/concord/internal/canon"
	"github.com/jmhobbs/concord/internal/corpus"
	"github.com/jmhobbs/concord/internal/errors"
)

// Cache meta keys.
const (
	metaTranslation   = "translation"
	metaFingerprint   = "fingerprint"
	metaFormatVersion = "format_version"
	metaStemming      = "stemming"
	metaTotalTokens   = "total_tokens"
)

// CachePath returns the cache file for a translation under dir.
func CachePath(dir, translation string) string {
	return filepath.Join(dir, translation+".db")
}

// SaveCache persists a built index to a SQLite cache file. The file is
// rewritten wholesale; a fingerprint mismatch on load discards it.
func SaveCache(path string, idx *Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeCacheIO, err)
	}

	db, err := sql.Open(sqlDriver, path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheIO, err)
	}
	defer func() { _ = db.Close() }()

	// Single writer; the engine holds a file lock during rebuild.
	db.SetMaxOpenConns(1)

	stmts := []string{
		`DROP TABLE IF EXISTS meta`,
		`DROP TABLE IF EXISTS verses`,
		`DROP TABLE IF EXISTS postings`,
		`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		`CREATE TABLE verses (
			ordinal INTEGER PRIMARY KEY,
			book    INTEGER NOT NULL,
			chapter INTEGER NOT NULL,
			verse   INTEGER NOT NULL,
			text    TEXT    NOT NULL,
			length  INTEGER NOT NULL
		)`,
		`CREATE TABLE postings (term TEXT PRIMARY KEY, df INTEGER NOT NULL, data BLOB NOT NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(errors.ErrCodeCacheIO, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheIO, err)
	}
	defer func() { _ = tx.Rollback() }()

	meta := map[string]string{
		metaTranslation:   idx.translation,
		metaFingerprint:   idx.fingerprint,
		metaFormatVersion: strconv.Itoa(FormatVersion),
		metaStemming:      strconv.FormatBool(idx.stemming),
		metaTotalTokens:   strconv.Itoa(idx.totalTokens),
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return errors.Wrap(errors.ErrCodeCacheIO, err)
		}
	}

	verseStmt, err := tx.Prepare(`INSERT INTO verses (ordinal, book, chapter, verse, text, length) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheIO, err)
	}
	for ordinal, v := range idx.verses {
		if _, err := verseStmt.Exec(ordinal, int(v.Book), v.Chapter, v.Verse, v.Text, idx.lengths[ordinal]); err != nil {
			return errors.Wrap(errors.ErrCodeCacheIO, err)
		}
	}

	postingStmt, err := tx.Prepare(`INSERT INTO postings (term, df, data) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheIO, err)
	}
	for _, term := range idx.terms() {
		list := idx.postings[term]
		blob, err := encodePostings(list)
		if err != nil {
			return errors.Wrap(errors.ErrCodeCacheIO, err)
		}
		if _, err := postingStmt.Exec(term, len(list), blob); err != nil {
			return errors.Wrap(errors.ErrCodeCacheIO, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeCacheIO, err)
	}

	slog.Debug("index_cache_saved",
		slog.String("translation", idx.translation),
		slog.String("path", path),
		slog.Int("verses", len(idx.verses)),
		slog.Int("terms", len(idx.postings)))
	return nil
}

// LoadCache opens a cache file and validates it against the expected
// translation, corpus fingerprint, format version, and normalization
// mode. Returns ok=false on any mismatch or missing file; the caller
// then rebuilds.
func LoadCache(path, translation, fingerprint string, stemming bool) (*Index, bool, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, false, nil
	}

	db, err := sql.Open(sqlDriver, path+"?mode=ro")
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCacheIO, err)
	}
	defer func() { _ = db.Close() }()

	meta, err := readMeta(db)
	if err != nil {
		// Unreadable cache is treated as a miss, not a failure.
		slog.Warn("index_cache_unreadable",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, false, nil
	}

	if meta[metaTranslation] != translation ||
		meta[metaFingerprint] != fingerprint ||
		meta[metaFormatVersion] != strconv.Itoa(FormatVersion) ||
		meta[metaStemming] != strconv.FormatBool(stemming) {
		slog.Debug("index_cache_stale", slog.String("translation", translation))
		return nil, false, nil
	}

	totalTokens, err := strconv.Atoi(meta[metaTotalTokens])
	if err != nil {
		return nil, false, nil
	}

	idx := &Index{
		translation: translation,
		fingerprint: fingerprint,
		stemming:    stemming,
		postings:    make(map[string][]Posting),
		ordinalByID: make(map[int]int),
		chapters:    make(map[canon.Book][]int),
		totalTokens: totalTokens,
	}

	if err := readVerses(db, idx); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCacheIO, err)
	}
	if err := readPostings(db, idx); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCacheIO, err)
	}

	slog.Debug("index_cache_loaded",
		slog.String("translation", translation),
		slog.Int("verses", len(idx.verses)))
	return idx, true, nil
}

func readMeta(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func readVerses(db *sql.DB, idx *Index) error {
	rows, err := db.Query(`SELECT ordinal, book, chapter, verse, text, length FROM verses ORDER BY ordinal`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ordinal, book, chapter, verse, length int
		var text string
		if err := rows.Scan(&ordinal, &book, &chapter, &verse, &text, &length); err != nil {
			return err
		}
		v := corpus.Verse{Book: canon.Book(book), Chapter: chapter, Verse: verse, Text: text}
		idx.verses = append(idx.verses, v)
		idx.lengths = append(idx.lengths, length)
		idx.ordinalByID[v.ID()] = ordinal
		idx.recordBounds(v)
	}
	return rows.Err()
}

func readPostings(db *sql.DB, idx *Index) error {
	rows, err := db.Query(`SELECT term, data FROM postings`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var term string
		var blob []byte
		if err := rows.Scan(&term, &blob); err != nil {
			return err
		}
		list, err := decodePostings(blob)
		if err != nil {
			return err
		}
		idx.postings[term] = list
	}
	return rows.Err()
}

func encodePostings(list []Posting) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(list); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePostings(blob []byte) ([]Posting, error) {
	var list []Posting
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}
