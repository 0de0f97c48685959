package library

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"retag/internal/match"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases must be recreated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version does not match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrLocked indicates another retag process holds the library lock.
var ErrLocked = errors.New("library is locked by another process")

// Store manages library persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the library database at path, acquiring a
// sidecar lock first.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure library directory: %w", err)
		}
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the library lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	return dbErr
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// AddAlbum stores an album and its items, returning the album row ID.
func (s *Store) AddAlbum(ctx context.Context, artist, album string, items []match.Item) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := tx.ExecContext(ctx,
		"INSERT INTO albums (artist, album, added_at) VALUES (?, ?, ?)",
		artist, album, now)
	if err != nil {
		return 0, fmt.Errorf("insert album: %w", err)
	}
	albumID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, item := range items {
		if err := insertItem(ctx, tx, &albumID, item, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit album: %w", err)
	}
	return albumID, nil
}

// AddItem stores a standalone item with no album association.
func (s *Store) AddItem(ctx context.Context, item match.Item) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertItem(ctx, tx, nil, item, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit item: %w", err)
	}
	return nil
}

func insertItem(ctx context.Context, tx *sql.Tx, albumID *int64, item match.Item, now string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO items (
            album_id, path, title, artist, track, disc,
            length, bitrate, filesize, format, added_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		albumID, item.Path, item.Title, item.Artist, item.Track, item.Disc,
		item.Length, item.Bitrate, item.Filesize, item.Format, now)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// FindAlbumDuplicates returns the item groups of albums already stored under
// the same artist and album name.
func (s *Store) FindAlbumDuplicates(ctx context.Context, artist, album string) ([][]match.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM albums WHERE artist = ? AND album = ? ORDER BY id",
		artist, album)
	if err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan album id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}

	groups := make([][]match.Item, 0, len(ids))
	for _, id := range ids {
		items, err := s.albumItems(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, items)
	}
	return groups, nil
}

func (s *Store) albumItems(ctx context.Context, albumID int64) ([]match.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, title, artist, track, disc, length, bitrate, filesize, format
         FROM items WHERE album_id = ? ORDER BY disc, track`, albumID)
	if err != nil {
		return nil, fmt.Errorf("query album items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// FindItemDuplicates returns stored items with the same artist and title.
func (s *Store) FindItemDuplicates(ctx context.Context, artist, title string) ([]match.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, title, artist, track, disc, length, bitrate, filesize, format
         FROM items WHERE artist = ? AND title = ? ORDER BY id`, artist, title)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]match.Item, error) {
	var items []match.Item
	for rows.Next() {
		var item match.Item
		if err := rows.Scan(
			&item.Path, &item.Title, &item.Artist, &item.Track, &item.Disc,
			&item.Length, &item.Bitrate, &item.Filesize, &item.Format,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// AlbumSummary is one stored album with its item count.
type AlbumSummary struct {
	ID      int64
	Artist  string
	Album   string
	Items   int
	AddedAt string
}

// ListAlbums returns every stored album ordered by artist and album name.
func (s *Store) ListAlbums(ctx context.Context) ([]AlbumSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.artist, a.album, a.added_at, COUNT(i.id)
         FROM albums a LEFT JOIN items i ON i.album_id = a.id
         GROUP BY a.id ORDER BY a.artist, a.album, a.id`)
	if err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()

	var summaries []AlbumSummary
	for rows.Next() {
		var sum AlbumSummary
		if err := rows.Scan(&sum.ID, &sum.Artist, &sum.Album, &sum.AddedAt, &sum.Items); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return summaries, nil
}

// RemoveAlbum deletes stored albums matching the identity along with their
// items, returning how many albums were removed.
func (s *Store) RemoveAlbum(ctx context.Context, artist, album string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM albums WHERE artist = ? AND album = ?", artist, album)
	if err != nil {
		return 0, fmt.Errorf("delete album: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
