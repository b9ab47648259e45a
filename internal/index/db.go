package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pfassina/wikiseo/internal/wiki"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS topics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    page_name TEXT NOT NULL,
    page_key TEXT NOT NULL UNIQUE,
    path TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS topic_versions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    topic_id INTEGER NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    edited_at INTEGER NOT NULL,
    hash TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_topic_versions_topic ON topic_versions(topic_id, id);

CREATE TABLE IF NOT EXISTS topic_contents (
    version_id INTEGER NOT NULL REFERENCES topic_versions(id) ON DELETE CASCADE,
    language TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (version_id, language)
);

CREATE TABLE IF NOT EXISTS datastore (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return initDB(conn)
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would get its own empty in-memory database.
	conn.SetMaxOpenConns(1)
	return initDB(conn)
}

func initDB(conn *sql.DB) (*DB, error) {
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// UpsertTopic inserts or updates the topic stored at path and returns its ID.
// Page names are unique case-insensitively; a second file with the same
// page name fails with a constraint error.
func (db *DB) UpsertTopic(pageName, path string) (int64, error) {
	_, err := db.conn.Exec(`
		INSERT INTO topics (page_name, page_key, path)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			page_name = excluded.page_name,
			page_key = excluded.page_key
	`, pageName, pageKey(pageName), path)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := db.conn.QueryRow("SELECT id FROM topics WHERE path = ?", path).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// AddVersion appends a version with its per-language contents and returns
// the new version ID.
func (db *DB) AddVersion(topicID int64, editedAt time.Time, hash string, contents map[string]wiki.Content) (id int64, err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.Exec("INSERT INTO topic_versions (topic_id, edited_at, hash) VALUES (?, ?, ?)",
		topicID, editedAt.Unix(), hash)
	if err != nil {
		return 0, fmt.Errorf("insert version: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for lang, c := range contents {
		if _, err = tx.Exec("INSERT INTO topic_contents (version_id, language, title, body) VALUES (?, ?, ?, ?)",
			id, lang, c.Title, c.Body); err != nil {
			return 0, fmt.Errorf("insert content %q: %w", lang, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// LatestVersion returns the most recently added version of a topic, or
// nil when the topic has none.
func (db *DB) LatestVersion(topicID int64) (*wiki.TopicVersion, error) {
	v := &wiki.TopicVersion{TopicID: topicID}
	var editedAt int64
	err := db.conn.QueryRow(`
		SELECT id, edited_at, hash FROM topic_versions
		WHERE topic_id = ? ORDER BY id DESC LIMIT 1
	`, topicID).Scan(&v.ID, &editedAt, &v.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.EditedAt = time.Unix(editedAt, 0).UTC()

	rows, err := db.conn.Query("SELECT language, title, body FROM topic_contents WHERE version_id = ?", v.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	v.Contents = map[string]wiki.Content{}
	for rows.Next() {
		var c wiki.Content
		if err := rows.Scan(&c.Language, &c.Title, &c.Body); err != nil {
			return nil, err
		}
		v.Contents[c.Language] = c
	}
	return v, rows.Err()
}

// LatestHash returns the content hash of the newest version of the topic
// stored at path, or "" when there is none.
func (db *DB) LatestHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow(`
		SELECT v.hash FROM topic_versions v
		JOIN topics t ON t.id = v.topic_id
		WHERE t.path = ? ORDER BY v.id DESC LIMIT 1
	`, path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return hash, err
}

// CountVersions returns how many versions a topic has.
func (db *DB) CountVersions(topicID int64) (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM topic_versions WHERE topic_id = ?", topicID).Scan(&n)
	return n, err
}

// ListTopics returns every topic ordered by page name, case-insensitively.
func (db *DB) ListTopics() ([]wiki.Topic, error) {
	rows, err := db.conn.Query("SELECT id, page_name, path FROM topics ORDER BY page_key, id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var topics []wiki.Topic
	for rows.Next() {
		var t wiki.Topic
		if err := rows.Scan(&t.ID, &t.PageName, &t.Path); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// FindTopic returns the topic with the given page name (case-insensitive),
// or nil when there is none.
func (db *DB) FindTopic(pageName string) (*wiki.Topic, error) {
	var t wiki.Topic
	err := db.conn.QueryRow("SELECT id, page_name, path FROM topics WHERE page_key = ?", pageKey(pageName)).
		Scan(&t.ID, &t.PageName, &t.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TopicPaths returns the source paths of all indexed topics.
func (db *DB) TopicPaths() ([]string, error) {
	rows, err := db.conn.Query("SELECT path FROM topics ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// DeleteTopic removes a topic and all its versions.
func (db *DB) DeleteTopic(path string) error {
	_, err := db.conn.Exec("DELETE FROM topics WHERE path = ?", path)
	return err
}

func pageKey(pageName string) string {
	// Page name uniqueness is case-insensitive.
	return strings.ToLower(pageName)
}
