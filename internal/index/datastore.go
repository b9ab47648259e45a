package index

import (
	"database/sql"
	"errors"
)

// DataValue is one row of the datastore table.
type DataValue struct {
	Key   string
	Value string
}

// GetDataValue returns the stored value for key. A missing key or a read
// error yields defaultValue.
func (db *DB) GetDataValue(key, defaultValue string) string {
	v, ok, err := db.LookupDataValue(key)
	if err != nil || !ok {
		return defaultValue
	}
	return v
}

// LookupDataValue returns the stored value for key and whether it exists.
func (db *DB) LookupDataValue(key string) (string, bool, error) {
	var v string
	err := db.conn.QueryRow("SELECT value FROM datastore WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetDataValue stores value under key, replacing any previous value.
func (db *DB) SetDataValue(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO datastore (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// RemoveDataValue deletes key. Removing a missing key is not an error.
func (db *DB) RemoveDataValue(key string) error {
	_, err := db.conn.Exec("DELETE FROM datastore WHERE key = ?", key)
	return err
}

// ListDataValues returns the entries whose key starts with prefix, sorted by
// key.
func (db *DB) ListDataValues(prefix string) ([]DataValue, error) {
	rows, err := db.conn.Query(
		"SELECT key, value FROM datastore WHERE substr(key, 1, length(?)) = ? ORDER BY key", prefix, prefix)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var values []DataValue
	for rows.Next() {
		var dv DataValue
		if err := rows.Scan(&dv.Key, &dv.Value); err != nil {
			return nil, err
		}
		values = append(values, dv)
	}
	return values, rows.Err()
}
