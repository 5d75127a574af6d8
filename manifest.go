package mapped

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Manifest is a database of every map written and the source it came from
type Manifest struct {
	db *sql.DB
}

// NewManifest opens or creates the manifest database in file
func NewManifest(file string) (*Manifest, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS map (id INTEGER PRIMARY KEY NOT NULL, source_id INTEGER NOT NULL, frame INTEGER NOT NULL, tile_x INTEGER NOT NULL, tile_y INTEGER NOT NULL, FOREIGN KEY(source_id) REFERENCES source(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Manifest{
		db: db,
	}, nil
}

// Close closes the database
func (m *Manifest) Close() error {
	return m.db.Close()
}

// AddSource returns the id of the source with the given SHA1, adding it if
// it's not already known
func (m *Manifest) AddSource(sha, name string) (int64, error) {
	var id int64
	switch err := m.db.QueryRow("SELECT id FROM source WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := m.db.Exec("INSERT INTO source (sha1, name) VALUES (?, ?)", sha, name)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// AddMap records that map p.Map holds the given tile of source. Any earlier
// use of the same map number is replaced.
func (m *Manifest) AddMap(source int64, p Placement) error {
	_, err := m.db.Exec("INSERT OR REPLACE INTO map (id, source_id, frame, tile_x, tile_y) VALUES (?, ?, ?, ?, ?)", p.Map, source, p.Frame, p.Column, p.Row)
	return err
}

// NextMap returns the number following the highest map recorded, or zero
// for an empty manifest
func (m *Manifest) NextMap() (int, error) {
	var next int
	if err := m.db.QueryRow("SELECT COALESCE(MAX(id) + 1, 0) FROM map").Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// Maps returns every map recorded for the source with the given SHA1 in map
// order
func (m *Manifest) Maps(sha string) ([]Placement, error) {
	rows, err := m.db.Query("SELECT m.id, m.frame, m.tile_x, m.tile_y FROM map AS m JOIN source AS s ON m.source_id = s.id WHERE s.sha1 = ? ORDER BY m.id", sha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var placements []Placement
	for rows.Next() {
		var p Placement
		if err := rows.Scan(&p.Map, &p.Frame, &p.Column, &p.Row); err != nil {
			return nil, err
		}
		placements = append(placements, p)
	}
	return placements, rows.Err()
}

// HashFile returns the SHA1 of file in the form stored in the manifest
func HashFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}
