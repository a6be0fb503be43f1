package sink

import (
	"bytes"
	"database/sql"
	"fmt"
	"image"
	"strings"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// MBTiles is a tile store in the MBTiles 1.3 SQLite layout. Tiles are PNG
// encoded. It is safe for concurrent use.
type MBTiles struct {
	db             *sql.DB
	tileInsertStmt *sql.Stmt
}

var schema = []string{
	`PRAGMA application_id = 1297105496`,
	`CREATE TABLE IF NOT EXISTS metadata (name text, value text)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS metadata_index on metadata (name)`,
	`CREATE TABLE IF NOT EXISTS tiles (zoom_level integer, tile_column integer, tile_row integer, tile_data blob)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS tile_index on tiles (zoom_level, tile_column, tile_row)`,
}

// OpenMBTiles creates or opens the MBTiles file at path and records name in
// its metadata.
func OpenMBTiles(path string, name string) (*MBTiles, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("mbtiles: creating schema: %w", err)
		}
	}

	tileInsertStmt, err := db.Prepare("INSERT OR REPLACE INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		db.Close()
		return nil, err
	}

	mbTiles := &MBTiles{db: db, tileInsertStmt: tileInsertStmt}

	err = mbTiles.InsertMeta(map[string]string{
		"name":   name,
		"format": PNG,
		"type":   "overlay",
	})
	if err != nil {
		mbTiles.Close()
		return nil, err
	}

	return mbTiles, nil
}

// Close releases the db file.
func (m *MBTiles) Close() error {
	if err := m.tileInsertStmt.Close(); err != nil {
		m.db.Close()
		return err
	}
	return m.db.Close()
}

// InsertMeta sets metadata entries.
func (m *MBTiles) InsertMeta(entries map[string]string) error {
	for name, value := range entries {
		_, err := m.db.Exec("INSERT OR REPLACE INTO metadata (name, value) VALUES (?, ?)", name, value)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveTile stores the XYZ tile (z, x, y). MBTiles counts rows from the
// bottom, so y is flipped.
func (m *MBTiles) SaveTile(z, x, y int, img image.Image) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, PNG); err != nil {
		return err
	}

	row := (1 << uint(z)) - 1 - y
	_, err := m.tileInsertStmt.Exec(z, x, row, buf.Bytes())
	return err
}

// Save stores img as tile when name is "<z>/<x>/<y>".
func (m *MBTiles) Save(name string, img image.Image) error {
	var z, x, y int
	if _, err := fmt.Sscanf(strings.TrimSpace(name), "%d/%d/%d", &z, &x, &y); err != nil {
		return fmt.Errorf("mbtiles: %q is not a z/x/y tile name", name)
	}
	return m.SaveTile(z, x, y, img)
}
