package sink

import "database/sql"

// Tile returns the PNG data of tile (z, x, y), nil if it does not exist.
func (m *MBTiles) Tile(z, x, y int) ([]byte, error) {
	var data []byte
	row := (1 << uint(z)) - 1 - y

	err := m.db.QueryRow("SELECT tile_data FROM tiles WHERE zoom_level = ? AND tile_column = ? AND tile_row = ?", z, x, row).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return data, err
}

// Meta returns the metadata value for name.
func (m *MBTiles) Meta(name string) (string, error) {
	var value string
	err := m.db.QueryRow("SELECT value FROM metadata WHERE name = ?", name).Scan(&value)
	return value, err
}
