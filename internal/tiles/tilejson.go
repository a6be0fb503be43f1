package tiles

import (
	"encoding/json"
	"io"
)

// TileJSON represents a tile.json
type TileJSON struct {
	TileJSON    string   `json:"tilejson"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Scheme      string   `json:"scheme"`
	Tiles       []string `json:"tiles"`
	Minzoom     uint8    `json:"minzoom"`
	Maxzoom     uint8    `json:"maxzoom"`
}

// WriteTileJSON writes the tile.json of an XYZ pyramid whose tiles are
// stored as {z}/{x}/{y}.<ext>.
func WriteTileJSON(w io.Writer, name, description, ext string, maxLod uint8) error {
	obj := TileJSON{
		TileJSON:    "2.2.0",
		Name:        name,
		Description: description,
		Scheme:      "xyz",
		Tiles:       []string{"{z}/{x}/{y}." + ext},
		Minzoom:     0,
		Maxzoom:     maxLod,
	}

	bytes, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return err
	}

	_, err = w.Write(bytes)
	return err
}
