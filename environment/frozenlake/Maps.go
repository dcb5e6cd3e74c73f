package frozenlake

import "fmt"

// Tiles making up a lake map
const (
	TileStart  byte = 'S'
	TileFrozen byte = 'F'
	TileHole   byte = 'H'
	TileGoal   byte = 'G'
)

// FourByFour is the standard 4x4 FrozenLake map
var FourByFour = []string{
	"SFFF",
	"FHFH",
	"FFFH",
	"HFFG",
}

// EightByEight is the standard 8x8 FrozenLake map
var EightByEight = []string{
	"SFFFFFFF",
	"FFFFFFFF",
	"FFFHFFFF",
	"FFFFFHFF",
	"FFFHFFFF",
	"FHHFFFHF",
	"FHFFHFHF",
	"FFFHFFFG",
}

// MapByName returns the built-in lake map with the argument name,
// either "4x4" or "8x8"
func MapByName(name string) ([]string, error) {
	switch name {
	case "4x4":
		return FourByFour, nil
	case "8x8":
		return EightByEight, nil
	}
	return nil, fmt.Errorf("mapByName: no built-in map %q", name)
}

// validateMap ensures that a lake map is rectangular, contains exactly
// one start tile, and contains at least one goal tile
func validateMap(lakeMap []string) error {
	if len(lakeMap) == 0 {
		return fmt.Errorf("validateMap: empty map")
	}

	cols := len(lakeMap[0])
	starts, goals := 0, 0

	for i, row := range lakeMap {
		if len(row) != cols {
			return fmt.Errorf("validateMap: row %d has length %d, want %d",
				i, len(row), cols)
		}

		for j := 0; j < len(row); j++ {
			switch row[j] {
			case TileStart:
				starts++
			case TileGoal:
				goals++
			case TileFrozen, TileHole:
			default:
				return fmt.Errorf("validateMap: illegal tile %q at (%d, %d)",
					row[j], i, j)
			}
		}
	}

	if starts != 1 {
		return fmt.Errorf("validateMap: map must have exactly 1 start "+
			"tile, got %d", starts)
	}
	if goals == 0 {
		return fmt.Errorf("validateMap: map must have at least 1 goal tile")
	}
	return nil
}

// startIndex returns the flattened index of the start tile
func startIndex(lakeMap []string) int {
	cols := len(lakeMap[0])
	for i, row := range lakeMap {
		for j := 0; j < len(row); j++ {
			if row[j] == TileStart {
				return i*cols + j
			}
		}
	}
	panic("startIndex: map has no start tile")
}

// tileAt returns the tile at the argument flattened index
func tileAt(lakeMap []string, index int) byte {
	cols := len(lakeMap[0])
	return lakeMap[index/cols][index%cols]
}
