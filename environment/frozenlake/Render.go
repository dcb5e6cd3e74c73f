package frozenlake

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Render prints a colored text rendering of the lake to the terminal.
// The agent's tile is highlighted; holes are red, the goal is green.
func (f *FrozenLake) Render() {
	var builder strings.Builder

	for i, row := range f.lakeMap {
		for j := 0; j < len(row); j++ {
			index := i*f.cols + j

			var tile aurora.Value
			switch {
			case index == f.position:
				tile = aurora.Bold(aurora.BgCyan(string(row[j])))
			case row[j] == TileHole:
				tile = aurora.Red(string(row[j]))
			case row[j] == TileGoal:
				tile = aurora.Green(string(row[j]))
			default:
				tile = aurora.White(string(row[j]))
			}
			fmt.Fprintf(&builder, "%v ", tile)
		}
		fmt.Fprintln(&builder)
	}

	fmt.Println(builder.String())
}
