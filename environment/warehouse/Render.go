package warehouse

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
)

// Grid tiles used by the console renderer
const (
	tileFloor    = "."
	tileRobot    = "R"
	tileTarget   = "T"
	tileObstacle = "X"
)

// Cell size in pixels for the PNG renderer
const cellSize = 96

// Render prints a colored text rendering of the warehouse grid to the
// terminal, along with the last action taken
func (w *Warehouse) Render() {
	fmt.Println(w.renderGrid(nil))
	fmt.Printf("Action: %v\n\n", lastActionName(w.lastAction))
}

// Render prints a colored text rendering of the advanced warehouse
// grid to the terminal, along with the last action and battery charge
func (a *Advanced) Render() {
	fmt.Println(a.renderGrid(a.obstacles))
	fmt.Printf("Action: %v | Battery: %d\n\n",
		lastActionName(a.lastAction), a.battery)
}

// renderGrid builds the colored tile representation of the grid
func (w *Warehouse) renderGrid(obstacles map[cell]bool) string {
	var builder strings.Builder

	for r := 0; r < w.rows; r++ {
		for c := 0; c < w.cols; c++ {
			var tile aurora.Value
			switch {
			case r == w.robotRow && c == w.robotCol:
				tile = aurora.Bold(aurora.Cyan(tileRobot))
			case r == w.targetRow && c == w.targetCol:
				tile = aurora.Yellow(tileTarget)
			case obstacles[cell{r, c}]:
				tile = aurora.Red(tileObstacle)
			default:
				tile = aurora.Gray(8, tileFloor)
			}
			fmt.Fprintf(&builder, "%v ", tile)
		}
		fmt.Fprintln(&builder)
	}

	return builder.String()
}

// RenderPNG draws the warehouse grid to a PNG file at the argument
// path
func (w *Warehouse) RenderPNG(path string) error {
	return renderPNG(path, w, nil)
}

// RenderPNG draws the advanced warehouse grid, including obstacles, to
// a PNG file at the argument path
func (a *Advanced) RenderPNG(path string) error {
	return renderPNG(path, a.Warehouse, a.obstacles)
}

// renderPNG draws the grid with gg: a white floor with grid lines, a
// gray block per obstacle, a green square for the target, and a blue
// circle for the robot
func renderPNG(path string, w *Warehouse, obstacles map[cell]bool) error {
	ctx := gg.NewContext(w.cols*cellSize, w.rows*cellSize)

	ctx.SetRGB(1, 1, 1)
	ctx.Clear()

	for r := 0; r < w.rows; r++ {
		for c := 0; c < w.cols; c++ {
			x := float64(c * cellSize)
			y := float64(r * cellSize)

			if obstacles[cell{r, c}] {
				ctx.SetRGB(0.47, 0.47, 0.47)
				ctx.DrawRectangle(x, y, cellSize, cellSize)
				ctx.Fill()
			}

			if r == w.targetRow && c == w.targetCol {
				ctx.SetRGB(0.18, 0.65, 0.30)
				ctx.DrawRectangle(x+cellSize/8, y+cellSize/8,
					cellSize*3/4, cellSize*3/4)
				ctx.Fill()
			}

			if r == w.robotRow && c == w.robotCol {
				ctx.SetRGB(0.16, 0.35, 0.75)
				ctx.DrawCircle(x+cellSize/2, y+cellSize/2, cellSize/3)
				ctx.Fill()
			}

			// Grid lines
			ctx.SetRGB(0.85, 0.85, 0.85)
			ctx.SetLineWidth(1)
			ctx.DrawRectangle(x, y, cellSize, cellSize)
			ctx.Stroke()
		}
	}

	return ctx.SavePNG(path)
}

// lastActionName returns the name of the last action, or "-" before
// the first action of an episode
func lastActionName(action int) string {
	if action < 0 || action >= NumActions {
		return "-"
	}
	return actionNames[action]
}
