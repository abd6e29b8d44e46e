// Package render draws solved boards as images, for debugging searches and
// for overlaying results onto automation screenshots.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mmbn-tools/navicust/solver"
)

const cellSize = 32

var (
	backgroundColor  = color.RGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xff}
	gridLineColor    = color.RGBA{R: 0x48, G: 0x48, B: 0x52, A: 0xff}
	forbiddenColor   = color.RGBA{R: 0x10, G: 0x10, B: 0x12, A: 0xff}
	commandLineColor = color.RGBA{R: 0xe8, G: 0xd4, B: 0x4a, A: 0xff}
	labelColor       = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
)

// palette maps part colors to fill colors, cycling when a board uses more
// colors than the palette has.
var palette = []color.RGBA{
	{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}, // white
	{R: 0xf2, G: 0x5e, B: 0x5a, A: 0xff}, // red
	{R: 0xf2, G: 0xc6, B: 0x3c, A: 0xff}, // yellow
	{R: 0x57, G: 0xb8, B: 0x5c, A: 0xff}, // green
	{R: 0x4f, G: 0x8f, B: 0xe8, A: 0xff}, // blue
	{R: 0xc0, G: 0x63, B: 0xd8, A: 0xff}, // purple
}

// Board replays a solution and draws the resulting grid: one square per
// cell, filled with the owning part's color, forbidden corners darkened, and
// the command line row underlined. Each placed cell is labeled with its
// requirement index.
func Board(parts []solver.Part, requirements []solver.Requirement, settings solver.GridSettings, sol solver.Solution) (*image.RGBA, error) {
	grid, err := solver.Apply(parts, requirements, settings, sol)
	if err != nil {
		return nil, fmt.Errorf("failed to replay solution: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, settings.Width*cellSize, settings.Height*cellSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	for y := 0; y < settings.Height; y++ {
		for x := 0; x < settings.Width; x++ {
			cellRect := image.Rect(x*cellSize, y*cellSize, (x+1)*cellSize, (y+1)*cellSize)
			inner := cellRect.Inset(1)

			switch v := grid.At(x, y); v {
			case solver.CellEmpty:
				draw.Draw(img, cellRect, image.NewUniform(gridLineColor), image.Point{}, draw.Src)
				draw.Draw(img, inner, image.NewUniform(backgroundColor), image.Point{}, draw.Src)
			case solver.CellForbidden:
				draw.Draw(img, cellRect, image.NewUniform(gridLineColor), image.Point{}, draw.Src)
				draw.Draw(img, inner, image.NewUniform(forbiddenColor), image.Point{}, draw.Src)
			default:
				fill := palette[parts[requirements[v].PartIndex].Color%len(palette)]
				draw.Draw(img, cellRect, image.NewUniform(gridLineColor), image.Point{}, draw.Src)
				draw.Draw(img, inner, image.NewUniform(fill), image.Point{}, draw.Src)
				drawLabel(img, cellRect, fmt.Sprintf("%d", v))
			}
		}
	}

	// Underline the command line row.
	if settings.CommandLineRow >= 0 && settings.CommandLineRow < settings.Height {
		y := (settings.CommandLineRow + 1) * cellSize
		underline := image.Rect(0, y-2, settings.Width*cellSize, y)
		draw.Draw(img, underline, image.NewUniform(commandLineColor), image.Point{}, draw.Src)
	}

	return img, nil
}

// drawLabel renders text roughly centered in rect.
func drawLabel(img *image.RGBA, rect image.Rectangle, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot: fixed.P(
			rect.Min.X+(rect.Dx()-width)/2,
			rect.Min.Y+(rect.Dy()+face.Ascent)/2,
		),
	}
	d.DrawString(text)
}

// WritePNG renders a solution and writes it to path.
func WritePNG(path string, parts []solver.Part, requirements []solver.Requirement, settings solver.GridSettings, sol solver.Solution) error {
	img, err := Board(parts, requirements, settings, sol)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
