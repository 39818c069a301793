/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Empty is the symbol of a passable tile.
const Empty = ' '

// ReferenceMap is the 16x16 layout the renderer starts with when no map file is given.
const ReferenceMap = "0000222222220000" +
	"1              0" +
	"1      11111   0" +
	"1     0        0" +
	"0     0  1110000" +
	"0     3        0" +
	"0   10000      0" +
	"0   0   11100  0" +
	"0   0   0      0" +
	"0   0   1  00000" +
	"0       1      0" +
	"2       1      0" +
	"0       0      0" +
	"0 0000000      0" +
	"0              0" +
	"0002222222200000"

const (
	ReferenceMapWidth  = 16
	ReferenceMapHeight = 16
)

// Grid is an immutable row-major tile map.
type Grid struct {
	width  int
	height int
	tiles  []byte
}

func NewGrid(width, height int, tiles string) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("grid %dx%d needs %d tiles, got %d", width, height, width*height, len(tiles))
	}
	return &Grid{width: width, height: height, tiles: []byte(tiles)}, nil
}

// ReferenceGrid returns the grid built from ReferenceMap.
func ReferenceGrid() *Grid {
	g, err := NewGrid(ReferenceMapWidth, ReferenceMapHeight, ReferenceMap)
	if err != nil {
		panic(err)
	}
	return g
}

// ReadGrid reads a text map with one row per line. Non-positive dimensions are
// inferred from the first line and the number of lines.
func ReadGrid(r io.Reader, width, height int) (*Grid, error) {
	var (
		sb    strings.Builder
		lines int
		first = -1
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first < 0 {
			first = len(line)
		}
		sb.WriteString(line)
		lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	if width <= 0 {
		width = first
	}
	if height <= 0 {
		height = lines
	}
	g, err := NewGrid(width, height, sb.String())
	if err != nil {
		return nil, fmt.Errorf("malformed map: %w", err)
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.width && row < g.height
}

// TileAt returns the symbol at (col,row). Callers must stay inside the grid.
func (g *Grid) TileAt(col, row int) byte {
	if !g.Contains(col, row) {
		panic(fmt.Sprintf("tile (%d,%d) outside %dx%d grid", col, row, g.width, g.height))
	}
	return g.tiles[col+row*g.width]
}

// IsEmpty reports whether (col,row) is passable. Cells outside the grid are empty.
func (g *Grid) IsEmpty(col, row int) bool {
	return !g.Contains(col, row) || g.tiles[col+row*g.width] == Empty
}

// Row returns a copy of one grid row.
func (g *Grid) Row(row int) string {
	if row < 0 || row >= g.height {
		panic(fmt.Sprintf("row %d outside %dx%d grid", row, g.width, g.height))
	}
	return string(g.tiles[row*g.width : (row+1)*g.width])
}
