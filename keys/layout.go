// Package keys maps physical QWERTY keys onto grid cells.
package keys

import (
	"errors"
	"fmt"
	"unicode"

	"gridsnap/grid"
)

// rows is the QWERTY block used for cell addressing. Each row has ten keys so
// every supported column count is addressable.
var rows = [grid.MaxRows]string{
	"QWERTYUIOP",
	"ASDFGHJKL;",
	"ZXCVBNM,./",
}

// ErrInvalidKey is returned for keys that do not address a cell of the shape.
var ErrInvalidKey = errors.New("invalid key")

// InvalidKeyError carries the offending key.
type InvalidKeyError struct {
	Key   rune
	Shape grid.Shape
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %q for %s grid", e.Key, e.Shape)
}

func (e *InvalidKeyError) Unwrap() error {
	return ErrInvalidKey
}

// KeyToCell returns the cell addressed by r. Letters are case-insensitive.
func KeyToCell(r rune, shape grid.Shape) (grid.CellIndex, error) {
	up := unicode.ToUpper(r)
	for row := 0; row < shape.Rows && row < len(rows); row++ {
		col := 0
		for _, k := range rows[row] {
			if col >= shape.Cols {
				break
			}
			if k == up {
				return grid.CellIndex{Row: row, Col: col}, nil
			}
			col++
		}
	}
	return grid.CellIndex{}, &InvalidKeyError{Key: r, Shape: shape}
}

// CellToKey returns the key that addresses c.
func CellToKey(c grid.CellIndex, shape grid.Shape) (rune, bool) {
	if c.Row < 0 || c.Row >= shape.Rows || c.Row >= len(rows) ||
		c.Col < 0 || c.Col >= shape.Cols || c.Col >= len(rows[c.Row]) {
		return 0, false
	}
	return rune(rows[c.Row][c.Col]), true
}

// ValidKeys lists every key of the shape in row-major order.
func ValidKeys(shape grid.Shape) []rune {
	var out []rune
	for row := 0; row < shape.Rows && row < len(rows); row++ {
		for col := 0; col < shape.Cols && col < len(rows[row]); col++ {
			out = append(out, rune(rows[row][col]))
		}
	}
	return out
}

// IsGridKey reports whether r belongs to the addressing block at all,
// regardless of shape.
func IsGridKey(r rune) bool {
	_, err := KeyToCell(r, grid.Shape{Cols: grid.MaxCols, Rows: grid.MaxRows})
	return err == nil
}
