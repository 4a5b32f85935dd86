package bingo

import "fmt"

// Line ids for the diagonals
const (
	Diagonal     = "diag-1" // top-left to bottom-right
	AntiDiagonal = "diag-2" // top-right to bottom-left
)

// RowLine returns the line id for row i
func RowLine(i int) string {
	return fmt.Sprintf("row-%d", i)
}

// ColumnLine returns the line id for column i
func ColumnLine(i int) string {
	return fmt.Sprintf("col-%d", i)
}

// Detect returns the id of every fully marked line on a size x size board.
// marked is row-major. Rows come first, then columns, then diagonals.
// A malformed board yields no lines.
func Detect(marked []bool, size int) []string {
	if size <= 0 || len(marked) != size*size {
		return nil
	}

	var lines []string

	for r := 0; r < size; r++ {
		if allMarked(marked, size, func(i int) int { return r*size + i }) {
			lines = append(lines, RowLine(r))
		}
	}

	for c := 0; c < size; c++ {
		if allMarked(marked, size, func(i int) int { return i*size + c }) {
			lines = append(lines, ColumnLine(c))
		}
	}

	if allMarked(marked, size, func(i int) int { return i*size + i }) {
		lines = append(lines, Diagonal)
	}
	if allMarked(marked, size, func(i int) int { return i*size + (size - 1 - i) }) {
		lines = append(lines, AntiDiagonal)
	}

	return lines
}

// Count returns the number of completed lines
func Count(marked []bool, size int) int {
	return len(Detect(marked, size))
}

func allMarked(marked []bool, size int, cell func(i int) int) bool {
	for i := 0; i < size; i++ {
		if !marked[cell(i)] {
			return false
		}
	}
	return true
}
