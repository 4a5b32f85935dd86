package bingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func board(size int, marked ...int) []bool {
	b := make([]bool, size*size)
	for _, i := range marked {
		b[i] = true
	}
	return b
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		marked   []bool
		size     int
		expected []string
	}{
		{
			name:     "nothing marked",
			marked:   board(3),
			size:     3,
			expected: nil,
		},
		{
			name:     "top row",
			marked:   board(3, 0, 1, 2),
			size:     3,
			expected: []string{"row-0"},
		},
		{
			name:     "middle column",
			marked:   board(3, 1, 4, 7),
			size:     3,
			expected: []string{"col-1"},
		},
		{
			name:     "main diagonal",
			marked:   board(3, 0, 4, 8),
			size:     3,
			expected: []string{"diag-1"},
		},
		{
			name:     "anti diagonal",
			marked:   board(3, 2, 4, 6),
			size:     3,
			expected: []string{"diag-2"},
		},
		{
			name:     "row and column sharing a corner",
			marked:   board(3, 0, 1, 2, 3, 6),
			size:     3,
			expected: []string{"row-0", "col-0"},
		},
		{
			name:     "almost a row",
			marked:   board(4, 0, 1, 2),
			size:     4,
			expected: nil,
		},
		{
			name:     "single cell board",
			marked:   board(1, 0),
			size:     1,
			expected: []string{"row-0", "col-0", "diag-1", "diag-2"},
		},
		{
			name:     "wrong length",
			marked:   []bool{true, true, true},
			size:     3,
			expected: nil,
		},
		{
			name:     "zero size",
			marked:   []bool{},
			size:     0,
			expected: nil,
		},
		{
			name:     "negative size",
			marked:   []bool{true},
			size:     -1,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.marked, tt.size))
		})
	}
}

func TestDetectFullBoardCompletesEveryLine(t *testing.T) {
	for size := 1; size <= 7; size++ {
		full := make([]bool, size*size)
		for i := range full {
			full[i] = true
		}
		assert.Len(t, Detect(full, size), 2*size+2, "size %d", size)
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, Count(board(3, 0, 1, 2, 3, 6), 3))
	assert.Equal(t, 0, Count(board(5), 5))
}

func TestDetectDoesNotMutateInput(t *testing.T) {
	marked := board(3, 0, 4, 8)
	before := append([]bool(nil), marked...)
	Detect(marked, 3)
	assert.Equal(t, before, marked)
}
