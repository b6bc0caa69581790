package domain

import "math"

// Board is the display view derived from an ordered task sequence. It is computed on
// demand and never stored.
type Board struct {
	Incomplete     []Task
	Completed      []Task
	CompletedCount int
	TotalCount     int
}

// NewBoard partitions tasks into incomplete and completed subsets, keeping the
// relative order of the source sequence in both.
func NewBoard(tasks []Task) Board {
	board := Board{
		Incomplete: make([]Task, 0, len(tasks)),
		Completed:  make([]Task, 0),
		TotalCount: len(tasks),
	}
	for _, task := range tasks {
		if task.Completed {
			board.Completed = append(board.Completed, task)
		} else {
			board.Incomplete = append(board.Incomplete, task)
		}
	}
	board.CompletedCount = len(board.Completed)
	return board
}

// Percent returns round(completed/total*100), or 0 for an empty board.
func (b Board) Percent() int {
	return ProgressPercent(b.CompletedCount, b.TotalCount)
}

// IsEmpty reports whether there are no tasks at all.
func (b Board) IsEmpty() bool {
	return b.TotalCount == 0
}

// ProgressPercent returns the rounded completion percentage.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
