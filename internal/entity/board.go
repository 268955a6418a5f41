package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
)

// Mark is the content of a single cell, also used to name a player.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// Opponent returns the other side. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

const (
	BoardSize  = 9
	CenterCell = 4
)

// Line is a winning triple of cell indexes.
type Line [3]int

// Lines are scanned in this order: rows, columns, diagonals.
var Lines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

var (
	CornerCells = [4]int{0, 2, 6, 8}
	SideCells   = [4]int{1, 3, 5, 7}
)

// Board is a row-major 3x3 grid.
type Board [BoardSize]Mark

// Validate rejects boards holding anything but X, O or empty cells.
func (that Board) Validate() error {
	for i, mark := range that {
		if mark != EmptyCell && !mark.IsPlayer() {
			return fmt.Errorf("%w: %q at cell %d", apperror.ErrInvalidMark, mark, i)
		}
	}

	return nil
}

// UnmarshalJSON accepts exactly BoardSize cells.
func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []Mark
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("%w: %d cells, want %d", apperror.ErrInvalidBoard, len(cells), BoardSize)
	}

	copy(that[:], cells)

	return nil
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// EmptyCells returns the indexes of empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, mark := range that {
		if mark == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, mark := range that {
		if mark == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// WinningLine returns the first completed line in scan order.
func (that Board) WinningLine() (Line, Mark, bool) {
	for _, line := range Lines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != EmptyCell && a == b && b == c {
			return line, a, true
		}
	}

	return Line{}, EmptyCell, false
}

// Completes reports whether placing mark at cell would finish a line for mark.
func (that Board) Completes(cell int, mark Mark) bool {
	if !IsValidCell(cell) || that[cell] != EmptyCell {
		return false
	}

	for _, line := range Lines {
		owned := 0
		contains := false
		for _, idx := range line {
			switch {
			case idx == cell:
				contains = true
			case that[idx] == mark:
				owned++
			}
		}

		if contains && owned == 2 {
			return true
		}
	}

	return false
}
