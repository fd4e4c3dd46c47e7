package game

import (
	"fmt"

	"github.com/pixelgrid/tictactoe-ai/internal/apperror"
)

// Size is the board edge length; boards are always 3x3.
const Size = 3

// Player is a mark on the board. PlayerX always moves first.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"

	// EmptyCell marks an unoccupied cell; it doubles as "no winner" in
	// terminal queries.
	EmptyCell Player = ""
)

// Opponent - returns the other mark.
func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// WinCombos lists every row, column and diagonal as board indexes.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move is a board coordinate, row and column both in [0,2].
type Move struct {
	Row int
	Col int
}

func (that Move) index() int {
	return that.Row*Size + that.Col
}

// InRange - reports whether the move targets a cell on the board.
func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// Board holds the cells in row-major order.
type Board [Size * Size]Player

// State is one game position. It is a plain value: copying it is cloning
// it, and Apply returns a fresh copy instead of mutating the receiver.
type State struct {
	Board     Board
	Turn      Player
	MoveCount int
}

// NewState - returns an empty board with X to move.
func NewState() State {
	return State{Turn: PlayerX}
}

// Cell - returns the mark at the given coordinate.
func (that State) Cell(move Move) Player {
	return that.Board[move.index()]
}

// LegalMoves - returns every empty cell in row-major order. This order is
// also the search child order, so it decides tie-breaking.
func (that State) LegalMoves() []Move {
	moves := make([]Move, 0, len(that.Board)-that.MoveCount)
	for i, cell := range that.Board {
		if cell == EmptyCell {
			moves = append(moves, Move{Row: i / Size, Col: i % Size})
		}
	}

	return moves
}

// Apply - returns the position after the current player marks the given
// cell. The receiver is left untouched, so callers exploring
// continuations can keep the parent position around.
func (that State) Apply(move Move) (State, error) {
	if over, _ := that.IsTerminal(); over {
		return that, apperror.ErrGameFinished
	}

	if !move.InRange() {
		return that, fmt.Errorf("%w: row %d col %d", apperror.ErrCellOutOfRange, move.Row, move.Col)
	}

	if that.Board[move.index()] != EmptyCell {
		return that, fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, move.Row, move.Col)
	}

	next := that
	next.Board[move.index()] = that.Turn
	next.MoveCount++
	next.Turn = that.Turn.Opponent()

	return next, nil
}

// IsTerminal - reports whether the game is over and who won. A draw is
// (true, EmptyCell); an unfinished game is (false, EmptyCell).
func (that State) IsTerminal() (bool, Player) {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return true, a
		}
	}

	if that.MoveCount == len(that.Board) {
		return true, EmptyCell
	}

	return false, EmptyCell
}
