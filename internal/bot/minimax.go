package bot

import (
	"fmt"

	"github.com/pixelgrid/tictactoe-ai/internal/game"
	"github.com/pixelgrid/tictactoe-ai/internal/minimax"
)

// DefaultDepth is deep enough to read every continuation on a 3x3 board, so
// the default opponent plays perfectly.
const DefaultDepth = 8

type minimaxStrategy struct {
	player game.Player
	depth  int
}

// NewMinimax - returns a strategy backed by exhaustive search. A depth of
// zero or less falls back to DefaultDepth.
func NewMinimax(player game.Player, depth int) Strategy {
	if depth <= 0 {
		depth = DefaultDepth
	}

	return &minimaxStrategy{player: player, depth: depth}
}

func (that *minimaxStrategy) PredictMove(state game.State) (game.Move, error) {
	move, err := minimax.BestMove(state, that.player, that.depth)
	if err != nil {
		return game.Move{}, fmt.Errorf("minimax search failed: %w", err)
	}

	return move, nil
}
