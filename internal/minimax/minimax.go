// Package minimax implements exhaustive game-tree search for the 3x3 board.
//
// The tree is at most nine plies deep, so the search runs to the end without
// pruning; the depth bound is a safety margin, not a performance measure.
package minimax

import (
	"fmt"
	"math"

	"github.com/pixelgrid/tictactoe-ai/internal/apperror"
	"github.com/pixelgrid/tictactoe-ai/internal/game"
)

// Terminal scores from the searching player's point of view. Wins score the
// same at any depth, so the search has no preference for faster wins; ties
// fall to the first candidate in move-generator order.
const (
	winScore  = 10
	lossScore = -10
	drawScore = 0
)

// BestMove - returns the strongest move for forPlayer, searching at most
// maxDepth plies ahead. The state must have at least one legal move left;
// asking for a move on a finished board returns ErrNoAvailableMoves.
//
// Only this root call picks a move. The recursion below propagates scores
// alone, so no move ever leaks out of a deeper level.
func BestMove(state game.State, forPlayer game.Player, maxDepth int) (game.Move, error) {
	if over, _ := state.IsTerminal(); over {
		return game.Move{}, fmt.Errorf("%w: game is over", apperror.ErrNoAvailableMoves)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, fmt.Errorf("%w: board is full", apperror.ErrNoAvailableMoves)
	}

	maximizing := state.Turn == forPlayer

	var bestMove game.Move
	bestScore := math.MinInt
	if !maximizing {
		bestScore = math.MaxInt
	}

	for _, move := range moves {
		next, err := state.Apply(move)
		if err != nil {
			return game.Move{}, fmt.Errorf("apply candidate move: %w", err)
		}

		score := search(next, forPlayer, maxDepth-1)
		if maximizing && score > bestScore || !maximizing && score < bestScore {
			bestScore = score
			bestMove = move
		}
	}

	return bestMove, nil
}

// search - scores a position for forPlayer. A subtree cut off by the depth
// bound scores neutral, the same as a draw.
func search(state game.State, forPlayer game.Player, depth int) int {
	if over, winner := state.IsTerminal(); over {
		switch winner {
		case forPlayer:
			return winScore
		case forPlayer.Opponent():
			return lossScore
		default:
			return drawScore
		}
	}

	if depth <= 0 {
		return drawScore
	}

	maximizing := state.Turn == forPlayer

	best := math.MinInt
	if !maximizing {
		best = math.MaxInt
	}

	for _, move := range state.LegalMoves() {
		// moves come from the generator, so Apply cannot fail here
		next, _ := state.Apply(move)

		score := search(next, forPlayer, depth-1)
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}

	return best
}
