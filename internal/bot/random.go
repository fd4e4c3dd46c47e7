package bot

import (
	"math/rand"

	"github.com/pixelgrid/tictactoe-ai/internal/apperror"
	"github.com/pixelgrid/tictactoe-ai/internal/game"
)

type randomStrategy struct {
	player game.Player
}

// NewRandom - returns a strategy that plays uniformly random legal moves.
func NewRandom(player game.Player) Strategy {
	return &randomStrategy{player: player}
}

// PredictMove samples the legal-move slice directly, so every empty cell is
// equally likely no matter how full the board is.
func (that *randomStrategy) PredictMove(state game.State) (game.Move, error) {
	availableMoves := state.LegalMoves()
	if len(availableMoves) == 0 {
		return game.Move{}, apperror.ErrNoAvailableMoves
	}

	return availableMoves[rand.Intn(len(availableMoves))], nil //nolint: gosec // it's ok
}
