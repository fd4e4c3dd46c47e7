package bot

import (
	"errors"
	"fmt"

	"github.com/pixelgrid/tictactoe-ai/internal/game"
)

// Strategy picks a legal move for the player it was built for. A strategy
// treats the state it receives as read-only; states are values, so it could
// not reach the caller's copy anyway.
type Strategy interface {
	PredictMove(state game.State) (game.Move, error)
}

const (
	KindRandom  = "random"
	KindMinimax = "minimax"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// New - builds the strategy selected by kind, bound to the given player for
// the lifetime of one game.
func New(kind string, player game.Player, depth int) (Strategy, error) {
	switch kind {
	case KindRandom:
		return NewRandom(player), nil
	case KindMinimax:
		return NewMinimax(player, depth), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
	}
}
