package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pixelgrid/tictactoe-ai/internal/apperror"
	"github.com/pixelgrid/tictactoe-ai/internal/bot"
	"github.com/pixelgrid/tictactoe-ai/internal/game"
)

// Phase is the controller's position in the turn cycle.
type Phase string

const (
	PhaseAwaitingInput    Phase = "awaiting_input"
	PhaseAwaitingStrategy Phase = "awaiting_strategy"
	PhaseGameOver         Phase = "game_over"
)

// StrategyFactory builds a fresh opponent for the mark it will play. The
// controller calls it once per reset so every game gets its own strategy
// instance.
type StrategyFactory func(player game.Player) bot.Strategy

// GameController owns the canonical game state and drives turn alternation
// between human input and the bound strategy. It is the only thing that
// mutates the canonical state; everyone else sees value copies.
type GameController struct {
	logger  *slog.Logger
	factory StrategyFactory

	gameID    string
	state     game.State
	humanMark game.Player
	strategy  bot.Strategy
	phase     Phase

	// OnStateChanged fires after every accepted move and after reset,
	// carrying a copy of the new state.
	OnStateChanged func(state game.State)
	// OnGameOver fires once per game; an empty mark means a draw.
	OnGameOver func(winner game.Player)
}

func NewGameController(logger *slog.Logger, factory StrategyFactory) *GameController {
	return &GameController{
		logger:  logger.With("component", "controller"),
		factory: factory,

		// nothing is playable until the first Reset
		phase: PhaseGameOver,
	}
}

// Reset - starts a new game: fresh state, fresh game id, the human's mark
// drawn at random, and a fresh strategy for the other mark.
//
// When the strategy's mark is the one that opens the game, its first move is
// played here, uniformly at random rather than through the strategy. The
// human therefore always starts looking at a board with zero or one marks,
// and a second-moving human never sees a searched opening.
func (that *GameController) Reset() {
	log := that.logger.With("method", "Reset")

	that.gameID = uuid.NewString()
	that.state = game.NewState()
	that.humanMark = randomMark()
	that.strategy = that.factory(that.humanMark.Opponent())

	if that.humanMark != that.state.Turn {
		that.playRandomOpening(log)
	}

	that.phase = PhaseAwaitingInput

	log.Info("game reset",
		"gameID", that.gameID,
		"humanMark", string(that.humanMark),
		"moveCount", that.state.MoveCount,
	)

	that.notifyStateChanged()
}

// SubmitHumanMove - handles one human move. A move outside the board, on an
// occupied cell, or arriving in the wrong phase is dropped with no state
// change, matching a click on a dead part of the board. After an accepted
// move the strategy answers immediately unless the game ended.
func (that *GameController) SubmitHumanMove(row, col int) error {
	log := that.logger.With("method", "SubmitHumanMove", "gameID", that.gameID)

	if that.phase != PhaseAwaitingInput {
		log.Debug("input ignored", "phase", string(that.phase))
		return nil
	}

	next, err := that.state.Apply(game.Move{Row: row, Col: col})
	if err != nil {
		if errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrCellOutOfRange) {
			log.Debug("input ignored", "row", row, "col", col, "reason", err)
			return nil
		}

		return fmt.Errorf("failed to apply human move: %w", err)
	}

	that.state = next
	that.notifyStateChanged()

	if that.finishIfTerminal() {
		return nil
	}

	that.phase = PhaseAwaitingStrategy

	return that.playStrategyTurn()
}

// State - returns a copy of the canonical state.
func (that *GameController) State() game.State {
	return that.state
}

func (that *GameController) Phase() Phase {
	return that.phase
}

func (that *GameController) HumanMark() game.Player {
	return that.humanMark
}

func (that *GameController) GameID() string {
	return that.gameID
}

// playStrategyTurn - asks the bound strategy for a move and applies it. A
// failure here is not bad input: the strategy was invoked on a position it
// cannot move in, which means the phase machine itself is broken, so the
// error propagates.
func (that *GameController) playStrategyTurn() error {
	log := that.logger.With("method", "playStrategyTurn", "gameID", that.gameID)

	move, err := that.strategy.PredictMove(that.state)
	if err != nil {
		return fmt.Errorf("strategy failed to pick a move: %w", err)
	}

	next, err := that.state.Apply(move)
	if err != nil {
		return fmt.Errorf("failed to apply strategy move: %w", err)
	}

	that.state = next
	log.Debug("strategy moved", "row", move.Row, "col", move.Col)

	that.notifyStateChanged()

	if that.finishIfTerminal() {
		return nil
	}

	that.phase = PhaseAwaitingInput

	return nil
}

func (that *GameController) playRandomOpening(log *slog.Logger) {
	moves := that.state.LegalMoves()
	opening := moves[rand.Intn(len(moves))] //nolint: gosec // it's ok

	next, err := that.state.Apply(opening)
	if err != nil {
		// unreachable: the board is empty at this point
		log.Error("failed to play opening move", "error", err)
		return
	}

	that.state = next
	log.Debug("opening move played", "row", opening.Row, "col", opening.Col)
}

func (that *GameController) finishIfTerminal() bool {
	over, winner := that.state.IsTerminal()
	if !over {
		return false
	}

	that.phase = PhaseGameOver
	that.logger.Info("game over", "gameID", that.gameID, "winner", string(winner))

	if that.OnGameOver != nil {
		that.OnGameOver(winner)
	}

	return true
}

func (that *GameController) notifyStateChanged() {
	if that.OnStateChanged != nil {
		that.OnStateChanged(that.state)
	}
}

func randomMark() game.Player {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return game.PlayerX
	}
	return game.PlayerO
}
