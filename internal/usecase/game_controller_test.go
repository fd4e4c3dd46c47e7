package usecase

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgrid/tictactoe-ai/internal/bot"
	"github.com/pixelgrid/tictactoe-ai/internal/game"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func minimaxFactory(player game.Player) bot.Strategy {
	return bot.NewMinimax(player, bot.DefaultDepth)
}

func randomFactory(player game.Player) bot.Strategy {
	return bot.NewRandom(player)
}

// resetUntilHumanIs resets the controller until the random mark assignment
// gives the human the wanted mark. Each draw is a coin flip, so the retry
// bound is never hit in practice.
func resetUntilHumanIs(t *testing.T, controller *GameController, mark game.Player) {
	t.Helper()

	for i := 0; i < 200; i++ {
		controller.Reset()
		if controller.HumanMark() == mark {
			return
		}
	}

	t.Fatalf("random mark assignment never gave the human %s", mark)
}

func TestGameController_Reset(t *testing.T) {
	t.Run("Leaves zero or one marks on the board", func(t *testing.T) {
		// Given: a controller with a random opponent
		controller := NewGameController(discardLogger(), randomFactory)

		for j := 0; j < 20; j++ {
			// When: starting a new game
			controller.Reset()

			// Then: the controller awaits human input
			require.Equal(t, PhaseAwaitingInput, controller.Phase())

			// Then: the human moving first means an empty board, otherwise
			// the opponent's random opening is already placed
			state := controller.State()
			if controller.HumanMark() == game.PlayerX {
				assert.Equal(t, 0, state.MoveCount)
				assert.Equal(t, game.PlayerX, state.Turn)
			} else {
				assert.Equal(t, 1, state.MoveCount)
				assert.Equal(t, game.PlayerO, state.Turn)
			}
		}
	})

	t.Run("Starts a fresh game each time", func(t *testing.T) {
		// Given: a controller
		controller := NewGameController(discardLogger(), randomFactory)

		// When: resetting twice
		controller.Reset()
		firstID := controller.GameID()
		controller.Reset()

		// Then: the game id changes
		require.NotEmpty(t, firstID)
		require.NotEqual(t, firstID, controller.GameID())
	})

	t.Run("Fires the state notification", func(t *testing.T) {
		// Given: a controller with a state listener attached
		controller := NewGameController(discardLogger(), randomFactory)

		var notified int
		controller.OnStateChanged = func(game.State) { notified++ }

		// When: starting a new game
		controller.Reset()

		// Then: the listener saw the initial state exactly once
		require.Equal(t, 1, notified)
	})
}

func TestGameController_SubmitHumanMove(t *testing.T) {
	t.Run("Accepted move triggers the opponent's reply", func(t *testing.T) {
		// Given: a new game where the human plays X on an empty board
		controller := NewGameController(discardLogger(), minimaxFactory)
		resetUntilHumanIs(t, controller, game.PlayerX)

		// When: the human takes a corner
		err := controller.SubmitHumanMove(0, 0)
		require.NoError(t, err)

		// Then: the opponent already answered and it is the human's turn again
		require.Equal(t, PhaseAwaitingInput, controller.Phase())
		require.Equal(t, 2, controller.State().MoveCount)
		require.Equal(t, game.PlayerX, controller.State().Turn)
	})

	t.Run("Occupied cell is ignored without state change", func(t *testing.T) {
		// Given: a game where the human already took a cell
		controller := NewGameController(discardLogger(), minimaxFactory)
		resetUntilHumanIs(t, controller, game.PlayerX)

		require.NoError(t, controller.SubmitHumanMove(0, 0))
		before := controller.State()

		// When: the human clicks the same cell again
		err := controller.SubmitHumanMove(0, 0)

		// Then: nothing happens
		require.NoError(t, err)
		require.Equal(t, before, controller.State())
		require.Equal(t, PhaseAwaitingInput, controller.Phase())
	})

	t.Run("Out-of-range coordinate is ignored", func(t *testing.T) {
		// Given: a fresh game
		controller := NewGameController(discardLogger(), minimaxFactory)
		resetUntilHumanIs(t, controller, game.PlayerX)
		before := controller.State()

		// When: a coordinate off the board arrives
		err := controller.SubmitHumanMove(7, -1)

		// Then: nothing happens
		require.NoError(t, err)
		require.Equal(t, before, controller.State())
	})

	t.Run("Input before the first reset is ignored", func(t *testing.T) {
		// Given: a controller that was never reset
		controller := NewGameController(discardLogger(), minimaxFactory)

		// When: a move arrives anyway
		err := controller.SubmitHumanMove(1, 1)

		// Then: it is dropped
		require.NoError(t, err)
		require.Equal(t, PhaseGameOver, controller.Phase())
	})

	t.Run("Input after game over is ignored until reset", func(t *testing.T) {
		// Given: a finished game (random human against a perfect opponent)
		controller := NewGameController(discardLogger(), minimaxFactory)
		resetUntilHumanIs(t, controller, game.PlayerX)
		playUntilOver(t, controller)

		before := controller.State()

		// When: the human keeps clicking
		err := controller.SubmitHumanMove(0, 0)

		// Then: nothing happens until a reset
		require.NoError(t, err)
		require.Equal(t, before, controller.State())
		require.Equal(t, PhaseGameOver, controller.Phase())

		controller.Reset()
		require.Equal(t, PhaseAwaitingInput, controller.Phase())
	})

	t.Run("Notifications fire per accepted move and once on game over", func(t *testing.T) {
		// Given: a fresh game with both listeners attached
		controller := NewGameController(discardLogger(), minimaxFactory)
		resetUntilHumanIs(t, controller, game.PlayerX)

		var stateChanges, gameOvers int
		controller.OnStateChanged = func(game.State) { stateChanges++ }
		controller.OnGameOver = func(game.Player) { gameOvers++ }

		// When: playing the game out
		playUntilOver(t, controller)

		// Then: every accepted move notified and the game ended exactly once
		require.Equal(t, controller.State().MoveCount, stateChanges)
		require.Equal(t, 1, gameOvers)
	})
}

// TestGameController_PerfectOpponentNeverLoses plays random human moves
// against the minimax opponent across many games; the opponent must win or
// draw every one of them.
func TestGameController_PerfectOpponentNeverLoses(t *testing.T) {
	for i := 0; i < 25; i++ {
		controller := NewGameController(discardLogger(), minimaxFactory)

		var winner game.Player
		var ended bool
		controller.OnGameOver = func(w game.Player) {
			winner = w
			ended = true
		}

		controller.Reset()
		playUntilOver(t, controller)

		require.True(t, ended)
		assert.NotEqual(t, controller.HumanMark(), winner, "random play beat the search")
	}
}

// playUntilOver submits random legal human moves until the game ends.
func playUntilOver(t *testing.T, controller *GameController) {
	t.Helper()

	human := bot.NewRandom(controller.HumanMark())

	for i := 0; i < 9; i++ {
		if controller.Phase() == PhaseGameOver {
			return
		}

		move, err := human.PredictMove(controller.State())
		require.NoError(t, err)
		require.NoError(t, controller.SubmitHumanMove(move.Row, move.Col))
	}

	require.Equal(t, PhaseGameOver, controller.Phase())
}
