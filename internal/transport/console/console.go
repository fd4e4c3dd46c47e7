// Package console is the interactive shell around the game controller. It
// renders the board after every state change and turns typed cell names into
// controller moves. The game core does not know it exists; it only talks
// back through the controller's notification hooks.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixelgrid/tictactoe-ai/internal/game"
	"github.com/pixelgrid/tictactoe-ai/internal/usecase"
)

type gameController interface {
	SubmitHumanMove(row, col int) error
	Reset()
	Phase() usecase.Phase
	HumanMark() game.Player
}

type Console struct {
	logger     *slog.Logger
	controller gameController
	in         io.Reader
	out        io.Writer
}

func New(logger *slog.Logger, controller gameController, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:     logger.With("component", "console"),
		controller: controller,
		in:         in,
		out:        out,
	}
}

// Run - starts a game and processes commands until the context is canceled
// or input ends. Commands: a cell name like "b2", "reset", or "quit".
func (that *Console) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	that.controller.Reset()

	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}

		if err := scanner.Err(); err != nil {
			log.Error("failed to read input", "error", err)
		}
	}()

	for {
		that.prompt()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				log.Info("input closed")
				return nil
			}

			quit, err := that.handleLine(strings.ToLower(strings.TrimSpace(line)))
			if err != nil {
				return fmt.Errorf("failed to handle command: %w", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// RenderState - draws the board. Wired to the controller's OnStateChanged.
func (that *Console) RenderState(state game.State) {
	fmt.Fprintln(that.out)
	fmt.Fprintln(that.out, "    1   2   3")

	for row := 0; row < game.Size; row++ {
		fmt.Fprintf(that.out, " %c ", 'a'+row)
		for col := 0; col < game.Size; col++ {
			cell := state.Cell(game.Move{Row: row, Col: col})
			if cell == game.EmptyCell {
				cell = " "
			}

			fmt.Fprintf(that.out, " %s ", cell)
			if col < game.Size-1 {
				fmt.Fprint(that.out, "|")
			}
		}
		fmt.Fprintln(that.out)

		if row < game.Size-1 {
			fmt.Fprintln(that.out, "   ---+---+---")
		}
	}

	fmt.Fprintln(that.out)
}

// AnnounceResult - prints the outcome. Wired to the controller's OnGameOver.
func (that *Console) AnnounceResult(winner game.Player) {
	if winner == game.EmptyCell {
		fmt.Fprintln(that.out, "Draw! Type \"reset\" to play again.")
		return
	}

	fmt.Fprintf(that.out, "%s wins! Type \"reset\" to play again.\n", winner)
}

func (that *Console) handleLine(line string) (quit bool, err error) {
	switch line {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "reset":
		that.controller.Reset()
		return false, nil
	}

	move, ok := parseMove(line)
	if !ok {
		fmt.Fprintf(that.out, "Unknown command %q. Enter a cell like \"b2\", \"reset\" or \"quit\".\n", line)
		return false, nil
	}

	if err := that.controller.SubmitHumanMove(move.Row, move.Col); err != nil {
		return false, fmt.Errorf("failed to submit move: %w", err)
	}

	return false, nil
}

func (that *Console) prompt() {
	switch that.controller.Phase() {
	case usecase.PhaseAwaitingInput:
		fmt.Fprintf(that.out, "[%s] your move > ", that.controller.HumanMark())
	case usecase.PhaseGameOver:
		fmt.Fprint(that.out, "> ")
	default:
		fmt.Fprint(that.out, "> ")
	}
}

// parseMove - reads a cell name of the form "b2": a letter a-c for the row
// followed by a digit 1-3 for the column.
func parseMove(line string) (game.Move, bool) {
	if len(line) != 2 {
		return game.Move{}, false
	}

	row := int(line[0] - 'a')
	col := int(line[1] - '1')
	move := game.Move{Row: row, Col: col}

	return move, move.InRange()
}
