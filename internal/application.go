package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixelgrid/tictactoe-ai/internal/bot"
	"github.com/pixelgrid/tictactoe-ai/internal/config"
	"github.com/pixelgrid/tictactoe-ai/internal/game"
	"github.com/pixelgrid/tictactoe-ai/internal/transport/console"
	"github.com/pixelgrid/tictactoe-ai/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	factory, err := strategyFactory(conf)
	if err != nil {
		return fmt.Errorf("could not build opponent factory: %w", err)
	}

	controller := usecase.NewGameController(logger, factory)

	ui := console.New(logger, controller, os.Stdin, os.Stdout)
	controller.OnStateChanged = ui.RenderState
	controller.OnGameOver = ui.AnnounceResult

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting console session", "strategy", conf.Bot.Strategy, "depth", conf.Bot.Depth)
		errCh <- ui.Run(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("console session error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// strategyFactory checks the configured strategy once up front so a typo
// fails at startup instead of at the first reset.
func strategyFactory(conf *config.Config) (usecase.StrategyFactory, error) {
	if _, err := bot.New(conf.Bot.Strategy, game.PlayerO, conf.Bot.Depth); err != nil {
		return nil, err
	}

	return func(player game.Player) bot.Strategy {
		strategy, err := bot.New(conf.Bot.Strategy, player, conf.Bot.Depth)
		if err != nil {
			// unreachable: the kind was checked above
			return bot.NewMinimax(player, conf.Bot.Depth)
		}
		return strategy
	}, nil
}
