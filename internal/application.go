package application

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Caden-Dane/Gomoku/internal/config"
	"github.com/Caden-Dane/Gomoku/internal/repository"
	"github.com/Caden-Dane/Gomoku/internal/usecase"
	"github.com/Caden-Dane/Gomoku/transport/rest"
	"github.com/Caden-Dane/Gomoku/transport/websocket"
)

// RunApp - wires the registry, gateway and dispatcher together, runs both
// servers and shuts everything down on SIGINT/SIGTERM.
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

	rooms := repository.NewRoomRegistry()
	gateway := repository.NewConnectionGateway()

	wsServer := websocket.New(logger)
	gameManager := usecase.NewGameManager(logger, rooms, gateway, wsServer)
	wsServer.SetGameManager(gameManager)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		return rest.Start(groupCtx, conf.HTTPPort, conf.StaticDir)
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		return wsServer.Start(groupCtx, conf.SocketPort)
	})

	if err := group.Wait(); err != nil {
		return err
	}

	log.Info("Application stopped")

	return nil
}
