package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlorenz/robotgame-go/internal/adapters/httpapi"
	"github.com/mlorenz/robotgame-go/internal/adapters/persistence"
	"github.com/mlorenz/robotgame-go/internal/adapters/worldgen"
	appgame "github.com/mlorenz/robotgame-go/internal/application/game"
	"github.com/mlorenz/robotgame-go/internal/application/mediator"
	"github.com/mlorenz/robotgame-go/internal/application/round"
	"github.com/mlorenz/robotgame-go/internal/infrastructure/config"
	"github.com/mlorenz/robotgame-go/internal/infrastructure/database"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "robotgame-server",
		Short: "Round-based robot strategy game server",
	}
	root.AddCommand(newServeCommand(), newVersionCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (default: search config.yaml)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("robotgame-server %s\n", version)
		},
	}
}

// timed logs how long each handled request took, with the request type
// as the label
func timed(handler mediator.RequestHandler) mediator.RequestHandler {
	return mediator.Wrap(handler, func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		start := time.Now()
		response, err := next(ctx, request)
		log.Printf("[handler] %T took %s", request, time.Since(start))
		return response, err
	})
}

func serve(cfg *config.Config) error {
	log.Printf("connecting to %s database", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := persistence.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	games := persistence.NewGormGameRepository(db)
	lock := persistence.NewGormGameLock(db, nil, persistence.LockConfig{
		LeaseDuration:  cfg.Lock.LeaseDuration,
		InitialBackoff: cfg.Lock.InitialBackoff,
		MaxBackoff:     cfg.Lock.MaxBackoff,
		MaxWait:        cfg.Lock.MaxWait,
	})
	worlds := worldgen.NewGenerator()
	resolver := round.NewResolver(rand.New(rand.NewSource(time.Now().UnixNano())))

	defaults := appgame.Defaults{
		MapSize:       cfg.Game.MapSize,
		MaxRounds:     cfg.Game.MaxRounds,
		MaxPlayers:    cfg.Game.MaxPlayers,
		StartingMoney: cfg.Game.StartingMoney,
	}

	server := httpapi.NewServer(httpapi.Handlers{
		CreateGame:     timed(appgame.NewCreateGameHandler(games, worlds, defaults)),
		JoinGame:       timed(appgame.NewJoinGameHandler(games, lock, defaults)),
		Lifecycle:      timed(appgame.NewLifecycleHandler(games, lock)),
		ListGames:      timed(appgame.NewListGamesHandler(games)),
		SubmitCommands: timed(round.NewSubmitCommandsHandler(games, lock, resolver)),
		GetMap:         timed(appgame.NewGetMapHandler(games)),
		GetPlayerView:  timed(appgame.NewGetPlayerViewHandler(games)),
	}, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
