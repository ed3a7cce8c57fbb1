package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/config"
	"github.com/daddeck/daddeck-api/internal/entities"
	apierrors "github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/events"
	v1 "github.com/daddeck/daddeck-api/internal/handlers/v1"
	"github.com/daddeck/daddeck-api/internal/orchestrators/auth"
	"github.com/daddeck/daddeck-api/internal/orchestrators/battle"
	"github.com/daddeck/daddeck-api/internal/orchestrators/collection"
	"github.com/daddeck/daddeck-api/internal/orchestrators/crafting"
	"github.com/daddeck/daddeck-api/internal/orchestrators/packs"
	"github.com/daddeck/daddeck-api/internal/orchestrators/profile"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	"github.com/daddeck/daddeck-api/internal/pkg/idgen"
	"github.com/daddeck/daddeck-api/internal/redis"
	"github.com/daddeck/daddeck-api/internal/repositories/apikeys"
	collectionrepo "github.com/daddeck/daddeck-api/internal/repositories/collection"
	craftingrepo "github.com/daddeck/daddeck-api/internal/repositories/crafting"
	leaderboardrepo "github.com/daddeck/daddeck-api/internal/repositories/leaderboard"
	profilerepo "github.com/daddeck/daddeck-api/internal/repositories/profile"
)

var (
	configPath   string
	addrOverride string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the REST API server",
	Long:  `Start the DadDeck API server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "daddeck.toml", "path to the TOML config file")
	serverCmd.Flags().StringVar(&addrOverride, "addr", "", "listen address, overrides the config file")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addrOverride != "" {
		cfg.Server.Addr = addrOverride
	}

	client, err := redis.NewClient(cfg.Redis.Address, &redis.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			slog.Warn("failed to close redis client", "error", closeErr)
		}
	}()

	cat, err := catalog.New()
	if err != nil {
		return err
	}
	slog.Info("card catalog loaded", "cards", cat.Size())

	handler, authService, err := buildHandler(cat, client)
	if err != nil {
		return err
	}

	if cfg.Auth.BootstrapKey != "" {
		if err := bootstrapKey(ctx, client, cfg.Auth.BootstrapKey); err != nil {
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", handler.Health)

	middleware := []gin.HandlerFunc{v1.RequestLogger()}
	if cfg.Auth.Enabled {
		middleware = append(middleware, v1.Auth(authService))
	}
	limiter, err := v1.RateLimiter(&v1.RateLimiterConfig{
		Client: client,
		Limits: &cfg.RateLimit,
	})
	if err != nil {
		return err
	}
	middleware = append(middleware, limiter)

	handler.RegisterRoutes(router, middleware...)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Server.Addr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, closing", "error", err)
			return srv.Close()
		}
		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func buildHandler(cat *catalog.Catalog, client redis.Client) (*v1.Handler, auth.Service, error) {
	clk := clock.New()
	roller := dice.DefaultRoller

	collections, err := collectionrepo.NewRedis(&collectionrepo.RedisConfig{Client: client, Clock: clk})
	if err != nil {
		return nil, nil, err
	}
	profiles, err := profilerepo.NewRedis(&profilerepo.RedisConfig{Client: client, Clock: clk})
	if err != nil {
		return nil, nil, err
	}
	scores, err := leaderboardrepo.NewRedis(&leaderboardrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, nil, err
	}
	crafts, err := craftingrepo.NewRedis(&craftingrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, nil, err
	}
	keys, err := apikeys.NewRedis(&apikeys.RedisConfig{Client: client})
	if err != nil {
		return nil, nil, err
	}

	packService, err := packs.NewOrchestrator(&packs.Config{
		Catalog:         cat,
		CollectionRepo:  collections,
		ProfileRepo:     profiles,
		LeaderboardRepo: scores,
		Roller:          roller,
		IDGenerator:     idgen.NewUUID("pack"),
		Clock:           clk,
	})
	if err != nil {
		return nil, nil, err
	}

	battleService, err := battle.NewOrchestrator(&battle.Config{
		Catalog:        cat,
		CollectionRepo: collections,
		ProfileRepo:    profiles,
		Roller:         roller,
		Clock:          clk,
	})
	if err != nil {
		return nil, nil, err
	}

	craftingService, err := crafting.NewOrchestrator(&crafting.Config{
		Catalog:         cat,
		CraftingRepo:    crafts,
		CollectionRepo:  collections,
		ProfileRepo:     profiles,
		LeaderboardRepo: scores,
		Roller:          roller,
		IDGenerator:     idgen.NewUUID("craft"),
		Clock:           clk,
	})
	if err != nil {
		return nil, nil, err
	}

	collectionService, err := collection.NewOrchestrator(&collection.Config{
		Catalog:         cat,
		CollectionRepo:  collections,
		LeaderboardRepo: scores,
		Clock:           clk,
	})
	if err != nil {
		return nil, nil, err
	}

	profileService, err := profile.NewOrchestrator(&profile.Config{
		ProfileRepo:     profiles,
		LeaderboardRepo: scores,
		Clock:           clk,
	})
	if err != nil {
		return nil, nil, err
	}

	authService, err := auth.NewOrchestrator(&auth.Config{
		APIKeyRepo:      keys,
		IDGenerator:     idgen.NewUUID("key"),
		SecretGenerator: idgen.NewUUID("dd"),
		Clock:           clk,
	})
	if err != nil {
		return nil, nil, err
	}

	eventTable, err := events.New()
	if err != nil {
		return nil, nil, err
	}

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		Catalog:           cat,
		Events:            eventTable,
		Roller:            roller,
		PackService:       packService,
		BattleService:     battleService,
		CraftingService:   craftingService,
		CollectionService: collectionService,
		ProfileService:    profileService,
		AuthService:       authService,
		Clock:             clk,
	})
	if err != nil {
		return nil, nil, err
	}

	return handler, authService, nil
}

// bootstrapKey registers the configured admin secret so a fresh deployment
// can mint further keys over the API.
func bootstrapKey(ctx context.Context, client redis.Client, secret string) error {
	repo, err := apikeys.NewRedis(&apikeys.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, apikeys.CreateInput{APIKey: &entities.APIKey{
		ID:   "key_bootstrap",
		Key:  secret,
		Name: "bootstrap",
		Tier: entities.TierEnterprise,
	}})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return nil
		}
		return err
	}

	slog.Info("bootstrap api key registered")
	return nil
}
