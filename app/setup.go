package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/academic-portfolio/api"
	"github.com/sahilchouksey/academic-portfolio/config"
	"github.com/sahilchouksey/academic-portfolio/database"
	"github.com/sahilchouksey/academic-portfolio/router"
	"github.com/sahilchouksey/academic-portfolio/utils"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"github.com/sahilchouksey/academic-portfolio/utils/cache"
)

const shutdownTimeout = 10 * time.Second

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}
	if err := getEnv.Validate(); err != nil {
		return err
	}

	log := utils.NewLogger(getEnv.GO_ENV, getEnv.LOG_LEVEL)

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv, log)
	if err != nil {
		log.WithError(err).Error("check whether Postgres is running (make docker-up or make db-up)")
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.WithError(err).Error("failed to run migrations")
		return err
	}

	// Redis only backs the IP brute-force guard, so it is optional
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.WithError(err).Warn("failed to connect to Redis, brute force protection disabled")
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), log)
	router.SetupRoutes(server.GetEngine(), router.Deps{
		Env:    getEnv,
		Store:  store,
		Cache:  redisCache,
		Log:    log,
		Hasher: auth.DefaultHasher,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
