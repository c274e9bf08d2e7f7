package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/clock"
	"github.com/minbar-signage/minbar/internal/db"
	"github.com/minbar-signage/minbar/internal/engine"
	"github.com/minbar-signage/minbar/internal/prayer"
	"github.com/minbar-signage/minbar/internal/push"
	"github.com/minbar-signage/minbar/internal/ramadan"
	"github.com/minbar-signage/minbar/internal/redis"
)

func main() {
	env := LoadEnvironment()

	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}
	store := db.NewStore(db.DB)

	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	if env.MQTTBrokerURL != "" {
		push.SetBrokerURL(env.MQTTBrokerURL)
	}
	defer push.Cleanup()

	// Temporal core: one clock, everything else derives from its ticks.
	clk := clock.NewService(nil)
	formatter := prayer.NewFormatter(env.Use12HourClock)
	detector := ramadan.NewDetector()
	eng := engine.New(clk, formatter, detector, push.DisplayPublisher{})

	if row, err := store.GetTimetable(time.Now().Format("2006-01-02")); err == nil {
		times := row.Times()
		eng.SetTimes(&times)
	} else {
		log.Warn().Msg("no timetable for today, waiting for upload")
	}

	eng.Start()
	defer eng.Stop()

	// Override changes arrive as notifications, local or from peers.
	redis.SubscribeOverrides(context.Background(), eng.HandleOverride)

	storageSystem := InitStorage(env)

	r := gin.Default()
	RegisterRoutes(r, env, store, storageSystem, eng)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
